package starmap

import "github.com/kohaut/promis/internal/geo"

// NearestApproximator predicts the value of the closest support point,
// ties broken by insertion order via the underlying R-tree index.
type NearestApproximator struct {
	values [][]float64
	index  *geo.Index
}

func (a *NearestApproximator) Fit(coords [][2]float64, values [][]float64) error {
	geometries := make([]geo.Geometry, len(coords))
	for i, c := range coords {
		geometries[i] = geo.Geometry{Kind: geo.GeometryPoint, Points: []geo.CartesianLocation{{East: c[0], North: c[1]}}}
	}
	a.index = geo.NewIndex(geometries)
	a.values = values
	return nil
}

func (a *NearestApproximator) Predict(coords [][2]float64) ([][]float64, error) {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		nearest := a.index.Nearest(geo.CartesianLocation{East: c[0], North: c[1]})
		out[i] = append([]float64(nil), a.values[nearest]...)
	}
	return out, nil
}
