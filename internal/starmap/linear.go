package starmap

import "math"

// LinearApproximator interpolates scattered support points by inverse-
// distance weighting: a grid-free stand-in for exact piecewise-linear
// (Delaunay) interpolation that degrades gracefully to the nearest point's
// value as the query approaches it and to a broad weighted average far
// from all support.
type LinearApproximator struct {
	coords [][2]float64
	values [][]float64
}

func (a *LinearApproximator) Fit(coords [][2]float64, values [][]float64) error {
	a.coords = coords
	a.values = values
	return nil
}

func (a *LinearApproximator) Predict(coords [][2]float64) ([][]float64, error) {
	// Without support there is no value width to copy; emit NaN rows in the
	// StaR Map's (mean, variance) layout.
	dim := 2
	if len(a.values) > 0 {
		dim = len(a.values[0])
	}
	out := make([][]float64, len(coords))
	for qi, q := range coords {
		row := make([]float64, dim)
		var weightSum float64
		exact := -1
		for si, s := range a.coords {
			d2 := (q[0]-s[0])*(q[0]-s[0]) + (q[1]-s[1])*(q[1]-s[1])
			if d2 < 1e-18 {
				exact = si
				break
			}
			w := 1.0 / d2
			weightSum += w
			for d := 0; d < dim; d++ {
				row[d] += w * a.values[si][d]
			}
		}
		if exact >= 0 {
			copy(row, a.values[exact])
		} else if weightSum > 0 {
			for d := 0; d < dim; d++ {
				row[d] /= weightSum
			}
		} else {
			for d := range row {
				row[d] = math.NaN()
			}
		}
		out[qi] = row
	}
	return out, nil
}
