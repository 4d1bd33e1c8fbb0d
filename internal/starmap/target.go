package starmap

import "github.com/kohaut/promis/internal/geo"

// Target is anything the StaR Map can predict relation values over: a loose
// scatter of mission waypoints (*geo.CartesianCollection) or a dense
// landscape raster (*geo.CartesianRasterBand). Both share this shape.
type Target interface {
	Len() int
	East(i int) float64
	North(i int) float64
	OriginLocation() geo.PolarLocation
}

func targetCoordinates(t Target) []geo.CartesianLocation {
	out := make([]geo.CartesianLocation, t.Len())
	for i := range out {
		out[i] = geo.CartesianLocation{East: t.East(i), North: t.North(i)}
	}
	return out
}
