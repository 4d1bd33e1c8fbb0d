// Package geo provides the geometry substrate: polar and Cartesian
// locations, columnar point collections, raster bands, uncertainty-
// annotated map features and an R-tree spatial index over them.
package geo

import "math"

// PolarLocation is an immutable (latitude, longitude) pair.
type PolarLocation struct {
	Latitude  float64
	Longitude float64
}

// CartesianLocation is an immutable (east, north) point in meters relative
// to a fixed origin, optionally tagged with an opaque location type.
type CartesianLocation struct {
	East         float64
	North        float64
	LocationType string // empty string means "untyped"
}

// Distance returns the Euclidean distance between two Cartesian locations.
func (l CartesianLocation) Distance(other CartesianLocation) float64 {
	de := l.East - other.East
	dn := l.North - other.North
	return math.Hypot(de, dn)
}
