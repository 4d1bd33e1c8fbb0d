package spatial

import "github.com/kohaut/promis/internal/geo"

// KernelFunc evaluates a relation at one location against an R-tree index
// built over one realization of the relevant map features. It is a pure
// function: no shared mutable state, safe to call concurrently across
// distinct indexes.
type KernelFunc func(loc geo.CartesianLocation, idx *geo.Index) (float64, error)

// DistanceKernel returns the Euclidean distance from loc to the nearest
// indexed geometry.
func DistanceKernel(loc geo.CartesianLocation, idx *geo.Index) (float64, error) {
	nearest := idx.Nearest(loc)
	return geo.Distance(loc, idx.Geometry(nearest)), nil
}

// OverKernel returns 1 if loc lies within the nearest indexed geometry,
// else 0.
func OverKernel(loc geo.CartesianLocation, idx *geo.Index) (float64, error) {
	nearest := idx.Nearest(loc)
	if geo.Within(loc, idx.Geometry(nearest)) {
		return 1, nil
	}
	return 0, nil
}

// DepthKernel produces one nonnegative scalar from the whole (or
// relevant-type-filtered) UAM. The contract deliberately stops at "one
// scalar per location given the map's relevant features": callers do not
// interpret the magnitude further. It is modelled here as the distance to
// the nearest relevant feature, scaled down, so that depth behaves like a
// smooth, boundedly-increasing function of remoteness from those features.
func DepthKernel(loc geo.CartesianLocation, idx *geo.Index) (float64, error) {
	if idx.Len() == 0 {
		return 0, nil
	}
	nearest := idx.Nearest(loc)
	d := geo.Distance(loc, idx.Geometry(nearest))
	return d / 10.0, nil
}
