package starmap

import "github.com/kohaut/promis/internal/geo"

// slot holds the support points and fitted approximator for one
// (relation, location_type) pair. Support is a Dim=2 collection: column 0
// is the Monte-Carlo mean, column 1 the population variance (for Bernoulli
// relations only column 0, the probability, is meaningful).
type slot struct {
	Support      *geo.CartesianCollection
	Approximator Approximator
	Fitted       bool
}

func newSlot(origin geo.PolarLocation) *slot {
	return &slot{Support: geo.NewCollection(origin, 2)}
}

func (s *slot) addSupport(locations []geo.CartesianLocation, means, variances []float64) {
	for i, loc := range locations {
		// Append cannot fail: Dim is fixed to 2 by newSlot.
		_ = s.Support.Append(loc.East, loc.North, means[i], variances[i])
	}
	s.Fitted = false
}

