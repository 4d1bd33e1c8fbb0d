package spatial

import "github.com/kohaut/promis/internal/geo"

// Kind distinguishes the two flavours of Relation.
type Kind int

const (
	// KindScalar relations carry a Gaussian N(mean, variance) per point
	// (distance, depth).
	KindScalar Kind = iota
	// KindBernoulli relations carry a Bernoulli(p=mean) per point (over).
	KindBernoulli
)

// Relation is a (name, location_type, parameters) triple: a geometric
// predicate parameterised per point. LocationType is meaningless when
// HasLocationType is false (the relation, like depth, is keyed under None).
type Relation struct {
	Name            string
	LocationType    string
	HasLocationType bool
	Kind            Kind
	// Parameters is a Dim=2 collection carrying (mean, variance) per point.
	Parameters *geo.CartesianCollection
}

// Len returns the number of points this relation is evaluated over.
func (r *Relation) Len() int { return r.Parameters.Len() }

// Mean returns the Gaussian mean (or Bernoulli p) at point i.
func (r *Relation) Mean(i int) float64 { return r.Parameters.V(0, i) }

// Variance returns the Gaussian variance at point i. Meaningless for
// Bernoulli relations.
func (r *Relation) Variance(i int) float64 { return r.Parameters.V(1, i) }

// ClipVariance enforces the variance floor ε on scalar relations; Bernoulli
// relations have no variance semantics and are left untouched.
func ClipVariance(kind Kind, variance, epsilon float64) float64 {
	if kind == KindScalar && variance < epsilon {
		return epsilon
	}
	return variance
}
