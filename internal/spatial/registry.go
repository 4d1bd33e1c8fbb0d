package spatial

import "github.com/kohaut/promis/internal/geo"

// EmptyMapFunc returns the sentinel (mean, variance) substituted when the
// relevant map has no features.
type EmptyMapFunc func() (mean, variance float64)

// Spec is a relation's registry entry: its arity, its kind, the pure
// kernel that evaluates it against one realization, and the sentinel used
// when the relevant feature set is empty. Resolving the cyclic dependency
// between Relation and the StaR Map through a registry avoids cross-module
// back-references (spec §9).
type Spec struct {
	Name     string
	Arity    int
	Kind     Kind
	Kernel   KernelFunc
	EmptyMap EmptyMapFunc
}

// Registry maps relation name to its Spec.
type Registry map[string]Spec

// NewRegistry builds the standard distance/over/depth registry. emptyDistance,
// emptyOver and emptyDepth supply the configured empty-map sentinels.
func NewRegistry(emptyDistance, emptyOver, emptyDepth EmptyMapFunc) Registry {
	return Registry{
		"distance": {Name: "distance", Arity: 2, Kind: KindScalar, Kernel: DistanceKernel, EmptyMap: emptyDistance},
		"over":     {Name: "over", Arity: 2, Kind: KindBernoulli, Kernel: OverKernel, EmptyMap: emptyOver},
		"depth":    {Name: "depth", Arity: 1, Kind: KindScalar, Kernel: DepthKernel, EmptyMap: emptyDepth},
	}
}

// Lookup returns the Spec for name, or ErrUnknownRelation.
func (r Registry) Lookup(name string) (Spec, error) {
	spec, ok := r[name]
	if !ok {
		return Spec{}, ErrUnknownRelation
	}
	if spec.Arity != 1 && spec.Arity != 2 {
		return Spec{}, ErrUnsupportedArity
	}
	return spec, nil
}

// FilterMapFor returns the map a relation's kernel should be evaluated
// against: distance/over are evaluated over the subset matching one
// location type; depth is evaluated over the whole UAM restricted to its
// configured relevant types (empty means "the whole map").
func (s Spec) FilterMapFor(uam *geo.CartesianMap, locationType string, depthRelevantTypes []string) *geo.CartesianMap {
	if s.Name == "depth" {
		return uam.FilterTypes(depthRelevantTypes)
	}
	return uam.Filter(locationType)
}
