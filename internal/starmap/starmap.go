// Package starmap implements the StaR Map (component D): a store of
// scattered Monte-Carlo relation moments that interpolates them onto an
// arbitrary target via a pluggable approximator.
package starmap

import (
	"fmt"
	"sort"

	"github.com/kohaut/promis/internal/config"
	"github.com/kohaut/promis/internal/geo"
	"github.com/kohaut/promis/internal/logic"
	"github.com/kohaut/promis/internal/spatial"
)

// StarMap caches per-(relation, location_type) support points and their
// fitted interpolators, and predicts relation values over Target on demand.
type StarMap struct {
	Target   Target
	UAM      *geo.CartesianMap
	Registry spatial.Registry
	Cfg      *config.Config
	Method   string

	slots map[logic.RelationRef]*slot
}

// NewStarMap builds an empty StaR Map over target, sampling from uam. The
// target and map must share an origin.
func NewStarMap(target Target, uam *geo.CartesianMap, registry spatial.Registry, cfg *config.Config) (*StarMap, error) {
	if target.OriginLocation() != uam.Origin {
		return nil, ErrOriginMismatch
	}
	return &StarMap{
		Target:   target,
		UAM:      uam,
		Registry: registry,
		Cfg:      cfg,
		Method:   MethodLinear,
		slots:    make(map[logic.RelationRef]*slot),
	}, nil
}

// SetMethod switches the scattered-data approximator used by every future
// Fit. Existing slots are marked stale and must be refit before Get.
func (m *StarMap) SetMethod(method string) error {
	if !isValidMethod(method) {
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
	m.Method = method
	for _, s := range m.slots {
		s.Fitted = false
	}
	return nil
}

// Initialize seeds the StaR Map with K Monte-Carlo samples at support for
// every relation mentioned in logicProgram, then fits them.
func (m *StarMap) Initialize(support []geo.CartesianLocation, k int, logicProgram string) error {
	refs, err := logic.MentionedRelations(logicProgram, m.Registry)
	if err != nil {
		return err
	}
	if err := m.AddSupportPoints(support, k, refs); err != nil {
		return err
	}
	return m.Fit(refs)
}

// AddSupportPoints runs Monte-Carlo moment estimation at support for every
// relation in what and appends the results to the corresponding slots.
// Slots gain support but are not refit; call Fit afterwards.
func (m *StarMap) AddSupportPoints(support []geo.CartesianLocation, k int, what []logic.RelationRef) error {
	for _, ref := range what {
		spec, err := m.Registry.Lookup(ref.Name)
		if err != nil {
			return err
		}

		s, ok := m.slots[ref]
		if !ok {
			s = newSlot(m.Target.OriginLocation())
			m.slots[ref] = s
		}

		relevant := spec.FilterMapFor(m.UAM, ref.LocationType, m.Cfg.GetDepthRelevantLocationTypes())
		emptyMean, emptyVariance := spec.EmptyMap()
		seed := spatial.DeriveSeed(m.Cfg.GetMasterSeed(), ref.Name, ref.LocationType)

		means, variances := spatial.EstimateMoments(relevant, support, k, spec.Kernel, seed, emptyMean, emptyVariance, diagnosticLabel(ref))
		for i := range variances {
			variances[i] = spatial.ClipVariance(spec.Kind, variances[i], m.Cfg.GetVarianceFloor())
		}
		s.addSupport(support, means, variances)
	}
	return nil
}

// Fit (re)fits the approximator of every slot named in what against its
// current support points.
func (m *StarMap) Fit(what []logic.RelationRef) error {
	for _, ref := range what {
		s, ok := m.slots[ref]
		if !ok {
			continue
		}
		if err := m.fitSlot(ref, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *StarMap) fitSlot(ref logic.RelationRef, s *slot) error {
	s.Approximator = m.newApproximator()
	coords := s.Support.Coordinates()
	values := make([][]float64, s.Support.Len())
	for i := range values {
		values[i] = s.Support.Row(i)
	}
	if err := s.Approximator.Fit(coords, values); err != nil {
		return fmt.Errorf("starmap: fit %s/%s: %w", ref.Name, ref.LocationType, err)
	}
	s.Fitted = true
	return nil
}

func (m *StarMap) newApproximator() Approximator {
	switch m.Method {
	case MethodNearest:
		return &NearestApproximator{}
	case MethodGaussianProcess:
		lengthE, lengthN := m.Cfg.GetGPLengthScales()
		return &GaussianProcess{
			InitialLengthEast:  lengthE,
			InitialLengthNorth: lengthN,
			NoiseFloor:         m.Cfg.GetGPNoiseFloor(),
			Restarts:           m.Cfg.GetGPRestarts(),
		}
	default:
		return &LinearApproximator{}
	}
}

// Get predicts ref's values over the whole target and returns them as a
// Relation. The slot must have been fit; use Initialize/AddSupportPoints+Fit
// first.
func (m *StarMap) Get(ref logic.RelationRef) (*spatial.Relation, error) {
	spec, err := m.Registry.Lookup(ref.Name)
	if err != nil {
		return nil, err
	}
	s, ok := m.slots[ref]
	if !ok || !s.Fitted {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFitted, ref.Name, ref.LocationType)
	}

	coords := coordinatePairs(m.Target)
	predicted, err := s.Approximator.Predict(coords)
	if err != nil {
		return nil, fmt.Errorf("starmap: predict %s/%s: %w", ref.Name, ref.LocationType, err)
	}

	params := geo.NewCollection(m.Target.OriginLocation(), 2)
	for i, row := range predicted {
		variance := spatial.ClipVariance(spec.Kind, row[1], m.Cfg.GetVarianceFloor())
		_ = params.Append(m.Target.East(i), m.Target.North(i), row[0], variance)
	}

	return &spatial.Relation{
		Name:            ref.Name,
		LocationType:    ref.LocationType,
		HasLocationType: ref.HasLocationType,
		Kind:            spec.Kind,
		Parameters:      params,
	}, nil
}

// GetFromLogic scans logicProgram for mentioned relations and returns each
// one's current prediction, keyed by relation reference.
func (m *StarMap) GetFromLogic(logicProgram string) (map[logic.RelationRef]*spatial.Relation, error) {
	refs, err := logic.MentionedRelations(logicProgram, m.Registry)
	if err != nil {
		return nil, err
	}
	out := make(map[logic.RelationRef]*spatial.Relation, len(refs))
	for _, ref := range refs {
		if _, done := out[ref]; done {
			continue
		}
		rel, err := m.Get(ref)
		if err != nil {
			return nil, err
		}
		out[ref] = rel
	}
	return out, nil
}

// ClearRelations discards every slot's support points and fitted state.
func (m *StarMap) ClearRelations() {
	m.slots = make(map[logic.RelationRef]*slot)
}

func coordinatePairs(t Target) [][2]float64 {
	out := make([][2]float64, t.Len())
	for i := range out {
		out[i] = [2]float64{t.East(i), t.North(i)}
	}
	return out
}

func diagnosticLabel(ref logic.RelationRef) string {
	if !ref.HasLocationType {
		return ref.Name
	}
	return fmt.Sprintf("%s(%s)", ref.Name, ref.LocationType)
}

// sortedRefs returns a slot map's keys in a stable order, used by Save so
// serialized output is deterministic.
func sortedRefs(slots map[logic.RelationRef]*slot) []logic.RelationRef {
	refs := make([]logic.RelationRef, 0, len(slots))
	for ref := range slots {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].LocationType < refs[j].LocationType
	})
	return refs
}
