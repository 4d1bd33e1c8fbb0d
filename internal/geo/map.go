package geo

// CartesianMap is a set of map features sharing a Cartesian origin.
type CartesianMap struct {
	Origin   PolarLocation
	Features []CartesianFeature
}

// Filter returns a new map holding only the features with the given
// location type.
func (m *CartesianMap) Filter(locationType string) *CartesianMap {
	out := &CartesianMap{Origin: m.Origin}
	for _, f := range m.Features {
		if f.LocationType == locationType {
			out.Features = append(out.Features, f)
		}
	}
	return out
}

// FilterTypes returns a new map holding only features whose location type
// is in types. An empty types list returns the whole map (used by the
// depth kernel, whose RELEVANT_LOCATION_TYPES may be unset).
func (m *CartesianMap) FilterTypes(types []string) *CartesianMap {
	if len(types) == 0 {
		return m
	}
	allow := make(map[string]bool, len(types))
	for _, t := range types {
		allow[t] = true
	}
	out := &CartesianMap{Origin: m.Origin}
	for _, f := range m.Features {
		if allow[f.LocationType] {
			out.Features = append(out.Features, f)
		}
	}
	return out
}

// Geometries returns the nominal (or realized) geometry of every feature,
// in insertion order — the order the R-tree index is built from.
func (m *CartesianMap) Geometries() []Geometry {
	out := make([]Geometry, len(m.Features))
	for i, f := range m.Features {
		out[i] = f.Geometry
	}
	return out
}
