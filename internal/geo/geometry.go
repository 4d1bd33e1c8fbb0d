package geo

import "math"

// GeometryKind distinguishes the three primitive shapes a map feature may
// carry.
type GeometryKind int

const (
	GeometryPoint GeometryKind = iota
	GeometryLine
	GeometryPolygon
)

// Geometry is a 2-D point, polyline or polygon described by its vertices.
// Polygons are implicitly closed (first and last vertex need not coincide).
type Geometry struct {
	Kind   GeometryKind
	Points []CartesianLocation
}

// Translate returns a copy of g with every vertex shifted by (de, dn).
func (g Geometry) Translate(de, dn float64) Geometry {
	out := Geometry{Kind: g.Kind, Points: make([]CartesianLocation, len(g.Points))}
	for i, p := range g.Points {
		out.Points[i] = CartesianLocation{East: p.East + de, North: p.North + dn, LocationType: p.LocationType}
	}
	return out
}

// Distance returns the Euclidean distance from point to geometry: the
// distance to its first vertex for a point geometry, or the minimum
// distance to any of its edges for a line or polygon.
func Distance(point CartesianLocation, g Geometry) float64 {
	switch g.Kind {
	case GeometryPoint:
		return point.Distance(g.Points[0])
	default:
		best := math.Inf(1)
		n := len(g.Points)
		segments := n - 1
		if g.Kind == GeometryPolygon {
			segments = n
		}
		for i := 0; i < segments; i++ {
			a := g.Points[i]
			b := g.Points[(i+1)%n]
			d := distanceToSegment(point, a, b)
			if d < best {
				best = d
			}
		}
		return best
	}
}

func distanceToSegment(p, a, b CartesianLocation) float64 {
	abx, aby := b.East-a.East, b.North-a.North
	apx, apy := p.East-a.East, p.North-a.North
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := (apx*abx + apy*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := CartesianLocation{East: a.East + t*abx, North: a.North + t*aby}
	return p.Distance(proj)
}

// Within reports whether point lies inside polygon (ray-casting). Returns
// false for non-polygon geometries.
func Within(point CartesianLocation, g Geometry) bool {
	if g.Kind != GeometryPolygon || len(g.Points) < 3 {
		return false
	}
	inside := false
	n := len(g.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := g.Points[i], g.Points[j]
		intersects := (pi.North > point.North) != (pj.North > point.North)
		if intersects {
			xIntersect := (pj.East-pi.East)*(point.North-pi.North)/(pj.North-pi.North) + pi.East
			if point.East < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds returns the axis-aligned bounding box of a geometry as
// (minEast, minNorth, maxEast, maxNorth).
func (g Geometry) Bounds() (minE, minN, maxE, maxN float64) {
	minE, minN = math.Inf(1), math.Inf(1)
	maxE, maxN = math.Inf(-1), math.Inf(-1)
	for _, p := range g.Points {
		if p.East < minE {
			minE = p.East
		}
		if p.East > maxE {
			maxE = p.East
		}
		if p.North < minN {
			minN = p.North
		}
		if p.North > maxN {
			maxN = p.North
		}
	}
	return
}
