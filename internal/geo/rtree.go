package geo

import (
	"github.com/dhconnelly/rtreego"
)

const boundsEpsilon = 1e-9

// indexedGeometry adapts a Geometry to rtreego.Spatial, remembering its
// position in the original feature slice so Nearest can recover the index
// and tie-break deterministically.
type indexedGeometry struct {
	idx int
	geo Geometry
	bb  rtreego.Rect
}

func (o *indexedGeometry) Bounds() rtreego.Rect { return o.bb }

func boundsOf(g Geometry) rtreego.Rect {
	minE, minN, maxE, maxN := g.Bounds()
	widthE := maxE - minE + boundsEpsilon
	widthN := maxN - minN + boundsEpsilon
	rect, err := rtreego.NewRect(rtreego.Point{minE, minN}, []float64{widthE, widthN})
	if err != nil {
		// A degenerate rectangle (NaN/inf coordinates) only happens for an
		// empty geometry, which callers never index.
		rect, _ = rtreego.NewRect(rtreego.Point{0, 0}, []float64{boundsEpsilon, boundsEpsilon})
	}
	return rect
}

// Index is a bulk-loaded R-tree over a fixed list of geometries, supporting
// nearest-neighbour and bounding-box queries. It is read-only after
// construction and safe for concurrent reads from multiple goroutines.
type Index struct {
	tree       *rtreego.Rtree
	geometries []Geometry
}

// NewIndex bulk-loads an R-tree over geometries, preserving their order for
// tie-breaking and for index-based lookups.
func NewIndex(geometries []Geometry) *Index {
	objs := make([]rtreego.Spatial, len(geometries))
	for i, g := range geometries {
		objs[i] = &indexedGeometry{idx: i, geo: g, bb: boundsOf(g)}
	}
	tree := rtreego.NewTree(2, 25, 50, objs...)
	return &Index{tree: tree, geometries: geometries}
}

// Len returns the number of indexed geometries.
func (ix *Index) Len() int { return len(ix.geometries) }

// Geometry returns the geometry stored at index i.
func (ix *Index) Geometry(i int) Geometry { return ix.geometries[i] }

// Nearest returns the index of the geometry closest to point, with exact
// Euclidean distance (not just bounding-box distance) and ties broken by
// the smallest insertion index. The R-tree's nearest-neighbour search
// supplies the candidate ranking; ties and non-point geometries are
// resolved by exact re-ranking, since rtreego's internal metric is exact
// only for point geometries.
func (ix *Index) Nearest(point CartesianLocation) int {
	if len(ix.geometries) == 0 {
		return -1
	}
	p := rtreego.Point{point.East, point.North}
	candidates := ix.tree.NearestNeighbors(len(ix.geometries), p)

	bestIdx := -1
	bestDist := -1.0
	for _, c := range candidates {
		ig, ok := c.(*indexedGeometry)
		if !ok {
			continue
		}
		d := Distance(point, ig.geo)
		if bestIdx == -1 || d < bestDist-1e-12 || (d <= bestDist+1e-12 && ig.idx < bestIdx) {
			bestIdx = ig.idx
			bestDist = d
		}
	}
	return bestIdx
}

// Query returns the indices of every geometry whose bounding box
// intersects the axis-aligned box (minE, minN)-(maxE, maxN).
func (ix *Index) Query(minE, minN, maxE, maxN float64) []int {
	rect, err := rtreego.NewRect(rtreego.Point{minE, minN}, []float64{maxE - minE + boundsEpsilon, maxN - minN + boundsEpsilon})
	if err != nil {
		return nil
	}
	hits := ix.tree.SearchIntersect(rect)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		if ig, ok := h.(*indexedGeometry); ok {
			out = append(out, ig.idx)
		}
	}
	return out
}
