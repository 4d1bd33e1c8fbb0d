package geo

import "testing"

func point(e, n float64) Geometry {
	return Geometry{Kind: GeometryPoint, Points: []CartesianLocation{{East: e, North: n}}}
}

func TestIndexNearest(t *testing.T) {
	ix := NewIndex([]Geometry{point(0, 0), point(10, 0), point(0, 10)})

	got := ix.Nearest(CartesianLocation{East: 1, North: 1})
	if got != 0 {
		t.Errorf("Nearest() = %d, want 0", got)
	}
}

func TestIndexNearestTieBreaksByInsertionOrder(t *testing.T) {
	// Two geometries equidistant from the query point; the earlier
	// insertion index must win.
	ix := NewIndex([]Geometry{point(-5, 0), point(5, 0)})

	got := ix.Nearest(CartesianLocation{East: 0, North: 0})
	if got != 0 {
		t.Errorf("Nearest() = %d, want 0 (earliest insertion)", got)
	}
}

func TestIndexQuery(t *testing.T) {
	ix := NewIndex([]Geometry{point(0, 0), point(100, 100), point(5, 5)})

	hits := ix.Query(-1, -1, 10, 10)
	if len(hits) != 2 {
		t.Fatalf("Query() returned %d hits, want 2: %v", len(hits), hits)
	}
}

func TestIndexEmpty(t *testing.T) {
	ix := NewIndex(nil)
	if got := ix.Nearest(CartesianLocation{}); got != -1 {
		t.Errorf("Nearest() on empty index = %d, want -1", got)
	}
}
