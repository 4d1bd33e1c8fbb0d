package geo

import "testing"

func TestDistancePointToPoint(t *testing.T) {
	p := CartesianLocation{East: 0, North: 0}
	g := Geometry{Kind: GeometryPoint, Points: []CartesianLocation{{East: 3, North: 4}}}
	if got := Distance(p, g); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestDistancePointToSegment(t *testing.T) {
	p := CartesianLocation{East: 5, North: 5}
	line := Geometry{Kind: GeometryLine, Points: []CartesianLocation{{East: 0, North: 0}, {East: 10, North: 0}}}
	if got := Distance(p, line); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestWithinPolygon(t *testing.T) {
	square := Geometry{Kind: GeometryPolygon, Points: []CartesianLocation{
		{East: 0, North: 0}, {East: 10, North: 0}, {East: 10, North: 10}, {East: 0, North: 10},
	}}

	tests := []struct {
		name string
		p    CartesianLocation
		want bool
	}{
		{"inside", CartesianLocation{East: 5, North: 5}, true},
		{"outside", CartesianLocation{East: 15, North: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Within(tt.p, square); got != tt.want {
				t.Errorf("Within() = %v, want %v", got, tt.want)
			}
		})
	}
}
