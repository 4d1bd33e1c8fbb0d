package geo

import (
	"math/rand"
	"testing"
)

func TestFeatureSampleWithoutDistributionIsUnchanged(t *testing.T) {
	f := CartesianFeature{Geometry: point(1, 2), LocationType: "primary"}
	got := f.Sample(rand.New(rand.NewSource(1)))
	if got.Geometry.Points[0] != f.Geometry.Points[0] {
		t.Errorf("Sample() perturbed a feature with no distribution")
	}
}

func TestFeatureSampleWithZeroCovarianceIsUnchanged(t *testing.T) {
	f := CartesianFeature{
		Geometry:     point(1, 2),
		LocationType: "operator",
		Distribution: &Gaussian2D{VarianceEast: 0, VarianceNorth: 0},
	}
	got := f.Sample(rand.New(rand.NewSource(1)))
	if got.Geometry.Points[0] != f.Geometry.Points[0] {
		t.Errorf("Sample() perturbed a feature with zero covariance: %v", got.Geometry.Points[0])
	}
}

func TestMapFilter(t *testing.T) {
	m := &CartesianMap{Features: []CartesianFeature{
		{Geometry: point(0, 0), LocationType: "operator"},
		{Geometry: point(1, 1), LocationType: "primary"},
	}}
	filtered := m.Filter("operator")
	if len(filtered.Features) != 1 {
		t.Fatalf("Filter() returned %d features, want 1", len(filtered.Features))
	}
	if filtered.Features[0].LocationType != "operator" {
		t.Errorf("Filter() kept wrong feature")
	}
}
