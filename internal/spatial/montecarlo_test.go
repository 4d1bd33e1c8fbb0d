package spatial

import (
	"testing"

	"github.com/kohaut/promis/internal/geo"
)

func point(e, n float64) geo.Geometry {
	return geo.Geometry{Kind: geo.GeometryPoint, Points: []geo.CartesianLocation{{East: e, North: n}}}
}

func TestEstimateMomentsEmptyMapUsesSentinel(t *testing.T) {
	empty := &geo.CartesianMap{}
	support := []geo.CartesianLocation{{East: 0, North: 0}, {East: 5, North: 5}}

	means, variances := EstimateMoments(empty, support, 10, DistanceKernel, 1, 1e9, 1e-3, "distance/operator")

	for i := range means {
		if means[i] != 1e9 || variances[i] != 1e-3 {
			t.Errorf("point %d = (%v, %v), want sentinel (1e9, 1e-3)", i, means[i], variances[i])
		}
	}
}

func TestEstimateMomentsDeterministicFeatureNoVariance(t *testing.T) {
	m := &geo.CartesianMap{Features: []geo.CartesianFeature{
		{Geometry: point(0, 0), LocationType: "operator"},
	}}
	support := []geo.CartesianLocation{{East: 3, North: 4}}

	means, variances := EstimateMoments(m, support, 5, DistanceKernel, 1, 1e9, 1e-3, "distance/operator")

	if means[0] != 5 {
		t.Errorf("mean = %v, want 5 (no distribution, no noise)", means[0])
	}
	if variances[0] != 0 {
		t.Errorf("variance = %v, want 0 (deterministic feature)", variances[0])
	}
}

func TestEstimateMomentsWithNoiseProducesPositiveVariance(t *testing.T) {
	m := &geo.CartesianMap{Features: []geo.CartesianFeature{
		{Geometry: point(0, 0), LocationType: "operator", Distribution: &geo.Gaussian2D{VarianceEast: 4, VarianceNorth: 4}},
	}}
	support := []geo.CartesianLocation{{East: 10, North: 0}}

	_, variances := EstimateMoments(m, support, 200, DistanceKernel, 42, 1e9, 1e-3, "distance/operator")

	if variances[0] <= 0 {
		t.Errorf("variance = %v, want > 0 under positional noise", variances[0])
	}
}

func TestDeriveSeedIsStablePerPair(t *testing.T) {
	a := DeriveSeed(7, "distance", "operator")
	b := DeriveSeed(7, "distance", "operator")
	c := DeriveSeed(7, "distance", "primary")
	if a != b {
		t.Error("DeriveSeed is not stable for the same inputs")
	}
	if a == c {
		t.Error("DeriveSeed collided across distinct location types")
	}
}

func TestClipVarianceFloorsScalarOnly(t *testing.T) {
	if got := ClipVariance(KindScalar, 1e-6, 1e-3); got != 1e-3 {
		t.Errorf("ClipVariance(scalar) = %v, want 1e-3", got)
	}
	if got := ClipVariance(KindBernoulli, 1e-6, 1e-3); got != 1e-6 {
		t.Errorf("ClipVariance(bernoulli) = %v, want unchanged 1e-6", got)
	}
}
