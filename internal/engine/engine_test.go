package engine

import (
	"context"
	"testing"

	"github.com/kohaut/promis/internal/config"
	"github.com/kohaut/promis/internal/geo"
	"github.com/kohaut/promis/internal/solver"
	"github.com/kohaut/promis/internal/spatial"
	"github.com/kohaut/promis/internal/starmap"
	"github.com/kohaut/promis/internal/testutil"
)

func buildTestEngine(t *testing.T, logicProgram string, n int) *ProMis {
	t.Helper()
	origin := geo.PolarLocation{Latitude: 1, Longitude: 2}
	target := geo.NewCollection(origin, 1)
	for i := 0; i < n; i++ {
		testutil.AssertNoError(t, target.Append(float64(i)*10, 0, 0))
	}

	uam := &geo.CartesianMap{
		Origin: origin,
		Features: []geo.CartesianFeature{
			{
				Geometry:     geo.Geometry{Kind: geo.GeometryPoint, Points: []geo.CartesianLocation{{East: 0, North: 0}}},
				LocationType: "antenna",
			},
		},
	}

	cfg := config.Default()
	emptyDistMean, emptyDistVar := cfg.GetEmptyMapDistance()
	emptyOverMean, emptyOverVar := cfg.GetEmptyMapOver()
	emptyDepthMean, emptyDepthVar := cfg.GetEmptyMapDepth()
	registry := spatial.NewRegistry(
		func() (float64, float64) { return emptyDistMean, emptyDistVar },
		func() (float64, float64) { return emptyOverMean, emptyOverVar },
		func() (float64, float64) { return emptyDepthMean, emptyDepthVar },
	)

	sm, err := starmap.NewStarMap(target, uam, registry, cfg)
	testutil.AssertNoError(t, err)

	support := make([]geo.CartesianLocation, n)
	for i := 0; i < n; i++ {
		support[i] = geo.CartesianLocation{East: float64(i) * 10, North: 0}
	}
	testutil.AssertNoError(t, sm.Initialize(support, 20, logicProgram))

	return New(sm, logicProgram, &solver.FakeSolver{}, cfg)
}

func TestSolveReturnsOneProbabilityPerTarget(t *testing.T) {
	program := "landscape(X) :- distance(X, 'antenna') < 5."
	eng := buildTestEngine(t, program, 4)

	out, err := eng.Solve(context.Background(), SolveOptions{BatchSize: 2, NJobs: 2})
	testutil.AssertNoError(t, err)
	if out.Len() != 4 {
		t.Fatalf("expected 4 results, got %d", out.Len())
	}
	for i := 0; i < out.Len(); i++ {
		testutil.AssertProbability(t, out.V(0, i))
	}
	// Point 0 sits on the antenna; point 3 is 30m away.
	if out.V(0, 0) <= out.V(0, 3) {
		t.Fatalf("expected the point on the antenna to be more likely than the far point, got %v vs %v", out.V(0, 0), out.V(0, 3))
	}
}

func TestSolvePreservesOrderAcrossBatches(t *testing.T) {
	program := "landscape(X) :- distance(X, 'antenna') < 5."
	eng := buildTestEngine(t, program, 6)

	out, err := eng.Solve(context.Background(), SolveOptions{BatchSize: 1, NJobs: 4})
	testutil.AssertNoError(t, err)
	for i := 0; i < out.Len(); i++ {
		if out.East(i) != float64(i)*10 {
			t.Fatalf("expected result %d to correspond to target point %d, got east=%v", i, i, out.East(i))
		}
	}
}

func TestSolveCancelledContext(t *testing.T) {
	program := "landscape(X) :- distance(X, 'antenna') < 5."
	eng := buildTestEngine(t, program, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := eng.Solve(ctx, SolveOptions{BatchSize: 1})
	if err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestMentionedRelationsCacheIsReused(t *testing.T) {
	program := "landscape(X) :- distance(X, 'antenna') < 5."
	eng := buildTestEngine(t, program, 2)

	refs1, err := eng.mentionedRelations(program)
	testutil.AssertNoError(t, err)
	refs2, err := eng.mentionedRelations(program)
	testutil.AssertNoError(t, err)
	if len(refs1) != len(refs2) {
		t.Fatalf("expected cached call to return the same relations")
	}
}
