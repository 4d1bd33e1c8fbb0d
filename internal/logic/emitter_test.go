package logic

import (
	"testing"

	"github.com/kohaut/promis/internal/geo"
	"github.com/kohaut/promis/internal/spatial"
)

func oneRowRelation(kind spatial.Kind, hasType bool, locationType string, mean, variance float64) *spatial.Relation {
	params := geo.NewCollection(geo.PolarLocation{}, 2)
	_ = params.Append(0, 0, mean, variance)
	return &spatial.Relation{Name: "distance", LocationType: locationType, HasLocationType: hasType, Kind: kind, Parameters: params}
}

func TestEmitQuery(t *testing.T) {
	if got := EmitQuery(3); got != "query(landscape(x_3)).\n" {
		t.Errorf("EmitQuery(3) = %q", got)
	}
}

func TestEmitScalarClauseWithType(t *testing.T) {
	r := oneRowRelation(spatial.KindScalar, true, "primary", 15.5, 2.25)
	got := EmitClause(r, 0)
	want := "distance(x_0, primary) ~ normal(15.5, 2.25).\n"
	if got != want {
		t.Errorf("EmitClause() = %q, want %q", got, want)
	}
}

func TestEmitScalarClauseWithoutType(t *testing.T) {
	r := oneRowRelation(spatial.KindScalar, false, "", 1, 1e-3)
	r.Name = "depth"
	got := EmitClause(r, 2)
	want := "depth(x_2) ~ normal(1, 0.001).\n"
	if got != want {
		t.Errorf("EmitClause() = %q, want %q", got, want)
	}
}

func TestEmitBernoulliClause(t *testing.T) {
	r := oneRowRelation(spatial.KindBernoulli, true, "zone", 0.75, 0)
	r.Name = "over"
	got := EmitClause(r, 1)
	want := "0.75::over(x_1, zone).\n"
	if got != want {
		t.Errorf("EmitClause() = %q, want %q", got, want)
	}
}
