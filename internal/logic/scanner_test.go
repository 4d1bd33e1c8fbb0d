package logic

import (
	"reflect"
	"testing"

	"github.com/kohaut/promis/internal/spatial"
)

func sentinel(mean, variance float64) spatial.EmptyMapFunc {
	return func() (float64, float64) { return mean, variance }
}

func testRegistry() spatial.Registry {
	return spatial.NewRegistry(sentinel(1e9, 1e-3), sentinel(0, 0), sentinel(0, 0))
}

func TestMentionedRelationsScenario3(t *testing.T) {
	program := "landscape(X) :- distance(X, operator) < 50; distance(X, primary) < 15."

	got, err := MentionedRelations(program, testRegistry())
	if err != nil {
		t.Fatalf("MentionedRelations() error = %v", err)
	}

	want := []RelationRef{
		{Name: "distance", LocationType: "operator", HasLocationType: true},
		{Name: "distance", LocationType: "primary", HasLocationType: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MentionedRelations() = %+v, want %+v", got, want)
	}
}

func TestMentionedRelationsExcludesLandscape(t *testing.T) {
	got, err := MentionedRelations("landscape(X) :- over(X, zone).", testRegistry())
	if err != nil {
		t.Fatalf("MentionedRelations() error = %v", err)
	}
	for _, ref := range got {
		if ref.Name == "landscape" {
			t.Fatal("MentionedRelations() must exclude landscape")
		}
	}
	if len(got) != 1 || got[0].Name != "over" || got[0].LocationType != "zone" {
		t.Errorf("MentionedRelations() = %+v", got)
	}
}

func TestMentionedRelationsArityOneDepth(t *testing.T) {
	got, err := MentionedRelations("landscape(X) :- depth(X) < 30.", testRegistry())
	if err != nil {
		t.Fatalf("MentionedRelations() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "depth" || got[0].HasLocationType {
		t.Errorf("MentionedRelations() = %+v, want single untyped depth ref", got)
	}
}

func TestMentionedRelationsToleratesQuotesAndWhitespace(t *testing.T) {
	got, err := MentionedRelations(`landscape(X) :- distance(X,  'operator') < 5.`, testRegistry())
	if err != nil {
		t.Fatalf("MentionedRelations() error = %v", err)
	}
	if len(got) != 1 || got[0].LocationType != "operator" {
		t.Errorf("MentionedRelations() = %+v, want unquoted operator", got)
	}
}

func TestMentionedRelationsIgnoresNonXFirstArgument(t *testing.T) {
	got, err := MentionedRelations("foo :- distance(y_0, operator) < 5.", testRegistry())
	if err != nil {
		t.Fatalf("MentionedRelations() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("MentionedRelations() = %+v, want none (first arg not X)", got)
	}
}
