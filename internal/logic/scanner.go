// Package logic implements the program scanner (component E) and clause
// emitter (component F): discovering which relations a mission program
// references, and formatting the distributional clauses the solver reads.
package logic

import (
	"regexp"
	"strings"

	"github.com/kohaut/promis/internal/spatial"
)

// RelationRef is one (relation_name, location_type) pair referenced by a
// program. HasLocationType is false for arity-1 relations (keyed under
// None, e.g. depth).
type RelationRef struct {
	Name            string
	LocationType    string
	HasLocationType bool
}

var callPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\(([^()]*)\)`)

// MentionedRelations scans logic for calls to registered relations, in
// source order, duplicates included. The identifier "landscape" is always
// excluded. An occurrence only counts when its first argument is literally
// the variable X; other calls (solver built-ins like normal(...), or calls
// with a different first argument) are ignored, not errors.
func MentionedRelations(logicProgram string, registry spatial.Registry) ([]RelationRef, error) {
	var refs []RelationRef

	for _, m := range callPattern.FindAllStringSubmatch(logicProgram, -1) {
		name := m[1]
		if name == "landscape" {
			continue
		}

		spec, err := registry.Lookup(name)
		if err == spatial.ErrUnknownRelation {
			continue
		}
		if err != nil {
			return nil, err
		}

		args := splitArgs(m[2])

		switch spec.Arity {
		case 1:
			if len(args) == 1 && args[0] == "X" {
				refs = append(refs, RelationRef{Name: name, HasLocationType: false})
			}
		case 2:
			if len(args) == 2 && args[0] == "X" {
				refs = append(refs, RelationRef{Name: name, LocationType: unquote(args[1]), HasLocationType: true})
			}
		}
	}

	return refs, nil
}

func splitArgs(s string) []string {
	raw := strings.Split(s, ",")
	out := make([]string, len(raw))
	for i, a := range raw {
		out[i] = strings.TrimSpace(a)
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
