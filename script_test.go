package roadgraph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testScript = `
steps:
  - op: connect
    from: [0, 0]
    to: [100, 0]
    pattern: {lanesPerSide: 1, sidewalks: true}
  - op: connect
    from: [100, 0]
    to: [100, 100]
  - op: build_house
    at: [39, 19]
  - op: remove_road
    at: [100, 50]
  - op: trees
    min: [0, 200]
    max: [100, 300]
  - op: remove_building
    at: [500, 500]
`

func TestScriptRun(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(testScript), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	m := newTestMap(t)
	applied := s.Run(m)

	if applied != 5 {
		t.Fatalf("applied=%d want 5", applied)
	}
	if m.Roads().Len() != 1 {
		t.Fatalf("roads=%d want 1", m.Roads().Len())
	}
	if m.Buildings().Len() != 1 {
		t.Fatalf("buildings=%d want 1", m.Buildings().Len())
	}
	if m.Trees().Len() == 0 {
		t.Fatalf("no trees")
	}
	m.Roads().Each(func(_ RoadID, r *Road) {
		if r.Pattern.Len() != 4 {
			t.Fatalf("lanes=%d want 4", r.Pattern.Len())
		}
	})
	checkInvariants(t, m)
}

func TestParseScriptRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{"unknown op", "steps: [{op: teleport}]"},
		{"connect without to", "steps: [{op: connect, from: [0, 0]}]"},
		{"house without at", "steps: [{op: build_house}]"},
		{"lot kind missing", "steps: [{op: set_lot_kind, at: [0, 0]}]"},
		{"bad building kind", "steps: [{op: build_special, at: [0, 0], road: [0, 0], size: [1, 1], kind: castle}]"},
		{"trees without max", "steps: [{op: trees, min: [0, 0]}]"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.raw))
			if !errors.Is(err, ErrBadScript) {
				t.Fatalf("got=%v want %v", err, ErrBadScript)
			}
		})
	}
}
