package scatter

import (
	"testing"

	"github.com/voidshard/roadgraph/internal/geom"
)

func TestMinDistance(t *testing.T) {
	t.Parallel()

	s := New(geom.NewAABB(geom.V(0, 0), geom.V(100, 100)))
	s.SetSeed(42)
	s.MinDistance(10)
	sites := s.Fill(500)

	if len(sites) == 0 {
		t.Fatalf("expected some sites")
	}
	if len(sites) != len(s.sites) {
		t.Fatalf("got=%d want %d", len(sites), len(s.sites))
	}
	for i := range sites {
		for j := i + 1; j < len(sites); j++ {
			if d := sites[i].Dist(sites[j]); d < 10 {
				t.Fatalf("sites %v %v only %v apart", sites[i], sites[j], d)
			}
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	t.Parallel()

	run := func() []geom.Vec2 {
		s := New(geom.NewAABB(geom.V(-50, -50), geom.V(50, 50)))
		s.SetSeed(7)
		s.MinDistance(5)
		return s.Fill(200)
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("got=%d want %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("site %d: got=%v want %v", i, a[i], b[i])
		}
	}
}

func TestFilters(t *testing.T) {
	t.Parallel()

	s := New(geom.NewAABB(geom.V(0, 0), geom.V(100, 100)))
	s.SetSeed(1)
	s.SetCandidateFilters(func(c geom.Vec2) bool { return c.X < 50 })
	s.Avoid([]geom.Vec2{geom.V(25, 50)}, 20)

	for _, p := range s.Fill(300) {
		if p.X >= 50 {
			t.Fatalf("candidate filter ignored for %v", p)
		}
		if p.Dist(geom.V(25, 50)) < 20 {
			t.Fatalf("avoid ignored for %v", p)
		}
	}

	if s.accepted(geom.V(75, 10)) {
		t.Fatalf("expected explicit site to be filtered")
	}
}

func TestEmptyBounds(t *testing.T) {
	t.Parallel()

	s := New(geom.NewAABB(geom.V(0, 0), geom.V(0, 10)))
	if _, ok := s.addRandomSite(); ok {
		t.Fatalf("expected no site in a zero width region")
	}
}
