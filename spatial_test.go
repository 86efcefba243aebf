package roadgraph

import (
	"testing"

	"github.com/voidshard/roadgraph/internal/geom"
)

func TestSpatialMapQuery(t *testing.T) {
	t.Parallel()

	s := NewSpatialMap(10)
	s.Update(InterKind(1), geom.Centered(geom.V(0, 0), 2))
	s.Update(RoadKind(2), geom.NewAABB(geom.V(0, -1), geom.V(100, 1)))
	s.Update(LotKindOf(3), geom.NewAABB(geom.V(40, 5), geom.V(60, 25)))

	cases := []struct {
		name  string
		shape Shape
		want  []ProjectKind
	}{
		{"origin", Circle{Center: geom.V(0, 0), Radius: 1}, []ProjectKind{InterKind(1), RoadKind(2)}},
		{"along road", Box{geom.NewAABB(geom.V(45, -2), geom.V(55, 2))}, []ProjectKind{RoadKind(2)}},
		{"lot", Circle{Center: geom.V(50, 15), Radius: 1}, []ProjectKind{LotKindOf(3)}},
		{"spanning cells", Box{geom.NewAABB(geom.V(-5, -5), geom.V(95, 30))}, []ProjectKind{InterKind(1), RoadKind(2), LotKindOf(3)}},
		{"nothing", Circle{Center: geom.V(500, 500), Radius: 10}, []ProjectKind{}},
		{"rotated box", geom.NewOBB(geom.V(50, 2), geom.V(1, 1), 4, 4), []ProjectKind{RoadKind(2)}},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := s.Query(tt.shape)
			if len(got) != len(tt.want) {
				t.Fatalf("got=%v want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got=%v want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSpatialMapUpdateRemove(t *testing.T) {
	t.Parallel()

	s := NewSpatialMap(10)
	k := RoadKind(7)
	s.Update(k, geom.Centered(geom.V(0, 0), 5))
	s.Update(k, geom.Centered(geom.V(200, 200), 5))

	if s.Len() != 1 {
		t.Fatalf("len=%d want 1", s.Len())
	}
	if got := s.QueryAround(geom.V(0, 0), 1); len(got) != 0 {
		t.Fatalf("old position still indexed: %v", got)
	}
	if got := s.QueryAround(geom.V(200, 200), 1); len(got) != 1 || got[0] != k {
		t.Fatalf("got=%v want [%v]", got, k)
	}

	if !s.Remove(k) {
		t.Fatalf("remove failed")
	}
	if s.Remove(k) {
		t.Fatalf("double remove succeeded")
	}
	if s.Contains(k) || s.Len() != 0 || len(s.cells) != 0 {
		t.Fatalf("leftovers: len=%d cells=%d", s.Len(), len(s.cells))
	}
}

func TestSpatialMapHugeQuery(t *testing.T) {
	t.Parallel()

	s := NewSpatialMap(10)
	s.Update(InterKind(1), geom.Centered(geom.V(0, 0), 2))
	s.Update(RoadKind(2), geom.NewAABB(geom.V(0, -1), geom.V(100, 1)))
	s.Update(LotKindOf(3), geom.NewAABB(geom.V(5000, 5000), geom.V(5020, 5020)))

	cases := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"everything", Circle{Center: geom.V(0, 0), Radius: 1e15}, 3},
		{"one side", Box{geom.NewAABB(geom.V(-1e15, -1e15), geom.V(1e3, 1e3))}, 2},
		{"empty corner", Box{geom.NewAABB(geom.V(1e14, 1e14), geom.V(1e15, 1e15))}, 0},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Query(tt.shape); len(got) != tt.want {
				t.Fatalf("got=%v want %d entries", got, tt.want)
			}
		})
	}

	trees := NewTrees(25)
	trees.Add(geom.V(10, 10))
	trees.Add(geom.V(-4000, 300))
	if got := trees.In(geom.NewAABB(geom.V(-1e15, -1e15), geom.V(1e15, 1e15))); len(got) != 2 {
		t.Fatalf("got=%v want 2 trees", got)
	}
	if n := trees.RemoveIn(geom.NewAABB(geom.V(-1e15, 0), geom.V(0, 1e15)), func(geom.Vec2) bool { return true }); n != 1 {
		t.Fatalf("removed=%d want 1", n)
	}
}
