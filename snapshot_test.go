package roadgraph

import (
	"context"
	"errors"
	"testing"

	"github.com/voidshard/roadgraph/internal/geom"
	"github.com/voidshard/roadgraph/internal/store"
)

// snapshotMap builds a small town with a bit of everything on it
func snapshotMap(t *testing.T) (*Map, RoadID) {
	t.Helper()
	m := newTestMap(t)

	parked := NewLanePattern(PatternBuilder{LanesPerSide: 1, Parking: true, Sidewalks: true})
	a, b, r1 := road(t, m, geom.V(0, 0), geom.V(150, 0), parked)
	c := m.AddIntersection(geom.V(150, 150))
	if _, ok := m.Connect(b, c, twoLane(), geom.Straight()); !ok {
		t.Fatalf("connect b-c failed")
	}
	d := m.AddIntersection(geom.V(0, 150))
	if _, ok := m.Connect(c, d, twoLane(), geom.FromElbow(geom.V(150, 150), geom.V(0, 150), geom.V(75, 200))); !ok {
		t.Fatalf("connect c-d failed")
	}
	gone, ok := m.Connect(d, a, twoLane(), geom.Straight())
	if !ok {
		t.Fatalf("connect d-a failed")
	}

	rd, _ := m.Road(r1)
	if _, ok := m.BuildHouse(rd.Lots[0]); !ok {
		t.Fatalf("build house failed")
	}
	m.SetLotKind(rd.Lots[1], LotCommercial)
	m.UpdateIntersection(b, func(p *IntersectionPolicy) { p.Light = LightsStopSigns })
	m.GenerateTrees(geom.NewAABB(geom.V(300, 300), geom.V(400, 400)))

	m.RemoveRoad(gone)
	return m, gone
}

func compareMaps(t *testing.T, got, want *Map) {
	t.Helper()

	if got.Dirt() != want.Dirt() {
		t.Fatalf("dirt got=%d want %d", got.Dirt(), want.Dirt())
	}
	gs, ws := got.Stats(), want.Stats()
	if gs.Intersections != ws.Intersections || gs.Roads != ws.Roads || gs.Lanes != ws.Lanes ||
		gs.Lots != ws.Lots || gs.Buildings != ws.Buildings || gs.ParkingSpots != ws.ParkingSpots || gs.Trees != ws.Trees {
		t.Fatalf("stats got=%+v want %+v", gs, ws)
	}

	want.Intersections().Each(func(id IntersectionID, wi *Intersection) {
		gi, ok := got.Intersection(id)
		if !ok {
			t.Fatalf("%v missing", id)
		}
		if gi.Pos != wi.Pos || gi.Policy != wi.Policy || len(gi.Roads) != len(wi.Roads) {
			t.Fatalf("%v got=%+v want %+v", id, gi, wi)
		}
		if len(gi.Turns) != len(wi.Turns) {
			t.Fatalf("%v turns got=%d want %d", id, len(gi.Turns), len(wi.Turns))
		}
		if !gi.Polygon.ApproxEqual(wi.Polygon, 1e-9) {
			t.Fatalf("%v polygon got=%v want %v", id, gi.Polygon, wi.Polygon)
		}
	})

	want.Lanes().Each(func(id LaneID, wl *Lane) {
		gl, ok := got.Lane(id)
		if !ok {
			t.Fatalf("%v missing", id)
		}
		if gl.Parent != wl.Parent || gl.Kind != wl.Kind || gl.Src != wl.Src || gl.Control != wl.Control {
			t.Fatalf("%v got=%+v want %+v", id, gl, wl)
		}
		if !gl.Points.ApproxEqual(wl.Points, 1e-9) {
			t.Fatalf("%v points got=%v want %v", id, gl.Points, wl.Points)
		}
	})

	want.Lots().Each(func(id LotID, wl *Lot) {
		gl, ok := got.Lot(id)
		if !ok || *gl != *wl {
			t.Fatalf("%v got=%+v want %+v", id, gl, wl)
		}
	})

	want.Buildings().Each(func(id BuildingID, wb *Building) {
		gb, ok := got.Building(id)
		if !ok || *gb != *wb {
			t.Fatalf("%v got=%+v want %+v", id, gb, wb)
		}
	})

	checkInvariants(t, got)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	m, gone := snapshotMap(t)

	data, err := EncodeSnapshot(m.Snapshot())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	loaded, err := FromSnapshot(nil, snap)
	if err != nil {
		t.Fatalf("from snapshot: %v", err)
	}

	compareMaps(t, loaded, m)

	if _, ok := loaded.Road(gone); ok {
		t.Fatalf("removed %v is live again", gone)
	}

	// ids handed out after a load never collide with removed ones
	x := loaded.AddIntersection(geom.V(500, 0))
	y := loaded.AddIntersection(geom.V(600, 0))
	r, ok := loaded.Connect(x, y, twoLane(), geom.Straight())
	if !ok || r == gone {
		t.Fatalf("got=%v want a fresh id", r)
	}
}

func TestSnapshotStore(t *testing.T) {
	t.Parallel()

	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}

	m, _ := snapshotMap(t)
	ctx := context.Background()

	if err := m.Save(ctx, st, "town"); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(ctx, nil, st, "town")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	compareMaps(t, loaded, m)

	if _, err := Load(ctx, nil, st, "missing"); err == nil {
		t.Fatalf("loaded a map that was never saved")
	}
}

func TestSnapshotRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mangle func(s *Snapshot)
	}{
		{"version", func(s *Snapshot) { s.Version = SnapshotVersion + 1 }},
		{"road not listed", func(s *Snapshot) { s.Intersections[0].Roads = nil }},
		{"lane count", func(s *Snapshot) { s.Roads[0].LanesForward = s.Roads[0].LanesForward[:1] }},
		{"lot parent", func(s *Snapshot) { s.Roads[0].Lots = nil }},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, _ := snapshotMap(t)
			snap := m.Snapshot()
			tt.mangle(snap)

			_, err := FromSnapshot(nil, snap)
			if !errors.Is(err, ErrBadSnapshot) {
				t.Fatalf("got=%v want %v", err, ErrBadSnapshot)
			}
		})
	}
}
