package roadgraph

import (
	"testing"

	"github.com/voidshard/roadgraph/internal/geom"
)

func TestProject(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	a, _, r := road(t, m, geom.V(0, 0), geom.V(100, 0), twoLane())
	rd, _ := m.Road(r)

	// a lot clear of both intersection boxes
	var lot *Lot
	for _, id := range rd.Lots {
		l, _ := m.Lot(id)
		if c := l.Shape.Center(); c.X > 30 && c.X < 70 {
			lot = l
			break
		}
	}
	if lot == nil {
		t.Fatalf("no lot mid road")
	}

	cases := []struct {
		name    string
		pos     geom.Vec2
		tol     float64
		want    ProjectKind
		wantPos geom.Vec2
	}{
		{"intersection centre", geom.V(0, 0), 5, InterKind(a), geom.V(0, 0)},
		{"near intersection snaps", geom.V(1, 1), 5, InterKind(a), geom.V(0, 0)},
		{"road inside intersection box", geom.V(15, 0), 1, InterKind(a), geom.V(0, 0)},
		{"on road", geom.V(50, 2), 1, RoadKind(r), geom.V(50, 0)},
		{"lot", lot.Shape.Center(), 1, LotKindOf(lot.ID), lot.Shape.Center()},
		{"ground", geom.V(500, 500), 5, Ground(), geom.V(500, 500)},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := m.Project(tt.pos, tt.tol)
			if got.Kind != tt.want {
				t.Fatalf("got=%v want %v", got.Kind, tt.want)
			}
			if got.Pos.Dist(tt.wantPos) > 1e-9 {
				t.Fatalf("pos=%v want %v", got.Pos, tt.wantPos)
			}
		})
	}
}

func TestProjectIntersectionBeatsRoad(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	c := m.AddIntersection(geom.V(0, 0))
	for _, p := range []geom.Vec2{geom.V(100, 0), geom.V(0, 100), geom.V(-100, 0)} {
		m.Connect(c, m.AddIntersection(p), twoLane(), geom.Straight())
	}

	got := m.Project(geom.V(0, 0), 20)
	if got.Kind != InterKind(c) {
		t.Fatalf("got=%v want %v", got.Kind, InterKind(c))
	}
}

func TestProjectBuilding(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	_, _, r := road(t, m, geom.V(0, 0), geom.V(200, 0), twoLane())
	fp := geom.NewOBB(geom.V(100, 30), geom.V(1, 0), 40, 20)
	b := m.BuildSpecialBuilding(r, fp, BuildingFactory, GenCenteredDoor)

	got := m.Project(geom.V(100, 30), 1)
	if got.Kind != BuildingKindOf(b) {
		t.Fatalf("got=%v want %v", got.Kind, BuildingKindOf(b))
	}
}

func TestNearestLane(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	_, _, r := road(t, m, geom.V(0, 0), geom.V(100, 0), twoLane())
	rd, _ := m.Road(r)

	got, ok := m.NearestLane(geom.V(50, -3), LaneDriving)
	if !ok || got != rd.LanesForward[0].ID {
		t.Fatalf("got=%v want %v", got, rd.LanesForward[0].ID)
	}
	got, ok = m.NearestLane(geom.V(50, 3), LaneDriving)
	if !ok || got != rd.LanesBackward[0].ID {
		t.Fatalf("got=%v want %v", got, rd.LanesBackward[0].ID)
	}
	if _, ok := m.NearestLane(geom.V(50, 3), LaneRail); ok {
		t.Fatalf("found a rail lane")
	}
}

func TestParkingToDrive(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	pattern := NewLanePattern(PatternBuilder{LanesPerSide: 2, Parking: true})
	_, _, r := road(t, m, geom.V(0, 0), geom.V(100, 0), pattern)
	rd, _ := m.Road(r)

	if m.Parking().Len() == 0 {
		t.Fatalf("no parking spots")
	}

	// both sides pull into the last driving lane leaving the road's source
	cases := []struct {
		name    string
		parking LaneRef
		want    LaneRef
	}{
		{"forward", rd.LanesForward[2], rd.LanesForward[1]},
		{"backward", rd.LanesBackward[2], rd.LanesForward[1]},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.parking.Kind != LaneParking || tt.want.Kind != LaneDriving {
				t.Fatalf("unexpected layout %v %v", tt.parking, tt.want)
			}
			spots := m.Parking().OnLane(tt.parking.ID)
			if len(spots) == 0 {
				t.Fatalf("no spots on %v", tt.parking.ID)
			}
			got, ok := m.ParkingToDrive(spots[0])
			if !ok || got != tt.want.ID {
				t.Fatalf("got=%v want %v", got, tt.want.ID)
			}
		})
	}

	spot := m.Parking().OnLane(rd.LanesForward[2].ID)[0]
	m.RemoveRoad(r)
	if _, ok := m.ParkingToDrive(spot); ok {
		t.Fatalf("stale spot resolved")
	}
}

func TestParkingToDriveOneWay(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	pattern := NewLanePattern(PatternBuilder{LanesPerSide: 1, Parking: true, OneWay: true})
	_, _, r := road(t, m, geom.V(0, 0), geom.V(100, 0), pattern)
	rd, _ := m.Road(r)

	if len(rd.LanesBackward) != 1 || rd.LanesBackward[0].Kind != LaneParking {
		t.Fatalf("unexpected backward lanes %v", rd.LanesBackward)
	}
	want := rd.LanesForward[0]
	if want.Kind != LaneDriving {
		t.Fatalf("unexpected forward lanes %v", rd.LanesForward)
	}

	for _, ref := range []LaneRef{rd.LanesForward[1], rd.LanesBackward[0]} {
		spots := m.Parking().OnLane(ref.ID)
		if len(spots) == 0 {
			t.Fatalf("no spots on %v", ref.ID)
		}
		got, ok := m.ParkingToDrive(spots[len(spots)-1])
		if !ok || got != want.ID {
			t.Fatalf("%v: got=%v want %v", ref.ID, got, want.ID)
		}
	}
}

func TestFindRoad(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	a, b, r := road(t, m, geom.V(0, 0), geom.V(100, 0), twoLane())
	c := m.AddIntersection(geom.V(0, 100))

	cases := []struct {
		name   string
		from   IntersectionID
		to     IntersectionID
		wantOK bool
	}{
		{"forward", a, b, true},
		{"backward", b, a, true},
		{"unconnected", a, c, false},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.FindRoad(tt.from, tt.to)
			if ok != tt.wantOK || (ok && got != r) {
				t.Fatalf("got=%v,%v want %v,%v", got, ok, r, tt.wantOK)
			}
		})
	}
}

// Only the first road found within width/2 + tolerance is kept, even when
// a later one is closer. This is the existing behaviour, kept as is rather
// than picking the nearest road.
func TestProjectKeepsFirstRoad(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	_, _, south := road(t, m, geom.V(0, 0), geom.V(200, 0), twoLane())
	_, _, north := road(t, m, geom.V(0, 10), geom.V(200, 10), twoLane())

	cases := []struct {
		name string
		pos  geom.Vec2
	}{
		{"between", geom.V(100, 5)},
		{"closer to the later road", geom.V(100, 6)},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := m.Project(tt.pos, 3)
			if got.Kind != RoadKind(south) {
				t.Fatalf("got=%v want %v (not %v)", got.Kind, RoadKind(south), RoadKind(north))
			}
			if got.Pos.Dist(geom.V(100, 0)) > 1e-9 {
				t.Fatalf("pos=%v want on %v", got.Pos, south)
			}
		})
	}
}
