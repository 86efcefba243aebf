package roadgraph

import (
	"testing"

	"github.com/voidshard/roadgraph/internal/geom"
)

func TestCommandsApply(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	cmds := &Commands{}
	cmds.Push(
		&MakeConnectionCommand{
			From:    MapProject{Pos: geom.V(0, 0), Kind: Ground()},
			To:      MapProject{Pos: geom.V(100, 0), Kind: Ground()},
			Pattern: twoLane(),
		},
	)

	more := &Commands{}
	more.Push(&AddIntersectionCommand{Pos: geom.V(0, 300)})
	cmds.Merge(more)

	if cmds.Len() != 2 {
		t.Fatalf("len=%d want 2", cmds.Len())
	}
	names := []string{}
	for _, c := range cmds.Commands() {
		names = append(names, c.Name())
	}
	if names[0] != "make_connection" || names[1] != "add_intersection" {
		t.Fatalf("got=%v", names)
	}

	cmds.Apply(m)
	if cmds.Len() != 0 {
		t.Fatalf("queue not emptied: %d", cmds.Len())
	}
	if m.Roads().Len() != 1 || m.Intersections().Len() != 3 {
		t.Fatalf("roads=%d intersections=%d", m.Roads().Len(), m.Intersections().Len())
	}
	checkInvariants(t, m)
}

func TestCommandsStaleIDs(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	a, _, r := road(t, m, geom.V(0, 0), geom.V(100, 0), twoLane())
	rd, _ := m.Road(r)
	lot := rd.Lots[0]

	special := &BuildSpecialBuildingCommand{
		Road:      r,
		Footprint: geom.NewOBB(geom.V(50, 30), geom.V(1, 0), 20, 20),
		Kind:      BuildingBakery,
		Gen:       GenCenteredDoor,
	}

	m.RemoveIntersection(a)
	dirt := m.Dirt()

	cmds := &Commands{}
	cmds.Push(
		special,
		&BuildHouseCommand{Lot: lot},
		&RemoveRoadCommand{ID: r},
		&RemoveIntersectionCommand{ID: a},
		&SetLotKindCommand{Lot: lot, Kind: LotCommercial},
		&UpdateIntersectionCommand{ID: a, Turn: DefaultTurnPolicy(), Light: LightsOn},
	)
	cmds.Apply(m)

	if m.Buildings().Len() != 0 {
		t.Fatalf("built %d buildings on a removed road", m.Buildings().Len())
	}
	if m.Dirt() != dirt {
		t.Fatalf("dirt got=%d want %d", m.Dirt(), dirt)
	}
	checkInvariants(t, m)
}
