package roadgraph

import (
	"fmt"

	"github.com/voidshard/roadgraph/internal/geom"
)

// Building is anything built on the map. Parent is the road it faces, zero
// for standalone buildings. Parent may go stale when that road is removed.
type Building struct {
	ID        BuildingID
	Parent    RoadID `json:",omitempty"`
	Footprint geom.OBB
	Kind      BuildingKind
	Gen       BuildingGen
}

// makeBuilding inserts a building & its spatial entry
func (m *Map) makeBuilding(parent RoadID, footprint geom.OBB, kind BuildingKind, gen BuildingGen) BuildingID {
	id := m.buildings.InsertWith(func(id BuildingID) *Building {
		return &Building{ID: id, Parent: parent, Footprint: footprint, Kind: kind, Gen: gen}
	})
	m.spatial.Update(BuildingKindOf(id), footprint.BBox())
	return id
}

func (m *Map) mustBuilding(id BuildingID) *Building {
	b, ok := m.buildings.Get(id)
	if !ok {
		panic(fmt.Sprintf("%v does not exist anymore, it was not removed from the spatial map", id))
	}
	return b
}
