package roadgraph

import (
	"fmt"

	"github.com/voidshard/roadgraph/internal/encoding"
)

// IDs pack a slot index with a generation (see internal/arena). The zero
// value of every ID type is never valid, and a removed ID never comes back.
type (
	IntersectionID uint64
	RoadID         uint64
	LaneID         uint64
	LotID          uint64
	BuildingID     uint64
	ParkingSpotID  uint64
)

func idString(prefix string, id uint64) string {
	index, gen := encoding.UnpackID(id)
	return fmt.Sprintf("%s(%d:%d)", prefix, index, gen)
}

func (id IntersectionID) String() string { return idString("inter", uint64(id)) }
func (id RoadID) String() string         { return idString("road", uint64(id)) }
func (id LaneID) String() string         { return idString("lane", uint64(id)) }
func (id LotID) String() string          { return idString("lot", uint64(id)) }
func (id BuildingID) String() string     { return idString("building", uint64(id)) }
func (id ParkingSpotID) String() string  { return idString("spot", uint64(id)) }
