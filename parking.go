package roadgraph

import (
	"math"

	"github.com/voidshard/roadgraph/internal/arena"
	"github.com/voidshard/roadgraph/internal/geom"
)

// ParkingSpot is a single parking space on a parking lane
type ParkingSpot struct {
	ID     ParkingSpotID
	Parent LaneID
	Pos    geom.Vec2
	Dir    geom.Vec2
}

// ParkingSpots holds every spot, grouped by lane
type ParkingSpots struct {
	spots      *arena.Arena[ParkingSpotID, *ParkingSpot]
	byLane     map[LaneID][]ParkingSpotID
	spotLength float64
}

func newParkingSpots(spotLength float64) *ParkingSpots {
	return &ParkingSpots{
		spots:      arena.New[ParkingSpotID, *ParkingSpot](),
		byLane:     map[LaneID][]ParkingSpotID{},
		spotLength: spotLength,
	}
}

// Get a spot by id
func (p *ParkingSpots) Get(id ParkingSpotID) (*ParkingSpot, bool) {
	return p.spots.Get(id)
}

// Len is the number of spots
func (p *ParkingSpots) Len() int {
	return p.spots.Len()
}

// IDs of every spot
func (p *ParkingSpots) IDs() []ParkingSpotID {
	return p.spots.IDs()
}

// OnLane returns the spots along a lane in order of travel
func (p *ParkingSpots) OnLane(id LaneID) []ParkingSpotID {
	return append([]ParkingSpotID{}, p.byLane[id]...)
}

// Each calls fn for every spot
func (p *ParkingSpots) Each(fn func(ParkingSpotID, *ParkingSpot)) {
	p.spots.Each(fn)
}

// RemoveSpots drops every spot of a lane
func (p *ParkingSpots) RemoveSpots(lane LaneID) {
	for _, id := range p.byLane[lane] {
		p.spots.Remove(id)
	}
	delete(p.byLane, lane)
}

// Clear drops everything
func (p *ParkingSpots) Clear() {
	p.spots.Clear()
	p.byLane = map[LaneID][]ParkingSpotID{}
}

// generate replaces the spots of a parking lane, spreading the slack
// evenly at both ends.
func (p *ParkingSpots) generate(l *Lane) {
	p.RemoveSpots(l.ID)
	if l.Kind != LaneParking {
		return
	}

	length := l.Points.Length()
	n := int(math.Floor(length / p.spotLength))
	if n <= 0 {
		return
	}
	slack := (length - float64(n)*p.spotLength) / 2

	ids := make([]ParkingSpotID, 0, n)
	for i := 0; i < n; i++ {
		pos, dir := l.Points.PointAlong(slack + (float64(i)+0.5)*p.spotLength)
		id := p.spots.InsertWith(func(id ParkingSpotID) *ParkingSpot {
			return &ParkingSpot{ID: id, Parent: l.ID, Pos: pos, Dir: dir}
		})
		ids = append(ids, id)
	}
	p.byLane[l.ID] = ids
}
