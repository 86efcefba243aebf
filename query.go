package roadgraph

import (
	"fmt"
	"sort"

	"github.com/voidshard/roadgraph/internal/geom"
)

// order candidates are considered in by Project
var projectRank = map[EntityKind]int{
	KindIntersection: 0,
	KindLot:          1,
	KindBuilding:     2,
	KindRoad:         3,
}

// Project resolves pos to what's on the map there.
//
// An intersection wins if pos is within tolerance of its spatial box (its
// polygon grown to at least the min box) and snaps pos to the centre. Lots & buildings match if pos
// is close to their shape. Roads match within half their width plus
// tolerance and snap pos to the centre line; only the first road found is
// kept. Otherwise it's ground.
func (m *Map) Project(pos geom.Vec2, tolerance float64) MapProject {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.project(pos, tolerance)
}

func (m *Map) project(pos geom.Vec2, tolerance float64) MapProject {
	candidates := m.spatial.QueryAround(pos, tolerance)
	sort.SliceStable(candidates, func(a, b int) bool {
		return projectRank[candidates[a].Kind] < projectRank[candidates[b].Kind]
	})

	var road *MapProject

	for _, k := range candidates {
		switch k.Kind {
		case KindIntersection:
			return MapProject{Pos: m.mustIntersection(IntersectionID(k.ID)).Pos, Kind: k}
		case KindLot:
			if m.mustLot(LotID(k.ID)).Shape.IsClose(pos, tolerance) {
				return MapProject{Pos: pos, Kind: k}
			}
		case KindBuilding:
			if m.mustBuilding(BuildingID(k.ID)).Footprint.IsClose(pos, tolerance) {
				return MapProject{Pos: pos, Kind: k}
			}
		case KindRoad:
			if road != nil {
				continue
			}
			r := m.mustRoad(RoadID(k.ID))
			p, _ := r.Points.Project(pos)
			if p.Dist(pos) <= r.Width/2+tolerance {
				road = &MapProject{Pos: p, Kind: k}
			}
		}
	}

	if road != nil {
		return *road
	}
	return MapProject{Pos: pos, Kind: Ground()}
}

// NearestLane returns the lane of the given kind closest to pos
func (m *Map) NearestLane(pos geom.Vec2, kind LaneKind) (LaneID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		best  LaneID
		bestD float64
		found bool
	)
	m.lanes.Each(func(id LaneID, l *Lane) {
		if l.Kind != kind || len(l.Points) == 0 {
			return
		}
		d := l.Dist2To(pos)
		if !found || d < bestD {
			best, bestD, found = id, d, true
		}
	})
	return best, found
}

// ParkingToDrive returns the driving lane a car leaving the spot pulls
// into: the last driving lane leaving the road's source, whichever side
// of the road the spot is on.
func (m *Map) ParkingToDrive(spot ParkingSpotID) (LaneID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.parking.Get(spot)
	if !ok {
		return 0, false
	}
	lane := m.mustLane(s.Parent)
	road := m.mustRoad(lane.Parent)

	var out LaneID
	for _, ref := range road.OutgoingLanesFrom(road.Src) {
		if ref.Kind == LaneDriving {
			out = ref.ID
		}
	}
	if out == 0 {
		panic(fmt.Sprintf("%v has parking but no driving lane leaving %v", road.ID, road.Src))
	}
	return out, true
}

// FindRoad returns a road joining a & b, in either direction
func (m *Map) FindRoad(a, b IntersectionID) (RoadID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inter, ok := m.intersections.Get(a)
	if !ok {
		return 0, false
	}
	for _, r := range m.roadsOf(inter) {
		if r.OtherEnd(a) == b {
			return r.ID, true
		}
	}
	return 0, false
}

// IsEmpty returns if there are no intersections (and so nothing else
// but trees)
func (m *Map) IsEmpty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.intersections.Len() == 0
}

// Intersection returns an intersection by id
func (m *Map) Intersection(id IntersectionID) (*Intersection, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.intersections.Get(id)
}

// Road returns a road by id
func (m *Map) Road(id RoadID) (*Road, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.roads.Get(id)
}

// Lane returns a lane by id
func (m *Map) Lane(id LaneID) (*Lane, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lanes.Get(id)
}

// Lot returns a lot by id
func (m *Map) Lot(id LotID) (*Lot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lots.Get(id)
}

// Building returns a building by id
func (m *Map) Building(id BuildingID) (*Building, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buildings.Get(id)
}

// The accessors below hand out the live containers; hold RLock while
// reading them.

func (m *Map) Intersections() *Intersections { return m.intersections }
func (m *Map) Roads() *Roads                 { return m.roads }
func (m *Map) Lanes() *Lanes                 { return m.lanes }
func (m *Map) Lots() *Lots                   { return m.lots }
func (m *Map) Buildings() *Buildings         { return m.buildings }
func (m *Map) Parking() *ParkingSpots        { return m.parking }
func (m *Map) Spatial() *SpatialMap          { return m.spatial }
func (m *Map) Trees() *Trees                 { return m.trees }
