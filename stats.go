package roadgraph

// MapStats holds generic stats about the map
type MapStats struct {
	Dirt uint64

	Intersections int
	Roads         int
	Lanes         int
	Lots          int
	Buildings     int
	ParkingSpots  int
	Trees         int

	// total length of road centre lines
	RoadLength float64

	// intersections reached by a single road
	DeadEnds int

	LanesByKind     map[LaneKind]int     `json:",omitempty"`
	LotsByKind      map[LotKind]int      `json:",omitempty"`
	BuildingsByKind map[BuildingKind]int `json:",omitempty"`
}

// newMapStats returns blank MapStats
func newMapStats() *MapStats {
	return &MapStats{
		LanesByKind:     map[LaneKind]int{},
		LotsByKind:      map[LotKind]int{},
		BuildingsByKind: map[BuildingKind]int{},
	}
}

// Stats counts what's on the map
func (m *Map) Stats() *MapStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := newMapStats()
	s.Dirt = m.dirt
	s.Intersections = m.intersections.Len()
	s.Roads = m.roads.Len()
	s.Lanes = m.lanes.Len()
	s.Lots = m.lots.Len()
	s.Buildings = m.buildings.Len()
	s.ParkingSpots = m.parking.Len()
	s.Trees = m.trees.Len()

	m.intersections.Each(func(_ IntersectionID, i *Intersection) {
		if len(i.Neighbors(m.roads)) == 1 {
			s.DeadEnds++
		}
	})
	m.roads.Each(func(_ RoadID, r *Road) {
		s.RoadLength += r.Length()
	})
	m.lanes.Each(func(_ LaneID, l *Lane) {
		s.LanesByKind[l.Kind]++
	})
	m.lots.Each(func(_ LotID, l *Lot) {
		s.LotsByKind[l.Kind]++
	})
	m.buildings.Each(func(_ BuildingID, b *Building) {
		s.BuildingsByKind[b.Kind]++
	})
	return s
}
