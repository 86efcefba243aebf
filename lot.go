package roadgraph

import (
	"fmt"

	"github.com/unixpickle/essentials"

	"github.com/voidshard/roadgraph/internal/geom"
)

// Lot is a parcel of frontage along a road that nothing has been built on.
type Lot struct {
	ID     LotID
	Parent RoadID
	Shape  geom.OBB
	Kind   LotKind
}

// generateLots tiles both sides of a road with lots, skipping any that
// would overlap something already on the map.
func (m *Map) generateLots(road *Road) {
	cfg := m.cfg
	length := road.Length()
	end := length - road.DstInterface
	depth := road.Width/2 + cfg.LotGap + cfg.LotDepth/2

	for _, side := range []float64{1, -1} {
		for along := road.SrcInterface; along+cfg.LotWidth <= end; along += cfg.LotWidth + cfg.LotSpacing {
			p, dir := road.Points.PointAlong(along + cfg.LotWidth/2)
			if dir.Norm() == 0 {
				continue
			}
			c := p.Add(geom.Perp(dir).Scale(side * depth))
			shape := geom.NewOBB(c, dir, cfg.LotWidth, cfg.LotDepth)
			if !m.lotFits(shape) {
				continue
			}

			id := m.lots.InsertWith(func(id LotID) *Lot {
				return &Lot{ID: id, Parent: road.ID, Shape: shape, Kind: LotUnassigned}
			})
			road.Lots = append(road.Lots, id)
			m.spatial.Update(LotKindOf(id), shape.BBox())
		}
	}
}

// lotFits returns if shape is clear of every road, intersection, building
// and lot.
func (m *Map) lotFits(shape geom.OBB) bool {
	for _, k := range m.spatial.Query(shape) {
		switch k.Kind {
		case KindRoad:
			r := m.mustRoad(RoadID(k.ID))
			if r.Points.DistToOBB(shape) < r.Width/2 {
				return false
			}
		case KindIntersection:
			inter := m.mustIntersection(IntersectionID(k.ID))
			if inter.Polygon.IntersectsOBB(shape) {
				return false
			}
		case KindBuilding:
			if m.mustBuilding(BuildingID(k.ID)).Footprint.Intersects(shape) {
				return false
			}
		case KindLot:
			if m.mustLot(LotID(k.ID)).Shape.Intersects(shape) {
				return false
			}
		}
	}
	return true
}

// removeIntersectingLots drops lots the road, or the intersections at
// either end of it, now cover.
func (m *Map) removeIntersectingLots(road *Road) {
	ends := []*Intersection{}
	for _, id := range []IntersectionID{road.Src, road.Dst} {
		if inter, ok := m.intersections.Get(id); ok {
			ends = append(ends, inter)
		}
	}

	area := road.BBox()
	for _, inter := range ends {
		if inter.Polygon.IsClosed() {
			area = area.Union(inter.Polygon.BBox())
		}
	}

	for _, k := range m.spatial.QueryBox(area) {
		id, ok := k.Lot()
		if !ok {
			continue
		}
		lot := m.mustLot(id)

		hit := road.Points.DistToOBB(lot.Shape) < road.Width/2
		for _, inter := range ends {
			hit = hit || inter.Polygon.IntersectsOBB(lot.Shape)
		}
		if !hit {
			continue
		}

		m.lots.Remove(id)
		m.cleanupLot(lot)
	}
}

// cleanupLot detaches a removed lot from its road & the spatial map
func (m *Map) cleanupLot(lot *Lot) {
	if road, ok := m.roads.Get(lot.Parent); ok {
		for i, v := range road.Lots {
			if v == lot.ID {
				essentials.UnorderedDelete(&road.Lots, i)
				break
			}
		}
	}
	m.spatial.Remove(LotKindOf(lot.ID))
}

func (m *Map) mustLot(id LotID) *Lot {
	lot, ok := m.lots.Get(id)
	if !ok {
		panic(fmt.Sprintf("%v does not exist anymore, it was not removed from the spatial map", id))
	}
	return lot
}
