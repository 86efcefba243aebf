package roadgraph

import (
	"fmt"

	"github.com/voidshard/roadgraph/internal/geom"
)

// Road is an edge of the graph between two intersections.
type Road struct {
	ID  RoadID
	Src IntersectionID
	Dst IntersectionID

	// Segment is the shape between Src & Dst, Points its sampled centre line
	Segment geom.SegmentKind
	Points  geom.Polyline

	Width   float64
	Pattern LanePattern

	// lanes, each ordered from the centre out to the curb
	LanesForward  []LaneRef `json:",omitempty"`
	LanesBackward []LaneRef `json:",omitempty"`

	// Lots along the road frontage
	Lots []LotID `json:",omitempty"`

	// how far from each end the intersection takes over
	SrcInterface float64
	DstInterface float64
}

// Length of the centre line
func (r *Road) Length() float64 {
	return r.Points.Length()
}

// OtherEnd returns the intersection at the opposite end to id
func (r *Road) OtherEnd(id IntersectionID) IntersectionID {
	if id == r.Src {
		return r.Dst
	}
	return r.Src
}

// OutgoingLanesFrom returns the lanes leaving intersection id
func (r *Road) OutgoingLanesFrom(id IntersectionID) []LaneRef {
	switch id {
	case r.Src:
		return r.LanesForward
	case r.Dst:
		return r.LanesBackward
	}
	return nil
}

// IncomingLanesTo returns the lanes arriving at intersection id
func (r *Road) IncomingLanesTo(id IntersectionID) []LaneRef {
	switch id {
	case r.Dst:
		return r.LanesForward
	case r.Src:
		return r.LanesBackward
	}
	return nil
}

// Lanes returns every lane, backward lanes first
func (r *Road) Lanes() []LaneRef {
	out := make([]LaneRef, 0, len(r.LanesForward)+len(r.LanesBackward))
	out = append(out, r.LanesBackward...)
	return append(out, r.LanesForward...)
}

// BBox covers the full width of the road
func (r *Road) BBox() geom.AABB {
	return r.Points.BBox().ExpandedByMargin(r.Width / 2)
}

// InterfaceAt returns the interface radius at intersection id
func (r *Road) InterfaceAt(id IntersectionID) float64 {
	if id == r.Src {
		return r.SrcInterface
	}
	return r.DstInterface
}

func (r *Road) setInterface(id IntersectionID, v float64) {
	if id == r.Src {
		r.SrcInterface = v
	}
	if id == r.Dst {
		r.DstInterface = v
	}
}

// pointFrom returns the centre line point d along the road starting from
// intersection id, and the direction leading away from id there.
func (r *Road) pointFrom(id IntersectionID, d float64) (geom.Vec2, geom.Vec2) {
	if id == r.Src {
		return r.Points.PointAlong(d)
	}
	return r.Points.Reverse().PointAlong(d)
}

// dirFrom is the direction the road leaves intersection id
func (r *Road) dirFrom(id IntersectionID) geom.Vec2 {
	_, dir := r.pointFrom(id, 0)
	return dir
}

// makeRoad inserts a road with its lanes. Geometry that depends on the
// intersections (interfaces, lane points) is filled in by invalidate.
func (m *Map) makeRoad(src, dst *Intersection, segment geom.SegmentKind, pattern LanePattern) *Road {
	pattern = pattern.clone()
	id := m.roads.InsertWith(func(id RoadID) *Road {
		return &Road{
			ID:      id,
			Src:     src.ID,
			Dst:     dst.ID,
			Segment: segment,
			Points:  segment.Points(src.Pos, dst.Pos, m.cfg.CurveDetail),
			Width:   pattern.Width(),
			Pattern: pattern,
		}
	})
	road, _ := m.roads.Get(id)

	for _, spec := range pattern.Forward {
		lid := m.lanes.InsertWith(func(lid LaneID) *Lane { return newLane(lid, road, spec, true) })
		road.LanesForward = append(road.LanesForward, LaneRef{ID: lid, Kind: spec.Kind})
	}
	for _, spec := range pattern.Backward {
		lid := m.lanes.InsertWith(func(lid LaneID) *Lane { return newLane(lid, road, spec, false) })
		road.LanesBackward = append(road.LanesBackward, LaneRef{ID: lid, Kind: spec.Kind})
	}

	m.layoutLanes(road)
	m.spatial.Update(RoadKind(id), road.BBox())
	return road
}

func newLane(id LaneID, road *Road, spec LaneSpec, forward bool) *Lane {
	l := &Lane{ID: id, Parent: road.ID, Kind: spec.Kind, Width: spec.Width, Src: road.Src, Dst: road.Dst}
	if !forward {
		l.Src, l.Dst = road.Dst, road.Src
	}
	l.Control = TrafficControl{Kind: TrafficAlways}
	return l
}

// layoutLanes sets lane offsets. From the left edge: backward lanes curb
// first, then forward lanes centre first.
func (m *Map) layoutLanes(road *Road) {
	edge := road.Width / 2
	place := func(ref LaneRef) {
		lane := m.mustLane(ref.ID)
		lane.Offset = edge - lane.Width/2
		edge -= lane.Width
	}
	for i := len(road.LanesBackward) - 1; i >= 0; i-- {
		place(road.LanesBackward[i])
	}
	for _, ref := range road.LanesForward {
		place(ref)
	}
}

// updateLanes recomputes lane points from the interface radii, parking
// spots are only rebuilt if their lane moved.
func (m *Map) updateLanes(road *Road) {
	length := road.Length()
	start := road.SrcInterface
	end := length - road.DstInterface
	if end < start {
		start, end = length/2, length/2
	}
	centre := road.Points.Cut(start, end)

	update := func(ref LaneRef, forward bool) {
		lane := m.mustLane(ref.ID)
		pts := centre.Offset(lane.Offset)
		if !forward {
			pts = pts.Reverse()
		}
		if lane.Points.ApproxEqual(pts, 1e-9) {
			return
		}
		lane.Points = pts
		if lane.Kind == LaneParking {
			m.parking.generate(lane)
		}
	}
	for _, ref := range road.LanesForward {
		update(ref, true)
	}
	for _, ref := range road.LanesBackward {
		update(ref, false)
	}
}

func (m *Map) mustLane(id LaneID) *Lane {
	lane, ok := m.lanes.Get(id)
	if !ok {
		panic(fmt.Sprintf("road lists %v which does not exist", id))
	}
	return lane
}
