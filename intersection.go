package roadgraph

import (
	"fmt"
	"math"
	"sort"

	"github.com/boljen/go-bitmap"

	"github.com/voidshard/roadgraph/internal/geom"
)

// IntersectionPolicy is the part of an intersection users may change
type IntersectionPolicy struct {
	Turn  TurnPolicy
	Light LightPolicy
}

// TurnKind is the kind of movement a Turn represents
type TurnKind string

const (
	TurnDriving   TurnKind = "driving"   // vehicle lane to vehicle lane
	TurnCrosswalk TurnKind = "crosswalk" // sidewalk to sidewalk across a road
)

// Turn is an allowed movement through an intersection
type Turn struct {
	From LaneID
	To   LaneID
	Kind TurnKind
}

// Intersection is a node of the graph.
type Intersection struct {
	ID     IntersectionID
	Pos    geom.Vec2
	Roads  []RoadID `json:",omitempty"`
	Policy IntersectionPolicy

	// derived
	Turns           []Turn `json:",omitempty"`
	Polygon         geom.Polygon
	InterfaceRadius float64

	// road index pairs (from * len(Roads) + to) with at least one turn
	turnMatrix bitmap.Bitmap
}

// AllowsTurn returns if any lane of road from may turn onto road to here
func (i *Intersection) AllowsTurn(from, to RoadID) bool {
	a, b := i.roadIndex(from), i.roadIndex(to)
	if a < 0 || b < 0 {
		return false
	}
	bit := a*len(i.Roads) + b
	if bit >= len(i.turnMatrix)*8 {
		return false
	}
	return i.turnMatrix.Get(bit)
}

// Neighbors returns the intersections at the far end of every road
func (i *Intersection) Neighbors(roads *Roads) []IntersectionID {
	out := []IntersectionID{}
	for _, id := range i.Roads {
		r, ok := roads.Get(id)
		if !ok {
			continue
		}
		out = append(out, r.OtherEnd(i.ID))
	}
	return out
}

func (i *Intersection) roadIndex(id RoadID) int {
	for n, r := range i.Roads {
		if r == id {
			return n
		}
	}
	return -1
}

func (i *Intersection) addRoad(id RoadID) {
	if i.roadIndex(id) < 0 {
		i.Roads = append(i.Roads, id)
	}
}

func (i *Intersection) removeRoad(id RoadID) {
	if n := i.roadIndex(id); n >= 0 {
		i.Roads = append(i.Roads[:n], i.Roads[n+1:]...)
	}
}

// makeIntersection inserts a lone intersection
func (m *Map) makeIntersection(pos geom.Vec2) *Intersection {
	id := m.intersections.InsertWith(func(id IntersectionID) *Intersection {
		return &Intersection{
			ID:     id,
			Pos:    pos,
			Roads:  []RoadID{},
			Policy: IntersectionPolicy{Turn: DefaultTurnPolicy(), Light: LightsAuto},
		}
	})
	inter, _ := m.intersections.Get(id)
	m.spatial.Update(InterKind(id), geom.Centered(pos, m.cfg.IntersectionMinBox))
	return inter
}

// roadsOf returns the live roads of an intersection, in list order
func (m *Map) roadsOf(inter *Intersection) []*Road {
	out := make([]*Road, 0, len(inter.Roads))
	for _, id := range inter.Roads {
		r, ok := m.roads.Get(id)
		if !ok {
			panic(fmt.Sprintf("%v lists %v which does not exist", inter.ID, id))
		}
		out = append(out, r)
	}
	return out
}

// updateInterfaceRadius works out, for every road, how far from the centre
// its edges stop overlapping those of its neighbours.
func (m *Map) updateInterfaceRadius(inter *Intersection) {
	roads := m.roadsOf(inter)
	inter.InterfaceRadius = 0

	for a, ra := range roads {
		da := ra.dirFrom(inter.ID)
		need := math.Max(m.cfg.MinInterface, ra.Width/2)

		for b, rb := range roads {
			if a == b {
				continue
			}
			angle := geom.AngleBetween(da, rb.dirFrom(inter.ID))
			if angle > math.Pi-1e-3 {
				continue // straight through
			}
			w := math.Max(ra.Width, rb.Width) / 2
			if angle < 1e-3 {
				need = math.Inf(1)
				continue
			}
			need = math.Max(need, w/math.Tan(angle/2))
		}

		need = math.Min(need, ra.Length()*m.cfg.MaxInterfaceRatio)
		ra.setInterface(inter.ID, need)
		inter.InterfaceRadius = math.Max(inter.InterfaceRadius, need)
	}
}

// updatePolygon outlines the intersection with the corners of every road
// edge at its interface.
func (m *Map) updatePolygon(inter *Intersection) {
	roads := m.roadsOf(inter)
	if len(roads) == 0 {
		inter.Polygon = geom.Polygon{}
		return
	}

	pts := make([]geom.Vec2, 0, 2*len(roads)+2)
	for _, r := range roads {
		p, dir := r.pointFrom(inter.ID, r.InterfaceAt(inter.ID))
		n := geom.Perp(dir).Scale(r.Width / 2)
		pts = append(pts, p.Add(n), p.Sub(n))
	}
	if len(roads) == 1 {
		n := geom.Perp(roads[0].dirFrom(inter.ID)).Scale(roads[0].Width / 2)
		pts = append(pts, inter.Pos.Add(n), inter.Pos.Sub(n))
	}

	inter.Polygon = geom.StarPolygon(inter.Pos, pts)
}

// spatialBox is the polygon box grown to at least the min box
func (m *Map) spatialBox(inter *Intersection) geom.AABB {
	b := geom.Centered(inter.Pos, m.cfg.IntersectionMinBox)
	if inter.Polygon.IsClosed() {
		b = b.Union(inter.Polygon.BBox())
	}
	return b
}

// updateTrafficControl sets the control of every lane arriving here
func (m *Map) updateTrafficControl(inter *Intersection) {
	roads := m.roadsOf(inter)
	policy := inter.Policy.Light.resolve(len(roads))

	set := func(r *Road, tc TrafficControl) {
		for _, ref := range r.IncomingLanesTo(inter.ID) {
			lane := m.mustLane(ref.ID)
			if ref.Kind.Vehicles() || ref.Kind == LaneRail {
				lane.Control = tc
			} else {
				lane.Control = TrafficControl{Kind: TrafficAlways}
			}
		}
	}

	switch policy {
	case LightsStopSigns:
		// the two widest roads keep priority
		order := make([]int, len(roads))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return roads[order[a]].Width > roads[order[b]].Width
		})
		for rank, i := range order {
			kind := TrafficStop
			if rank < 2 {
				kind = TrafficAlways
			}
			set(roads[i], TrafficControl{Kind: kind})
		}
	case LightsOn:
		phase := m.cfg.LightPhase
		for n, i := range m.byAngle(inter, roads) {
			set(roads[i], TrafficControl{
				Kind:        TrafficLight,
				Period:      2 * phase,
				GreenOffset: float64(n%2) * phase,
				GreenTime:   phase - m.cfg.LightAmber,
			})
		}
	default:
		for _, r := range roads {
			set(r, TrafficControl{Kind: TrafficAlways})
		}
	}
}

// byAngle returns road indexes sorted by the angle they leave the intersection
func (m *Map) byAngle(inter *Intersection, roads []*Road) []int {
	order := make([]int, len(roads))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return geom.Angle(roads[order[a]].dirFrom(inter.ID)) < geom.Angle(roads[order[b]].dirFrom(inter.ID))
	})
	return order
}

// updateTurns lists every allowed movement through the intersection
func (m *Map) updateTurns(inter *Intersection) {
	roads := m.roadsOf(inter)
	policy := inter.Policy.Turn
	n := len(roads)

	turns := []Turn{}
	matrix := bitmap.New(n * n)

	for a, ra := range roads {
		arrive := ra.dirFrom(inter.ID).Scale(-1)
		for b, rb := range roads {
			if a == b && !policy.BackToBack {
				continue
			}
			leave := rb.dirFrom(inter.ID)
			if a != b && !policy.LeftTurns && geom.Cross(arrive, leave) > 0.3 {
				continue
			}

			allowed := false
			for _, in := range ra.IncomingLanesTo(inter.ID) {
				for _, out := range rb.OutgoingLanesFrom(inter.ID) {
					if in.Kind != out.Kind || !(in.Kind.Vehicles() || in.Kind == LaneRail) {
						continue
					}
					turns = append(turns, Turn{From: in.ID, To: out.ID, Kind: TurnDriving})
					allowed = true
				}
			}
			if allowed {
				matrix.Set(a*n+b, true)
			}
		}
	}

	if policy.Crosswalks && n >= 2 {
		order := m.byAngle(inter, roads)
		for k := range order {
			if n == 2 && k == 1 {
				break // only one gap to cross between two roads
			}
			from := firstSidewalk(roads[order[k]])
			to := firstSidewalk(roads[order[(k+1)%n]])
			if from == 0 || to == 0 {
				continue
			}
			turns = append(turns, Turn{From: from, To: to, Kind: TurnCrosswalk})
		}
	}

	inter.Turns = turns
	inter.turnMatrix = matrix
}

func firstSidewalk(r *Road) LaneID {
	for _, ref := range r.Lanes() {
		if ref.Kind == LaneSidewalk {
			return ref.ID
		}
	}
	return 0
}
