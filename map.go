package roadgraph

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/voidshard/roadgraph/internal/arena"
	"github.com/voidshard/roadgraph/internal/geom"
	"github.com/voidshard/roadgraph/internal/logger"
	"github.com/voidshard/roadgraph/internal/metrics"
)

// Arenas of every entity kind, keyed by their IDs
type (
	Intersections = arena.Arena[IntersectionID, *Intersection]
	Roads         = arena.Arena[RoadID, *Road]
	Lanes         = arena.Arena[LaneID, *Lane]
	Lots          = arena.Arena[LotID, *Lot]
	Buildings     = arena.Arena[BuildingID, *Building]
)

// MapProject is a point resolved to whatever is on the map there
type MapProject struct {
	Pos  geom.Vec2
	Kind ProjectKind
}

// Map owns the road graph & everything derived from it.
//
// Mutations take the write lock & run to completion. Queries take the read
// lock. Accessors returning arenas or entities hand out internal state:
// treat it as read only and hold RLock while using it.
type Map struct {
	mu  sync.RWMutex
	cfg *Config
	log *slog.Logger

	intersections *Intersections
	roads         *Roads
	lanes         *Lanes
	lots          *Lots
	buildings     *Buildings
	parking       *ParkingSpots
	spatial       *SpatialMap
	trees         *Trees

	// dirt goes up on every change, never down
	dirt uint64
}

// New returns an empty map. A nil cfg uses DefaultConfig().
func New(cfg *Config) (*Map, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Map{
		cfg:           cfg,
		log:           logger.L(),
		intersections: arena.New[IntersectionID, *Intersection](),
		roads:         arena.New[RoadID, *Road](),
		lanes:         arena.New[LaneID, *Lane](),
		lots:          arena.New[LotID, *Lot](),
		buildings:     arena.New[BuildingID, *Building](),
		parking:       newParkingSpots(cfg.ParkingSpotLength),
		spatial:       NewSpatialMap(cfg.CellSize),
		trees:         NewTrees(cfg.TreeCellSize),
		dirt:          1,
	}, nil
}

// RLock holds off mutations while reading arenas directly
func (m *Map) RLock() { m.mu.RLock() }

// RUnlock releases RLock
func (m *Map) RUnlock() { m.mu.RUnlock() }

// Config the map was built with
func (m *Map) Config() Config {
	return *m.cfg
}

// Dirt is the change counter. Anything caching map state should refresh
// when it moves.
func (m *Map) Dirt() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirt
}

func (m *Map) bump() {
	m.dirt++
	metrics.Dirt.Set(float64(m.dirt))
}

// done records a finished public mutation
func (m *Map) done(op string) {
	metrics.Mutation(op)
	metrics.Entities.WithLabelValues("intersection").Set(float64(m.intersections.Len()))
	metrics.Entities.WithLabelValues("road").Set(float64(m.roads.Len()))
	metrics.Entities.WithLabelValues("lane").Set(float64(m.lanes.Len()))
	metrics.Entities.WithLabelValues("lot").Set(float64(m.lots.Len()))
	metrics.Entities.WithLabelValues("building").Set(float64(m.buildings.Len()))
	metrics.Entities.WithLabelValues("tree").Set(float64(m.trees.Len()))
}

// noop records a mutation ignored for a stale id
func (m *Map) noop(op string, attrs ...any) {
	metrics.Noop(op)
	m.log.Warn(op+"_noop", attrs...)
}

// AddIntersection places a lone intersection at pos
func (m *Map) AddIntersection(pos geom.Vec2) IntersectionID {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("add_intersection")

	return m.addIntersection(pos)
}

func (m *Map) addIntersection(pos geom.Vec2) IntersectionID {
	m.bump()
	inter := m.makeIntersection(pos)
	m.log.Info("add_intersection", "id", inter.ID, "x", pos.X, "y", pos.Y)
	return inter.ID
}

// Connect builds a road from src to dst. Returns false, changing nothing,
// if either intersection is stale, they are the same, or the pattern has
// no lanes.
func (m *Map) Connect(src, dst IntersectionID, pattern LanePattern, segment geom.SegmentKind) (RoadID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("connect")

	return m.connect(src, dst, pattern, segment)
}

func (m *Map) connect(srcID, dstID IntersectionID, pattern LanePattern, segment geom.SegmentKind) (RoadID, bool) {
	src, ok := m.intersections.Get(srcID)
	if !ok {
		m.noop("connect", "src", srcID, "reason", "stale src")
		return 0, false
	}
	dst, ok := m.intersections.Get(dstID)
	if !ok {
		m.noop("connect", "dst", dstID, "reason", "stale dst")
		return 0, false
	}
	if srcID == dstID {
		m.noop("connect", "src", srcID, "reason", "src is dst")
		return 0, false
	}
	if pattern.Len() == 0 {
		m.noop("connect", "src", srcID, "dst", dstID, "reason", "empty lane pattern")
		return 0, false
	}

	m.bump()
	road := m.makeRoad(src, dst, segment, pattern)
	m.log.Info("connect", "road", road.ID, "src", srcID, "dst", dstID, "lanes", pattern.Len(), "curved", segment.Curved)

	src.addRoad(road.ID)
	dst.addRoad(road.ID)

	m.invalidate(srcID)
	m.invalidate(dstID)

	m.removeIntersectingLots(road)
	m.generateLots(road)

	m.clearTreesAlong(road)
	return road.ID, true
}

// MakeConnection resolves both projections to intersections, splitting
// roads or adding intersections as needed, then connects them. With an
// elbow the road curves through it. Returns the destination intersection.
//
// Projections onto buildings or lots can't be connected; callers must
// turn them into ground first.
func (m *Map) MakeConnection(from, to MapProject, elbow *geom.Vec2, pattern LanePattern) IntersectionID {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("make_connection")

	segment := geom.Straight()
	if elbow != nil {
		segment = geom.FromElbow(from.Pos, to.Pos, *elbow)
	}

	fromID := m.resolveProject(from)

	// splitting for 'from' may have replaced the road 'to' pointed at
	if id, ok := to.Kind.Road(); ok && !m.roads.Contains(id) {
		to = m.reproject(to.Pos)
	}
	toID := m.resolveProject(to)

	m.connect(fromID, toID, pattern, segment)
	return toID
}

func (m *Map) resolveProject(p MapProject) IntersectionID {
	switch p.Kind.Kind {
	case KindGround:
		return m.addIntersection(p.Pos)
	case KindIntersection:
		return IntersectionID(p.Kind.ID)
	case KindRoad:
		return m.splitRoad(RoadID(p.Kind.ID), p.Pos)
	}
	panic(fmt.Sprintf("cannot connect to %v", p.Kind))
}

// reproject finds what's at pos now, as something a road can connect to
func (m *Map) reproject(pos geom.Vec2) MapProject {
	p := m.project(pos, m.cfg.ReprojectTolerance)
	switch p.Kind.Kind {
	case KindIntersection, KindRoad:
		return p
	}
	return MapProject{Pos: pos, Kind: Ground()}
}

// SplitRoad replaces a road with two roads meeting at a new intersection
// at pos. Curves are split so both halves follow the old curve.
// Panics if the road does not exist: callers must have just projected it.
func (m *Map) SplitRoad(id RoadID, pos geom.Vec2) IntersectionID {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("split_road")

	return m.splitRoad(id, pos)
}

func (m *Map) splitRoad(id RoadID, pos geom.Vec2) IntersectionID {
	m.log.Info("split_road", "road", id, "x", pos.X, "y", pos.Y)

	// both ends get a road straight back, so they're not culled as orphans
	r, ok := m.removeRoad(id, false)
	if !ok {
		panic(fmt.Sprintf("trying to split %v which does not exist", id))
	}
	mid := m.addIntersection(pos)

	if !r.Segment.Curved {
		m.connect(r.Src, mid, r.Pattern, geom.Straight())
		m.connect(mid, r.Dst, r.Pattern, geom.Straight())
		return mid
	}

	s := r.Segment.Spline(r.Points.First(), r.Points.Last())
	left, right := s.SplitAt(s.ProjectT(pos, 1.0))

	m.connect(r.Src, mid, r.Pattern, geom.Curved(left.FromDerivative, left.ToDerivative))
	m.connect(mid, r.Dst, r.Pattern, geom.Curved(right.FromDerivative, right.ToDerivative))
	return mid
}

// RemoveRoad removes a road with its lanes, parking & lots. Intersections
// left without roads are removed too.
func (m *Map) RemoveRoad(id RoadID) (*Road, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("remove_road")

	r, ok := m.removeRoad(id, true)
	if !ok {
		m.noop("remove_road", "road", id)
	}
	return r, ok
}

// removeRoad, if invalidateEnds is false the ends are left for the caller
// to reconnect & invalidate.
func (m *Map) removeRoad(id RoadID, invalidateEnds bool) (*Road, bool) {
	road, ok := m.roads.Remove(id)
	if !ok {
		return nil, false
	}
	m.bump()
	m.log.Info("remove_road", "road", id)

	m.spatial.Remove(RoadKind(id))

	for _, ref := range road.Lanes() {
		m.lanes.Remove(ref.ID)
		m.parking.RemoveSpots(ref.ID)
	}

	for _, lot := range road.Lots {
		m.lots.Remove(lot)
		m.spatial.Remove(LotKindOf(lot))
	}
	road.Lots = nil

	if inter, ok := m.intersections.Get(road.Src); ok {
		inter.removeRoad(id)
	}
	if inter, ok := m.intersections.Get(road.Dst); ok {
		inter.removeRoad(id)
	}

	if invalidateEnds {
		m.invalidate(road.Src)
		m.invalidate(road.Dst)
	}
	return road, true
}

// RemoveIntersection removes an intersection and every road touching it
func (m *Map) RemoveIntersection(id IntersectionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("remove_intersection")

	if !m.intersections.Contains(id) {
		m.noop("remove_intersection", "id", id)
		return
	}
	m.removeIntersection(id)
}

func (m *Map) removeIntersection(id IntersectionID) {
	inter, ok := m.intersections.Remove(id)
	if !ok {
		return
	}
	m.bump()
	m.log.Info("remove_intersection", "id", id, "roads", len(inter.Roads))

	for _, r := range append([]RoadID{}, inter.Roads...) {
		m.removeRoad(r, true)
	}
	m.spatial.Remove(InterKind(id))
}

// RemoveBuilding removes a building, false if it didn't exist
func (m *Map) RemoveBuilding(id BuildingID) (*Building, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("remove_building")

	b, ok := m.buildings.Remove(id)
	if !ok {
		m.noop("remove_building", "building", id)
		return nil, false
	}
	m.bump()
	m.spatial.Remove(BuildingKindOf(id))
	m.log.Info("remove_building", "building", id, "kind", b.Kind)
	return b, true
}

// BuildHouse turns a lot into a house of exactly the lot's shape
func (m *Map) BuildHouse(id LotID) (BuildingID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("build_house")

	lot, ok := m.lots.Remove(id)
	if !ok {
		m.noop("build_house", "lot", id)
		return 0, false
	}
	m.bump()
	m.cleanupLot(lot)

	b := m.makeBuilding(lot.Parent, lot.Shape, BuildingHouse, GenHouse)
	m.log.Info("build_house", "lot", id, "building", b, "road", lot.Parent)
	return b, true
}

// BuildSpecialBuilding places a building with the given footprint along a
// road, clearing any lots & trees under it. Panics if the road doesn't
// exist: callers must check first.
func (m *Map) BuildSpecialBuilding(road RoadID, footprint geom.OBB, kind BuildingKind, gen BuildingGen) BuildingID {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("build_special_building")

	if !m.roads.Contains(road) {
		panic(fmt.Sprintf("building special %s on %v which does not exist", kind, road))
	}
	m.bump()

	for _, k := range m.spatial.Query(footprint) {
		id, ok := k.Lot()
		if !ok {
			continue
		}
		lot := m.mustLot(id)
		if !lot.Shape.Intersects(footprint) {
			continue
		}
		m.lots.Remove(id)
		m.cleanupLot(lot)
	}

	m.trees.RemoveIn(footprint.BBox(), func(geom.Vec2) bool { return true })

	b := m.makeBuilding(road, footprint, kind, gen)
	m.log.Info("build_special_building", "building", b, "road", road, "kind", kind, "gen", gen)
	return b
}

// UpdateIntersection changes an intersection's policies and recomputes
// its traffic control & turns.
func (m *Map) UpdateIntersection(id IntersectionID, fn func(*IntersectionPolicy)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("update_intersection")

	inter, ok := m.intersections.Get(id)
	if !ok {
		m.noop("update_intersection", "id", id)
		return
	}

	fn(&inter.Policy)
	m.updateTrafficControl(inter)
	m.updateTurns(inter)
	m.bump()
	m.log.Info("update_intersection", "id", id, "light", inter.Policy.Light)
}

// SetLotKind tags a lot
func (m *Map) SetLotKind(id LotID, kind LotKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("set_lot_kind")

	lot, ok := m.lots.Get(id)
	if !ok {
		m.noop("set_lot_kind", "lot", id)
		return
	}
	lot.Kind = kind
	m.bump()
}

// Clear empties the map except for trees. Old ids stay stale.
func (m *Map) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("clear")

	m.intersections.Clear()
	m.roads.Clear()
	m.lanes.Clear()
	m.lots.Clear()
	m.buildings.Clear()
	m.parking.Clear()
	m.spatial.Clear()
	m.bump()
	m.log.Info("clear", "trees", m.trees.Len())
}

// GenerateTrees grows trees over the region wherever the map is empty,
// returns how many were added.
func (m *Map) GenerateTrees(region geom.AABB) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.done("generate_trees")

	n := m.generateTrees(region)
	if n > 0 {
		m.bump()
	}
	m.log.Info("generate_trees", "added", n, "total", m.trees.Len())
	return n
}

// invalidate recomputes everything derived around an intersection after
// something touching it changed. Orphaned intersections are removed.
func (m *Map) invalidate(id IntersectionID) {
	inter, ok := m.intersections.Get(id)
	if !ok {
		return
	}
	m.bump()
	m.log.Debug("invalidate", "id", id)

	if len(inter.Roads) == 0 {
		m.removeIntersection(id)
		return
	}

	m.updateInterfaceRadius(inter)

	for _, road := range m.roadsOf(inter) {
		other := m.mustIntersection(road.OtherEnd(id))
		m.updateInterfaceRadius(other)
		m.updateLanes(road)
		m.updatePolygon(other)
		m.spatial.Update(InterKind(other.ID), m.spatialBox(other))
	}

	m.updateTrafficControl(inter)
	m.updateTurns(inter)
	m.updatePolygon(inter)
	m.spatial.Update(InterKind(id), m.spatialBox(inter))
}

func (m *Map) mustIntersection(id IntersectionID) *Intersection {
	inter, ok := m.intersections.Get(id)
	if !ok {
		panic(fmt.Sprintf("%v does not exist anymore, it was not removed from the spatial map or a road", id))
	}
	return inter
}

func (m *Map) mustRoad(id RoadID) *Road {
	r, ok := m.roads.Get(id)
	if !ok {
		panic(fmt.Sprintf("%v does not exist anymore, it was not removed from the spatial map", id))
	}
	return r
}
