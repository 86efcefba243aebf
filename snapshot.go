package roadgraph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/voidshard/roadgraph/internal/geom"
	"github.com/voidshard/roadgraph/internal/store"
)

// SnapshotVersion is the current snapshot format
const SnapshotVersion = 1

// ErrBadSnapshot is returned for snapshots that don't describe a
// consistent graph.
var ErrBadSnapshot = fmt.Errorf("invalid snapshot")

// Snapshot is the structural state of a Map. Derived geometry (lane
// points, polygons, interface radii, turns, parking spots) is not stored,
// it is rebuilt on load.
type Snapshot struct {
	ID      string
	Version int
	Dirt    uint64

	Generations SnapshotGenerations

	Intersections []IntersectionRecord `json:",omitempty"`
	Roads         []RoadRecord         `json:",omitempty"`
	Lots          []*Lot               `json:",omitempty"`
	Buildings     []*Building          `json:",omitempty"`
	Trees         []geom.Vec2          `json:",omitempty"`
}

// SnapshotGenerations of each arena, so removed ids stay stale after a load
type SnapshotGenerations struct {
	Intersections []uint32 `json:",omitempty"`
	Roads         []uint32 `json:",omitempty"`
	Lanes         []uint32 `json:",omitempty"`
	Lots          []uint32 `json:",omitempty"`
	Buildings     []uint32 `json:",omitempty"`
}

// IntersectionRecord is the stored part of an Intersection
type IntersectionRecord struct {
	ID     IntersectionID
	Pos    geom.Vec2
	Policy IntersectionPolicy
	Roads  []RoadID `json:",omitempty"`
}

// RoadRecord is the stored part of a Road
type RoadRecord struct {
	ID            RoadID
	Src           IntersectionID
	Dst           IntersectionID
	Segment       geom.SegmentKind
	Pattern       LanePattern
	LanesForward  []LaneRef `json:",omitempty"`
	LanesBackward []LaneRef `json:",omitempty"`
	Lots          []LotID   `json:",omitempty"`
}

// Snapshot captures the map
func (m *Map) Snapshot() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := &Snapshot{
		ID:      uuid.NewString(),
		Version: SnapshotVersion,
		Dirt:    m.dirt,
		Generations: SnapshotGenerations{
			Intersections: m.intersections.Generations(),
			Roads:         m.roads.Generations(),
			Lanes:         m.lanes.Generations(),
			Lots:          m.lots.Generations(),
			Buildings:     m.buildings.Generations(),
		},
		Trees: m.trees.Positions(),
	}

	m.intersections.Each(func(id IntersectionID, i *Intersection) {
		snap.Intersections = append(snap.Intersections, IntersectionRecord{
			ID:     id,
			Pos:    i.Pos,
			Policy: i.Policy,
			Roads:  append([]RoadID{}, i.Roads...),
		})
	})
	m.roads.Each(func(id RoadID, r *Road) {
		snap.Roads = append(snap.Roads, RoadRecord{
			ID:            id,
			Src:           r.Src,
			Dst:           r.Dst,
			Segment:       r.Segment,
			Pattern:       r.Pattern.clone(),
			LanesForward:  append([]LaneRef{}, r.LanesForward...),
			LanesBackward: append([]LaneRef{}, r.LanesBackward...),
			Lots:          append([]LotID{}, r.Lots...),
		})
	})
	m.lots.Each(func(_ LotID, l *Lot) {
		cp := *l
		snap.Lots = append(snap.Lots, &cp)
	})
	m.buildings.Each(func(_ BuildingID, b *Building) {
		cp := *b
		snap.Buildings = append(snap.Buildings, &cp)
	})

	return snap
}

// FromSnapshot rebuilds a map. Every id in the snapshot is kept.
func FromSnapshot(cfg *Config, snap *Snapshot) (*Map, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil", ErrBadSnapshot)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrBadSnapshot, snap.Version, SnapshotVersion)
	}

	m, err := New(cfg)
	if err != nil {
		return nil, err
	}

	m.intersections.Restore(snap.Generations.Intersections)
	m.roads.Restore(snap.Generations.Roads)
	m.lanes.Restore(snap.Generations.Lanes)
	m.lots.Restore(snap.Generations.Lots)
	m.buildings.Restore(snap.Generations.Buildings)

	for _, rec := range snap.Intersections {
		inter := &Intersection{
			ID:     rec.ID,
			Pos:    rec.Pos,
			Roads:  append([]RoadID{}, rec.Roads...),
			Policy: rec.Policy,
		}
		if err := m.intersections.InsertAt(rec.ID, inter); err != nil {
			return nil, errors.Wrapf(err, "restoring %v", rec.ID)
		}
	}

	for _, rec := range snap.Roads {
		if err := m.restoreRoad(rec); err != nil {
			return nil, err
		}
	}

	for _, lot := range snap.Lots {
		road, ok := m.roads.Get(lot.Parent)
		if !ok || !containsID(road.Lots, lot.ID) {
			return nil, fmt.Errorf("%w: %v is not listed by %v", ErrBadSnapshot, lot.ID, lot.Parent)
		}
		cp := *lot
		if err := m.lots.InsertAt(lot.ID, &cp); err != nil {
			return nil, errors.Wrapf(err, "restoring %v", lot.ID)
		}
		m.spatial.Update(LotKindOf(lot.ID), lot.Shape.BBox())
	}
	for _, road := range snap.Roads {
		for _, id := range road.Lots {
			if !m.lots.Contains(id) {
				return nil, fmt.Errorf("%w: %v lists missing %v", ErrBadSnapshot, road.ID, id)
			}
		}
	}

	for _, b := range snap.Buildings {
		cp := *b
		if err := m.buildings.InsertAt(b.ID, &cp); err != nil {
			return nil, errors.Wrapf(err, "restoring %v", b.ID)
		}
		m.spatial.Update(BuildingKindOf(b.ID), b.Footprint.BBox())
	}

	for _, p := range snap.Trees {
		m.trees.Add(p)
	}

	// rebuild everything derived
	for _, rec := range snap.Intersections {
		inter := m.mustIntersection(rec.ID)
		if len(inter.Roads) == 0 {
			m.spatial.Update(InterKind(rec.ID), m.spatialBox(inter))
			continue
		}
		m.invalidate(rec.ID)
	}

	m.dirt = snap.Dirt
	if m.dirt == 0 {
		m.dirt = 1
	}

	m.log.Info("from_snapshot", "snapshot", snap.ID, "intersections", m.intersections.Len(), "roads", m.roads.Len(), "lots", m.lots.Len(), "buildings", m.buildings.Len(), "trees", m.trees.Len())
	return m, nil
}

func (m *Map) restoreRoad(rec RoadRecord) error {
	src, ok := m.intersections.Get(rec.Src)
	if !ok || src.roadIndex(rec.ID) < 0 {
		return fmt.Errorf("%w: %v src %v does not list it", ErrBadSnapshot, rec.ID, rec.Src)
	}
	dst, ok := m.intersections.Get(rec.Dst)
	if !ok || dst.roadIndex(rec.ID) < 0 {
		return fmt.Errorf("%w: %v dst %v does not list it", ErrBadSnapshot, rec.ID, rec.Dst)
	}
	if len(rec.LanesForward) != len(rec.Pattern.Forward) || len(rec.LanesBackward) != len(rec.Pattern.Backward) {
		return fmt.Errorf("%w: %v lanes do not match its pattern", ErrBadSnapshot, rec.ID)
	}

	pattern := rec.Pattern.clone()
	road := &Road{
		ID:            rec.ID,
		Src:           rec.Src,
		Dst:           rec.Dst,
		Segment:       rec.Segment,
		Points:        rec.Segment.Points(src.Pos, dst.Pos, m.cfg.CurveDetail),
		Width:         pattern.Width(),
		Pattern:       pattern,
		LanesForward:  append([]LaneRef{}, rec.LanesForward...),
		LanesBackward: append([]LaneRef{}, rec.LanesBackward...),
		Lots:          append([]LotID{}, rec.Lots...),
	}
	if err := m.roads.InsertAt(rec.ID, road); err != nil {
		return errors.Wrapf(err, "restoring %v", rec.ID)
	}

	for i, ref := range road.LanesForward {
		if err := m.lanes.InsertAt(ref.ID, newLane(ref.ID, road, pattern.Forward[i], true)); err != nil {
			return errors.Wrapf(err, "restoring %v of %v", ref.ID, rec.ID)
		}
	}
	for i, ref := range road.LanesBackward {
		if err := m.lanes.InsertAt(ref.ID, newLane(ref.ID, road, pattern.Backward[i], false)); err != nil {
			return errors.Wrapf(err, "restoring %v of %v", ref.ID, rec.ID)
		}
	}

	m.layoutLanes(road)
	m.spatial.Update(RoadKind(rec.ID), road.BBox())
	return nil
}

// EncodeSnapshot writes a snapshot as JSON
func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	return data, errors.Wrap(err, "encoding snapshot")
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}
	return snap, nil
}

// Save snapshots the map into st under name
func (m *Map) Save(ctx context.Context, st store.Store, name string) error {
	data, err := EncodeSnapshot(m.Snapshot())
	if err != nil {
		return err
	}
	return errors.Wrapf(st.Save(ctx, name, data), "saving map %s", name)
}

// Load reads a map saved under name
func Load(ctx context.Context, cfg *Config, st store.Store, name string) (*Map, error) {
	data, err := st.Load(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "loading map %s", name)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(cfg, snap)
}
