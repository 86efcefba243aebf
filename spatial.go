package roadgraph

import (
	"math"
	"sort"

	"github.com/unixpickle/essentials"

	"github.com/voidshard/roadgraph/internal/geom"
)

type cellKey struct {
	X, Y int
}

type spatialEntry struct {
	bbox  geom.AABB
	cells []cellKey
}

// SpatialMap indexes the bounding box of every intersection, road, building
// and lot on a uniform grid. Entries are kept in sync with the map arenas on
// every mutation.
type SpatialMap struct {
	cellSize float64
	cells    map[cellKey][]ProjectKind
	entries  map[ProjectKind]*spatialEntry
}

// NewSpatialMap returns an empty index with the given grid cell size
func NewSpatialMap(cellSize float64) *SpatialMap {
	if cellSize <= 0 {
		cellSize = DefaultConfig().CellSize
	}
	return &SpatialMap{
		cellSize: cellSize,
		cells:    map[cellKey][]ProjectKind{},
		entries:  map[ProjectKind]*spatialEntry{},
	}
}

// Len is the number of entries
func (s *SpatialMap) Len() int {
	return len(s.entries)
}

// Contains returns if k has an entry
func (s *SpatialMap) Contains(k ProjectKind) bool {
	_, ok := s.entries[k]
	return ok
}

// BBox returns the box stored for k
func (s *SpatialMap) BBox(k ProjectKind) (geom.AABB, bool) {
	e, ok := s.entries[k]
	if !ok {
		return geom.AABB{}, false
	}
	return e.bbox, true
}

// Update inserts or moves k to bbox
func (s *SpatialMap) Update(k ProjectKind, bbox geom.AABB) {
	e, ok := s.entries[k]
	if ok {
		s.unlink(k, e)
	} else {
		e = &spatialEntry{}
		s.entries[k] = e
	}

	e.bbox = bbox
	e.cells = s.cellsFor(bbox)
	for _, c := range e.cells {
		s.cells[c] = append(s.cells[c], k)
	}
}

// Remove drops k, returns if there was anything to drop
func (s *SpatialMap) Remove(k ProjectKind) bool {
	e, ok := s.entries[k]
	if !ok {
		return false
	}
	s.unlink(k, e)
	delete(s.entries, k)
	return true
}

// Clear drops everything
func (s *SpatialMap) Clear() {
	s.cells = map[cellKey][]ProjectKind{}
	s.entries = map[ProjectKind]*spatialEntry{}
}

// Query returns every entry whose box touches shape, ordered by kind then id.
func (s *SpatialMap) Query(shape Shape) []ProjectKind {
	seen := map[ProjectKind]bool{}
	out := []ProjectKind{}

	for _, c := range s.occupiedCells(shape.BBox()) {
		for _, k := range s.cells[c] {
			if seen[k] {
				continue
			}
			seen[k] = true
			if shape.IntersectsAABB(s.entries[k].bbox) {
				out = append(out, k)
			}
		}
	}

	sortKinds(out)
	return out
}

// QueryBox is Query with an axis aligned box
func (s *SpatialMap) QueryBox(b geom.AABB) []ProjectKind {
	return s.Query(Box{b})
}

// QueryAround returns every entry whose box is within radius of p
func (s *SpatialMap) QueryAround(p geom.Vec2, radius float64) []ProjectKind {
	return s.Query(Circle{Center: p, Radius: radius})
}

// Each calls fn for every entry, ordered by kind then id
func (s *SpatialMap) Each(fn func(k ProjectKind, bbox geom.AABB)) {
	keys := make([]ProjectKind, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sortKinds(keys)
	for _, k := range keys {
		fn(k, s.entries[k].bbox)
	}
}

// Bounds is the union of every entry box
func (s *SpatialMap) Bounds() geom.AABB {
	b := geom.BBoxOf()
	for _, e := range s.entries {
		if !e.bbox.IsEmpty() {
			b = b.Union(e.bbox)
		}
	}
	return b
}

func (s *SpatialMap) unlink(k ProjectKind, e *spatialEntry) {
	for _, c := range e.cells {
		bucket := s.cells[c]
		for i, v := range bucket {
			if v == k {
				essentials.UnorderedDelete(&bucket, i)
				break
			}
		}
		if len(bucket) == 0 {
			delete(s.cells, c)
		} else {
			s.cells[c] = bucket
		}
	}
	e.cells = nil
}

// cellRange returns the grid cells a box spans, in cell units. The range
// is kept as floats so huge boxes can't overflow.
func (s *SpatialMap) cellRange(b geom.AABB) (x0, x1, y0, y1 float64) {
	return math.Floor(b.X.Lo / s.cellSize), math.Floor(b.X.Hi / s.cellSize),
		math.Floor(b.Y.Lo / s.cellSize), math.Floor(b.Y.Hi / s.cellSize)
}

// cellsFor returns every grid cell the box overlaps
func (s *SpatialMap) cellsFor(b geom.AABB) []cellKey {
	if b.IsEmpty() {
		return nil
	}
	x0, x1, y0, y1 := s.cellRange(b)

	out := make([]cellKey, 0, int((x1-x0+1)*(y1-y0+1)))
	for x := int(x0); x <= int(x1); x++ {
		for y := int(y0); y <= int(y1); y++ {
			out = append(out, cellKey{x, y})
		}
	}
	return out
}

// occupiedCells returns the non empty grid cells the box overlaps. Boxes
// spanning more cells than are occupied walk the occupied cells instead.
func (s *SpatialMap) occupiedCells(b geom.AABB) []cellKey {
	if b.IsEmpty() || len(s.cells) == 0 {
		return nil
	}
	x0, x1, y0, y1 := s.cellRange(b)
	if (x1-x0+1)*(y1-y0+1) <= float64(len(s.cells)) {
		return s.cellsFor(b)
	}

	out := []cellKey{}
	for c := range s.cells {
		x, y := float64(c.X), float64(c.Y)
		if x >= x0 && x <= x1 && y >= y0 && y <= y1 {
			out = append(out, c)
		}
	}
	return out
}

func sortKinds(in []ProjectKind) {
	sort.Slice(in, func(a, b int) bool {
		if in[a].Kind != in[b].Kind {
			return in[a].Kind < in[b].Kind
		}
		return in[a].ID < in[b].ID
	})
}
