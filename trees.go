package roadgraph

import (
	"image"
	"math"
	"sort"

	"github.com/unixpickle/essentials"

	"github.com/voidshard/roadgraph/internal/geom"
	"github.com/voidshard/roadgraph/internal/line"
	"github.com/voidshard/roadgraph/internal/scatter"
)

// maxTreeAttempts bounds a single GenerateTrees call
const maxTreeAttempts = 200000

// Trees is the procedural tree layer, bucketed on a grid.
type Trees struct {
	cellSize float64
	cells    map[image.Point][]geom.Vec2
	count    int
}

// NewTrees returns an empty tree layer
func NewTrees(cellSize float64) *Trees {
	if cellSize <= 0 {
		cellSize = DefaultConfig().TreeCellSize
	}
	return &Trees{cellSize: cellSize, cells: map[image.Point][]geom.Vec2{}}
}

// Len is the number of trees
func (t *Trees) Len() int {
	return t.count
}

// Add a tree
func (t *Trees) Add(p geom.Vec2) {
	c := t.cell(p)
	t.cells[c] = append(t.cells[c], p)
	t.count++
}

// Positions of every tree, ordered by cell
func (t *Trees) Positions() []geom.Vec2 {
	keys := make([]image.Point, 0, len(t.cells))
	for k := range t.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].X != keys[b].X {
			return keys[a].X < keys[b].X
		}
		return keys[a].Y < keys[b].Y
	})

	out := make([]geom.Vec2, 0, t.count)
	for _, k := range keys {
		out = append(out, t.cells[k]...)
	}
	return out
}

// In returns the trees inside the box
func (t *Trees) In(b geom.AABB) []geom.Vec2 {
	out := []geom.Vec2{}
	for _, c := range t.cellsIn(b) {
		for _, p := range t.cells[c] {
			if b.ContainsPoint(geom.Pt(p)) {
				out = append(out, p)
			}
		}
	}
	return out
}

// RemoveIn removes trees inside the box for which remove returns true
func (t *Trees) RemoveIn(b geom.AABB, remove func(geom.Vec2) bool) int {
	return t.removeCells(t.cellsIn(b), func(p geom.Vec2) bool {
		return b.ContainsPoint(geom.Pt(p)) && remove(p)
	})
}

// RemoveAlong removes trees within reach of the line for which remove
// returns true. Only cells the line passes near are visited.
func (t *Trees) RemoveAlong(pl geom.Polyline, reach float64, remove func(geom.Vec2) bool) int {
	r := int(math.Ceil(reach / t.cellSize))
	seen := map[image.Point]bool{}
	cells := []image.Point{}
	for i := 1; i < len(pl); i++ {
		for _, c := range line.Thick(t.cell(pl[i-1]), t.cell(pl[i]), r) {
			if !seen[c] {
				seen[c] = true
				cells = append(cells, c)
			}
		}
	}
	return t.removeCells(cells, remove)
}

// Clear drops every tree
func (t *Trees) Clear() {
	t.cells = map[image.Point][]geom.Vec2{}
	t.count = 0
}

func (t *Trees) removeCells(cells []image.Point, remove func(geom.Vec2) bool) int {
	removed := 0
	for _, c := range cells {
		bucket := t.cells[c]
		for i := len(bucket) - 1; i >= 0; i-- {
			if remove(bucket[i]) {
				essentials.UnorderedDelete(&bucket, i)
				removed++
			}
		}
		if len(bucket) == 0 {
			delete(t.cells, c)
		} else {
			t.cells[c] = bucket
		}
	}
	t.count -= removed
	return removed
}

func (t *Trees) cell(p geom.Vec2) image.Point {
	return image.Pt(int(math.Floor(p.X/t.cellSize)), int(math.Floor(p.Y/t.cellSize)))
}

// cellsIn returns the occupied cells overlapping b. Boxes spanning more
// cells than are occupied walk the occupied cells instead.
func (t *Trees) cellsIn(b geom.AABB) []image.Point {
	if b.IsEmpty() || len(t.cells) == 0 {
		return nil
	}
	x0, x1 := math.Floor(b.X.Lo/t.cellSize), math.Floor(b.X.Hi/t.cellSize)
	y0, y1 := math.Floor(b.Y.Lo/t.cellSize), math.Floor(b.Y.Hi/t.cellSize)

	out := []image.Point{}
	if (x1-x0+1)*(y1-y0+1) > float64(len(t.cells)) {
		for c := range t.cells {
			x, y := float64(c.X), float64(c.Y)
			if x >= x0 && x <= x1 && y >= y0 && y <= y1 {
				out = append(out, c)
			}
		}
		return out
	}

	for x := int(x0); x <= int(x1); x++ {
		for y := int(y0); y <= int(y1); y++ {
			if _, ok := t.cells[image.Pt(x, y)]; ok {
				out = append(out, image.Pt(x, y))
			}
		}
	}
	return out
}

// clearTreesAlong removes trees near a new road. The margin is shaved by a
// hash of each tree position so the forest edge looks ragged.
func (m *Map) clearTreesAlong(road *Road) int {
	d := road.Width + m.cfg.TreeClearMargin
	return m.trees.RemoveAlong(road.Points, d, func(p geom.Vec2) bool {
		rd := geom.Rand3(p.X, p.Y, 391) * m.cfg.TreeJitter
		return road.Points.IsClose(p, d-rd)
	})
}

// treeFree returns if a tree may grow at p
func (m *Map) treeFree(p geom.Vec2) bool {
	const clearance = 2.0

	for _, k := range m.spatial.QueryAround(p, clearance) {
		switch k.Kind {
		case KindRoad:
			r := m.mustRoad(RoadID(k.ID))
			if r.Points.IsClose(p, r.Width/2+clearance) {
				return false
			}
		case KindIntersection:
			if m.mustIntersection(IntersectionID(k.ID)).Polygon.IsClose(p, clearance) {
				return false
			}
		case KindBuilding:
			if m.mustBuilding(BuildingID(k.ID)).Footprint.IsClose(p, clearance) {
				return false
			}
		case KindLot:
			if m.mustLot(LotID(k.ID)).Shape.IsClose(p, clearance) {
				return false
			}
		}
	}
	return true
}

// generateTrees scatters trees over region, seeded from the region itself
// so the same request always grows the same forest.
func (m *Map) generateTrees(region geom.AABB) int {
	if region.IsEmpty() {
		return 0
	}

	spacing := m.cfg.TreeSpacing
	sc := scatter.New(region)
	sc.SetSeed(int64(geom.Hash64(region.X.Lo, region.Y.Lo, region.X.Hi, region.Y.Hi)))
	sc.MinDistance(spacing)
	sc.Avoid(m.trees.In(region.ExpandedByMargin(spacing)), spacing)
	sc.SetCandidateFilters(m.treeFree)

	step := math.Max(spacing, 1)
	area := (region.X.Hi - region.X.Lo) * (region.Y.Hi - region.Y.Lo)
	attempts := int(math.Min(2*area/(step*step), maxTreeAttempts))
	if attempts < 1 {
		attempts = 1
	}

	added := sc.Fill(attempts)
	for _, p := range added {
		m.trees.Add(p)
	}
	return len(added)
}
