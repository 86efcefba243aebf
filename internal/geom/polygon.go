package geom

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

// A Polygon is a closed ring of points, the last point forms an edge with the first.
type Polygon struct {
	Points []Vec2
}

// NewPolygon: Creates and returns a new pointer to a Polygon
// composed of the passed in Points.
func NewPolygon(points []Vec2) *Polygon {
	return &Polygon{Points: points}
}

// StarPolygon orders points by angle around centre, which gives a simple ring
// for any point set that is star shaped from centre.
func StarPolygon(centre Vec2, points []Vec2) Polygon {
	pts := append([]Vec2{}, points...)
	sort.SliceStable(pts, func(a, b int) bool {
		return Angle(pts[a].Sub(centre)) < Angle(pts[b].Sub(centre))
	})
	return Polygon{Points: pts}
}

// BBox returns the highest & lowest x & y values from the Points in this polygon.
func (p Polygon) BBox() AABB {
	if len(p.Points) == 0 {
		return r2.EmptyRect()
	}
	return BBoxOf(p.Points...)
}

// IsClosed returns whether or not the polygon has an area at all
func (p Polygon) IsClosed() bool {
	return len(p.Points) >= 3
}

// Contains returns whether or not the current Polygon contains the passed in Point.
func (p Polygon) Contains(point Vec2) bool {
	if !p.IsClosed() {
		return false
	}

	start := len(p.Points) - 1
	end := 0

	contains := p.intersectsWithRaycast(point, p.Points[start], p.Points[end])

	for i := 1; i < len(p.Points); i++ {
		if p.intersectsWithRaycast(point, p.Points[i-1], p.Points[i]) {
			contains = !contains
		}
	}

	return contains
}

// intersectsWithRaycast returns if a ray cast from point towards +X crosses the
// edge drawn between start and end.
func (p Polygon) intersectsWithRaycast(point, start, end Vec2) bool {
	if (start.Y > point.Y) == (end.Y > point.Y) {
		return false
	}
	x := (end.X-start.X)*(point.Y-start.Y)/(end.Y-start.Y) + start.X
	return point.X < x
}

// IsClose returns if point is inside or within tolerance of an edge
func (p Polygon) IsClose(point Vec2, tolerance float64) bool {
	if p.Contains(point) {
		return true
	}
	return p.distToEdges(point) <= tolerance
}

// IntersectsOBB returns if the polygon and box overlap
func (p Polygon) IntersectsOBB(o OBB) bool {
	if !p.IsClosed() {
		return false
	}
	if !p.BBox().Intersects(o.BBox()) {
		return false
	}
	for _, v := range p.Points {
		if o.Contains(v) {
			return true
		}
	}
	for _, c := range o.Corners {
		if p.Contains(c) {
			return true
		}
	}
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a, b := p.Points[i], p.Points[(i+1)%n]
		for j := 0; j < 4; j++ {
			if SegmentsIntersect(a, b, o.Corners[j], o.Corners[(j+1)%4]) {
				return true
			}
		}
	}
	return false
}

// ApproxEqual compares two polygons point by point
func (p Polygon) ApproxEqual(other Polygon, eps float64) bool {
	if len(p.Points) != len(other.Points) {
		return false
	}
	for i := range p.Points {
		if p.Points[i].Dist(other.Points[i]) > eps {
			return false
		}
	}
	return true
}

func (p Polygon) distToEdges(point Vec2) float64 {
	best := math.Inf(1)
	n := len(p.Points)
	for i := 0; i < n; i++ {
		d := PointSegmentDist(p.Points[i], p.Points[(i+1)%n], point)
		if d < best {
			best = d
		}
	}
	return best
}
