package geom

import (
	"math"
)

// OBB is an oriented box given by its corners in counter clockwise order
type OBB struct {
	Corners [4]Vec2
}

// NewOBB builds a box centred on c. axis is the direction of the width,
// height runs along the left normal of axis.
func NewOBB(c, axis Vec2, width, height float64) OBB {
	if axis.Norm() == 0 {
		axis = V(1, 0)
	}
	a := axis.Normalize().Scale(width / 2)
	n := Perp(axis.Normalize()).Scale(height / 2)

	return OBB{Corners: [4]Vec2{
		c.Sub(a).Sub(n),
		c.Add(a).Sub(n),
		c.Add(a).Add(n),
		c.Sub(a).Add(n),
	}}
}

// OBBFromAABB converts an axis aligned box
func OBBFromAABB(b AABB) OBB {
	return OBB{Corners: BoxCorners(b)}
}

// Center of the box
func (o OBB) Center() Vec2 {
	return o.Corners[0].Mid(o.Corners[2])
}

// Axis is the unit direction of the first edge
func (o OBB) Axis() Vec2 {
	return Dir(o.Corners[0], o.Corners[1])
}

// Width is the length of the first edge
func (o OBB) Width() float64 {
	return o.Corners[0].Dist(o.Corners[1])
}

// Height is the length of the second edge
func (o OBB) Height() float64 {
	return o.Corners[1].Dist(o.Corners[2])
}

// BBox returns the enclosing axis aligned box
func (o OBB) BBox() AABB {
	return BBoxOf(o.Corners[:]...)
}

// Polygon returns the box as a polygon
func (o OBB) Polygon() Polygon {
	return Polygon{Points: append([]Vec2{}, o.Corners[:]...)}
}

// Contains returns if p is inside or on the box
func (o OBB) Contains(p Vec2) bool {
	for i := 0; i < 4; i++ {
		a, b := o.Corners[i], o.Corners[(i+1)%4]
		if Cross(b.Sub(a), p.Sub(a)) < 0 {
			return false
		}
	}
	return true
}

// IsClose returns if p is within tolerance of the box
func (o OBB) IsClose(p Vec2, tolerance float64) bool {
	if o.Contains(p) {
		return true
	}
	for i := 0; i < 4; i++ {
		if PointSegmentDist(o.Corners[i], o.Corners[(i+1)%4], p) <= tolerance {
			return true
		}
	}
	return false
}

// Intersects runs a separating axis test against another box
func (o OBB) Intersects(other OBB) bool {
	return !separated(o.Corners, other.Corners) && !separated(other.Corners, o.Corners)
}

// IntersectsAABB tests against an axis aligned box
func (o OBB) IntersectsAABB(b AABB) bool {
	if !o.BBox().Intersects(b) {
		return false
	}
	return o.Intersects(OBBFromAABB(b))
}

// DistToSegment is the distance from segment ab to the box, zero if they touch
func (o OBB) DistToSegment(a, b Vec2) float64 {
	if o.Contains(a) || o.Contains(b) {
		return 0
	}
	best := math.Inf(1)
	for i := 0; i < 4; i++ {
		d := SegmentDist(a, b, o.Corners[i], o.Corners[(i+1)%4])
		if d < best {
			best = d
		}
	}
	return best
}

// Expand grows every side by margin
func (o OBB) Expand(margin float64) OBB {
	return NewOBB(o.Center(), o.Axis(), o.Width()+2*margin, o.Height()+2*margin)
}

// separated returns if an edge normal of a splits a from b
func separated(a, b [4]Vec2) bool {
	for i := 0; i < 4; i++ {
		edge := a[(i+1)%4].Sub(a[i])
		axis := Perp(edge)

		amin, amax := project(a, axis)
		bmin, bmax := project(b, axis)
		if amax < bmin || bmax < amin {
			return true
		}
	}
	return false
}

func project(pts [4]Vec2, axis Vec2) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
