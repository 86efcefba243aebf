package geom

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// AABB is an axis aligned box
type AABB = r2.Rect

// Pt converts to an r2 point
func Pt(v Vec2) r2.Point {
	return r2.Point{X: v.X, Y: v.Y}
}

// FromPt converts an r2 point back
func FromPt(p r2.Point) Vec2 {
	return V(p.X, p.Y)
}

// NewAABB builds a box from its min / max corners
func NewAABB(min, max Vec2) AABB {
	return AABB{X: r1.Interval{Lo: min.X, Hi: max.X}, Y: r1.Interval{Lo: min.Y, Hi: max.Y}}
}

// Centered returns a box of the given half size around c
func Centered(c Vec2, half float64) AABB {
	return NewAABB(V(c.X-half, c.Y-half), V(c.X+half, c.Y+half))
}

// BBoxOf returns the smallest box holding all pts (empty if none)
func BBoxOf(pts ...Vec2) AABB {
	b := r2.EmptyRect()
	for _, p := range pts {
		b = b.AddPoint(Pt(p))
	}
	return b
}

// BoxMin returns the lower corner
func BoxMin(b AABB) Vec2 {
	return FromPt(b.Lo())
}

// BoxCorners returns the four corners counter clockwise from the lower left
func BoxCorners(b AABB) [4]Vec2 {
	return [4]Vec2{
		V(b.X.Lo, b.Y.Lo),
		V(b.X.Hi, b.Y.Lo),
		V(b.X.Hi, b.Y.Hi),
		V(b.X.Lo, b.Y.Hi),
	}
}
