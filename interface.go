package roadgraph

import (
	"math"

	"github.com/voidshard/roadgraph/internal/geom"
)

// Shape is anything the spatial map can be queried with.
// We only have two questions;
// - what box holds you? (used to pick grid cells)
// - do you touch this box? (used to filter entries in those cells)
type Shape interface {
	BBox() geom.AABB
	IntersectsAABB(b geom.AABB) bool
}

// Box is an axis aligned box as a Shape
type Box struct {
	geom.AABB
}

// BBox returns the box itself
func (b Box) BBox() geom.AABB {
	return b.AABB
}

// IntersectsAABB returns if the boxes overlap (touching counts)
func (b Box) IntersectsAABB(o geom.AABB) bool {
	return b.AABB.Intersects(o)
}

// Circle is a disc as a Shape
type Circle struct {
	Center geom.Vec2
	Radius float64
}

// BBox of the disc
func (c Circle) BBox() geom.AABB {
	return geom.Centered(c.Center, c.Radius)
}

// IntersectsAABB returns if the disc touches the box
func (c Circle) IntersectsAABB(b geom.AABB) bool {
	if b.IsEmpty() {
		return false
	}
	dx := math.Max(0, math.Max(b.X.Lo-c.Center.X, c.Center.X-b.X.Hi))
	dy := math.Max(0, math.Max(b.Y.Lo-c.Center.Y, c.Center.Y-b.Y.Hi))
	return dx*dx+dy*dy <= c.Radius*c.Radius
}
