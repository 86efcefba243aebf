// Package geom holds the 2D primitives roads, lots and the spatial index are
// built from. Vectors are model2d coordinates, boxes are r2 rectangles.
package geom

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// Vec2 is a point or direction in map space
type Vec2 = model2d.Coord

// V is shorthand for a Vec2
func V(x, y float64) Vec2 {
	return model2d.Coord{X: x, Y: y}
}

// Perp returns v rotated a quarter turn counter clockwise (the left normal)
func Perp(v Vec2) Vec2 {
	return V(-v.Y, v.X)
}

// Cross is the z component of the 3d cross product
func Cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Lerp interpolates between a and b
func Lerp(a, b Vec2, t float64) Vec2 {
	return a.Add(b.Sub(a).Scale(t))
}

// Dist2 squared distance between a, b
func Dist2(a, b Vec2) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Angle of v from the +X axis in (-pi, pi]
func Angle(v Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleBetween returns the unsigned angle between two directions in [0, pi]
func AngleBetween(a, b Vec2) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	c := a.Dot(b) / (na * nb)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// Dir returns the unit direction from a to b, zero if they coincide
func Dir(a, b Vec2) Vec2 {
	d := b.Sub(a)
	if d.Norm() == 0 {
		return V(0, 0)
	}
	return d.Normalize()
}

// ClosestOnSegment projects p onto segment ab
func ClosestOnSegment(a, b, p Vec2) (Vec2, float64) {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t)), t
}

// PointSegmentDist distance from p to segment ab
func PointSegmentDist(a, b, p Vec2) float64 {
	c, _ := ClosestOnSegment(a, b, p)
	return c.Dist(p)
}

// SegmentsIntersect returns if segments ab and cd touch
func SegmentsIntersect(a, b, c, d Vec2) bool {
	d1 := Cross(b.Sub(a), c.Sub(a))
	d2 := Cross(b.Sub(a), d.Sub(a))
	d3 := Cross(d.Sub(c), a.Sub(c))
	d4 := Cross(d.Sub(c), b.Sub(c))

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// colinear / touching cases
	return (d1 == 0 && onSegment(a, b, c)) ||
		(d2 == 0 && onSegment(a, b, d)) ||
		(d3 == 0 && onSegment(c, d, a)) ||
		(d4 == 0 && onSegment(c, d, b))
}

// SegmentDist is the shortest distance between segments ab and cd
func SegmentDist(a, b, c, d Vec2) float64 {
	if SegmentsIntersect(a, b, c, d) {
		return 0
	}
	return math.Min(
		math.Min(PointSegmentDist(a, b, c), PointSegmentDist(a, b, d)),
		math.Min(PointSegmentDist(c, d, a), PointSegmentDist(c, d, b)),
	)
}

// onSegment assumes p is colinear with ab
func onSegment(a, b, p Vec2) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
