package geom

import (
	"math"
)

// Polyline is an open chain of points
type Polyline []Vec2

// First point, zero if empty
func (p Polyline) First() Vec2 {
	if len(p) == 0 {
		return Vec2{}
	}
	return p[0]
}

// Last point, zero if empty
func (p Polyline) Last() Vec2 {
	if len(p) == 0 {
		return Vec2{}
	}
	return p[len(p)-1]
}

// Length sums every segment
func (p Polyline) Length() float64 {
	l := 0.0
	for i := 1; i < len(p); i++ {
		l += p[i-1].Dist(p[i])
	}
	return l
}

// BBox of all points
func (p Polyline) BBox() AABB {
	return BBoxOf(p...)
}

// Reverse returns a reversed copy
func (p Polyline) Reverse() Polyline {
	out := make(Polyline, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// Project returns the closest point on the line to v and how far along the
// line that point sits.
func (p Polyline) Project(v Vec2) (Vec2, float64) {
	if len(p) == 0 {
		return v, 0
	}
	if len(p) == 1 {
		return p[0], 0
	}

	best := p[0]
	bestD := math.Inf(1)
	bestAlong := 0.0
	along := 0.0
	for i := 1; i < len(p); i++ {
		c, t := ClosestOnSegment(p[i-1], p[i], v)
		seg := p[i-1].Dist(p[i])
		if d := Dist2(c, v); d < bestD {
			bestD = d
			best = c
			bestAlong = along + t*seg
		}
		along += seg
	}
	return best, bestAlong
}

// Dist2 squared distance from v to the line
func (p Polyline) Dist2(v Vec2) float64 {
	c, _ := p.Project(v)
	return Dist2(c, v)
}

// IsClose returns if v is within dist of the line
func (p Polyline) IsClose(v Vec2, dist float64) bool {
	return p.Dist2(v) <= dist*dist
}

// PointAlong returns the point d along the line (clamped) and the segment
// direction there.
func (p Polyline) PointAlong(d float64) (Vec2, Vec2) {
	if len(p) == 0 {
		return Vec2{}, V(1, 0)
	}
	if len(p) == 1 || d <= 0 {
		return p.First(), p.dirAt(1)
	}

	along := 0.0
	for i := 1; i < len(p); i++ {
		seg := p[i-1].Dist(p[i])
		if along+seg >= d && seg > 0 {
			return Lerp(p[i-1], p[i], (d-along)/seg), Dir(p[i-1], p[i])
		}
		along += seg
	}
	return p.Last(), p.dirAt(len(p) - 1)
}

// Cut returns the portion of the line between distances start and end
func (p Polyline) Cut(start, end float64) Polyline {
	if len(p) < 2 {
		return append(Polyline{}, p...)
	}
	if end < start {
		start, end = end, start
	}

	a, _ := p.PointAlong(start)
	out := Polyline{a}
	along := 0.0
	for i := 1; i < len(p); i++ {
		along += p[i-1].Dist(p[i])
		if along > start && along < end {
			out = append(out, p[i])
		}
	}
	b, _ := p.PointAlong(end)
	return append(out, b)
}

// Offset shifts the line sideways along the left normal by d
func (p Polyline) Offset(d float64) Polyline {
	if len(p) < 2 {
		return append(Polyline{}, p...)
	}

	out := make(Polyline, len(p))
	for i := range p {
		var n Vec2
		switch {
		case i == 0:
			n = Perp(Dir(p[0], p[1]))
		case i == len(p)-1:
			n = Perp(Dir(p[i-1], p[i]))
		default:
			n = Perp(Dir(p[i-1], p[i])).Add(Perp(Dir(p[i], p[i+1])))
			if n.Norm() == 0 {
				n = Perp(Dir(p[i-1], p[i]))
			} else {
				n = n.Normalize()
			}
		}
		out[i] = p[i].Add(n.Scale(d))
	}
	return out
}

// DistToOBB is the distance from the line to the box, zero if they touch
func (p Polyline) DistToOBB(o OBB) float64 {
	if len(p) == 1 {
		return o.DistToSegment(p[0], p[0])
	}
	best := math.Inf(1)
	for i := 1; i < len(p); i++ {
		if d := o.DistToSegment(p[i-1], p[i]); d < best {
			best = d
		}
	}
	return best
}

// ApproxEqual compares two lines point by point
func (p Polyline) ApproxEqual(other Polyline, eps float64) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i].Dist(other[i]) > eps {
			return false
		}
	}
	return true
}

func (p Polyline) dirAt(i int) Vec2 {
	if len(p) < 2 {
		return V(1, 0)
	}
	if i < 1 {
		i = 1
	}
	return Dir(p[i-1], p[i])
}
