package geom

import (
	"math"
)

// Spline is a cubic hermite curve given by its end points and end derivatives.
// As a bezier its control points are From, From+FD/3, To-TD/3, To.
type Spline struct {
	From           Vec2
	To             Vec2
	FromDerivative Vec2
	ToDerivative   Vec2
}

func (s Spline) controls() (Vec2, Vec2, Vec2, Vec2) {
	return s.From,
		s.From.Add(s.FromDerivative.Scale(1.0 / 3)),
		s.To.Sub(s.ToDerivative.Scale(1.0 / 3)),
		s.To
}

// Get evaluates the curve at t in [0, 1]
func (s Spline) Get(t float64) Vec2 {
	p0, p1, p2, p3 := s.controls()
	u := 1 - t
	return p0.Scale(u * u * u).
		Add(p1.Scale(3 * u * u * t)).
		Add(p2.Scale(3 * u * t * t)).
		Add(p3.Scale(t * t * t))
}

// Derivative of the curve at t
func (s Spline) Derivative(t float64) Vec2 {
	p0, p1, p2, p3 := s.controls()
	u := 1 - t
	return p1.Sub(p0).Scale(3 * u * u).
		Add(p2.Sub(p1).Scale(6 * u * t)).
		Add(p3.Sub(p2).Scale(3 * t * t))
}

// SplitAt cuts the curve in two at t. The halves meet at Get(t) and their
// tangents there point the same way.
func (s Spline) SplitAt(t float64) (Spline, Spline) {
	p0, p1, p2, p3 := s.controls()

	q0 := Lerp(p0, p1, t)
	q1 := Lerp(p1, p2, t)
	q2 := Lerp(p2, p3, t)
	r0 := Lerp(q0, q1, t)
	r1 := Lerp(q1, q2, t)
	mid := Lerp(r0, r1, t)

	left := Spline{
		From:           p0,
		To:             mid,
		FromDerivative: q0.Sub(p0).Scale(3),
		ToDerivative:   mid.Sub(r0).Scale(3),
	}
	right := Spline{
		From:           mid,
		To:             p3,
		FromDerivative: r1.Sub(mid).Scale(3),
		ToDerivative:   p3.Sub(q2).Scale(3),
	}
	return left, right
}

// Points samples the curve into n+1 points (n >= 1)
func (s Spline) Points(n int) Polyline {
	if n < 1 {
		n = 1
	}
	out := make(Polyline, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, s.Get(float64(i)/float64(n)))
	}
	return out
}

// SmoothPoints picks a sample count from the curve size so tight corners still
// look round.
func (s Spline) SmoothPoints(detail float64) Polyline {
	p0, p1, p2, p3 := s.controls()
	approx := p0.Dist(p1) + p1.Dist(p2) + p2.Dist(p3)
	if detail <= 0 {
		detail = 1
	}
	n := int(math.Ceil(approx / detail))
	if n < 4 {
		n = 4
	}
	if n > 64 {
		n = 64
	}
	return s.Points(n)
}

// ProjectT returns the parameter of the point on the curve closest to p.
func (s Spline) ProjectT(p Vec2, tolerance float64) float64 {
	const coarse = 32

	bestT := 0.0
	bestD := math.Inf(1)
	for i := 0; i <= coarse; i++ {
		t := float64(i) / coarse
		if d := Dist2(s.Get(t), p); d < bestD {
			bestD, bestT = d, t
		}
	}

	// ternary refine around the coarse winner
	lo := math.Max(0, bestT-1.0/coarse)
	hi := math.Min(1, bestT+1.0/coarse)
	if tolerance <= 0 {
		tolerance = 1e-3
	}
	for i := 0; i < 64 && s.Get(lo).Dist(s.Get(hi)) > tolerance/4; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if Dist2(s.Get(m1), p) < Dist2(s.Get(m2), p) {
			hi = m2
		} else {
			lo = m1
		}
	}
	return (lo + hi) / 2
}
