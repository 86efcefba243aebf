package geom

// SegmentKind describes the shape of a road between its two end points.
// A straight segment ignores the derivatives.
type SegmentKind struct {
	Curved         bool `json:",omitempty"`
	FromDerivative Vec2 `json:",omitempty"`
	ToDerivative   Vec2 `json:",omitempty"`
}

// Straight segment
func Straight() SegmentKind {
	return SegmentKind{}
}

// Curved segment with the given end derivatives
func Curved(fromDerivative, toDerivative Vec2) SegmentKind {
	return SegmentKind{Curved: true, FromDerivative: fromDerivative, ToDerivative: toDerivative}
}

// FromElbow builds a curve leaving from towards elbow and arriving at to from
// the direction of elbow.
func FromElbow(from, to, elbow Vec2) SegmentKind {
	return Curved(elbow.Sub(from).Scale(2), to.Sub(elbow).Scale(2))
}

// Spline between from and to, only meaningful if Curved
func (s SegmentKind) Spline(from, to Vec2) Spline {
	return Spline{From: from, To: to, FromDerivative: s.FromDerivative, ToDerivative: s.ToDerivative}
}

// Points returns the centre line of the segment
func (s SegmentKind) Points(from, to Vec2, detail float64) Polyline {
	if !s.Curved {
		return Polyline{from, to}
	}
	return s.Spline(from, to).SmoothPoints(detail)
}
