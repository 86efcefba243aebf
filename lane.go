package roadgraph

import (
	"math"

	"github.com/voidshard/roadgraph/internal/geom"
)

// LaneSpec is one lane of a LanePattern
type LaneSpec struct {
	Kind  LaneKind
	Width float64
}

// LanePattern lists the lanes of a road. Forward lanes run src -> dst,
// Backward lanes dst -> src. Both are ordered from the centre of the road
// out to the curb.
type LanePattern struct {
	Forward  []LaneSpec `json:",omitempty"`
	Backward []LaneSpec `json:",omitempty"`
}

// PatternBuilder describes a LanePattern in the usual terms.
type PatternBuilder struct {
	LanesPerSide int  `json:"lanesPerSide,omitempty"` // driving lanes in each direction (forward only if OneWay)
	Sidewalks    bool `json:"sidewalks,omitempty"`    // a sidewalk along both curbs
	Parking      bool `json:"parking,omitempty"`      // a parking lane between driving lanes & sidewalk
	OneWay       bool `json:"oneWay,omitempty"`       // no driving lanes going backward
	Rail         bool `json:"rail,omitempty"`         // lanes are rail rather than road
}

// NewLanePattern builds a pattern. LanesPerSide below 1 is treated as 1.
func NewLanePattern(b PatternBuilder) LanePattern {
	n := b.LanesPerSide
	if n < 1 {
		n = 1
	}

	vehicle := LaneDriving
	if b.Rail {
		vehicle = LaneRail
	}

	side := func(driving int) []LaneSpec {
		out := []LaneSpec{}
		for i := 0; i < driving; i++ {
			out = append(out, LaneSpec{Kind: vehicle, Width: vehicle.DefaultWidth()})
		}
		if b.Parking && !b.Rail {
			out = append(out, LaneSpec{Kind: LaneParking, Width: LaneParking.DefaultWidth()})
		}
		if b.Sidewalks && !b.Rail {
			out = append(out, LaneSpec{Kind: LaneSidewalk, Width: LaneSidewalk.DefaultWidth()})
		}
		return out
	}

	p := LanePattern{Forward: side(n)}
	if b.OneWay {
		p.Backward = side(0)
	} else {
		p.Backward = side(n)
	}
	return p
}

// Width is the total width of all lanes
func (p LanePattern) Width() float64 {
	w := 0.0
	for _, l := range p.Forward {
		w += l.Width
	}
	for _, l := range p.Backward {
		w += l.Width
	}
	return w
}

// Len is the number of lanes
func (p LanePattern) Len() int {
	return len(p.Forward) + len(p.Backward)
}

// Equal compares lane by lane
func (p LanePattern) Equal(o LanePattern) bool {
	if len(p.Forward) != len(o.Forward) || len(p.Backward) != len(o.Backward) {
		return false
	}
	for i := range p.Forward {
		if p.Forward[i] != o.Forward[i] {
			return false
		}
	}
	for i := range p.Backward {
		if p.Backward[i] != o.Backward[i] {
			return false
		}
	}
	return true
}

// clone deep copies the pattern so roads never share slices with callers
func (p LanePattern) clone() LanePattern {
	return LanePattern{
		Forward:  append([]LaneSpec{}, p.Forward...),
		Backward: append([]LaneSpec{}, p.Backward...),
	}
}

// TrafficKind is what a lane must obey where it meets an intersection.
type TrafficKind string

const (
	TrafficAlways TrafficKind = "always" // free to go
	TrafficStop   TrafficKind = "stop"   // stop, then go when clear
	TrafficLight  TrafficKind = "light"  // see the light timing
)

// TrafficControl at the end of a lane. For lights, the light is green from
// GreenOffset for GreenTime seconds in every Period.
type TrafficControl struct {
	Kind        TrafficKind
	Period      float64 `json:",omitempty"`
	GreenOffset float64 `json:",omitempty"`
	GreenTime   float64 `json:",omitempty"`
}

// IsGreen returns if traffic may proceed at time t (seconds)
func (t TrafficControl) IsGreen(at float64) bool {
	switch t.Kind {
	case TrafficLight:
		if t.Period <= 0 {
			return true
		}
		phase := math.Mod(at-t.GreenOffset, t.Period)
		if phase < 0 {
			phase += t.Period
		}
		return phase < t.GreenTime
	case TrafficStop:
		return false
	}
	return true
}

// LaneRef is a lane id with its kind, as listed by its road
type LaneRef struct {
	ID   LaneID
	Kind LaneKind
}

// Lane is a single directional channel of a road.
type Lane struct {
	ID     LaneID
	Parent RoadID
	Kind   LaneKind
	Width  float64

	// Offset is the signed distance of the lane centre from the road centre
	// line, positive to the left of src -> dst.
	Offset float64

	// direction of travel
	Src IntersectionID
	Dst IntersectionID

	// Points of the lane centre in the direction of travel, between the
	// interface radii of both ends.
	Points geom.Polyline `json:",omitempty"`

	// Control at the Dst end
	Control TrafficControl
}

// Dist2To is the squared distance from p to the lane
func (l *Lane) Dist2To(p geom.Vec2) float64 {
	return l.Points.Dist2(p)
}

// Length along the lane
func (l *Lane) Length() float64 {
	return l.Points.Length()
}
