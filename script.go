package roadgraph

import (
	"fmt"
	"os"

	"github.com/invopop/yaml"
	"github.com/pkg/errors"

	"github.com/voidshard/roadgraph/internal/geom"
)

// ErrBadScript is returned for scripts with unknown ops or missing fields
var ErrBadScript = fmt.Errorf("invalid script")

// Script ops
const (
	OpIntersection       = "intersection"
	OpConnect            = "connect"
	OpRemoveIntersection = "remove_intersection"
	OpRemoveRoad         = "remove_road"
	OpRemoveBuilding     = "remove_building"
	OpBuildHouse         = "build_house"
	OpBuildSpecial       = "build_special"
	OpUpdateIntersection = "update_intersection"
	OpSetLotKind         = "set_lot_kind"
	OpClear              = "clear"
	OpTrees              = "trees"
)

const defaultScriptTolerance = 5.0

// Point is an [x, y] pair as written in scripts
type Point [2]float64

// Vec converts to a geom.Vec2
func (p Point) Vec() geom.Vec2 {
	return geom.V(p[0], p[1])
}

// Script is a list of edits addressed by position rather than id, so a
// map can be rebuilt from a hand written file.
type Script struct {
	Steps []ScriptStep `json:"steps"`
}

// ScriptStep is a single edit. Which fields are needed depends on Op.
type ScriptStep struct {
	Op string `json:"op"`

	// At is the point to act on; for build_special the footprint centre
	At *Point `json:"at,omitempty"`

	// connect
	From    *Point         `json:"from,omitempty"`
	To      *Point         `json:"to,omitempty"`
	Elbow   *Point         `json:"elbow,omitempty"`
	Pattern PatternBuilder `json:"pattern,omitempty"`

	// build_special
	Road *Point       `json:"road,omitempty"`
	Axis *Point       `json:"axis,omitempty"`
	Size *Point       `json:"size,omitempty"`
	Kind BuildingKind `json:"kind,omitempty"`
	Gen  BuildingGen  `json:"gen,omitempty"`

	// update_intersection
	Light LightPolicy `json:"light,omitempty"`
	Turn  *TurnPolicy `json:"turn,omitempty"`

	// set_lot_kind
	LotKind LotKind `json:"lotKind,omitempty"`

	// trees
	Min *Point `json:"min,omitempty"`
	Max *Point `json:"max,omitempty"`

	// Tolerance used to project points, defaults to 5
	Tolerance float64 `json:"tolerance,omitempty"`
}

// LoadScript reads a YAML (or JSON) script file
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading script %s", path)
	}
	return ParseScript(raw)
}

// ParseScript decodes & checks a script
func ParseScript(raw []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, errors.Wrap(err, "decoding script")
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return s, nil
}

func (s ScriptStep) validate() error {
	need := func(name string, p *Point) error {
		if p == nil {
			return fmt.Errorf("%w: %s needs %s", ErrBadScript, s.Op, name)
		}
		return nil
	}

	switch s.Op {
	case OpIntersection, OpRemoveIntersection, OpRemoveRoad, OpRemoveBuilding, OpBuildHouse, OpUpdateIntersection:
		return need("at", s.At)
	case OpSetLotKind:
		if s.LotKind == "" {
			return fmt.Errorf("%w: %s needs lotKind", ErrBadScript, s.Op)
		}
		return need("at", s.At)
	case OpConnect:
		if err := need("from", s.From); err != nil {
			return err
		}
		return need("to", s.To)
	case OpBuildSpecial:
		for name, p := range map[string]*Point{"at": s.At, "road": s.Road, "size": s.Size} {
			if err := need(name, p); err != nil {
				return err
			}
		}
		if !s.Kind.Valid() {
			return fmt.Errorf("%w: unknown building kind %q", ErrBadScript, s.Kind)
		}
		return nil
	case OpTrees:
		if err := need("min", s.Min); err != nil {
			return err
		}
		return need("max", s.Max)
	case OpClear:
		return nil
	}
	return fmt.Errorf("%w: unknown op %q", ErrBadScript, s.Op)
}

// Run applies every step in order, resolving positions against the map
// as it is at that step. Steps whose position doesn't resolve to the
// right kind of thing are skipped. Returns the number of steps applied.
func (s *Script) Run(m *Map) int {
	applied := 0
	for i, step := range s.Steps {
		cmd := step.command(m)
		if cmd == nil {
			m.log.Warn("script_skip", "step", i, "op", step.Op)
			continue
		}
		cmd.Apply(m)
		applied++
	}
	return applied
}

// command resolves a single step, nil if it can't apply
func (s ScriptStep) command(m *Map) Command {
	tol := s.Tolerance
	if tol <= 0 {
		tol = defaultScriptTolerance
	}
	at := func() MapProject { return m.Project(s.At.Vec(), tol) }

	switch s.Op {
	case OpIntersection:
		return &AddIntersectionCommand{Pos: s.At.Vec()}
	case OpConnect:
		c := &MakeConnectionCommand{
			From:    groundUnbuildable(m.Project(s.From.Vec(), tol)),
			To:      groundUnbuildable(m.Project(s.To.Vec(), tol)),
			Pattern: NewLanePattern(s.Pattern),
		}
		if s.Elbow != nil {
			e := s.Elbow.Vec()
			c.Elbow = &e
		}
		return c
	case OpRemoveIntersection, OpUpdateIntersection:
		id, ok := at().Kind.Inter()
		if !ok {
			return nil
		}
		if s.Op == OpRemoveIntersection {
			return &RemoveIntersectionCommand{ID: id}
		}
		turn := DefaultTurnPolicy()
		if s.Turn != nil {
			turn = *s.Turn
		}
		light := s.Light
		if light == "" {
			light = LightsAuto
		}
		return &UpdateIntersectionCommand{ID: id, Turn: turn, Light: light}
	case OpRemoveRoad:
		if id, ok := at().Kind.Road(); ok {
			return &RemoveRoadCommand{ID: id}
		}
	case OpRemoveBuilding:
		if id, ok := at().Kind.Building(); ok {
			return &RemoveBuildingCommand{ID: id}
		}
	case OpBuildHouse:
		if id, ok := at().Kind.Lot(); ok {
			return &BuildHouseCommand{Lot: id}
		}
	case OpSetLotKind:
		if id, ok := at().Kind.Lot(); ok {
			return &SetLotKindCommand{Lot: id, Kind: s.LotKind}
		}
	case OpBuildSpecial:
		p := m.Project(s.Road.Vec(), tol)
		road, ok := p.Kind.Road()
		if !ok {
			return nil
		}
		axis := geom.V(1, 0)
		if s.Axis != nil {
			axis = s.Axis.Vec()
		} else if r, ok := m.Road(road); ok {
			_, along := r.Points.Project(p.Pos)
			_, axis = r.Points.PointAlong(along)
		}
		gen := s.Gen
		if gen == "" {
			gen = GenCenteredDoor
		}
		return &BuildSpecialBuildingCommand{
			Road:      road,
			Footprint: geom.NewOBB(s.At.Vec(), axis, s.Size[0], s.Size[1]),
			Kind:      s.Kind,
			Gen:       gen,
		}
	case OpClear:
		return &ClearCommand{}
	case OpTrees:
		return &GenerateTreesCommand{Region: geom.NewAABB(s.Min.Vec(), s.Max.Vec())}
	}
	return nil
}

// groundUnbuildable turns lot & building projections into ground, roads
// can't end on them.
func groundUnbuildable(p MapProject) MapProject {
	switch p.Kind.Kind {
	case KindBuilding, KindLot:
		return MapProject{Pos: p.Pos, Kind: Ground()}
	}
	return p
}
