package roadgraph

import (
	"github.com/voidshard/roadgraph/internal/geom"
)

// Command is a single change request against a Map
type Command interface {
	// Name of the operation, as used in logs & metrics
	Name() string

	// Apply runs the command to completion
	Apply(m *Map)
}

// RemoveIntersectionCommand removes an intersection & its roads
type RemoveIntersectionCommand struct {
	ID IntersectionID
}

func (c *RemoveIntersectionCommand) Name() string { return "remove_intersection" }
func (c *RemoveIntersectionCommand) Apply(m *Map) { m.RemoveIntersection(c.ID) }

// RemoveRoadCommand removes a road
type RemoveRoadCommand struct {
	ID RoadID
}

func (c *RemoveRoadCommand) Name() string { return "remove_road" }
func (c *RemoveRoadCommand) Apply(m *Map) { m.RemoveRoad(c.ID) }

// RemoveBuildingCommand removes a building
type RemoveBuildingCommand struct {
	ID BuildingID
}

func (c *RemoveBuildingCommand) Name() string { return "remove_building" }
func (c *RemoveBuildingCommand) Apply(m *Map) { m.RemoveBuilding(c.ID) }

// BuildHouseCommand builds a house on a lot
type BuildHouseCommand struct {
	Lot LotID
}

func (c *BuildHouseCommand) Name() string { return "build_house" }
func (c *BuildHouseCommand) Apply(m *Map) { m.BuildHouse(c.Lot) }

// MakeConnectionCommand joins two projected points with a road
type MakeConnectionCommand struct {
	From    MapProject
	To      MapProject
	Elbow   *geom.Vec2
	Pattern LanePattern
}

func (c *MakeConnectionCommand) Name() string { return "make_connection" }
func (c *MakeConnectionCommand) Apply(m *Map) {
	m.MakeConnection(c.From, c.To, c.Elbow, c.Pattern)
}

// UpdateIntersectionCommand replaces an intersection's policies
type UpdateIntersectionCommand struct {
	ID    IntersectionID
	Turn  TurnPolicy
	Light LightPolicy
}

func (c *UpdateIntersectionCommand) Name() string { return "update_intersection" }
func (c *UpdateIntersectionCommand) Apply(m *Map) {
	m.UpdateIntersection(c.ID, func(p *IntersectionPolicy) {
		p.Turn = c.Turn
		p.Light = c.Light
	})
}

// BuildSpecialBuildingCommand places a building along a road. The road
// may have gone since the command was queued, in which case nothing is
// built.
type BuildSpecialBuildingCommand struct {
	Road      RoadID
	Footprint geom.OBB
	Kind      BuildingKind
	Gen       BuildingGen
}

func (c *BuildSpecialBuildingCommand) Name() string { return "build_special_building" }
func (c *BuildSpecialBuildingCommand) Apply(m *Map) {
	if _, ok := m.Road(c.Road); !ok {
		m.noop(c.Name(), "road", c.Road)
		return
	}
	m.BuildSpecialBuilding(c.Road, c.Footprint, c.Kind, c.Gen)
}

// ClearCommand empties the map
type ClearCommand struct{}

func (c *ClearCommand) Name() string { return "clear" }
func (c *ClearCommand) Apply(m *Map) { m.Clear() }

// GenerateTreesCommand grows trees over a region
type GenerateTreesCommand struct {
	Region geom.AABB
}

func (c *GenerateTreesCommand) Name() string { return "generate_trees" }
func (c *GenerateTreesCommand) Apply(m *Map) { m.GenerateTrees(c.Region) }

// Commands is a queue of commands applied in order
type Commands struct {
	cmds []Command
}

// Push queues commands
func (c *Commands) Push(cmds ...Command) {
	c.cmds = append(c.cmds, cmds...)
}

// Merge queues every command of other after ours
func (c *Commands) Merge(other *Commands) {
	c.cmds = append(c.cmds, other.cmds...)
}

// Len is the number of queued commands
func (c *Commands) Len() int {
	return len(c.cmds)
}

// Commands returns the queue
func (c *Commands) Commands() []Command {
	return c.cmds
}

// Apply runs every queued command against m, emptying the queue
func (c *Commands) Apply(m *Map) {
	cmds := c.cmds
	c.cmds = nil
	for _, cmd := range cmds {
		cmd.Apply(m)
	}
}

// AddIntersectionCommand places a lone intersection
type AddIntersectionCommand struct {
	Pos geom.Vec2
}

func (c *AddIntersectionCommand) Name() string { return "add_intersection" }
func (c *AddIntersectionCommand) Apply(m *Map) { m.AddIntersection(c.Pos) }

// SetLotKindCommand tags a lot
type SetLotKindCommand struct {
	Lot  LotID
	Kind LotKind
}

func (c *SetLotKindCommand) Name() string { return "set_lot_kind" }
func (c *SetLotKindCommand) Apply(m *Map) { m.SetLotKind(c.Lot, c.Kind) }
