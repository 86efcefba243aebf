package roadgraph

// LaneKind says what travels along a lane.
type LaneKind string

const (
	LaneDriving  LaneKind = "driving"  // cars, trucks
	LaneBus      LaneKind = "bus"      // buses only
	LaneParking  LaneKind = "parking"  // parked cars, holds parking spots
	LaneSidewalk LaneKind = "sidewalk" // pedestrians
	LaneRail     LaneKind = "rail"     // trains, trams
)

var (
	laneWidths = map[LaneKind]float64{
		LaneDriving:  4,
		LaneBus:      4,
		LaneParking:  2.5,
		LaneSidewalk: 3,
		LaneRail:     4,
	}
)

// DefaultWidth of a lane of this kind
func (k LaneKind) DefaultWidth() float64 {
	w, ok := laneWidths[k]
	if !ok {
		return laneWidths[LaneDriving]
	}
	return w
}

// Vehicles returns if vehicles drive (not park) on lanes of this kind
func (k LaneKind) Vehicles() bool {
	return k == LaneDriving || k == LaneBus
}

// LotKind tags what a lot is zoned for.
type LotKind string

const (
	LotUnassigned  LotKind = "unassigned"
	LotResidential LotKind = "residential"
	LotCommercial  LotKind = "commercial"
)

// BuildingKind is what a building is used for.
type BuildingKind string

const (
	BuildingHouse       BuildingKind = "house"
	BuildingFarm        BuildingKind = "farm"
	BuildingFactory     BuildingKind = "factory"
	BuildingSupermarket BuildingKind = "supermarket"
	BuildingBakery      BuildingKind = "bakery"
)

var (
	allBuildingKinds = []BuildingKind{
		BuildingHouse, BuildingFarm, BuildingFactory, BuildingSupermarket, BuildingBakery,
	}
)

// AllBuildingKinds returns all known BuildingKind enums
func AllBuildingKinds() []BuildingKind {
	return allBuildingKinds
}

// Valid returns if k is a known kind
func (k BuildingKind) Valid() bool {
	for _, v := range allBuildingKinds {
		if v == k {
			return true
		}
	}
	return false
}

// BuildingGen is how a building's footprint was made.
type BuildingGen string

const (
	GenHouse        BuildingGen = "house"         // from a lot
	GenFarm         BuildingGen = "farm"          // large footprint with fields
	GenCenteredDoor BuildingGen = "centered_door" // door in the middle of the road facing side
	GenNoWalkway    BuildingGen = "no_walkway"    // placed directly against the road
)

// LightPolicy decides how an intersection controls traffic.
type LightPolicy string

const (
	LightsAuto      LightPolicy = "auto"       // pick from the number of roads
	LightsNone      LightPolicy = "no_lights"  // everyone may go
	LightsStopSigns LightPolicy = "stop_signs" // minor roads must stop
	LightsOn        LightPolicy = "lights"     // traffic lights
)

// resolve turns Auto into a concrete policy for the given number of roads
func (l LightPolicy) resolve(roads int) LightPolicy {
	if l != LightsAuto && l != "" {
		return l
	}
	switch {
	case roads <= 2:
		return LightsNone
	case roads == 3:
		return LightsStopSigns
	}
	return LightsOn
}

// TurnPolicy decides which movements an intersection allows.
type TurnPolicy struct {
	BackToBack bool `json:"backToBack,omitempty"` // u-turns back onto the same road
	LeftTurns  bool `json:"leftTurns,omitempty"`
	Crosswalks bool `json:"crosswalks,omitempty"`
}

// DefaultTurnPolicy allows left turns & crosswalks, no u-turns
func DefaultTurnPolicy() TurnPolicy {
	return TurnPolicy{LeftTurns: true, Crosswalks: true}
}

// EntityKind is the tag of a ProjectKind.
type EntityKind uint8

const (
	KindGround EntityKind = iota
	KindIntersection
	KindRoad
	KindBuilding
	KindLot
)

var entityNames = map[EntityKind]string{
	KindGround:       "ground",
	KindIntersection: "intersection",
	KindRoad:         "road",
	KindBuilding:     "building",
	KindLot:          "lot",
}

func (k EntityKind) String() string {
	s, ok := entityNames[k]
	if !ok {
		return "unknown"
	}
	return s
}

// ProjectKind identifies one map entity (or the ground).
// It's the key of the spatial map.
type ProjectKind struct {
	Kind EntityKind
	ID   uint64 `json:",omitempty"`
}

// Ground is the ProjectKind of open space
func Ground() ProjectKind { return ProjectKind{Kind: KindGround} }

func InterKind(id IntersectionID) ProjectKind { return ProjectKind{KindIntersection, uint64(id)} }
func RoadKind(id RoadID) ProjectKind          { return ProjectKind{KindRoad, uint64(id)} }
func BuildingKindOf(id BuildingID) ProjectKind {
	return ProjectKind{KindBuilding, uint64(id)}
}
func LotKindOf(id LotID) ProjectKind { return ProjectKind{KindLot, uint64(id)} }

// Inter returns the intersection id, if this is one
func (p ProjectKind) Inter() (IntersectionID, bool) {
	return IntersectionID(p.ID), p.Kind == KindIntersection
}

// Road returns the road id, if this is one
func (p ProjectKind) Road() (RoadID, bool) {
	return RoadID(p.ID), p.Kind == KindRoad
}

// Building returns the building id, if this is one
func (p ProjectKind) Building() (BuildingID, bool) {
	return BuildingID(p.ID), p.Kind == KindBuilding
}

// Lot returns the lot id, if this is one
func (p ProjectKind) Lot() (LotID, bool) {
	return LotID(p.ID), p.Kind == KindLot
}

// IsGround returns if nothing was hit
func (p ProjectKind) IsGround() bool {
	return p.Kind == KindGround
}

func (p ProjectKind) String() string {
	switch p.Kind {
	case KindIntersection:
		return IntersectionID(p.ID).String()
	case KindRoad:
		return RoadID(p.ID).String()
	case KindBuilding:
		return BuildingID(p.ID).String()
	case KindLot:
		return LotID(p.ID).String()
	}
	return p.Kind.String()
}
