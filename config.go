package roadgraph

import (
	"fmt"
	"os"

	"github.com/invopop/yaml"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig is returned by Validate & LoadConfig for unusable settings
	ErrInvalidConfig = fmt.Errorf("invalid config")
)

// Config holds the tunables of a Map. Distances are in map units (metres
// if you like). Most settings are optional; zero values are replaced with
// defaults by LoadConfig, but a hand built Config should start from
// DefaultConfig().
type Config struct {
	// CellSize of the spatial map grid. Should be in the region of a
	// typical road length; too small & long roads occupy lots of cells.
	CellSize float64 `json:"cellSize,omitempty"`

	// IntersectionMinBox is the half size of the box every intersection
	// occupies in the spatial map, regardless of its polygon.
	IntersectionMinBox float64 `json:"intersectionMinBox,omitempty"`

	// MinInterface is the smallest interface radius of any intersection
	MinInterface float64 `json:"minInterface,omitempty"`

	// MaxInterfaceRatio caps each interface radius to this fraction of the
	// road length, so both ends together can't eat the whole road.
	MaxInterfaceRatio float64 `json:"maxInterfaceRatio,omitempty"`

	// CurveDetail is roughly the distance between sample points of
	// curved roads.
	CurveDetail float64 `json:"curveDetail,omitempty"`

	// ReprojectTolerance is used when an endpoint of a new connection has
	// to be projected again after the map changed under it.
	ReprojectTolerance float64 `json:"reprojectTolerance,omitempty"`

	// Lots are LotWidth along the road, LotDepth deep, LotGap back from
	// the road edge with LotSpacing between neighbours.
	LotWidth   float64 `json:"lotWidth,omitempty"`
	LotDepth   float64 `json:"lotDepth,omitempty"`
	LotGap     float64 `json:"lotGap,omitempty"`
	LotSpacing float64 `json:"lotSpacing,omitempty"`

	// ParkingSpotLength is the length of a single parking spot
	ParkingSpotLength float64 `json:"parkingSpotLength,omitempty"`

	// LightPhase is how long (in seconds) each traffic light phase lasts,
	// of which LightAmber is spent amber / all red.
	LightPhase float64 `json:"lightPhase,omitempty"`
	LightAmber float64 `json:"lightAmber,omitempty"`

	// Trees. TreeCellSize buckets trees for fast removal, TreeSpacing is the
	// min distance between generated trees. Roads clear trees within
	// width + TreeClearMargin of their centre, minus up to TreeJitter so
	// the forest edge isn't a straight line.
	TreeCellSize    float64 `json:"treeCellSize,omitempty"`
	TreeSpacing     float64 `json:"treeSpacing,omitempty"`
	TreeClearMargin float64 `json:"treeClearMargin,omitempty"`
	TreeJitter      float64 `json:"treeJitter,omitempty"`
}

// DefaultConfig returns a reasonable default Config.
func DefaultConfig() *Config {
	return &Config{
		CellSize:           50,
		IntersectionMinBox: 25,
		MinInterface:       8,
		MaxInterfaceRatio:  0.45,
		CurveDetail:        4,
		ReprojectTolerance: 1,
		LotWidth:           20,
		LotDepth:           20,
		LotGap:             2,
		LotSpacing:         1,
		ParkingSpotLength:  6,
		LightPhase:         10,
		LightAmber:         2,
		TreeCellSize:       25,
		TreeSpacing:        8,
		TreeClearMargin:    50,
		TreeJitter:         20,
	}
}

// LoadConfig reads a YAML (or JSON) config file. Settings missing from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return ParseConfig(raw)
}

// ParseConfig decodes YAML config data over the defaults
func ParseConfig(raw []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return cfg, cfg.Validate()
}

// Marshal encodes the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate returns ErrInvalidConfig (wrapped) if any setting is unusable
func (c *Config) Validate() error {
	positive := map[string]float64{
		"cellSize":          c.CellSize,
		"curveDetail":       c.CurveDetail,
		"lotWidth":          c.LotWidth,
		"lotDepth":          c.LotDepth,
		"parkingSpotLength": c.ParkingSpotLength,
		"treeCellSize":      c.TreeCellSize,
		"lightPhase":        c.LightPhase,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidConfig, name, v)
		}
	}

	nonNegative := map[string]float64{
		"intersectionMinBox": c.IntersectionMinBox,
		"minInterface":       c.MinInterface,
		"reprojectTolerance": c.ReprojectTolerance,
		"lotGap":             c.LotGap,
		"lotSpacing":         c.LotSpacing,
		"lightAmber":         c.LightAmber,
		"treeSpacing":        c.TreeSpacing,
		"treeClearMargin":    c.TreeClearMargin,
		"treeJitter":         c.TreeJitter,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, name, v)
		}
	}

	if c.MaxInterfaceRatio <= 0 || c.MaxInterfaceRatio > 0.5 {
		return fmt.Errorf("%w: maxInterfaceRatio must be in (0, 0.5], got %v", ErrInvalidConfig, c.MaxInterfaceRatio)
	}
	if c.LightAmber >= c.LightPhase {
		return fmt.Errorf("%w: lightAmber must be less than lightPhase", ErrInvalidConfig)
	}
	return nil
}
