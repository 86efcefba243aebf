package roadgraph

import (
	"errors"
	"testing"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig([]byte("cellSize: 80\nlotWidth: 30\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	def := DefaultConfig()
	if cfg.CellSize != 80 || cfg.LotWidth != 30 {
		t.Fatalf("got=%+v", cfg)
	}
	if cfg.LotDepth != def.LotDepth || cfg.LightPhase != def.LightPhase {
		t.Fatalf("defaults lost: got=%+v want %+v", cfg, def)
	}

	raw, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := ParseConfig(raw)
	if err != nil || *again != *cfg {
		t.Fatalf("got=%+v want %+v (%v)", again, cfg, err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{"zero cell size", "cellSize: 0"},
		{"negative gap", "lotGap: -1"},
		{"ratio too big", "maxInterfaceRatio: 0.6"},
		{"amber too long", "lightPhase: 5\nlightAmber: 5"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.raw))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got=%v want %v", err, ErrInvalidConfig)
			}
		})
	}

	if _, err := New(&Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("got=%v want %v", err, ErrInvalidConfig)
	}
}
