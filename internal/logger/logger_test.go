package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestSetupLevel(t *testing.T) {
	tests := []struct {
		env  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			t.Setenv("LOG_FORMAT", "json")
			l := Setup()
			if !l.Enabled(context.Background(), tt.want) {
				t.Fatalf("level %v not enabled", tt.want)
			}
			if tt.want > slog.LevelDebug && l.Enabled(context.Background(), tt.want-1) {
				t.Fatalf("level below %v enabled", tt.want)
			}
			if L() != l {
				t.Fatalf("L() should return the configured logger")
			}
		})
	}
}
