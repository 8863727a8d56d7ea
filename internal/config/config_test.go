package config

import (
	"errors"
	"testing"
	"time"
)

func TestWorldMaxFrame(t *testing.T) {
	tests := []struct {
		ms   float64
		want time.Duration
	}{
		{0, 0},
		{-5, 0},
		{50, 50 * time.Millisecond},
		{33.5, 33500 * time.Microsecond},
	}

	for _, tt := range tests {
		w := WorldConfig{MaxFrameMs: tt.ms}
		if got := w.MaxFrame(); got != tt.want {
			t.Errorf("MaxFrame() with %.1fms = %v, want %v", tt.ms, got, tt.want)
		}
	}
}

func TestValidateRejectsNegativeMaxFrame(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.World.MaxFrameMs = -1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}

	cfg.World.MaxFrameMs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with zero max frame = %v, want nil", err)
	}
}

func TestParseMaxFrame(t *testing.T) {
	cfg, err := Parse([]byte("world:\n  max_frame_ms: 100\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got := cfg.World.MaxFrame(); got != 100*time.Millisecond {
		t.Errorf("MaxFrame() = %v, want 100ms", got)
	}
	if cfg.World.Width != DefaultRunnerConfig().World.Width {
		t.Error("partial world section should keep default width")
	}
}
