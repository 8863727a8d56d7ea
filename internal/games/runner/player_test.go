package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/office-runner/internal/config"
)

const testStepMs = 1000.0 / 60

func TestPlayerNeverBelowFloor(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	p := NewPlayer(cfg)
	floorY := cfg.World.FloorY()

	for i := range 500 {
		p.Update(testStepMs, 0)
		if p.Y+p.Height > floorY {
			t.Fatalf("tick %d: bottom %.2f below floor %.2f", i, p.Y+p.Height, floorY)
		}
	}
	if p.Y+p.Height != floorY {
		t.Errorf("expected player resting on floor, bottom=%.2f", p.Y+p.Height)
	}
	if p.VelocityY != 0 {
		t.Errorf("expected zero velocity on floor, got %.2f", p.VelocityY)
	}
}

func TestPlayerJump(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.PowerUps.Speed.JumpScale = 1.5
	p := NewPlayer(cfg)

	p.Jump()
	if p.VelocityY != cfg.Physics.JumpImpulse {
		t.Errorf("expected velocity %.1f, got %.1f", cfg.Physics.JumpImpulse, p.VelocityY)
	}

	startY := p.Y
	p.Update(testStepMs, 0)
	if p.Y >= startY {
		t.Errorf("expected player to rise after jump, y %.2f -> %.2f", startY, p.Y)
	}

	p.ApplyPowerUp(EffectSpeed, 8000, 0)
	p.Jump()
	if want := cfg.Physics.JumpImpulse * 1.5; p.VelocityY != want {
		t.Errorf("expected boosted velocity %.1f, got %.1f", want, p.VelocityY)
	}
}

func TestPowerUpExpiry(t *testing.T) {
	tests := []struct {
		name     string
		effect   Effect
		duration float64
		dt       float64
		ticks    int // Ticks that leave the effect active
	}{
		{"crosses below zero", EffectInvincible, 50, 16.67, 2},
		{"lands exactly on zero", EffectMagnet, 20, 10, 1},
		{"double points", EffectDoublePoints, 100, 25, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(config.DefaultRunnerConfig())
			p.ApplyPowerUp(tt.effect, tt.duration, 0)

			for i := range tt.ticks {
				p.Update(tt.dt, 0)
				if !p.Active(tt.effect) {
					t.Fatalf("effect ended early after %d ticks", i+1)
				}
			}

			p.Update(tt.dt, 0)
			if p.Active(tt.effect) {
				t.Errorf("effect still active with %.2fms left", p.Remaining(tt.effect))
			}
			if p.Remaining(tt.effect) != 0 {
				t.Errorf("expected no remaining time, got %.2f", p.Remaining(tt.effect))
			}
		})
	}
}

func TestPowerUpRefreshReplacesDuration(t *testing.T) {
	p := NewPlayer(config.DefaultRunnerConfig())

	p.ApplyPowerUp(EffectDoublePoints, 10000, 0)
	p.Update(1000, 0)
	if got := p.Remaining(EffectDoublePoints); got != 9000 {
		t.Fatalf("expected 9000ms remaining, got %.1f", got)
	}

	p.ApplyPowerUp(EffectDoublePoints, 10000, 0)
	if got := p.Remaining(EffectDoublePoints); got != 10000 {
		t.Errorf("expected refresh to 10000ms, got %.1f", got)
	}
	if n := len(p.ActiveEffects()); n != 1 {
		t.Errorf("expected one active effect, got %d", n)
	}
}

func TestSpeedBoostEndsAtScoreTarget(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.PowerUps.Speed.JumpScale = 1.2
	p := NewPlayer(cfg)

	p.ApplyPowerUp(EffectSpeed, 8000, 50)
	if got := p.PowerUps().Speed.TargetScore; got != 100 {
		t.Fatalf("expected target 100, got %d", got)
	}

	p.Update(testStepMs, 60)
	if want := p.BaseX + cfg.PowerUps.Speed.ForwardOffset; p.X != want {
		t.Errorf("expected dash x %.1f, got %.1f", want, p.X)
	}

	p.Update(testStepMs, 100)
	if p.Active(EffectSpeed) {
		t.Error("expected speed boost to end at target score")
	}
	if p.X != p.BaseX {
		t.Errorf("expected x back at %.1f, got %.1f", p.BaseX, p.X)
	}
	if p.SpeedFactor() != 1 {
		t.Errorf("expected speed factor reset, got %.2f", p.SpeedFactor())
	}
}

func TestSpeedBoostExpiresByTime(t *testing.T) {
	p := NewPlayer(config.DefaultRunnerConfig())
	p.ApplyPowerUp(EffectSpeed, 30, 0)

	p.Update(20, 0)
	p.Update(20, 0)
	if p.Active(EffectSpeed) {
		t.Fatal("expected speed boost to expire by time")
	}

	p.Update(20, 0)
	if p.X != p.BaseX {
		t.Errorf("expected x at base after expiry, got %.1f", p.X)
	}
}

func TestUnknownEffectIgnored(t *testing.T) {
	p := NewPlayer(config.DefaultRunnerConfig())

	p.ApplyPowerUp(EffectNone, 1000, 0)
	p.ApplyPowerUp(Effect(99), 1000, 0)

	if n := len(p.ActiveEffects()); n != 0 {
		t.Errorf("expected no active effects, got %d", n)
	}
	if p.Active(Effect(99)) {
		t.Error("unknown effect reported active")
	}
}

func TestParseEffect(t *testing.T) {
	tests := []struct {
		name string
		want Effect
	}{
		{"speed", EffectSpeed},
		{"invincible", EffectInvincible},
		{"magnet", EffectMagnet},
		{"double_points", EffectDoublePoints},
		{"", EffectNone},
		{"teleport", EffectNone},
	}

	for _, tt := range tests {
		if got := ParseEffect(tt.name); got != tt.want {
			t.Errorf("ParseEffect(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMagnetPull(t *testing.T) {
	p := NewPlayer(config.DefaultRunnerConfig())
	px, py := p.Bounds().Center() // (220, 320)

	if dx, dy := p.MagnetPull(px+100, py); dx != 0 || dy != 0 {
		t.Fatal("expected no pull without magnet")
	}

	p.ApplyPowerUp(EffectMagnet, 10000, 0)

	tests := []struct {
		name   string
		cx, cy float64
		wantDx float64
		wantDy float64
	}{
		{"ahead in range", px + 100, py, -6, 0},
		{"close item lands on center", px + 1, py, -1, 0},
		{"behind player", px - 50, py, 0, 0},
		{"out of range", px + 400, py, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := p.MagnetPull(tt.cx, tt.cy)
			if math.Abs(dx-tt.wantDx) > 1e-9 || math.Abs(dy-tt.wantDy) > 1e-9 {
				t.Errorf("pull = (%.3f, %.3f), want (%.3f, %.3f)", dx, dy, tt.wantDx, tt.wantDy)
			}
		})
	}
}
