package runner

import (
	"math"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
)

// Timer tracks one effect's active flag and remaining time in milliseconds.
type Timer struct {
	Active    bool
	Remaining float64
}

// SpeedState is the speed boost timer plus the score at which the dash ends.
type SpeedState struct {
	Timer
	TargetScore int
}

// MagnetState is the magnet timer plus its pull range.
type MagnetState struct {
	Timer
	Range float64
}

// PowerUps holds at most one instance of each effect kind.
type PowerUps struct {
	Speed        SpeedState
	Invincible   Timer
	Magnet       MagnetState
	DoublePoints Timer
}

// timer returns the shared timer for an effect, or nil for EffectNone/unknown.
func (p *PowerUps) timer(e Effect) *Timer {
	switch e {
	case EffectSpeed:
		return &p.Speed.Timer
	case EffectInvincible:
		return &p.Invincible
	case EffectMagnet:
		return &p.Magnet.Timer
	case EffectDoublePoints:
		return &p.DoublePoints
	default:
		return nil
	}
}

// Player is the avatar: vertical physics plus the power-up state machine.
type Player struct {
	X, Y      float64 // Top-left corner
	BaseX     float64 // Resting horizontal position
	Width     float64
	Height    float64
	VelocityY float64

	gravity     float64
	jumpForce   float64
	speedFactor float64 // Jump multiplier, raised while the speed boost is active
	floorY      float64
	boost       config.SpeedBoostConfig
	magnet      config.MagnetConfig
	powerUps    PowerUps
}

// NewPlayer creates a player at the configured spawn point with no active effects.
func NewPlayer(cfg config.RunnerConfig) *Player {
	return &Player{
		X:           cfg.Player.X,
		Y:           cfg.Player.Y,
		BaseX:       cfg.Player.X,
		Width:       cfg.Player.Width,
		Height:      cfg.Player.Height,
		gravity:     cfg.Physics.Gravity,
		jumpForce:   cfg.Physics.JumpImpulse,
		speedFactor: 1,
		floorY:      cfg.World.FloorY(),
		boost:       cfg.PowerUps.Speed,
		magnet:      cfg.PowerUps.Magnet,
		powerUps: PowerUps{
			Magnet: MagnetState{Range: cfg.PowerUps.Magnet.Range},
		},
	}
}

// Jump sets the vertical velocity to the (speed-scaled) jump impulse.
func (p *Player) Jump() {
	p.VelocityY = p.jumpForce * p.speedFactor
}

// Update advances physics by one tick and decays power-up timers by dtMs.
// score is the cumulative score before this tick's collisions.
func (p *Player) Update(dtMs float64, score int) {
	// Gravity applies regardless of power-ups
	p.VelocityY += p.gravity
	p.Y += p.VelocityY

	// The floor stops the fall; the ceiling is the orchestrator's concern
	if p.Y+p.Height > p.floorY {
		p.Y = p.floorY - p.Height
		p.VelocityY = 0
	}

	if p.powerUps.Speed.Active {
		if score < p.powerUps.Speed.TargetScore {
			p.X = p.BaseX + p.boost.ForwardOffset
		} else {
			p.endEffect(EffectSpeed)
		}
	} else {
		p.X = p.BaseX
	}

	p.decay(dtMs)
}

// decay counts down every active effect and ends those that run out.
func (p *Player) decay(dtMs float64) {
	for _, e := range Effects {
		t := p.powerUps.timer(e)
		if !t.Active {
			continue
		}
		t.Remaining -= dtMs
		if t.Remaining <= 0 {
			p.endEffect(e)
		}
	}
}

// ApplyPowerUp activates an effect or refreshes it if already active.
// The remaining duration is replaced, never summed. Unknown kinds are ignored.
func (p *Player) ApplyPowerUp(e Effect, durationMs float64, score int) {
	t := p.powerUps.timer(e)
	if t == nil {
		return
	}
	t.Active = true
	t.Remaining = durationMs

	switch e {
	case EffectSpeed:
		p.powerUps.Speed.TargetScore = score + p.boost.ScoreBonus
		p.speedFactor = p.boost.JumpScale
	case EffectMagnet:
		p.powerUps.Magnet.Range = p.magnet.Range
	case EffectInvincible, EffectDoublePoints:
		// Read directly by the orchestrator
	}
}

// endEffect deactivates an effect and reverts its side effects.
func (p *Player) endEffect(e Effect) {
	t := p.powerUps.timer(e)
	if t == nil {
		return
	}
	t.Active = false
	t.Remaining = 0

	switch e {
	case EffectSpeed:
		p.X = p.BaseX
		p.speedFactor = 1
	case EffectInvincible, EffectMagnet, EffectDoublePoints:
	}
}

// Bounds returns the player's collision rectangle.
func (p *Player) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Active reports whether an effect is active.
func (p *Player) Active(e Effect) bool {
	t := p.powerUps.timer(e)
	return t != nil && t.Active
}

// Remaining returns the effect's remaining time in milliseconds (0 if inactive).
func (p *Player) Remaining(e Effect) float64 {
	t := p.powerUps.timer(e)
	if t == nil || !t.Active {
		return 0
	}
	return t.Remaining
}

// PowerUps returns a copy of the power-up state.
func (p *Player) PowerUps() PowerUps {
	return p.powerUps
}

// ActiveEffects returns active effects in display order.
func (p *Player) ActiveEffects() []Effect {
	var out []Effect
	for _, e := range Effects {
		if p.Active(e) {
			out = append(out, e)
		}
	}
	return out
}

// SpeedFactor returns the current jump multiplier.
func (p *Player) SpeedFactor() float64 {
	return p.speedFactor
}

// MagnetPull returns the displacement to apply this tick to an item whose
// center is (cx, cy). Items behind the player or outside the range are not
// pulled. The pull grows as the item gets closer and never overshoots.
func (p *Player) MagnetPull(cx, cy float64) (float64, float64) {
	if !p.powerUps.Magnet.Active {
		return 0, 0
	}

	px, py := p.Bounds().Center()
	if cx <= px {
		return 0, 0
	}

	dx := px - cx
	dy := py - cy
	dist := math.Hypot(dx, dy)
	rng := p.powerUps.Magnet.Range
	if dist == 0 || dist > rng {
		return 0, 0
	}

	step := math.Min(p.magnet.Strength*rng/dist, dist)
	return dx / dist * step, dy / dist * step
}
