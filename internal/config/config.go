// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunnerConfig contains all configuration for the Office Runner game.
type RunnerConfig struct {
	World        WorldConfig        `yaml:"world"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Player       PlayerConfig       `yaml:"player"`
	PowerUps     PowerUpsConfig     `yaml:"powerups"`
	Obstacles    ObstaclesConfig    `yaml:"obstacles"`
	Collectibles CollectiblesConfig `yaml:"collectibles"`
	Scoring      ScoringConfig      `yaml:"scoring"`
	Difficulty   DifficultyConfig   `yaml:"difficulty"`
}

// WorldConfig defines the logical playfield in world units.
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	FloorHeight float64 `yaml:"floor_height"` // Height of the floor band at the bottom
	// MaxFrameMs caps the wall time consumed per rendered frame.
	// Zero selects the platform default.
	MaxFrameMs float64 `yaml:"max_frame_ms"`
}

// MaxFrame returns the frame time cap, or 0 when unset.
func (w WorldConfig) MaxFrame() time.Duration {
	if w.MaxFrameMs <= 0 {
		return 0
	}
	return time.Duration(w.MaxFrameMs * float64(time.Millisecond))
}

// FloorY returns the y-coordinate of the floor line.
func (w WorldConfig) FloorY() float64 {
	return w.Height - w.FloorHeight
}

// PhysicsConfig defines vertical motion parameters (units per tick).
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // Negative = upward
}

// PlayerConfig defines the avatar's size and spawn point.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PowerUpsConfig holds effect-specific parameters.
type PowerUpsConfig struct {
	Speed  SpeedBoostConfig `yaml:"speed"`
	Magnet MagnetConfig     `yaml:"magnet"`
}

// SpeedBoostConfig defines the speed boost effect.
type SpeedBoostConfig struct {
	ForwardOffset   float64 `yaml:"forward_offset"`   // Horizontal displacement while boosting
	ScoreBonus      int     `yaml:"score_bonus"`      // Boost ends once score reaches activation score + bonus
	JumpScale       float64 `yaml:"jump_scale"`       // Speed factor applied to jumps while active
	WobbleAmplitude float64 `yaml:"wobble_amplitude"` // Cosmetic only, applied by the renderer
}

// MagnetConfig defines the magnetic pull effect.
type MagnetConfig struct {
	Range    float64 `yaml:"range"`
	Strength float64 `yaml:"strength"` // Pull per tick at the edge of range
}

// ObstaclesConfig defines obstacle spawning.
type ObstaclesConfig struct {
	MinDistance float64        `yaml:"min_distance"`
	RaiseMax    float64        `yaml:"raise_max"`    // Max lift above floor for raised obstacles
	FloatTop    float64        `yaml:"float_top"`    // Min y for floating obstacles
	FloatBottom float64        `yaml:"float_bottom"` // Clearance kept above the floor for floating obstacles
	Types       []ObstacleType `yaml:"types"`
}

// Placement names the vertical placement policy of an obstacle type.
type Placement string

const (
	PlacementFloor  Placement = "floor"  // Always on the floor
	PlacementRaised Placement = "raised" // Floor, lifted by up to RaiseMax
	PlacementFloat  Placement = "float"  // Anywhere in the floating band
)

// ObstacleType defines one obstacle kind.
type ObstacleType struct {
	Name      string    `yaml:"name"`
	Width     float64   `yaml:"width"`
	Height    float64   `yaml:"height"`
	Placement Placement `yaml:"placement"`
}

// CollectiblesConfig defines collectible spawning.
type CollectiblesConfig struct {
	MinDistance float64           `yaml:"min_distance"`
	Width       float64           `yaml:"width"`
	Height      float64           `yaml:"height"`
	Margin      float64           `yaml:"margin"`       // Clearance from ceiling and floor
	SpeedFactor float64           `yaml:"speed_factor"` // Fraction of world speed
	Types       []CollectibleType `yaml:"types"`
}

// CollectibleType defines one collectible kind.
type CollectibleType struct {
	Name       string `yaml:"name"`
	Points     int    `yaml:"points"`
	Effect     string `yaml:"effect,omitempty"` // speed, invincible, magnet, double_points
	DurationMs int    `yaml:"duration_ms,omitempty"`
}

// ScoringConfig defines the passive score cadence.
type ScoringConfig struct {
	TickInterval     int `yaml:"tick_interval"` // Award TickPoints every N ticks
	TickPoints       int `yaml:"tick_points"`
	DoubleMultiplier int `yaml:"double_multiplier"`
}

// DifficultyConfig defines the level-based difficulty progression.
type DifficultyConfig struct {
	Enabled             bool           `yaml:"enabled"`
	MaxLevel            int            `yaml:"max_level"`
	PointsPerLevel      int            `yaml:"points_per_level"`
	BaseSpeed           float64        `yaml:"base_speed"`
	SpeedPerLevel       float64        `yaml:"speed_per_level"`
	ObstacleInterval    IntervalConfig `yaml:"obstacle_interval"`
	CollectibleInterval IntervalConfig `yaml:"collectible_interval"`
}

// IntervalConfig defines a spawn cadence in ticks that tightens per level.
type IntervalConfig struct {
	Base     int `yaml:"base"`
	PerLevel int `yaml:"per_level"`
	Min      int `yaml:"min"`
}

// At returns the interval for the given level, floored at Min.
func (c IntervalConfig) At(level int) int {
	return max(c.Min, c.Base-(level-1)*c.PerLevel)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty or unknown values
// return "" which means "use the config as loaded".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.PointsPerLevel = 150
		cfg.Difficulty.BaseSpeed = 4
	case DifficultyHard:
		cfg.Difficulty.PointsPerLevel = 75
		cfg.Difficulty.BaseSpeed = 6
	}
}

// ErrInvalidConfig is returned when a loaded config cannot drive a game.
var ErrInvalidConfig = errors.New("config: invalid runner config")

// Validate checks the invariants the simulation relies on.
func (c RunnerConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	case c.World.MaxFrameMs < 0:
		return fmt.Errorf("%w: world.max_frame_ms must not be negative", ErrInvalidConfig)
	case c.World.FloorY() <= c.Player.Height:
		return fmt.Errorf("%w: floor line leaves no room for the player", ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case len(c.Obstacles.Types) == 0:
		return fmt.Errorf("%w: no obstacle types", ErrInvalidConfig)
	case len(c.Collectibles.Types) == 0:
		return fmt.Errorf("%w: no collectible types", ErrInvalidConfig)
	case c.Scoring.TickInterval <= 0:
		return fmt.Errorf("%w: scoring.tick_interval must be positive", ErrInvalidConfig)
	case c.Difficulty.MaxLevel < 1 || c.Difficulty.PointsPerLevel <= 0:
		return fmt.Errorf("%w: difficulty needs max_level >= 1 and points_per_level > 0", ErrInvalidConfig)
	case c.Difficulty.ObstacleInterval.Min <= 0 || c.Difficulty.CollectibleInterval.Min <= 0:
		return fmt.Errorf("%w: spawn interval floors must be positive", ErrInvalidConfig)
	}

	for _, t := range c.Obstacles.Types {
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("%w: obstacle %q has no size", ErrInvalidConfig, t.Name)
		}
	}
	return nil
}
