package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default Office Runner configuration.
// It mirrors defaults/runner.yaml and is used if the embedded file fails to parse.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:       800,
			Height:      600,
			FloorHeight: 20,
			MaxFrameMs:  33.34,
		},
		Physics: PhysicsConfig{
			Gravity:     0.5,
			JumpImpulse: -10,
		},
		Player: PlayerConfig{
			X:      200,
			Y:      300,
			Width:  40,
			Height: 40,
		},
		PowerUps: PowerUpsConfig{
			Speed: SpeedBoostConfig{
				ForwardOffset:   50,
				ScoreBonus:      50,
				JumpScale:       1.0,
				WobbleAmplitude: 10,
			},
			Magnet: MagnetConfig{
				Range:    300,
				Strength: 2,
			},
		},
		Obstacles: ObstaclesConfig{
			MinDistance: 300,
			RaiseMax:    100,
			FloatTop:    50,
			FloatBottom: 130,
			Types: []ObstacleType{
				{Name: "cabinet", Width: 60, Height: 100, Placement: PlacementFloor},
				{Name: "chair", Width: 50, Height: 70, Placement: PlacementRaised},
				{Name: "monitor", Width: 40, Height: 40, Placement: PlacementFloat},
				{Name: "printer", Width: 80, Height: 60, Placement: PlacementRaised},
			},
		},
		Collectibles: CollectiblesConfig{
			MinDistance: 200,
			Width:       30,
			Height:      30,
			Margin:      100,
			SpeedFactor: 0.6,
			Types: []CollectibleType{
				{Name: "coffee", Points: 10, Effect: "speed", DurationMs: 8000},
				{Name: "paperclip", Points: 5, Effect: "magnet", DurationMs: 10000},
				{Name: "stapler", Points: 15, Effect: "double_points", DurationMs: 10000},
				{Name: "notebook", Points: 20, Effect: "invincible", DurationMs: 5000},
			},
		},
		Scoring: ScoringConfig{
			TickInterval:     10,
			TickPoints:       1,
			DoubleMultiplier: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:             true,
			MaxLevel:            10,
			PointsPerLevel:      100,
			BaseSpeed:           5,
			SpeedPerLevel:       0.5,
			ObstacleInterval:    IntervalConfig{Base: 120, PerLevel: 5, Min: 60},
			CollectibleInterval: IntervalConfig{Base: 180, PerLevel: 8, Min: 90},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
