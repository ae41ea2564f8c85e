package config

import (
	_ "embed"
)

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

// DefaultRacerConfig returns the hardcoded racer configuration.
func DefaultRacerConfig() RacerConfig {
	return RacerConfig{
		Car: CarConfig{
			MaxVelocity:  4,
			RotationRate: 4,
			Acceleration: 0.01,
			Width:        16,
			Height:       30,
		},
		Obstacles: ObstacleConfig{
			Count:          DefaultObstacleCount,
			Radius:         DefaultObstacleRadius,
			HitRadius:      DefaultHitRadius,
			StartClearance: 60,
		},
		Gameplay: GameplayConfig{
			TotalLevels:  DefaultTotalLevels,
			LossPauseMs:  5000,
			WinPauseMs:   5000,
			LevelPauseMs: 700,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRacerYAML
}
