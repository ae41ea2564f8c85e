// Package config provides YAML-based configuration loading and difficulty
// presets for the racer.
package config

// Gameplay constants. YAML can override every one of them.
const (
	DefaultTotalLevels    = 2
	DefaultObstacleCount  = 15
	DefaultObstacleRadius = 10
	DefaultHitRadius      = 10
)

// RacerConfig contains all configuration for the racer.
type RacerConfig struct {
	Car       CarConfig      `yaml:"car"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Gameplay  GameplayConfig `yaml:"gameplay"`
}

// CarConfig defines the car's handling and silhouette.
type CarConfig struct {
	MaxVelocity  float64 `yaml:"max_velocity"`  // Track units per tick
	RotationRate float64 `yaml:"rotation_rate"` // Degrees per tick
	Acceleration float64 `yaml:"acceleration"`  // Velocity change per tick
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
}

// ObstacleConfig defines how obstacles are generated and hit.
type ObstacleConfig struct {
	Count            int     `yaml:"count"`
	Radius           float64 `yaml:"radius"`     // Drawn size
	HitRadius        float64 `yaml:"hit_radius"` // Crash distance from the car position
	StartClearance   float64 `yaml:"start_clearance"`
	RegenerateOnLoss bool    `yaml:"regenerate_on_loss"`
}

// GameplayConfig defines level progression and pause lengths.
type GameplayConfig struct {
	TotalLevels  int `yaml:"total_levels"`
	LossPauseMs  int `yaml:"loss_pause_ms"`
	WinPauseMs   int `yaml:"win_pause_ms"`
	LevelPauseMs int `yaml:"level_pause_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}
