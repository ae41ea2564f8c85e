package config

// ApplyRacerPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyRacerPreset(cfg *RacerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.Count = 10
		cfg.Obstacles.HitRadius = 8
		cfg.Obstacles.StartClearance = 90
		cfg.Car.RotationRate = 5
	case DifficultyHard:
		cfg.Obstacles.Count = 25
		cfg.Obstacles.HitRadius = 12
		cfg.Obstacles.RegenerateOnLoss = true
		cfg.Car.MaxVelocity = 5
	}
}
