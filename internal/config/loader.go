package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const racerFile = "racer.yaml"

// LoadRacer loads the racer configuration.
// Search order: customPath -> ~/.racer/configs/racer.yaml -> ./configs/racer.yaml -> embedded default
func LoadRacer(customPath string) (RacerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RacerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseRacer(data)
		if err != nil {
			return RacerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(racerFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRacer(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", racerFile)); err == nil {
		if cfg, err := ParseRacer(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseRacer(defaultRacerYAML)
	if err != nil {
		return DefaultRacerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRacer decodes YAML on top of the defaults and validates the result.
// Keys missing from data keep their default values.
func ParseRacer(data []byte) (RacerConfig, error) {
	cfg := DefaultRacerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RacerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RacerConfig{}, err
	}
	return cfg, nil
}

// MarshalRacer encodes the configuration as YAML. Recorded runs store this
// so a replay simulates with exactly the settings that were played.
func MarshalRacer(cfg RacerConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate checks that every setting is in range.
func (c RacerConfig) Validate() error {
	var errs []error
	if c.Car.MaxVelocity <= 0 {
		errs = append(errs, fmt.Errorf("car.max_velocity must be positive, got %v", c.Car.MaxVelocity))
	}
	if c.Car.RotationRate <= 0 {
		errs = append(errs, fmt.Errorf("car.rotation_rate must be positive, got %v", c.Car.RotationRate))
	}
	if c.Car.Acceleration <= 0 {
		errs = append(errs, fmt.Errorf("car.acceleration must be positive, got %v", c.Car.Acceleration))
	}
	if c.Car.Width <= 0 || c.Car.Height <= 0 {
		errs = append(errs, fmt.Errorf("car size must be positive, got %dx%d", c.Car.Width, c.Car.Height))
	}
	if c.Obstacles.Count < 0 {
		errs = append(errs, fmt.Errorf("obstacles.count must not be negative, got %d", c.Obstacles.Count))
	}
	if c.Obstacles.Radius <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.radius must be positive, got %v", c.Obstacles.Radius))
	}
	if c.Obstacles.HitRadius <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.hit_radius must be positive, got %v", c.Obstacles.HitRadius))
	}
	if c.Obstacles.StartClearance < 0 {
		errs = append(errs, fmt.Errorf("obstacles.start_clearance must not be negative, got %v", c.Obstacles.StartClearance))
	}
	if c.Gameplay.TotalLevels < 1 {
		errs = append(errs, fmt.Errorf("gameplay.total_levels must be at least 1, got %d", c.Gameplay.TotalLevels))
	}
	if c.Gameplay.LossPauseMs < 0 || c.Gameplay.WinPauseMs < 0 || c.Gameplay.LevelPauseMs < 0 {
		errs = append(errs, errors.New("gameplay pauses must not be negative"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".racer", "configs", filename)
}
