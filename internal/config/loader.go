package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// ConfigFile is the configuration file name looked up in each location.
const ConfigFile = "platformer.yaml"

// Load loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml ->
// ./configs/platformer.yaml -> embedded default -> DefaultConfig.
// Files only need to set the keys they change.
func Load(customPath string) (PlatformerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultPlatformerYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the hardcoded defaults.
func parse(data []byte) (PlatformerConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c PlatformerConfig) validate() error {
	if !(c.Physics.TimeStep > 0) || math.IsInf(c.Physics.TimeStep, 0) {
		return fmt.Errorf("physics.time_step must be positive, got %g", c.Physics.TimeStep)
	}
	if !(c.Physics.MaxStep > 0) || math.IsInf(c.Physics.MaxStep, 0) {
		return fmt.Errorf("physics.max_step must be positive, got %g", c.Physics.MaxStep)
	}
	if c.Physics.TimeStep/c.Physics.MaxStep > core.MaxSubSteps {
		return fmt.Errorf("physics.time_step %g needs more than %d sub-steps of max_step %g",
			c.Physics.TimeStep, core.MaxSubSteps, c.Physics.MaxStep)
	}
	if err := c.Tuning().Validate(); err != nil {
		return fmt.Errorf("actors: %w", err)
	}
	if m := c.Difficulty.Scaling.SpeedMultiplier; math.IsNaN(m) || math.IsInf(m, 0) {
		return fmt.Errorf("difficulty.scaling.speed_multiplier must be finite, got %g", m)
	}
	if c.Campaign.Lives < 1 {
		return fmt.Errorf("campaign.lives must be at least 1, got %d", c.Campaign.Lives)
	}
	switch c.Difficulty.Progression.Type {
	case "", "level", "none":
	default:
		return fmt.Errorf("difficulty.progression.type %q is not one of level, none", c.Difficulty.Progression.Type)
	}
	if _, err := c.SymbolMap(); err != nil {
		return err
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust campaign rules based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Campaign.Lives = 5
	case DifficultyHard:
		cfg.Campaign.Lives = 2
	}
}
