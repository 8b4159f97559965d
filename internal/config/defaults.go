package config

import (
	_ "embed"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultConfig returns the default platformer configuration.
func DefaultConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			TimeStep: 1.0 / 60,
			MaxStep:  0.05,
			MaxTicks: 3600, // one minute at 60 ticks per second
		},
		Actors: ActorsConfig{
			SpringSpeed: platformer.DefaultSpringSpeed,
			SpringDist:  platformer.DefaultSpringDist,
		},
		Campaign: CampaignConfig{
			Lives: platformer.DefaultLives,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
