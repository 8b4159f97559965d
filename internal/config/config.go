// Package config provides YAML-based configuration loading and
// difficulty management for the platformer.
package config

import (
	"fmt"

	"github.com/vovakirdan/tile-platformer/internal/core"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/levels/formats"
)

// PlatformerConfig contains all configuration for running levels.
type PlatformerConfig struct {
	Physics    PhysicsConfig                   `yaml:"physics"`
	Actors     ActorsConfig                    `yaml:"actors"`
	Campaign   CampaignConfig                  `yaml:"campaign"`
	Symbols    map[string]platformer.ActorType `yaml:"symbols"`
	Difficulty DifficultyConfig                `yaml:"difficulty"`
}

// PhysicsConfig defines simulation timing.
type PhysicsConfig struct {
	TimeStep float64 `yaml:"time_step"` // Seconds simulated per tick
	MaxStep  float64 `yaml:"max_step"`  // Longest sub-step an actor moves at once
	MaxTicks int     `yaml:"max_ticks"` // Ticks before a level times out
}

// ActorsConfig defines coin animation parameters.
type ActorsConfig struct {
	SpringSpeed float64 `yaml:"spring_speed"`
	SpringDist  float64 `yaml:"spring_dist"`
}

// CampaignConfig defines campaign rules.
type CampaignConfig struct {
	Lives int `yaml:"lives"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases through a campaign.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to hazard speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Runtime converts the physics section into simulation settings.
func (c PlatformerConfig) Runtime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		TimeStep: c.Physics.TimeStep,
		MaxStep:  c.Physics.MaxStep,
		MaxTicks: c.Physics.MaxTicks,
		Seed:     seed,
	}
}

// Tuning returns actor tuning; hazard scaling comes from the
// DifficultyManager per level.
func (c PlatformerConfig) Tuning() platformer.Tuning {
	t := platformer.DefaultTuning()
	if c.Actors.SpringSpeed > 0 {
		t.SpringSpeed = c.Actors.SpringSpeed
	}
	if c.Actors.SpringDist > 0 {
		t.SpringDist = c.Actors.SpringDist
	}
	return t
}

// SymbolMap returns the configured symbols on top of the defaults.
func (c PlatformerConfig) SymbolMap() (platformer.SymbolMap, error) {
	overrides, err := formats.ParseSymbols(c.Symbols)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return platformer.DefaultSymbols().Merge(overrides), nil
}
