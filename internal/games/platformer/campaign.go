package platformer

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// DefaultLives is the number of failed attempts a campaign allows.
const DefaultLives = 3

// Stage is one level plan of a campaign.
type Stage struct {
	ID      string
	Rows    []string
	Symbols SymbolMap // Per-plan overrides on top of the campaign symbols
}

// CampaignConfig configures RunCampaign.
type CampaignConfig struct {
	Runtime core.RuntimeConfig
	Lives   int
	Symbols SymbolMap
	Tuning  Tuning

	// HazardScale returns an extra fireball speed multiplier for the
	// stage at index. Nil means 1.
	HazardScale func(index int) float64
}

// LevelResult records one attempt at one stage.
type LevelResult struct {
	LevelID   string
	Attempt   int
	Outcome   Outcome
	Ticks     int
	CoinsLeft int
}

// CampaignResult is the outcome of a whole campaign.
type CampaignResult struct {
	Results   []LevelResult
	Completed bool
	LivesLeft int
}

// RunCampaign plays stages in order. Winning a stage moves on to the next;
// losing or timing out costs a life and retries the same stage. The
// campaign ends when every stage is won or no lives remain.
func RunCampaign(ctx context.Context, stages []Stage, cfg CampaignConfig, logger *log.Logger) (CampaignResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Lives <= 0 {
		cfg.Lives = DefaultLives
	}
	if cfg.Symbols == nil {
		cfg.Symbols = DefaultSymbols()
	}
	if cfg.Tuning == (Tuning{}) {
		cfg.Tuning = DefaultTuning()
	}

	rng := rand.New(rand.NewSource(cfg.Runtime.Seed))
	result := CampaignResult{LivesLeft: cfg.Lives}

	for i, stage := range stages {
		tuning := cfg.Tuning
		if cfg.HazardScale != nil {
			tuning.HazardScale *= cfg.HazardScale(i)
		}
		if err := tuning.Validate(); err != nil {
			return result, fmt.Errorf("level %s: %w", stage.ID, err)
		}
		parser := NewParser(cfg.Symbols.Merge(stage.Symbols), WithRand(rng), WithTuning(tuning))

		for attempt := 1; ; attempt++ {
			lvl := parser.Parse(stage.Rows)
			sess := NewSession(lvl, cfg.Runtime, logger.With("level", stage.ID, "attempt", attempt))

			res, err := sess.Run(ctx)
			if err != nil {
				return result, err
			}

			result.Results = append(result.Results, LevelResult{
				LevelID:   stage.ID,
				Attempt:   attempt,
				Outcome:   res.Outcome,
				Ticks:     res.Ticks,
				CoinsLeft: res.CoinsLeft,
			})

			if res.Outcome == OutcomeWon {
				break
			}

			result.LivesLeft--
			if result.LivesLeft <= 0 {
				logger.Info("campaign over", "level", stage.ID, "cleared", i)
				return result, nil
			}
		}
	}

	result.Completed = true
	logger.Info("campaign completed", "levels", len(stages), "lives_left", result.LivesLeft)
	return result, nil
}
