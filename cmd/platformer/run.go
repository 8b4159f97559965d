package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-platformer/internal/config"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/levels"
	"github.com/vovakirdan/tile-platformer/internal/registry"
	"github.com/vovakirdan/tile-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagNoSave     bool
)

var runCmd = &cobra.Command{
	Use:   "run <campaign|dir|file>",
	Short: "Simulate a campaign",
	Long: `Simulate every level of a campaign in order. The player stands still,
so a level is won only when its coins reach the player. Losing or timing
out a level costs a life and retries it.

Difficulty options:
  easy   - 5 lives, hazards start at base speed and speed up
  normal - 3 lives, hazards start 30% towards max speed
  hard   - 2 lives, hazards start 70% towards max speed
  fixed  - No progression, hazards keep their base speed

Examples:
  platformer run classic
  platformer run classic --difficulty hard --seed 42
  platformer run ./my-levels --level 02-bridge
  platformer run classic --config ./my-platformer.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	runCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	runCmd.Flags().StringVar(&flagLevel, "level", "", "Only simulate the level with this ID")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the history database")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	difficulty := "default"
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyPreset(&cfg, preset)
		difficulty = string(preset)
	}

	symbols, err := cfg.SymbolMap()
	if err != nil {
		return err
	}

	campaign, err := resolveCampaign(args[0])
	if err != nil {
		return err
	}

	plans, offset := campaign.Plans, 0
	if flagLevel != "" {
		if plans, offset, err = selectPlan(campaign.Plans, flagLevel); err != nil {
			return err
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	dm := config.NewDifficultyManager(cfg.Difficulty)
	campaignCfg := platformer.CampaignConfig{
		Runtime: cfg.Runtime(seed),
		Lives:   cfg.Campaign.Lives,
		Symbols: symbols,
		Tuning:  cfg.Tuning(),
		HazardScale: func(i int) float64 {
			return dm.HazardScale(offset + i)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("starting campaign", "campaign", campaign.ID, "levels", len(plans), "seed", seed, "difficulty", difficulty)
	res, err := platformer.RunCampaign(ctx, levels.Stages(plans), campaignCfg, logger)
	if err != nil {
		return fmt.Errorf("campaign %s interrupted: %w", campaign.ID, err)
	}

	out := cmd.OutOrStdout()
	printCampaignResult(out, DefaultTheme(), campaign, res, seed)

	if flagNoSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - the run already finished
		logger.Warn("could not open history database", "error", err)
		return nil
	}
	defer store.Close()

	runID, err := store.SaveRun(storage.NewRunRecord(campaign.ID, seed, difficulty, res))
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return nil
	}
	fmt.Fprintf(out, "Run %s saved.\n", runID)
	return nil
}

func printCampaignResult(out io.Writer, theme Theme, campaign registry.Campaign, res platformer.CampaignResult, seed int64) {
	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%s (seed %d)", campaign.Title, seed)))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %-20s  %-7s  %-6s  %-10s  %s\n", "Level", "Attempt", "Ticks", "Coins left", "Outcome")
	fmt.Fprintf(out, "  %-20s  %-7s  %-6s  %-10s  %s\n", "-----", "-------", "-----", "----------", "-------")

	for _, r := range res.Results {
		fmt.Fprintf(out, "  %-20s  %-7d  %-6d  %-10d  %s\n",
			r.LevelID, r.Attempt, r.Ticks, r.CoinsLeft, theme.Outcome(r.Outcome))
	}

	fmt.Fprintln(out)
	if res.Completed {
		fmt.Fprintf(out, "%s with %d lives left.\n", theme.Won.Render("Campaign completed"), res.LivesLeft)
	} else {
		fmt.Fprintf(out, "%s.\n", theme.Lost.Render("Out of lives"))
	}
}
