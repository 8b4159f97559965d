package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-platformer/internal/config"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/levels"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

var flagWatch bool

var checkCmd = &cobra.Command{
	Use:   "check <campaign|dir|file>",
	Short: "Validate level plans",
	Long: `Checks that every plan has exactly one player, at least one coin and a
player spawn clear of walls and lava.

With --watch the plan directory is re-checked whenever a plan file
changes, until interrupted.

Examples:
  platformer check classic
  platformer check ./my-levels
  platformer check ./my-levels/01-intro.yaml
  platformer check ./my-levels --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagWatch, "watch", false, "Re-check plan files when they change")
	checkCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	logger := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	symbols, err := cfg.SymbolMap()
	if err != nil {
		return err
	}

	campaign, err := resolveCampaign(target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	theme := DefaultTheme()
	failed := checkPlans(out, theme, campaign.Plans, symbols)

	if !flagWatch {
		if failed > 0 {
			return fmt.Errorf("%d of %d plans failed validation", failed, len(campaign.Plans))
		}
		return nil
	}

	if registry.Exists(target) {
		return errors.New("--watch needs a plan directory or file, not a built-in campaign")
	}

	dir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		dir = filepath.Dir(target)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return watchPlans(ctx, out, theme, dir, symbols, logger)
}

// checkPlans prints one line per plan and returns the number of failures.
func checkPlans(out io.Writer, theme Theme, plans []levels.Plan, symbols platformer.SymbolMap) int {
	failed := 0
	for _, p := range plans {
		err := p.Validate(symbols)
		fmt.Fprintf(out, "  %-4s  %s\n", theme.Check(err == nil), p.ID)
		if err != nil {
			failed++
			fmt.Fprintln(out, theme.Dim.Render("        "+err.Error()))
		}
	}
	return failed
}

// watchPlans re-checks changed plan files under dir until ctx is done.
func watchPlans(ctx context.Context, out io.Writer, theme Theme, dir string, symbols platformer.SymbolMap, logger *log.Logger) error {
	watcher, err := levels.NewWatcher(dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	defer watcher.Close()

	loader := levels.NewDirLoader(dir)
	logger.Info("watching for plan changes", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			rel, err := filepath.Rel(dir, name)
			if err != nil {
				logger.Warn("ignoring change outside watched dir", "file", name)
				continue
			}
			plans, err := loader.LoadFile(filepath.ToSlash(rel))
			if err != nil {
				// Removed or half-written files land here.
				logger.Warn("reload failed", "file", rel, "error", err)
				continue
			}
			logger.Info("plan file changed", "file", rel, "plans", len(plans))
			checkPlans(out, theme, plans, symbols)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
