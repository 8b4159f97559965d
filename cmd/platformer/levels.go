package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-platformer/internal/config"
)

var flagShow bool

var levelsCmd = &cobra.Command{
	Use:   "levels <campaign|dir>",
	Short: "List the plans of a campaign",
	Long: `Shows the level plans of a built-in campaign or of a plan directory,
in the order they are played.

Examples:
  platformer levels classic
  platformer levels ./my-levels --show`,
	Args: cobra.ExactArgs(1),
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagShow, "show", false, "Draw each plan")
	levelsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
}

func runLevels(cmd *cobra.Command, args []string) error {
	campaign, err := resolveCampaign(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	symbols, err := cfg.SymbolMap()
	if err != nil {
		return err
	}

	theme := DefaultTheme()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Levels - %s", campaign.Title)))
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, p := range campaign.Plans {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Fprintf(out, "  %-4s  %-*s  %-7s  %s\n", "#", maxIDLen, "ID", "Size", "Name")
	fmt.Fprintf(out, "  %-4s  %-*s  %-7s  %s\n", "-", maxIDLen, "--", "----", "----")

	for i, p := range campaign.Plans {
		w, h := p.Size()
		fmt.Fprintf(out, "  %-4d  %-*s  %-7s  %s\n", i+1, maxIDLen, p.ID, fmt.Sprintf("%dx%d", w, h), p.Name)
		if flagShow {
			fmt.Fprintln(out)
			fmt.Fprint(out, theme.RenderPlan(p, symbols))
			fmt.Fprintln(out)
		}
	}

	return nil
}
