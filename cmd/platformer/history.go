package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/storage"
)

var (
	flagLimit int
	flagRunID string
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [campaign]",
	Short: "Show recorded runs",
	Long: `Display recent campaign runs and, for a single campaign, its totals.

Examples:
  platformer history
  platformer history classic --limit 20
  platformer history --run 6f1c...
  platformer history classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().StringVar(&flagRunID, "run", "", "Show the level results of one run")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs of the campaign")
}

func runHistory(cmd *cobra.Command, args []string) error {
	var campaignID string
	if len(args) == 1 {
		campaignID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	theme := DefaultTheme()

	if flagRunID != "" {
		results, err := store.RunResults(flagRunID)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("no results recorded for run %q", flagRunID)
		}

		fmt.Fprintln(out, theme.Title.Render("Run "+flagRunID))
		fmt.Fprintln(out)
		for _, r := range results {
			fmt.Fprintf(out, "  %-20s  #%-3d  %s  %d ticks, %d coins left\n",
				r.LevelID, r.Attempt, theme.Outcome(platformer.Outcome(r.Outcome)), r.Ticks, r.CoinsLeft)
		}
		return nil
	}

	if flagClear {
		if campaignID == "" {
			return fmt.Errorf("--clear needs a campaign")
		}
		if err := store.ClearRuns(campaignID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared history for %s.\n", campaignID)
		return nil
	}

	runs, err := store.RecentRuns(campaignID, flagLimit)
	if err != nil {
		return err
	}

	title := "Recent runs"
	if campaignID != "" {
		title += " - " + campaignID
	}
	fmt.Fprintln(out, theme.Title.Render(title))
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'platformer run classic' to record the first one!")
		return nil
	}

	fmt.Fprintf(out, "  %-36s  %-12s  %-10s  %-5s  %s\n", "Run", "Campaign", "Difficulty", "Lives", "Date")
	fmt.Fprintf(out, "  %-36s  %-12s  %-10s  %-5s  %s\n", "---", "--------", "----------", "-----", "----")
	for _, r := range runs {
		lives := fmt.Sprintf("%d", r.LivesLeft)
		if !r.Completed {
			lives = "-"
		}
		fmt.Fprintf(out, "  %-36s  %-12s  %-10s  %-5s  %s\n",
			r.RunID, r.CampaignID, r.Difficulty, lives, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if campaignID == "" {
		return nil
	}

	stats, err := store.CampaignStats(campaignID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %d/%d runs completed, best %d lives left\n",
		theme.Label.Render("Totals:"), stats.Completed, stats.Runs, stats.BestLivesLeft)
	fmt.Fprintf(out, "%s %d won, %d lost, %d timed out\n",
		theme.Label.Render("Levels:"), stats.LevelsWon, stats.LevelsLost, stats.Timeouts)
	return nil
}
