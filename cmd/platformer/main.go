// platformer runs tile-platformer level plans headlessly and keeps a
// history of campaign runs.
//
// Usage:
//
//	platformer list                     - List built-in campaigns
//	platformer levels <campaign|dir>    - List the plans of a campaign
//	platformer check <campaign|path>    - Validate plan files
//	platformer run <campaign|path>      - Simulate a campaign
//	platformer history [campaign]       - Show recorded runs
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.platformer/history.db)
//	--verbose       - Log every touch
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	// Import campaigns to register them
	_ "github.com/vovakirdan/tile-platformer/internal/campaigns/classic"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Tile platformer - simulate level plans from the terminal",
	Long: `Tile platformer loads level plans drawn as rows of characters and
simulates them tick by tick until each level is won or lost.

Available commands:
  list     - Show built-in campaigns
  levels   - Show the plans of a campaign or directory
  check    - Validate plan files, optionally watching for changes
  run      - Simulate a campaign and record the result
  history  - View recorded runs

Examples:
  platformer list
  platformer levels classic
  platformer check ./my-levels --watch
  platformer run classic --difficulty hard --seed 42
  platformer history classic`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/history.db", "Path to run history database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the CLI logger. Output that is not a terminal gets JSON
// so it can be collected by other tools.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}
