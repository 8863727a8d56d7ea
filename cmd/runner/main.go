// runner is an office-themed endless runner for the terminal.
//
// Usage:
//
//	runner play                 - Play a run
//	runner replay list          - List recorded sessions
//	runner replay run <id>      - Re-simulate a session headlessly and verify it
//	runner replay watch [id]    - Watch a recorded session
//	runner replay delete <id>   - Delete a recorded session
//	runner config               - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/runner.db)
//	--log-file <path>    - Set log file (default: ~/.arcade/runner.log)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/office-runner/internal/games/runner"
	"github.com/vovakirdan/office-runner/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Office Runner - dodge the furniture, grab the coffee",
	Long: `Office Runner is a side-scrolling endless runner played in the terminal.
Jump over cabinets, chairs, monitors and printers, and collect office
supplies for points and power-ups.

Available commands:
  play     - Start a run
  replay   - List, verify and watch recorded sessions
  config   - Print the default configuration

Examples:
  runner play
  runner play --difficulty hard --seed 42
  runner play --config ./my-runner.yaml --watch
  runner replay list
  runner replay run 3`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/runner.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/runner.log", "Path to log file (empty = stderr)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.Long += gamesHelp()

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// gamesHelp lists the registered games for the root help text.
func gamesHelp() string {
	var b strings.Builder
	b.WriteString("\n\nGames in this build:\n")
	for _, g := range registry.List() {
		fmt.Fprintf(&b, "  %-8s %s\n", g.ID, g.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}
