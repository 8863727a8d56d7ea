package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/office-runner/internal/core"
	"github.com/vovakirdan/office-runner/internal/games/runner"
	"github.com/vovakirdan/office-runner/internal/platform/tui"
	"github.com/vovakirdan/office-runner/internal/registry"
	"github.com/vovakirdan/office-runner/internal/storage"
)

var flagReplayLimit int

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "List, verify and watch recorded sessions",
	Long: `Every session played with 'runner play' is recorded as a seed, a config
snapshot and the inputs of every step. Recordings re-simulate exactly.

Examples:
  runner replay list
  runner replay run 3
  runner replay watch
  runner replay watch 3
  runner replay delete 3`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	Run:   runReplayList,
}

var replayRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Re-simulate a session headlessly and verify its outcome",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayRun,
}

var replayWatchCmd = &cobra.Command{
	Use:   "watch [id]",
	Short: "Watch a recorded session (pick one if no id is given)",
	Args:  cobra.MaximumNArgs(1),
	Run:   runReplayWatch,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayDelete,
}

func init() {
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of sessions to list")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayRunCmd)
	replayCmd.AddCommand(replayWatchCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

// mustStore opens the replay database or exits.
func mustStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func parseReplayID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", arg)
		os.Exit(1)
	}
	return id
}

// loadRecording fetches and decodes a stored replay.
func loadRecording(store *storage.Store, id int64) (*storage.ReplayEntry, runner.Recording, error) {
	entry, err := store.ReplayByID(id)
	if err != nil {
		return nil, runner.Recording{}, err
	}
	rec, err := runner.UnmarshalRecording(entry.Recording)
	if err != nil {
		return nil, runner.Recording{}, fmt.Errorf("replay %d: %w", id, err)
	}
	return entry, rec, nil
}

func runReplayList(cmd *cobra.Command, args []string) {
	store := mustStore()
	defer store.Close()

	entries, err := store.ListReplays(runner.ID, flagReplayLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to record one!")
		return
	}

	fmt.Printf("  %-6s  %-8s  %-8s  %-5s  %-8s  %s\n", "ID", "Score", "Best", "Runs", "Steps", "Date")
	fmt.Printf("  %-6s  %-8s  %-8s  %-5s  %-8s  %s\n", "--", "-----", "----", "----", "-----", "----")
	for _, e := range entries {
		fmt.Printf("  %-6d  %-8d  %-8d  %-5d  %-8d  %s\n",
			e.ID, e.Score, e.BestScore, e.Runs, e.Steps, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplayRun(cmd *cobra.Command, args []string) {
	logger, logCloser := mustLogger()
	defer logCloser.Close()

	store := mustStore()
	defer store.Close()

	id := parseReplayID(args[0])
	entry, rec, err := loadRecording(store, id)
	if err != nil {
		if errors.Is(err, storage.ErrReplayNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no replay with id %d\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	start := time.Now()
	res, err := runner.Replay(rec, core.Deps{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	match := res.State.Score == entry.Score && res.BestScore == entry.BestScore && res.Runs == entry.Runs
	logger.Info("replay verified", "id", id, "steps", rec.Steps, "match", match, "elapsed", elapsed)

	fmt.Printf("Replay %d: %d steps simulated in %s\n", id, rec.Steps, elapsed.Round(time.Millisecond))
	fmt.Printf("  %-10s  %-8s  %s\n", "", "Recorded", "Replayed")
	fmt.Printf("  %-10s  %-8d  %d\n", "Score", entry.Score, res.State.Score)
	fmt.Printf("  %-10s  %-8d  %d\n", "Best", entry.BestScore, res.BestScore)
	fmt.Printf("  %-10s  %-8d  %d\n", "Runs", entry.Runs, res.Runs)
	fmt.Printf("  State hash: %016x\n", res.Snapshot.Hash())

	if !match {
		fmt.Println("MISMATCH: the replay diverged from the recorded session.")
		os.Exit(2)
	}
	fmt.Println("OK")
}

func runReplayWatch(cmd *cobra.Command, args []string) {
	logger, logCloser := mustLogger()
	defer logCloser.Close()

	store := mustStore()
	defer store.Close()

	rt := terminalRuntime()

	var id int64
	if len(args) == 1 {
		id = parseReplayID(args[0])
	} else {
		var err error
		id, err = tui.RunReplayBrowser(store, runner.ID, rt.TickRate, rt.ScreenW, rt.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// User quit the browser
		if id == 0 {
			return
		}
	}

	_, rec, err := loadRecording(store, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rt.TickRate = rec.TickRate

	ui := tui.NewUITracker(logger)
	game, err := registry.Create(runner.ID, core.Deps{UI: ui})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	res, err := tui.Run(game, tui.Options{
		Runtime:  rt,
		UI:       ui,
		Replay:   &rec,
		Logger:   logger,
		MaxFrame: rec.Config.World.MaxFrame(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Replay %d  Runs: %d  Best: %d\n", id, res.Runs, res.BestScore)
}

func runReplayDelete(cmd *cobra.Command, args []string) {
	store := mustStore()
	defer store.Close()

	id := parseReplayID(args[0])
	if err := store.DeleteReplay(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted replay %d.\n", id)
}
