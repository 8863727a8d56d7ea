package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
	"github.com/vovakirdan/office-runner/internal/games/runner"
	"github.com/vovakirdan/office-runner/internal/platform/audio"
	"github.com/vovakirdan/office-runner/internal/platform/tui"
	"github.com/vovakirdan/office-runner/internal/registry"
	"github.com/vovakirdan/office-runner/internal/storage"
)

// keepReplays is how many recorded sessions are kept per game.
const keepReplays = 50

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagVolume     float64
	flagWatch      bool
	flagNoRecord   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start playing Office Runner.

Controls:
  Enter/Space  - Start
  Space/Up/W   - Jump
  P/Esc        - Pause
  R            - Restart (after game over)
  M            - Mute
  +/-          - Volume up/down
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower start, more points per level
  normal - Config as loaded
  hard   - Faster start, fewer points per level
  fixed  - No progression, stays at level 1

Every session is recorded to the replay database unless --no-record is set.

Examples:
  runner play
  runner play --difficulty easy
  runner play --seed 42 --fps 30
  runner play --config ./my-runner.yaml --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 1, "Master volume, 0 to 1")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes (applies on restart)")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the session")
}

// terminalRuntime builds a runtime config sized to the current terminal.
func terminalRuntime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openAudio opens the speaker, falling back to silence when no device is
// available.
func openAudio(logger *log.Logger, muted bool, volume float64) (core.AudioSink, tui.Mixer, func()) {
	opts := audio.DefaultOptions()
	opts.Muted = muted
	opts.MasterVolume = core.ClampF(volume, 0, 1)
	opts.Logger = logger

	sm := audio.NewSoundManager(opts)
	if err := sm.Init(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", err)
		return core.NopAudio{}, nil, func() {}
	}
	return sm, sm, sm.Close
}

// watchPath picks the file to watch for hot reload: the --config path, or
// the first config file that exists in the search order.
func watchPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	for _, p := range []string{config.UserConfigPath(), config.LocalConfigPath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, logCloser := mustLogger()
	defer logCloser.Close()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}

	sink, mixer, closeAudio := openAudio(logger, flagMute, flagVolume)
	defer closeAudio()

	ui := tui.NewUITracker(logger)
	game, err := registry.Create(runner.ID, core.Deps{Audio: sink, UI: ui})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	if c, ok := game.(registry.Configurable); ok {
		c.Configure(cfg)
	}

	var watcher *config.Watcher
	if flagWatch {
		if path := watchPath(); path == "" {
			logger.Warn("no config file to watch, hot reload disabled")
		} else if watcher, err = config.NewWatcher(path); err != nil {
			logger.Warn("config watcher unavailable", "path", path, "err", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	// Open replay storage
	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open replay database", "err", err)
			fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
			// Continue without storage - game still works
			store = nil
		} else {
			defer store.Close()
		}
	}

	res, err := tui.Run(game, tui.Options{
		Runtime: terminalRuntime(),
		Preset:  preset,
		UI:      ui,
		Mixer:   mixer,
		Watcher: watcher,
		Record:  store != nil,
		Logger:  logger,
		// Zero falls back to core.DefaultMaxFrame
		MaxFrame: cfg.World.MaxFrame(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	if store != nil && res.Recording != nil {
		saveRecording(store, logger, res)
	}

	if res.Runs > 0 {
		fmt.Printf("Runs: %d  Best: %d\n", res.Runs, res.BestScore)
	}
}

// saveRecording stores a finished session and prunes old ones. Sessions that
// never left the title screen are not kept.
func saveRecording(store *storage.Store, logger *log.Logger, res tui.Result) {
	rec := *res.Recording
	if rec.Steps == 0 || !res.State.Started {
		return
	}

	data, err := runner.MarshalRecording(rec)
	if err != nil {
		logger.Error("encode replay", "err", err)
		return
	}

	id, err := store.SaveReplay(storage.ReplayEntry{
		GameID:    runner.ID,
		Seed:      rec.Seed,
		Steps:     rec.Steps,
		Score:     res.State.Score,
		BestScore: res.BestScore,
		Runs:      res.Runs,
		Recording: data,
	})
	if err != nil {
		logger.Error("save replay", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not save replay: %v\n", err)
		return
	}
	logger.Info("replay saved", "id", id, "steps", rec.Steps, "score", res.State.Score)

	if n, err := store.PruneReplays(runner.ID, keepReplays); err != nil {
		logger.Warn("prune replays", "err", err)
	} else if n > 0 {
		logger.Debug("pruned replays", "count", n)
	}
}
