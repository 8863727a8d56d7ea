package tui

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
	"github.com/vovakirdan/office-runner/internal/games/runner"
	"github.com/vovakirdan/office-runner/internal/registry"
)

// statusTTL is how long a status message stays in the help bar.
const statusTTL = 3 * time.Second

// volumeStep is how much one key press changes the master volume.
const volumeStep = 0.1

// Mixer is an audio output the keyboard can mute and turn up or down.
type Mixer interface {
	ToggleMute() bool
	Muted() bool
	MasterVolume() float64
	SetMasterVolume(v float64)
}

// Options configures a play session.
type Options struct {
	Runtime core.RuntimeConfig
	Preset  config.DifficultyPreset // Re-applied to reloaded configs
	UI      *UITracker              // The UI sink the game was created with
	Mixer   Mixer
	Watcher *config.Watcher   // Hot reload source; nil disables reload
	Record  bool              // Capture inputs for a replay
	Replay  *runner.Recording // Drive the game from a recording instead of the keyboard
	Logger  *log.Logger
	// MaxFrame caps the wall time consumed per rendered frame. Zero means
	// core.DefaultMaxFrame; negative disables the cap.
	MaxFrame time.Duration
	// ScreenshotDir defaults to ~/.arcade/screenshots.
	ScreenshotDir string
}

// Result summarizes a finished session.
type Result struct {
	State     core.GameState
	Runs      int
	BestScore int
	Recording *runner.Recording // Set when Options.Record was on
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	clock      *core.Clock
	opts       Options
	runtime    core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	ui         *UITracker
	logger     *log.Logger
	recorder   *runner.Recorder
	playback   *playback
	inputFrame core.InputFrame
	gameState  core.GameState
	lastFrame  time.Time
	status     string
	statusAt   time.Time
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game and resets it.
func NewModel(game registry.Game, opts Options) Model {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	maxFrame := opts.MaxFrame
	if maxFrame == 0 {
		maxFrame = core.DefaultMaxFrame
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ui := opts.UI
	if ui == nil {
		ui = NewUITracker(logger)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(rt.ScreenW, max(1, rt.ScreenH-1)),
		clock:      core.NewClock(rt.TickRate, maxFrame),
		opts:       opts,
		runtime:    rt,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		ui:         ui,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
	}

	if opts.Replay != nil {
		m.playback = newPlayback(*opts.Replay)
		rt.Seed = opts.Replay.Seed
		m.runtime = rt
		if c, ok := game.(registry.Configurable); ok {
			c.Configure(opts.Replay.Config)
		}
	}

	game.Reset(m.runtime)
	m.gameState = game.State()

	if opts.Record && m.playback == nil {
		cfg := config.DefaultRunnerConfig()
		if rg, ok := game.(*runner.Game); ok {
			cfg = rg.Config()
		}
		m.recorder = runner.NewRecorder(m.runtime, cfg)
	}

	logger.Info("session start", "game", game.ID(), "seed", m.runtime.Seed, "tick_rate", m.runtime.TickRate,
		"record", m.recorder != nil, "playback", m.playback != nil)
	return m
}

// Init starts the tick loop and, if configured, the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.runtime.TickRate), waitForConfig(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case configChangedMsg:
		m.reloadConfig()
		return m, waitForConfig(m.opts.Watcher)

	case configErrMsg:
		m.logger.Warn("config watcher", "err", msg.err)
		return m, waitForConfig(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.activeKeys()

	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.VolumeUp):
		m.changeVolume(volumeStep)
		return m, nil
	case key.Matches(msg, keys.VolumeDown):
		m.changeVolume(-volumeStep)
		return m, nil
	}

	switch action := keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionMute:
		m.toggleMute()
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// activeKeys returns the bindings for the screen the game is on.
func (m Model) activeKeys() KeyMap {
	return m.keys.ForScreen(m.ui.Screen(), m.playback != nil)
}

// handleResize processes window resize events. The world is sized in its
// own units, so a resize only changes the render target.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick converts elapsed wall time into fixed simulation steps.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.lastFrame.IsZero() {
		m.lastFrame = now
		return m, tickCmd(m.runtime.TickRate)
	}

	steps := m.clock.Advance(now.Sub(m.lastFrame))
	m.lastFrame = now

	for range steps {
		m.step()
	}

	return m, tickCmd(m.runtime.TickRate)
}

// step feeds one input frame to the game. Pending keyboard input is
// consumed by the first step of a frame.
func (m *Model) step() {
	in := m.inputFrame
	if m.playback != nil {
		var ok bool
		in, ok = m.playback.next(m.game)
		if !ok {
			if !m.playback.announced {
				m.playback.announced = true
				m.setStatus("replay finished")
				m.logger.Info("replay finished", "steps", m.playback.rec.Steps, "score", m.gameState.Score)
			}
			return
		}
	} else if m.recorder != nil {
		m.recorder.Record(in)
	}

	result := m.game.Step(in)
	m.gameState = result.State
	m.inputFrame.Clear()
}

// reloadConfig reads the watched file and queues it for the next run.
func (m *Model) reloadConfig() {
	if m.opts.Watcher == nil || m.playback != nil {
		return
	}

	cfg, err := config.Load(m.opts.Watcher.Path())
	if err != nil {
		m.logger.Warn("config reload failed", "path", m.opts.Watcher.Path(), "err", err)
		m.setStatus("config error, keeping current settings")
		return
	}
	if m.opts.Preset != "" {
		config.ApplyPreset(&cfg, m.opts.Preset)
	}

	c, ok := m.game.(registry.Configurable)
	if !ok {
		return
	}
	c.Configure(cfg)
	if m.recorder != nil {
		m.recorder.Reconfigure(cfg)
	}
	m.logger.Info("config reloaded", "path", m.opts.Watcher.Path())
	m.setStatus("config reloaded, applies on restart")
}

func (m *Model) toggleMute() {
	if m.opts.Mixer == nil {
		return
	}
	if m.opts.Mixer.ToggleMute() {
		m.setStatus("sound off")
	} else {
		m.setStatus("sound on")
	}
}

func (m *Model) changeVolume(delta float64) {
	mixer := m.opts.Mixer
	if mixer == nil {
		return
	}
	mixer.SetMasterVolume(mixer.MasterVolume() + delta)

	status := fmt.Sprintf("volume %d%%", int(math.Round(mixer.MasterVolume()*100)))
	if mixer.Muted() {
		status += " (muted)"
	}
	m.setStatus(status)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusAt = time.Now()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("saved " + filepath.Base(path))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := helpStyle.Render(m.help.View(m.activeKeys()))
	if m.status != "" && time.Since(m.statusAt) < statusTTL {
		footer = statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Result summarizes the session so far.
func (m Model) Result() Result {
	runs, _, best := m.ui.Stats()
	res := Result{State: m.gameState, Runs: runs, BestScore: best}
	if m.recorder != nil {
		rec := m.recorder.Recording()
		res.Recording = &rec
	}
	return res
}

// Run starts the Bubble Tea program and returns the session result.
func Run(game registry.Game, opts Options) (Result, error) {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return model.Result(), nil
	}
	m.logger.Info("session end", "score", m.gameState.Score, "steps", m.recordedSteps())
	return m.Result(), nil
}

func (m Model) recordedSteps() int {
	if m.recorder == nil {
		return 0
	}
	return m.recorder.Recording().Steps
}
