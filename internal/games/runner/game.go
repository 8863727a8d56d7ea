// Package runner implements Office Runner, a side-scrolling endless runner
// where the player jumps over office furniture and grabs supplies that grant
// temporary power-ups.
package runner

import (
	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
	"github.com/vovakirdan/office-runner/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "runner"

// Game is the orchestrator: it owns the player, both spawn managers and the
// difficulty controller, and advances them in a fixed order each tick.
type Game struct {
	deps    core.Deps
	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	pending *config.RunnerConfig // Applied on the next Reset or Restart
	stepMs  float64

	player       *Player
	obstacles    *ObstacleManager
	collectibles *CollectibleManager
	difficulty   *config.Difficulty

	score      int
	frameCount int
	runs       int // Completed runs (game overs) since Reset
	best       int // Best final score since Reset
	started    bool
	gameOver   bool
	paused     bool
	lastReward *Reward
}

// New creates a game wired to the given collaborators, using the built-in
// default config until Configure is called.
func New(deps core.Deps) *Game {
	g := &Game{
		deps: deps.WithDefaults(),
		cfg:  config.DefaultRunnerConfig(),
	}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Office Runner"
}

// Configure queues a config to take effect on the next Reset or Restart.
// A run in progress keeps its config.
func (g *Game) Configure(cfg config.RunnerConfig) {
	g.pending = &cfg
}

// Config returns the config of the current run.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Reset rebuilds the world from scratch and returns to the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.applyPending()

	g.stepMs = core.NewClock(runtime.TickRate, 0).StepMillis()
	g.obstacles = NewObstacleManager(runtime.Seed, g.cfg.World, g.cfg.Obstacles)
	g.collectibles = NewCollectibleManager(runtime.Seed+1, g.cfg.World, g.cfg.Collectibles)
	g.difficulty = config.NewDifficulty(g.cfg.Difficulty)
	g.runs = 0
	g.best = 0
	g.started = false
	g.resetRun()

	g.deps.UI.ShowStart()
}

// resetRun restores per-run state: player, entities, difficulty and score.
func (g *Game) resetRun() {
	g.player = NewPlayer(g.cfg)
	g.obstacles.Reset()
	g.collectibles.Reset()
	g.difficulty.Reset()
	g.score = 0
	g.frameCount = 0
	g.gameOver = false
	g.paused = false
	g.lastReward = nil
}

func (g *Game) applyPending() {
	if g.pending == nil {
		return
	}
	g.cfg = *g.pending
	g.pending = nil
}

// Start leaves the title screen and begins the first run.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	g.deps.Audio.StartMusic()
	g.deps.UI.ShowRunning()
}

// Restart begins a new run after a game over. The spawn RNG streams
// continue so a whole session stays reproducible from one seed.
func (g *Game) Restart() {
	if !g.gameOver {
		return
	}
	if g.pending != nil {
		g.applyPending()
		g.obstacles = NewObstacleManager(g.runtime.Seed+int64(2*g.runs), g.cfg.World, g.cfg.Obstacles)
		g.collectibles = NewCollectibleManager(g.runtime.Seed+int64(2*g.runs)+1, g.cfg.World, g.cfg.Collectibles)
		g.difficulty = config.NewDifficulty(g.cfg.Difficulty)
	}
	g.resetRun()
	g.deps.Audio.StartMusic()
	g.deps.UI.ShowRunning()
}

// Jump makes the player jump. Ignored unless a run is in progress.
func (g *Game) Jump() {
	if !g.running() {
		return
	}
	g.player.Jump()
	g.deps.Audio.Play(core.SoundJump)
}

// TogglePause pauses or resumes a run in progress.
func (g *Game) TogglePause() {
	if !g.started || g.gameOver {
		return
	}
	g.paused = !g.paused
}

func (g *Game) running() bool {
	return g.started && !g.gameOver && !g.paused
}

// Step maps one input frame onto commands and advances one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch {
	case !g.started:
		if in.Has(core.ActionJump) || in.Has(core.ActionStart) {
			g.Start()
		}
		return core.StepResult{State: g.State()}
	case g.gameOver:
		if in.Has(core.ActionRestart) {
			g.Restart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.TogglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.Jump()
	}

	g.Tick(g.stepMs)
	return core.StepResult{State: g.State(), Ticked: true}
}

// Tick advances the simulation by dtMs milliseconds of game time.
// Does nothing unless a run is in progress.
func (g *Game) Tick(dtMs float64) {
	if !g.running() {
		return
	}

	g.frameCount++
	g.lastReward = nil

	g.difficulty.Update(g.score)
	speed := g.difficulty.Speed()
	g.obstacles.SetSpawnInterval(g.difficulty.ObstacleInterval())
	g.collectibles.SetSpawnInterval(g.difficulty.CollectibleInterval())

	g.player.Update(dtMs, g.score)
	g.obstacles.Update(speed)
	g.collectibles.Update(speed, g.player)

	g.resolveCollisions()
	if g.gameOver {
		return
	}

	if g.frameCount%g.cfg.Scoring.TickInterval == 0 {
		g.score += g.cfg.Scoring.TickPoints * g.multiplier()
	}
}

// resolveCollisions checks floor, ceiling, obstacles and collectibles in
// that order. The first fatal hit ends the run.
func (g *Game) resolveCollisions() {
	b := g.player.Bounds()
	floorY := g.cfg.World.FloorY()

	if b.Bottom() >= floorY || b.Y < 0 {
		g.endRun()
		return
	}

	if !g.player.Active(EffectInvincible) && g.obstacles.CheckCollision(b) {
		g.endRun()
		return
	}

	reward, ok := g.collectibles.CheckCollisions(b)
	if !ok {
		return
	}
	g.deps.Audio.Play(core.SoundCollect)
	g.score += reward.Points * g.multiplier()
	if reward.Effect != EffectNone {
		g.player.ApplyPowerUp(reward.Effect, reward.DurationMs, g.score)
	}
	g.lastReward = &reward
}

func (g *Game) multiplier() int {
	if g.player.Active(EffectDoublePoints) {
		return g.cfg.Scoring.DoubleMultiplier
	}
	return 1
}

func (g *Game) endRun() {
	g.gameOver = true
	g.runs++
	g.best = max(g.best, g.score)
	g.deps.Audio.StopMusic()
	g.deps.Audio.Play(core.SoundGameOver)
	g.deps.UI.ShowGameOver(g.score)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.difficulty.Level(),
		Started:  g.started,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Player returns the player.
func (g *Game) Player() *Player {
	return g.player
}

// Runs returns the number of runs that ended since the last Reset.
func (g *Game) Runs() int {
	return g.runs
}

// BestScore returns the best final score since the last Reset.
func (g *Game) BestScore() int {
	return g.best
}

func init() {
	registry.Register(ID, func(deps core.Deps) registry.Game {
		return New(deps)
	})
}
