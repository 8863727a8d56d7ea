package runner

import (
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
)

type fakeAudio struct {
	events []string
}

func (a *fakeAudio) Play(s core.Sound) { a.events = append(a.events, s.String()) }
func (a *fakeAudio) StartMusic()       { a.events = append(a.events, "music:start") }
func (a *fakeAudio) StopMusic()        { a.events = append(a.events, "music:stop") }

type fakeUI struct {
	events    []string
	lastScore int
}

func (u *fakeUI) ShowStart()   { u.events = append(u.events, "start") }
func (u *fakeUI) ShowRunning() { u.events = append(u.events, "running") }
func (u *fakeUI) ShowGameOver(score int) {
	u.events = append(u.events, "game_over")
	u.lastScore = score
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

// newRunningGame returns a game past the title screen with recorded
// collaborators cleared.
func newRunningGame(t *testing.T) (*Game, *fakeAudio, *fakeUI) {
	t.Helper()
	audio, ui := &fakeAudio{}, &fakeUI{}
	g := New(core.Deps{Audio: audio, UI: ui})
	g.Reset(testRuntime())

	jump := core.NewInputFrame()
	jump.Set(core.ActionStart)
	g.Step(jump)
	if !g.State().Started {
		t.Fatal("game did not start")
	}

	audio.events = nil
	ui.events = nil
	return g, audio, ui
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameTitleScreen(t *testing.T) {
	audio, ui := &fakeAudio{}, &fakeUI{}
	g := New(core.Deps{Audio: audio, UI: ui})
	g.Reset(testRuntime())

	res := g.Step(input())
	if res.Ticked || res.State.Started {
		t.Fatal("expected title screen to hold without input")
	}

	res = g.Step(input(core.ActionJump))
	if !res.State.Started {
		t.Fatal("expected jump to start the run")
	}
	if res.Ticked {
		t.Error("starting step should not advance the simulation")
	}

	if !slices.Equal(ui.events, []string{"start", "start", "running"}) {
		t.Errorf("unexpected UI events %v", ui.events)
	}
	if !slices.Equal(audio.events, []string{"music:start"}) {
		t.Errorf("unexpected audio events %v", audio.events)
	}
}

func TestGameJumpNotifiesAudio(t *testing.T) {
	g, audio, _ := newRunningGame(t)

	g.Step(input(core.ActionJump))
	if g.Player().VelocityY >= 0 {
		t.Errorf("expected upward velocity after jump, got %.2f", g.Player().VelocityY)
	}
	if !slices.Equal(audio.events, []string{"jump"}) {
		t.Errorf("unexpected audio events %v", audio.events)
	}
}

func TestGameObstacleEndsRun(t *testing.T) {
	g, audio, ui := newRunningGame(t)
	g.obstacles.obstacles = append(g.obstacles.obstacles,
		Obstacle{Kind: KindCabinet, X: 150, Y: 250, Width: 200, Height: 200})

	res := g.Step(input())
	if !res.State.GameOver {
		t.Fatal("expected game over on obstacle overlap")
	}
	if !slices.Equal(audio.events, []string{"music:stop", "game_over"}) {
		t.Errorf("unexpected audio events %v", audio.events)
	}
	if !slices.Equal(ui.events, []string{"game_over"}) || ui.lastScore != 0 {
		t.Errorf("unexpected UI events %v score %d", ui.events, ui.lastScore)
	}

	// Terminal until restart
	score := g.State().Score
	res = g.Step(input(core.ActionJump))
	if res.Ticked || g.State().Score != score {
		t.Error("game over state advanced")
	}
}

func TestGameInvincibleIgnoresObstacles(t *testing.T) {
	g, _, _ := newRunningGame(t)
	g.Player().ApplyPowerUp(EffectInvincible, 5000, 0)
	g.obstacles.obstacles = append(g.obstacles.obstacles,
		Obstacle{Kind: KindCabinet, X: 150, Y: 250, Width: 200, Height: 200})

	for range 5 {
		if g.Step(input()).State.GameOver {
			t.Fatal("invincible player hit an obstacle")
		}
	}
}

func TestGameFloorEndsRun(t *testing.T) {
	g, _, _ := newRunningGame(t)
	floorY := g.Config().World.FloorY()

	for range 100 {
		if g.Step(input()).State.GameOver {
			break
		}
		if b := g.Player().Bounds(); b.Bottom() > floorY {
			t.Fatalf("player below floor: bottom=%.2f", b.Bottom())
		}
	}

	if !g.State().GameOver {
		t.Fatal("expected game over after falling to the floor")
	}
	if b := g.Player().Bounds(); b.Bottom() != floorY {
		t.Errorf("expected player clamped to floor, bottom=%.2f", b.Bottom())
	}
}

func TestGameCeilingEndsRun(t *testing.T) {
	g, _, _ := newRunningGame(t)
	g.Player().Y = 5
	g.Player().VelocityY = -10

	if !g.Step(input()).State.GameOver {
		t.Errorf("expected game over above the ceiling, y=%.2f", g.Player().Y)
	}
}

func TestGameCollectCoffee(t *testing.T) {
	g, audio, _ := newRunningGame(t)
	g.score = 40
	g.collectibles.items = append(g.collectibles.items, coffeeAt(200, 300))

	g.Step(input())

	if g.State().Score != 50 {
		t.Errorf("expected score 50, got %d", g.State().Score)
	}
	p := g.Player()
	if !p.Active(EffectSpeed) {
		t.Fatal("expected speed boost active")
	}
	if got := p.Remaining(EffectSpeed); got != 8000 {
		t.Errorf("expected 8000ms remaining, got %.1f", got)
	}
	if got := p.PowerUps().Speed.TargetScore; got != 100 {
		t.Errorf("expected target score 100, got %d", got)
	}
	if !slices.Contains(audio.events, "collect") {
		t.Errorf("expected collect sound, got %v", audio.events)
	}

	snap := g.Snapshot()
	if snap.LastReward == nil || snap.LastReward.Kind != KindCoffee {
		t.Errorf("expected snapshot to report collected coffee, got %+v", snap.LastReward)
	}
}

func TestGameDoublePointsCollection(t *testing.T) {
	g, _, _ := newRunningGame(t)
	g.Player().ApplyPowerUp(EffectDoublePoints, 10000, 0)

	stapler := coffeeAt(200, 300)
	stapler.reward = Reward{Kind: KindStapler, Points: 15, Effect: EffectDoublePoints, DurationMs: 10000}
	g.collectibles.items = append(g.collectibles.items, stapler)

	g.Step(input())

	if g.State().Score != 30 {
		t.Errorf("expected doubled score 30, got %d", g.State().Score)
	}
}

func TestGameScoreCadence(t *testing.T) {
	tests := []struct {
		name   string
		double bool
		steps  int
		want   int
	}{
		{"plain", false, 20, 2},
		{"partial interval", false, 19, 1},
		{"double points", true, 20, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, _ := newRunningGame(t)
			if tt.double {
				g.Player().ApplyPowerUp(EffectDoublePoints, 10000, 0)
			}
			for range tt.steps {
				g.Step(input())
			}
			if g.State().GameOver {
				t.Fatal("unexpected game over")
			}
			if g.State().Score != tt.want {
				t.Errorf("expected score %d, got %d", tt.want, g.State().Score)
			}
		})
	}
}

func TestGameDifficultyFollowsScore(t *testing.T) {
	g, _, _ := newRunningGame(t)
	g.score = 250

	g.Step(input())

	snap := g.Snapshot()
	if snap.Level != 3 {
		t.Errorf("expected level 3, got %d", snap.Level)
	}
	if snap.Speed != 6 {
		t.Errorf("expected speed 6, got %.2f", snap.Speed)
	}
}

func TestGamePause(t *testing.T) {
	g, _, _ := newRunningGame(t)
	g.Step(input())

	res := g.Step(input(core.ActionPause))
	if !res.State.Paused || res.Ticked {
		t.Fatal("expected pause without tick")
	}

	before := g.Snapshot()
	for range 10 {
		g.Step(input(core.ActionJump))
	}
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("state changed while paused")
	}

	res = g.Step(input(core.ActionPause))
	if res.State.Paused || !res.Ticked {
		t.Error("expected resume to tick")
	}
}

func TestGameRestart(t *testing.T) {
	g, audio, ui := newRunningGame(t)
	g.Player().ApplyPowerUp(EffectMagnet, 10000, 0)
	g.collectibles.items = append(g.collectibles.items, coffeeAt(600, 100))
	for range 100 {
		if g.Step(input()).State.GameOver {
			break
		}
	}
	if !g.State().GameOver {
		t.Fatal("setup: expected game over")
	}

	// Restart is ignored until the run has ended, and jump does not restart
	g.Step(input(core.ActionJump))
	if !g.State().GameOver {
		t.Fatal("jump restarted the game")
	}

	audio.events = nil
	ui.events = nil
	g.Step(input(core.ActionRestart))

	state := g.State()
	if state.GameOver || !state.Started || state.Score != 0 || state.Level != 1 {
		t.Fatalf("unexpected state after restart %+v", state)
	}

	cfg := g.Config()
	p := g.Player()
	if p.X != cfg.Player.X || p.Y != cfg.Player.Y || p.VelocityY != 0 {
		t.Errorf("player not reset: %+v", p.Bounds())
	}
	if len(p.ActiveEffects()) != 0 {
		t.Errorf("power-ups not cleared: %v", p.ActiveEffects())
	}

	snap := g.Snapshot()
	if snap.Tick != 0 || len(snap.Obstacles) != 0 || len(snap.Collectibles) != 0 {
		t.Errorf("world not cleared: tick=%d obstacles=%d collectibles=%d",
			snap.Tick, len(snap.Obstacles), len(snap.Collectibles))
	}
	if snap.Runs != 1 {
		t.Errorf("expected 1 completed run, got %d", snap.Runs)
	}

	if !slices.Equal(audio.events, []string{"music:start"}) {
		t.Errorf("unexpected audio events %v", audio.events)
	}
	if !slices.Equal(ui.events, []string{"running"}) {
		t.Errorf("unexpected UI events %v", ui.events)
	}
}

func TestGameConfigureAppliesOnRestart(t *testing.T) {
	g, _, _ := newRunningGame(t)

	cfg := config.DefaultRunnerConfig()
	cfg.Scoring.TickPoints = 5
	g.Configure(cfg)

	for range 10 {
		g.Step(input())
	}
	if g.State().Score != 1 {
		t.Fatalf("config applied mid-run, score %d", g.State().Score)
	}

	for range 100 {
		if g.Step(input()).State.GameOver {
			break
		}
	}
	g.Step(input(core.ActionRestart))
	for range 10 {
		g.Step(input())
	}
	if g.State().Score != 5 {
		t.Errorf("expected new tick points after restart, score %d", g.State().Score)
	}
}

// scriptedInputs starts the game, jumps periodically and restarts after
// every game over.
func scriptedInputs(n int) []core.InputFrame {
	frames := make([]core.InputFrame, n)
	for i := range frames {
		frames[i] = core.NewInputFrame()
		switch {
		case i == 0:
			frames[i].Set(core.ActionStart)
		case i%23 == 0:
			frames[i].Set(core.ActionJump)
		case i%97 == 0:
			frames[i].Set(core.ActionRestart)
		}
	}
	return frames
}

func TestGameDeterminism(t *testing.T) {
	frames := scriptedInputs(3000)

	run := func() Snapshot {
		g := New(core.Deps{})
		g.Reset(testRuntime())
		for _, in := range frames {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("determinism failed: hashes differ %d vs %d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score || snap1.Runs != snap2.Runs {
		t.Errorf("determinism failed: score %d/%d runs %d/%d", snap1.Score, snap2.Score, snap1.Runs, snap2.Runs)
	}
}

func TestGameRender(t *testing.T) {
	g, _, _ := newRunningGame(t)
	g.obstacles.obstacles = append(g.obstacles.obstacles,
		Obstacle{Kind: KindCabinet, X: 600, Y: 480, Width: 60, Height: 100})
	g.collectibles.items = append(g.collectibles.items, coffeeAt(500, 200))
	g.Player().ApplyPowerUp(EffectDoublePoints, 10000, 0)

	screen := core.NewScreen(80, 24)
	snap := g.Snapshot()
	DrawSnapshot(screen, &snap, 0)

	out := screen.String()
	for _, want := range []string{"Score: 0", "Lv 1", "Double Points", string(PlayerChar), "▓", "●", string(FloorChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("game over overlay shown while running")
	}
}

func TestGameRenderOverlays(t *testing.T) {
	g := New(core.Deps{})
	g.Reset(testRuntime())
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "OFFICE RUNNER") {
		t.Error("expected title overlay")
	}

	g.Step(input(core.ActionStart))
	g.Step(input(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected pause overlay")
	}
}
