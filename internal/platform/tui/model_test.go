package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
	"github.com/vovakirdan/office-runner/internal/games/runner"
)

type fakeMixer struct {
	muted  bool
	volume float64
}

func (f *fakeMixer) ToggleMute() bool {
	f.muted = !f.muted
	return f.muted
}

func (f *fakeMixer) Muted() bool           { return f.muted }
func (f *fakeMixer) MasterVolume() float64 { return f.volume }

func (f *fakeMixer) SetMasterVolume(v float64) {
	f.volume = min(max(v, 0), 1)
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

func newTestModel(t *testing.T, opts Options) (Model, *UITracker) {
	t.Helper()
	ui := NewUITracker(nil)
	opts.UI = ui
	if opts.Runtime.TickRate == 0 {
		opts.Runtime = testRuntime()
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = t.TempDir()
	}
	game := runner.New(core.Deps{UI: ui})
	return NewModel(game, opts), ui
}

// advance feeds n frames of exactly one step each.
func advance(m Model, start time.Time, n int) (Model, time.Time) {
	step := time.Second / time.Duration(m.runtime.TickRate)
	now := start
	if m.lastFrame.IsZero() {
		next, _ := m.Update(TickMsg(now))
		m = next.(Model)
	}
	for range n {
		now = now.Add(step)
		next, _ := m.Update(TickMsg(now))
		m = next.(Model)
	}
	return m, now
}

func press(m Model, msgs ...any) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelStartsAndRecords(t *testing.T) {
	m, ui := newTestModel(t, Options{Record: true})

	m = press(m, keyEnter)
	m, _ = advance(m, time.Unix(0, 0), 10)

	if ui.Screen() != ScreenRunning {
		t.Fatalf("screen = %v, want running", ui.Screen())
	}

	res := m.Result()
	if res.Recording == nil {
		t.Fatal("Result().Recording is nil with Record on")
	}
	if res.Recording.Steps != 10 {
		t.Errorf("recorded steps = %d, want 10", res.Recording.Steps)
	}
	if len(res.Recording.Inputs) != 1 || res.Recording.Inputs[0].Step != 0 {
		t.Fatalf("inputs = %+v, want one input at step 0", res.Recording.Inputs)
	}
	if got := res.Recording.Inputs[0].Actions; len(got) != 1 || got[0] != "Start" {
		t.Errorf("actions = %v, want [Start]", got)
	}
	if res.Recording.Seed != 42 {
		t.Errorf("recorded seed = %d, want 42", res.Recording.Seed)
	}
}

func TestModelInputConsumedOnce(t *testing.T) {
	m, _ := newTestModel(t, Options{Record: true})

	m = press(m, keyEnter)
	m, _ = advance(m, time.Unix(0, 0), 1)
	m = press(m, keySpace)
	m, _ = advance(m, time.Unix(1, 0), 5)

	rec := m.Result().Recording
	if len(rec.Inputs) != 2 {
		t.Fatalf("inputs = %+v, want 2", rec.Inputs)
	}
	if rec.Inputs[1].Step != 1 || rec.Inputs[1].Actions[0] != "Jump" {
		t.Errorf("second input = %+v, want Jump at step 1", rec.Inputs[1])
	}
}

func TestModelIgnoresKeysForOtherScreens(t *testing.T) {
	m, ui := newTestModel(t, Options{})

	m = press(m, runeKey('r'), runeKey('p'))
	m, _ = advance(m, time.Unix(0, 0), 3)

	if ui.Screen() != ScreenTitle {
		t.Errorf("screen = %v, want title", ui.Screen())
	}
	if m.gameState.Started {
		t.Error("game started without a start key")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = press(m, keyEnter)
	m, _ = advance(m, time.Unix(0, 0), 30)
	before := m.gameState

	m = press(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 120x39", m.screen.Width(), m.screen.Height())
	}
	if m.gameState != before {
		t.Errorf("state changed on resize: %+v -> %+v", before, m.gameState)
	}
}

func TestModelMute(t *testing.T) {
	muter := &fakeMixer{volume: 1}
	m, _ := newTestModel(t, Options{Mixer: muter})

	m = press(m, runeKey('m'))
	if !muter.muted || m.status != "sound off" {
		t.Errorf("after m: muted=%v status=%q", muter.muted, m.status)
	}
	m = press(m, runeKey('m'))
	if muter.muted || m.status != "sound on" {
		t.Errorf("after second m: muted=%v status=%q", muter.muted, m.status)
	}
}

func TestModelVolumeKeys(t *testing.T) {
	mixer := &fakeMixer{volume: 0.5}
	m, _ := newTestModel(t, Options{Mixer: mixer})

	tests := []struct {
		msg    any
		volume float64
		status string
	}{
		{runeKey('+'), 0.6, "volume 60%"},
		{runeKey('='), 0.7, "volume 70%"},
		{runeKey('-'), 0.6, "volume 60%"},
		{runeKey('m'), 0.6, "sound off"},
		{runeKey('+'), 0.7, "volume 70% (muted)"},
	}
	for _, tt := range tests {
		m = press(m, tt.msg)
		if math.Abs(mixer.volume-tt.volume) > 1e-9 || m.status != tt.status {
			t.Errorf("volume=%.2f status=%q, want %.2f %q", mixer.volume, m.status, tt.volume, tt.status)
		}
	}

	for range 20 {
		m = press(m, runeKey('-'))
	}
	if mixer.volume != 0 || m.status != "volume 0% (muted)" {
		t.Errorf("volume=%.2f status=%q, want clamped at 0", mixer.volume, m.status)
	}
}

func TestModelFrameCap(t *testing.T) {
	tests := []struct {
		name     string
		maxFrame time.Duration
		want     int
	}{
		{"default cap", 0, 2},
		{"configured cap", 100 * time.Millisecond, 6},
		{"uncapped", -1, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, Options{Record: true, MaxFrame: tt.maxFrame})
			start := time.Unix(0, 0)
			m = press(m, TickMsg(start), TickMsg(start.Add(time.Second)))

			if got := m.Result().Recording.Steps; got != tt.want {
				t.Errorf("steps for a 1s frame = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestModelViewShowsHelp(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	view := m.View()
	if !strings.Contains(view, "OFFICE RUNNER") {
		t.Error("title overlay missing from view")
	}
	if !strings.Contains(view, "start") {
		t.Error("start binding missing from help bar")
	}
}

func TestModelPlaybackMatchesLive(t *testing.T) {
	live, _ := newTestModel(t, Options{Record: true})
	live = press(live, keyEnter)
	now := time.Unix(0, 0)
	live, now = advance(live, now, 40)
	for range 5 {
		live = press(live, keySpace)
		live, now = advance(live, now, 25)
	}
	want := live.Result()

	replay, ui := newTestModel(t, Options{Replay: want.Recording})
	replay = press(replay, keySpace, runeKey('r'))
	replay, _ = advance(replay, time.Unix(0, 0), want.Recording.Steps+5)

	if replay.gameState != want.State {
		t.Errorf("playback state = %+v, want %+v", replay.gameState, want.State)
	}
	if replay.status != "replay finished" {
		t.Errorf("status = %q, want replay finished", replay.status)
	}
	if runs, _, _ := ui.Stats(); runs != want.Runs {
		t.Errorf("playback runs = %d, want %d", runs, want.Runs)
	}
}

func TestPlaybackNext(t *testing.T) {
	changed := config.DefaultRunnerConfig()
	changed.Scoring.TickPoints = 7

	rec := runner.Recording{
		Seed:     1,
		TickRate: 60,
		Config:   config.DefaultRunnerConfig(),
		Steps:    3,
		Inputs:   []runner.InputEvent{{Step: 0, Actions: []string{"Start"}}},
		Changes:  []runner.ConfigChange{{Step: 2, Config: changed}},
	}
	p := newPlayback(rec)
	game := runner.New(core.Deps{})

	in, ok := p.next(game)
	if !ok || !in.Has(core.ActionStart) {
		t.Fatalf("step 0 = (%v, %v), want Start", in.List(), ok)
	}
	in, ok = p.next(game)
	if !ok || !in.Empty() {
		t.Fatalf("step 1 = (%v, %v), want empty", in.List(), ok)
	}
	if _, ok = p.next(game); !ok {
		t.Fatal("step 2 missing")
	}
	if _, ok = p.next(game); ok {
		t.Error("next() past the end returned true")
	}

	game.Reset(testRuntime())
	if got := game.Config().Scoring.TickPoints; got != 7 {
		t.Errorf("config change not applied: tick points = %d", got)
	}
}
