package tui

import (
	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
	"github.com/vovakirdan/office-runner/internal/games/runner"
	"github.com/vovakirdan/office-runner/internal/registry"
)

// playback feeds a recording to the game one step at a time.
type playback struct {
	rec       runner.Recording
	inputs    map[int]core.InputFrame
	changes   map[int]config.RunnerConfig
	step      int
	announced bool
}

func newPlayback(rec runner.Recording) *playback {
	p := &playback{
		rec:     rec,
		inputs:  make(map[int]core.InputFrame, len(rec.Inputs)),
		changes: make(map[int]config.RunnerConfig, len(rec.Changes)),
	}
	for _, ev := range rec.Inputs {
		f := core.NewInputFrame()
		for _, name := range ev.Actions {
			f.Set(core.ParseAction(name))
		}
		p.inputs[ev.Step] = f
	}
	for _, c := range rec.Changes {
		p.changes[c.Step] = c.Config
	}
	return p
}

// next returns the input for the next step, applying any config change
// recorded before it. Returns false once the recording is exhausted.
func (p *playback) next(game registry.Game) (core.InputFrame, bool) {
	if p.step >= p.rec.Steps {
		return core.InputFrame{}, false
	}
	if cfg, ok := p.changes[p.step]; ok {
		if c, ok := game.(registry.Configurable); ok {
			c.Configure(cfg)
		}
	}

	in, ok := p.inputs[p.step]
	if !ok {
		in = core.NewInputFrame()
	}
	p.step++
	return in, true
}
