package runner

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
)

// InputEvent is a non-empty input frame at a given step index.
type InputEvent struct {
	Step    int      `yaml:"step"`
	Actions []string `yaml:"actions"`
}

// ConfigChange is a config queued with Configure before a given step.
type ConfigChange struct {
	Step   int                 `yaml:"step"`
	Config config.RunnerConfig `yaml:"config"`
}

// Recording is everything needed to re-simulate a session: the seed, the
// starting config and every input in step order.
type Recording struct {
	Seed     int64               `yaml:"seed"`
	TickRate int                 `yaml:"tick_rate"`
	Config   config.RunnerConfig `yaml:"config"`
	Steps    int                 `yaml:"steps"`
	Inputs   []InputEvent        `yaml:"inputs"`
	Changes  []ConfigChange      `yaml:"changes,omitempty"`
}

// Recorder captures the inputs fed to Game.Step.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a game reset with the given runtime
// config and game config.
func NewRecorder(runtime core.RuntimeConfig, cfg config.RunnerConfig) *Recorder {
	return &Recorder{rec: Recording{
		Seed:     runtime.Seed,
		TickRate: runtime.TickRate,
		Config:   cfg,
	}}
}

// Record notes the input of the next step. Call once per Game.Step.
func (r *Recorder) Record(in core.InputFrame) {
	if !in.Empty() {
		ev := InputEvent{Step: r.rec.Steps}
		for _, a := range in.List() {
			ev.Actions = append(ev.Actions, a.String())
		}
		r.rec.Inputs = append(r.rec.Inputs, ev)
	}
	r.rec.Steps++
}

// Reconfigure notes a config queued before the next step.
func (r *Recorder) Reconfigure(cfg config.RunnerConfig) {
	r.rec.Changes = append(r.rec.Changes, ConfigChange{Step: r.rec.Steps, Config: cfg})
}

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() Recording {
	rec := r.rec
	rec.Inputs = append([]InputEvent(nil), r.rec.Inputs...)
	rec.Changes = append([]ConfigChange(nil), r.rec.Changes...)
	return rec
}

// ErrBadRecording is returned when a recording references unknown actions
// or is out of step order.
var ErrBadRecording = errors.New("runner: bad recording")

// MarshalRecording encodes a recording as YAML.
func MarshalRecording(rec Recording) ([]byte, error) {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("runner: encode recording: %w", err)
	}
	return data, nil
}

// UnmarshalRecording decodes a YAML recording.
func UnmarshalRecording(data []byte) (Recording, error) {
	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Recording{}, fmt.Errorf("%w: %v", ErrBadRecording, err)
	}
	if err := rec.Validate(); err != nil {
		return Recording{}, err
	}
	return rec, nil
}

// Validate checks that the starting config and every recorded config
// change can drive a game.
func (rec Recording) Validate() error {
	if err := rec.Config.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRecording, err)
	}
	for _, c := range rec.Changes {
		if err := c.Config.Validate(); err != nil {
			return fmt.Errorf("%w: change at step %d: %v", ErrBadRecording, c.Step, err)
		}
	}
	return nil
}

// ReplayResult is the outcome of re-simulating a recording.
type ReplayResult struct {
	State     core.GameState
	Runs      int
	BestScore int
	Snapshot  Snapshot
}

// Replay re-simulates a recording headlessly and returns the final state.
// Collaborators in deps receive the same notifications as the live session.
func Replay(rec Recording, deps core.Deps) (ReplayResult, error) {
	if err := rec.Validate(); err != nil {
		return ReplayResult{}, err
	}

	frames := make(map[int]core.InputFrame, len(rec.Inputs))
	last := -1
	for _, ev := range rec.Inputs {
		if ev.Step <= last || ev.Step >= rec.Steps {
			return ReplayResult{}, fmt.Errorf("%w: input at step %d", ErrBadRecording, ev.Step)
		}
		last = ev.Step

		f := core.NewInputFrame()
		for _, name := range ev.Actions {
			a := core.ParseAction(name)
			if a == core.ActionNone {
				return ReplayResult{}, fmt.Errorf("%w: unknown action %q", ErrBadRecording, name)
			}
			f.Set(a)
		}
		frames[ev.Step] = f
	}

	changes := make(map[int]config.RunnerConfig, len(rec.Changes))
	for _, c := range rec.Changes {
		changes[c.Step] = c.Config
	}

	g := New(deps)
	g.Configure(rec.Config)
	g.Reset(core.RuntimeConfig{TickRate: rec.TickRate, Seed: rec.Seed})

	for step := range rec.Steps {
		if cfg, ok := changes[step]; ok {
			g.Configure(cfg)
		}
		in, ok := frames[step]
		if !ok {
			in = core.NewInputFrame()
		}
		g.Step(in)
	}

	return ReplayResult{State: g.State(), Runs: g.Runs(), BestScore: g.BestScore(), Snapshot: g.Snapshot()}, nil
}
