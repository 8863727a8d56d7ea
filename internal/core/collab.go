package core

// Sound identifies a one-shot sound effect.
type Sound int

const (
	SoundJump Sound = iota
	SoundCollect
	SoundGameOver
)

// String returns the sound's name.
func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundCollect:
		return "collect"
	case SoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// AudioSink receives fire-and-forget audio notifications from a game.
// Implementations must not block the caller.
type AudioSink interface {
	Play(s Sound)
	StartMusic()
	StopMusic()
}

// UISink receives screen transition notifications from a game.
type UISink interface {
	ShowStart()
	ShowRunning()
	ShowGameOver(score int)
}

// Deps bundles the collaborators a game is constructed with.
// Nil fields are replaced with no-op implementations.
type Deps struct {
	Audio AudioSink
	UI    UISink
}

// WithDefaults returns a copy of d with nil collaborators replaced by no-ops.
func (d Deps) WithDefaults() Deps {
	if d.Audio == nil {
		d.Audio = NopAudio{}
	}
	if d.UI == nil {
		d.UI = NopUI{}
	}
	return d
}

// NopAudio discards all audio notifications.
type NopAudio struct{}

func (NopAudio) Play(Sound)  {}
func (NopAudio) StartMusic() {}
func (NopAudio) StopMusic()  {}

// NopUI discards all UI notifications.
type NopUI struct{}

func (NopUI) ShowStart()       {}
func (NopUI) ShowRunning()     {}
func (NopUI) ShowGameOver(int) {}
