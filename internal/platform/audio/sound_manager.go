// Package audio plays the runner's sound effects and background music
// through the system speaker.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/office-runner/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Options configures a SoundManager.
type Options struct {
	MasterVolume float64 // 0..1
	EffectVolume float64 // 0..1, relative to master
	MusicVolume  float64 // 0..1, relative to master
	Muted        bool
	Logger       *log.Logger
}

// DefaultOptions returns full master volume with effects louder than music.
func DefaultOptions() Options {
	return Options{
		MasterVolume: 1,
		EffectVolume: 0.7,
		MusicVolume:  0.5,
	}
}

// SoundManager implements core.AudioSink on top of a beep mixer.
// Calls never block on playback; before Init (or after a failed Init)
// every call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	opts        Options
	logger      *log.Logger
	mixer       *beep.Mixer
	master      *effects.Volume
	music       *beep.Ctrl
	musicWanted bool
	muted       bool
	initialized bool
}

// NewSoundManager creates a sound manager. Call Init to open the speaker.
func NewSoundManager(opts Options) *SoundManager {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	mixer := &beep.Mixer{}
	return &SoundManager{
		opts:   opts,
		logger: logger,
		mixer:  mixer,
		master: newVolume(mixer, opts.MasterVolume),
		muted:  opts.Muted,
	}
}

// Init opens the speaker and starts the mixer.
func (sm *SoundManager) Init() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	sm.master.Silent = sm.muted || sm.opts.MasterVolume <= 0
	speaker.Play(sm.master)
	sm.initialized = true
	sm.logger.Debug("audio initialized", "rate", int(sampleRate), "muted", sm.muted)
	return nil
}

// Close stops all sounds and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.music = nil
	sm.initialized = false
}

// Play starts a one-shot effect mixed over whatever is playing.
func (sm *SoundManager) Play(s core.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	fx := NewEffect(s, sampleRate)
	if fx == nil {
		sm.logger.Warn("unknown sound", "sound", s)
		return
	}
	sm.add(newVolume(fx, sm.opts.EffectVolume))
}

// StartMusic (re)starts the background loop from the beginning.
func (sm *SoundManager) StartMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.musicWanted = true
	sm.startMusic()
}

// StopMusic stops the background loop.
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.musicWanted = false
	sm.stopMusic()
}

// ToggleMute flips the mute state and returns true if now muted.
// Unmuting resumes the music if a run is in progress.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.initialized {
		speaker.Lock()
		sm.master.Silent = sm.muted || sm.opts.MasterVolume <= 0
		speaker.Unlock()
	}

	if sm.muted {
		sm.stopMusic()
	} else if sm.musicWanted {
		sm.startMusic()
	}
	return sm.muted
}

// Muted reports whether output is muted.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// MasterVolume returns the overall volume in 0..1.
func (sm *SoundManager) MasterVolume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.opts.MasterVolume
}

// SetMasterVolume sets the overall volume, clamped to 0..1.
func (sm *SoundManager) SetMasterVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	v = core.ClampF(v, 0, 1)
	sm.opts.MasterVolume = v

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.master.Silent = sm.muted || v <= 0
	if v > 0 {
		sm.master.Volume = math.Log2(v)
	}
}

func (sm *SoundManager) startMusic() {
	if !sm.initialized || sm.muted {
		return
	}
	sm.stopMusic()
	sm.music = &beep.Ctrl{Streamer: newVolume(NewMusic(sampleRate), sm.opts.MusicVolume)}
	sm.add(sm.music)
}

func (sm *SoundManager) stopMusic() {
	if sm.music == nil {
		return
	}
	if sm.initialized {
		speaker.Lock()
		sm.music.Streamer = nil // A Ctrl without a streamer drains from the mixer
		speaker.Unlock()
	}
	sm.music = nil
}

// add mixes s in; the speaker lock keeps the mixer consistent with the
// audio goroutine.
func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
