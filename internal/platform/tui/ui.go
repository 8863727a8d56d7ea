package tui

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Screen is the top-level screen the game reports.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenRunning
	ScreenGameOver
)

// String returns the screen's name.
func (s Screen) String() string {
	switch s {
	case ScreenTitle:
		return "title"
	case ScreenRunning:
		return "running"
	case ScreenGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// UITracker implements core.UISink. It follows screen transitions so the
// help bar can show the keys that matter and keeps per-session stats.
type UITracker struct {
	mu     sync.Mutex
	logger *log.Logger
	screen Screen
	runs   int
	last   int
	best   int
}

// NewUITracker creates a tracker on the title screen.
func NewUITracker(logger *log.Logger) *UITracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &UITracker{logger: logger}
}

// ShowStart records a return to the title screen.
func (u *UITracker) ShowStart() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.screen = ScreenTitle
	u.logger.Debug("screen", "to", ScreenTitle)
}

// ShowRunning records the start of a run.
func (u *UITracker) ShowRunning() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.screen = ScreenRunning
	u.logger.Debug("screen", "to", ScreenRunning)
}

// ShowGameOver records the end of a run.
func (u *UITracker) ShowGameOver(score int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.screen = ScreenGameOver
	u.runs++
	u.last = score
	u.best = max(u.best, score)
	u.logger.Info("run over", "score", score, "best", u.best, "runs", u.runs)
}

// Screen returns the current screen.
func (u *UITracker) Screen() Screen {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.screen
}

// Stats returns completed runs, the last final score and the best one.
func (u *UITracker) Stats() (runs, last, best int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.runs, u.last, u.best
}
