// Package tui provides the Bubble Tea integration for the runner.
// It handles the terminal UI loop, input mapping, config hot reload and
// replay playback.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/office-runner/internal/config"
)

// TickMsg is sent to trigger a render frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// configChangedMsg reports that the watched config file changed.
type configChangedMsg struct{}

// configErrMsg carries a watcher error.
type configErrMsg struct{ err error }

// waitForConfig blocks on the watcher until the next event. A nil watcher
// or closed channels end the wait loop.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			return configChangedMsg{}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrMsg{err: err}
		}
	}
}
