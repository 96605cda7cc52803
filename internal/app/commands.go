package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/quickeys/internal/destinations"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// ToggleMsg toggles the popover. The global shortcut sends it through
	// tea.Program.Send.
	ToggleMsg struct{}

	// ErrorMsg represents an error condition.
	ErrorMsg struct {
		Err error
	}
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ReportError returns a command to report an error.
func ReportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// waitForChange blocks until the destination list changes on disk. A closed
// channel ends the subscription.
func waitForChange(ch <-chan destinations.ChangedMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return change
	}
}
