package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/quickeys/internal/destinations"
	"github.com/marcus/quickeys/internal/dispatch"
	"github.com/marcus/quickeys/internal/keymap"
	"github.com/marcus/quickeys/internal/mouse"
	"github.com/marcus/quickeys/internal/msg"
	"github.com/marcus/quickeys/internal/notepad"
	"github.com/marcus/quickeys/internal/state"
)

const toastDuration = 2 * time.Second

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.resize()
		return m, nil

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case msg.ToastMsg:
		if message.IsError {
			m.ShowErrorToast(message.Message, message.Duration)
		} else {
			m.ShowToast(message.Message, message.Duration)
		}
		return m, nil

	case ErrorMsg:
		m.logger.Error("error", "err", message.Err)
		m.ShowErrorToast(message.Err.Error(), toastDuration)
		return m, nil

	case ToggleMsg:
		return m, m.togglePopover()

	case destinations.ChangedMsg:
		return m, tea.Batch(m.reloadDestinations(), waitForChange(m.changes))

	case notepad.GestureMsg:
		return m, m.handleGesture(message.Gesture)

	case dispatch.PasteDoneMsg:
		return m, m.dispatcher.HandlePasteDone(message)

	case dispatch.ResetMsg:
		m.dispatcher.HandleReset(message)
		return m, nil

	case dispatch.SearchDoneMsg:
		if message.Err != nil {
			return m, msg.ShowError("Could not open browser", toastDuration)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.dispatcher.Button().Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(message)

	case tea.MouseMsg:
		return m.handleMouse(message)
	}

	if m.popover.IsShown() && !m.pane.Active() {
		var cmd tea.Cmd
		*m.notes, cmd = m.notes.Update(message)
		return m, cmd
	}
	return m, nil
}

// resize fits the editor to the popover body.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	l := m.layout()
	m.notes.SetSize(l.contentW, l.bodyHeight())
}

// togglePopover shows or hides the popover. Showing focuses the editor
// unless preferences mode is on; hiding runs the save hook.
func (m *Model) togglePopover() tea.Cmd {
	m.popover.Toggle()
	if !m.popover.IsShown() {
		return nil
	}
	m.resize()
	if m.pane.Active() {
		return nil
	}
	return m.notes.Focus()
}

// reloadDestinations re-reads the list after it changed on disk.
func (m *Model) reloadDestinations() tea.Cmd {
	targets, err := m.store.Load()
	if err != nil {
		return ReportError(fmt.Errorf("reload destinations: %w", err))
	}
	m.menu.Populate(targets)
	m.logger.Debug("destinations reloaded", "enabled", m.menu.Len())
	return nil
}

// handleGesture runs the action bound to an editor gesture.
func (m *Model) handleGesture(g notepad.Gesture) tea.Cmd {
	switch g {
	case notepad.PrimarySubmit:
		if !m.searchEnabled() {
			return nil
		}
		return m.dispatcher.SearchSelected(m.menu)
	case notepad.SecondarySubmit:
		return m.paste()
	}
	return nil
}

// paste starts a paste and, when it is in flight, the button spinner.
func (m *Model) paste() tea.Cmd {
	cmd := m.dispatcher.Paste()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// togglePreferences switches between the editor and the preferences pane.
func (m *Model) togglePreferences() tea.Cmd {
	err := m.pane.Toggle()
	if m.pane.Active() {
		m.notes.Blur()
		m.showPreview = false
	}
	var cmds []tea.Cmd
	if err != nil {
		m.logger.Warn("preferences", "err", err)
		cmds = append(cmds, msg.ShowError("Could not update destinations", toastDuration))
	}
	if !m.pane.Active() && m.popover.IsShown() {
		cmds = append(cmds, m.notes.Focus())
	}
	return tea.Batch(cmds...)
}

// stepTarget moves the destination selection and remembers it.
func (m *Model) stepTarget(forward bool) {
	if m.pane.Active() {
		return
	}
	if forward {
		m.menu.Next()
	} else {
		m.menu.Prev()
	}
	m.saveSelection()
}

func (m *Model) saveSelection() {
	it, ok := m.menu.Selected()
	if !ok {
		return
	}
	if err := state.SetSelectedTarget(it.Label); err != nil {
		m.logger.Warn("save selected target", "err", err)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.SaveNote()
	return m, tea.Quit
}

// handleKey routes key presses by context: global, then popover, then the
// active view.
func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := k.String()

	if cmd, ok := m.keymap.Lookup(key, keymap.ContextGlobal); ok {
		switch cmd {
		case keymap.CmdQuit:
			return m.quit()
		case keymap.CmdTogglePopover:
			return m, m.togglePopover()
		}
	}

	if !m.popover.IsShown() {
		return m, nil
	}

	if cmd, ok := m.keymap.Lookup(key, keymap.ContextPopover); ok {
		switch cmd {
		case keymap.CmdTogglePreferences:
			return m, m.togglePreferences()
		case keymap.CmdNextTarget:
			m.stepTarget(true)
			return m, nil
		case keymap.CmdPrevTarget:
			m.stepTarget(false)
			return m, nil
		}
	}

	if m.pane.Active() {
		return m, m.pane.Update(k)
	}

	if cmd, ok := m.keymap.Lookup(key, keymap.ContextNotes); ok {
		switch cmd {
		case keymap.CmdTogglePreview:
			m.showPreview = !m.showPreview
			return m, nil
		case keymap.CmdCopyNote:
			if err := m.clipboard.WriteAll(m.notes.AllText()); err != nil {
				m.logger.Warn("copy note", "err", err)
				return m, msg.ShowError("Copy failed", toastDuration)
			}
			return m, msg.ShowToast("Note copied", toastDuration)
		}
	}

	// Editing leaves the preview.
	m.showPreview = false
	var cmd tea.Cmd
	*m.notes, cmd = m.notes.Update(k)
	return m, cmd
}

// handleMouse hit-tests presses against the current frame. Presses that
// miss every region go to the outside-click monitor; the rest become click
// and drag actions.
func (m Model) handleMouse(e tea.MouseMsg) (tea.Model, tea.Cmd) {
	if e.Action == tea.MouseActionPress {
		m.buildHitMap()
		if m.mouse.HitMap.Test(e.X, e.Y) == nil {
			m.monitor.Dispatch(e)
			return m, nil
		}
	}

	action := m.mouse.HandleMouse(e)
	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		return m.handleClick(action.Region.ID, action.Region.Data, e)

	case mouse.ActionDrag:
		if m.mouse.DragRegion() == regionGrip {
			height := m.mouse.DragStartValue() + action.DragDY
			if m.popover.OnDrag(m.height-height, m.height) {
				m.resize()
			}
		}

	case mouse.ActionDragEnd:
		if err := state.SetPopoverHeight(m.popover.Size().Height); err != nil {
			m.logger.Warn("save popover height", "err", err)
		}
	}
	return m, nil
}

func (m Model) handleClick(id string, data any, e tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch id {
	case regionStatusIcon:
		return m, m.togglePopover()
	case regionGrip:
		m.mouse.StartDrag(e.X, e.Y, regionGrip, m.popover.Size().Height)
		return m, nil
	case regionMenuPrev:
		m.stepTarget(false)
		return m, nil
	case regionMenuNext, regionMenu:
		m.stepTarget(true)
		return m, nil
	case regionPrefs:
		return m, m.togglePreferences()
	case regionSearch:
		return m, m.handleGesture(notepad.PrimarySubmit)
	case regionPaste:
		return m, m.paste()
	case regionQuit:
		return m.quit()
	case regionPrefRow:
		if i, ok := data.(int); ok {
			m.pane.ToggleRow(i)
		}
		return m, nil
	}
	return m, nil
}
