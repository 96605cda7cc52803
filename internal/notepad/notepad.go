// Package notepad is the note editor: a textarea with a mark-based selection
// that raises submit gestures instead of inserting text for them.
package notepad

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Model captures note text.
type Model struct {
	textarea textarea.Model
	keys     KeyMap

	mark    int // rune offset, -1 when unset
	focused bool

	// restored is the text handed to Restore, returned verbatim until the
	// first edit. The textarea expands tabs and splits "\r\n".
	restored  string
	unchanged bool
}

// New returns an empty, unfocused editor.
func New(keys KeyMap) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a note…"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Blur()

	return Model{
		textarea: ta,
		keys:     keys,
		mark:     -1,
	}
}

// AllText returns the full buffer.
func (m Model) AllText() string {
	if m.unchanged {
		return m.restored
	}
	return m.textarea.Value()
}

// SelectionOrAllText returns the selected text when a non-empty selection
// exists, else the full buffer.
func (m Model) SelectionOrAllText() string {
	value := m.textarea.Value()
	if sel, ok := selection(value, m.mark, m.cursorOffset()); ok {
		return sel
	}
	return m.AllText()
}

// HasSelection reports whether a non-empty selection exists.
func (m Model) HasSelection() bool {
	_, ok := selection(m.textarea.Value(), m.mark, m.cursorOffset())
	return ok
}

// Restore inserts text at the current edit position. It is meant to run
// once, when the saved note is loaded.
func (m *Model) Restore(text string) {
	if text == "" {
		return
	}
	empty := m.textarea.Value() == ""
	m.textarea.InsertString(text)
	m.restored = text
	m.unchanged = empty
}

// SetMark anchors the selection at the cursor.
func (m *Model) SetMark() {
	m.mark = m.cursorOffset()
}

// ClearMark drops the selection.
func (m *Model) ClearMark() {
	m.mark = -1
}

// Focus gives the textarea keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.textarea.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.textarea.Blur()
}

// Focused reports whether the editor has focus.
func (m Model) Focused() bool { return m.focused }

// SetSize sizes the textarea.
func (m *Model) SetSize(width, height int) {
	m.textarea.SetWidth(width)
	m.textarea.SetHeight(height)
}

// Update routes a message to the editor. Gesture keys produce a GestureMsg
// command and never reach the textarea.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if g, ok := m.keys.Classify(keyMsg); ok {
			return m, func() tea.Msg { return GestureMsg{Gesture: g} }
		}
		switch {
		case key.Matches(keyMsg, m.keys.SetMark):
			m.SetMark()
			return m, nil
		case key.Matches(keyMsg, m.keys.ClearMark):
			m.ClearMark()
			return m, nil
		}
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if m.unchanged && m.textarea.Value() != before {
		m.unchanged = false
	}
	if n := len([]rune(m.textarea.Value())); m.mark > n {
		m.mark = n
	}
	return m, cmd
}

// View renders the textarea.
func (m Model) View() string {
	return m.textarea.View()
}

// cursorOffset is the cursor position as a rune offset into Value().
func (m Model) cursorOffset() int {
	info := m.textarea.LineInfo()
	return offsetAt(m.textarea.Value(), m.textarea.Line(), info.StartColumn+info.ColumnOffset)
}

// offsetAt converts a (row, col) rune position into an offset into value.
func offsetAt(value string, row, col int) int {
	lines := strings.Split(value, "\n")
	if row >= len(lines) {
		return len([]rune(value))
	}
	offset := 0
	for i := 0; i < row; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	if n := len([]rune(lines[row])); col > n {
		col = n
	}
	if col < 0 {
		col = 0
	}
	return offset + col
}

// selection returns the runes between mark and cursor.
func selection(value string, mark, cursor int) (string, bool) {
	if mark < 0 || mark == cursor {
		return "", false
	}
	runes := []rune(value)
	start, end := mark, cursor
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return "", false
	}
	return string(runes[start:end]), true
}
