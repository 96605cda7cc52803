package notepad

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/quickeys/internal/keymap"
)

// Gesture is a submit signal raised by the note editor.
type Gesture int

const (
	// PrimarySubmit searches the selected destination.
	PrimarySubmit Gesture = iota + 1
	// SecondarySubmit pastes to the paste service.
	SecondarySubmit
)

func (g Gesture) String() string {
	switch g {
	case PrimarySubmit:
		return "primary-submit"
	case SecondarySubmit:
		return "secondary-submit"
	default:
		return "none"
	}
}

// GestureMsg delivers a Gesture through the Bubble Tea update loop.
type GestureMsg struct {
	Gesture Gesture
}

// KeyMap holds the editor's own bindings.
type KeyMap struct {
	Primary   key.Binding
	Secondary key.Binding
	SetMark   key.Binding
	ClearMark key.Binding
}

// DefaultKeyMap returns the stock bindings. ctrl+s stands in for
// command+enter and alt+enter for option+enter, which terminals cannot
// report.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Primary:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "search")),
		Secondary: key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("alt+enter", "paste")),
		SetMark:   key.NewBinding(key.WithKeys("ctrl+@"), key.WithHelp("ctrl+space", "mark")),
		ClearMark: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear mark")),
	}
}

// KeyMapFromRegistry builds the editor bindings from the notes context of r,
// so user overrides apply.
func KeyMapFromRegistry(r *keymap.Registry) KeyMap {
	bind := func(command, help string) key.Binding {
		keys := r.KeysFor(keymap.ContextNotes, command)
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keymap.FormatKeys(keys), help))
	}
	return KeyMap{
		Primary:   bind(keymap.CmdPrimarySubmit, "search"),
		Secondary: bind(keymap.CmdSecondarySubmit, "paste"),
		SetMark:   bind(keymap.CmdSetMark, "mark"),
		ClearMark: bind(keymap.CmdClearMark, "clear mark"),
	}
}

// Classify maps a key event to at most one gesture. Primary wins if a key
// is bound to both.
func (k KeyMap) Classify(msg tea.KeyMsg) (Gesture, bool) {
	switch {
	case key.Matches(msg, k.Primary):
		return PrimarySubmit, true
	case key.Matches(msg, k.Secondary):
		return SecondarySubmit, true
	}
	return 0, false
}
