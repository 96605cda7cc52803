package keymap

// Contexts, from outermost to innermost.
const (
	ContextGlobal      = "global"
	ContextPopover     = "popover"
	ContextNotes       = "notes"
	ContextPreferences = "preferences"
)

// Commands.
const (
	CmdQuit              = "quit"
	CmdTogglePopover     = "toggle-popover"
	CmdTogglePreferences = "toggle-preferences"
	CmdNextTarget        = "next-target"
	CmdPrevTarget        = "prev-target"
	CmdPrimarySubmit     = "primary-submit"
	CmdSecondarySubmit   = "secondary-submit"
	CmdSetMark           = "set-mark"
	CmdClearMark         = "clear-mark"
	CmdTogglePreview     = "toggle-preview"
	CmdCopyNote          = "copy-note"
	CmdCursorUp          = "cursor-up"
	CmdCursorDown        = "cursor-down"
	CmdToggleRow         = "toggle-row"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "ctrl+q", Command: CmdQuit, Context: ContextGlobal},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal},
		{Key: "alt+*", Command: CmdTogglePopover, Context: ContextGlobal},

		// Popover (either view)
		{Key: "ctrl+o", Command: CmdTogglePreferences, Context: ContextPopover},
		{Key: "alt+down", Command: CmdNextTarget, Context: ContextPopover},
		{Key: "alt+up", Command: CmdPrevTarget, Context: ContextPopover},

		// Note editor. ctrl+s and alt+enter stand in for command+enter and
		// option+enter, which terminals cannot report.
		{Key: "ctrl+s", Command: CmdPrimarySubmit, Context: ContextNotes},
		{Key: "alt+enter", Command: CmdSecondarySubmit, Context: ContextNotes},
		{Key: "ctrl+@", Command: CmdSetMark, Context: ContextNotes},
		{Key: "esc", Command: CmdClearMark, Context: ContextNotes},
		{Key: "ctrl+p", Command: CmdTogglePreview, Context: ContextNotes},
		{Key: "ctrl+y", Command: CmdCopyNote, Context: ContextNotes},

		// Preferences pane
		{Key: "up", Command: CmdCursorUp, Context: ContextPreferences},
		{Key: "k", Command: CmdCursorUp, Context: ContextPreferences},
		{Key: "down", Command: CmdCursorDown, Context: ContextPreferences},
		{Key: "j", Command: CmdCursorDown, Context: ContextPreferences},
		{Key: " ", Command: CmdToggleRow, Context: ContextPreferences},
		{Key: "x", Command: CmdToggleRow, Context: ContextPreferences},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
