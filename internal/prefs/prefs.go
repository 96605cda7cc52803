// Package prefs implements the preferences pane: a checkbox row per search
// destination, applied to the destination list when the pane closes.
package prefs

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/quickeys/internal/destinations"
	"github.com/marcus/quickeys/internal/keymap"
	"github.com/marcus/quickeys/internal/styles"
)

// PasteControl receives preferences mode changes.
type PasteControl interface {
	PaneToggled(active bool)
}

// Row is one destination checkbox.
type Row struct {
	Label   string
	Enabled bool
}

// KeyMap binds the pane's navigation keys.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

// DefaultKeyMap returns the default pane bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle")),
	}
}

// KeyMapFromRegistry builds the pane bindings from the preferences context
// of r.
func KeyMapFromRegistry(r *keymap.Registry) KeyMap {
	bind := func(command, help string) key.Binding {
		keys := r.KeysFor(keymap.ContextPreferences, command)
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keymap.FormatKeys(keys), help))
	}
	return KeyMap{
		Up:     bind(keymap.CmdCursorUp, "up"),
		Down:   bind(keymap.CmdCursorDown, "down"),
		Toggle: bind(keymap.CmdToggleRow, "toggle"),
	}
}

// SetKeyMap replaces the pane bindings.
func (p *Pane) SetKeyMap(keys KeyMap) { p.keys = keys }

// Pane swaps the note editor for the destination checkboxes.
type Pane struct {
	store  destinations.Store
	menu   *destinations.Menu
	paste  PasteControl
	keys   KeyMap
	logger *slog.Logger

	active bool
	rows   []Row
	cursor int
}

// New returns an inactive pane.
func New(store destinations.Store, menu *destinations.Menu, paste PasteControl, logger *slog.Logger) *Pane {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pane{
		store:  store,
		menu:   menu,
		paste:  paste,
		keys:   DefaultKeyMap(),
		logger: logger,
	}
}

// Active reports whether preferences mode is on.
func (p *Pane) Active() bool { return p.active }

// Rows returns a copy of the checkbox rows.
func (p *Pane) Rows() []Row {
	out := make([]Row, len(p.rows))
	copy(out, p.rows)
	return out
}

// Cursor returns the highlighted row index.
func (p *Pane) Cursor() int { return p.cursor }

// Toggle flips preferences mode. Entering builds the rows from the full
// destination list; leaving applies them. The paste control is told either
// way, after the apply.
func (p *Pane) Toggle() error {
	p.active = !p.active

	var err error
	if p.active {
		err = p.buildRows()
	} else {
		err = p.Apply()
	}
	if p.paste != nil {
		p.paste.PaneToggled(p.active)
	}
	return err
}

func (p *Pane) buildRows() error {
	p.rows = p.rows[:0]
	p.cursor = 0

	targets, err := p.store.Load()
	if err != nil {
		return fmt.Errorf("load destinations: %w", err)
	}
	for _, t := range targets {
		p.rows = append(p.rows, Row{Label: t.Label, Enabled: t.Enabled})
	}
	return nil
}

// Apply writes each row's checkbox onto the target with the same label,
// saves the whole ordered list and repopulates the menu. Targets without a
// row keep their flag.
func (p *Pane) Apply() error {
	targets, err := p.store.Load()
	if err != nil {
		return fmt.Errorf("load destinations: %w", err)
	}

	byLabel := make(map[string]bool, len(p.rows))
	for _, r := range p.rows {
		byLabel[r.Label] = r.Enabled
	}
	for i := range targets {
		if enabled, ok := byLabel[targets[i].Label]; ok {
			targets[i].Enabled = enabled
		}
	}

	if err := p.store.Save(targets); err != nil {
		return fmt.Errorf("save destinations: %w", err)
	}
	p.menu.Populate(targets)
	p.logger.Debug("preferences applied", "targets", len(targets), "enabled", p.menu.Len())
	return nil
}

// ToggleRow flips the checkbox at index i.
func (p *Pane) ToggleRow(i int) {
	if i < 0 || i >= len(p.rows) {
		return
	}
	p.rows[i].Enabled = !p.rows[i].Enabled
	p.cursor = i
}

// Update handles navigation keys while active.
func (p *Pane) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !p.active {
		return nil
	}
	switch {
	case key.Matches(km, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, p.keys.Down):
		if p.cursor < len(p.rows)-1 {
			p.cursor++
		}
	case key.Matches(km, p.keys.Toggle):
		p.ToggleRow(p.cursor)
	}
	return nil
}

// View renders the rows, one per line, clipped to height lines.
func (p *Pane) View(width, height int) string {
	var b strings.Builder
	b.WriteString(styles.PanelHeader.Render("Search destinations"))

	if len(p.rows) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("No destinations configured"))
		return b.String()
	}

	start := p.RowOffset(height)
	for i := start; i < len(p.rows) && i < start+visibleRows(height); i++ {
		r := p.rows[i]
		box := "[ ]"
		if r.Enabled {
			box = styles.Checked.Render("[x]")
		}
		line := box + " " + r.Label
		style := styles.ListItemNormal
		if i == p.cursor {
			style = styles.ListItemSelected
		}
		b.WriteString("\n")
		b.WriteString(style.Width(width).Render(line))
	}
	return b.String()
}

// RowOffset returns the index of the first row drawn by View for the given
// height, so mouse hits can be mapped back to rows.
func (p *Pane) RowOffset(height int) int {
	if visible := visibleRows(height); p.cursor >= visible {
		return p.cursor - visible + 1
	}
	return 0
}

// visibleRows is the row count below the header line.
func visibleRows(height int) int {
	return max(height-1, 1)
}
