package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/quickeys/internal/keymap"
	"github.com/marcus/quickeys/internal/mouse"
	"github.com/marcus/quickeys/internal/styles"
	"github.com/marcus/quickeys/internal/ui"
)

// View renders the menu bar and, when shown, the popover below it.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	background := m.renderMenuBar() + "\n" + m.renderDesktop()
	if !m.popover.IsShown() {
		return background
	}

	l := m.layout()
	return ui.PlaceAt(background, m.renderPopover(l), l.outer.X, l.outer.Y, m.width, m.height)
}

// renderMenuBar draws the top row: app name and toast on the left, the
// status icon at the right end.
func (m Model) renderMenuBar() string {
	iconStyle := styles.StatusIcon
	if m.popover.IsShown() {
		iconStyle = styles.StatusIconActive
	}
	icon := iconStyle.Render(m.cfg.UI.Icon)
	iconW := lipgloss.Width(icon)

	left := styles.MenuBar.Render(" quickeys")
	if m.statusMsg != "" {
		toast := styles.ToastSuccess
		if m.statusIsError {
			toast = styles.ToastError
		}
		left += styles.MenuBar.Render(" ") + toast.Render(m.statusMsg)
	}

	avail := max(m.width-iconW, 0)
	left = ansi.Truncate(left, avail, "")
	fill := max(avail-lipgloss.Width(left), 0)
	return left + styles.MenuBar.Render(strings.Repeat(" ", fill)) + icon
}

// renderDesktop fills the rows under the menu bar, with key hints on the
// last row.
func (m Model) renderDesktop() string {
	rows := max(m.height-1, 0)
	lines := make([]string, rows)
	if m.cfg.UI.ShowHints && rows > 0 {
		lines[rows-1] = ansi.Truncate(m.hintLine(), m.width, "")
	}
	return strings.Join(lines, "\n")
}

// hint is one key hint on the bottom row.
type hint struct {
	context string
	command string
	label   string
}

var (
	globalHints = []hint{
		{keymap.ContextGlobal, keymap.CmdTogglePopover, "toggle"},
	}
	notesHints = []hint{
		{keymap.ContextNotes, keymap.CmdPrimarySubmit, "search"},
		{keymap.ContextNotes, keymap.CmdSecondarySubmit, "paste"},
		{keymap.ContextNotes, keymap.CmdSetMark, "mark"},
		{keymap.ContextNotes, keymap.CmdTogglePreview, "preview"},
	}
	prefsHints = []hint{
		{keymap.ContextPreferences, keymap.CmdToggleRow, "enable"},
	}
	popoverHints = []hint{
		{keymap.ContextPopover, keymap.CmdTogglePreferences, "prefs"},
	}
	quitHints = []hint{
		{keymap.ContextGlobal, keymap.CmdQuit, "quit"},
	}
)

// hintLine lists the first effective key of each hinted command.
func (m Model) hintLine() string {
	groups := [][]hint{globalHints}
	if m.popover.IsShown() {
		if m.pane.Active() {
			groups = append(groups, prefsHints)
		} else {
			groups = append(groups, notesHints)
		}
		groups = append(groups, popoverHints)
	}
	groups = append(groups, quitHints)

	firstKey := make(map[string]map[string]string)
	keyFor := func(h hint) string {
		keys, ok := firstKey[h.context]
		if !ok {
			keys = make(map[string]string)
			for _, b := range m.keymap.BindingsForContext(h.context) {
				if _, seen := keys[b.Command]; !seen {
					keys[b.Command] = b.Key
				}
			}
			firstKey[h.context] = keys
		}
		return keys[h.command]
	}

	var parts []string
	for _, group := range groups {
		for _, h := range group {
			k := keyFor(h)
			if k == "" {
				continue
			}
			parts = append(parts, styles.KeyHint.Render(keymap.FormatKeys([]string{k}))+" "+styles.Muted.Render(h.label))
		}
	}
	return " " + strings.Join(parts, "  ")
}

// renderPopover draws the bordered panel: header, body, buttons.
func (m Model) renderPopover(l panelLayout) string {
	lines := []string{m.headerSegments(nil, l)}
	lines = append(lines, m.renderBody(l)...)
	lines = append(lines, m.buttonSegments(nil, l))

	for i, line := range lines {
		lines[i] = fitLine(line, l.contentW)
	}
	return styles.Panel.Render(strings.Join(lines, "\n"))
}

// fitLine truncates or pads line to exactly width cells.
func fitLine(line string, width int) string {
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

// renderBody returns exactly bodyHeight lines of editor, preview or
// preferences content.
func (m Model) renderBody(l panelLayout) []string {
	var content string
	switch {
	case m.pane.Active():
		content = m.pane.View(l.contentW, l.bodyHeight())
	case m.showPreview:
		rendered, err := m.preview.Render(m.notes.AllText(), l.contentW)
		if err != nil {
			rendered = styles.Muted.Render("preview unavailable: " + err.Error())
		}
		content = rendered
	default:
		content = m.notes.View()
	}

	lines := strings.Split(content, "\n")
	out := make([]string, l.bodyHeight())
	for i := range out {
		if i < len(lines) {
			out[i] = lines[i]
		}
	}
	return out
}

// headerSegments renders the destination selector and the preferences
// button, registering their regions when hm is non-nil.
func (m Model) headerSegments(hm *mouse.HitMap, l panelLayout) string {
	prefsLabel := "Prefs"
	prefsStyle := styles.Button
	if m.pane.Active() {
		prefsLabel = "Done"
		prefsStyle = styles.ButtonAccent
	}
	prefsBtn := prefsStyle.Render(prefsLabel)

	label := "no search targets"
	if it, ok := m.menu.Selected(); ok {
		label = it.Label
	}
	avail := max(l.contentW-lipgloss.Width(prefsBtn)-5, 1)
	label = runewidth.Truncate(label, avail, "…")

	textStyle := styles.Title
	arrowStyle := styles.Body
	if m.pane.Active() || m.menu.Len() == 0 {
		textStyle = styles.Subtle
		arrowStyle = styles.Subtle
	}

	prevID, menuID, nextID := regionMenuPrev, regionMenu, regionMenuNext
	if m.pane.Active() {
		prevID, menuID, nextID = "", "", ""
	}

	segs := []segment{
		{id: prevID, text: arrowStyle.Render("‹")},
		{text: " "},
		{id: menuID, text: textStyle.Render(label)},
		{text: " "},
		{id: nextID, text: arrowStyle.Render("›")},
	}
	used := 0
	for _, s := range segs {
		used += lipgloss.Width(s.text)
	}
	fill := max(l.contentW-used-lipgloss.Width(prefsBtn), 1)
	segs = append(segs,
		segment{text: strings.Repeat(" ", fill)},
		segment{id: regionPrefs, text: prefsBtn},
	)
	return joinSegments(hm, l.contentX, l.contentY, segs)
}

// buttonSegments renders Search, the paste button and Quit.
func (m Model) buttonSegments(hm *mouse.HitMap, l panelLayout) string {
	searchStyle := styles.Button
	if !m.searchEnabled() {
		searchStyle = styles.ButtonDisabled
	}
	search := searchStyle.Render("Search")

	b := m.dispatcher.Button()
	pasteStyle := styles.Button
	if !b.Enabled {
		pasteStyle = styles.ButtonDisabled
	}
	caption := b.Label
	if b.Busy {
		caption = m.spinner.View()
	}
	paste := pasteStyle.Width(pasteButtonWidth).Align(lipgloss.Center).Render(caption)

	quit := styles.Button.Render("Quit")

	used := lipgloss.Width(search) + 1 + lipgloss.Width(paste) + lipgloss.Width(quit)
	fill := max(l.contentW-used, 1)

	segs := []segment{
		{id: regionSearch, text: search},
		{text: " "},
		{id: regionPaste, text: paste},
		{text: strings.Repeat(" ", fill)},
		{id: regionQuit, text: quit},
	}
	return joinSegments(hm, l.contentX, l.buttonsY(), segs)
}

// searchEnabled reports whether the search button accepts clicks.
func (m Model) searchEnabled() bool {
	return !m.pane.Active()
}
