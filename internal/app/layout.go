package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/quickeys/internal/dispatch"
	"github.com/marcus/quickeys/internal/mouse"
	"github.com/marcus/quickeys/internal/styles"
)

// Hit region IDs.
const (
	regionStatusIcon = "status-icon"
	regionPopover    = "popover"
	regionMenuPrev   = "menu-prev"
	regionMenuNext   = "menu-next"
	regionMenu       = "menu"
	regionPrefs      = "prefs"
	regionPrefRow    = "pref-row"
	regionSearch     = "search"
	regionPaste      = "paste"
	regionQuit       = "quit"
	regionGrip       = "grip"
)

// menuBarRow is the terminal row of the menu bar; the popover hangs below it.
const menuBarRow = 0

// pasteButtonWidth keeps the paste button from changing size with its caption.
var pasteButtonWidth = runewidth.StringWidth(dispatch.RestingCaption) + 2

// panelLayout locates the popover on screen. Content excludes the border.
type panelLayout struct {
	outer    mouse.Rect
	contentX int
	contentY int
	contentW int
	contentH int
}

// bodyY is the first row of the editor or preferences area.
func (l panelLayout) bodyY() int { return l.contentY + 1 }

// bodyHeight is the number of rows between the header and the buttons.
func (l panelLayout) bodyHeight() int { return max(l.contentH-2, 1) }

// buttonsY is the row of the action buttons.
func (l panelLayout) buttonsY() int { return l.contentY + l.contentH - 1 }

// gripY is the bottom border row, which resizes the popover when dragged.
func (l panelLayout) gripY() int { return l.outer.Y + l.outer.H - 1 }

// layout computes the popover's position: right-aligned under the status
// icon, its height limited to the screen.
func (m Model) layout() panelLayout {
	size := m.popover.Size()
	w, h := size.Width, size.Height
	if maxH := m.height - 3; maxH > 0 && h > maxH {
		h = maxH
	}
	if maxW := m.width - 2; maxW > 0 && w > maxW {
		w = maxW
	}

	outerW, outerH := w+2, h+2
	x := max(m.width-outerW, 0)
	y := menuBarRow + 1
	return panelLayout{
		outer:    mouse.Rect{X: x, Y: y, W: outerW, H: outerH},
		contentX: x + 1,
		contentY: y + 1,
		contentW: w,
		contentH: h,
	}
}

// statusIconWidth is the rendered width of the status icon.
func (m Model) statusIconWidth() int {
	return lipgloss.Width(styles.StatusIcon.Render(m.cfg.UI.Icon))
}

// segment is one clickable piece of a row.
type segment struct {
	id   string // "" for filler
	text string // rendered
}

// joinSegments renders segs left to right starting at (x, y) and records
// their hit regions.
func joinSegments(hm *mouse.HitMap, x, y int, segs []segment) string {
	var out string
	for _, s := range segs {
		w := lipgloss.Width(s.text)
		if s.id != "" && hm != nil {
			hm.AddRect(s.id, x, y, w, 1, nil)
		}
		out += s.text
		x += w
	}
	return out
}

// buildHitMap registers every clickable region of the current frame. Later
// regions take precedence, so the panel is added before its controls.
func (m Model) buildHitMap() {
	m.mouse.Clear()
	hm := m.mouse.HitMap

	iconW := m.statusIconWidth()
	hm.AddRect(regionStatusIcon, m.width-iconW, menuBarRow, iconW, 1, nil)

	if !m.popover.IsShown() {
		return
	}
	l := m.layout()
	hm.Add(regionPopover, l.outer, nil)

	m.headerSegments(hm, l)
	m.buttonSegments(hm, l)

	if m.pane.Active() {
		offset := m.pane.RowOffset(l.bodyHeight())
		rows := len(m.pane.Rows())
		visible := max(l.bodyHeight()-1, 1)
		for i := offset; i < rows && i-offset < visible; i++ {
			// Row 0 of the body is the pane header.
			hm.AddRect(regionPrefRow, l.contentX, l.bodyY()+1+i-offset, l.contentW, 1, i)
		}
	}

	hm.AddRect(regionGrip, l.outer.X, l.gripY(), l.outer.W, 1, nil)
}
