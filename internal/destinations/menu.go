package destinations

import "errors"

// ErrNoTarget is returned when the menu has no selected entry.
var ErrNoTarget = errors.New("no search targets in destination menu")

// Item is one live menu entry; URL is the entry's payload.
type Item struct {
	Label string
	URL   string
}

// Menu is the destination pop-up: the enabled targets plus a selection.
type Menu struct {
	items    []Item
	selected int // -1 when empty
}

// NewMenu returns an empty menu.
func NewMenu() *Menu {
	return &Menu{selected: -1}
}

// Populate rebuilds the entries from the enabled targets, in list order.
// The previously selected label is re-selected if it survived; otherwise the
// first entry is selected. An empty enabled set leaves nothing selected.
func (m *Menu) Populate(targets []Target) {
	previous := ""
	if it, ok := m.Selected(); ok {
		previous = it.Label
	}

	m.items = m.items[:0]
	for _, t := range targets {
		if !t.Enabled {
			continue
		}
		m.items = append(m.items, Item{Label: t.Label, URL: t.URL})
	}

	m.selected = -1
	if len(m.items) == 0 {
		return
	}
	m.selected = 0
	if previous != "" {
		m.SelectLabel(previous)
	}
}

// Items returns a copy of the entries.
func (m *Menu) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of entries.
func (m *Menu) Len() int { return len(m.items) }

// Selected returns the selected entry.
func (m *Menu) Selected() (Item, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return Item{}, false
	}
	return m.items[m.selected], true
}

// SelectedURL returns the selected entry's URL template, or ErrNoTarget.
func (m *Menu) SelectedURL() (string, error) {
	it, ok := m.Selected()
	if !ok {
		return "", ErrNoTarget
	}
	return it.URL, nil
}

// SelectLabel selects the entry with label and reports whether it exists.
func (m *Menu) SelectLabel(label string) bool {
	for i, it := range m.items {
		if it.Label == label {
			m.selected = i
			return true
		}
	}
	return false
}

// Next moves the selection forward, wrapping around.
func (m *Menu) Next() {
	if len(m.items) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.items)
}

// Prev moves the selection backward, wrapping around.
func (m *Menu) Prev() {
	if len(m.items) == 0 {
		return
	}
	m.selected = (m.selected - 1 + len(m.items)) % len(m.items)
}
