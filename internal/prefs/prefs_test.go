package prefs

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/quickeys/internal/destinations"
)

type memStore struct {
	targets []destinations.Target
	saves   int
	loadErr error
}

func (m *memStore) Load() ([]destinations.Target, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]destinations.Target, len(m.targets))
	copy(out, m.targets)
	return out, nil
}

func (m *memStore) Save(targets []destinations.Target) error {
	m.saves++
	m.targets = append([]destinations.Target(nil), targets...)
	return nil
}

type pasteSpy struct{ calls []bool }

func (p *pasteSpy) PaneToggled(active bool) { p.calls = append(p.calls, active) }

func newPane() (*Pane, *memStore, *destinations.Menu, *pasteSpy) {
	store := &memStore{targets: []destinations.Target{
		{Label: "A", URL: "https://a/?q=", Enabled: true},
		{Label: "B", URL: "https://b/?q=", Enabled: false},
		{Label: "C", URL: "https://c/?q=", Enabled: true},
	}}
	menu := destinations.NewMenu()
	menu.Populate(store.targets)
	spy := &pasteSpy{}
	return New(store, menu, spy, nil), store, menu, spy
}

func TestToggle_EnterBuildsRows(t *testing.T) {
	p, _, _, spy := newPane()

	if err := p.Toggle(); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !p.Active() {
		t.Fatal("pane should be active")
	}
	rows := p.Rows()
	if len(rows) != 3 || rows[1].Label != "B" || rows[1].Enabled {
		t.Errorf("rows = %+v", rows)
	}
	if len(spy.calls) != 1 || !spy.calls[0] {
		t.Errorf("paste control calls = %v, want [true]", spy.calls)
	}
}

func TestToggle_ExitAppliesRows(t *testing.T) {
	p, store, menu, spy := newPane()
	p.Toggle()

	p.ToggleRow(0) // A off
	p.ToggleRow(1) // B on

	if err := p.Toggle(); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if p.Active() {
		t.Fatal("pane should be inactive")
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if store.targets[0].Enabled || !store.targets[1].Enabled || !store.targets[2].Enabled {
		t.Errorf("saved targets = %+v", store.targets)
	}
	if store.targets[0].URL != "https://a/?q=" {
		t.Error("apply should keep URLs")
	}

	items := menu.Items()
	if len(items) != 2 || items[0].Label != "B" || items[1].Label != "C" {
		t.Errorf("menu = %+v, want [B C]", items)
	}
	if len(spy.calls) != 2 || spy.calls[1] {
		t.Errorf("paste control calls = %v, want [true false]", spy.calls)
	}
}

func TestApply_UnmatchedTargetsKeepFlag(t *testing.T) {
	p, store, _, _ := newPane()
	p.Toggle()

	// A target added to the file while the pane was open.
	store.targets = append(store.targets, destinations.Target{Label: "D", URL: "https://d/?q=", Enabled: true})

	p.Toggle()
	if len(store.targets) != 4 || !store.targets[3].Enabled {
		t.Errorf("saved targets = %+v", store.targets)
	}
}

func TestToggle_LoadError(t *testing.T) {
	p, store, _, spy := newPane()
	store.loadErr = errors.New("disk gone")

	if err := p.Toggle(); err == nil {
		t.Error("expected load error")
	}
	if !p.Active() || len(p.Rows()) != 0 {
		t.Error("pane should still enter with no rows")
	}
	if len(spy.calls) != 1 {
		t.Error("paste control should be told even on error")
	}
}

func TestUpdate_Navigation(t *testing.T) {
	p, _, _, _ := newPane()
	p.Toggle()

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", p.Cursor())
	}

	p.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if p.Rows()[2].Enabled {
		t.Error("space should toggle the highlighted row")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if p.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", p.Cursor())
	}
}

func TestUpdate_IgnoredWhileInactive(t *testing.T) {
	p, _, _, _ := newPane()
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.Cursor() != 0 {
		t.Error("inactive pane should ignore keys")
	}
}

func TestRowOffset(t *testing.T) {
	p, _, _, _ := newPane()
	p.Toggle()
	p.cursor = 2

	tests := []struct {
		height int
		want   int
	}{
		{10, 0},
		{3, 1},
		{2, 2},
		{0, 2},
	}
	for _, tt := range tests {
		if got := p.RowOffset(tt.height); got != tt.want {
			t.Errorf("RowOffset(%d) = %d, want %d", tt.height, got, tt.want)
		}
	}
}
