package popover

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/quickeys/internal/mouse"
)

var testBounds = Bounds{Width: 40, MinHeight: 10, MaxHeight: 30}

func newController() (*Controller, *mouse.Monitor) {
	mon := mouse.NewMonitor()
	return New(mon, testBounds, 14), mon
}

func click() tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 1, Y: 1}
}

func TestToggle(t *testing.T) {
	c, mon := newController()

	if c.Visibility() != Hidden {
		t.Fatalf("new controller should be hidden, got %s", c.Visibility())
	}

	c.Toggle()
	if !c.IsShown() || !mon.Active() {
		t.Fatal("toggle from hidden should show and start the monitor")
	}

	c.Toggle()
	if c.IsShown() || mon.Active() {
		t.Fatal("toggle from shown should hide and stop the monitor")
	}
}

func TestShowTwice_SingleRegistration(t *testing.T) {
	c, mon := newController()

	c.Show()
	c.Show()

	if mon.Registrations() != 1 {
		t.Errorf("Registrations() = %d after two shows, want 1", mon.Registrations())
	}
}

func TestHideWhileHidden_NoOp(t *testing.T) {
	c, mon := newController()
	hides := 0
	c.OnHide(func() { hides++ })

	c.Hide()

	if hides != 0 {
		t.Errorf("hide hook ran %d times while hidden, want 0", hides)
	}
	if mon.Active() {
		t.Error("monitor should stay stopped")
	}
}

func TestOutsideClick_HidesOncePerEvent(t *testing.T) {
	c, mon := newController()
	hides := 0
	c.OnHide(func() { hides++ })

	c.Show()
	if !mon.Dispatch(click()) {
		t.Fatal("monitor should deliver the click while shown")
	}
	if c.IsShown() {
		t.Fatal("outside click should hide the popover")
	}
	if hides != 1 {
		t.Errorf("hide hook ran %d times, want 1", hides)
	}

	// The monitor was stopped by the transition; a second click is not seen.
	if mon.Dispatch(click()) {
		t.Error("monitor should be stopped after hiding")
	}
	if hides != 1 {
		t.Errorf("hide hook ran %d times after second click, want 1", hides)
	}
}

func TestOnDrag_Clamps(t *testing.T) {
	const screen = 50

	tests := []struct {
		name     string
		pointerY int
		want     int
	}{
		{"inside range", 30, 20},
		{"below min", 45, 10},
		{"above max", 5, 30},
		{"pointer off screen top", -10, 30},
		{"pointer off screen bottom", 80, 10},
		{"exact min", 40, 10},
		{"exact max", 20, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newController()
			c.Show()
			c.OnDrag(tt.pointerY, screen)
			got := c.Size()
			if got.Height != tt.want {
				t.Errorf("OnDrag(%d) height = %d, want %d", tt.pointerY, got.Height, tt.want)
			}
			if got.Width != testBounds.Width {
				t.Errorf("width changed to %d, want fixed %d", got.Width, testBounds.Width)
			}
		})
	}
}

func TestOnDrag_NoOpWhenHidden(t *testing.T) {
	c, _ := newController()
	before := c.Size()

	if c.OnDrag(0, 100) {
		t.Error("OnDrag while hidden should report no change")
	}
	if c.Size() != before {
		t.Errorf("size changed while hidden: %+v -> %+v", before, c.Size())
	}
}

func TestOnDrag_DoesNotChangeState(t *testing.T) {
	c, _ := newController()
	c.Show()
	c.OnDrag(10, 40)
	if !c.IsShown() {
		t.Error("resize must not change visibility")
	}
}

func TestNew_ClampsInitialHeight(t *testing.T) {
	c := New(mouse.NewMonitor(), testBounds, 3)
	if c.Size().Height != testBounds.MinHeight {
		t.Errorf("initial height = %d, want clamped %d", c.Size().Height, testBounds.MinHeight)
	}
}
