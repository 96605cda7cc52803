// Package popover owns the show/hide state of the popover panel and its
// drag-resizable size.
package popover

import tea "github.com/charmbracelet/bubbletea"

// Visibility is the popover's two-state flag.
type Visibility int

const (
	Hidden Visibility = iota
	Shown
)

func (v Visibility) String() string {
	if v == Shown {
		return "shown"
	}
	return "hidden"
}

// Size is the popover content size in cells.
type Size struct {
	Width  int
	Height int
}

// Bounds fixes the width and limits the height of the popover.
type Bounds struct {
	Width     int
	MinHeight int
	MaxHeight int
}

// Clamp limits h to [MinHeight, MaxHeight].
func (b Bounds) Clamp(h int) int {
	if h < b.MinHeight {
		return b.MinHeight
	}
	if h > b.MaxHeight {
		return b.MaxHeight
	}
	return h
}

// ClickMonitor is the outside-click observer the controller starts while the
// popover is shown.
type ClickMonitor interface {
	Start(callback func(tea.MouseMsg))
	Stop()
}

// Controller is the Hidden/Shown state machine.
type Controller struct {
	monitor    ClickMonitor
	bounds     Bounds
	size       Size
	visibility Visibility
	onHide     func()
}

// New returns a hidden controller with the given bounds and initial height.
func New(monitor ClickMonitor, bounds Bounds, height int) *Controller {
	return &Controller{
		monitor: monitor,
		bounds:  bounds,
		size:    Size{Width: bounds.Width, Height: bounds.Clamp(height)},
	}
}

// OnHide registers a hook run after every Shown→Hidden transition.
func (c *Controller) OnHide(fn func()) {
	c.onHide = fn
}

// Visibility returns the current state.
func (c *Controller) Visibility() Visibility { return c.visibility }

// IsShown reports whether the popover is visible.
func (c *Controller) IsShown() bool { return c.visibility == Shown }

// Size returns the current content size.
func (c *Controller) Size() Size { return c.size }

// Toggle hides a shown popover and shows a hidden one.
func (c *Controller) Toggle() {
	if c.visibility == Shown {
		c.Hide()
		return
	}
	c.Show()
}

// Show starts the outside-click monitor and presents the popover.
func (c *Controller) Show() {
	c.monitor.Start(func(tea.MouseMsg) { c.Hide() })
	c.visibility = Shown
}

// Hide stops the monitor and dismisses the popover. Hiding a hidden popover
// does nothing.
func (c *Controller) Hide() {
	if c.visibility == Hidden {
		return
	}
	c.monitor.Stop()
	c.visibility = Hidden
	if c.onHide != nil {
		c.onHide()
	}
}

// OnDrag resizes the shown popover so its height follows the pointer.
// pointerY is measured from the bottom of a screen screenHeight cells tall.
// It reports whether the size changed.
func (c *Controller) OnDrag(pointerY, screenHeight int) bool {
	if c.visibility != Shown {
		return false
	}
	next := Size{Width: c.bounds.Width, Height: c.bounds.Clamp(screenHeight - pointerY)}
	if next == c.size {
		return false
	}
	c.size = next
	return true
}
