package mouse

import tea "github.com/charmbracelet/bubbletea"

// Monitor observes pointer-down events that land outside the application's
// own regions. At most one callback is registered at a time; Dispatch
// invokes it once per left or right press, in delivery order.
type Monitor struct {
	callback func(tea.MouseMsg)
	starts   int
}

// NewMonitor returns a stopped monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Start registers callback. Starting an already-started monitor keeps the
// existing registration.
func (m *Monitor) Start(callback func(tea.MouseMsg)) {
	if m.callback != nil || callback == nil {
		return
	}
	m.callback = callback
	m.starts++
}

// Stop unregisters the callback. Stopping a stopped monitor is a no-op.
func (m *Monitor) Stop() {
	m.callback = nil
}

// Active reports whether a callback is registered.
func (m *Monitor) Active() bool {
	return m.callback != nil
}

// Registrations returns how many times Start produced a new registration.
func (m *Monitor) Registrations() int {
	return m.starts
}

// Dispatch delivers msg to the registered callback if it is a primary or
// secondary pointer-down. It reports whether the callback ran.
func (m *Monitor) Dispatch(msg tea.MouseMsg) bool {
	if m.callback == nil || msg.Action != tea.MouseActionPress {
		return false
	}
	if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonRight {
		return false
	}
	m.callback(msg)
	return true
}
