package hotkey

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownShortcut is returned when triggering a name that is not registered.
var ErrUnknownShortcut = errors.New("unknown shortcut")

// Shortcut is a registered global shortcut.
type Shortcut struct {
	Name    string  `json:"name"`
	Binding Binding `json:"-"`
	Keys    string  `json:"keys"`
	action  func()
}

// Registry holds the process's global shortcuts. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	shortcuts map[string]Shortcut
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{shortcuts: make(map[string]Shortcut)}
}

// Register binds name to keys and action, replacing any earlier registration
// of the same name.
func (r *Registry) Register(name, keys string, action func()) error {
	if name == "" || action == nil {
		return fmt.Errorf("register %q: name and action are required", name)
	}
	b, err := ParseBinding(keys)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.shortcuts[name] = Shortcut{Name: name, Binding: b, Keys: b.String(), action: action}
	return nil
}

// Unregister removes name. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shortcuts, name)
}

// UnregisterAll removes every shortcut.
func (r *Registry) UnregisterAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shortcuts = make(map[string]Shortcut)
}

// Trigger runs name's action on the calling goroutine.
func (r *Registry) Trigger(name string) error {
	r.mu.RLock()
	s, ok := r.shortcuts[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownShortcut, name)
	}
	s.action()
	return nil
}

// List returns the registered shortcuts sorted by name.
func (r *Registry) List() []Shortcut {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Shortcut, 0, len(r.shortcuts))
	for _, s := range r.shortcuts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
