// Package keymap maps keys to commands per input context, with user
// overrides from the config file.
package keymap

import (
	"sort"
	"strings"
	"sync"
)

// Binding maps a key to a command in a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry holds bindings and user overrides.
type Registry struct {
	mu        sync.RWMutex
	bindings  []Binding
	overrides map[string]string // key -> command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{overrides: make(map[string]string)}
}

// RegisterBinding adds a binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, b)
}

// SetUserOverride binds key to command in every context that command is
// defined in. A user key replaces the command's default keys.
func (r *Registry) SetUserOverride(key, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[key] = command
}

// ApplyOverrides applies a key -> command map, as read from config.
func (r *Registry) ApplyOverrides(overrides map[string]string) {
	for k, c := range overrides {
		r.SetUserOverride(k, c)
	}
}

// Lookup returns the command bound to key, searching contexts in order.
func (r *Registry) Lookup(key string, contexts ...string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ctx := range contexts {
		for _, b := range r.bindingsLocked(ctx) {
			if b.Key == key {
				return b.Command, true
			}
		}
	}
	return "", false
}

// KeysFor returns the keys bound to command in context.
func (r *Registry) KeysFor(context, command string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []string
	for _, b := range r.bindingsLocked(context) {
		if b.Command == command {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// BindingsForContext returns the effective bindings of context.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bindingsLocked(context)
}

// bindingsLocked merges overrides over defaults: a command with a user key
// loses its default keys, and a key claimed by an override loses its
// default command.
func (r *Registry) bindingsLocked(context string) []Binding {
	defined := make(map[string]bool)
	for _, b := range r.bindings {
		if b.Context == context {
			defined[b.Command] = true
		}
	}

	overridden := make(map[string]bool)
	var out []Binding
	keys := make([]string, 0, len(r.overrides))
	for k := range r.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd := r.overrides[k]
		if !defined[cmd] {
			continue
		}
		overridden[cmd] = true
		out = append(out, Binding{Key: k, Command: cmd, Context: context})
	}

	for _, b := range r.bindings {
		if b.Context != context || overridden[b.Command] {
			continue
		}
		if _, taken := r.overrides[b.Key]; taken {
			continue
		}
		out = append(out, b)
	}
	return out
}

// FormatKeys joins keys for display, e.g. "ctrl+s/alt+enter".
func FormatKeys(keys []string) string {
	display := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		display[i] = k
	}
	return strings.Join(display, "/")
}
