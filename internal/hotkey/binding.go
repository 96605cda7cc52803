// Package hotkey registers named global shortcuts and exposes them on a
// loopback control endpoint, so a system shortcut tool can fire them.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBinding is returned for a binding that is not "mod+...+key".
var ErrInvalidBinding = errors.New("invalid binding")

// modifierOrder is the canonical modifier order; aliases map onto it.
var modifierOrder = []string{"ctrl", "alt", "shift", "cmd"}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"opt":     "alt",
	"option":  "alt",
	"shift":   "shift",
	"cmd":     "cmd",
	"command": "cmd",
	"super":   "cmd",
	"meta":    "cmd",
}

// Binding is a parsed key combination.
type Binding struct {
	Modifiers []string // canonical, in modifierOrder
	Key       string
}

// ParseBinding parses "cmd+shift+8". At least one modifier is required.
func ParseBinding(s string) (Binding, error) {
	parts := strings.Split(s, "+")
	if len(parts) < 2 {
		return Binding{}, fmt.Errorf("%w: %q (need modifier+key)", ErrInvalidBinding, s)
	}

	key := strings.TrimSpace(parts[len(parts)-1])
	if key == "" {
		return Binding{}, fmt.Errorf("%w: %q (missing key)", ErrInvalidBinding, s)
	}

	seen := make(map[string]bool)
	for _, m := range parts[:len(parts)-1] {
		canon, ok := modifierAliases[strings.ToLower(strings.TrimSpace(m))]
		if !ok {
			return Binding{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidBinding, m)
		}
		seen[canon] = true
	}

	b := Binding{Key: strings.ToLower(key)}
	for _, m := range modifierOrder {
		if seen[m] {
			b.Modifiers = append(b.Modifiers, m)
		}
	}
	return b, nil
}

// String returns the canonical form, e.g. "shift+cmd+8".
func (b Binding) String() string {
	return strings.Join(append(append([]string{}, b.Modifiers...), b.Key), "+")
}
