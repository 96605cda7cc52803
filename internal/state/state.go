package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// State holds persistent user preferences.
type State struct {
	// NoteText is the last-seen full note text, saved whenever the popover hides.
	NoteText string `json:"userInputTextData"`

	// PopoverHeight is the last drag-resized height (0 = use configured default).
	PopoverHeight int `json:"popoverHeight,omitempty"`

	// SelectedTarget is the label last selected in the destination menu.
	SelectedTarget string `json:"selectedTarget,omitempty"`
}

var (
	current  *State
	mu       sync.RWMutex
	path     string
	noteHash uint64
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "quickeys"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}
	noteHash = xxhash.Sum64String("")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, current); err != nil {
		return err
	}
	noteHash = xxhash.Sum64String(current.NoteText)
	return nil
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetNoteText returns the saved note text, or "" if none was saved.
func GetNoteText() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.NoteText
}

// SetNoteText saves the note text. It reports whether anything was written;
// text identical to the stored value is skipped.
func SetNoteText(text string) (bool, error) {
	h := xxhash.Sum64String(text)

	mu.Lock()
	if current == nil {
		current = &State{}
	}
	if h == noteHash && current.NoteText == text {
		mu.Unlock()
		return false, nil
	}
	current.NoteText = text
	noteHash = h
	mu.Unlock()
	return true, Save()
}

// GetPopoverHeight returns the saved popover height.
// Returns 0 if no preference is saved (use default).
func GetPopoverHeight() int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.PopoverHeight
}

// SetPopoverHeight saves the popover height.
func SetPopoverHeight(height int) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.PopoverHeight = height
	mu.Unlock()
	return Save()
}

// GetSelectedTarget returns the saved destination label.
func GetSelectedTarget() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.SelectedTarget
}

// SetSelectedTarget saves the destination label.
func SetSelectedTarget(label string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.SelectedTarget = label
	mu.Unlock()
	return Save()
}
