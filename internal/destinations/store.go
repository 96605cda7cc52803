package destinations

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

//go:embed defaults.json
var defaultList []byte

// Defaults returns the bundled destination list.
func Defaults() []Target {
	var targets []Target
	if err := json.Unmarshal(defaultList, &targets); err != nil {
		panic(fmt.Sprintf("destinations: bundled list is invalid: %v", err))
	}
	return targets
}

// Store reads and rewrites the ordered destination list.
type Store interface {
	Load() ([]Target, error)
	Save(targets []Target) error
}

// FileStore keeps the list in a JSON file.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore returns a store backed by path. A missing file is seeded with
// the bundled defaults.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := s.Save(Defaults()); err != nil {
			return nil, fmt.Errorf("seed destination list: %w", err)
		}
	}
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the list in file order.
func (s *FileStore) Load() ([]Target, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var targets []Target
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return targets, nil
}

// Save atomically replaces the whole list.
func (s *FileStore) Save(targets []Target) error {
	if targets == nil {
		targets = []Target{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(targets, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
