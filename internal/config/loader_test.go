package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Popover.Width != 48 {
		t.Errorf("got width %d, want 48", cfg.Popover.Width)
	}
	if cfg.Popover.MinHeight >= cfg.Popover.MaxHeight {
		t.Errorf("min height %d should be below max %d", cfg.Popover.MinHeight, cfg.Popover.MaxHeight)
	}
	if cfg.Control.ToggleShortcut != "cmd+shift+8" {
		t.Errorf("got toggle shortcut %q, want cmd+shift+8", cfg.Control.ToggleShortcut)
	}
	if cfg.Paste.Timeout != 15*time.Second {
		t.Errorf("got paste timeout %v, want 15s", cfg.Paste.Timeout)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("should return default config")
	}
	if filepath.Base(cfg.Destinations.Path) != "urls.json" {
		t.Errorf("got destinations path %q", cfg.Destinations.Path)
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"popover": {
			"maxHeight": 20
		},
		"paste": {
			"devKey": "abc123",
			"timeout": "5s"
		},
		"ui": {
			"showHints": false
		}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Popover.MaxHeight != 20 {
		t.Errorf("got max height %d, want 20", cfg.Popover.MaxHeight)
	}
	if cfg.Paste.DevKey != "abc123" {
		t.Errorf("got dev key %q, want abc123", cfg.Paste.DevKey)
	}
	if cfg.Paste.Timeout != 5*time.Second {
		t.Errorf("got timeout %v, want 5s", cfg.Paste.Timeout)
	}
	if cfg.UI.ShowHints {
		t.Error("showHints should be false")
	}
	// Default values should still be present
	if cfg.Popover.Width != 48 {
		t.Errorf("width should keep default, got %d", cfg.Popover.Width)
	}
	if cfg.UI.Icon != "✎" {
		t.Errorf("icon should keep default, got %q", cfg.UI.Icon)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("should error on invalid JSON")
	}
}

func TestLoadFrom_KeymapOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{"keymap": {"overrides": {"ctrl+g": "search"}}}`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Keymap.Overrides["ctrl+g"] != "search" {
		t.Errorf("override not merged: %v", cfg.Keymap.Overrides)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/.config/quickeys/urls.json", filepath.Join(home, ".config/quickeys/urls.json")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range tests {
		got := ExpandPath(tc.input)
		if got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		check   func(*Config) bool
		message string
	}{
		{
			name:    "negative width",
			mutate:  func(c *Config) { c.Popover.Width = -1 },
			check:   func(c *Config) bool { return c.Popover.Width == 48 },
			message: "width should reset to default",
		},
		{
			name:    "max below min",
			mutate:  func(c *Config) { c.Popover.MinHeight = 12; c.Popover.MaxHeight = 4 },
			check:   func(c *Config) bool { return c.Popover.MaxHeight == 12 },
			message: "max height should be raised to min",
		},
		{
			name:    "initial above max",
			mutate:  func(c *Config) { c.Popover.InitialHeight = 99 },
			check:   func(c *Config) bool { return c.Popover.InitialHeight == c.Popover.MaxHeight },
			message: "initial height should be clamped",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Network.Timeout = 0 },
			check:   func(c *Config) bool { return c.Network.Timeout == 2*time.Second },
			message: "timeout should reset to default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if !tt.check(cfg) {
				t.Error(tt.message)
			}
		})
	}
}

func TestValidate_Theme(t *testing.T) {
	tests := []struct {
		name    string
		theme   string
		accent  string
		wantErr bool
	}{
		{"dark", "dark", "", false},
		{"light with accent", "light", "#FF8800", false},
		{"empty falls back", "", "", false},
		{"unknown theme", "solarized", "", true},
		{"bad accent", "dark", "orange", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.UI.Theme = tt.theme
			cfg.UI.Accent = tt.accent
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.UI.Theme == "" {
				t.Error("empty theme should be replaced by the default")
			}
		})
	}
}

func TestLoadFrom_UnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"ui": {"theme": "neon"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom should reject an unknown theme")
	}
}
