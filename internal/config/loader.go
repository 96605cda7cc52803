package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/quickeys"
	configFile = "config.json"
)

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Popover      rawPopoverConfig      `json:"popover"`
	Paste        rawPasteConfig        `json:"paste"`
	Network      rawNetworkConfig      `json:"network"`
	Destinations rawDestinationsConfig `json:"destinations"`
	History      rawHistoryConfig      `json:"history"`
	Control      ControlConfig         `json:"control"`
	Keymap       KeymapConfig          `json:"keymap"`
	UI           rawUIConfig           `json:"ui"`
}

type rawPopoverConfig struct {
	Width         *int `json:"width"`
	MinHeight     *int `json:"minHeight"`
	MaxHeight     *int `json:"maxHeight"`
	InitialHeight *int `json:"initialHeight"`
}

type rawPasteConfig struct {
	Endpoint string `json:"endpoint"`
	DevKey   string `json:"devKey"`
	Expire   string `json:"expire"`
	Private  *int   `json:"private"`
	Timeout  string `json:"timeout"`
}

type rawNetworkConfig struct {
	ReachabilityHost string `json:"reachabilityHost"`
	Timeout          string `json:"timeout"`
}

type rawDestinationsConfig struct {
	Path  string `json:"path"`
	Watch *bool  `json:"watch"`
}

type rawHistoryConfig struct {
	Enabled *bool  `json:"enabled"`
	DBPath  string `json:"dbPath"`
}

type rawUIConfig struct {
	Icon      string `json:"icon"`
	ShowHints *bool  `json:"showHints"`
	Theme     string `json:"theme"`
	Accent    string `json:"accent"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/quickeys/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return expand(cfg), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return expand(cfg), nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return expand(cfg), nil
}

func expand(cfg *Config) *Config {
	cfg.Destinations.Path = ExpandPath(cfg.Destinations.Path)
	cfg.History.DBPath = ExpandPath(cfg.History.DBPath)
	return cfg
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Popover
	if raw.Popover.Width != nil {
		cfg.Popover.Width = *raw.Popover.Width
	}
	if raw.Popover.MinHeight != nil {
		cfg.Popover.MinHeight = *raw.Popover.MinHeight
	}
	if raw.Popover.MaxHeight != nil {
		cfg.Popover.MaxHeight = *raw.Popover.MaxHeight
	}
	if raw.Popover.InitialHeight != nil {
		cfg.Popover.InitialHeight = *raw.Popover.InitialHeight
	}

	// Paste
	if raw.Paste.Endpoint != "" {
		cfg.Paste.Endpoint = raw.Paste.Endpoint
	}
	if raw.Paste.DevKey != "" {
		cfg.Paste.DevKey = raw.Paste.DevKey
	}
	if raw.Paste.Expire != "" {
		cfg.Paste.Expire = raw.Paste.Expire
	}
	if raw.Paste.Private != nil {
		cfg.Paste.Private = *raw.Paste.Private
	}
	if raw.Paste.Timeout != "" {
		if d, err := time.ParseDuration(raw.Paste.Timeout); err == nil {
			cfg.Paste.Timeout = d
		}
	}

	// Network
	if raw.Network.ReachabilityHost != "" {
		cfg.Network.ReachabilityHost = raw.Network.ReachabilityHost
	}
	if raw.Network.Timeout != "" {
		if d, err := time.ParseDuration(raw.Network.Timeout); err == nil {
			cfg.Network.Timeout = d
		}
	}

	// Destinations
	if raw.Destinations.Path != "" {
		cfg.Destinations.Path = raw.Destinations.Path
	}
	if raw.Destinations.Watch != nil {
		cfg.Destinations.Watch = *raw.Destinations.Watch
	}

	// History
	if raw.History.Enabled != nil {
		cfg.History.Enabled = *raw.History.Enabled
	}
	if raw.History.DBPath != "" {
		cfg.History.DBPath = raw.History.DBPath
	}

	// Control
	if raw.Control.Addr != "" {
		cfg.Control.Addr = raw.Control.Addr
	}
	if raw.Control.ToggleShortcut != "" {
		cfg.Control.ToggleShortcut = raw.Control.ToggleShortcut
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.Icon != "" {
		cfg.UI.Icon = raw.UI.Icon
	}
	if raw.UI.ShowHints != nil {
		cfg.UI.ShowHints = *raw.UI.ShowHints
	}
	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
	if raw.UI.Accent != "" {
		cfg.UI.Accent = raw.UI.Accent
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// Dir returns the directory holding config, state and logs.
func Dir() string {
	p := ConfigPath()
	if p == "" {
		return ""
	}
	return filepath.Dir(p)
}
