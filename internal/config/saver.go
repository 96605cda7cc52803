package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Popover      PopoverConfig      `json:"popover"`
	Paste        savePasteConfig    `json:"paste"`
	Network      saveNetworkConfig  `json:"network"`
	Destinations DestinationsConfig `json:"destinations"`
	History      HistoryConfig      `json:"history"`
	Control      ControlConfig      `json:"control"`
	Keymap       KeymapConfig       `json:"keymap"`
	UI           UIConfig           `json:"ui"`
}

type savePasteConfig struct {
	Endpoint string `json:"endpoint,omitempty"`
	DevKey   string `json:"devKey,omitempty"`
	Expire   string `json:"expire,omitempty"`
	Private  int    `json:"private"`
	Timeout  string `json:"timeout,omitempty"`
}

type saveNetworkConfig struct {
	ReachabilityHost string `json:"reachabilityHost,omitempty"`
	Timeout          string `json:"timeout,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Popover: cfg.Popover,
		Paste: savePasteConfig{
			Endpoint: cfg.Paste.Endpoint,
			DevKey:   cfg.Paste.DevKey,
			Expire:   cfg.Paste.Expire,
			Private:  cfg.Paste.Private,
			Timeout:  cfg.Paste.Timeout.String(),
		},
		Network: saveNetworkConfig{
			ReachabilityHost: cfg.Network.ReachabilityHost,
			Timeout:          cfg.Network.Timeout.String(),
		},
		Destinations: cfg.Destinations,
		History:      cfg.History,
		Control:      cfg.Control,
		Keymap:       cfg.Keymap,
		UI:           cfg.UI,
	}
}

// Save writes the config to ~/.config/quickeys/config.json.
// Top-level keys it does not manage are preserved.
func Save(cfg *Config) error {
	path := ConfigPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(existing, &merged)
	}

	data, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var managed map[string]json.RawMessage
	if err := json.Unmarshal(data, &managed); err != nil {
		return err
	}
	for k, v := range managed {
		merged[k] = v
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, out, 0644)
}

// SeedDefault writes the default config when no config file exists yet. It
// reports whether a file was written.
func SeedDefault() (bool, error) {
	path := ConfigPath()
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := Save(Default()); err != nil {
		return false, err
	}
	return true, nil
}
