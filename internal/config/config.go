package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/marcus/quickeys/internal/styles"
)

// Config is the root configuration structure.
type Config struct {
	Popover      PopoverConfig      `json:"popover"`
	Paste        PasteConfig        `json:"paste"`
	Network      NetworkConfig      `json:"network"`
	Destinations DestinationsConfig `json:"destinations"`
	History      HistoryConfig      `json:"history"`
	Control      ControlConfig      `json:"control"`
	Keymap       KeymapConfig       `json:"keymap"`
	UI           UIConfig           `json:"ui"`
}

// PopoverConfig sizes the popover panel, in terminal cells.
type PopoverConfig struct {
	Width         int `json:"width"`
	MinHeight     int `json:"minHeight"`
	MaxHeight     int `json:"maxHeight"`
	InitialHeight int `json:"initialHeight"`
}

// PasteConfig configures the paste service client.
type PasteConfig struct {
	Endpoint string        `json:"endpoint"`
	DevKey   string        `json:"devKey"`
	Expire   string        `json:"expire"` // pastebin api_paste_expire_date, e.g. "1D"
	Private  int           `json:"private"`
	Timeout  time.Duration `json:"timeout"`
}

// NetworkConfig configures the reachability check done before pasting.
type NetworkConfig struct {
	ReachabilityHost string        `json:"reachabilityHost"` // host:port dialed over TCP
	Timeout          time.Duration `json:"timeout"`
}

// DestinationsConfig locates the search destination list.
type DestinationsConfig struct {
	Path  string `json:"path"`
	Watch bool   `json:"watch"`
}

// HistoryConfig configures the paste history database.
type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	DBPath  string `json:"dbPath"`
}

// ControlConfig configures the loopback endpoint used by the global shortcut.
type ControlConfig struct {
	Addr           string `json:"addr"`
	ToggleShortcut string `json:"toggleShortcut"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	Icon      string `json:"icon"`
	ShowHints bool   `json:"showHints"`
	Theme     string `json:"theme"`            // "dark" or "light"
	Accent    string `json:"accent,omitempty"` // hex override for the accent color
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Popover: PopoverConfig{
			Width:         48,
			MinHeight:     10,
			MaxHeight:     30,
			InitialHeight: 14,
		},
		Paste: PasteConfig{
			Endpoint: "https://pastebin.com/api/api_post.php",
			Expire:   "1D",
			Private:  1,
			Timeout:  15 * time.Second,
		},
		Network: NetworkConfig{
			ReachabilityHost: "pastebin.com:443",
			Timeout:          2 * time.Second,
		},
		Destinations: DestinationsConfig{
			Path:  "~/.config/quickeys/urls.json",
			Watch: true,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "~/.config/quickeys/history.db",
		},
		Control: ControlConfig{
			Addr:           "127.0.0.1:47808",
			ToggleShortcut: "cmd+shift+8",
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			Icon:      "✎",
			ShowHints: true,
			Theme:     "dark",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	d := Default()
	if c.Popover.Width <= 0 {
		c.Popover.Width = d.Popover.Width
	}
	if c.Popover.MinHeight <= 0 {
		c.Popover.MinHeight = d.Popover.MinHeight
	}
	if c.Popover.MaxHeight < c.Popover.MinHeight {
		c.Popover.MaxHeight = c.Popover.MinHeight
	}
	if c.Popover.InitialHeight < c.Popover.MinHeight {
		c.Popover.InitialHeight = c.Popover.MinHeight
	}
	if c.Popover.InitialHeight > c.Popover.MaxHeight {
		c.Popover.InitialHeight = c.Popover.MaxHeight
	}
	if c.Paste.Timeout <= 0 {
		c.Paste.Timeout = d.Paste.Timeout
	}
	if c.Network.Timeout <= 0 {
		c.Network.Timeout = d.Network.Timeout
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if !styles.IsValidTheme(c.UI.Theme) {
		return fmt.Errorf("ui.theme %q: want one of %s", c.UI.Theme, strings.Join(styles.ListThemes(), ", "))
	}
	if c.UI.Accent != "" && !styles.IsValidHexColor(c.UI.Accent) {
		return fmt.Errorf("ui.accent %q: want a hex color like #7C3AED", c.UI.Accent)
	}
	return nil
}
