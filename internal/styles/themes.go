package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects access to themeRegistry and currentTheme for thread safety
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors
type ColorPalette struct {
	Primary string
	Accent  string

	Success string
	Error   string

	TextPrimary string
	TextMuted   string
	TextSubtle  string

	BgPrimary   string
	BgSecondary string
	BgTertiary  string

	BorderNormal string
	BorderActive string

	ToastSuccessText string
	ToastErrorText   string

	MarkdownTheme string // glamour standard style name
}

// Theme is a named palette.
type Theme struct {
	Name   string
	Colors ColorPalette
}

var themeRegistry = map[string]Theme{
	"dark": {
		Name: "dark",
		Colors: ColorPalette{
			Primary:          "#7C3AED",
			Accent:           "#F59E0B",
			Success:          "#10B981",
			Error:            "#EF4444",
			TextPrimary:      "#F9FAFB",
			TextMuted:        "#6B7280",
			TextSubtle:       "#4B5563",
			BgPrimary:        "#111827",
			BgSecondary:      "#1F2937",
			BgTertiary:       "#374151",
			BorderNormal:     "#374151",
			BorderActive:     "#7C3AED",
			ToastSuccessText: "#000000",
			ToastErrorText:   "#FFFFFF",
			MarkdownTheme:    "dark",
		},
	},
	"light": {
		Name: "light",
		Colors: ColorPalette{
			Primary:          "#6D28D9",
			Accent:           "#B45309",
			Success:          "#047857",
			Error:            "#B91C1C",
			TextPrimary:      "#111827",
			TextMuted:        "#4B5563",
			TextSubtle:       "#9CA3AF",
			BgPrimary:        "#FFFFFF",
			BgSecondary:      "#F3F4F6",
			BgTertiary:       "#E5E7EB",
			BorderNormal:     "#D1D5DB",
			BorderActive:     "#6D28D9",
			ToastSuccessText: "#FFFFFF",
			ToastErrorText:   "#FFFFFF",
			MarkdownTheme:    "light",
		},
	},
}

var currentTheme = "dark"

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// ListThemes returns the registered theme names, sorted.
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentThemeName returns the applied theme's name.
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ApplyTheme applies the named theme, falling back to "dark". A valid accent
// hex overrides the theme's accent color.
func ApplyTheme(name, accent string) {
	themeMu.Lock()
	theme, ok := themeRegistry[name]
	if !ok {
		theme = themeRegistry["dark"]
	}
	currentTheme = theme.Name
	themeMu.Unlock()

	if IsValidHexColor(accent) {
		theme.Colors.Accent = accent
	}
	applyThemeColors(theme)
}

// GetMarkdownTheme returns the glamour style for the current theme.
func GetMarkdownTheme() string {
	return CurrentMarkdownTheme
}

func applyThemeColors(theme Theme) {
	c := theme.Colors

	Primary = lipgloss.Color(c.Primary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Error = lipgloss.Color(c.Error)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextSubtle = lipgloss.Color(c.TextSubtle)

	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	ToastSuccessTextColor = lipgloss.Color(c.ToastSuccessText)
	ToastErrorTextColor = lipgloss.Color(c.ToastErrorText)

	CurrentMarkdownTheme = c.MarkdownTheme

	rebuildStyles()
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive)

	PanelHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	MenuBar = lipgloss.NewStyle().
		Background(BgSecondary).
		Foreground(TextMuted)

	StatusIcon = lipgloss.NewStyle().
		Background(BgSecondary).
		Foreground(TextPrimary).
		Padding(0, 1)

	StatusIconActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(TextPrimary).
		Bold(true).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary).
		Padding(0, 1)

	ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextSubtle).
		Background(BgSecondary).
		Padding(0, 1)

	ButtonAccent = lipgloss.NewStyle().
		Foreground(BgPrimary).
		Background(Accent).
		Bold(true).
		Padding(0, 1)

	ListItemNormal = lipgloss.NewStyle().
		Foreground(TextPrimary)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary)

	Checked = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	ToastSuccess = lipgloss.NewStyle().
		Background(Success).
		Foreground(ToastSuccessTextColor).
		Bold(true).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Background(Error).
		Foreground(ToastErrorTextColor).
		Bold(true).
		Padding(0, 1)
}
