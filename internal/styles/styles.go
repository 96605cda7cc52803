package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	// Primary colors
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Error   = lipgloss.Color("#EF4444") // Red

	// Text colors
	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")
	TextSubtle  = lipgloss.Color("#4B5563")

	// Background colors
	BgPrimary   = lipgloss.Color("#111827")
	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	// Border colors
	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")

	ToastSuccessTextColor = lipgloss.Color("#000000")
	ToastErrorTextColor   = lipgloss.Color("#FFFFFF")

	// Glamour style name for the note preview (updated by ApplyTheme)
	CurrentMarkdownTheme = "dark"
)

// Popover panel
var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive)

	PanelHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimary)
)

// Menu bar row and status icon
var (
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
)

// Text styles
var (
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
)

// Buttons
var (
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
)

// Preferences rows
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(TextPrimary)

	ListItemSelected = lipgloss.NewStyle().
				Foreground(TextPrimary).
				Background(BgTertiary)

	Checked = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)
)

// Toast styles for status messages
var (
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
)
