package styles

import "testing"

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		// Valid 6-char hex colors
		{"valid uppercase", "#FF5500", true},
		{"valid lowercase", "#aabbcc", true},
		{"valid mixed case", "#AbCdEf", true},
		{"valid all zeros", "#000000", true},
		{"valid all Fs", "#FFFFFF", true},

		// Valid 8-char hex colors with alpha
		{"valid with alpha 80", "#00000080", true},
		{"valid with alpha FF", "#FF5500FF", true},
		{"valid with alpha 00", "#aabbcc00", true},

		// Invalid formats - wrong length
		{"invalid 3-char", "#FFF", false},
		{"invalid 4-char", "#FFFF", false},
		{"invalid 5-char", "#FF550", false},
		{"invalid 7-char", "#FF55001", false},
		{"invalid 9-char", "#FF5500801", false},

		// Invalid formats - no hash
		{"no hash 6-char", "FF5500", false},
		{"no hash 8-char", "FF550080", false},

		// Invalid formats - invalid characters
		{"invalid char G", "#GGGGGG", false},
		{"invalid char Z", "#ZZZZZZ", false},
		{"invalid char space", "#FF 550", false},
		{"invalid char dash", "#FF-550", false},

		// Edge cases
		{"empty string", "", false},
		{"just hash", "#", false},
		{"very long", "#FF5500FF5500FF5500", false},
		{"hash only no digits", "#XXXXXX", false},

		// Boundary cases
		{"exactly 6 hex digits", "#123456", true},
		{"exactly 8 hex digits", "#12345678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidHexColor(tt.input)
			if got != tt.valid {
				t.Errorf("IsValidHexColor(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestApplyTheme(t *testing.T) {
	defer ApplyTheme("dark", "")

	ApplyTheme("light", "")
	if GetCurrentThemeName() != "light" {
		t.Errorf("current theme = %q, want light", GetCurrentThemeName())
	}
	if GetMarkdownTheme() != "light" {
		t.Errorf("markdown theme = %q, want light", GetMarkdownTheme())
	}

	ApplyTheme("no-such-theme", "")
	if GetCurrentThemeName() != "dark" {
		t.Errorf("unknown theme should fall back to dark, got %q", GetCurrentThemeName())
	}
}

func TestApplyTheme_AccentOverride(t *testing.T) {
	defer ApplyTheme("dark", "")

	ApplyTheme("dark", "#123456")
	if string(Accent) != "#123456" {
		t.Errorf("Accent = %q, want #123456", Accent)
	}

	ApplyTheme("dark", "not-a-color")
	if string(Accent) != "#F59E0B" {
		t.Errorf("invalid accent should be ignored, got %q", Accent)
	}
}

func TestListThemes(t *testing.T) {
	names := ListThemes()
	if len(names) != 2 || names[0] != "dark" || names[1] != "light" {
		t.Errorf("ListThemes() = %v", names)
	}
	if !IsValidTheme("light") || IsValidTheme("solarized") {
		t.Error("IsValidTheme disagrees with the registry")
	}
}
