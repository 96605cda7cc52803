package notepad

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Preview renders note text as markdown. Renderers are cached per width.
type Preview struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewPreview returns a preview using the named glamour style ("dark",
// "light", ...).
func NewPreview(style string) *Preview {
	if style == "" {
		style = "dark"
	}
	return &Preview{style: style}
}

// Render returns the markdown rendering of text wrapped to width.
func (p *Preview) Render(text string, width int) (string, error) {
	if width < 10 {
		width = 10
	}
	if p.renderer == nil || p.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(p.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		p.renderer = r
		p.width = width
	}
	out, err := p.renderer.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
