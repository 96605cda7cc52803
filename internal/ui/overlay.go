// Package ui provides shared UI helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ResetSequence closes any style left open by a cut background segment.
const ResetSequence = "\x1b[0m"

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		w := ansi.StringWidth(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// compositeRow overlays panelLine onto bgLine at position startX.
// Returns: left-segment + panelLine + right-segment, background styles kept.
func compositeRow(bgLine, panelLine string, startX, panelWidth, totalWidth int) string {
	var result strings.Builder

	bgWidth := ansi.StringWidth(bgLine)

	// Left segment: background from 0 to startX
	if startX > 0 {
		leftSeg := ansi.Truncate(bgLine, startX, "")
		leftWidth := ansi.StringWidth(leftSeg)
		result.WriteString(leftSeg)
		result.WriteString(ResetSequence)
		// Pad if background is shorter than the panel position
		if leftWidth < startX {
			result.WriteString(strings.Repeat(" ", startX-leftWidth))
		}
	}

	result.WriteString(panelLine)

	// Pad short panel lines so the right segment stays aligned
	if w := ansi.StringWidth(panelLine); w < panelWidth {
		result.WriteString(strings.Repeat(" ", panelWidth-w))
	}

	// Right segment: background after the panel
	rightStartX := startX + panelWidth
	if rightStartX < totalWidth && bgWidth > rightStartX {
		result.WriteString(ResetSequence)
		result.WriteString(ansi.Cut(bgLine, rightStartX, bgWidth))
	}

	return result.String()
}

// PlaceAt composites panel over background with its top-left corner at
// (x, y). The result has exactly height lines. A panel that would run past
// the right edge is shifted left.
func PlaceAt(background, panel string, x, y, width, height int) string {
	bgLines := strings.Split(background, "\n")
	panelLines := strings.Split(panel, "\n")

	panelWidth := maxLineWidth(panelLines)
	if x+panelWidth > width {
		x = width - panelWidth
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	result := make([]string, 0, height)
	for row := 0; row < height; row++ {
		bgLine := bgLines[row]
		idx := row - y
		if idx >= 0 && idx < len(panelLines) {
			result = append(result, compositeRow(bgLine, panelLines[idx], x, panelWidth, width))
		} else {
			result = append(result, bgLine)
		}
	}
	return strings.Join(result, "\n")
}
