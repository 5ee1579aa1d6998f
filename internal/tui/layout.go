// Package tui provides the Bubble Tea screens shown around a typing session.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// MetricCard renders a bordered label/value card in the value style.
func MetricCard(label, value string, valueStyle lipgloss.Style) string {
	content := cardTitleStyle.Render(label) + "\n" + valueStyle.Bold(true).Render(value)
	return cardStyle.Render(content)
}

// FitLines pads or truncates s to exactly width x height cells.
func FitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = PadLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// PadLine right-pads a possibly styled line to width.
func PadLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

// TruncateLine shortens s to width runes, ending with "..." when cut.
func TruncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// FooterStyle is the muted style used for help lines.
func FooterStyle() lipgloss.Style {
	return footerStyle
}
