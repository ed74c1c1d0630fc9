package formatter

import (
	"strings"

	"github.com/alexanderramin/worklog/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// SignedHours renders an hour delta as a colored +HH:MM.
func SignedHours(h float64) string {
	return DeltaStyle(h).Render(stats.FormatSignedHours(h))
}

// SignedKm renders a distance delta as a colored +0.00 km.
func SignedKm(km float64) string {
	return DeltaStyle(km).Render(stats.FormatSignedKm(km) + " km")
}
