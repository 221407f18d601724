package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplay/internal/ui/theme"
)

// NoticeLine renders a one-line notice. kind is "info", "success",
// "warning" or "error".
func NoticeLine(kind, msg string) string {
	if msg == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	icon := "•"
	switch kind {
	case "success":
		style = lipgloss.NewStyle().Foreground(theme.Success)
		icon = "✓"
	case "warning":
		style = lipgloss.NewStyle().Foreground(theme.Warning)
		icon = "!"
	case "error":
		style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		icon = "✗"
	}
	return style.Render(icon + " " + msg)
}

// Card wraps content in a rounded border with an optional title line.
func Card(title, content string, width int, active bool) string {
	style := theme.Card
	if active {
		style = theme.ActiveCard
	}
	if title != "" {
		content = theme.Title.Render(title) + "\n" + content
	}
	w := width - 2
	if w < 10 {
		w = 10
	}
	return style.Width(w).Render(content)
}
