package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplay/internal/ui/components"
	"github.com/abhisek/lessonplay/internal/ui/theme"
)

const bannerFull = `╷                          ╷
│  ╶─╴ lessonplay ╶─╴      │
│   watch · learn · pass   │
╵                          ╵`

const bannerCompact = "L E S S O N P L A Y"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderBanner(cw int, compact bool) string {
	art := bannerFull
	if compact {
		art = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(art))
}

func renderMenu(menu string, cw int) string {
	return components.Card("Courses", menu, cw, true)
}

func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(components.NoticeLine("error", msg))
}

// renderFrame centers content within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
