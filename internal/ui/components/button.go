package components

import (
	"github.com/abhisek/lessonplay/internal/ui/theme"
)

// Button is a styled, possibly disabled, button.
type Button struct {
	Label   string
	Enabled bool
	Focused bool
}

// NewButton creates a new button.
func NewButton(label string, enabled bool) Button {
	return Button{
		Label:   label,
		Enabled: enabled,
	}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Focused && b.Enabled {
		label = "▸ " + label
	}
	if b.Enabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
