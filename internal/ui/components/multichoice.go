package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplay/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector for one exam question.
// Choosing an option does not lock it; the learner can change their mind
// until the exam is submitted.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int  // cursor
	ChosenIndex  int  // -1 until an option is chosen
	Reveal       bool // show correct/incorrect marks
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Update handles keyboard navigation and selection. The returned bool is
// true when an option was chosen.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Reveal {
		return m, false
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space", " ":
		m.ChosenIndex = m.Selected
		return m, true
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			m.ChosenIndex = m.Selected
			return m, true
		}
	}

	return m, false
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		cursor := "  "
		if i == m.Selected && !m.Reveal {
			cursor = "▸ "
		}
		mark := "( )"
		if i == m.ChosenIndex {
			mark = "(•)"
		}

		line := fmt.Sprintf("%s%s %d) %s", cursor, mark, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Reveal && i == m.CorrectIndex:
			style = theme.Correct
		case m.Reveal && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}

	return s
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.ChosenIndex >= 0
}
