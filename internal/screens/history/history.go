package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplay/internal/course"
	"github.com/abhisek/lessonplay/internal/router"
	"github.com/abhisek/lessonplay/internal/screen"
	"github.com/abhisek/lessonplay/internal/store"
	"github.com/abhisek/lessonplay/internal/ui/layout"
	"github.com/abhisek/lessonplay/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Events []store.ProgressEvent
	Err    error
}

// HistoryScreen lists recent progress events for one course.
type HistoryScreen struct {
	eventRepo store.EventRepo
	course    *course.Course
	events    []store.ProgressEvent
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo, c *course.Course) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		course:    c,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if s.eventRepo == nil {
			return historyLoadedMsg{}
		}
		events, err := s.eventRepo.RecentEvents(context.Background(), s.course.ID, historyLimit)
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing yet. Finish a topic to see it here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := prefix + e.Timestamp.Local().Format("Jan 02 15:04") + "  " + Describe(e, s.course)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// Describe renders an event as a sentence. c resolves topic titles and may
// be nil.
func Describe(e store.ProgressEvent, c *course.Course) string {
	switch e.Kind {
	case store.KindTopicCompleted:
		title := e.TopicID
		if c != nil {
			for _, tp := range c.Topics {
				if tp.ID == e.TopicID {
					title = tp.Title
					break
				}
			}
		}
		return fmt.Sprintf("Completed topic %q at %s", title, course.FormatOffset(e.Position))
	case store.KindExamSubmitted:
		verdict := "failed"
		if e.Passed {
			verdict = "passed"
		}
		return fmt.Sprintf("Exam %s with %d%%", verdict, e.Score)
	default:
		return e.Kind
	}
}
