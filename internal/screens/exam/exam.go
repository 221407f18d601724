package exam

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	examengine "github.com/abhisek/lessonplay/internal/exam"
	"github.com/abhisek/lessonplay/internal/player"
	"github.com/abhisek/lessonplay/internal/router"
	"github.com/abhisek/lessonplay/internal/screen"
	"github.com/abhisek/lessonplay/internal/ui/components"
	"github.com/abhisek/lessonplay/internal/ui/layout"
	"github.com/abhisek/lessonplay/internal/ui/theme"
)

// ExamScreen runs the open exam of a player session. The exam must already
// be open; leaving the screen closes it.
type ExamScreen struct {
	sess    *player.Session
	choices []components.MultiChoice
	current int
	notice  player.Notice
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.BackHandler = (*ExamScreen)(nil)

// New creates an ExamScreen over sess's open exam.
func New(sess *player.Session) *ExamScreen {
	s := &ExamScreen{sess: sess}
	s.resetChoices()
	return s
}

func (s *ExamScreen) resetChoices() {
	s.choices = s.choices[:0]
	s.current = 0
	for _, q := range s.sess.Course().Questions {
		s.choices = append(s.choices, components.NewMultiChoice(q.Prompt, q.Options, q.Correct))
	}
}

func (s *ExamScreen) Init() tea.Cmd {
	return nil
}

func (s *ExamScreen) Title() string {
	return "Course Exam"
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	if s.submitted() {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter/1-9", Description: "Choose"},
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Close"},
	}
}

// Back closes the exam and leaves the screen.
func (s *ExamScreen) Back() tea.Cmd {
	s.sess.CloseExam(context.Background())
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	ctx := context.Background()

	switch kmsg.String() {
	case "esc", "c":
		return s, s.Back()
	case "r":
		res := s.sess.RetryExam(ctx)
		s.setNotice(res)
		if res.Accepted {
			s.resetChoices()
		}
		return s, nil
	case "s":
		res := s.sess.SubmitExam(ctx)
		s.setNotice(res)
		return s, nil
	case "left", "h", "shift+tab":
		if s.current > 0 {
			s.current--
		}
		return s, nil
	case "right", "l", "tab":
		if s.current < len(s.choices)-1 {
			s.current++
		}
		return s, nil
	}

	if s.submitted() || len(s.choices) == 0 {
		return s, nil
	}

	mc, chose := s.choices[s.current].Update(msg)
	s.choices[s.current] = mc
	if chose {
		q := s.sess.Course().Questions[s.current]
		res := s.sess.SelectAnswer(ctx, q.ID, mc.ChosenIndex)
		s.setNotice(res)
		if res.Accepted && s.current < len(s.choices)-1 {
			s.current++
		}
	}
	return s, nil
}

func (s *ExamScreen) setNotice(res player.Result) {
	s.notice = player.Notice{}
	if n := len(res.Notices); n > 0 {
		s.notice = res.Notices[n-1]
	}
}

func (s *ExamScreen) submitted() bool {
	e := s.sess.Exam()
	return e != nil && e.State() == examengine.StateSubmitted
}

func (s *ExamScreen) View(width, height int) string {
	e := s.sess.Exam()
	if e == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  The exam is closed.")
	}

	cw := width - 8
	if cw > 76 {
		cw = 76
	}

	var b strings.Builder
	b.WriteString("\n")

	if r := e.Result(); r != nil {
		b.WriteString(renderResult(*r, cw))
	} else {
		answered := 0
		if a := e.Attempt(); a != nil {
			answered = len(a.Answers)
		}
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d  ·  %d answered",
			s.current+1, len(s.choices), answered)))
		b.WriteString("\n\n")
		if len(s.choices) > 0 {
			b.WriteString(components.Card("", s.choices[s.current].View(), cw, true))
		}
		b.WriteString("\n\n")
		b.WriteString(components.NewButton("Submit Exam", e.CanSubmit()).View())
	}

	if s.notice.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(components.NoticeLine(string(s.notice.Kind), s.notice.Message))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderResult(r examengine.Result, width int) string {
	scoreStyle := theme.Incorrect
	if r.Passed {
		scoreStyle = theme.Correct
	}
	body := scoreStyle.Render(fmt.Sprintf("Your Score: %d%%", r.Score)) + "\n\n" +
		theme.Body.Render(r.Message()) + "\n" +
		theme.Subtitle.Render(r.Summary())
	return components.Card("Exam Results", body, width, false)
}
