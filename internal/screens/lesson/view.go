package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplay/internal/course"
	"github.com/abhisek/lessonplay/internal/gate"
	"github.com/abhisek/lessonplay/internal/player"
	"github.com/abhisek/lessonplay/internal/ui/components"
	"github.com/abhisek/lessonplay/internal/ui/layout"
	"github.com/abhisek/lessonplay/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	v := s.sess.View()

	sideWidth := 34
	if layout.IsCompactWidth(width) {
		sideWidth = 28
	}
	mainWidth := width - sideWidth - 2
	if mainWidth < 30 {
		mainWidth = 30
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		s.renderPlayer(v, mainWidth),
		s.renderActiveTopic(v, mainWidth),
		s.renderNotices(),
	)
	side := lipgloss.JoinVertical(lipgloss.Left,
		s.renderProgress(v, sideWidth),
		s.renderTopics(v, sideWidth),
		s.renderExam(v, sideWidth),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", side)
}

func (s *LessonScreen) renderPlayer(v player.View, width int) string {
	state := "▶ Playing"
	if !v.Playing {
		state = "❚❚ Paused"
	}

	frac := 0.0
	if v.Duration > 0 {
		frac = v.Position / v.Duration
	}
	bar := components.NewProgressBar("", frac, false, width-4).View()

	timeLine := theme.Body.Render(state) + "  " +
		theme.Subtitle.Render(course.FormatOffset(v.Position)+" / "+course.FormatOffset(v.Duration))

	body := theme.Subtitle.Render(v.Module) + "\n\n" + bar + "\n" + timeLine
	if v.PosterURL != "" {
		body += "\n" + theme.Hint.Render(v.PosterURL)
	}
	return components.Card(v.CourseTitle, body, width, true)
}

func (s *LessonScreen) renderActiveTopic(v player.View, width int) string {
	tv, ok := v.ActiveTopic()
	if !ok {
		return ""
	}
	body := theme.Subtitle.Render(tv.Window)
	if tv.Description != "" {
		body += "\n" + theme.Body.Render(tv.Description)
	}
	return components.Card(tv.Title, body, width, false)
}

func (s *LessonScreen) renderNotices() string {
	if len(s.notices) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.notices))
	for _, n := range s.notices {
		lines = append(lines, components.NoticeLine(string(n.Kind), n.Message))
	}
	return strings.Join(lines, "\n")
}

func (s *LessonScreen) renderProgress(v player.View, width int) string {
	bar := components.NewProgressBar("", float64(v.Progress)/100, true, width-4).View()
	label := theme.Subtitle.Render(fmt.Sprintf("%d of %d topics completed", v.Completed, len(v.Topics)))
	return components.Card("Course Progress", bar+"\n"+label, width, false)
}

func (s *LessonScreen) renderTopics(v player.View, width int) string {
	var b strings.Builder
	for i, tv := range v.Topics {
		cursor := "  "
		if i == s.selected {
			cursor = "▸ "
		}
		icon := statusIcon(tv.Status)
		line := fmt.Sprintf("%s%s %s", cursor, icon, tv.Title)

		var style lipgloss.Style
		switch {
		case tv.Locked:
			style = theme.Locked
		case i == s.selected:
			style = theme.Selected
		case tv.Completed:
			style = theme.Completed
		default:
			style = theme.Unselected
		}
		if tv.Active {
			line += " ●"
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("     " + tv.Window))
		if i < len(v.Topics)-1 {
			b.WriteString("\n")
		}
	}
	return components.Card("Course Topics", b.String(), width, false)
}

func (s *LessonScreen) renderExam(v player.View, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(components.NewButton(v.ExamLabel, v.ExamUnlocked).View())
}

func statusIcon(st gate.TopicStatus) string {
	switch st {
	case gate.StatusLocked:
		return "🔒"
	case gate.StatusCompleted:
		return "✓"
	default:
		return "○"
	}
}
