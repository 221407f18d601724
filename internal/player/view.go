package player

import (
	"github.com/abhisek/lessonplay/internal/exam"
	"github.com/abhisek/lessonplay/internal/gate"
)

// View is a read-only snapshot of everything a presentation needs.
type View struct {
	CourseID    string
	CourseTitle string
	Module      string
	PosterURL   string

	Topics        []TopicView
	ActiveTopicID string
	Completed     int
	Progress      int // percent

	ExamUnlocked bool
	ExamLabel    string
	Exam         *ExamView // nil when no exam is open

	Position float64
	Duration float64
	Playing  bool

	Notes string
}

// TopicView is one row of the topic list.
type TopicView struct {
	ID          string
	Title       string
	Description string
	Window      string
	Status      gate.TopicStatus
	Locked      bool
	Completed   bool
	Active      bool
}

// ExamView describes the open exam.
type ExamView struct {
	State     exam.State
	Answered  int
	Total     int
	CanSubmit bool
	Result    *exam.Result
}

// View builds a snapshot of the session.
func (s *Session) View() View {
	topics := s.timeline.Topics()
	active := s.timeline.ActiveTopic()

	v := View{
		CourseID:     s.course.ID,
		CourseTitle:  s.course.Title,
		Module:       s.course.Module,
		PosterURL:    s.course.Media.PosterURL,
		Completed:    gate.CompletedCount(topics),
		Progress:     gate.OverallProgress(topics),
		ExamUnlocked: gate.ExamUnlocked(topics),
		ExamLabel:    gate.ExamButtonLabel(topics),
		Position:     s.cursor.Position(),
		Duration:     s.cursor.Duration(),
		Playing:      s.cursor.Playing(),
		Notes:        s.notes,
	}
	if active != nil {
		v.ActiveTopicID = active.ID
	}

	v.Topics = make([]TopicView, len(topics))
	for i := range topics {
		tp := &topics[i]
		v.Topics[i] = TopicView{
			ID:          tp.ID,
			Title:       tp.Title,
			Description: tp.Description,
			Window:      tp.Window(),
			Status:      gate.Status(tp),
			Locked:      tp.Locked,
			Completed:   tp.Completed,
			Active:      tp == active,
		}
	}

	if s.exam != nil {
		ev := &ExamView{
			State:     s.exam.State(),
			Total:     len(s.exam.Questions()),
			CanSubmit: s.exam.CanSubmit(),
			Result:    s.exam.Result(),
		}
		if a := s.exam.Attempt(); a != nil {
			ev.Answered = len(a.Answers)
		}
		v.Exam = ev
	}
	return v
}

// ActiveTopic returns the active row, if any.
func (v View) ActiveTopic() (TopicView, bool) {
	for _, t := range v.Topics {
		if t.Active {
			return t, true
		}
	}
	return TopicView{}, false
}
