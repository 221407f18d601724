package lesson

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonplay/internal/player"
	"github.com/abhisek/lessonplay/internal/router"
	"github.com/abhisek/lessonplay/internal/screen"
	examscreen "github.com/abhisek/lessonplay/internal/screens/exam"
	"github.com/abhisek/lessonplay/internal/screens/history"
	"github.com/abhisek/lessonplay/internal/screens/notes"
	"github.com/abhisek/lessonplay/internal/store"
	"github.com/abhisek/lessonplay/internal/ui/layout"
)

const (
	seekStep   = 5 * time.Second
	maxNotices = 3
)

// tickMsg advances playback. gen ties a tick to the chain that scheduled it
// so a resumed screen never runs two chains.
type tickMsg struct {
	gen int
}

// LessonScreen is the video player: topic list, playback and progress.
type LessonScreen struct {
	sess     *player.Session
	events   store.EventRepo
	tick     time.Duration
	gen      int
	selected int // topic list cursor
	notices  []player.Notice
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.StatusProvider = (*LessonScreen)(nil)

// New creates a LessonScreen. tick is the playback refresh interval.
func New(sess *player.Session, events store.EventRepo, tick time.Duration) *LessonScreen {
	if tick <= 0 {
		tick = 250 * time.Millisecond
	}
	return &LessonScreen{
		sess:   sess,
		events: events,
		tick:   tick,
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	return s.tickCmd()
}

func (s *LessonScreen) tickCmd() tea.Cmd {
	gen := s.gen
	return tea.Tick(s.tick, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (s *LessonScreen) Title() string {
	return s.sess.Course().Title
}

func (s *LessonScreen) Status() string {
	v := s.sess.View()
	return fmt.Sprintf("%d/%d topics · %d%%", v.Completed, len(v.Topics), v.Progress)
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Topic"},
		{Key: "Enter", Description: "Play topic"},
		{Key: "Space", Description: "Play/Pause"},
		{Key: "←→", Description: "Seek"},
		{Key: "E", Description: "Exam"},
		{Key: "N", Description: "Notes"},
		{Key: "H", Description: "History"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != s.gen {
			return s, nil
		}
		s.record(s.sess.Tick(ctx, s.tick))
		return s, s.tickCmd()

	case screen.ResumeMsg:
		s.gen++
		return s, s.tickCmd()

	case tea.KeyMsg:
		return s.handleKey(ctx, msg.String())
	}
	return s, nil
}

func (s *LessonScreen) handleKey(ctx context.Context, key string) (screen.Screen, tea.Cmd) {
	topics := s.sess.Timeline().Topics()

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(topics)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(topics) {
			s.record(s.sess.SelectTopic(ctx, topics[s.selected].ID))
		}
	case "space", " ":
		if s.sess.Cursor().Playing() {
			s.record(s.sess.Pause(ctx))
		} else {
			s.record(s.sess.Play(ctx))
		}
	case "left":
		s.record(s.sess.Position(ctx, s.sess.Cursor().Position()-seekStep.Seconds()))
	case "right":
		s.record(s.sess.Position(ctx, s.sess.Cursor().Position()+seekStep.Seconds()))
	case "u":
		if s.selected < len(topics) {
			s.record(s.sess.UnlockTopic(ctx, topics[s.selected].ID))
		}
	case "e":
		res := s.sess.OpenExam(ctx)
		s.record(res)
		if res.Accepted {
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: examscreen.New(s.sess)}
			}
		}
	case "n":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: notes.New(s.sess)}
		}
	case "H":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: history.New(s.events, s.sess.Course())}
		}
	}
	return s, nil
}

// record keeps the most recent notices for display.
func (s *LessonScreen) record(res player.Result) {
	if len(res.Notices) == 0 {
		return
	}
	s.notices = append(s.notices, res.Notices...)
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}
