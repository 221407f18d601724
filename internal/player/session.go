// Package player owns one learner's session with one course: the timeline,
// the progress tracker, the exam and the notes. Every interaction is a
// command that returns a Result; nothing here draws anything.
package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/lessonplay/internal/course"
	"github.com/abhisek/lessonplay/internal/exam"
	"github.com/abhisek/lessonplay/internal/gate"
	"github.com/abhisek/lessonplay/internal/logger"
	"github.com/abhisek/lessonplay/internal/playback"
	"github.com/abhisek/lessonplay/internal/progress"
	"github.com/abhisek/lessonplay/internal/store"
)

// Messages for guarded actions that are not gate decisions.
const (
	MsgExamNotOpen     = "The exam is not open."
	MsgAnswerAll       = "Answer every question before submitting."
	MsgRetryNotAllowed = "Only a submitted exam can be retried."
	MsgSaveFailed      = "Progress could not be saved. It is kept for this session only."
	MsgNotesSaveFailed = "Notes could not be saved. They are kept for this session only."
)

// Store persists completion maps and notes. *store.ProgressStore satisfies it.
type Store interface {
	LoadCompletion(ctx context.Context, courseID string) map[string]bool
	SaveCompletion(ctx context.Context, courseID string, completed map[string]bool) error
	LoadNotes(ctx context.Context, courseID string) string
	SaveNotes(ctx context.Context, courseID, notes string) error
}

// Deps are a session's collaborators. All are optional.
type Deps struct {
	Store  Store
	Events store.EventRepo
	Policy string
	Log    *logger.Logger
	Notify Notifier
}

// Session is the player state machine for one course.
type Session struct {
	course   *course.Course
	timeline *course.Timeline
	tracker  *progress.Tracker
	cursor   *playback.Cursor
	exam     *exam.Engine
	notes    string

	store  Store
	events store.EventRepo
	log    *logger.Logger
	notify Notifier

	// set while a command runs so cursor samples land in its result
	cmdCtx context.Context
	cmdRes *Result
}

// Load starts a session on a private copy of c, hydrated from deps.Store.
// Missing or unreadable stored state starts the course fresh.
func Load(ctx context.Context, c *course.Course, deps Deps) (*Session, error) {
	if c == nil {
		return nil, errors.New("load session: nil course")
	}
	if err := course.Validate(c); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}

	s := &Session{
		course: c.Clone(),
		store:  deps.Store,
		events: deps.Events,
		log:    deps.Log.With("course", c.ID),
		notify: deps.Notify,
	}
	s.timeline = course.NewTimeline(s.course)

	var persister progress.Persister
	if s.store != nil {
		persister = s.store
	}
	s.tracker = progress.New(s.timeline, progress.Options{
		Policy:    deps.Policy,
		Persister: persister,
		Log:       s.log,
	})

	if s.store != nil {
		s.tracker.Hydrate(s.store.LoadCompletion(ctx, s.course.ID))
		s.notes = s.store.LoadNotes(ctx, s.course.ID)
	}

	s.cursor = playback.NewCursor(s.course.Duration())
	s.cursor.Subscribe(s.onSample)

	s.log.Debug("session loaded",
		"completed", gate.CompletedCount(s.timeline.Topics()),
		"topics", len(s.timeline.Topics()),
		"policy", s.tracker.Policy(),
	)
	return s, nil
}

// Course returns the session's course, including live topic state.
func (s *Session) Course() *course.Course { return s.course }

// Timeline returns the session's timeline.
func (s *Session) Timeline() *course.Timeline { return s.timeline }

// Cursor returns the playback cursor. Move it through session commands so
// samples reach the tracker.
func (s *Session) Cursor() *playback.Cursor { return s.cursor }

// Exam returns the open exam, or nil.
func (s *Session) Exam() *exam.Engine { return s.exam }

// Notes returns the current notes.
func (s *Session) Notes() string { return s.notes }

// Position feeds an external position sample, moving the cursor there.
func (s *Session) Position(ctx context.Context, position float64) Result {
	return s.run(ctx, func(res *Result) {
		s.cursor.Seek(position)
		res.Accepted = true
	})
}

// Tick advances a playing cursor by dt.
func (s *Session) Tick(ctx context.Context, dt time.Duration) Result {
	return s.run(ctx, func(res *Result) {
		s.cursor.Advance(dt)
		res.Accepted = true
	})
}

// Play resumes playback.
func (s *Session) Play(ctx context.Context) Result {
	return s.run(ctx, func(res *Result) {
		s.cursor.Play()
		res.Accepted = s.cursor.Playing()
	})
}

// Pause stops playback.
func (s *Session) Pause(ctx context.Context) Result {
	return s.run(ctx, func(res *Result) {
		s.cursor.Pause()
		res.Accepted = true
	})
}

// SelectTopic makes an unlocked topic active, seeks to its start and plays.
// A locked topic is rejected and nothing moves.
func (s *Session) SelectTopic(ctx context.Context, topicID string) Result {
	return s.run(ctx, func(res *Result) {
		tp, ok := s.timeline.Topic(topicID)
		if !ok {
			res.add(NoticeError, fmt.Sprintf("Unknown topic %q.", topicID))
			return
		}
		if d := gate.Authorize(tp); !d.Allowed {
			res.add(NoticeError, d.Reason)
			return
		}

		if err := s.timeline.SetActiveTopic(tp.ID); err != nil {
			res.add(NoticeError, err.Error())
			return
		}
		s.cursor.Seek(tp.Start)
		s.cursor.Play()
		res.Accepted = true
		res.add(NoticeInfo, "Now playing: "+tp.Title)
	})
}

// EditNotes replaces the notes and saves them.
func (s *Session) EditNotes(ctx context.Context, text string) Result {
	return s.run(ctx, func(res *Result) {
		s.notes = text
		res.Accepted = true
		if s.store == nil {
			return
		}
		if err := s.store.SaveNotes(ctx, s.course.ID, text); err != nil {
			s.log.Warn("persist notes failed", "error", err)
			res.add(NoticeWarning, MsgNotesSaveFailed)
		}
	})
}

// OpenExam starts a fresh attempt once every topic is completed. An exam that
// is already open stays as it is.
func (s *Session) OpenExam(ctx context.Context) Result {
	return s.run(ctx, func(res *Result) {
		if d := gate.AuthorizeExam(s.timeline.Topics()); !d.Allowed {
			res.add(NoticeError, d.Reason)
			return
		}
		res.Accepted = true
		if s.exam != nil {
			return
		}
		s.exam = exam.New(s.course.Questions)
		s.cursor.Pause()
		res.add(NoticeInfo, fmt.Sprintf("Exam started: %d questions.", len(s.course.Questions)))
	})
}

// SelectAnswer records an answer on the open exam.
func (s *Session) SelectAnswer(ctx context.Context, questionID string, option int) Result {
	return s.run(ctx, func(res *Result) {
		if s.exam == nil {
			res.add(NoticeError, MsgExamNotOpen)
			return
		}
		if err := s.exam.SelectAnswer(questionID, option); err != nil {
			res.add(NoticeError, answerError(err))
			return
		}
		res.Accepted = true
	})
}

// SubmitExam scores the open exam. Topic state is never touched.
func (s *Session) SubmitExam(ctx context.Context) Result {
	return s.run(ctx, func(res *Result) {
		if s.exam == nil {
			res.add(NoticeError, MsgExamNotOpen)
			return
		}
		result, ok := s.exam.Submit()
		if !ok {
			res.add(NoticeError, MsgAnswerAll)
			return
		}
		res.Accepted = true
		res.Exam = &result

		kind := NoticeWarning
		if result.Passed {
			kind = NoticeSuccess
		}
		res.add(kind, fmt.Sprintf("Score: %d%%. %s", result.Score, result.Message()))

		s.recordExam(ctx, result)
	})
}

// RetryExam clears a submitted attempt for another go.
func (s *Session) RetryExam(ctx context.Context) Result {
	return s.run(ctx, func(res *Result) {
		if s.exam == nil {
			res.add(NoticeError, MsgExamNotOpen)
			return
		}
		if !s.exam.Retry() {
			res.add(NoticeError, MsgRetryNotAllowed)
			return
		}
		res.Accepted = true
	})
}

// CloseExam discards the attempt. Opening again starts a new one.
func (s *Session) CloseExam(ctx context.Context) Result {
	return s.run(ctx, func(res *Result) {
		if s.exam != nil {
			s.exam.Close()
			s.exam = nil
		}
		res.Accepted = true
	})
}

// UnlockTopic clears a topic's lock flag.
func (s *Session) UnlockTopic(ctx context.Context, topicID string) Result {
	return s.setLock(ctx, topicID, false)
}

// LockTopic sets a topic's lock flag.
func (s *Session) LockTopic(ctx context.Context, topicID string) Result {
	return s.setLock(ctx, topicID, true)
}

func (s *Session) setLock(ctx context.Context, topicID string, locked bool) Result {
	return s.run(ctx, func(res *Result) {
		var (
			changed bool
			err     error
		)
		if locked {
			changed, err = s.tracker.Lock(topicID)
		} else {
			changed, err = s.tracker.Unlock(topicID)
		}
		if err != nil {
			res.add(NoticeError, fmt.Sprintf("Unknown topic %q.", topicID))
			return
		}
		res.Accepted = true
		if changed {
			tp, _ := s.timeline.Topic(topicID)
			verb := "unlocked"
			if locked {
				verb = "locked"
			}
			res.add(NoticeInfo, fmt.Sprintf("Topic %s: %s", verb, tp.Title))
		}
	})
}

// run executes a command with samples routed into its result, then
// delivers the notices.
func (s *Session) run(ctx context.Context, fn func(res *Result)) Result {
	res := &Result{}
	s.cmdCtx, s.cmdRes = ctx, res
	defer func() { s.cmdCtx, s.cmdRes = nil, nil }()

	fn(res)

	if s.notify != nil {
		for _, n := range res.Notices {
			s.notify(n)
		}
	}
	return *res
}

// onSample is the cursor's consumer.
func (s *Session) onSample(position float64) {
	ctx := s.cmdCtx
	if ctx == nil {
		ctx = context.Background()
	}
	res := s.cmdRes
	if res == nil {
		res = &Result{}
	}

	out := s.tracker.Observe(ctx, position)
	if !out.Changed() {
		return
	}
	res.Completed = append(res.Completed, out.Completed...)
	for _, id := range out.Completed {
		tp, _ := s.timeline.Topic(id)
		res.add(NoticeSuccess, "Topic completed: "+tp.Title)
		s.recordTopic(ctx, id, position)
	}
	if out.PersistErr != nil {
		res.add(NoticeWarning, MsgSaveFailed)
	}
	if gate.ExamUnlocked(s.timeline.Topics()) {
		res.add(NoticeInfo, "All topics completed. The exam is unlocked.")
	}
}

func (s *Session) recordTopic(ctx context.Context, topicID string, position float64) {
	if s.events == nil {
		return
	}
	err := s.events.AppendTopicCompleted(ctx, store.TopicCompletedEventData{
		CourseID: s.course.ID,
		TopicID:  topicID,
		Position: position,
	})
	if err != nil {
		s.log.Warn("record topic event failed", "topic", topicID, "error", err)
	}
}

func (s *Session) recordExam(ctx context.Context, r exam.Result) {
	if s.events == nil {
		return
	}
	err := s.events.AppendExamSubmitted(ctx, store.ExamSubmittedEventData{
		CourseID:  s.course.ID,
		AttemptID: r.AttemptID,
		Score:     r.Score,
		Passed:    r.Passed,
	})
	if err != nil {
		s.log.Warn("record exam event failed", "attempt", r.AttemptID, "error", err)
	}
}

func answerError(err error) string {
	switch {
	case errors.Is(err, course.ErrNotFound):
		return "Unknown question."
	case errors.Is(err, exam.ErrNotOpen):
		return MsgExamNotOpen
	default:
		return "Answer rejected: " + err.Error()
	}
}
