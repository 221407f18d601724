package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonplay/internal/config"
	"github.com/abhisek/lessonplay/internal/course"
	"github.com/abhisek/lessonplay/internal/exam"
	"github.com/abhisek/lessonplay/internal/gate"
	"github.com/abhisek/lessonplay/internal/store"
)

func testCourse() *course.Course {
	return &course.Course{
		ID:     "py",
		Title:  "Python",
		Module: "Module 1",
		Topics: []course.Topic{
			{ID: "t1", Title: "Intro", Start: 0, End: 30},
			{ID: "t2", Title: "Variables", Start: 30, End: 60},
			{ID: "t3", Title: "Control Flow", Start: 60, End: 90},
			{ID: "t4", Title: "Functions", Start: 90, End: 120},
		},
		Questions: []course.Question{
			{ID: "q1", Prompt: "What is Python?", Options: []string{"A snake", "A language"}, Correct: 1},
			{ID: "q2", Prompt: "Define a function?", Options: []string{"func", "define", "def"}, Correct: 2},
		},
	}
}

// flakyStore wraps a ProgressStore and can be told to fail writes.
type flakyStore struct {
	*store.ProgressStore
	failWrites bool
}

func (f *flakyStore) SaveCompletion(ctx context.Context, id string, m map[string]bool) error {
	if f.failWrites {
		return errors.New("store unavailable")
	}
	return f.ProgressStore.SaveCompletion(ctx, id, m)
}

func (f *flakyStore) SaveNotes(ctx context.Context, id, notes string) error {
	if f.failWrites {
		return errors.New("store unavailable")
	}
	return f.ProgressStore.SaveNotes(ctx, id, notes)
}

func newSession(t *testing.T, deps Deps) *Session {
	t.Helper()
	s, err := Load(context.Background(), testCourse(), deps)
	require.NoError(t, err)
	return s
}

// completeAll walks every topic to its end.
func completeAll(t *testing.T, s *Session) {
	t.Helper()
	ctx := context.Background()
	for _, tp := range s.Timeline().Topics() {
		require.True(t, s.SelectTopic(ctx, tp.ID).Accepted)
		s.Position(ctx, tp.End-0.5)
	}
	require.True(t, gate.ExamUnlocked(s.Timeline().Topics()))
}

func hasNotice(r Result, kind NoticeKind, msg string) bool {
	for _, n := range r.Notices {
		if n.Kind == kind && n.Message == msg {
			return true
		}
	}
	return false
}

func TestLoad_FreshAndHydrated(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	ps := store.NewProgressStore(mem, nil)

	s := newSession(t, Deps{Store: ps})
	v := s.View()
	assert.Equal(t, 0, v.Progress)
	assert.Equal(t, "t1", v.ActiveTopicID)
	assert.Equal(t, "", v.Notes)

	require.NoError(t, ps.SaveCompletion(ctx, "py", map[string]bool{"t1": true, "t2": false}))
	require.NoError(t, ps.SaveNotes(ctx, "py", "decorators wrap functions"))

	s = newSession(t, Deps{Store: ps})
	v = s.View()
	assert.True(t, v.Topics[0].Completed)
	assert.False(t, v.Topics[1].Completed)
	assert.Equal(t, 25, v.Progress)
	assert.Equal(t, "decorators wrap functions", v.Notes)
}

func TestLoad_MalformedStateStartsFresh(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, store.ProgressKey("py"), "{{{"))

	s := newSession(t, Deps{Store: store.NewProgressStore(mem, nil)})
	assert.Equal(t, 0, s.View().Completed)
}

func TestLoad_DoesNotMutateCatalogCourse(t *testing.T) {
	c := testCourse()
	s, err := Load(context.Background(), c, Deps{})
	require.NoError(t, err)

	s.Position(context.Background(), 28)
	assert.True(t, s.Course().Topics[0].Completed)
	assert.False(t, c.Topics[0].Completed)
}

func TestLoad_InvalidCourse(t *testing.T) {
	_, err := Load(context.Background(), &course.Course{ID: "empty"}, Deps{})
	assert.Error(t, err)
	_, err = Load(context.Background(), nil, Deps{})
	assert.Error(t, err)
}

func TestScenarioA_Threshold(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	s := newSession(t, Deps{Store: store.NewProgressStore(mem, nil)})

	r := s.Position(ctx, 27.0)
	assert.Empty(t, r.Completed)
	assert.False(t, s.View().Topics[0].Completed)

	r = s.Position(ctx, 27.1)
	assert.Equal(t, []string{"t1"}, r.Completed)
	assert.True(t, hasNotice(r, NoticeSuccess, "Topic completed: Intro"))

	raw, ok, _ := mem.Get(ctx, store.ProgressKey("py"))
	require.True(t, ok)
	assert.JSONEq(t, `{"t1":true,"t2":false,"t3":false,"t4":false}`, raw)
}

func TestTick_CompletesWhilePlaying(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Deps{})

	s.Play(ctx)
	for i := 0; i < 27; i++ {
		s.Tick(ctx, time.Second)
	}
	assert.False(t, s.View().Topics[0].Completed)

	r := s.Tick(ctx, 500*time.Millisecond)
	assert.Equal(t, []string{"t1"}, r.Completed)
}

func TestScenarioB_LockedTopicRejected(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Deps{})
	s.Course().Topics[2].Locked = true
	s.Position(ctx, 10)

	r := s.SelectTopic(ctx, "t3")
	assert.True(t, r.Rejected())
	assert.True(t, hasNotice(r, NoticeError, gate.MsgTopicLocked))

	v := s.View()
	assert.Equal(t, "t1", v.ActiveTopicID)
	assert.Equal(t, 10.0, v.Position, "playback must not move")
	assert.True(t, v.Topics[2].Locked)
	assert.False(t, v.Topics[2].Completed)
}

func TestSelectTopic_SeeksAndPlays(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Deps{})

	r := s.SelectTopic(ctx, "t2")
	assert.True(t, r.Accepted)
	v := s.View()
	assert.Equal(t, "t2", v.ActiveTopicID)
	assert.Equal(t, 30.0, v.Position)
	assert.True(t, v.Playing)

	// A sample in t2's window completes t2, not t1.
	r = s.Position(ctx, 55)
	assert.Equal(t, []string{"t2"}, r.Completed)
	assert.False(t, s.View().Topics[0].Completed)
}

func TestSelectTopic_Unknown(t *testing.T) {
	s := newSession(t, Deps{})
	r := s.SelectTopic(context.Background(), "nope")
	assert.True(t, r.Rejected())
}

func TestUnlockTopic(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Deps{})
	s.Course().Topics[1].Locked = true

	require.True(t, s.SelectTopic(ctx, "t2").Rejected())
	r := s.UnlockTopic(ctx, "t2")
	assert.True(t, r.Accepted)
	assert.True(t, s.SelectTopic(ctx, "t2").Accepted)

	assert.True(t, s.UnlockTopic(ctx, "ghost").Rejected())
}

func TestScenarioC_ExamFlow(t *testing.T) {
	ctx := context.Background()
	events := store.NewMemoryStore()
	s := newSession(t, Deps{Events: events})

	r := s.OpenExam(ctx)
	assert.True(t, r.Rejected())
	assert.True(t, hasNotice(r, NoticeError, gate.MsgExamLocked))
	assert.Nil(t, s.Exam(), "denied open creates no attempt")

	completeAll(t, s)
	require.True(t, s.OpenExam(ctx).Accepted)
	require.NotNil(t, s.Exam())
	assert.Equal(t, exam.StateNotStarted, s.View().Exam.State)

	require.True(t, s.SelectAnswer(ctx, "q1", 1).Accepted) // correct
	r = s.SubmitExam(ctx)
	assert.True(t, r.Rejected(), "submit needs every answer")
	assert.True(t, hasNotice(r, NoticeError, MsgAnswerAll))

	require.True(t, s.SelectAnswer(ctx, "q2", 0).Accepted) // wrong
	r = s.SubmitExam(ctx)
	require.True(t, r.Accepted)
	require.NotNil(t, r.Exam)
	assert.Equal(t, 50, r.Exam.Score)
	assert.False(t, r.Exam.Passed)
	assert.True(t, hasNotice(r, NoticeWarning, "Score: 50%. You need 70% to pass. Try again!"))

	require.True(t, s.RetryExam(ctx).Accepted)
	ev := s.View().Exam
	assert.Equal(t, exam.StateInProgress, ev.State)
	assert.Equal(t, 0, ev.Answered)
	assert.Nil(t, ev.Result)
	assert.Equal(t, 100, s.View().Progress, "exam never touches topics")

	hist, err := events.RecentEvents(ctx, "py", 0)
	require.NoError(t, err)
	require.NotEmpty(t, hist)
	assert.Equal(t, store.KindExamSubmitted, hist[0].Kind)
	assert.Equal(t, 50, hist[0].Score)
}

func TestExam_PassAndReopen(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Deps{})
	completeAll(t, s)

	s.OpenExam(ctx)
	first := s.Exam().Attempt().ID
	s.SelectAnswer(ctx, "q1", 1)
	s.SelectAnswer(ctx, "q2", 2)
	r := s.SubmitExam(ctx)
	require.NotNil(t, r.Exam)
	assert.Equal(t, 100, r.Exam.Score)
	assert.True(t, hasNotice(r, NoticeSuccess, "Score: 100%. Congratulations! You passed the exam."))

	assert.True(t, s.RetryExam(ctx).Accepted)
	assert.True(t, s.CloseExam(ctx).Accepted)
	assert.Nil(t, s.Exam())
	assert.Nil(t, s.View().Exam)

	assert.True(t, s.SelectAnswer(ctx, "q1", 1).Rejected())
	assert.True(t, s.SubmitExam(ctx).Rejected())

	require.True(t, s.OpenExam(ctx).Accepted)
	assert.NotEqual(t, first, s.Exam().Attempt().ID)
	assert.Equal(t, exam.StateNotStarted, s.Exam().State())
}

func TestSelectAnswer_Invalid(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Deps{})
	completeAll(t, s)
	s.OpenExam(ctx)

	assert.True(t, s.SelectAnswer(ctx, "ghost", 0).Rejected())
	assert.True(t, s.SelectAnswer(ctx, "q1", 7).Rejected())
	assert.Equal(t, exam.StateNotStarted, s.Exam().State())
}

func TestRetry_OnlyAfterSubmit(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Deps{})
	assert.True(t, s.RetryExam(ctx).Rejected())

	completeAll(t, s)
	s.OpenExam(ctx)
	r := s.RetryExam(ctx)
	assert.True(t, hasNotice(r, NoticeError, MsgRetryNotAllowed))
}

func TestPersistFailureWarns(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{ProgressStore: store.NewProgressStore(store.NewMemoryStore(), nil), failWrites: true}

	var delivered []Notice
	s := newSession(t, Deps{Store: fs, Notify: func(n Notice) { delivered = append(delivered, n) }})

	r := s.Position(ctx, 28)
	assert.True(t, s.View().Topics[0].Completed, "in-memory state stays authoritative")
	assert.True(t, hasNotice(r, NoticeWarning, MsgSaveFailed))
	assert.Equal(t, r.Notices, delivered)

	r = s.EditNotes(ctx, "lost on restart")
	assert.True(t, r.Accepted)
	assert.True(t, hasNotice(r, NoticeWarning, MsgNotesSaveFailed))
	assert.Equal(t, "lost on restart", s.Notes())
}

func TestEditNotes_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ps := store.NewProgressStore(store.NewMemoryStore(), nil)

	s := newSession(t, Deps{Store: ps})
	assert.Empty(t, s.EditNotes(ctx, "list comprehensions").Notices)

	s = newSession(t, Deps{Store: ps})
	assert.Equal(t, "list comprehensions", s.Notes())
}

func TestAllCrossedPolicy(t *testing.T) {
	s := newSession(t, Deps{Policy: config.PolicyAllCrossed})
	r := s.Position(context.Background(), 119)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, r.Completed)
	assert.True(t, hasNotice(r, NoticeInfo, "All topics completed. The exam is unlocked."))
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Deps{})

	script := []Command{
		{Op: OpSelectTopic, Topic: "t1"},
		{Op: OpPosition, Position: 28},
		{Op: OpSelectTopic, Topic: "t2"},
		{Op: OpTick, Seconds: 25},
		{Op: OpSelectTopic, Topic: "t3"},
		{Op: OpPosition, Position: 85},
		{Op: OpSelectTopic, Topic: "t4"},
		{Op: OpPosition, Position: 110},
		{Op: OpOpenExam},
		{Op: OpSelectAnswer, Question: "q1", Option: 1},
		{Op: OpSelectAnswer, Question: "q2", Option: 2},
		{Op: OpSubmitExam},
		{Op: OpEditNotes, Text: "done"},
	}
	var last Result
	for _, cmd := range script {
		r, err := s.Apply(ctx, cmd)
		require.NoError(t, err, cmd.String())
		require.True(t, r.Accepted, cmd.String())
		if r.Exam != nil {
			last = r
		}
	}
	require.NotNil(t, last.Exam)
	assert.True(t, last.Exam.Passed)
	assert.Equal(t, "done", s.Notes())

	_, err := s.Apply(ctx, Command{Op: "rewind"})
	assert.Error(t, err)
}
