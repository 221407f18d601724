package exam

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/abhisek/lessonplay/internal/course"
)

// PassScore is the minimum percentage that passes the exam.
const PassScore = 70

// ErrNotOpen is returned when an operation needs an open attempt.
var ErrNotOpen = errors.New("exam is not open")

// State is the attempt's position in the exam lifecycle.
type State string

const (
	StateNotStarted State = "not-started"
	StateInProgress State = "in-progress"
	StateSubmitted  State = "submitted"
	StateClosed     State = "closed"
)

// Attempt holds one exam session's answers and score.
type Attempt struct {
	ID      string
	Answers map[string]int // question ID -> option index
	Score   *int
}

// Result is the outcome of a submitted attempt.
type Result struct {
	AttemptID string
	Score     int
	Correct   int
	Total     int
	Passed    bool
}

// Message returns the pass/fail line shown under the score.
func (r Result) Message() string {
	if r.Passed {
		return "Congratulations! You passed the exam."
	}
	return fmt.Sprintf("You need %d%% to pass. Try again!", PassScore)
}

// Summary returns the "N out of M" line shown under the score.
func (r Result) Summary() string {
	return fmt.Sprintf("You got %d out of %d questions correct.", r.Correct, r.Total)
}

// Engine runs a single exam attempt. A closed engine is discarded; opening
// the exam again creates a new engine.
type Engine struct {
	questions []course.Question
	state     State
	attempt   *Attempt
	result    *Result
}

// New opens a fresh attempt over the given questions.
func New(questions []course.Question) *Engine {
	return &Engine{
		questions: questions,
		state:     StateNotStarted,
		attempt:   newAttempt(),
	}
}

func newAttempt() *Attempt {
	return &Attempt{
		ID:      uuid.New().String(),
		Answers: make(map[string]int),
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Questions returns the exam questions in order.
func (e *Engine) Questions() []course.Question {
	return e.questions
}

// Attempt returns the current attempt, or nil once closed.
func (e *Engine) Attempt() *Attempt {
	return e.attempt
}

// Result returns the scored result, or nil before submission.
func (e *Engine) Result() *Result {
	return e.result
}

// Answer returns the recorded option for a question.
func (e *Engine) Answer(questionID string) (int, bool) {
	if e.attempt == nil {
		return 0, false
	}
	opt, ok := e.attempt.Answers[questionID]
	return opt, ok
}

// SelectAnswer records or overwrites the answer for a question. It does not
// change state except moving a not-started attempt to in-progress.
func (e *Engine) SelectAnswer(questionID string, option int) error {
	switch e.state {
	case StateNotStarted, StateInProgress:
	case StateClosed:
		return ErrNotOpen
	default:
		return fmt.Errorf("cannot answer in state %s", e.state)
	}

	q, ok := e.question(questionID)
	if !ok {
		return fmt.Errorf("question %q: %w", questionID, course.ErrNotFound)
	}
	if option < 0 || option >= len(q.Options) {
		return fmt.Errorf("question %q: option %d out of range", questionID, option)
	}

	e.attempt.Answers[questionID] = option
	e.state = StateInProgress
	return nil
}

// CanSubmit reports whether every question has exactly one answer.
func (e *Engine) CanSubmit() bool {
	if e.state != StateNotStarted && e.state != StateInProgress {
		return false
	}
	if len(e.attempt.Answers) != len(e.questions) {
		return false
	}
	for _, q := range e.questions {
		if _, ok := e.attempt.Answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Submit scores the attempt. ok is false when the submit guard is not
// satisfied, in which case nothing changes.
func (e *Engine) Submit() (res Result, ok bool) {
	if !e.CanSubmit() {
		return Result{}, false
	}

	correct := 0
	for _, q := range e.questions {
		if q.IsCorrect(e.attempt.Answers[q.ID]) {
			correct++
		}
	}
	score := Score(correct, len(e.questions))

	e.attempt.Score = &score
	e.result = &Result{
		AttemptID: e.attempt.ID,
		Score:     score,
		Correct:   correct,
		Total:     len(e.questions),
		Passed:    Passed(score),
	}
	e.state = StateSubmitted
	return *e.result, true
}

// Retry clears answers and score and returns a submitted attempt to
// in-progress. It is a no-op in any other state.
func (e *Engine) Retry() bool {
	if e.state != StateSubmitted {
		return false
	}
	e.attempt.Answers = make(map[string]int)
	e.attempt.Score = nil
	e.result = nil
	e.state = StateInProgress
	return true
}

// Close discards the attempt.
func (e *Engine) Close() {
	e.attempt = nil
	e.result = nil
	e.state = StateClosed
}

func (e *Engine) question(id string) (course.Question, bool) {
	for _, q := range e.questions {
		if q.ID == id {
			return q, true
		}
	}
	return course.Question{}, false
}

// Score returns round(correct/total*100). An empty exam scores 0.
func Score(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Passed reports whether score meets the pass mark.
func Passed(score int) bool {
	return score >= PassScore
}
