package player

import (
	"context"
	"fmt"
	"time"
)

// Op names a command.
type Op string

const (
	OpPosition     Op = "position"
	OpTick         Op = "tick"
	OpPlay         Op = "play"
	OpPause        Op = "pause"
	OpSelectTopic  Op = "select_topic"
	OpEditNotes    Op = "edit_notes"
	OpOpenExam     Op = "open_exam"
	OpSelectAnswer Op = "select_answer"
	OpSubmitExam   Op = "submit_exam"
	OpRetryExam    Op = "retry_exam"
	OpCloseExam    Op = "close_exam"
	OpUnlockTopic  Op = "unlock_topic"
	OpLockTopic    Op = "lock_topic"
)

// Command is one input to a session in data form, as read from a script.
type Command struct {
	Op       Op      `yaml:"op" json:"op"`
	Position float64 `yaml:"position,omitempty" json:"position,omitempty"` // position
	Seconds  float64 `yaml:"seconds,omitempty" json:"seconds,omitempty"`   // tick
	Topic    string  `yaml:"topic,omitempty" json:"topic,omitempty"`       // select/unlock/lock
	Text     string  `yaml:"text,omitempty" json:"text,omitempty"`         // edit_notes
	Question string  `yaml:"question,omitempty" json:"question,omitempty"` // select_answer
	Option   int     `yaml:"option,omitempty" json:"option,omitempty"`     // select_answer
}

// String renders the command for logs and simulate output.
func (c Command) String() string {
	switch c.Op {
	case OpPosition:
		return fmt.Sprintf("%s %.2f", c.Op, c.Position)
	case OpTick:
		return fmt.Sprintf("%s %.2fs", c.Op, c.Seconds)
	case OpSelectTopic, OpUnlockTopic, OpLockTopic:
		return fmt.Sprintf("%s %s", c.Op, c.Topic)
	case OpEditNotes:
		return fmt.Sprintf("%s %q", c.Op, c.Text)
	case OpSelectAnswer:
		return fmt.Sprintf("%s %s=%d", c.Op, c.Question, c.Option)
	default:
		return string(c.Op)
	}
}

// Apply dispatches cmd to the matching session method. Only an unknown op
// is an error; rejected commands come back as a Result.
func (s *Session) Apply(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Op {
	case OpPosition:
		return s.Position(ctx, cmd.Position), nil
	case OpTick:
		return s.Tick(ctx, time.Duration(cmd.Seconds*float64(time.Second))), nil
	case OpPlay:
		return s.Play(ctx), nil
	case OpPause:
		return s.Pause(ctx), nil
	case OpSelectTopic:
		return s.SelectTopic(ctx, cmd.Topic), nil
	case OpEditNotes:
		return s.EditNotes(ctx, cmd.Text), nil
	case OpOpenExam:
		return s.OpenExam(ctx), nil
	case OpSelectAnswer:
		return s.SelectAnswer(ctx, cmd.Question, cmd.Option), nil
	case OpSubmitExam:
		return s.SubmitExam(ctx), nil
	case OpRetryExam:
		return s.RetryExam(ctx), nil
	case OpCloseExam:
		return s.CloseExam(ctx), nil
	case OpUnlockTopic:
		return s.UnlockTopic(ctx, cmd.Topic), nil
	case OpLockTopic:
		return s.LockTopic(ctx, cmd.Topic), nil
	default:
		return Result{}, fmt.Errorf("unknown command %q", cmd.Op)
	}
}
