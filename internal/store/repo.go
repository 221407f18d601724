package store

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupportedBackend is returned for an unknown backend name.
var ErrUnsupportedBackend = errors.New("unsupported backend")

// KV is a durable string key/value store. Every Put overwrites the whole
// entry; there are no partial writes.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
}

// Event kinds recorded in the progress event log.
const (
	KindTopicCompleted = "topic_completed"
	KindExamSubmitted  = "exam_submitted"
)

// TopicCompletedEventData captures a topic reaching its completion threshold.
type TopicCompletedEventData struct {
	CourseID string
	TopicID  string
	Position float64
}

// ExamSubmittedEventData captures a scored exam attempt.
type ExamSubmittedEventData struct {
	CourseID  string
	AttemptID string
	Score     int
	Passed    bool
}

// ProgressEvent is one entry of the progress event log.
type ProgressEvent struct {
	Sequence  int64
	Timestamp time.Time
	CourseID  string
	Kind      string
	TopicID   string  // topic_completed only
	Position  float64 // topic_completed only
	AttemptID string  // exam_submitted only
	Score     int     // exam_submitted only
	Passed    bool    // exam_submitted only
}

// EventRepo provides append access to the progress event log. The log is
// history only and is never read back into progression state.
type EventRepo interface {
	// AppendTopicCompleted records a topic completion.
	AppendTopicCompleted(ctx context.Context, data TopicCompletedEventData) error

	// AppendExamSubmitted records a submitted exam attempt.
	AppendExamSubmitted(ctx context.Context, data ExamSubmittedEventData) error

	// RecentEvents returns up to limit events for a course, newest first.
	// limit <= 0 means unlimited.
	RecentEvents(ctx context.Context, courseID string, limit int) ([]ProgressEvent, error)
}
