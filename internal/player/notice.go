package player

import "github.com/abhisek/lessonplay/internal/exam"

// NoticeKind classifies a notice for presentation.
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a message for the learner produced by a command.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier receives every notice as it is produced.
type Notifier func(Notice)

// Result is what a command returns.
type Result struct {
	// Accepted is false when the command was rejected and nothing changed.
	Accepted bool

	Notices []Notice

	// Completed lists topics completed while the command ran.
	Completed []string

	// Exam is set by a successful submit.
	Exam *exam.Result
}

// Rejected reports whether the command was refused.
func (r Result) Rejected() bool {
	return !r.Accepted
}

func (r *Result) add(kind NoticeKind, msg string) {
	r.Notices = append(r.Notices, Notice{Kind: kind, Message: msg})
}
