// Package gate derives topic selectability, overall progress and exam
// eligibility from course state. Everything here is a pure function of the
// topics passed in.
package gate

import (
	"math"

	"github.com/abhisek/lessonplay/internal/course"
)

// Rejection messages shown when the gate denies an action.
const (
	MsgTopicLocked = "This topic is locked. Complete previous topics first."
	MsgExamLocked  = "Complete all topics to unlock the exam."
)

// TopicStatus is the visual state of a topic in the topic list.
type TopicStatus string

const (
	StatusLocked     TopicStatus = "locked"
	StatusCompleted  TopicStatus = "completed"
	StatusInProgress TopicStatus = "in-progress"
)

// Decision is the gate's answer to a request.
type Decision struct {
	Allowed bool
	Reason  string // set when Allowed is false
}

// CanSelect reports whether a topic may become the active topic.
// Completed topics stay selectable for review.
func CanSelect(t *course.Topic) bool {
	return !t.Locked
}

// Authorize decides a topic-select request.
func Authorize(t *course.Topic) Decision {
	if !CanSelect(t) {
		return Decision{Reason: MsgTopicLocked}
	}
	return Decision{Allowed: true}
}

// CompletedCount returns how many topics are completed.
func CompletedCount(topics []course.Topic) int {
	n := 0
	for i := range topics {
		if topics[i].Completed {
			n++
		}
	}
	return n
}

// OverallProgress returns the completed share of topics as a whole
// percentage in [0, 100]. A course with no topics reports 0.
func OverallProgress(topics []course.Topic) int {
	if len(topics) == 0 {
		return 0
	}
	pct := float64(CompletedCount(topics)) / float64(len(topics)) * 100
	return int(math.Round(pct))
}

// ExamUnlocked reports whether every topic is completed.
func ExamUnlocked(topics []course.Topic) bool {
	if len(topics) == 0 {
		return false
	}
	for i := range topics {
		if !topics[i].Completed {
			return false
		}
	}
	return true
}

// AuthorizeExam decides an exam-open request.
func AuthorizeExam(topics []course.Topic) Decision {
	if !ExamUnlocked(topics) {
		return Decision{Reason: MsgExamLocked}
	}
	return Decision{Allowed: true}
}

// Status returns the visual state of a topic. Locked wins over completed.
func Status(t *course.Topic) TopicStatus {
	switch {
	case t.Locked:
		return StatusLocked
	case t.Completed:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// ExamButtonLabel returns the label for the exam entry point.
func ExamButtonLabel(topics []course.Topic) string {
	if ExamUnlocked(topics) {
		return "Take Exam"
	}
	return "Complete All Topics to Unlock Exam"
}
