package course

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a course or topic ID is unknown.
var ErrNotFound = errors.New("not found")

// CompletionThreshold is the fraction of a topic's end offset that playback
// must reach before the topic counts as completed.
const CompletionThreshold = 0.9

// Media references the single video asset a course plays.
type Media struct {
	URL       string `json:"url" yaml:"url"`
	PosterURL string `json:"poster_url,omitempty" yaml:"poster_url,omitempty"`
}

// Topic is one segment of the course video.
type Topic struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Start       float64 `json:"start" yaml:"start"` // seconds
	End         float64 `json:"end" yaml:"end"`     // seconds, exclusive
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Locked      bool    `json:"locked,omitempty" yaml:"locked,omitempty"`
	Completed   bool    `json:"-" yaml:"-"`
}

// Threshold returns the playback position the topic must pass to complete.
func (t *Topic) Threshold() float64 {
	return t.End * CompletionThreshold
}

// Reached reports whether position is past the completion threshold.
// The threshold itself does not count: 27.0 on a 0:00-0:30 topic is not enough.
func (t *Topic) Reached(position float64) bool {
	return position > t.Threshold()
}

// Contains reports whether position falls inside the topic window.
func (t *Topic) Contains(position float64) bool {
	return position >= t.Start && position < t.End
}

// Window renders the topic time window, e.g. "0:30 - 1:00".
func (t *Topic) Window() string {
	return FormatOffset(t.Start) + " - " + FormatOffset(t.End)
}

// Question is a single multiple-choice exam question.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []string `json:"options" yaml:"options"`
	Correct int      `json:"correct" yaml:"correct"`
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.Correct
}

// Course is a video lesson split into topics, followed by an exam.
type Course struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Module    string     `json:"module" yaml:"module"`
	Media     Media      `json:"media" yaml:"media"`
	Topics    []Topic    `json:"topics" yaml:"topics"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Duration returns the end offset of the last topic.
func (c *Course) Duration() float64 {
	if len(c.Topics) == 0 {
		return 0
	}
	return c.Topics[len(c.Topics)-1].End
}

// Question returns the question with the given ID.
func (c *Course) Question(id string) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Clone returns a deep copy so a session can mutate topics without touching
// catalog data.
func (c *Course) Clone() *Course {
	out := *c
	out.Topics = make([]Topic, len(c.Topics))
	copy(out.Topics, c.Topics)
	out.Questions = make([]Question, len(c.Questions))
	for i, q := range c.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	return &out
}

// FormatOffset renders seconds as m:ss.
func FormatOffset(seconds float64) string {
	s := int(seconds)
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
