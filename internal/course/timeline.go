package course

import "fmt"

// Timeline holds a course's ordered topics and the active-topic pointer.
// Changing the active topic never touches Locked or Completed.
type Timeline struct {
	course *Course
	active int
}

// NewTimeline creates a timeline over c with the first topic active.
func NewTimeline(c *Course) *Timeline {
	return &Timeline{course: c}
}

// Course returns the underlying course.
func (tl *Timeline) Course() *Course {
	return tl.course
}

// Topics returns the ordered topics. The returned slice aliases the course,
// so callers can read state but should mutate only through the tracker.
func (tl *Timeline) Topics() []Topic {
	return tl.course.Topics
}

// ActiveTopic returns the active topic, or nil for a course with no topics.
func (tl *Timeline) ActiveTopic() *Topic {
	if len(tl.course.Topics) == 0 {
		return nil
	}
	return &tl.course.Topics[tl.active]
}

// SetActiveTopic moves the active pointer to the topic with the given ID.
func (tl *Timeline) SetActiveTopic(id string) error {
	i := tl.index(id)
	if i < 0 {
		return fmt.Errorf("topic %q: %w", id, ErrNotFound)
	}
	tl.active = i
	return nil
}

// Topic returns the topic with the given ID.
func (tl *Timeline) Topic(id string) (*Topic, bool) {
	i := tl.index(id)
	if i < 0 {
		return nil, false
	}
	return &tl.course.Topics[i], true
}

// TopicAt returns the topic whose window contains position.
func (tl *Timeline) TopicAt(position float64) (*Topic, bool) {
	for i := range tl.course.Topics {
		if tl.course.Topics[i].Contains(position) {
			return &tl.course.Topics[i], true
		}
	}
	return nil, false
}

func (tl *Timeline) index(id string) int {
	for i := range tl.course.Topics {
		if tl.course.Topics[i].ID == id {
			return i
		}
	}
	return -1
}
