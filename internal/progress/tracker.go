// Package progress turns playback position samples into topic completion.
package progress

import (
	"context"
	"fmt"
	"math"

	"github.com/abhisek/lessonplay/internal/config"
	"github.com/abhisek/lessonplay/internal/course"
	"github.com/abhisek/lessonplay/internal/logger"
)

// Persister stores a course's full completion map. Every call replaces the
// previous map.
type Persister interface {
	SaveCompletion(ctx context.Context, courseID string, completed map[string]bool) error
}

// Options configures a Tracker.
type Options struct {
	// Policy is config.PolicyActiveOnly (default) or config.PolicyAllCrossed.
	Policy    string
	Persister Persister
	Log       *logger.Logger
}

// Outcome describes what a single sample changed.
type Outcome struct {
	// Completed lists topics that became completed, in timeline order.
	Completed []string

	// PersistErr is set when the new completion map could not be saved.
	// In-memory state is still updated.
	PersistErr error
}

// Changed reports whether any topic was completed.
func (o Outcome) Changed() bool {
	return len(o.Completed) > 0
}

// Tracker owns the Completed flag of every topic on a timeline.
type Tracker struct {
	timeline *course.Timeline
	policy   string
	persist  Persister
	log      *logger.Logger
}

// New creates a tracker over tl.
func New(tl *course.Timeline, opts Options) *Tracker {
	if opts.Policy == "" {
		opts.Policy = config.PolicyActiveOnly
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	return &Tracker{
		timeline: tl,
		policy:   opts.Policy,
		persist:  opts.Persister,
		log:      opts.Log,
	}
}

// Policy returns the completion policy in effect.
func (t *Tracker) Policy() string {
	return t.policy
}

// Hydrate applies a stored completion map. Topics missing from the map, and
// entries for unknown topics, are ignored. Nothing is persisted.
func (t *Tracker) Hydrate(completed map[string]bool) {
	topics := t.timeline.Topics()
	for i := range topics {
		if completed[topics[i].ID] {
			topics[i].Completed = true
		}
	}
}

// Observe evaluates a position sample. Under the active-only policy only the
// active topic can complete; all-crossed also completes every unlocked topic
// whose threshold the sample has passed. Completion is never undone.
func (t *Tracker) Observe(ctx context.Context, position float64) Outcome {
	var out Outcome
	if math.IsNaN(position) {
		return out
	}

	active := t.timeline.ActiveTopic()
	topics := t.timeline.Topics()
	for i := range topics {
		tp := &topics[i]
		if tp.Completed || !tp.Reached(position) {
			continue
		}
		switch {
		case tp == active:
		case t.policy == config.PolicyAllCrossed && !tp.Locked:
		default:
			continue
		}
		tp.Completed = true
		out.Completed = append(out.Completed, tp.ID)
	}

	return t.finish(ctx, out)
}

// Unlock clears the lock flag on a topic. It reports whether anything changed.
func (t *Tracker) Unlock(id string) (bool, error) {
	return t.setLocked(id, false)
}

// Lock sets the lock flag on a topic. It reports whether anything changed.
func (t *Tracker) Lock(id string) (bool, error) {
	return t.setLocked(id, true)
}

func (t *Tracker) setLocked(id string, locked bool) (bool, error) {
	tp, ok := t.timeline.Topic(id)
	if !ok {
		return false, fmt.Errorf("topic %q: %w", id, course.ErrNotFound)
	}
	if tp.Locked == locked {
		return false, nil
	}
	tp.Locked = locked
	return true, nil
}

// CompletionMap returns topic ID → completed for every topic.
func (t *Tracker) CompletionMap() map[string]bool {
	topics := t.timeline.Topics()
	m := make(map[string]bool, len(topics))
	for i := range topics {
		m[topics[i].ID] = topics[i].Completed
	}
	return m
}

func (t *Tracker) finish(ctx context.Context, out Outcome) Outcome {
	if !out.Changed() || t.persist == nil {
		return out
	}
	courseID := t.timeline.Course().ID
	if err := t.persist.SaveCompletion(ctx, courseID, t.CompletionMap()); err != nil {
		t.log.Warn("persist completion failed", "course", courseID, "error", err)
		out.PersistErr = err
	}
	return out
}
