package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a process-local KV and EventRepo. Nothing survives a
// restart; it backs the "memory" backend and tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	events []ProgressEvent
	seq    int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Put implements KV.
func (m *MemoryStore) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// EventRepo returns the store itself.
func (m *MemoryStore) EventRepo() EventRepo {
	return m
}

func (m *MemoryStore) AppendTopicCompleted(_ context.Context, data TopicCompletedEventData) error {
	m.append(ProgressEvent{CourseID: data.CourseID, Kind: KindTopicCompleted, TopicID: data.TopicID, Position: data.Position})
	return nil
}

func (m *MemoryStore) AppendExamSubmitted(_ context.Context, data ExamSubmittedEventData) error {
	m.append(ProgressEvent{
		CourseID:  data.CourseID,
		Kind:      KindExamSubmitted,
		AttemptID: data.AttemptID,
		Score:     data.Score,
		Passed:    data.Passed,
	})
	return nil
}

func (m *MemoryStore) append(e ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e.Sequence = m.seq
	e.Timestamp = time.Now().UTC()
	m.events = append(m.events, e)
}

func (m *MemoryStore) RecentEvents(_ context.Context, courseID string, limit int) ([]ProgressEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ProgressEvent
	for _, e := range m.events {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence > out[j].Sequence })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
