package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/lessonplay/internal/logger"
)

// ProgressKey is the KV key holding a course's completion map.
func ProgressKey(courseID string) string {
	return "courseProgress:" + courseID
}

// NotesKey is the KV key holding a course's notes.
func NotesKey(courseID string) string {
	return "courseNotes:" + courseID
}

// ProgressStore reads and writes per-course completion maps and notes.
// Loads never fail: absent or unreadable entries come back empty.
type ProgressStore struct {
	kv  KV
	log *logger.Logger
}

// NewProgressStore wraps kv. A nil log discards diagnostics.
func NewProgressStore(kv KV, log *logger.Logger) *ProgressStore {
	if log == nil {
		log = logger.Nop()
	}
	return &ProgressStore{kv: kv, log: log}
}

// LoadCompletion returns the stored topic-id → completed map for courseID.
func (p *ProgressStore) LoadCompletion(ctx context.Context, courseID string) map[string]bool {
	out := make(map[string]bool)
	raw, ok, err := p.kv.Get(ctx, ProgressKey(courseID))
	if err != nil {
		p.log.Debug("load completion failed", "course", courseID, "error", err)
		return out
	}
	if !ok || raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		p.log.Debug("discarding malformed completion map", "course", courseID, "error", err)
		return make(map[string]bool)
	}
	return out
}

// SaveCompletion overwrites the stored completion map for courseID.
func (p *ProgressStore) SaveCompletion(ctx context.Context, courseID string, completed map[string]bool) error {
	if completed == nil {
		completed = map[string]bool{}
	}
	b, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("marshal completion map: %w", err)
	}
	if err := p.kv.Put(ctx, ProgressKey(courseID), string(b)); err != nil {
		return fmt.Errorf("save completion: %w", err)
	}
	return nil
}

// LoadNotes returns the stored notes for courseID, or "".
func (p *ProgressStore) LoadNotes(ctx context.Context, courseID string) string {
	raw, _, err := p.kv.Get(ctx, NotesKey(courseID))
	if err != nil {
		p.log.Debug("load notes failed", "course", courseID, "error", err)
		return ""
	}
	return raw
}

// SaveNotes overwrites the stored notes for courseID.
func (p *ProgressStore) SaveNotes(ctx context.Context, courseID, notes string) error {
	if err := p.kv.Put(ctx, NotesKey(courseID), notes); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}
