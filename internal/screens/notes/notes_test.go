package notes

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonplay/internal/course"
	"github.com/abhisek/lessonplay/internal/player"
	"github.com/abhisek/lessonplay/internal/store"
)

func TestNotesScreen_SavesEveryChange(t *testing.T) {
	cat, err := course.NewCatalog("")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	ps := store.NewProgressStore(store.NewMemoryStore(), nil)
	sess, err := player.Load(context.Background(), cat.Default(), player.Deps{Store: ps})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := New(sess)
	s.Init()
	for _, r := range "hi" {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}

	if sess.Notes() != "hi" {
		t.Errorf("session notes = %q, want %q", sess.Notes(), "hi")
	}
	if got := ps.LoadNotes(context.Background(), course.SampleCourseID); got != "hi" {
		t.Errorf("stored notes = %q, want %q", got, "hi")
	}
	if !strings.Contains(s.View(100, 30), "My Notes") {
		t.Error("view should carry the notes title")
	}
}

func TestNotesScreen_Title(t *testing.T) {
	cat, _ := course.NewCatalog("")
	sess, err := player.Load(context.Background(), cat.Default(), player.Deps{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if New(sess).Title() != "Notes" {
		t.Error("unexpected title")
	}
}
