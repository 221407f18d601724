package history

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/lessonplay/internal/course"
	"github.com/abhisek/lessonplay/internal/store"
)

func sampleCourse(t *testing.T) *course.Course {
	t.Helper()
	cat, err := course.NewCatalog("")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat.Default()
}

func TestDescribe(t *testing.T) {
	c := sampleCourse(t)
	tests := []struct {
		name  string
		event store.ProgressEvent
		want  string
	}{
		{
			name:  "topic",
			event: store.ProgressEvent{Kind: store.KindTopicCompleted, TopicID: "1", Position: 27.5},
			want:  `Completed topic "Introduction to Python" at 0:27`,
		},
		{
			name:  "unknown topic falls back to id",
			event: store.ProgressEvent{Kind: store.KindTopicCompleted, TopicID: "zz", Position: 61},
			want:  `Completed topic "zz" at 1:01`,
		},
		{
			name:  "exam passed",
			event: store.ProgressEvent{Kind: store.KindExamSubmitted, Score: 100, Passed: true},
			want:  "Exam passed with 100%",
		},
		{
			name:  "exam failed",
			event: store.ProgressEvent{Kind: store.KindExamSubmitted, Score: 50},
			want:  "Exam failed with 50%",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.event, c); got != tt.want {
				t.Errorf("Describe = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHistoryScreen_LoadsEvents(t *testing.T) {
	c := sampleCourse(t)
	mem := store.NewMemoryStore()
	err := mem.AppendTopicCompleted(context.Background(), store.TopicCompletedEventData{
		CourseID: c.ID, TopicID: "1", Position: 28,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	s := New(mem.EventRepo(), c)
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading state before events arrive")
	}

	s.Update(s.Init()())
	view := s.View(120, 30)
	if !strings.Contains(view, "Introduction to Python") {
		t.Errorf("view missing event: %q", view)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(nil, sampleCourse(t))
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "Nothing yet") {
		t.Error("expected empty state")
	}
}
