package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonplay/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{kvTable, eventsTable, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSQLKV_GetPut(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "k", "one"))
	require.NoError(t, s.Put(ctx, "k", "two"))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

// kvCases runs the same contract against every in-process backend.
func kvCases(t *testing.T) map[string]KV {
	return map[string]KV{
		"sqlite": openTestStore(t),
		"memory": NewMemoryStore(),
	}
}

func TestProgressStore_RoundTrip(t *testing.T) {
	for name, kv := range kvCases(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ps := NewProgressStore(kv, nil)

			want := map[string]bool{"t1": true, "t2": false}
			require.NoError(t, ps.SaveCompletion(ctx, "c1", want))
			assert.Equal(t, want, ps.LoadCompletion(ctx, "c1"))

			require.NoError(t, ps.SaveNotes(ctx, "c1", "remember decorators"))
			assert.Equal(t, "remember decorators", ps.LoadNotes(ctx, "c1"))

			// Other courses are independent.
			assert.Empty(t, ps.LoadCompletion(ctx, "c2"))
			assert.Equal(t, "", ps.LoadNotes(ctx, "c2"))
		})
	}
}

func TestProgressStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	ps := NewProgressStore(NewMemoryStore(), nil)

	require.NoError(t, ps.SaveCompletion(ctx, "c1", map[string]bool{"t1": true, "t2": true}))
	require.NoError(t, ps.SaveCompletion(ctx, "c1", map[string]bool{"t1": true}))

	assert.Equal(t, map[string]bool{"t1": true}, ps.LoadCompletion(ctx, "c1"))
}

func TestProgressStore_Keys(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	ps := NewProgressStore(m, nil)

	require.NoError(t, ps.SaveCompletion(ctx, "advanced-python", map[string]bool{"t1": true}))
	require.NoError(t, ps.SaveNotes(ctx, "advanced-python", "n"))

	raw, ok, _ := m.Get(ctx, "courseProgress:advanced-python")
	require.True(t, ok)
	assert.JSONEq(t, `{"t1":true}`, raw)

	raw, ok, _ = m.Get(ctx, "courseNotes:advanced-python")
	require.True(t, ok)
	assert.Equal(t, "n", raw)
}

func TestProgressStore_MalformedLoadsEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "{not json"},
		{"array", `[true, false]`},
		{"wrong value type", `{"t1": "yes"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			m := NewMemoryStore()
			require.NoError(t, m.Put(ctx, ProgressKey("c1"), tt.raw))

			got := NewProgressStore(m, nil).LoadCompletion(ctx, "c1")
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingKV) Put(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestProgressStore_ReadFailureYieldsDefaults(t *testing.T) {
	ctx := context.Background()
	ps := NewProgressStore(failingKV{}, nil)

	assert.Empty(t, ps.LoadCompletion(ctx, "c1"))
	assert.Equal(t, "", ps.LoadNotes(ctx, "c1"))
	assert.Error(t, ps.SaveCompletion(ctx, "c1", map[string]bool{"t1": true}))
	assert.Error(t, ps.SaveNotes(ctx, "c1", "x"))
}

func TestEventRepo_Recent(t *testing.T) {
	repos := map[string]EventRepo{
		"sqlite": openTestStore(t).EventRepo(),
		"memory": NewMemoryStore().EventRepo(),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, repo.AppendTopicCompleted(ctx, TopicCompletedEventData{CourseID: "c1", TopicID: "t1", Position: 27.1}))
			require.NoError(t, repo.AppendTopicCompleted(ctx, TopicCompletedEventData{CourseID: "c2", TopicID: "x", Position: 1}))
			require.NoError(t, repo.AppendExamSubmitted(ctx, ExamSubmittedEventData{CourseID: "c1", AttemptID: "a1", Score: 50, Passed: false}))

			events, err := repo.RecentEvents(ctx, "c1", 0)
			require.NoError(t, err)
			require.Len(t, events, 2)

			// Newest first.
			assert.Equal(t, KindExamSubmitted, events[0].Kind)
			assert.Equal(t, "a1", events[0].AttemptID)
			assert.Equal(t, 50, events[0].Score)
			assert.False(t, events[0].Passed)

			assert.Equal(t, KindTopicCompleted, events[1].Kind)
			assert.Equal(t, "t1", events[1].TopicID)
			assert.InDelta(t, 27.1, events[1].Position, 1e-9)
			assert.Less(t, events[1].Sequence, events[0].Sequence)

			limited, err := repo.RecentEvents(ctx, "c1", 1)
			require.NoError(t, err)
			require.Len(t, limited, 1)
			assert.Equal(t, KindExamSubmitted, limited[0].Kind)
		})
	}
}

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid-redis", "redis://localhost:6379", false},
		{"valid-with-db", "redis://localhost:6379/0", false},
		{"bad-scheme", "http://localhost:6379", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRedisURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRedisURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpenRedis_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	_, err := OpenRedis(t.Context(), "redis://localhost:59999")
	if err == nil {
		t.Fatal("OpenRedis() should return error for unreachable host")
	}
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	b, err := OpenBackend(ctx, config.StoreConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, b.Name)
	assert.NoError(t, b.Close())

	b, err = OpenBackend(ctx, config.StoreConfig{
		Backend:    config.BackendSQLite,
		SQLitePath: t.TempDir() + "/nested/lp.db",
	})
	require.NoError(t, err)
	require.NoError(t, b.KV.Put(ctx, "k", "v"))
	assert.NoError(t, b.Close())

	_, err = OpenBackend(ctx, config.StoreConfig{Backend: "mongo"})
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}
