package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Store.Backend)
	}
	if cfg.Progress.Policy != PolicyActiveOnly {
		t.Errorf("Policy = %q, want active-only", cfg.Progress.Policy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LESSONPLAY_BACKEND", "Redis")
	t.Setenv("LESSONPLAY_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("LESSONPLAY_DB", "/tmp/lp.db")
	t.Setenv("LESSONPLAY_COURSES_DIR", "/srv/courses")
	t.Setenv("LESSONPLAY_COMPLETION_POLICY", "all-crossed")
	t.Setenv("LESSONPLAY_LOG_MODE", "prod")
	t.Setenv("LESSONPLAY_LOG_FILE", "/tmp/lp.log")
	t.Setenv("LESSONPLAY_TICK", "1s")

	cfg := FromEnv()
	if cfg.Store.Backend != BackendRedis {
		t.Errorf("Backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Store.RedisURL != "redis://cache:6379/2" {
		t.Errorf("RedisURL = %q", cfg.Store.RedisURL)
	}
	if cfg.Store.SQLitePath != "/tmp/lp.db" {
		t.Errorf("SQLitePath = %q", cfg.Store.SQLitePath)
	}
	if cfg.CoursesDir != "/srv/courses" {
		t.Errorf("CoursesDir = %q", cfg.CoursesDir)
	}
	if cfg.Progress.Policy != PolicyAllCrossed {
		t.Errorf("Policy = %q", cfg.Progress.Policy)
	}
	if cfg.Log.Mode != "prod" || cfg.Log.File != "/tmp/lp.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Tick != time.Second {
		t.Errorf("Tick = %s, want 1s", cfg.Tick)
	}
}

func TestFromEnv_BadTickKeepsDefault(t *testing.T) {
	t.Setenv("LESSONPLAY_TICK", "soon")
	cfg := FromEnv()
	if cfg.Tick != DefaultConfig().Tick {
		t.Errorf("Tick = %s, want default", cfg.Tick)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"postgres", func(c *Config) { c.Store.Backend = BackendPostgres }, false},
		{"memory", func(c *Config) { c.Store.Backend = BackendMemory }, false},
		{"unknown backend", func(c *Config) { c.Store.Backend = "mongo" }, true},
		{"unknown policy", func(c *Config) { c.Progress.Policy = "sometimes" }, true},
		{"zero tick", func(c *Config) { c.Tick = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultDataDir_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	dir, err := DefaultDataDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg/data", "lessonplay"); dir != want {
		t.Errorf("DefaultDataDir() = %q, want %q", dir, want)
	}
}

func TestDefaultLogFile_XDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	path, err := DefaultLogFile()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg/state", "lessonplay", "lessonplay.log"); path != want {
		t.Errorf("DefaultLogFile() = %q, want %q", path, want)
	}
}
