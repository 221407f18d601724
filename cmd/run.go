package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplay/internal/app"
	"github.com/abhisek/lessonplay/internal/config"
	"github.com/abhisek/lessonplay/internal/course"
	"github.com/abhisek/lessonplay/internal/logger"
	"github.com/abhisek/lessonplay/internal/store"
)

// env is everything a command needs: configuration, logger, catalog and an
// opened persistence backend.
type env struct {
	cfg      config.Config
	log      *logger.Logger
	catalog  *course.Catalog
	backend  *store.Backend
	progress *store.ProgressStore
}

// openEnv resolves configuration and opens the backend. The full-screen
// player sets logToFile so log lines never land on the terminal it owns.
func openEnv(cmd *cobra.Command, logToFile bool) (*env, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	logPath := cfg.Log.File
	if logPath == "" && logToFile {
		if logPath, err = config.DefaultLogFile(); err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
	}
	log, err := logger.New(cfg.Log.Mode, logPath)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cat, err := course.NewCatalog(cfg.CoursesDir)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load courses: %w", err)
	}

	backend, err := store.OpenBackend(cmd.Context(), cfg.Store)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "backend", backend.Name)

	return &env{
		cfg:      cfg,
		log:      log,
		catalog:  cat,
		backend:  backend,
		progress: store.NewProgressStore(backend.KV, log),
	}, nil
}

func (e *env) Close() {
	if err := e.backend.Close(); err != nil {
		e.log.Warn("close store failed", "error", err)
	}
	e.log.Sync()
}

// course resolves id against the catalog; empty means the default course.
func (e *env) course(id string) (*course.Course, error) {
	if id == "" {
		return e.catalog.Default(), nil
	}
	return e.catalog.Get(id)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, courseID string) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Catalog:  e.catalog,
		Store:    e.progress,
		Events:   e.backend.Events,
		Policy:   e.cfg.Progress.Policy,
		Tick:     e.cfg.Tick,
		Log:      e.log,
		CourseID: courseID,
	})
}
