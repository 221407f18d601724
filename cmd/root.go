package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplay/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "lessonplay",
	Short: "Video lesson player with progress tracking",
	Long:  "lessonplay plays a course video in the terminal, unlocks topics as you watch them and gates the course exam on completing every topic.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LESSONPLAY_DB env var)")
	rootCmd.PersistentFlags().String("backend", "", "Persistence backend: sqlite, postgres, redis or memory (overrides LESSONPLAY_BACKEND)")
	rootCmd.PersistentFlags().String("courses", "", "Directory of extra YAML/JSON course files (overrides LESSONPLAY_COURSES_DIR)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig builds the configuration from LESSONPLAY_* variables, with
// persistent flags taking priority.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.SQLitePath = p
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Store.Backend = strings.ToLower(b)
	}
	if d, _ := cmd.Flags().GetString("courses"); d != "" {
		cfg.CoursesDir = d
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
