package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplay/internal/player"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show per-topic progress for a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		courseID, _ := cmd.Flags().GetString("course")
		sess, err := loadSession(cmd.Context(), e, courseID)
		if err != nil {
			return err
		}
		printProgress(sess.View())
		return nil
	},
}

func init() {
	progressCmd.Flags().String("course", "", "Course ID (default: first course in the catalog)")
}

// loadSession opens a player session for courseID against e's backend.
func loadSession(ctx context.Context, e *env, courseID string) (*player.Session, error) {
	c, err := e.course(courseID)
	if err != nil {
		return nil, fmt.Errorf("course %q: %w", courseID, err)
	}
	return player.Load(ctx, c, player.Deps{
		Store:  e.progress,
		Events: e.backend.Events,
		Policy: e.cfg.Progress.Policy,
		Log:    e.log,
	})
}

func printProgress(v player.View) {
	fmt.Printf("%s (%s)\n", v.CourseTitle, v.CourseID)
	fmt.Printf("%-4s  %-14s  %-12s  %s\n", "ID", "Window", "Status", "Title")
	fmt.Println(strings.Repeat("─", 64))
	for _, t := range v.Topics {
		fmt.Printf("%-4s  %-14s  %-12s  %s\n", t.ID, t.Window, t.Status, t.Title)
	}
	fmt.Printf("\n%d of %d topics completed (%d%%)\n", v.Completed, len(v.Topics), v.Progress)
	fmt.Println(v.ExamLabel)
}
