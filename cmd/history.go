package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplay/internal/screens/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent progress events for a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		courseID, _ := cmd.Flags().GetString("course")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", limit)
		}

		c, err := e.course(courseID)
		if err != nil {
			return fmt.Errorf("course %q: %w", courseID, err)
		}
		events, err := e.backend.Events.RecentEvents(cmd.Context(), c.ID, limit)
		if err != nil {
			return fmt.Errorf("read events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No progress events yet.")
			return nil
		}
		for _, ev := range events {
			fmt.Printf("%5d  %s  %s\n", ev.Sequence, ev.Timestamp.Local().Format("2006-01-02 15:04"), history.Describe(ev, c))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("course", "", "Course ID (default: first course in the catalog)")
	historyCmd.Flags().Int("limit", 20, "Maximum number of events to show")
}
