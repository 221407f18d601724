package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Print or replace the notes for a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		courseID, _ := cmd.Flags().GetString("course")
		c, err := e.course(courseID)
		if err != nil {
			return fmt.Errorf("course %q: %w", courseID, err)
		}

		if cmd.Flags().Changed("set") {
			text, _ := cmd.Flags().GetString("set")
			if err := e.progress.SaveNotes(cmd.Context(), c.ID, text); err != nil {
				return fmt.Errorf("save notes: %w", err)
			}
			fmt.Printf("Notes saved for %s.\n", c.Title)
			return nil
		}

		notes := e.progress.LoadNotes(cmd.Context(), c.ID)
		if notes == "" {
			fmt.Println("(no notes)")
			return nil
		}
		fmt.Println(notes)
		return nil
	},
}

func init() {
	notesCmd.Flags().String("course", "", "Course ID (default: first course in the catalog)")
	notesCmd.Flags().String("set", "", "Replace the notes with this text")
}
