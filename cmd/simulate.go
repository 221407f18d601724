package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplay/internal/player"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate SCRIPT",
	Short: "Replay a YAML command script without the full-screen player",
	Long: `Replay a YAML command script against a course and print every notice.

Progress is read from and written to the configured backend. Use
--backend memory for a dry run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := player.LoadScript(args[0])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		courseID, _ := cmd.Flags().GetString("course")
		if courseID == "" {
			courseID = script.Course
		}
		sess, err := loadSession(cmd.Context(), e, courseID)
		if err != nil {
			return err
		}

		steps, runErr := sess.Run(cmd.Context(), script.Commands)
		for _, st := range steps {
			mark := "ok"
			if st.Result.Rejected() {
				mark = "--"
			}
			fmt.Printf("%s  %s\n", mark, st.Command)
			for _, n := range st.Result.Notices {
				fmt.Printf("      [%s] %s\n", n.Kind, n.Message)
			}
		}
		if runErr != nil {
			return runErr
		}

		fmt.Println()
		printProgress(sess.View())
		return nil
	},
}

func init() {
	simulateCmd.Flags().String("course", "", "Course ID (overrides the script's course)")
}
