package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the full-screen player",
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, _ := cmd.Flags().GetString("course")
		return runApp(cmd, courseID)
	},
}

func init() {
	playCmd.Flags().String("course", "", "Open this course directly instead of the course list")
}
