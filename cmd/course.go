package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplay/internal/course"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Browse and validate courses",
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all courses in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := course.NewCatalog(cfg.CoursesDir)
		if err != nil {
			return fmt.Errorf("load courses: %w", err)
		}

		all := cat.All()
		fmt.Printf("%-24s  %-36s  %6s  %9s  %s\n", "ID", "Title", "Topics", "Questions", "Length")
		fmt.Println(strings.Repeat("─", 90))
		for _, c := range all {
			title := c.Title
			if len(title) > 36 {
				title = title[:33] + "..."
			}
			fmt.Printf("%-24s  %-36s  %6d  %9d  %s\n",
				c.ID, title, len(c.Topics), len(c.Questions), course.FormatOffset(c.Duration()))
		}
		fmt.Printf("\n%d courses\n", len(all))
		return nil
	},
}

var courseShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a course's topics and exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := course.NewCatalog(cfg.CoursesDir)
		if err != nil {
			return fmt.Errorf("load courses: %w", err)
		}
		c, err := cat.Get(args[0])
		if err != nil {
			return fmt.Errorf("course %q: %w", args[0], err)
		}

		fmt.Printf("%s (%s)\n%s\n", c.Title, c.ID, c.Module)
		if c.Media.URL != "" {
			fmt.Printf("Video: %s\n", c.Media.URL)
		}
		fmt.Println()
		for _, t := range c.Topics {
			lock := ""
			if t.Locked {
				lock = "  [locked]"
			}
			fmt.Printf("  %-4s %-14s %s%s\n", t.ID, t.Window(), t.Title, lock)
		}
		fmt.Printf("\nExam: %d questions\n", len(c.Questions))
		for _, q := range c.Questions {
			fmt.Printf("  %s. %s\n", q.ID, q.Prompt)
		}
		return nil
	},
}

var courseValidateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check course files against the course schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			c, err := course.LoadFile(path)
			if err != nil {
				failed++
				fmt.Printf("FAIL  %v\n", err)
				continue
			}
			fmt.Printf("ok    %s (%s, %d topics, %d questions)\n", path, c.ID, len(c.Topics), len(c.Questions))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d course files invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseShowCmd)
	courseCmd.AddCommand(courseValidateCmd)
}
