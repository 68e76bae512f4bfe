package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/upskill/internal/store"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Browse courses and track lesson progress",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			courses, err := e.store.CourseRepo().All(ctx)
			if err != nil {
				return fmt.Errorf("list courses: %w", err)
			}

			fmt.Printf("%-22s  %-40s  %-16s  %-12s  %7s\n", "ID", "Title", "Category", "Level", "Lessons")
			fmt.Println(strings.Repeat("─", 106))
			for _, c := range courses {
				if category != "" && !strings.EqualFold(c.Category, category) {
					continue
				}
				fmt.Printf("%-22s  %-40s  %-16s  %-12s  %7d\n",
					c.ID, truncate(c.Title, 40), truncate(c.Category, 16), c.Level, c.TotalLessons)
			}
			return nil
		})
	},
}

var coursesShowCmd = &cobra.Command{
	Use:   "show <course-id>",
	Short: "Show a course's modules, lessons and your progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			c, err := e.store.CourseRepo().ByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get course: %w", err)
			}
			if c == nil {
				return fmt.Errorf("course %q not found", args[0])
			}

			// Progress is shown when someone is signed in and enrolled.
			var done []string
			if u, err := e.currentUser(ctx); err == nil {
				if ec, err := e.learning.Enrollment(ctx, u.ID, c.ID); err == nil && ec != nil {
					done = ec.Enrollment.CompletedLessons
					fmt.Printf("Progress:    %d%%\n", ec.Enrollment.Progress)
				}
			}
			printCourse(c, done)
			return nil
		})
	},
}

func printCourse(c *store.Course, done []string) {
	fmt.Printf("Title:       %s\n", c.Title)
	fmt.Printf("Category:    %s · %s\n", c.Category, c.Level)
	fmt.Printf("Instructor:  %s\n", c.Instructor)
	fmt.Printf("Duration:    %.1f hours, %d lessons, rated %.1f\n", c.DurationHours, c.TotalLessons, c.Rating)
	if len(c.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", strings.Join(c.Tags, ", "))
	}
	fmt.Println()
	fmt.Println(c.Description)

	completed := map[string]bool{}
	for _, id := range done {
		completed[id] = true
	}
	for _, m := range c.Modules {
		fmt.Printf("\n%s  [%s]\n", m.Title, m.ID)
		for _, l := range m.Lessons {
			mark := " "
			if completed[l.ID] {
				mark = "✓"
			}
			fmt.Printf("  %s %-44s %-8s %3d min  [%s]\n", mark, truncate(l.Title, 44), l.Kind, l.DurationMins, l.ID)
		}
	}
}

var coursesEnrollCmd = &cobra.Command{
	Use:   "enroll <course-id>",
	Short: "Enroll in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			en, err := e.learning.Enroll(ctx, u.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Enrolled in %s (progress %d%%).\n", args[0], en.Progress)
			return nil
		})
	},
}

var coursesCompleteCmd = &cobra.Command{
	Use:   "complete-lesson <course-id> <lesson-id>",
	Short: "Mark a lesson as completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			en, err := e.learning.CompleteLesson(ctx, u.ID, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Progress: %d%% (%d lessons completed)\n", en.Progress, len(en.CompletedLessons))
			if en.CompletedAt != nil {
				fmt.Println("Course completed!")
			}
			return nil
		})
	},
}

var coursesAddModuleCmd = &cobra.Command{
	Use:   "add-module <course-id> <title>",
	Short: "Append a module to a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			c, err := e.learning.AddModule(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			m := c.Modules[len(c.Modules)-1]
			fmt.Printf("Added module %s (%s).\n", m.Title, m.ID)
			return nil
		})
	},
}

var coursesAddLessonCmd = &cobra.Command{
	Use:   "add-lesson <course-id> <module-id> <title>",
	Short: "Append a lesson to a module",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		mins, _ := cmd.Flags().GetInt("minutes")
		kind, _ := cmd.Flags().GetString("kind")

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			c, err := e.learning.AddLesson(ctx, args[0], args[1], store.Lesson{
				Title: args[2], DurationMins: mins, Kind: kind,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Course now has %d lessons.\n", c.TotalLessons)
			return nil
		})
	},
}

var coursesRemoveLessonCmd = &cobra.Command{
	Use:   "remove-lesson <course-id> <lesson-id>",
	Short: "Remove a lesson from a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			c, err := e.learning.RemoveLesson(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Course now has %d lessons.\n", c.TotalLessons)
			return nil
		})
	},
}

var coursesRemoveModuleCmd = &cobra.Command{
	Use:   "remove-module <course-id> <module-id>",
	Short: "Remove a module and its lessons",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			c, err := e.learning.RemoveModule(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Course now has %d modules, %d lessons.\n", len(c.Modules), c.TotalLessons)
			return nil
		})
	},
}

func init() {
	coursesListCmd.Flags().StringP("category", "c", "", "Only show courses in this category")
	coursesAddLessonCmd.Flags().Int("minutes", 10, "Lesson duration in minutes")
	coursesAddLessonCmd.Flags().String("kind", "reading", "Lesson kind: video, reading, quiz or lab")

	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesShowCmd)
	coursesCmd.AddCommand(coursesEnrollCmd)
	coursesCmd.AddCommand(coursesCompleteCmd)
	coursesCmd.AddCommand(coursesAddModuleCmd)
	coursesCmd.AddCommand(coursesAddLessonCmd)
	coursesCmd.AddCommand(coursesRemoveLessonCmd)
	coursesCmd.AddCommand(coursesRemoveModuleCmd)
}
