package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/upskill/internal/store"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Summarise your learning progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			s, err := e.dashboard.Summary(ctx, u.ID)
			if err != nil {
				return err
			}

			fmt.Printf("%s · %s, %s\n\n", u.Name, u.Role, u.Department)
			fmt.Printf("Courses:      %d enrolled, %d completed, %d%% average progress\n",
				s.EnrolledCourses, s.CompletedCourses, s.AverageProgress)
			fmt.Printf("Assessments:  %d taken, %d passed, %d%% average score\n",
				s.AssessmentsTaken, s.AssessmentsPassed, s.AverageScore)
			fmt.Printf("Certificates: %d\n", len(s.Certificates))
			fmt.Printf("Unread mail:  %d\n", s.UnreadEmails)

			if len(s.Courses) > 0 {
				fmt.Println("\nIn progress")
				for _, ec := range s.Courses {
					fmt.Printf("  %3d%%  %s\n", ec.Enrollment.Progress, ec.Course.Title)
				}
			}
			if len(s.RecentActivity) > 0 {
				fmt.Println("\nRecent activity")
				for _, a := range s.RecentActivity {
					fmt.Printf("  %s  %s\n", a.CreatedAt.Local().Format("Jan 2 15:04"), a.Title)
				}
			}
			return nil
		})
	},
}
