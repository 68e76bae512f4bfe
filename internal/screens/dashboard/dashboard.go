// Package dashboard shows the learner's progress at a glance.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/upskill/internal/dashboard"
	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/ui/components"
	"github.com/abhisek/upskill/internal/ui/layout"
	"github.com/abhisek/upskill/internal/ui/theme"
)

type DashboardScreen struct {
	deps    screens.Deps
	summary *dashboard.Summary
	errMsg  string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

func New(deps screens.Deps) *DashboardScreen {
	d := &DashboardScreen{deps: deps}
	d.load()
	return d
}

func (d *DashboardScreen) load() {
	sum, err := d.deps.Dashboard.Summary(d.deps.Ctx(), d.deps.User.ID)
	if err != nil {
		d.errMsg = err.Error()
		return
	}
	d.summary = sum
	d.errMsg = ""
}

func (d *DashboardScreen) Init() tea.Cmd { return nil }

func (d *DashboardScreen) Title() string { return "Dashboard" }

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "R", Description: "Refresh"}, {Key: "Esc", Description: "Back"}}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "r" {
		d.load()
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	if d.errMsg != "" {
		return "\n  " + theme.Incorrect.Render(d.errMsg)
	}
	s := d.summary
	if s == nil {
		return ""
	}

	barWidth := width/2 - 10
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	b.WriteString("\n")
	stat := func(label, value string) string {
		return theme.Label.Render(label) + " " + theme.Body.Render(value)
	}
	b.WriteString("  " + strings.Join([]string{
		stat("Enrolled", fmt.Sprint(s.EnrolledCourses)),
		stat("Completed", fmt.Sprint(s.CompletedCourses)),
		stat("Avg progress", fmt.Sprintf("%d%%", s.AverageProgress)),
	}, "   ") + "\n")
	b.WriteString("  " + strings.Join([]string{
		stat("Assessments", fmt.Sprintf("%d taken, %d passed", s.AssessmentsTaken, s.AssessmentsPassed)),
		stat("Avg score", fmt.Sprintf("%d%%", s.AverageScore)),
		stat("Unread", fmt.Sprint(s.UnreadEmails)),
	}, "   ") + "\n\n")

	b.WriteString("  " + theme.Title.Render("Courses") + "\n")
	if len(s.Courses) == 0 {
		b.WriteString("  " + theme.Hint.Render("Not enrolled in any course yet.") + "\n")
	}
	for _, ec := range s.Courses {
		bar := components.NewProgressBar("", ec.Enrollment.Progress, true, barWidth)
		fmt.Fprintf(&b, "  %-32s %s\n", truncate(ec.Course.Title, 32), bar.View())
	}

	b.WriteString("\n  " + theme.Title.Render("Certificates") + "\n")
	if len(s.Certificates) == 0 {
		b.WriteString("  " + theme.Hint.Render("Pass an assessment to earn one.") + "\n")
	}
	for _, c := range s.Certificates {
		fmt.Fprintf(&b, "  %s %s  %s\n", theme.Correct.Render("★"), c.Badge, theme.Hint.Render(c.ID))
	}

	b.WriteString("\n  " + theme.Title.Render("Recent activity") + "\n")
	if len(s.RecentActivity) == 0 {
		b.WriteString("  " + theme.Hint.Render("Nothing yet.") + "\n")
	}
	for _, a := range s.RecentActivity {
		fmt.Fprintf(&b, "  %s  %s\n", theme.Hint.Render(a.CreatedAt.Local().Format("Jan 2 15:04")), a.Title)
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
