// Package course shows one course with its lessons and progress.
package course

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/upskill/internal/learning"
	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/ui/components"
	"github.com/abhisek/upskill/internal/ui/layout"
	"github.com/abhisek/upskill/internal/ui/theme"
)

type CourseScreen struct {
	deps       screens.Deps
	courseID   string
	course     *store.Course
	enrollment *store.Enrollment
	lessons    []store.Lesson // flattened, in module order
	cursor     int
	status     string
	errMsg     string
}

var _ screen.Screen = (*CourseScreen)(nil)
var _ screen.KeyHintProvider = (*CourseScreen)(nil)

func New(deps screens.Deps, courseID string) *CourseScreen {
	s := &CourseScreen{deps: deps, courseID: courseID}
	s.load()
	return s
}

func (s *CourseScreen) load() {
	ctx := s.deps.Ctx()
	c, err := s.deps.Store.CourseRepo().ByID(ctx, s.courseID)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	if c == nil {
		s.errMsg = "Course not found."
		return
	}
	s.course = c
	s.lessons = s.lessons[:0]
	for _, m := range c.Modules {
		s.lessons = append(s.lessons, m.Lessons...)
	}

	ec, err := s.deps.Learning.Enrollment(ctx, s.deps.User.ID, s.courseID)
	switch {
	case errors.Is(err, learning.ErrNotEnrolled):
		s.enrollment = nil
	case err != nil:
		s.errMsg = err.Error()
	default:
		s.enrollment = &ec.Enrollment
	}
}

func (s *CourseScreen) Init() tea.Cmd { return nil }

func (s *CourseScreen) Title() string {
	if s.course == nil {
		return "Course"
	}
	return s.course.Title
}

func (s *CourseScreen) KeyHints() []layout.KeyHint {
	if s.enrollment == nil {
		return []layout.KeyHint{{Key: "E", Description: "Enroll"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Complete lesson"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CourseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.course == nil {
		return s, nil
	}
	ctx := s.deps.Ctx()

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.lessons)-1 {
			s.cursor++
		}
	case "e":
		if s.enrollment != nil {
			return s, nil
		}
		if _, err := s.deps.Learning.Enroll(ctx, s.deps.User.ID, s.courseID); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.status = "Enrolled in " + s.course.Title + "."
		s.load()
	case "enter", "c":
		if s.enrollment == nil || s.cursor >= len(s.lessons) {
			return s, nil
		}
		l := s.lessons[s.cursor]
		e, err := s.deps.Learning.CompleteLesson(ctx, s.deps.User.ID, s.courseID, l.ID)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.status = fmt.Sprintf("Completed %q. Course progress %d%%.", l.Title, e.Progress)
		s.load()
	}
	return s, nil
}

func (s *CourseScreen) done(lessonID string) bool {
	if s.enrollment == nil {
		return false
	}
	for _, id := range s.enrollment.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

func (s *CourseScreen) View(width, height int) string {
	if s.errMsg != "" && s.course == nil {
		return "\n  " + theme.Incorrect.Render(s.errMsg)
	}
	c := s.course
	var b strings.Builder

	b.WriteString("  " + theme.Title.Render(c.Title) + "\n")
	b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("%s · %s · %s · %.0fh", c.Instructor, c.Category,
		c.Level, c.DurationHours)) + "\n\n")
	b.WriteString("  " + theme.Body.Render(c.Description) + "\n\n")

	if s.enrollment != nil {
		bar := components.NewProgressBar("Progress", s.enrollment.Progress, true, min(width-4, 60))
		b.WriteString("  " + bar.View() + "\n\n")
	} else {
		b.WriteString("  " + theme.Warning.Render("Not enrolled. Press E to enroll.") + "\n\n")
	}

	i := 0
	for _, m := range c.Modules {
		b.WriteString("  " + theme.Label.Render(m.Title) + "\n")
		for _, l := range m.Lessons {
			check := "○"
			if s.done(l.ID) {
				check = theme.Correct.Render("✓")
			}
			line := fmt.Sprintf("%s %s  %s", check, l.Title, theme.Hint.Render(fmt.Sprintf("%s · %dm", l.Kind, l.DurationMins)))
			if i == s.cursor {
				b.WriteString("  ▸ " + theme.Selected.Render(line) + "\n")
			} else {
				b.WriteString("    " + line + "\n")
			}
			i++
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(s.errMsg) + "\n")
	} else if s.status != "" {
		b.WriteString("\n  " + theme.Correct.Render(s.status) + "\n")
	}
	return b.String()
}
