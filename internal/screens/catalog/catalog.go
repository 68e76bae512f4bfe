// Package catalog is the filterable course list.
package catalog

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/screens/course"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/ui/components"
	"github.com/abhisek/upskill/internal/ui/layout"
	"github.com/abhisek/upskill/internal/ui/theme"
)

type CatalogScreen struct {
	deps     screens.Deps
	courses  []store.Course
	progress map[string]int // course ID → progress, enrolled only
	filter   components.TextInput
	visible  []store.Course
	cursor   int
	errMsg   string
}

var _ screen.Screen = (*CatalogScreen)(nil)
var _ screen.KeyHintProvider = (*CatalogScreen)(nil)

func New(deps screens.Deps) *CatalogScreen {
	c := &CatalogScreen{
		deps:     deps,
		progress: map[string]int{},
		filter:   components.NewTextInput("Filter:", "title, category or tag", 40),
	}
	c.load()
	return c
}

func (c *CatalogScreen) load() {
	ctx := c.deps.Ctx()
	courses, err := c.deps.Store.CourseRepo().All(ctx)
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	c.courses = courses
	c.loadProgress()
	c.applyFilter()
}

// loadProgress refreshes enrollment badges; the course screen changes them.
func (c *CatalogScreen) loadProgress() {
	enrolled, err := c.deps.Learning.Enrollments(c.deps.Ctx(), c.deps.User.ID)
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	for _, ec := range enrolled {
		c.progress[ec.Course.ID] = ec.Enrollment.Progress
	}
}

// Matches reports whether q appears in the course title, category or tags.
func Matches(c store.Course, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.Category), q) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func (c *CatalogScreen) applyFilter() {
	c.visible = c.visible[:0]
	for _, course := range c.courses {
		if Matches(course, c.filter.Value()) {
			c.visible = append(c.visible, course)
		}
	}
	if c.cursor >= len(c.visible) {
		c.cursor = max(len(c.visible)-1, 0)
	}
}

func (c *CatalogScreen) Init() tea.Cmd {
	return c.filter.Init()
}

func (c *CatalogScreen) Title() string {
	return "Course Catalog"
}

func (c *CatalogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CatalogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		c.loadProgress()
		switch kmsg.String() {
		case "up":
			if c.cursor > 0 {
				c.cursor--
			}
			return c, nil
		case "down":
			if c.cursor < len(c.visible)-1 {
				c.cursor++
			}
			return c, nil
		case "enter":
			if c.cursor < len(c.visible) {
				return c, screens.Push(course.New(c.deps, c.visible[c.cursor].ID))
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.filter, cmd = c.filter.Update(msg)
	c.applyFilter()
	return c, cmd
}

func (c *CatalogScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("  " + c.filter.View() + "\n\n")

	if c.errMsg != "" {
		b.WriteString("  " + theme.Incorrect.Render(c.errMsg) + "\n")
		return b.String()
	}
	if len(c.visible) == 0 {
		b.WriteString("  " + theme.Hint.Render("No courses match.") + "\n")
		return b.String()
	}

	for i, course := range c.visible {
		prefix := "    "
		title := theme.Unselected.Render(course.Title)
		if i == c.cursor {
			prefix = "  ▸ "
			title = theme.Selected.Render(course.Title)
		}
		meta := fmt.Sprintf("%s · %s · %d lessons · %.1f★",
			course.Category, theme.LevelStyle(course.Level).Render(course.Level), course.TotalLessons, course.Rating)
		status := ""
		if p, ok := c.progress[course.ID]; ok {
			status = lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("  enrolled %d%%", p))
		}
		b.WriteString(prefix + title + status + "\n")
		b.WriteString("      " + theme.Hint.Render(meta) + "\n")
	}
	return b.String()
}
