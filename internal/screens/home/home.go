package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/upskill/internal/dashboard"
	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/screens/assessments"
	"github.com/abhisek/upskill/internal/screens/catalog"
	dashscreen "github.com/abhisek/upskill/internal/screens/dashboard"
	"github.com/abhisek/upskill/internal/screens/inbox"
	"github.com/abhisek/upskill/internal/ui/components"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	deps    screens.Deps
	menu    components.Menu
	summary *dashboard.Summary
}

var _ screen.Screen = (*HomeScreen)(nil)

func New(deps screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Course Catalog", Detail: "browse and enroll", Action: func() tea.Cmd {
			return screens.Push(catalog.New(deps))
		}},
		{Label: "Skill Assessments", Detail: "earn certificates", Action: func() tea.Cmd {
			return screens.Push(assessments.New(deps))
		}},
		{Label: "Dashboard", Detail: "your progress", Action: func() tea.Cmd {
			return screens.Push(dashscreen.New(deps))
		}},
		{Label: "Inbox", Action: func() tea.Cmd {
			return screens.Push(inbox.New(deps))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	h.refresh()
	return h
}

func (h *HomeScreen) refresh() {
	if h.deps.Dashboard == nil {
		return
	}
	sum, err := h.deps.Dashboard.Summary(h.deps.Ctx(), h.deps.User.ID)
	if err != nil {
		h.deps.Log.Warn("load summary", "error", err)
		return
	}
	h.summary = sum
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Stats may have changed on screens above; refresh on any key.
	if _, ok := msg.(tea.KeyMsg); ok {
		h.refresh()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 90
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderGreeting(h.deps.User.Name, cw),
	}
	if stats := renderStatsBar(h.summary, cw); stats != "" {
		sections = append(sections, stats)
	}
	sections = append(sections, renderMenuBox(h.menu.View(), cw))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
