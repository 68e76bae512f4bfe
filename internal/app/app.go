package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/upskill/internal/router"
	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/screens/home"
	"github.com/abhisek/upskill/internal/screens/welcome"
	"github.com/abhisek/upskill/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   screens.Deps
	router *router.Router
	width  int
	height int
	unread int
}

// newAppModel starts at home for a signed-in user, else at the welcome
// screen.
func newAppModel(deps screens.Deps) AppModel {
	var first screen.Screen
	if deps.User.ID == "" {
		first = welcome.New(deps)
	} else {
		first = home.New(deps)
	}
	m := AppModel{
		deps:   deps,
		router: router.New(first),
	}
	m.refreshUnread()
	return m
}

// refreshUnread reloads the header's unread count.
func (m *AppModel) refreshUnread() {
	if m.deps.Notify == nil || m.deps.User.ID == "" {
		return
	}
	n, err := m.deps.Notify.UnreadCount(m.deps.Ctx(), m.deps.User.ID)
	if err != nil {
		m.deps.Log.Warn("count unread", "error", err)
		return
	}
	m.unread = n
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screens.SignedInMsg:
		m.deps.User = msg.User
		m.deps.Log.Info("signed in", "user_id", msg.User.ID)
		cmd := m.router.Replace(home.New(m.deps))
		m.refreshUnread()
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if g, ok := m.router.Active().(screen.BackGuard); ok && !g.AllowBack() {
				return m, nil
			}
			if m.router.Depth() > 1 {
				return m, screens.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)

	switch msg.(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, tea.KeyMsg:
		m.refreshUnread()
	}
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.deps.User.Name, m.unread, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(footerHints, p.KeyHints()...)
		footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program for the signed-in user.
func Run(deps screens.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
