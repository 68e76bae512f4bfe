// Package inbox lists notification emails and opens them.
package inbox

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/ui/layout"
	"github.com/abhisek/upskill/internal/ui/theme"
)

type InboxScreen struct {
	deps   screens.Deps
	emails []store.Email
	cursor int
	open   *store.Email
	errMsg string
}

var _ screen.Screen = (*InboxScreen)(nil)
var _ screen.KeyHintProvider = (*InboxScreen)(nil)

func New(deps screens.Deps) *InboxScreen {
	s := &InboxScreen{deps: deps}
	s.load()
	return s
}

func (s *InboxScreen) load() {
	emails, err := s.deps.Notify.Inbox(s.deps.Ctx(), s.deps.User.ID)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.emails = emails
	if s.cursor >= len(emails) {
		s.cursor = 0
	}
}

func (s *InboxScreen) Init() tea.Cmd { return nil }

func (s *InboxScreen) Title() string { return "Inbox" }

func (s *InboxScreen) KeyHints() []layout.KeyHint {
	if s.open != nil {
		return []layout.KeyHint{{Key: "Backspace", Description: "Inbox"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InboxScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if s.open != nil {
		if kmsg.String() == "backspace" || kmsg.String() == "enter" {
			s.open = nil
		}
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.emails)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(s.emails) {
			e := &s.emails[s.cursor]
			if !e.Read {
				if err := s.deps.Notify.MarkRead(s.deps.Ctx(), e.ID); err != nil {
					s.errMsg = err.Error()
				} else {
					e.Read = true
				}
			}
			s.open = e
		}
	}
	return s, nil
}

func (s *InboxScreen) View(width, height int) string {
	if s.open != nil {
		e := s.open
		var b strings.Builder
		b.WriteString(theme.Title.Render(e.Subject) + "\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("To %s · %s", e.To, e.SentAt.Local().Format("Jan 2, 2006 15:04"))) + "\n\n")
		b.WriteString(theme.Body.Render(e.Body))
		w := width - 8
		if w > 90 {
			w = 90
		}
		return "\n" + theme.Card.Width(w).Render(b.String())
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(s.emails) == 0 {
		b.WriteString("  " + theme.Hint.Render("No messages.") + "\n")
	}
	for i, e := range s.emails {
		marker := "  "
		if !e.Read {
			marker = theme.Selected.Render("● ")
		}
		subject := theme.Unselected.Render(e.Subject)
		prefix := "   "
		if i == s.cursor {
			prefix = " ▸ "
			subject = theme.Selected.Render(e.Subject)
		}
		fmt.Fprintf(&b, "%s%s%s  %s\n", prefix, marker, subject, theme.Hint.Render(e.SentAt.Local().Format("Jan 2 15:04")))
	}
	if s.errMsg != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(s.errMsg) + "\n")
	}
	return b.String()
}
