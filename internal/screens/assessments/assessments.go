// Package assessments lists the skill assessments and their status.
package assessments

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/upskill/internal/assessment"
	"github.com/abhisek/upskill/internal/catalog"
	"github.com/abhisek/upskill/internal/questions"
	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/screens"
	assessscreen "github.com/abhisek/upskill/internal/screens/assessment"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/ui/layout"
	"github.com/abhisek/upskill/internal/ui/theme"
)

type ListScreen struct {
	deps   screens.Deps
	items  []catalog.Assessment
	best   map[string]store.AssessmentResult // best result per assessment
	cursor int
	info   string
	errMsg string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

func New(deps screens.Deps) *ListScreen {
	s := &ListScreen{deps: deps, items: catalog.Assessments()}
	s.load()
	return s
}

func (s *ListScreen) load() {
	results, err := s.deps.Store.ResultRepo().ByUser(s.deps.Ctx(), s.deps.User.ID)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.best = map[string]store.AssessmentResult{}
	for _, r := range results {
		if b, ok := s.best[r.AssessmentID]; !ok || r.Score > b.Score {
			s.best[r.AssessmentID] = r
		}
	}
}

func (s *ListScreen) Init() tea.Cmd { return nil }

func (s *ListScreen) Title() string { return "Skill Assessments" }

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Take"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
	case "r":
		s.info = ""
		s.load()
	case "enter":
		return s.open()
	}
	return s, nil
}

// open starts the selected assessment, or stays on the list with a note
// when it was already passed.
func (s *ListScreen) open() (screen.Screen, tea.Cmd) {
	if s.cursor >= len(s.items) {
		return s, nil
	}
	a := s.items[s.cursor]
	attempt, err := s.deps.Flow.Begin(s.deps.Ctx(), s.deps.User.ID, a.ID)
	switch {
	case errors.Is(err, assessment.ErrAlreadyPassed):
		s.info = fmt.Sprintf("You have already passed %s. See your certificate on the dashboard.", a.Title)
		return s, nil
	case err != nil:
		s.errMsg = err.Error()
		return s, nil
	}
	s.info = ""
	return s, screens.Push(assessscreen.New(s.deps, attempt))
}

func (s *ListScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	for i, a := range s.items {
		prefix := "    "
		title := theme.Unselected.Render(a.Title)
		if i == s.cursor {
			prefix = "  ▸ "
			title = theme.Selected.Render(a.Title)
		}
		status := ""
		if r, ok := s.best[a.ID]; ok {
			if r.Passed() {
				status = theme.Correct.Render(fmt.Sprintf("  ✓ passed %d%%", r.Score))
			} else {
				status = theme.Warning.Render(fmt.Sprintf("  best %d%%", r.Score))
			}
		}
		diff := questions.MapDifficulty(a.Level)
		meta := fmt.Sprintf("%s · %s · %d questions · %d min · pass %d%%", a.Category,
			theme.LevelStyle(string(diff)).Render(string(a.Level)), a.QuestionCount, a.DurationMins, a.PassingScore)
		b.WriteString(prefix + title + status + "\n")
		b.WriteString("      " + theme.Hint.Render(meta) + "\n")
	}
	if s.info != "" {
		b.WriteString("\n  " + theme.Warning.Render(s.info) + "\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(s.errMsg) + "\n")
	}
	return b.String()
}
