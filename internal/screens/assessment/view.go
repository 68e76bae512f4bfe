package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	flow "github.com/abhisek/upskill/internal/assessment"
	"github.com/abhisek/upskill/internal/questions"
	"github.com/abhisek/upskill/internal/ui/components"
	"github.com/abhisek/upskill/internal/ui/theme"
)

func (s *AssessmentScreen) View(width, height int) string {
	switch s.attempt.Phase {
	case flow.PhaseNotStarted:
		return s.renderIntro(width)
	case flow.PhaseGenerating:
		return centered(width, "\n\n  Preparing your questions...")
	case flow.PhaseInProgress:
		return s.renderQuestion(width)
	case flow.PhaseResults:
		return s.renderResults(width)
	case flow.PhaseCertificate:
		return s.renderCertificate(width)
	case flow.PhaseFailed:
		msg := "Could not prepare questions."
		if s.attempt.Err != nil {
			msg += " " + s.attempt.Err.Error()
		}
		return centered(width, "\n\n"+theme.Incorrect.Render(msg)+"\n\n"+theme.Hint.Render("Press R to try again."))
	}
	return ""
}

func centered(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}

func (s *AssessmentScreen) renderIntro(width int) string {
	a := s.attempt.Assessment
	var b strings.Builder
	b.WriteString(theme.Title.Render(a.Title) + "\n\n")
	b.WriteString(theme.Body.Render(a.Description) + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Level:"), theme.LevelStyle(string(questions.MapDifficulty(a.Level))).Render(string(a.Level)))
	fmt.Fprintf(&b, "%s %d\n", theme.Label.Render("Questions:"), a.QuestionCount)
	fmt.Fprintf(&b, "%s %d minutes\n", theme.Label.Render("Time limit:"), a.DurationMins)
	fmt.Fprintf(&b, "%s %d%%\n", theme.Label.Render("Passing score:"), a.PassingScore)
	if len(a.Skills) > 0 {
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Skills:"), strings.Join(a.Skills, ", "))
	}
	b.WriteString("\n" + theme.Hint.Render("Press Enter to begin. The timer starts when the first question appears."))
	return "\n" + theme.Card.Width(cardWidth(width)).Render(b.String())
}

func cardWidth(width int) int {
	w := width - 8
	if w > 80 {
		w = 80
	}
	if w < 30 {
		w = 30
	}
	return w
}

func formatClock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (s *AssessmentScreen) renderQuestion(width int) string {
	a := s.attempt
	var b strings.Builder

	clock := formatClock(a.Remaining)
	clockStyle := theme.Body
	if a.Remaining <= 60 {
		clockStyle = theme.Incorrect
	}
	left := theme.Label.Render(fmt.Sprintf("  Question %d of %d", a.Index+1, len(a.Questions)))
	right := theme.Hint.Render(fmt.Sprintf("answered %d/%d  ", a.Answered(), len(a.Questions))) + clockStyle.Render("⏱ "+clock)
	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	b.WriteString(line + "\n")

	pct := 0
	if len(a.Questions) > 0 {
		pct = (a.Index + 1) * 100 / len(a.Questions)
	}
	b.WriteString("  " + components.NewProgressBar("", pct, false, cardWidth(width)).View() + "\n\n")

	if a.Source == questions.SourceFallback {
		b.WriteString("  " + theme.Hint.Render("Using the built-in question bank.") + "\n\n")
	}

	b.WriteString(indent(s.choice.View(), "  ") + "\n\n")
	b.WriteString("  " + s.renderDots())
	if s.jump {
		b.WriteString("\n\n  " + theme.Warning.Render("Go to question: press 1-9"))
	}
	return b.String()
}

// renderDots shows one marker per question: answered, current or open.
func (s *AssessmentScreen) renderDots() string {
	a := s.attempt
	dots := make([]string, len(a.Questions))
	for i := range a.Questions {
		switch {
		case i == a.Index:
			dots[i] = theme.Selected.Render("◆")
		case a.Answers[i] != flow.Unanswered:
			dots[i] = theme.Correct.Render("●")
		default:
			dots[i] = theme.Hint.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func (s *AssessmentScreen) renderResults(width int) string {
	a := s.attempt
	out := a.Outcome
	if out == nil {
		return ""
	}
	var b strings.Builder

	if out.Passed {
		b.WriteString(theme.Correct.Render("Passed!") + "\n\n")
	} else {
		b.WriteString(theme.Incorrect.Render("Not passed this time") + "\n\n")
	}
	if a.Expired {
		b.WriteString(theme.Warning.Render("Time ran out. Unanswered questions count as wrong.") + "\n\n")
	}
	fmt.Fprintf(&b, "%s %d%% (%d of %d correct)\n", theme.Label.Render("Score:"), out.Score, out.Correct, out.Total)
	fmt.Fprintf(&b, "%s %d%%\n", theme.Label.Render("Passing score:"), a.Assessment.PassingScore)
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Time spent:"), formatClock(a.TimeSpent()))
	if r := a.Result; r != nil {
		fmt.Fprintf(&b, "%s better than %d%% of learners\n", theme.Label.Render("Percentile:"), r.Percentile)
		if r.Badge != "" {
			fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Badge:"), r.Badge)
		}
	}
	if s.saveErr != "" {
		b.WriteString("\n" + theme.Incorrect.Render("Result not saved: "+s.saveErr+". Press S to retry.") + "\n")
	}

	b.WriteString("\n" + theme.Subtitle.Render("Review") + "\n")
	for i, q := range a.Questions {
		mark := theme.Incorrect.Render("✗")
		if a.Answers[i] == q.CorrectAnswer {
			mark = theme.Correct.Render("✓")
		}
		fmt.Fprintf(&b, "%s %d. %s\n", mark, i+1, q.Question)
		if a.Answers[i] != q.CorrectAnswer && q.Explanation != "" {
			b.WriteString("     " + theme.Hint.Render(q.Explanation) + "\n")
		}
	}

	if out.Passed {
		b.WriteString("\n" + theme.Hint.Render("Press C to view your certificate."))
	} else {
		b.WriteString("\n" + theme.Hint.Render("Press R to retake with new questions."))
	}
	return "\n" + theme.Card.Width(cardWidth(width)).Render(b.String())
}

func (s *AssessmentScreen) renderCertificate(width int) string {
	c := s.attempt.Certificate
	if c == nil {
		return centered(width, "\n\n"+theme.Hint.Render("No certificate was issued."))
	}
	body := strings.Join([]string{
		theme.Subtitle.Render("CERTIFICATE OF ACHIEVEMENT"),
		"",
		theme.Body.Render("This certifies that"),
		theme.Title.Render(s.deps.User.Name),
		theme.Body.Render("has successfully completed"),
		theme.Title.Render(c.Title),
		"",
		theme.Label.Render(c.Badge),
		fmt.Sprintf("Score %d%%  ·  Issued %s", c.Score, c.IssuedAt.Format("January 2, 2006")),
		"",
		theme.Hint.Render(c.ID),
	}, "\n")

	card := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 4).
		Align(lipgloss.Center).
		Width(cardWidth(width)).
		Render(body)
	return "\n" + centered(width, card)
}
