// Package assessment is the timed assessment wizard.
package assessment

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	flow "github.com/abhisek/upskill/internal/assessment"
	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/ui/components"
	"github.com/abhisek/upskill/internal/ui/layout"
)

type AssessmentScreen struct {
	deps    screens.Deps
	attempt *flow.Attempt
	choice  components.MultiChoice
	jump    bool // next digit jumps to that question
	saveErr string
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)
var _ screen.BackGuard = (*AssessmentScreen)(nil)

func New(deps screens.Deps, attempt *flow.Attempt) *AssessmentScreen {
	return &AssessmentScreen{deps: deps, attempt: attempt}
}

// Attempt exposes the underlying state machine.
func (s *AssessmentScreen) Attempt() *flow.Attempt { return s.attempt }

func (s *AssessmentScreen) Init() tea.Cmd { return nil }

func (s *AssessmentScreen) Title() string { return s.attempt.Assessment.Title }

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	switch s.attempt.Phase {
	case flow.PhaseNotStarted:
		return []layout.KeyHint{{Key: "Enter", Description: "Start"}, {Key: "Esc", Description: "Back"}}
	case flow.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "G+n", Description: "Go to"},
			{Key: "F", Description: "Finish"},
		}
	case flow.PhaseResults:
		hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
		if s.saveErr != "" {
			hints = append([]layout.KeyHint{{Key: "S", Description: "Retry save"}}, hints...)
		}
		if s.attempt.Outcome != nil && s.attempt.Outcome.Passed {
			return append([]layout.KeyHint{{Key: "C", Description: "Certificate"}}, hints...)
		}
		return append([]layout.KeyHint{{Key: "R", Description: "Retake"}}, hints...)
	case flow.PhaseCertificate:
		return []layout.KeyHint{{Key: "Backspace", Description: "Results"}, {Key: "Esc", Description: "Back"}}
	case flow.PhaseFailed:
		return []layout.KeyHint{{Key: "R", Description: "Retry"}, {Key: "Esc", Description: "Back"}}
	}
	return nil
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		return s.handleQuestions(msg)
	case timerTickMsg:
		return s.handleTick(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *AssessmentScreen) start() tea.Cmd {
	if !s.attempt.Start() {
		return nil
	}
	a := s.attempt
	f := s.deps.Flow
	ctx := s.deps.Ctx()
	return func() tea.Msg {
		set, err := f.Questions(ctx, a)
		return questionsReadyMsg{AttemptID: a.ID, Set: set, Err: err}
	}
}

func (s *AssessmentScreen) handleQuestions(msg questionsReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.AttemptID != s.attempt.ID {
		return s, nil
	}
	if msg.Err != nil {
		s.deps.Log.Error("question generation failed", "assessment", s.attempt.Assessment.ID, "error", msg.Err)
		s.attempt.Fail(msg.Err)
		return s, nil
	}
	s.deps.Flow.Load(s.attempt, msg.Set)
	s.syncChoice()
	return s, tickCmd(s.attempt.ID)
}

func (s *AssessmentScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.AttemptID != s.attempt.ID || s.attempt.Phase != flow.PhaseInProgress {
		return s, nil
	}
	if s.attempt.Tick() {
		s.complete()
		return s, nil
	}
	return s, tickCmd(s.attempt.ID)
}

// complete persists the result. After a failure S retries it.
func (s *AssessmentScreen) complete() {
	s.saveErr = ""
	if _, err := s.deps.Flow.Complete(s.deps.Ctx(), s.attempt); err != nil {
		s.deps.Log.Error("save assessment result", "attempt_id", s.attempt.ID, "error", err)
		s.saveErr = err.Error()
	}
}

func (s *AssessmentScreen) syncChoice() {
	q := s.attempt.Current()
	if q == nil {
		return
	}
	s.choice = components.NewMultiChoice(q.Question, q.Options, q.CorrectAnswer, s.attempt.Answers[s.attempt.Index])
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	a := s.attempt

	switch a.Phase {
	case flow.PhaseNotStarted:
		if key == "enter" {
			return s, s.start()
		}

	case flow.PhaseInProgress:
		return s.handleQuestionKey(key, msg)

	case flow.PhaseResults:
		switch key {
		case "c":
			a.ShowCertificate()
		case "s":
			if s.saveErr != "" {
				s.complete()
			}
		case "r":
			if a.Outcome != nil && !a.Outcome.Passed {
				a.Restart(uuid.NewString())
				s.saveErr = ""
				return s, s.start()
			}
		case "enter":
			return s, screens.Pop()
		}

	case flow.PhaseCertificate:
		if key == "backspace" || key == "c" {
			a.BackToResults()
		}

	case flow.PhaseFailed:
		if key == "r" {
			a.Restart(uuid.NewString())
			return s, s.start()
		}
	}
	return s, nil
}

func (s *AssessmentScreen) handleQuestionKey(key string, msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	a := s.attempt

	if s.jump {
		s.jump = false
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			a.Goto(int(key[0] - '1'))
			s.syncChoice()
		}
		return s, nil
	}

	switch key {
	case "g":
		s.jump = true
		return s, nil
	case "left", "h":
		a.Prev()
		s.syncChoice()
		return s, nil
	case "right", "l", "tab":
		a.Next()
		return s.afterMove()
	case "f":
		a.Finish()
		return s.afterMove()
	}

	var picked int
	s.choice, picked = s.choice.Update(msg)
	if picked >= 0 {
		a.Select(picked)
	}
	return s, nil
}

// afterMove persists once the attempt reaches Results, else refreshes the
// option view.
func (s *AssessmentScreen) afterMove() (screen.Screen, tea.Cmd) {
	if s.attempt.Phase == flow.PhaseResults {
		s.complete()
		return s, nil
	}
	s.syncChoice()
	return s, nil
}

func tickCmd(attemptID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{AttemptID: attemptID}
	})
}

// AllowBack keeps Esc from abandoning a running attempt; F finishes it.
func (s *AssessmentScreen) AllowBack() bool {
	return s.attempt.Phase != flow.PhaseInProgress && s.attempt.Phase != flow.PhaseGenerating
}
