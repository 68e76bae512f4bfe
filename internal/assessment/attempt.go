package assessment

import (
	"math"
	"time"

	"github.com/abhisek/upskill/internal/catalog"
	"github.com/abhisek/upskill/internal/questions"
	"github.com/abhisek/upskill/internal/store"
)

// Phase is where an attempt is in the assessment wizard.
type Phase int

const (
	PhaseNotStarted  Phase = iota // Waiting for the learner to start
	PhaseGenerating               // Questions are being generated
	PhaseInProgress               // Answering questions, timer running
	PhaseResults                  // Scored; result persisted on completion
	PhaseCertificate              // Viewing the certificate of a passed attempt
	PhaseFailed                   // Generation failed; learner may retry
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseGenerating:
		return "generating"
	case PhaseInProgress:
		return "in-progress"
	case PhaseResults:
		return "results"
	case PhaseCertificate:
		return "certificate"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Unanswered marks an answer slot with no option chosen.
const Unanswered = -1

// Outcome is the scored result of an attempt.
type Outcome struct {
	Correct int
	Total   int
	Score   int
	Passed  bool
}

// Attempt is one learner's pass through an assessment. It is a pure state
// machine; Flow performs the side effects. Methods that do not apply to the
// current phase are ignored and report false.
type Attempt struct {
	// ID identifies the attempt and becomes the persisted result ID.
	ID string

	UserID     string
	Assessment catalog.Assessment

	Phase Phase

	Questions []questions.Question

	// Source and Reason record where the questions came from.
	Source questions.Source
	Reason string

	// Answers holds the chosen option per question, Unanswered if none.
	Answers []int

	// Index is the question on screen.
	Index int

	// Remaining is the countdown in seconds.
	Remaining int

	StartedAt time.Time

	// Expired is set when the timer, not the learner, ended the attempt.
	Expired bool

	// Outcome is computed once on entering PhaseResults.
	Outcome *Outcome

	// Result and Certificate are set once the attempt is persisted.
	Result      *store.AssessmentResult
	Certificate *store.Certificate

	// Err is why generation failed.
	Err error

	// saving holds the writes of a Complete that has not yet succeeded.
	saving *completion
}

func NewAttempt(id, userID string, a catalog.Assessment) *Attempt {
	return &Attempt{ID: id, UserID: userID, Assessment: a, Phase: PhaseNotStarted}
}

// Start moves NotStarted to Generating.
func (a *Attempt) Start() bool {
	if a.Phase != PhaseNotStarted {
		return false
	}
	a.Phase = PhaseGenerating
	return true
}

// Load receives the generated questions and starts the countdown.
func (a *Attempt) Load(set questions.Set, now time.Time) bool {
	if a.Phase != PhaseGenerating {
		return false
	}
	a.Questions = set.Questions
	a.Source = set.Source
	a.Reason = set.Reason
	a.Answers = make([]int, len(set.Questions))
	for i := range a.Answers {
		a.Answers[i] = Unanswered
	}
	a.Index = 0
	a.Remaining = a.Assessment.DurationMins * 60
	a.StartedAt = now
	a.Phase = PhaseInProgress
	return true
}

// Fail records a generation failure.
func (a *Attempt) Fail(err error) bool {
	if a.Phase != PhaseGenerating && a.Phase != PhaseNotStarted {
		return false
	}
	a.Err = err
	a.Phase = PhaseFailed
	return true
}

// Current returns the question on screen, or nil outside InProgress.
func (a *Attempt) Current() *questions.Question {
	if a.Phase != PhaseInProgress || a.Index >= len(a.Questions) {
		return nil
	}
	return &a.Questions[a.Index]
}

// Select records option for the current question.
func (a *Attempt) Select(option int) bool {
	q := a.Current()
	if q == nil || option < 0 || option >= len(q.Options) {
		return false
	}
	a.Answers[a.Index] = option
	return true
}

// Goto jumps to question i.
func (a *Attempt) Goto(i int) bool {
	if a.Phase != PhaseInProgress || i < 0 || i >= len(a.Questions) {
		return false
	}
	a.Index = i
	return true
}

// Next advances one question; past the last one it finishes the attempt.
func (a *Attempt) Next() bool {
	if a.Phase != PhaseInProgress {
		return false
	}
	if a.Index >= len(a.Questions)-1 {
		return a.Finish()
	}
	a.Index++
	return true
}

func (a *Attempt) Prev() bool {
	if a.Phase != PhaseInProgress || a.Index == 0 {
		return false
	}
	a.Index--
	return true
}

// Tick counts down one second and reports whether it ended the attempt.
func (a *Attempt) Tick() bool {
	if a.Phase != PhaseInProgress {
		return false
	}
	if a.Remaining > 0 {
		a.Remaining--
	}
	if a.Remaining == 0 {
		a.Expired = true
		return a.Finish()
	}
	return false
}

// Finish scores the attempt and moves it to Results. Calling it again has
// no effect.
func (a *Attempt) Finish() bool {
	if a.Phase != PhaseInProgress {
		return false
	}
	o := Score(a.Questions, a.Answers, a.Assessment.PassingScore)
	a.Outcome = &o
	a.Phase = PhaseResults
	return true
}

// ShowCertificate opens the certificate view of a passed attempt.
func (a *Attempt) ShowCertificate() bool {
	if a.Phase != PhaseResults || a.Outcome == nil || !a.Outcome.Passed {
		return false
	}
	a.Phase = PhaseCertificate
	return true
}

// BackToResults leaves the certificate view.
func (a *Attempt) BackToResults() bool {
	if a.Phase != PhaseCertificate {
		return false
	}
	a.Phase = PhaseResults
	return true
}

// Restart clears all attempt-local state. newID identifies the next attempt.
func (a *Attempt) Restart(newID string) {
	*a = Attempt{ID: newID, UserID: a.UserID, Assessment: a.Assessment, Phase: PhaseNotStarted}
}

// Answered counts questions with an option chosen.
func (a *Attempt) Answered() int {
	n := 0
	for _, ans := range a.Answers {
		if ans != Unanswered {
			n++
		}
	}
	return n
}

// TimeSpent is the elapsed countdown in seconds.
func (a *Attempt) TimeSpent() int {
	return a.Assessment.DurationMins*60 - a.Remaining
}

// Score grades answers against qs. Unanswered questions count as wrong.
func Score(qs []questions.Question, answers []int, passing int) Outcome {
	o := Outcome{Total: len(qs)}
	for i, q := range qs {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			o.Correct++
		}
	}
	if o.Total > 0 {
		o.Score = int(math.Round(100 * float64(o.Correct) / float64(o.Total)))
	}
	o.Passed = o.Score >= passing
	return o
}
