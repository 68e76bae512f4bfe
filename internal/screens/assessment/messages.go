package assessment

import (
	"github.com/abhisek/upskill/internal/questions"
)

// questionsReadyMsg carries the generated set for an attempt.
type questionsReadyMsg struct {
	AttemptID string
	Set       questions.Set
	Err       error
}

// timerTickMsg is sent every second while an attempt is in progress. Ticks
// for an older attempt are dropped.
type timerTickMsg struct {
	AttemptID string
}
