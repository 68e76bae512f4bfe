package cmd

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/upskill/internal/assessment"
	"github.com/abhisek/upskill/internal/catalog"
	"github.com/abhisek/upskill/internal/questions"
)

func loadedAttempt(t *testing.T) *assessment.Attempt {
	t.Helper()
	def, ok := catalog.AssessmentByID("js-fundamentals")
	require.True(t, ok)

	set := questions.Set{Source: questions.SourceFallback}
	for i := 0; i < def.QuestionCount; i++ {
		set.Questions = append(set.Questions, questions.Question{
			Question:      "Q",
			Options:       []string{"w", "x", "y", "z"},
			CorrectAnswer: i % questions.OptionCount,
		})
	}
	a := assessment.NewAttempt("a1", "u1", def)
	require.True(t, a.Start())
	require.True(t, a.Load(set, time.Now()))
	return a
}

func TestApplyInput(t *testing.T) {
	a := loadedAttempt(t)

	applyInput(a, "a")
	assert.Equal(t, 0, a.Answers[0])
	assert.Equal(t, 1, a.Index, "answering advances")

	applyInput(a, "p")
	assert.Equal(t, 0, a.Index)

	applyInput(a, "g 5")
	assert.Equal(t, 4, a.Index)
	applyInput(a, "4")
	assert.Equal(t, 3, a.Answers[4])
	assert.Equal(t, 4, a.Index, "last question does not advance")

	applyInput(a, "g 9")
	assert.Equal(t, 4, a.Index)
	applyInput(a, "zz")
	assert.Equal(t, 2, a.Answered())

	applyInput(a, "F")
	assert.Equal(t, assessment.PhaseResults, a.Phase)
	require.NotNil(t, a.Outcome)
	assert.Equal(t, 1, a.Outcome.Correct)
}

func TestRunAttempt_EndOfInputFinishes(t *testing.T) {
	a := loadedAttempt(t)

	runAttempt(context.Background(), a, strings.NewReader("1\n2\n3\n"))

	assert.Equal(t, assessment.PhaseResults, a.Phase)
	assert.Equal(t, 3, a.Answered())
	assert.Equal(t, 60, a.Outcome.Score)
	assert.False(t, a.Expired)
}

func TestRunAttempt_TimerExpiry(t *testing.T) {
	a := loadedAttempt(t)
	a.Remaining = 1

	// A reader that never yields keeps the attempt open until time runs out.
	r, w := io.Pipe()
	defer w.Close()

	done := make(chan struct{})
	go func() {
		runAttempt(context.Background(), a, r)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("attempt did not expire")
	}
	assert.True(t, a.Expired)
	assert.Equal(t, assessment.PhaseResults, a.Phase)
	assert.Equal(t, 0, a.Outcome.Score)
}

func TestReadLines_StopsWhenDone(t *testing.T) {
	input := strings.Repeat("a\n", 1000)
	done := make(chan struct{})
	lines := readLines(strings.NewReader(input), done)

	assert.Equal(t, "a", <-lines)
	close(done)

	got := 0
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				assert.Less(t, got, 999, "reader kept sending after done")
				return
			}
			got++
		case <-timeout:
			t.Fatal("reader goroutine did not exit")
		}
	}
}
