package course

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/upskill/internal/screens/screenstest"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestCourseScreen_EnrollAndComplete(t *testing.T) {
	deps := screenstest.SignedIn(t)
	s := New(deps, "js-foundations")
	require.NotNil(t, s.course)
	assert.Nil(t, s.enrollment)

	// Completing before enrolling does nothing.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, s.enrollment)

	s.Update(press('e'))
	require.NotNil(t, s.enrollment)
	assert.Equal(t, 0, s.enrollment.Progress)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, []string{"js-l1"}, s.enrollment.CompletedLessons)
	assert.Equal(t, 11, s.enrollment.Progress) // 1 of 9
	assert.True(t, s.done("js-l1"))

	// Completing again is a no-op.
	s.Update(press('c'))
	assert.Len(t, s.enrollment.CompletedLessons, 1)

	s.Update(press('j'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 22, s.enrollment.Progress)
	assert.Contains(t, s.View(100, 40), "22%")
}

func TestCourseScreen_UnknownCourse(t *testing.T) {
	s := New(screenstest.SignedIn(t), "nope")
	assert.Nil(t, s.course)
	assert.Equal(t, "Course", s.Title())
	_, cmd := s.Update(press('e'))
	assert.Nil(t, cmd)
}
