package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/upskill/internal/screen"
)

// fakeScreen records what the router did to it.
type fakeScreen struct {
	title string
	inits int
	keys  []string
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return "[" + s.title + "]" }
func (s *fakeScreen) Title() string        { return s.title }

func TestSignInReplacesWelcome(t *testing.T) {
	welcome := &fakeScreen{title: "Welcome"}
	r := New(welcome)

	home := &fakeScreen{title: "Home"}
	r.Update(ReplaceScreenMsg{Screen: home})

	assert.Equal(t, 1, r.Depth(), "esc from home must not return to sign-in")
	assert.Equal(t, "Home", r.Active().Title())
	assert.Equal(t, 1, home.inits)
}

func TestCatalogDrillDownAndBack(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	r := New(home)

	catalog := &fakeScreen{title: "Catalog"}
	r.Update(PushScreenMsg{Screen: catalog})
	course := &fakeScreen{title: "Go Fundamentals"}
	r.Update(PushScreenMsg{Screen: course})

	require.Equal(t, 3, r.Depth())
	assert.Equal(t, "[Go Fundamentals]", r.View(80, 24))
	assert.Equal(t, 1, catalog.inits)
	assert.Equal(t, 1, course.inits)

	r.Update(PopScreenMsg{})
	assert.Equal(t, "Catalog", r.Active().Title())
	assert.Equal(t, 1, catalog.inits, "returning to a screen does not re-init it")

	r.Update(PopScreenMsg{})
	assert.Equal(t, "Home", r.Active().Title())
}

func TestPopKeepsRootScreen(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	r := New(home)

	assert.Nil(t, r.Pop())
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, home, r.Active())
}

func TestReplaceKeepsDepthMidStack(t *testing.T) {
	r := New(&fakeScreen{title: "Home"})
	r.Push(&fakeScreen{title: "Assessments"})

	results := &fakeScreen{title: "Results"}
	r.Replace(results)

	assert.Equal(t, 2, r.Depth())
	assert.Same(t, results, r.Active())

	r.Pop()
	assert.Equal(t, "Home", r.Active().Title())
}

func TestKeysReachOnlyActiveScreen(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	r := New(home)
	inbox := &fakeScreen{title: "Inbox"}
	r.Push(inbox)

	r.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.Equal(t, []string{"j", "enter"}, inbox.keys)
	assert.Empty(t, home.keys)
}

func TestEmptyRouter(t *testing.T) {
	r := &Router{}

	assert.Nil(t, r.Active())
	assert.Equal(t, "", r.View(80, 24))
	assert.Nil(t, r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}))

	s := &fakeScreen{title: "Welcome"}
	r.Replace(s)
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, s, r.Active())
}
