package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/upskill/internal/screens"
	assessscreen "github.com/abhisek/upskill/internal/screens/assessment"
	"github.com/abhisek/upskill/internal/screens/home"
	"github.com/abhisek/upskill/internal/screens/screenstest"
	"github.com/abhisek/upskill/internal/screens/welcome"
	"github.com/abhisek/upskill/internal/users"
)

func TestAppModel_SignInSwitchesToHome(t *testing.T) {
	deps := screenstest.NewDeps(t)
	m := newAppModel(deps)
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	require.True(t, ok)

	u, err := deps.Users.Register(context.Background(), users.NewUser{
		Name: "Ada", Email: "ada@example.com", Password: "analytical", Role: "Engineer", Department: "Platform",
	})
	require.NoError(t, err)

	model, _ := m.Update(screens.SignedInMsg{User: *u})
	m = model.(AppModel)
	_, ok = m.router.Active().(*home.HomeScreen)
	assert.True(t, ok)
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, 1, m.unread, "welcome email")
}

func TestAppModel_EscRespectsBackGuard(t *testing.T) {
	deps := screenstest.SignedIn(t)
	m := newAppModel(deps)

	ctx := context.Background()
	attempt, err := deps.Flow.Begin(ctx, deps.User.ID, "js-fundamentals")
	require.NoError(t, err)
	attempt.Start()
	require.NoError(t, deps.Flow.Generate(ctx, attempt))

	m.router.Push(assessscreen.New(deps, attempt))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "running attempt cannot be left with esc")

	attempt.Finish()
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.NotNil(t, cmd)
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m := newAppModel(screenstest.SignedIn(t))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}
