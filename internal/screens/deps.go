// Package screens holds what the TUI screens share.
package screens

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/upskill/internal/assessment"
	"github.com/abhisek/upskill/internal/dashboard"
	"github.com/abhisek/upskill/internal/learning"
	"github.com/abhisek/upskill/internal/logger"
	"github.com/abhisek/upskill/internal/notify"
	"github.com/abhisek/upskill/internal/router"
	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/users"
)

// Deps are the services screens call, plus the signed-in user. User is
// zero until someone signs in.
type Deps struct {
	User      store.User
	Store     *store.Store
	Users     *users.Service
	Learning  *learning.Service
	Flow      *assessment.Flow
	Dashboard *dashboard.Service
	Notify    *notify.Service
	Log       *logger.Logger

	// Remember persists a successful sign-in. Optional.
	Remember func(store.User) error
}

// SignedInMsg reports that u has signed in or registered.
type SignedInMsg struct {
	User store.User
}

// Ctx is the context for store calls made from Update.
func (d Deps) Ctx() context.Context {
	return context.Background()
}

// Push returns a command that opens s on top of the current screen.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// Pop returns a command that closes the current screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// Replace returns a command that swaps the current screen for s.
func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}
