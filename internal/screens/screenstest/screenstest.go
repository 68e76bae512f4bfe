// Package screenstest builds screen dependencies over an in-memory store.
package screenstest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/upskill/internal/assessment"
	"github.com/abhisek/upskill/internal/catalog"
	"github.com/abhisek/upskill/internal/dashboard"
	"github.com/abhisek/upskill/internal/learning"
	"github.com/abhisek/upskill/internal/logger"
	"github.com/abhisek/upskill/internal/notify"
	"github.com/abhisek/upskill/internal/questions"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/users"
)

// NewDeps wires every service over a fresh memory store with the catalog
// seeded. No user is signed in.
func NewDeps(t testing.TB) screens.Deps {
	t.Helper()
	st := store.NewMemory()
	_, err := catalog.Seed(context.Background(), st.CourseRepo())
	require.NoError(t, err)

	sender := notify.New(st.EmailRepo(), nil, nil)
	l := learning.New(st, sender, nil)
	gen := questions.New(nil, questions.DefaultConfig(), nil, questions.WithSeed(1))
	return screens.Deps{
		Store:     st,
		Users:     users.New(st.UserRepo(), sender, nil),
		Learning:  l,
		Flow:      assessment.NewFlow(st, gen, sender, nil),
		Dashboard: dashboard.New(st, l),
		Notify:    sender,
		Log:       logger.Nop(),
	}
}

// SignedIn is NewDeps with a registered user.
func SignedIn(t testing.TB) screens.Deps {
	t.Helper()
	deps := NewDeps(t)
	u, err := deps.Users.Register(context.Background(), users.NewUser{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Password:   "analytical",
		Role:       "Backend Engineer",
		Department: "Platform",
	})
	require.NoError(t, err)
	deps.User = *u
	return deps
}
