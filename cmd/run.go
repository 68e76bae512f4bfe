package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/upskill/internal/app"
	"github.com/abhisek/upskill/internal/config"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/store"
)

// runApp wires the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := newEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	deps := screens.Deps{
		Store:     e.store,
		Users:     e.users,
		Learning:  e.learning,
		Flow:      e.flow,
		Dashboard: e.dashboard,
		Notify:    e.notify,
		Log:       e.log,
		Remember: func(u store.User) error {
			return config.SaveSession(config.Session{UserID: u.ID, Email: u.Email})
		},
	}

	// Without a session the TUI opens on the sign-in screen.
	u, err := e.currentUser(cmd.Context())
	switch {
	case err == nil:
		deps.User = *u
		e.log.Info("starting tui", "user_id", u.ID)
	case errors.Is(err, errNotSignedIn):
		e.log.Info("starting tui", "user_id", "")
	default:
		return err
	}
	if e.aiReason != "" {
		fmt.Fprintln(os.Stderr, "AI question generation unavailable:", e.aiReason)
		fmt.Fprintln(os.Stderr, "Assessments will use the built-in question bank.")
	}

	return app.Run(deps)
}
