package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/upskill/internal/store"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox [email-id]",
	Short: "List notification emails, or read one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			if len(args) == 1 {
				return readEmail(ctx, e, u, args[0])
			}

			emails, err := e.notify.Inbox(ctx, u.ID)
			if err != nil {
				return fmt.Errorf("load inbox: %w", err)
			}
			if len(emails) == 0 {
				fmt.Println("No messages.")
				return nil
			}
			for _, m := range emails {
				mark := " "
				if !m.Read {
					mark = "●"
				}
				fmt.Printf("%s %-16s  %-52s  %s\n", mark, m.SentAt.Local().Format("2006-01-02 15:04"), truncate(m.Subject, 52), m.ID)
			}
			return nil
		})
	},
}

func readEmail(ctx context.Context, e *env, u *store.User, id string) error {
	m, err := e.store.EmailRepo().ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load email: %w", err)
	}
	if m == nil || m.UserID != u.ID {
		return fmt.Errorf("email %q not found", id)
	}
	if err := e.notify.MarkRead(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Subject: %s\nTo:      %s\nDate:    %s\n\n%s\n",
		m.Subject, m.To, m.SentAt.Local().Format("Jan 2, 2006 15:04"), m.Body)
	return nil
}
