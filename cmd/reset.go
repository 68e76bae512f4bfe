package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/upskill/internal/catalog"
	"github.com/abhisek/upskill/internal/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all accounts, progress and results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes all local data; re-run with --yes to confirm")
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := e.store.Reset(ctx); err != nil {
				return err
			}
			if err := config.ClearSession(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Println("All data deleted.")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in course catalog if the store has none",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			// newEnv seeds an empty store on every run.
			if e.seeded {
				fmt.Printf("Seeded %d courses.\n", len(catalog.Courses()))
			} else {
				fmt.Println("Catalog already present.")
			}
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
