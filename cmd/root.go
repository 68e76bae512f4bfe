package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "upskill",
	Short: "Terminal learning platform for working engineers",
	Long:  "Upskill: browse courses, track progress and earn certificates through timed, AI-generated skill assessments.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides UPSKILL_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/upskill/config.yaml)")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(assessmentsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(certificatesCmd)
	rootCmd.AddCommand(inboxCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
