package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/upskill/internal/groups"
	"github.com/abhisek/upskill/internal/store"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Find, create and join study groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		mine, _ := cmd.Flags().GetBool("mine")

		if mine {
			return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
				gs, err := e.groups.ForUser(ctx, u.ID)
				if err != nil {
					return err
				}
				printGroups(gs)
				return nil
			})
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			gs, err := e.groups.List(ctx, topic)
			if err != nil {
				return err
			}
			printGroups(gs)
			return nil
		})
	},
}

func printGroups(gs []store.StudyGroup) {
	if len(gs) == 0 {
		fmt.Println("No study groups found.")
		return
	}
	fmt.Printf("%-36s  %-28s  %-20s  %7s\n", "ID", "Name", "Topic", "Members")
	fmt.Println(strings.Repeat("─", 98))
	for _, g := range gs {
		fmt.Printf("%-36s  %-28s  %-20s  %3d/%-3d\n",
			g.ID, truncate(g.Name, 28), truncate(g.Topic, 20), len(g.MemberIDs), g.MaxMembers)
	}
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a study group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		topic, _ := f.GetString("topic")
		desc, _ := f.GetString("description")
		maxMembers, _ := f.GetInt("max")

		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			g, err := e.groups.Create(ctx, groups.NewGroup{
				Name: args[0], Topic: topic, Description: desc, OwnerID: u.ID, MaxMembers: maxMembers,
			})
			if err != nil {
				return describeUserError(err)
			}
			fmt.Printf("Created %s (%s).\n", g.Name, g.ID)
			return nil
		})
	},
}

var groupsJoinCmd = &cobra.Command{
	Use:   "join <group-id>",
	Short: "Join a study group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			g, err := e.groups.Join(ctx, args[0], u.ID)
			if err != nil {
				return err
			}
			fmt.Printf("You are in %s (%d/%d members).\n", g.Name, len(g.MemberIDs), g.MaxMembers)
			return nil
		})
	},
}

var groupsLeaveCmd = &cobra.Command{
	Use:   "leave <group-id>",
	Short: "Leave a study group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			g, err := e.groups.Leave(ctx, args[0], u.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Left %s.\n", g.Name)
			return nil
		})
	},
}

func init() {
	groupsListCmd.Flags().StringP("topic", "t", "", "Filter by topic")
	groupsListCmd.Flags().Bool("mine", false, "Only groups you belong to")

	cf := groupsCreateCmd.Flags()
	cf.StringP("topic", "t", "", "Topic the group studies")
	cf.StringP("description", "d", "", "Short description")
	cf.Int("max", groups.DefaultMaxMembers, "Maximum number of members")

	groupsCmd.AddCommand(groupsListCmd)
	groupsCmd.AddCommand(groupsCreateCmd)
	groupsCmd.AddCommand(groupsJoinCmd)
	groupsCmd.AddCommand(groupsLeaveCmd)
}
