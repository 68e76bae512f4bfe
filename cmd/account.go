package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/upskill/internal/config"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/users"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		nu := users.NewUser{}
		nu.Name, _ = f.GetString("name")
		nu.Email, _ = f.GetString("email")
		nu.Password, _ = f.GetString("password")
		nu.Role, _ = f.GetString("role")
		nu.Department, _ = f.GetString("department")

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			u, err := e.users.Register(ctx, nu)
			if err != nil {
				return describeUserError(err)
			}
			if err := config.SaveSession(config.Session{UserID: u.ID, Email: u.Email}); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Printf("Welcome, %s! You are signed in as %s.\n", u.Name, u.Email)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			u, err := e.users.Authenticate(ctx, email, password)
			if err != nil {
				return describeUserError(err)
			}
			if err := config.SaveSession(config.Session{UserID: u.ID, Email: u.Email}); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Printf("Signed in as %s.\n", u.Email)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearSession(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			printProfile(u)
			return nil
		})
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var uu users.UpdateUser
		for name, dst := range map[string]**string{
			"name":       &uu.Name,
			"role":       &uu.Role,
			"department": &uu.Department,
			"title":      &uu.JobTitle,
			"bio":        &uu.Bio,
			"password":   &uu.Password,
		} {
			if f.Changed(name) {
				v, _ := f.GetString(name)
				*dst = &v
			}
		}
		if f.Changed("skills") {
			uu.Skills, _ = f.GetStringSlice("skills")
		}

		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			updated, err := e.users.UpdateProfile(ctx, u.ID, uu)
			if err != nil {
				return describeUserError(err)
			}
			printProfile(updated)
			return nil
		})
	},
}

func printProfile(u *store.User) {
	fmt.Printf("Name:        %s\n", u.Name)
	fmt.Printf("Email:       %s\n", u.Email)
	fmt.Printf("Role:        %s\n", u.Role)
	fmt.Printf("Department:  %s\n", u.Department)
	if u.JobTitle != "" {
		fmt.Printf("Title:       %s\n", u.JobTitle)
	}
	if len(u.Skills) > 0 {
		fmt.Printf("Skills:      %s\n", strings.Join(u.Skills, ", "))
	}
	if u.Bio != "" {
		fmt.Printf("Bio:         %s\n", u.Bio)
	}
	fmt.Printf("Member since %s\n", u.CreatedAt.Local().Format("Jan 2, 2006"))
}

// describeUserError expands validation failures into one line per field.
func describeUserError(err error) error {
	var verr *users.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	var b strings.Builder
	b.WriteString("invalid input:")
	for _, fe := range verr.Fields {
		fmt.Fprintf(&b, "\n  --%s: %s", fe.Field, fe.Message)
	}
	return errors.New(b.String())
}

func init() {
	rf := registerCmd.Flags()
	rf.String("name", "", "Full name")
	rf.String("email", "", "Email address")
	rf.String("password", "", "Password (at least 8 characters)")
	rf.String("role", "", "Job role, e.g. \"Backend Engineer\"")
	rf.String("department", "", "Department, e.g. \"Platform\"")

	lf := loginCmd.Flags()
	lf.String("email", "", "Email address")
	lf.String("password", "", "Password")

	pf := profileCmd.Flags()
	pf.String("name", "", "Full name")
	pf.String("role", "", "Job role")
	pf.String("department", "", "Department")
	pf.String("title", "", "Job title")
	pf.String("bio", "", "Short bio")
	pf.String("password", "", "New password")
	pf.StringSlice("skills", nil, "Comma-separated skills")
}
