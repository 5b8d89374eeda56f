package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/auth"
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with the configured profile",
	Long:  "Sign in as profile.name / profile.email from the config file or MEMTY_PROFILE_* env vars.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			u, err := e.auth.SignIn(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s <%s>\n", u.Name, u.Email)
			return nil
		})
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out; your stats are kept for the next sign-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := e.auth.SignOut(ctx); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			u, err := e.auth.Current(ctx)
			if errors.Is(err, auth.ErrSignedOut) {
				fmt.Println("Not signed in.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\nid:     %s\nsince:  %s\n", u.Name, u.Email, u.ID, u.CreatedAt.Local().Format("2006-01-02"))
			return nil
		})
	},
}
