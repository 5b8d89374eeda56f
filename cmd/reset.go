package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset points, streaks and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this erases your stats and badges; re-run with --yes to confirm")
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			eng, err := e.engine(ctx, nil)
			if err != nil {
				return err
			}
			eng.Reset(ctx)
			fmt.Println("Stats and badges reset.")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
