package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		sh, cleanup, err := newShell(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		// Idempotent: logging out while logged out is fine.
		if err := sh.sessions.Logout(ctx); err != nil {
			return err
		}

		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
