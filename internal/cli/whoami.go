package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiVerify bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		sh, cleanup, err := newShell(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := sh.requireLogin(); err != nil {
			return err
		}

		user := sh.sessions.CurrentUser()
		fmt.Printf("%s <%s> (id %d)\n", user.Username, user.Email, user.ID)

		if whoamiVerify {
			if err := sh.sessions.Validate(ctx); err != nil {
				return err
			}
			fmt.Println("Token is valid.")
		}
		return nil
	},
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiVerify, "verify", false, "check token liveness against the server")
	rootCmd.AddCommand(whoamiCmd)
}
