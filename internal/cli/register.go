package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shrawan0701/webanalytics/internal/util"
)

var (
	registerUsername string
	registerEmail    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Creates a new account on the analytics service. Registration does not
log you in; run 'webanalytics login' afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		username := strings.TrimSpace(registerUsername)
		email := strings.TrimSpace(registerEmail)
		if err := util.ValidateUsername(username); err != nil {
			return err
		}
		if err := util.ValidateEmail(email); err != nil {
			return err
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		if err := util.ValidatePassword(password); err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		sh, cleanup, err := newShell(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := sh.sessions.Register(ctx, username, email, password); err != nil {
			return err
		}

		fmt.Println("Account created. Log in with 'webanalytics login'.")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "account username")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(registerCmd)
}
