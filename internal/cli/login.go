package cli

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Shrawan0701/webanalytics/internal/util"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the analytics service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		username := loginUsername
		if username == "" {
			fmt.Print("Username: ")
			if _, err := fmt.Scanln(&username); err != nil {
				return fmt.Errorf("read username: %w", err)
			}
		}
		username = strings.TrimSpace(username)
		if err := util.ValidateUsername(username); err != nil {
			return err
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		if err := util.ValidatePassword(password); err != nil {
			return err
		}

		sh, cleanup, err := newShell(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		user, err := sh.sessions.Login(ctx, username, password)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s <%s>\n", user.Username, user.Email)
		return nil
	},
}

// promptPassword reads a password without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	rootCmd.AddCommand(loginCmd)
}
