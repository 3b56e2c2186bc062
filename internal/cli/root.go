// Package cli implements the dashboard shell: every command is one view over
// the remote analytics API, reached through the HTTP gateway.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shrawan0701/webanalytics/internal/http/client"
)

var rootCmd = &cobra.Command{
	Use:   "webanalytics",
	Short: "Dashboard CLI for the website analytics service",
	Long: `webanalytics manages tracked websites and shows their analytics:
register an account, add websites, grab the embeddable tracking snippet,
and inspect page views, clicks, unique visitors and bounce rates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", displayError(err))
		os.Exit(1)
	}
}

// displayError prefers the gateway's user-facing message over raw error text.
func displayError(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage
	}
	return err.Error()
}

// commandContext is the lifetime of one command invocation.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
