package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Shrawan0701/webanalytics/internal/util"
)

var (
	eventsPage int
	eventsSize int
)

var eventsCmd = &cobra.Command{
	Use:   "events <website-id>",
	Short: "List raw tracked events for a website",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		if eventsPage < 0 {
			eventsPage = 0
		}
		if eventsSize <= 0 {
			eventsSize = 10
		}

		sh, cleanup, err := newShell(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := sh.requireLogin(); err != nil {
			return err
		}

		page, err := sh.analytics.Events(ctx, args[0], eventsPage, eventsSize)
		if err != nil {
			return err
		}

		if len(page.Content) == 0 {
			fmt.Println("No recent events logged.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tEVENT TYPE\tPAGE URL\tEVENT NAME")
		for _, ev := range page.Content {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				ev.CreatedAt,
				ev.EventType,
				orDash(util.TruncateText(ev.PageURL, 60)),
				orDash(ev.EventName))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nPage %d of %d\n", eventsPage+1, page.TotalPages)
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	eventsCmd.Flags().IntVar(&eventsPage, "page", 0, "zero-based page index")
	eventsCmd.Flags().IntVar(&eventsSize, "size", 10, "events per page")
	rootCmd.AddCommand(eventsCmd)
}
