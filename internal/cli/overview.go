package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"github.com/Shrawan0701/webanalytics/internal/util"
)

var overviewDays int

var overviewCmd = &cobra.Command{
	Use:   "overview [website-id]",
	Short: "Show aggregated analytics for a website",
	Long: `Shows the headline metrics and the page-view time series for the given
website. Without an argument the first registered website is used.`,
	Args: cobra.MaximumNArgs(1),
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

		websiteID := ""
		if len(args) == 1 {
			websiteID = args[0]
		} else {
			sites, err := sh.websites.List(ctx)
			if err != nil {
				return err
			}
			if len(sites) == 0 {
				fmt.Println("No websites added yet. Add one with 'webanalytics websites add'.")
				return nil
			}
			websiteID = sites[0].WebsiteID
			fmt.Printf("Website: %s (%s)\n\n", sites[0].Name, sites[0].Domain)
		}

		overview, err := sh.analytics.Overview(ctx, websiteID)
		if err != nil {
			return err
		}

		fmt.Printf("Page Views       %s\n", util.FormatNumber(overview.TotalPageViews))
		fmt.Printf("Clicks           %s\n", util.FormatNumber(overview.TotalClicks))
		fmt.Printf("Unique Visitors  %s\n", util.FormatNumber(overview.UniqueVisitors))
		fmt.Printf("Bounce Rate      %s\n", util.FormatPercentage(overview.BounceRate))

		points, err := sh.analytics.ChartData(ctx, websiteID)
		if err != nil {
			return err
		}

		fmt.Printf("\nPage views, last %d days:\n", overviewDays)
		series := util.FillChartRange(points, overviewDays, time.Now())
		printChart(series)
		return nil
	},
}

// printChart renders the day series as horizontal bars scaled to the peak.
func printChart(series []model.ChartPoint) {
	var peak int64
	for _, p := range series {
		if p.Count > peak {
			peak = p.Count
		}
	}

	const width = 40
	for _, p := range series {
		bar := 0
		if peak > 0 {
			bar = int(p.Count * width / peak)
		}
		fmt.Printf("%s  %s %d\n", p.Date, strings.Repeat("█", bar), p.Count)
	}
}

func init() {
	overviewCmd.Flags().IntVar(&overviewDays, "days", 30, "chart range in days (7, 30 or 90)")
	rootCmd.AddCommand(overviewCmd)
}
