package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Shrawan0701/webanalytics/internal/util"
)

var websitesCmd = &cobra.Command{
	Use:   "websites",
	Short: "Manage tracked websites",
}

var websitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your registered websites",
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

		sites, err := sh.websites.List(ctx)
		if err != nil {
			return err
		}
		if len(sites) == 0 {
			fmt.Println("No websites added yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDOMAIN")
		for _, site := range sites {
			fmt.Fprintf(w, "%s\t%s\t%s\n", site.WebsiteID, util.TruncateText(site.Name, 40), site.Domain)
		}
		return w.Flush()
	},
}

var (
	addWebsiteName   string
	addWebsiteDomain string
)

var websitesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new website",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		if err := util.ValidateWebsiteName(addWebsiteName); err != nil {
			return err
		}
		if err := util.ValidateWebsiteDomain(addWebsiteDomain); err != nil {
			return err
		}

		sh, cleanup, err := newShell(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := sh.requireLogin(); err != nil {
			return err
		}

		site, err := sh.websites.Create(ctx, addWebsiteName, addWebsiteDomain)
		if err != nil {
			return err
		}

		fmt.Printf("Website added successfully (id %s).\n", site.WebsiteID)
		fmt.Println("Get the tracking snippet with 'webanalytics websites snippet", site.WebsiteID+"'.")
		return nil
	},
}

var websitesRmCmd = &cobra.Command{
	Use:   "rm <website-id>",
	Short: "Delete a website",
	Args:  cobra.ExactArgs(1),
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

		if err := sh.websites.Delete(ctx, args[0]); err != nil {
			return err
		}

		fmt.Println("Website deleted successfully.")
		return nil
	},
}

var websitesSnippetCmd = &cobra.Command{
	Use:   "snippet <website-id>",
	Short: "Print the embeddable tracking snippet for a website",
	Long:  `Prints the script tag to paste before </body> in the website's pages.`,
	Args:  cobra.ExactArgs(1),
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

		fmt.Println(util.TrackingSnippet(sh.cfg.Agent.PublicBaseURL, args[0]))
		return nil
	},
}

func init() {
	websitesAddCmd.Flags().StringVar(&addWebsiteName, "name", "", "website display name")
	websitesAddCmd.Flags().StringVar(&addWebsiteDomain, "domain", "", "website URL, e.g. https://example.com")
	websitesAddCmd.MarkFlagRequired("name")
	websitesAddCmd.MarkFlagRequired("domain")

	websitesCmd.AddCommand(websitesListCmd, websitesAddCmd, websitesRmCmd, websitesSnippetCmd)
	rootCmd.AddCommand(websitesCmd)
}
