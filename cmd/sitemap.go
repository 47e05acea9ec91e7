package cmd

import (
	"os"

	"github.com/aniko-app/aniko/icon"
	"github.com/aniko-app/aniko/internal/sitemap"
	"github.com/aniko-app/aniko/style"
	"github.com/aniko-app/aniko/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sitemapCmd)

	sitemapCmd.Flags().StringP("output", "o", "sitemap.xml", "File path to write the sitemap to")
	sitemapCmd.SetOut(os.Stdout)
}

// sitemapCmd generates the site sitemap from the live home feed.
var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Generate a sitemap from the static routes and the live home feed",
	Run: func(cmd *cobra.Command, args []string) {
		output := lo.Must(cmd.Flags().GetString("output"))

		set, err := sitemap.Build(cmd.Context(), newClient())
		handleErr(err)

		handleErr(sitemap.Write(set, output))
		cmd.Printf(
			"%s wrote %s to %s\n",
			icon.Get(icon.Success),
			util.Quantify(len(set.URLs), "entry", "entries"),
			style.Bold(output),
		)
	},
}
