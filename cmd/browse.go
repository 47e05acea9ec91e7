package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/aniko-app/aniko/api"
	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().BoolP("genre", "g", false, "Treat the argument as a genre instead of a category")
	browseCmd.Flags().IntP("page", "p", 0, "Result page to fetch")
	browseCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	browseCmd.SetOut(os.Stdout)
}

// browseCmd lists a catalog category or genre feed.
var browseCmd = &cobra.Command{
	Use:   "browse <category>",
	Short: "Browse a catalog category (e.g. most-popular, top-airing) or genre",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			genre  = lo.Must(cmd.Flags().GetBool("genre"))
			page   = lo.Must(cmd.Flags().GetInt("page"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		k := endpoint.Category
		if genre {
			k = endpoint.Genre
		}

		params := endpoint.Params{"id": args[0]}
		if page > 0 {
			params["page"] = strconv.Itoa(page)
		}

		payload, err := newClient().Get(cmd.Context(), k, params)
		handleErr(err)

		result := api.DecodeSearchPage(payload)

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(result.Animes))
			return
		}

		if len(result.Animes) == 0 {
			cmd.Println(style.Faint("nothing here"))
			return
		}

		for _, anime := range result.Animes {
			printAnimeLine(cmd, anime)
		}

		if result.HasNextPage {
			cmd.Println()
			cmd.Println(style.Faint(fmt.Sprintf("more results on page %d", result.CurrentPage+1)))
		}
	},
}
