package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aniko-app/aniko/api"
	"github.com/aniko-app/aniko/color"
	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/icon"
	"github.com/aniko-app/aniko/key"
	"github.com/aniko-app/aniko/query"
	"github.com/aniko-app/aniko/source"
	"github.com/aniko-app/aniko/style"
	"github.com/aniko-app/aniko/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("page", "p", 0, "Result page to fetch")
	searchCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")

	searchCmd.SetOut(os.Stdout)
}

// searchCmd searches the upstream catalog for anime by keyword.
var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search the catalog for anime by keyword",
	Args:    cobra.MinimumNArgs(1),
	Aliases: []string{"s"},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			q      = strings.Join(args, " ")
			page   = lo.Must(cmd.Flags().GetInt("page"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		_ = query.Remember(q, 1)

		params := endpoint.Params{"q": q}
		if page > 0 {
			params["page"] = strconv.Itoa(page)
		}

		payload, err := newClient().Get(cmd.Context(), endpoint.Search, params)
		handleErr(err)

		result := api.DecodeSearchPage(payload)
		if limit := viper.GetInt(key.SearchLimit); limit > 0 && len(result.Animes) > limit {
			result.Animes = result.Animes[:limit]
		}

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(result.Animes))
			return
		}

		if len(result.Animes) == 0 {
			cmd.Printf("%s nothing found for %s\n", icon.Get(icon.Search), style.Fg(color.Yellow)(q))
			if suggestion := query.Suggest(q); suggestion.IsPresent() {
				cmd.Printf("%s\n", style.Faint("did you mean "+suggestion.MustGet()+"?"))
			}

			// Fall back to upstream keyword suggestions.
			if payload, err := newClient().Get(cmd.Context(), endpoint.Suggestion, endpoint.Params{"q": q}); err == nil {
				if suggestions := api.DecodeAnimes(payload, "suggestions", "results"); len(suggestions) > 0 {
					cmd.Println(style.Faint("similar titles:"))
					for _, anime := range suggestions[:util.Min(5, len(suggestions))] {
						printAnimeLine(cmd, anime)
					}
				}
			}
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

func printAnimeLine(cmd *cobra.Command, anime *source.Anime) {
	var meta []string
	if anime.Type != "" {
		meta = append(meta, anime.Type)
	}
	if anime.Year != "" {
		meta = append(meta, anime.Year)
	}
	if total := anime.TotalEpisodes(); total > 0 {
		meta = append(meta, util.Quantify(total, "episode", "episodes"))
	}

	cmd.Printf(
		"%s %s\n",
		style.Bold(anime.Title),
		style.Faint(fmt.Sprintf("(%s) %s", anime.ID, strings.Join(meta, " · "))),
	)
}
