package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aniko-app/aniko/api"
	"github.com/aniko-app/aniko/color"
	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/source"
	"github.com/aniko-app/aniko/style"
	"github.com/aniko-app/aniko/util"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	infoCmd.SetOut(os.Stdout)
}

// infoCmd displays detailed catalog information for one anime.
var infoCmd = &cobra.Command{
	Use:     "info <anime-id>",
	Short:   "Display detailed information about an anime",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"i"},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			id     = args[0]
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			client = newClient()
		)

		payload, err := client.Get(cmd.Context(), endpoint.Details, endpoint.Params{"id": id})
		handleErr(err)

		detail, err := api.DecodeDetail(payload)
		handleErr(err)

		if len(detail.EpisodeList) == 0 {
			if episodesPayload, err := client.Get(cmd.Context(), endpoint.Episodes, endpoint.Params{"id": id}); err == nil {
				detail.EpisodeList = api.DecodeEpisodes(episodesPayload)
			}
		}

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(detail))
			return
		}

		width, _, err := util.TerminalSize()
		if err != nil || width <= 0 || width > 100 {
			width = 100
		}

		cmd.Println(style.Title(detail.Title))
		cmd.Println()

		var meta []string
		if detail.Type != "" {
			meta = append(meta, detail.Type)
		}
		if detail.Year != "" {
			meta = append(meta, detail.Year)
		}
		if total := util.Max(detail.TotalEpisodes(), len(detail.EpisodeList)); total > 0 {
			meta = append(meta, util.Quantify(total, "episode", "episodes"))
		}
		if len(meta) > 0 {
			cmd.Println(style.Faint(strings.Join(meta, " · ")))
		}

		if len(detail.Genres) > 0 {
			tags := lo.Map(detail.Genres, func(genre string, _ int) string {
				return style.Tag(color.New("230"), color.New("62"))(genre)
			})
			cmd.Println(strings.Join(tags, " "))
		}

		if detail.Synopsis != "" {
			cmd.Println()
			cmd.Println(wrap.String(detail.Synopsis, width))
		}

		printShortList(cmd, "Related", detail.Related)
		printShortList(cmd, "Recommended", detail.Recommended)
	},
}

const shortListLimit = 5

func printShortList(cmd *cobra.Command, header string, animes []*source.Anime) {
	if len(animes) == 0 {
		return
	}

	cmd.Println()
	cmd.Println(style.Bold(header))
	for _, anime := range animes[:util.Min(shortListLimit, len(animes))] {
		cmd.Printf("  %s %s\n", anime.Title, style.Faint(fmt.Sprintf("(%s)", anime.ID)))
	}
}
