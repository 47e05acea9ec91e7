package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/aniko-app/aniko/api"
	"github.com/aniko-app/aniko/auth"
	"github.com/aniko-app/aniko/color"
	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/history"
	"github.com/aniko-app/aniko/icon"
	"github.com/aniko-app/aniko/key"
	"github.com/aniko-app/aniko/log"
	"github.com/aniko-app/aniko/progress"
	"github.com/aniko-app/aniko/source"
	"github.com/aniko-app/aniko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntP("episode", "e", 0, "Episode number to watch instead of the derived next one")
	watchCmd.Flags().BoolP("pick", "p", false, "Pick the episode interactively")
	watchCmd.SetOut(os.Stdout)
}

// watchCmd resolves the stream URL for an episode and records the watch.
var watchCmd = &cobra.Command{
	Use:     "watch <anime-id>",
	Short:   "Resolve a stream URL for the next episode and record the watch",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"w"},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			id        = args[0]
			pinnedNum = lo.Must(cmd.Flags().GetInt("episode"))
			pick      = lo.Must(cmd.Flags().GetBool("pick"))
			client    = newClient()
			userID    = auth.UserID()
			store     = progress.ForUser(userID)
			ctx       = cmd.Context()
		)

		payload, err := client.Get(ctx, endpoint.Details, endpoint.Params{"id": id})
		handleErr(err)

		detail, err := api.DecodeDetail(payload)
		handleErr(err)
		detail.ID = id

		if len(detail.EpisodeList) == 0 {
			episodesPayload, err := client.Get(ctx, endpoint.Episodes, endpoint.Params{"id": id})
			handleErr(err)
			detail.EpisodeList = api.DecodeEpisodes(episodesPayload)
		}

		if len(detail.EpisodeList) == 0 {
			handleErr(errors.New("no episodes available for " + id))
		}

		target := pickEpisode(ctx, store, detail, userID, pinnedNum, pick)
		if target == nil {
			handleErr(fmt.Errorf("episode %d not found for %s", pinnedNum, id))
		}

		// Server list is advisory; the stream endpoint picks its own default.
		if serversPayload, err := client.Get(ctx, endpoint.Servers, endpoint.Params{"id": target.ID}); err == nil {
			if servers := api.DecodeServers(serversPayload); len(servers) > 0 {
				cmd.Println(style.Faint("servers: " + strings.Join(servers, ", ")))
			}
		}

		streamPayload, err := client.Get(ctx, endpoint.Stream, endpoint.Params{"id": target.ID})
		handleErr(err)

		stream := api.DecodeStream(streamPayload)
		if len(stream.Sources) == 0 {
			handleErr(errors.New("no playable sources for " + target.String()))
		}

		cmd.Printf("%s %s\n", icon.Get(icon.Play), style.Bold(target.String()))
		for _, s := range stream.Sources {
			quality := s.Quality
			if quality == "" {
				quality = s.Type
			}
			cmd.Printf("  %s %s\n", style.Fg(color.Cyan)(quality), s.URL)
		}
		if stream.Referer != "" {
			cmd.Println(style.Faint("referer: " + stream.Referer))
		}

		recordWatch(cmd, store, detail, target, userID)
	},
}

// pickEpisode chooses the episode to watch: an explicit number wins, otherwise
// the one derived from stored progress, optionally confirmed interactively.
func pickEpisode(ctx context.Context, store progress.Store, detail *source.AnimeDetail, userID string, pinnedNum int, pick bool) *source.Episode {
	if pinnedNum > 0 {
		return detail.EpisodeByNumber(pinnedNum)
	}

	var record *progress.UserProgress
	if all, err := store.GetAll(ctx, userID); err == nil {
		if p, ok := all[detail.ID]; ok {
			record = &p
		}
	} else {
		log.Error(err)
	}

	target := progress.NextWatchTarget(record, detail.EpisodeList)
	if !pick {
		return target
	}

	options := lo.Map(detail.EpisodeList, func(ep *source.Episode, _ int) string {
		return ep.String()
	})

	prompt := &survey.Select{
		Message:  "Select an episode",
		Options:  options,
		PageSize: 15,
	}
	if target != nil {
		prompt.Default = target.String()
	}

	var index int
	handleErr(survey.AskOne(prompt, &index))
	return detail.EpisodeList[index]
}

// recordWatch persists the watch event to the progress store and, when enabled,
// the local session history ledger. Neither failure aborts playback output.
func recordWatch(cmd *cobra.Command, store progress.Store, detail *source.AnimeDetail, ep *source.Episode, userID string) {
	if err := store.RecordEpisodeWatched(cmd.Context(), userID, detail, ep); err != nil {
		log.Error(err)
		cmd.PrintErrf("%s %v\n", icon.Get(icon.Cloud), err)
	}

	if viper.GetBool(key.HistorySaveOnWatch) {
		if err := history.Session().Record(history.NewItem(&detail.Anime, ep)); err != nil {
			log.Error(err)
		}
	}
}
