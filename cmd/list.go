package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/aniko-app/aniko/api"
	"github.com/aniko-app/aniko/auth"
	"github.com/aniko-app/aniko/color"
	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/icon"
	"github.com/aniko-app/aniko/progress"
	"github.com/aniko-app/aniko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	listCmd.SetOut(os.Stdout)
}

// listCmd displays the continue-watching list with progress percentages.
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "Display your watch list with progress",
	Aliases: []string{"l"},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			userID = auth.UserID()
			store  = progress.ForUser(userID)
		)

		all, err := store.GetAll(cmd.Context(), userID)
		handleErr(err)

		records := lo.Values(all)
		sort.Slice(records, func(i, j int) bool {
			return records[i].LastUpdated > records[j].LastUpdated
		})

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("your list is empty, add something with `" + rootCmd.Use + " list add <anime-id>`"))
			return
		}

		for _, record := range records {
			printProgressLine(cmd, record)
		}
	},
}

func printProgressLine(cmd *cobra.Command, record progress.UserProgress) {
	var statusIcon string
	switch record.Status {
	case progress.StatusCompleted:
		statusIcon = icon.Get(icon.Completed)
	case progress.StatusWatching:
		statusIcon = icon.Get(icon.Watching)
	default:
		statusIcon = icon.Get(icon.OnHold)
	}

	line := fmt.Sprintf(
		"%s %s %s",
		statusIcon,
		style.Bold(record.Title),
		style.Faint(fmt.Sprintf("%d/%d (%.0f%%)", record.CurrentEpisode, record.TotalEpisodes, record.Percent()*100)),
	)
	if record.NextEpisodeID != "" {
		line += " " + style.Fg(color.Cyan)("next: "+record.NextEpisodeID)
	}
	cmd.Println(line)
}

func init() {
	listCmd.AddCommand(listAddCmd)
	listCmd.AddCommand(listRemoveCmd)
}

// listAddCmd puts an anime on the list without watching anything yet.
var listAddCmd = &cobra.Command{
	Use:   "add <anime-id>",
	Short: "Add an anime to your list as On Hold",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			id     = args[0]
			userID = auth.UserID()
			store  = progress.ForUser(userID)
		)

		payload, err := newClient().Get(cmd.Context(), endpoint.Details, endpoint.Params{"id": id})
		handleErr(err)

		detail, err := api.DecodeDetail(payload)
		handleErr(err)
		detail.ID = id

		handleErr(store.Add(cmd.Context(), userID, &detail.Anime))
		cmd.Printf("%s added %s\n", icon.Get(icon.Success), style.Bold(detail.Title))
	},
}

// listRemoveCmd drops an anime from the list.
var listRemoveCmd = &cobra.Command{
	Use:     "remove <anime-id>",
	Short:   "Remove an anime from your list",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"rm"},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			id     = args[0]
			userID = auth.UserID()
			store  = progress.ForUser(userID)
		)

		handleErr(store.Remove(cmd.Context(), userID, id))
		cmd.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(id))
	},
}
