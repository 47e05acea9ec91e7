package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aniko-app/aniko/auth"
	"github.com/aniko-app/aniko/color"
	"github.com/aniko-app/aniko/history"
	"github.com/aniko-app/aniko/icon"
	"github.com/aniko-app/aniko/progress"
	"github.com/aniko-app/aniko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	historyCmd.Flags().BoolP("cloud", "c", false, "Show the synced watch history instead of the local session one")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd displays recently watched episodes, most recent first.
var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Display recently watched episodes",
	Aliases: []string{"h"},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			cloud  = lo.Must(cmd.Flags().GetBool("cloud"))
		)

		var (
			items []history.Item
			err   error
		)
		if cloud {
			userID := auth.UserID()
			items, err = progress.ForUser(userID).History(cmd.Context(), userID)
		} else {
			items, err = history.Session().All()
		}
		handleErr(err)

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(items))
			return
		}

		if len(items) == 0 {
			cmd.Println(style.Faint("no watch history yet"))
			return
		}

		for _, item := range items {
			when := time.UnixMilli(item.Timestamp).Format("2006-01-02 15:04")
			cmd.Printf(
				"%s %s %s %s\n",
				icon.Get(icon.History),
				style.Bold(item.Title),
				style.Fg(color.Cyan)(fmt.Sprintf("ep %d", item.EpisodeNumber)),
				style.Faint(when),
			)
		}
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

// historyClearCmd wipes the local session history ledger.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the local session watch history",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(history.Session().Clear())
		cmd.Printf("%s session history cleared\n", icon.Get(icon.Success))
	},
}
