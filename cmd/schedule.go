package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aniko-app/aniko/api"
	"github.com/aniko-app/aniko/color"
	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	scheduleCmd.SetOut(os.Stdout)
}

// scheduleCmd displays the airing schedule for a date, today by default.
var scheduleCmd = &cobra.Command{
	Use:   "schedule [date]",
	Short: "Display the airing schedule for a date (YYYY-MM-DD, default today)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asJson := lo.Must(cmd.Flags().GetBool("json"))

		date := time.Now().Format("2006-01-02")
		if len(args) == 1 {
			parsed, err := time.Parse("2006-01-02", args[0])
			handleErr(err)
			date = parsed.Format("2006-01-02")
		}

		payload, err := newClient().Get(cmd.Context(), endpoint.Schedule, endpoint.Params{"date": date})
		handleErr(err)

		entries := api.DecodeSchedule(payload)

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("nothing airing on " + date))
			return
		}

		cmd.Println(style.Title(date))
		for _, entry := range entries {
			cmd.Printf(
				"  %s %s %s\n",
				style.Fg(color.Cyan)(entry.Time),
				style.Bold(entry.Title),
				style.Faint(fmt.Sprintf("ep %d", entry.Episode)),
			)
		}
	},
}
