package cmd

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/aniko-app/aniko/auth"
	"github.com/aniko-app/aniko/color"
	"github.com/aniko-app/aniko/constant"
	"github.com/aniko-app/aniko/icon"
	"github.com/aniko-app/aniko/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.SetOut(os.Stdout)
	logoutCmd.SetOut(os.Stdout)
}

// loginCmd stores cloud sync credentials in the system keyring.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store cloud sync credentials for watch-progress synchronization",
	Long: `Store cloud sync credentials in the system keyring.

Without credentials the application runs as the "` + constant.DemoUserID + `" identity:
everything is kept on the local filesystem and nothing is synced.`,
	Run: func(cmd *cobra.Command, args []string) {
		var userID string
		handleErr(survey.AskOne(&survey.Input{Message: "User ID:"}, &userID))
		if userID == "" {
			handleErr(errors.New("user id must not be empty"))
		}
		if userID == constant.DemoUserID {
			handleErr(errors.New(constant.DemoUserID + " is a reserved identity"))
		}

		var token string
		handleErr(survey.AskOne(&survey.Password{Message: "Access token:"}, &token))
		if token == "" {
			handleErr(errors.New("access token must not be empty"))
		}

		handleErr(auth.SetSession(userID, token))
		cmd.Printf(
			"%s logged in as %s, progress will sync to the cloud\n",
			icon.Get(icon.Success),
			style.Fg(color.Purple)(userID),
		)
	},
}

// logoutCmd clears stored credentials and falls back to the demo identity.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget cloud sync credentials and return to local-only mode",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.ClearSession())
		cmd.Printf(
			"%s logged out, running as %s with local-only storage\n",
			icon.Get(icon.Success),
			style.Fg(color.Yellow)(constant.DemoUserID),
		)
	},
}
