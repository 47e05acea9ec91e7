package version

import (
	"fmt"

	"github.com/aniko-app/aniko/color"
	"github.com/aniko-app/aniko/constant"
	"github.com/aniko-app/aniko/icon"
	"github.com/aniko-app/aniko/key"
	"github.com/aniko-app/aniko/style"
	"github.com/aniko-app/aniko/util"
	"github.com/spf13/viper"
)

// Notify prints a terminal alert if a more recent stable release is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err == nil {
		comp, err := Compare(version, constant.Version)
		if err == nil && comp <= 0 {
			return
		}
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/aniko-app/aniko/releases/tag/v"+version),
	)
}
