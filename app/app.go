// Package app defines the timetracker command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/timetrackerpro/timetracker/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the timetracker app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "timetracker",
		Usage: `
		Timetracker records how your day splits between work, coffee breaks and
		lunch. It pauses itself when the screen locks and can tell you which
		applications you worked in.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Print the status of the running tracker",
				Action: statusAction,
			},
			{
				Name:   "report",
				Usage:  "Print the sessions, totals and applications of a day",
				Flags:  []cli.Flag{dateFlag},
				Action: reportAction,
			},
			{
				Name:   "days",
				Usage:  "List every day that has recorded sessions",
				Action: daysAction,
			},
			{
				Name:   "export",
				Usage:  "Export the session history as CSV, JSON, YAML or PDF",
				Flags:  []cli.Flag{formatFlag, outputFlag, fromFlag, toFlag},
				Action: exportAction,
			},
			{
				Name:   "clear-day",
				Usage:  "Delete the sessions of a day",
				Flags:  []cli.Flag{dateFlag, yesFlag},
				Action: clearDayAction,
			},
			{
				Name:   "reset",
				Usage:  "Reset the work, coffee and lunch totals to zero",
				Flags:  []cli.Flag{yesFlag},
				Action: resetAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			startFlag,
			headlessFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			trackAppsFlag,
			autoPauseFlag,
			debugFlag,
			noColorFlag,
		},
		Action: runAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
