package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug records to the log file",
	}

	headlessFlag = &cli.BoolFlag{
		Name:  "headless",
		Usage: "Track time without the dashboard until interrupted. Pause events are shown as desktop notifications",
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Start a timer immediately. Possible values are: work, coffee, lunch",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable desktop notifications",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	trackAppsFlag = &cli.BoolFlag{
		Name:  "track-apps",
		Usage: "Record the foreground application during work sessions",
	}

	autoPauseFlag = &cli.BoolFlag{
		Name:  "auto-pause",
		Usage: "Pause the running timer when the screen is locked",
	}

	dateFlag = &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"D"},
		Usage:   "The day to operate on, e.g. 2026-10-12 or 'yesterday' (defaults to today)",
	}

	fromFlag = &cli.StringFlag{
		Name:    "from",
		Aliases: []string{"f"},
		Usage:   "Only include sessions that started on or after this time, e.g. 2026-10-01 or '7 days ago'",
	}

	toFlag = &cli.StringFlag{
		Name:    "to",
		Aliases: []string{"t"},
		Usage:   "Only include sessions that started before this time",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Export format. Possible values are: csv, json, yaml, pdf",
		Value: "csv",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the export to this file instead of the standard output",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Do not ask for confirmation",
	}
)
