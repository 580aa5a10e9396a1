package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/timetrackerpro/timetracker/app"
	"github.com/timetrackerpro/timetracker/internal/osutil"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		if app.IsCancelled(err) {
			os.Exit(int(osutil.ExitOK))
		}

		pterm.Error.Println(err)
		os.Exit(int(osutil.ExitError))
	}
}
