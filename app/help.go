package app

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// section renders a heading followed by an indented template body.
func section(title, body string) string {
	return fmt.Sprintf("%s\n%s\n\n", pterm.Yellow(title), body)
}

func helpText() string {
	var b strings.Builder

	b.WriteString(section("DESCRIPTION", "\t\t{{.Usage}}"))
	b.WriteString(section(
		"USAGE",
		"\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}",
	))
	b.WriteString(section("VERSION", "\t\t{{.Version}}"))
	b.WriteString(section(
		"COMMANDS",
		"{{range .Commands}}{{if not .HideHelp}}   "+
			pterm.Green("{{join .Names `, `}}")+
			"{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}",
	))
	b.WriteString(section(
		"OPTIONS",
		"{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}"+
			pterm.Green("-{{$element}}")+",{{end}}{{end}} "+
			pterm.Green("--{{.Name}} {{.DefaultText}}")+
			"\n\t\t\t\t{{.Usage}}\n\n{{end}}",
	))
	b.WriteString(section("KEYS", keysHelp()))
	b.WriteString(section("FILES", filesHelp()))
	b.WriteString(section("ENVIRONMENTAL VARIABLES", envHelp()))

	return b.String()
}

func keysHelp() string {
	return `		w, c, l      start or stop the work, coffee or lunch timer
		s, space     stop the running timer
		r            reset all totals
		?            toggle the full help
		q            quit (the running session is saved)`
}

func filesHelp() string {
	return `		$XDG_CONFIG_HOME/timetracker/config.yml   settings, reloaded while running
		$XDG_DATA_HOME/timetracker/timetracker.db  session history and totals
		$XDG_DATA_HOME/timetracker/status.json     state of the running tracker
		$XDG_DATA_HOME/timetracker/log/            rotated JSON logs`
}

func envHelp() string {
	return `		TIMETRACKER_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

		TIMETRACKER_ENV: keep a separate configuration, database and log for the named environment (e.g. "dev").`
}
