package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/timetrackerpro/timetracker/internal/apperr"
	"github.com/timetrackerpro/timetracker/internal/config"
	"github.com/timetrackerpro/timetracker/internal/logger"
	"github.com/timetrackerpro/timetracker/internal/osutil"
	"github.com/timetrackerpro/timetracker/internal/pathutil"
	"github.com/timetrackerpro/timetracker/internal/timeutil"
	"github.com/timetrackerpro/timetracker/internal/ui"
	"github.com/timetrackerpro/timetracker/stats"
	"github.com/timetrackerpro/timetracker/store"
	"github.com/timetrackerpro/timetracker/tracker"
)

const (
	envNoColor            = "NO_COLOR"
	envTimetrackerNoColor = "TIMETRACKER_NO_COLOR"
)

var (
	errInvalidDate = &apperr.Error{
		Message: "unable to understand the date %q",
	}

	errCancelled = &apperr.Error{
		Message: "cancelled",
	}
)

// logCloser releases the log file opened in beforeAction.
var logCloser io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// parseDate resolves a --date style argument. An empty value is today.
func parseDate(s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return timeutil.RoundToStart(now), nil
	}

	t, err := timeutil.FromStr(s, now)
	if err != nil {
		return time.Time{}, errInvalidDate.Fmt(s)
	}

	return t, nil
}

// loadConfig reads the settings file, creating it with defaults if needed.
func loadConfig() (*config.Config, error) {
	return config.New(config.WithViperConfig(pathutil.ConfigFilePath()))
}

// openHistory opens the database for a reporting command and loads the
// sessions that started within [start, end). Zero bounds are open. It fails
// while the tracker is running since the database is locked.
func openHistory(start, end time.Time) (*store.Client, *tracker.SessionStore, error) {
	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	history := tracker.NewSessionStore(db.Window(start, end), slog.Default())

	return db, history, nil
}

// dayBounds returns the start of day and the start of the following day.
func dayBounds(day time.Time) (start, end time.Time) {
	return timeutil.RoundToStart(day), timeutil.NextDay(day)
}

func confirm(ctx *cli.Context, title string) error {
	if ctx.Bool("yes") {
		return nil
	}

	var ok bool

	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return err
	}

	if !ok {
		return errCancelled
	}

	return nil
}

// statusAction prints the state published by the running tracker.
func statusAction(_ *cli.Context) error {
	snap, ok, err := tracker.ReadStatusFile(pathutil.StatusFilePath())
	if err != nil {
		return err
	}

	if !store.InUse(pathutil.DBFilePath()) {
		pterm.Info.Println("timetracker is not running")

		if ok {
			printTotals(snap)
		}

		return nil
	}

	if !ok {
		pterm.Info.Println("timetracker is starting")
		return nil
	}

	switch {
	case snap.Running:
		fmt.Printf(
			"%s %s since %s (%s)\n",
			snap.Category.Symbol(),
			ui.Category(snap.Category),
			snap.SessionStart.Format("15:04"),
			timeutil.FormatTimer(snap.Elapsed),
		)
	case snap.Locked:
		fmt.Printf("Locked for %s\n", timeutil.Humanize(snap.LockedFor))
	default:
		fmt.Println("No timer is running")
	}

	printTotals(snap)

	return nil
}

func printTotals(snap *tracker.Snapshot) {
	for _, c := range tracker.Categories {
		fmt.Printf(
			"%s: %s\n",
			c.Label(),
			timeutil.FormatTimer(snap.Accumulators.Get(c)),
		)
	}

	if snap.TargetWorkHours > 0 {
		fmt.Printf(
			"Today: %s of %s (%d%%)\n",
			timeutil.FormatShort(snap.TodayWorkSeconds),
			timeutil.FormatShort(int(snap.TargetWorkHours*3600)),
			timeutil.Round(snap.WorkProgress()*100),
		)
	}
}

// reportAction prints the report of a single day.
func reportAction(ctx *cli.Context) error {
	day, err := parseDate(ctx.String("date"), time.Now())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, history, err := openHistory(dayBounds(day))
	if err != nil {
		return err
	}

	defer db.Close()

	ui.DarkTheme = cfg.Display.DarkTheme

	stats.Day(history, day, &stats.Options{
		Stdout:          config.Stdout,
		TargetWorkHours: cfg.Tracking.TargetWorkHours,
		TwentyFourHour:  cfg.Display.TwentyFourHour,
	})

	return nil
}

// daysAction lists the days that have recorded sessions.
func daysAction(_ *cli.Context) error {
	db, history, err := openHistory(time.Time{}, time.Time{})
	if err != nil {
		return err
	}

	defer db.Close()

	stats.Days(history, &stats.Options{Stdout: config.Stdout})

	return nil
}

// exportAction writes the session history in the requested format.
func exportAction(ctx *cli.Context) error {
	format, err := stats.ParseFormat(ctx.String("format"))
	if err != nil {
		return err
	}

	now := time.Now()

	var from, to time.Time

	if s := ctx.String("from"); s != "" {
		if from, err = timeutil.FromStr(s, now); err != nil {
			return errInvalidDate.Fmt(s)
		}
	}

	if s := ctx.String("to"); s != "" {
		if to, err = timeutil.FromStr(s, now); err != nil {
			return errInvalidDate.Fmt(s)
		}
	}

	db, history, err := openHistory(from, to)
	if err != nil {
		return err
	}

	defer db.Close()

	sessions := history.All()

	out := config.Stdout

	if path := ctx.String("output"); path != "" {
		f, err := os.OpenFile(
			path,
			os.O_CREATE|os.O_TRUNC|os.O_WRONLY,
			osutil.FilePermission,
		)
		if err != nil {
			return err
		}

		defer f.Close()

		out = f
	}

	err = stats.Export(out, sessions, format)
	if err != nil {
		return err
	}

	if ctx.String("output") != "" {
		pterm.Success.Printfln(
			"exported %d sessions to %s",
			len(sessions),
			ctx.String("output"),
		)
	}

	return nil
}

// clearDayAction deletes every session that started on the chosen day.
func clearDayAction(ctx *cli.Context) error {
	day, err := parseDate(ctx.String("date"), time.Now())
	if err != nil {
		return err
	}

	db, history, err := openHistory(dayBounds(day))
	if err != nil {
		return err
	}

	defer db.Close()

	n := len(history.SessionsForDay(day))
	if n == 0 {
		pterm.Info.Printfln("No sessions found for %s", day.Format("Mon, Jan 02 2006"))
		return nil
	}

	err = confirm(ctx, fmt.Sprintf(
		"Delete %d sessions from %s?",
		n,
		day.Format("Mon, Jan 02 2006"),
	))
	if err != nil {
		return err
	}

	pterm.Success.Printfln("deleted %d sessions", history.ClearDay(day))

	return nil
}

// resetAction zeroes the stored category totals.
func resetAction(ctx *cli.Context) error {
	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	err = confirm(ctx, "Reset the work, coffee and lunch totals?")
	if err != nil {
		return err
	}

	err = db.SaveAccumulators(tracker.Accumulators{})
	if err != nil {
		return err
	}

	pterm.Success.Println("totals reset")

	return nil
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// create the file with defaults on first use
	if _, err := loadConfig(); err != nil {
		return err
	}

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envTimetrackerNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	err := pathutil.Initialize()
	if err != nil {
		return err
	}

	l, closer, err := logger.New(logger.Options{
		Path:  pathutil.LogFilePath(),
		Debug: ctx.Bool("debug"),
	})
	if err != nil {
		return err
	}

	logCloser = closer

	slog.SetDefault(l)

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting timetracker")

	if logCloser != nil {
		return logCloser.Close()
	}

	return nil
}

// IsCancelled reports whether err means the user declined a confirmation.
func IsCancelled(err error) bool {
	return errors.Is(err, errCancelled)
}
