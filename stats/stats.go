// Package stats reports the tracked time of a day and exports the session
// history
package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/pterm/pterm"

	"github.com/timetrackerpro/timetracker/internal/timeutil"
	"github.com/timetrackerpro/timetracker/internal/ui"
	"github.com/timetrackerpro/timetracker/tracker"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sessions found for %s"

	maxAppNameWidth = 32
	topApps         = 10

	dayLayout  = "Monday, January 02, 2006"
	timeLayout = "15:04"
)

// Options control the output of Day.
type Options struct {
	Stdout          io.Writer
	TargetWorkHours float64
	TwentyFourHour  bool
}

func (o *Options) clock(t time.Time) string {
	if o.TwentyFourHour {
		return t.Format(timeLayout)
	}

	return t.Format("03:04 PM")
}

// getSummary renders the work, break and goal totals of the day.
func getSummary(store *tracker.SessionStore, day time.Time, opts *Options) string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	work := store.WorkSeconds(day)
	breaks := store.BreakSeconds(day)

	var b strings.Builder

	b.WriteString(header)
	b.WriteString(fmt.Sprintf("Work: %s\n", ui.Green(timeutil.FormatShort(work))))
	b.WriteString(fmt.Sprintf("Breaks: %s\n", ui.Green(timeutil.FormatShort(breaks))))
	b.WriteString(fmt.Sprintf("Total: %s\n", ui.Green(timeutil.FormatShort(store.TotalSeconds(day)))))

	if opts.TargetWorkHours > 0 {
		pct := timeutil.Round(float64(work) / (opts.TargetWorkHours * 3600) * 100)
		b.WriteString(fmt.Sprintf(
			"Goal: %s of %s\n",
			ui.Green(fmt.Sprintf("%d%%", pct)),
			timeutil.FormatShort(int(opts.TargetWorkHours*3600)),
		))
	}

	return b.String()
}

// sessionRows builds the session table of the day, oldest first.
func sessionRows(sessions []tracker.Session, opts *Options) [][]string {
	rows := [][]string{
		{"#", "START", "END", "CATEGORY", "DURATION", "APPS"},
	}

	for i := len(sessions) - 1; i >= 0; i-- {
		sess := sessions[i]

		end := "running"
		if sess.EndTime != nil {
			end = opts.clock(*sess.EndTime)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", len(rows)),
			opts.clock(sess.StartTime),
			end,
			ui.Category(sess.Category),
			timeutil.FormatTimer(sess.DurationSeconds),
			fmt.Sprintf("%d", len(sess.AppUsages)),
		})
	}

	return rows
}

// getApps renders the applications used during work on day.
func getApps(store *tracker.SessionStore, day time.Time) string {
	usage := store.AggregatedAppUsage(day, tracker.Work)
	if len(usage) == 0 {
		return ""
	}

	if len(usage) > topApps {
		usage = usage[:topApps]
	}

	var bars pterm.Bars

	for _, u := range usage {
		bars = append(bars, pterm.Bar{
			Label: ansi.Truncate(u.AppName, maxAppNameWidth, "…"),
			Value: u.DurationSeconds / 60,
		})
	}

	return fmt.Sprintf("\n%s\n", ui.Blue("Applications (minutes)")) + renderBars(bars)
}

// getHourly renders the work minutes per hour of day.
func getHourly(sessions []tracker.Session) string {
	var minutes [24]int

	for i := range sessions {
		sess := sessions[i]
		if sess.Category != tracker.Work || sess.EndTime == nil {
			continue
		}

		for t := sess.StartTime; t.Before(*sess.EndTime); t = t.Add(time.Minute) {
			if timeutil.SameDay(t, sess.StartTime) {
				minutes[t.Hour()]++
			}
		}
	}

	var bars pterm.Bars

	for h, m := range minutes {
		if m == 0 {
			continue
		}

		bars = append(bars, pterm.Bar{
			Label: fmt.Sprintf("%02d:00", h),
			Value: m,
		})
	}

	if len(bars) == 0 {
		return ""
	}

	return fmt.Sprintf("\n%s\n", ui.Blue("Hourly breakdown (minutes)")) + renderBars(bars)
}

func renderBars(bars pterm.Bars) string {
	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return chart
}

// Day prints the report of a single day.
func Day(store *tracker.SessionStore, day time.Time, opts *Options) {
	sessions := store.SessionsForDay(day)
	if len(sessions) == 0 {
		pterm.Info.WithWriter(opts.Stdout).Printfln(noSessionsMsg, day.Format(dayLayout))
		return
	}

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("Report for %s", day.Format(dayLayout))

	fmt.Fprint(opts.Stdout, header)
	fmt.Fprintln(opts.Stdout, getSummary(store, day, opts))

	ui.PrintTable(sessionRows(sessions, opts), opts.Stdout)

	fmt.Fprintln(opts.Stdout, strings.TrimSpace(getApps(store, day)+getHourly(sessions)))
}

// Days prints one line per day that has sessions, newest first.
func Days(store *tracker.SessionStore, opts *Options) {
	days := store.DaysWithSessions()
	if len(days) == 0 {
		pterm.Info.WithWriter(opts.Stdout).Println("No sessions have been recorded yet")
		return
	}

	rows := [][]string{{"DATE", "WORK", "BREAKS", "SESSIONS"}}

	for _, d := range days {
		rows = append(rows, []string{
			d.Format("Mon, Jan 02 2006"),
			timeutil.FormatShort(store.WorkSeconds(d)),
			timeutil.FormatShort(store.BreakSeconds(d)),
			fmt.Sprintf("%d", len(store.SessionsForDay(d))),
		})
	}

	ui.PrintTable(rows, opts.Stdout)
}
