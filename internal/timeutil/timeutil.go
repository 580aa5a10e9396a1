// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/markusmobius/go-dateparser"

	"github.com/timetrackerpro/timetracker/internal/apperr"
)

const (
	secondsInAMinute = 60
	secondsInAnHour  = 3600
	minutesInAnHour  = 60
)

var (
	errInvalidTimeOfDay = &apperr.Error{
		Message: "invalid time of day %q: expected HH:MM",
	}

	errInvalidDate = &apperr.Error{
		Message: "unable to understand date %q",
	}
)

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// NextDay returns the start of the day after t. It is computed on the
// calendar so that days with a DST transition still span a single day.
func NextDay(t time.Time) time.Time {
	start := RoundToStart(t)

	return time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, start.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())

	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()

	return wd == time.Saturday || wd == time.Sunday
}

// DayKey formats the calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a value in the 24 hour HH:MM format.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return TimeOfDay{}, errInvalidTimeOfDay.Fmt(s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, errInvalidTimeOfDay.Fmt(s)
	}

	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, errInvalidTimeOfDay.Fmt(s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*minutesInAnHour + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Of returns the time of day of t, truncated to the minute.
func Of(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// FromStr parses a date expressed in absolute or relative terms (e.g.
// "yesterday", "3 days ago", "2026-10-01") relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, errInvalidDate.Fmt(s)
	}

	return dt.Time, nil
}

// FormatTimer renders seconds like a stopwatch: MM:SS below an hour and
// H:MM:SS above.
func FormatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / secondsInAnHour
	minutes := (seconds % secondsInAnHour) / secondsInAMinute
	secs := seconds % secondsInAMinute

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}

	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatShort renders seconds as "1h 05m" or "12m".
func FormatShort(seconds int) string {
	hours := seconds / secondsInAnHour
	minutes := (seconds % secondsInAnHour) / secondsInAMinute

	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}

	return fmt.Sprintf("%dm", minutes)
}

// Humanize renders a duration in words, keeping the two most significant
// units.
func Humanize(d time.Duration) string {
	if d < time.Second {
		return "0 seconds"
	}

	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(2).String()
}
