// Package ui holds the colour and table helpers shared by the
// non-interactive commands.
package ui

import (
	"github.com/pterm/pterm"

	"github.com/timetrackerpro/timetracker/tracker"
)

// DarkTheme selects the light variants of each colour.
var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Blue(a any) string {
	if DarkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

// Category renders the label of c in the colour used for it elsewhere.
func Category(c tracker.Category) string {
	switch c {
	case tracker.Work:
		return Green(c.Label())
	case tracker.Coffee:
		return Yellow(c.Label())
	case tracker.Lunch:
		return Blue(c.Label())
	}

	return c.Label()
}
