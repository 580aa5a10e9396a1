package tracker

import (
	"strings"

	"github.com/timetrackerpro/timetracker/internal/apperr"
)

// Category is the kind of activity a timer is tracking. Only one category
// can be running at a time.
type Category string

const (
	Work   Category = "work"
	Coffee Category = "coffee"
	Lunch  Category = "lunch"
)

var errUnknownCategory = &apperr.Error{
	Message: "unknown category %q: expected work, coffee or lunch",
}

// Categories lists every category in display order.
var Categories = []Category{Work, Coffee, Lunch}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", errUnknownCategory.Fmt(s)
	}

	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Work, Coffee, Lunch:
		return true
	}

	return false
}

// IsBreak reports whether c counts as break time.
func (c Category) IsBreak() bool {
	return c == Coffee || c == Lunch
}

// Label is the human readable name of the category.
func (c Category) Label() string {
	switch c {
	case Work:
		return "Work"
	case Coffee:
		return "Coffee break"
	case Lunch:
		return "Lunch"
	}

	return "Idle"
}

// Symbol is a short glyph for compact views.
func (c Category) Symbol() string {
	switch c {
	case Work:
		return "💼"
	case Coffee:
		return "☕"
	case Lunch:
		return "🍽"
	}

	return "⏸"
}

// Color is the accent colour used when rendering the category.
func (c Category) Color() string {
	switch c {
	case Work:
		return "#4C8BF5"
	case Coffee:
		return "#F59E0B"
	case Lunch:
		return "#22C55E"
	}

	return "#9CA3AF"
}
