package tracker

import (
	"time"
)

// AppUsage records how long an application was in the foreground during a
// work session.
type AppUsage struct {
	Date            time.Time `json:"date"`
	AppID           string    `json:"app_id"`
	AppName         string    `json:"app_name"`
	Category        Category  `json:"category"`
	DurationSeconds int       `json:"duration"`
}

// Session is one continuous run of a single timer category. A session
// without an end time is still open.
type Session struct {
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	ID              string     `json:"id"`
	Category        Category   `json:"category"`
	AppUsages       []AppUsage `json:"app_usages,omitempty"`
	DurationSeconds int        `json:"duration"`
}

// IsOpen reports whether the session is still running.
func (s *Session) IsOpen() bool {
	return s.EndTime == nil
}

// Accumulators hold the running totals of each category in seconds. They are
// kept independently of the session history.
type Accumulators struct {
	Work   int `json:"work"`
	Coffee int `json:"coffee"`
	Lunch  int `json:"lunch"`
}

// Get returns the total for c.
func (a Accumulators) Get(c Category) int {
	switch c {
	case Work:
		return a.Work
	case Coffee:
		return a.Coffee
	case Lunch:
		return a.Lunch
	}

	return 0
}

func (a *Accumulators) add(c Category, secs int) {
	switch c {
	case Work:
		a.Work += secs
	case Coffee:
		a.Coffee += secs
	case Lunch:
		a.Lunch += secs
	}
}

// Max returns the largest of the three totals.
func (a Accumulators) Max() int {
	return max(a.Work, a.Coffee, a.Lunch)
}

// State describes the timer that is currently running, if any.
type State struct {
	Current  *Session
	Category Category
	Running  bool
}
