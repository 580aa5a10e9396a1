package tracker

import (
	"time"

	"github.com/timetrackerpro/timetracker/internal/timeutil"
)

// WorkHours is the daily window in which the user is expected to work.
type WorkHours struct {
	Start           timeutil.TimeOfDay
	End             timeutil.TimeOfDay
	IncludeWeekends bool
}

// Contains reports whether t falls on a work day and between Start and End,
// both inclusive, at minute precision.
func (w WorkHours) Contains(t time.Time) bool {
	if !w.IncludeWeekends && timeutil.IsWeekend(t) {
		return false
	}

	m := timeutil.Of(t).Minutes()

	return m >= w.Start.Minutes() && m <= w.End.Minutes()
}

// AutoPauseConfig controls how the tracker reacts to the machine being
// locked.
type AutoPauseConfig struct {
	Enabled               bool
	OnlyDuringWorkHours   bool
	PauseOutsideWorkHours bool
	AskBeforeResuming     bool
	AskToResumeAfterPause bool
	Thresholds
}

// Settings is the runtime configuration of a Tracker.
type Settings struct {
	WorkHours       WorkHours
	SessionCmd      string
	AutoPause       AutoPauseConfig
	TargetWorkHours float64
	RetentionDays   int
	AppTracking     bool
	// Notify enables desktop notifications.
	Notify bool
	// MonitorWorkTime enables the daily goal notification.
	MonitorWorkTime bool
}

// DefaultSettings mirrors the defaults of the configuration file.
func DefaultSettings() Settings {
	return Settings{
		TargetWorkHours: 8,
		WorkHours: WorkHours{
			Start: timeutil.TimeOfDay{Hour: 9},
			End:   timeutil.TimeOfDay{Hour: 17},
		},
		AutoPause: AutoPauseConfig{
			OnlyDuringWorkHours:   true,
			PauseOutsideWorkHours: true,
			AskBeforeResuming:     true,
			AskToResumeAfterPause: true,
			Thresholds: Thresholds{
				MinimumPauseSeconds:   10,
				LunchThresholdMinutes: 10,
			},
		},
		MonitorWorkTime: true,
	}
}
