// Package config loads the timetracker settings file and converts it into
// the runtime settings of the tracker.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/timetrackerpro/timetracker/internal/timeutil"
	"github.com/timetrackerpro/timetracker/tracker"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Tracking      TrackingConfig     `mapstructure:"tracking"`
		WorkHours     WorkHoursConfig    `mapstructure:"work_hours"`
		AutoPause     AutoPauseConfig    `mapstructure:"auto_pause"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		CLI           CLIConfig          `mapstructure:"-"`

		// prompted holds first-run answers keyed by setting name. They are
		// written into the new settings file.
		prompted map[string]any
	}

	// TrackingConfig holds the history and goal settings.
	TrackingConfig struct {
		Cmd               string  `mapstructure:"cmd"`
		TargetWorkHours   float64 `mapstructure:"target_work_hours"`
		DataRetentionDays int     `mapstructure:"data_retention_days"`
		AppTracking       bool    `mapstructure:"app_tracking"`
	}

	// WorkHoursConfig is the daily work window in "HH:MM" form.
	WorkHoursConfig struct {
		Start           string `mapstructure:"start"`
		End             string `mapstructure:"end"`
		IncludeWeekends bool   `mapstructure:"include_weekends"`
	}

	// AutoPauseConfig controls the reaction to the machine being locked.
	AutoPauseConfig struct {
		MinimumPauseSeconds   int  `mapstructure:"minimum_pause_seconds"`
		LunchThresholdMinutes int  `mapstructure:"lunch_threshold_minutes"`
		Enabled               bool `mapstructure:"enabled"`
		OnlyDuringWorkHours   bool `mapstructure:"only_during_work_hours"`
		OutsideWorkHours      bool `mapstructure:"outside_work_hours"`
		AskBeforeResuming     bool `mapstructure:"ask_before_resuming"`
		AskToResumeAfterPause bool `mapstructure:"ask_to_resume_after_pause"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled            bool `mapstructure:"enabled"`
		WorkTimeMonitoring bool `mapstructure:"work_time_monitoring"`
		Sound              bool `mapstructure:"sound"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		ShowSeconds    bool `mapstructure:"show_seconds"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
		ShowDate       bool `mapstructure:"show_date"`
		DarkTheme      bool `mapstructure:"dark_theme"`
	}

	// CLIConfig holds values that only come from command-line flags.
	CLIConfig struct {
		StartCategory tracker.Category
		Headless      bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.4.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Settings converts the configuration into tracker settings. Validate
// must have succeeded beforehand; unparsable work hours fall back to the
// defaults.
func (c *Config) Settings() tracker.Settings {
	s := tracker.DefaultSettings()

	if start, err := timeutil.ParseTimeOfDay(c.WorkHours.Start); err == nil {
		s.WorkHours.Start = start
	}

	if end, err := timeutil.ParseTimeOfDay(c.WorkHours.End); err == nil {
		s.WorkHours.End = end
	}

	s.WorkHours.IncludeWeekends = c.WorkHours.IncludeWeekends

	s.SessionCmd = c.Tracking.Cmd
	s.TargetWorkHours = c.Tracking.TargetWorkHours
	s.RetentionDays = c.Tracking.DataRetentionDays
	s.AppTracking = c.Tracking.AppTracking

	s.AutoPause = tracker.AutoPauseConfig{
		Enabled:               c.AutoPause.Enabled,
		OnlyDuringWorkHours:   c.AutoPause.OnlyDuringWorkHours,
		PauseOutsideWorkHours: c.AutoPause.OutsideWorkHours,
		AskBeforeResuming:     c.AutoPause.AskBeforeResuming,
		AskToResumeAfterPause: c.AutoPause.AskToResumeAfterPause,
		Thresholds: tracker.Thresholds{
			MinimumPauseSeconds:   c.AutoPause.MinimumPauseSeconds,
			LunchThresholdMinutes: c.AutoPause.LunchThresholdMinutes,
		},
	}

	s.Notify = c.Notifications.Enabled
	s.MonitorWorkTime = c.Notifications.WorkTimeMonitoring

	return s
}

// String is used in debug logs.
func (c *Config) String() string {
	return fmt.Sprintf(
		"work_hours=%s-%s auto_pause=%t app_tracking=%t target=%v",
		c.WorkHours.Start,
		c.WorkHours.End,
		c.AutoPause.Enabled,
		c.Tracking.AppTracking,
		c.Tracking.TargetWorkHours,
	)
}
