package config

import (
	"time"

	"github.com/timetrackerpro/timetracker/internal/timeutil"
)

var (
	minTargetHours = 0.5
	maxTargetHours = 24.0

	minPauseSeconds = 1
	maxPauseSeconds = 3600

	minLunchMinutes = 1
	maxLunchMinutes = 240
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateWorkHours(); err != nil {
		return err
	}

	if err := c.validateTracking(); err != nil {
		return err
	}

	return c.validateAutoPause()
}

func (c *Config) validateWorkHours() error {
	start, err := timeutil.ParseTimeOfDay(c.WorkHours.Start)
	if err != nil {
		return errInvalidWorkHours.Fmt("start", c.WorkHours.Start)
	}

	end, err := timeutil.ParseTimeOfDay(c.WorkHours.End)
	if err != nil {
		return errInvalidWorkHours.Fmt("end", c.WorkHours.End)
	}

	if start.Minutes() >= end.Minutes() {
		return errWorkHoursOrder.Fmt(start, end)
	}

	return nil
}

func (c *Config) validateTracking() error {
	if c.Tracking.TargetWorkHours < minTargetHours ||
		c.Tracking.TargetWorkHours > maxTargetHours {
		return errInvalidTarget.Fmt(minTargetHours, maxTargetHours)
	}

	if c.Tracking.DataRetentionDays < 0 {
		return errNegativeRetention
	}

	return nil
}

func (c *Config) validateAutoPause() error {
	ap := c.AutoPause

	if ap.MinimumPauseSeconds < minPauseSeconds ||
		ap.MinimumPauseSeconds > maxPauseSeconds {
		return errInvalidThreshold.Fmt(
			"minimum_pause_seconds",
			minPauseSeconds,
			maxPauseSeconds,
		)
	}

	if ap.LunchThresholdMinutes < minLunchMinutes ||
		ap.LunchThresholdMinutes > maxLunchMinutes {
		return errInvalidThreshold.Fmt(
			"lunch_threshold_minutes",
			minLunchMinutes,
			maxLunchMinutes,
		)
	}

	minPause := time.Duration(ap.MinimumPauseSeconds) * time.Second
	lunch := time.Duration(ap.LunchThresholdMinutes) * time.Minute

	if lunch <= minPause {
		return errThresholdOrder.Fmt(
			ap.LunchThresholdMinutes,
			ap.MinimumPauseSeconds,
		)
	}

	return nil
}
