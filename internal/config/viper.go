package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/timetrackerpro/timetracker/internal/osutil"
)

// Keys of the settings file.
const (
	keyAppTracking           = "tracking.app_tracking"
	keyTargetWorkHours       = "tracking.target_work_hours"
	keyDataRetentionDays     = "tracking.data_retention_days"
	keySessionCmd            = "tracking.cmd"
	keyWorkHoursStart        = "work_hours.start"
	keyWorkHoursEnd          = "work_hours.end"
	keyIncludeWeekends       = "work_hours.include_weekends"
	keyAutoPauseEnabled      = "auto_pause.enabled"
	keyOnlyDuringWorkHours   = "auto_pause.only_during_work_hours"
	keyOutsideWorkHours      = "auto_pause.outside_work_hours"
	keyMinimumPauseSeconds   = "auto_pause.minimum_pause_seconds"
	keyLunchThresholdMinutes = "auto_pause.lunch_threshold_minutes"
	keyAskBeforeResuming     = "auto_pause.ask_before_resuming"
	keyAskToResumeAfterPause = "auto_pause.ask_to_resume_after_pause"
	keyNotificationsEnabled  = "notifications.enabled"
	keyWorkTimeMonitoring    = "notifications.work_time_monitoring"
	keyNotificationSound     = "notifications.sound"
	keyShowSeconds           = "display.show_seconds"
	keyTwentyFourHour        = "display.24hr_clock"
	keyShowDate              = "display.show_date"
	keyDarkTheme             = "display.dark_theme"
)

var defaults = []struct {
	key   string
	value any
}{
	{keyAppTracking, false},
	{keyTargetWorkHours, 8.0},
	{keyDataRetentionDays, 0},
	{keySessionCmd, ""},
	{keyWorkHoursStart, "09:00"},
	{keyWorkHoursEnd, "17:00"},
	{keyIncludeWeekends, false},
	{keyAutoPauseEnabled, false},
	{keyOnlyDuringWorkHours, true},
	{keyOutsideWorkHours, true},
	{keyMinimumPauseSeconds, 10},
	{keyLunchThresholdMinutes, 10},
	{keyAskBeforeResuming, true},
	{keyAskToResumeAfterPause, true},
	{keyNotificationsEnabled, false},
	{keyWorkTimeMonitoring, true},
	{keyNotificationSound, true},
	{keyShowSeconds, true},
	{keyTwentyFourHour, false},
	{keyShowDate, false},
	{keyDarkTheme, true},
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	for _, d := range defaults {
		v.SetDefault(d.key, d.value)
	}

	return v
}

// WithViperConfig returns an Option that loads configuration from the file
// at configPath. The file is created with the current values when it does
// not exist, so answers from the first-run prompt are persisted.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := newViper(configPath)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if c.prompted != nil {
			for key, value := range c.prompted {
				v.Set(key, value)
			}
		}

		err = os.MkdirAll(filepath.Dir(configPath), osutil.DirPermission)
		if err != nil {
			return errWriteConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	cli := c.CLI

	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	c.CLI = cli
	c.prompted = nil

	return nil
}

// Watch reloads the file at configPath whenever it changes and passes
// every valid result to onChange. Invalid edits are logged and ignored.
func Watch(configPath string, logger *slog.Logger, onChange func(*Config)) error {
	v := newViper(configPath)

	if err := v.ReadInConfig(); err != nil {
		return errReadConfig.Wrap(err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		cfg := &Config{}

		err := loadViperConfig(v, cfg)
		if err == nil {
			err = cfg.Validate()
		}

		if err != nil {
			logger.Warn(
				"ignoring invalid config change",
				slog.String("path", e.Name),
				slog.Any("error", err),
			)

			return
		}

		logger.Info(
			"config reloaded",
			slog.String("path", e.Name),
			slog.String("config", cfg.String()),
		)

		onChange(cfg)
	})

	v.WatchConfig()

	return nil
}
