package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetrackerpro/timetracker/internal/timeutil"
	"github.com/timetrackerpro/timetracker/tracker"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *Config {
	return &Config{
		Tracking: TrackingConfig{
			TargetWorkHours: 8,
		},
		WorkHours: WorkHoursConfig{
			Start: "09:00",
			End:   "17:00",
		},
		AutoPause: AutoPauseConfig{
			MinimumPauseSeconds:   10,
			LunchThresholdMinutes: 10,
			OnlyDuringWorkHours:   true,
			OutsideWorkHours:      true,
			AskBeforeResuming:     true,
			AskToResumeAfterPause: true,
		},
		Notifications: NotificationConfig{
			WorkTimeMonitoring: true,
			Sound:              true,
		},
		Display: DisplayConfig{
			ShowSeconds: true,
			DarkTheme:   true,
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "timetracker", "config.yml")

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	if diff := cmp.Diff(defaultConfig(), cfg, cmp.AllowUnexported(Config{})); diff != "" {
		t.Fatalf("default config mismatch (-want +got):\n%s", diff)
	}

	_, err = os.Stat(configPath)
	assert.NoError(t, err, "default config should be written")

	again, err := New(WithViperConfig(configPath))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	data := []byte(`tracking:
  app_tracking: true
  target_work_hours: 7.5
work_hours:
  start: "08:30"
  end: "16:00"
  include_weekends: true
auto_pause:
  enabled: true
  minimum_pause_seconds: 30
display:
  24hr_clock: true
`)
	require.NoError(t, os.WriteFile(configPath, data, 0o600))

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	want := defaultConfig()
	want.Tracking.AppTracking = true
	want.Tracking.TargetWorkHours = 7.5
	want.WorkHours = WorkHoursConfig{Start: "08:30", End: "16:00", IncludeWeekends: true}
	want.AutoPause.Enabled = true
	want.AutoPause.MinimumPauseSeconds = 30
	want.Display.TwentyFourHour = true

	assert.Equal(t, want, cfg)
}

func TestPromptAnswersAreWritten(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	prompted := func(c *Config) error {
		applyPromptOptions(c, PromptOptions{
			WorkStart:     "08:00",
			WorkEnd:       "16:00",
			TargetHours:   6,
			AutoPause:     true,
			Notifications: true,
		})

		return nil
	}

	_, err := New(prompted, WithViperConfig(configPath))
	require.NoError(t, err)

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, "08:00", cfg.WorkHours.Start)
	assert.Equal(t, "16:00", cfg.WorkHours.End)
	assert.InDelta(t, 6.0, cfg.Tracking.TargetWorkHours, 1e-9)
	assert.True(t, cfg.AutoPause.Enabled)
	assert.True(t, cfg.Notifications.Enabled)
	assert.False(t, cfg.Tracking.AppTracking)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *Config)
		want   error
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "malformed start",
			modify: func(c *Config) { c.WorkHours.Start = "9am" },
			want:   errInvalidWorkHours,
		},
		{
			name:   "end before start",
			modify: func(c *Config) { c.WorkHours.End = "08:00" },
			want:   errWorkHoursOrder,
		},
		{
			name:   "target too large",
			modify: func(c *Config) { c.Tracking.TargetWorkHours = 30 },
			want:   errInvalidTarget,
		},
		{
			name:   "negative retention",
			modify: func(c *Config) { c.Tracking.DataRetentionDays = -1 },
			want:   errNegativeRetention,
		},
		{
			name:   "zero minimum pause",
			modify: func(c *Config) { c.AutoPause.MinimumPauseSeconds = 0 },
			want:   errInvalidThreshold,
		},
		{
			name: "lunch threshold not above minimum pause",
			modify: func(c *Config) {
				c.AutoPause.MinimumPauseSeconds = 600
				c.AutoPause.LunchThresholdMinutes = 5
			},
			want: errThresholdOrder,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSettings(t *testing.T) {
	cfg := defaultConfig()
	cfg.WorkHours.Start = "08:15"
	cfg.AutoPause.Enabled = true
	cfg.AutoPause.OutsideWorkHours = false
	cfg.Tracking.Cmd = "notify-send done"
	cfg.Notifications.Enabled = true

	s := cfg.Settings()

	assert.Equal(t, timeutil.TimeOfDay{Hour: 8, Minute: 15}, s.WorkHours.Start)
	assert.Equal(t, timeutil.TimeOfDay{Hour: 17}, s.WorkHours.End)
	assert.True(t, s.AutoPause.Enabled)
	assert.False(t, s.AutoPause.PauseOutsideWorkHours)
	assert.Equal(t, 10, s.AutoPause.MinimumPauseSeconds)
	assert.Equal(t, "notify-send done", s.SessionCmd)
	assert.True(t, s.Notify)
	assert.True(t, s.MonitorWorkTime)

	assert.Equal(t, tracker.DefaultSettings().AutoPause.Thresholds, s.AutoPause.Thresholds)
}

func TestApplyCLIOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Notifications.Enabled = true

	err := applyCLIOptions(cfg, CLIOptions{
		Start:         "lunch",
		Headless:      true,
		DisableNotify: true,
		AppTracking:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, tracker.Lunch, cfg.CLI.StartCategory)
	assert.True(t, cfg.CLI.Headless)
	assert.False(t, cfg.Notifications.Enabled)
	assert.True(t, cfg.Tracking.AppTracking)

	err = applyCLIOptions(cfg, CLIOptions{Start: "nap"})
	assert.ErrorIs(t, err, errInvalidCategory)
}
