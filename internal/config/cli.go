package config

import (
	"github.com/urfave/cli/v2"

	"github.com/timetrackerpro/timetracker/tracker"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Start         string
	Cmd           string
	Headless      bool
	DisableNotify bool
	AppTracking   bool
	AutoPause     bool
}

// WithCLIConfig returns an Option that applies command-line flags on top of
// the settings file.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Start:         ctx.String("start"),
			Cmd:           ctx.String("session-cmd"),
			Headless:      ctx.Bool("headless"),
			DisableNotify: ctx.Bool("disable-notification"),
			AppTracking:   ctx.Bool("track-apps"),
			AutoPause:     ctx.Bool("auto-pause"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Start != "" {
		category, err := tracker.ParseCategory(opts.Start)
		if err != nil {
			return errInvalidCategory.Fmt(opts.Start)
		}

		c.CLI.StartCategory = category
	}

	c.CLI.Headless = opts.Headless

	if opts.Cmd != "" {
		c.Tracking.Cmd = opts.Cmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.AppTracking {
		c.Tracking.AppTracking = true
	}

	if opts.AutoPause {
		c.AutoPause.Enabled = true
	}

	return nil
}
