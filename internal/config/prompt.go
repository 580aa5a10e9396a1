package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
████████╗██╗███╗   ███╗███████╗
╚══██╔══╝██║████╗ ████║██╔════╝
   ██║   ██║██╔████╔██║█████╗
   ██║   ██║██║╚██╔╝██║██╔══╝
   ██║   ██║██║ ╚═╝ ██║███████╗
   ╚═╝   ╚═╝╚═╝     ╚═╝╚══════╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	WorkStart       string
	WorkEnd         string
	TargetHours     float64
	AutoPause       bool
	AppTracking     bool
	Notifications   bool
	IncludeWeekends bool
}

// WithPromptConfig returns an Option that asks for the most important
// settings when no settings file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

func hourOptions(hours []string, selected string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(hours))

	for _, h := range hours {
		opts = append(opts, huh.NewOption(h, h).Selected(h == selected))
	}

	return opts
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		WorkStart:   "09:00",
		WorkEnd:     "17:00",
		TargetHours: 8,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure timetracker for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'timetracker edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Your work day starts at").
				Options(hourOptions(
					[]string{"07:00", "08:00", "08:30", "09:00", "09:30", "10:00"},
					opts.WorkStart,
				)...).
				Value(&opts.WorkStart),
			huh.NewSelect[string]().
				Title("Your work day ends at").
				Options(hourOptions(
					[]string{"15:00", "16:00", "16:30", "17:00", "17:30", "18:00", "19:00"},
					opts.WorkEnd,
				)...).
				Value(&opts.WorkEnd),
			huh.NewConfirm().
				Title("Do you work on weekends?").
				Value(&opts.IncludeWeekends),
		),
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Daily work goal").
				Options(
					huh.NewOption("6 hours", 6.0),
					huh.NewOption("7 hours", 7.0),
					huh.NewOption("7.5 hours", 7.5),
					huh.NewOption("8 hours", 8.0).Selected(true),
					huh.NewOption("9 hours", 9.0),
				).
				Value(&opts.TargetHours),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Pause the timer when the screen is locked?").
				Value(&opts.AutoPause),
			huh.NewConfirm().
				Title("Record which applications you use while working?").
				Value(&opts.AppTracking),
			huh.NewConfirm().
				Title("Show desktop notifications?").
				Value(&opts.Notifications),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.prompted = map[string]any{
		keyWorkHoursStart:       opts.WorkStart,
		keyWorkHoursEnd:         opts.WorkEnd,
		keyIncludeWeekends:      opts.IncludeWeekends,
		keyTargetWorkHours:      opts.TargetHours,
		keyAutoPauseEnabled:     opts.AutoPause,
		keyAppTracking:          opts.AppTracking,
		keyNotificationsEnabled: opts.Notifications,
	}
}
