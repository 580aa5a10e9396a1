// Package notify shows desktop notifications and delivers auto-pause
// prompts when no dashboard is attached.
package notify

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/timetrackerpro/timetracker/internal/timeutil"
	"github.com/timetrackerpro/timetracker/tracker"
)

// Notifier sends desktop notifications through beeep, optionally followed
// by a short chime.
type Notifier struct {
	logger *slog.Logger
	send   func(title, message, icon string) error
	play   func() error
	icon   string
	sound  atomic.Bool
}

// New returns a Notifier. icon may be empty.
func New(icon string, sound bool, logger *slog.Logger) *Notifier {
	n := &Notifier{
		logger: logger,
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
		play: playChime,
		icon: icon,
	}

	n.sound.Store(sound)

	return n
}

// SetSound turns the chime on or off.
func (n *Notifier) SetSound(enabled bool) {
	n.sound.Store(enabled)
}

// Notify shows a notification. The chime plays in the background.
func (n *Notifier) Notify(title, message string) error {
	err := n.send(title, message, n.icon)
	if err != nil {
		return err
	}

	if n.sound.Load() {
		go func() {
			if err := n.play(); err != nil {
				n.logger.Debug("unable to play chime", slog.Any("error", err))
			}
		}()
	}

	return nil
}

// Prompter reports auto-pause events as notifications. It is used when
// the tracker runs without the dashboard, so there is nobody to answer a
// question and the offer to resume is informational. Nothing is shown
// while notifications are disabled.
type Prompter struct {
	notifier tracker.Notifier
	logger   *slog.Logger
	enabled  atomic.Bool
}

// NewPrompter returns a Prompter that notifies through n.
func NewPrompter(n tracker.Notifier, enabled bool, logger *slog.Logger) *Prompter {
	p := &Prompter{notifier: n, logger: logger}
	p.enabled.Store(enabled)

	return p
}

// SetEnabled turns the notifications on or off.
func (p *Prompter) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

func (p *Prompter) Paused(stopped tracker.Category, state tracker.PauseState) {
	p.send(PausedMessage(stopped, state))
}

func (p *Prompter) OfferResume(reason tracker.LockReason, lockedFor time.Duration) {
	title, msg := ResumeMessage(reason, lockedFor)
	p.send(title, msg+" The timer stays stopped.")
}

func (p *Prompter) send(title, message string) {
	if !p.enabled.Load() {
		return
	}

	if err := p.notifier.Notify(title, message); err != nil {
		p.logger.Warn(
			"unable to display notification",
			slog.String("title", title),
			slog.Any("error", err),
		)
	}
}

// PausedMessage describes an automatic pause.
func PausedMessage(stopped tracker.Category, state tracker.PauseState) (title, message string) {
	title = "Timer paused"

	if state == tracker.PausedOutsideHours {
		return title, fmt.Sprintf(
			"%s stopped because the screen was locked outside work hours.",
			stopped.Label(),
		)
	}

	return title, fmt.Sprintf(
		"%s stopped because the screen was locked.",
		stopped.Label(),
	)
}

// ResumeMessage describes the break that just ended.
func ResumeMessage(reason tracker.LockReason, lockedFor time.Duration) (title, message string) {
	away := timeutil.Humanize(lockedFor)

	switch reason {
	case tracker.LunchBreak:
		return "Welcome back from lunch", fmt.Sprintf("You were away for %s.", away)
	default:
		return "Welcome back", fmt.Sprintf("You were away for %s.", away)
	}
}
