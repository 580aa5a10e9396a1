package tracker

import (
	"log/slog"
	"time"
)

// PauseState records why the controller stopped the timer during the
// current lock.
type PauseState int

const (
	// NotPaused means the controller did not stop the timer.
	NotPaused PauseState = iota
	// PausedByLock means the timer was stopped because the machine was
	// locked during work hours.
	PausedByLock
	// PausedOutsideHours means a work timer was stopped because the
	// machine was locked outside work hours.
	PausedOutsideHours
)

func (p PauseState) String() string {
	switch p {
	case NotPaused:
		return "idle"
	case PausedByLock:
		return "paused by lock"
	case PausedOutsideHours:
		return "paused outside work hours"
	}

	return "unknown"
}

// Prompter delivers auto-pause side effects to the user. Implementations
// must not block.
type Prompter interface {
	// Paused is called after the controller stopped the running timer.
	Paused(stopped Category, state PauseState)
	// OfferResume asks the user whether to resume work after a break.
	OfferResume(reason LockReason, lockedFor time.Duration)
}

type timerControl interface {
	Start(c Category)
	Stop()
	State() State
}

// AutoPause stops the running timer when the machine is locked and decides
// what happens when it is unlocked again.
type AutoPause struct {
	clock     Clock
	timer     timerControl
	prompter  Prompter
	logger    *slog.Logger
	cfg       AutoPauseConfig
	workHours WorkHours
	state     PauseState
	notify    bool
}

// NewAutoPause returns a controller in the NotPaused state.
func NewAutoPause(
	clock Clock,
	timer timerControl,
	prompter Prompter,
	logger *slog.Logger,
) *AutoPause {
	return &AutoPause{
		clock:    clock,
		timer:    timer,
		prompter: prompter,
		logger:   logger,
	}
}

// Configure replaces the policy used for subsequent decisions.
func (a *AutoPause) Configure(cfg AutoPauseConfig, hours WorkHours, notify bool) {
	a.cfg = cfg
	a.workHours = hours
	a.notify = notify
}

// State returns the current pause state.
func (a *AutoPause) State() PauseState {
	return a.state
}

// Locked implements LockListener.
func (a *AutoPause) Locked(at time.Time) {
	st := a.timer.State()
	if !st.Running {
		return
	}

	inHours := a.workHours.Contains(at)

	switch {
	case a.cfg.Enabled && (inHours || !a.cfg.OnlyDuringWorkHours):
		a.pause(st.Category, PausedByLock)
	case !inHours && a.cfg.PauseOutsideWorkHours && st.Category == Work:
		a.pause(st.Category, PausedOutsideHours)
	}
}

func (a *AutoPause) pause(c Category, state PauseState) {
	a.timer.Stop()
	a.state = state

	a.logger.Info(
		"timer auto-paused",
		slog.String("category", string(c)),
		slog.String("state", state.String()),
	)

	if a.notify && a.prompter != nil {
		a.prompter.Paused(c, state)
	}
}

// Unlocked implements LockListener. Short locks resume work immediately,
// longer ones may ask the user. The controller always returns to NotPaused.
func (a *AutoPause) Unlocked(lockedFor time.Duration, reason LockReason) {
	state := a.state
	a.state = NotPaused

	var enabled, ask bool

	switch state {
	case NotPaused:
		return
	case PausedByLock:
		enabled, ask = a.cfg.Enabled, a.cfg.AskBeforeResuming
	case PausedOutsideHours:
		enabled, ask = a.cfg.PauseOutsideWorkHours, a.cfg.AskToResumeAfterPause
	}

	if !enabled {
		return
	}

	if reason == Ignored {
		a.logger.Info("resuming work after short lock", slog.Duration("locked_for", lockedFor))
		a.timer.Start(Work)

		return
	}

	if ask && a.prompter != nil {
		a.prompter.OfferResume(reason, lockedFor)
	}
}
