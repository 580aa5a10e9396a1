package tracker

import (
	"log/slog"
	"time"
)

// SignalKind is an operating system event that locks or unlocks the
// session.
type SignalKind int

const (
	ScreenLocked SignalKind = iota
	SystemSleep
	ScreensaverStarted
	ScreenUnlocked
	SystemWake
	ScreensaverStopped
)

func (k SignalKind) String() string {
	switch k {
	case ScreenLocked:
		return "screen locked"
	case SystemSleep:
		return "system sleeping"
	case ScreensaverStarted:
		return "screensaver started"
	case ScreenUnlocked:
		return "screen unlocked"
	case SystemWake:
		return "system woke up"
	case ScreensaverStopped:
		return "screensaver stopped"
	}

	return "unknown"
}

// Locks reports whether the signal means the user has left the machine.
func (k SignalKind) Locks() bool {
	return k == ScreenLocked || k == SystemSleep || k == ScreensaverStarted
}

// Signal is a lock related event observed by the platform. A zero At means
// the event happened when it was received.
type Signal struct {
	At   time.Time
	Kind SignalKind
}

// LockReason classifies how long the machine stayed locked.
type LockReason int

const (
	// Ignored locks were too short to count as a break.
	Ignored LockReason = iota
	// CoffeeBreak locks were long enough to count as a short break.
	CoffeeBreak
	// LunchBreak locks reached the lunch threshold.
	LunchBreak
)

func (r LockReason) String() string {
	switch r {
	case Ignored:
		return "ignored"
	case CoffeeBreak:
		return "coffee"
	case LunchBreak:
		return "lunch"
	}

	return "unknown"
}

// Thresholds decide how a lock duration is classified.
type Thresholds struct {
	MinimumPauseSeconds   int
	LunchThresholdMinutes int
}

// Classify maps a lock duration to a reason. Locks shorter than the
// minimum pause are ignored, locks reaching the lunch threshold are lunch
// breaks and everything in between is a coffee break.
func (t Thresholds) Classify(d time.Duration) LockReason {
	switch {
	case d < time.Duration(t.MinimumPauseSeconds)*time.Second:
		return Ignored
	case d < time.Duration(t.LunchThresholdMinutes)*time.Minute:
		return CoffeeBreak
	default:
		return LunchBreak
	}
}

// LockListener is notified when the machine becomes locked or unlocked.
type LockListener interface {
	Locked(at time.Time)
	Unlocked(lockedFor time.Duration, reason LockReason)
}

// LockMonitor tracks whether the machine is locked and measures how long
// each lock lasted. Repeated signals of the same kind are ignored.
type LockMonitor struct {
	clock      Clock
	listener   LockListener
	logger     *slog.Logger
	lockedAt   time.Time
	thresholds Thresholds
	locked     bool
}

// NewLockMonitor returns an unlocked monitor that reports to listener.
func NewLockMonitor(
	clock Clock,
	thresholds Thresholds,
	listener LockListener,
	logger *slog.Logger,
) *LockMonitor {
	return &LockMonitor{
		clock:      clock,
		thresholds: thresholds,
		listener:   listener,
		logger:     logger,
	}
}

// SetThresholds replaces the classification thresholds.
func (m *LockMonitor) SetThresholds(t Thresholds) {
	m.thresholds = t
}

// Handle applies an OS signal to the monitor.
func (m *LockMonitor) Handle(sig Signal) {
	at := sig.At
	if at.IsZero() {
		at = m.clock.Now()
	}

	m.logger.Debug("lock signal", slog.String("kind", sig.Kind.String()))

	if sig.Kind.Locks() {
		m.lock(at)
		return
	}

	m.unlock(at)
}

func (m *LockMonitor) lock(at time.Time) {
	if m.locked {
		return
	}

	m.locked = true
	m.lockedAt = at

	m.listener.Locked(at)
}

func (m *LockMonitor) unlock(at time.Time) {
	if !m.locked {
		return
	}

	d := max(at.Sub(m.lockedAt), 0)
	reason := m.thresholds.Classify(d)

	m.locked = false
	m.lockedAt = time.Time{}

	m.logger.Info(
		"system unlocked",
		slog.Duration("locked_for", d),
		slog.String("reason", reason.String()),
	)

	m.listener.Unlocked(d, reason)
}

// Locked reports whether the machine is currently locked.
func (m *LockMonitor) Locked() bool {
	return m.locked
}

// CurrentLockDuration returns how long the machine has been locked. The
// second value is false when it is not locked.
func (m *LockMonitor) CurrentLockDuration() (time.Duration, bool) {
	if !m.locked {
		return 0, false
	}

	return m.clock.Now().Sub(m.lockedAt), true
}
