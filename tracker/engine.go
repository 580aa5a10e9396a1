package tracker

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// AccumulatorRepository persists the running category totals.
type AccumulatorRepository interface {
	LoadAccumulators() (Accumulators, error)
	SaveAccumulators(acc Accumulators) error
}

// Engine runs at most one category timer at a time. Stopping a timer closes
// its session and hands it to the SessionStore. Engine is not safe for
// concurrent use; every method must be called on the logical context that
// drives its Scheduler.
type Engine struct {
	clock       Clock
	sched       Scheduler
	sessions    *SessionStore
	sampler     *Sampler
	repo        AccumulatorRepository
	logger      *slog.Logger
	onClose     func(Session)
	current     *Session
	stopTick    func()
	acc         Accumulators
	appTracking bool
}

// EngineOptions holds the collaborators of an Engine.
type EngineOptions struct {
	Clock        Clock
	Scheduler    Scheduler
	Sessions     *SessionStore
	Sampler      *Sampler
	Accumulators AccumulatorRepository
	Logger       *slog.Logger
	// OnClose is called with every session the engine closes.
	OnClose     func(Session)
	AppTracking bool
}

// NewEngine creates an Engine and restores the saved accumulators.
func NewEngine(opts EngineOptions) *Engine {
	e := &Engine{
		clock:       opts.Clock,
		sched:       opts.Scheduler,
		sessions:    opts.Sessions,
		sampler:     opts.Sampler,
		repo:        opts.Accumulators,
		logger:      opts.Logger,
		onClose:     opts.OnClose,
		appTracking: opts.AppTracking,
	}

	acc, err := e.repo.LoadAccumulators()
	if err != nil {
		e.logger.Error("loading accumulators failed", slog.Any("error", err))
	} else {
		e.acc = acc
	}

	return e
}

// SetAppTracking toggles foreground app sampling for work timers started
// from now on.
func (e *Engine) SetAppTracking(enabled bool) {
	e.appTracking = enabled
}

// Start runs the timer for c. A timer that is already running is stopped
// first.
func (e *Engine) Start(c Category) {
	if !c.Valid() {
		e.logger.Warn("ignoring start of unknown category", slog.String("category", string(c)))
		return
	}

	e.Stop()

	e.current = &Session{
		ID:        uuid.NewString(),
		Category:  c,
		StartTime: e.clock.Now(),
	}

	if c == Work && e.appTracking {
		e.sampler.Start()
	}

	e.stopTick = e.sched.Every(time.Second, e.tick)

	e.logger.Info(
		"timer started",
		slog.String("category", string(c)),
		slog.String("session", e.current.ID),
	)
}

func (e *Engine) tick() {
	if e.current == nil {
		return
	}

	e.acc.add(e.current.Category, 1)
	e.saveAccumulators()
}

// Stop closes the open session, if any. The sampler is stopped even when no
// timer is running.
func (e *Engine) Stop() {
	e.sampler.Stop()

	if e.current == nil {
		return
	}

	if e.stopTick != nil {
		e.stopTick()
		e.stopTick = nil
	}

	now := e.clock.Now()

	sess := *e.current
	sess.EndTime = &now
	sess.DurationSeconds = max(int(now.Sub(sess.StartTime)/time.Second), 0)

	if sess.Category == Work {
		sess.AppUsages = e.sampler.Records(sess.Category, sess.StartTime)
	}

	e.current = nil
	e.sampler.Reset()

	e.sessions.Add(sess)

	e.logger.Info(
		"timer stopped",
		slog.String("category", string(sess.Category)),
		slog.String("session", sess.ID),
		slog.Int("duration", sess.DurationSeconds),
	)

	if e.onClose != nil {
		e.onClose(sess)
	}
}

// ResetAll stops the running timer and zeroes every accumulator. The
// session history is left untouched.
func (e *Engine) ResetAll() {
	e.Stop()

	e.acc = Accumulators{}
	e.saveAccumulators()

	e.logger.Info("accumulators reset")
}

// CurrentElapsedSeconds returns the total of the running category. When
// nothing is running it returns the largest total of all categories.
func (e *Engine) CurrentElapsedSeconds() int {
	if e.current != nil {
		return e.acc.Get(e.current.Category)
	}

	return e.acc.Max()
}

// Accumulators returns the category totals.
func (e *Engine) Accumulators() Accumulators {
	return e.acc
}

// State describes the running timer.
func (e *Engine) State() State {
	if e.current == nil {
		return State{}
	}

	sess := *e.current

	return State{
		Category: sess.Category,
		Running:  true,
		Current:  &sess,
	}
}

// Running reports whether a timer is running.
func (e *Engine) Running() bool {
	return e.current != nil
}

// OpenWorkSeconds returns how long the open work session has been running,
// or zero.
func (e *Engine) OpenWorkSeconds() int {
	if e.current == nil || e.current.Category != Work {
		return 0
	}

	return int(e.clock.Now().Sub(e.current.StartTime) / time.Second)
}

func (e *Engine) saveAccumulators() {
	if err := e.repo.SaveAccumulators(e.acc); err != nil {
		e.logger.Error("saving accumulators failed", slog.Any("error", err))
	}
}
