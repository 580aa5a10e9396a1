// Package tracker implements the time tracking core: category timers, the
// session history, foreground application sampling, lock detection and the
// auto-pause policy. All state is owned by a single goroutine (see Loop);
// the exported Tracker methods are safe to call from any other goroutine.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const clockInterval = time.Second

// Deps are the external collaborators of a Tracker.
type Deps struct {
	Clock        Clock
	Sessions     SessionRepository
	Accumulators AccumulatorRepository
	Notices      NoticeRepository
	// Foreground may be nil when the platform cannot report the focused
	// application.
	Foreground ForegroundApp
	Notifier   Notifier
	Prompter   Prompter
	Logger     *slog.Logger
}

// core wires the components that share the logical context.
type core struct {
	clock    Clock
	logger   *slog.Logger
	sessions *SessionStore
	sampler  *Sampler
	engine   *Engine
	lock     *LockMonitor
	pause    *AutoPause
	goal     *GoalMonitor
	settings Settings
}

func newCore(sched Scheduler, settings Settings, deps Deps) *core {
	c := &core{
		clock:  deps.Clock,
		logger: deps.Logger,
	}

	c.sessions = NewSessionStore(deps.Sessions, c.logger)
	c.sampler = NewSampler(deps.Foreground, sched, c.logger)
	c.engine = NewEngine(EngineOptions{
		Clock:        c.clock,
		Scheduler:    sched,
		Sessions:     c.sessions,
		Sampler:      c.sampler,
		Accumulators: deps.Accumulators,
		Logger:       c.logger,
		OnClose:      c.sessionClosed,
	})
	c.pause = NewAutoPause(c.clock, c.engine, deps.Prompter, c.logger)
	c.lock = NewLockMonitor(c.clock, settings.AutoPause.Thresholds, c.pause, c.logger)
	c.goal = NewGoalMonitor(
		c.clock,
		c.sessions,
		c.engine,
		deps.Notices,
		deps.Notifier,
		c.logger,
	)

	c.apply(settings)

	return c
}

func (c *core) apply(s Settings) {
	c.settings = s
	c.engine.SetAppTracking(s.AppTracking)
	c.lock.SetThresholds(s.AutoPause.Thresholds)
	c.pause.Configure(s.AutoPause, s.WorkHours, s.Notify)
	c.goal.Configure(s.TargetWorkHours, s.Notify && s.MonitorWorkTime)
}

func (c *core) sessionClosed(sess Session) {
	runSessionCmd(c.settings.SessionCmd, sess, c.logger)
}

// prune applies the data retention policy.
func (c *core) prune() {
	days := c.settings.RetentionDays
	if days <= 0 {
		return
	}

	now := c.clock.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day()-days, 0, 0, 0, 0, now.Location())

	if n := c.sessions.Prune(cutoff); n > 0 {
		c.logger.Info("pruned old sessions", slog.Int("count", n), slog.Int("days", days))
	}
}

func (c *core) snapshot() Snapshot {
	st := c.engine.State()
	lockedFor, locked := c.lock.CurrentLockDuration()

	s := Snapshot{
		Now:              c.clock.Now(),
		Accumulators:     c.engine.Accumulators(),
		Category:         st.Category,
		Running:          st.Running,
		Elapsed:          c.engine.CurrentElapsedSeconds(),
		TargetWorkHours:  c.settings.TargetWorkHours,
		TodayWorkSeconds: c.goal.TodayWorkSeconds(),
		Locked:           locked,
		LockedFor:        lockedFor,
		PauseState:       c.pause.State(),
	}

	if st.Current != nil {
		s.SessionStart = st.Current.StartTime
	}

	return s
}

// Tracker is the entry point to the time tracking core.
type Tracker struct {
	loop *Loop
	core *core

	mu   sync.Mutex
	subs []chan Snapshot
}

// New creates a Tracker whose state is owned by loop. The saved history and
// accumulators are loaded immediately; nothing ticks until Run is called.
func New(loop *Loop, settings Settings, deps Deps) *Tracker {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}

	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &Tracker{
		loop: loop,
		core: newCore(loop, settings, deps),
	}
}

// Run drives the tracker until ctx is cancelled. A timer that is still
// running when Run returns is stopped so that its session is saved.
func (t *Tracker) Run(ctx context.Context) {
	c := t.core

	c.prune()

	stopClock := t.loop.Every(clockInterval, t.publish)
	stopGoal := t.loop.Every(goalCheckInterval, c.goal.Check)

	t.publish()

	t.loop.Run(ctx)

	stopClock()
	stopGoal()

	c.engine.Stop()
	t.publish()

	t.mu.Lock()
	for _, ch := range t.subs {
		close(ch)
	}

	t.subs = nil
	t.mu.Unlock()
}

// Subscribe returns a channel that receives a Snapshot after every change.
// Slow readers miss snapshots rather than blocking the tracker. The
// channel is closed when Run returns.
func (t *Tracker) Subscribe(buffer int) <-chan Snapshot {
	if buffer <= 0 {
		buffer = 1
	}

	ch := make(chan Snapshot, buffer)

	t.mu.Lock()
	t.subs = append(t.subs, ch)
	t.mu.Unlock()

	return ch
}

func (t *Tracker) publish() {
	snap := t.core.snapshot()

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, ch := range t.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// do runs fn on the loop, waits for it and publishes the new state.
func (t *Tracker) do(fn func(c *core)) {
	t.loop.Call(func() {
		fn(t.core)
		t.publish()
	})
}

// Start runs the timer for category c, stopping any other timer.
func (t *Tracker) Start(c Category) {
	t.do(func(core *core) { core.engine.Start(c) })
}

// Stop stops the running timer and saves its session.
func (t *Tracker) Stop() {
	t.do(func(core *core) { core.engine.Stop() })
}

// Toggle stops c if it is running, otherwise starts it.
func (t *Tracker) Toggle(c Category) {
	t.do(func(core *core) {
		if st := core.engine.State(); st.Running && st.Category == c {
			core.engine.Stop()
			return
		}

		core.engine.Start(c)
	})
}

// ResetAll stops the running timer and zeroes every category total.
func (t *Tracker) ResetAll() {
	t.do(func(core *core) { core.engine.ResetAll() })
}

// HandleSignal applies a lock related OS signal. It does not wait for the
// signal to be processed.
func (t *Tracker) HandleSignal(sig Signal) {
	if sig.At.IsZero() {
		sig.At = t.core.clock.Now()
	}

	t.loop.Do(func() {
		t.core.lock.Handle(sig)
		t.publish()
	})
}

// ApplySettings replaces the runtime configuration.
func (t *Tracker) ApplySettings(s Settings) {
	t.do(func(core *core) { core.apply(s) })
}

// ClearDay deletes the sessions that started on day.
func (t *Tracker) ClearDay(day time.Time) int {
	var n int

	t.do(func(core *core) { n = core.sessions.ClearDay(day) })

	return n
}

// Sessions returns the session history, newest first.
func (t *Tracker) Sessions() []Session {
	var s []Session

	t.loop.Call(func() { s = t.core.sessions.All() })

	return s
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot {
	var s Snapshot

	t.loop.Call(func() { s = t.core.snapshot() })

	return s
}
