package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/timetrackerpro/timetracker/internal/logger"
)

// monday is 2026-10-12 09:00 local time, a work day inside the default work
// hours.
var monday = time.Date(2026, 10, 12, 9, 0, 0, 0, time.Local)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

type task struct {
	next      time.Time
	fn        func()
	every     time.Duration
	cancelled bool
}

// manualScheduler fires tasks as the fake clock is advanced. Offloaded work
// runs inline unless holdOffload is set, in which case it waits for
// finishOffloaded.
type manualScheduler struct {
	clock       *fakeClock
	tasks       []*task
	holdOffload bool
	offloaded   []func() func()
}

func (s *manualScheduler) Offload(work func() func()) {
	if s.holdOffload {
		s.offloaded = append(s.offloaded, work)
		return
	}

	if apply := work(); apply != nil {
		apply()
	}
}

// finishOffloaded completes the held work in submission order.
func (s *manualScheduler) finishOffloaded() {
	held := s.offloaded
	s.offloaded = nil

	for _, work := range held {
		if apply := work(); apply != nil {
			apply()
		}
	}
}

func (s *manualScheduler) Every(d time.Duration, fn func()) func() {
	t := &task{every: d, next: s.clock.Now().Add(d), fn: fn}
	s.tasks = append(s.tasks, t)

	return func() { t.cancelled = true }
}

// advance moves the clock forward by d, running every task that falls due
// in order.
func (s *manualScheduler) advance(d time.Duration) {
	end := s.clock.Now().Add(d)

	for {
		var due *task

		for _, t := range s.tasks {
			if t.cancelled || t.next.After(end) {
				continue
			}

			if due == nil || t.next.Before(due.next) {
				due = t
			}
		}

		if due == nil {
			break
		}

		s.clock.set(due.next)
		due.next = due.next.Add(due.every)
		due.fn()
	}

	s.clock.set(end)
}

func (s *manualScheduler) active() int {
	var n int

	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}

	return n
}

type memRepo struct {
	sessions []Session
	acc      Accumulators
	notices  map[string]bool
	saves    int
	loadErr  error
}

func (r *memRepo) LoadSessions() ([]Session, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}

	return append([]Session(nil), r.sessions...), nil
}

func (r *memRepo) SaveSession(sess *Session) error {
	r.sessions = append(r.sessions, *sess)
	return nil
}

func (r *memRepo) DeleteSessions(sessions []Session) error {
	ids := make(map[string]bool)
	for i := range sessions {
		ids[sessions[i].ID] = true
	}

	kept := r.sessions[:0]

	for i := range r.sessions {
		if !ids[r.sessions[i].ID] {
			kept = append(kept, r.sessions[i])
		}
	}

	r.sessions = kept

	return nil
}

func (r *memRepo) LoadAccumulators() (Accumulators, error) {
	return r.acc, nil
}

func (r *memRepo) SaveAccumulators(acc Accumulators) error {
	r.acc = acc
	r.saves++

	return nil
}

func (r *memRepo) NoticeSent(key string) (bool, error) {
	return r.notices[key], nil
}

func (r *memRepo) MarkNoticeSent(key string) error {
	if r.notices == nil {
		r.notices = make(map[string]bool)
	}

	r.notices[key] = true

	return nil
}

// scriptedApps returns the app at the front of the queue on each query.
type scriptedApps struct {
	apps []AppInfo
}

func (s *scriptedApps) Current(context.Context) (AppInfo, error) {
	if len(s.apps) == 0 {
		return AppInfo{}, ErrNoForegroundApp
	}

	app := s.apps[0]
	s.apps = s.apps[1:]

	if app.ID == "" {
		return AppInfo{}, errors.New("query failed")
	}

	return app, nil
}

type recordedPause struct {
	category Category
	state    PauseState
}

type recordedOffer struct {
	reason    LockReason
	lockedFor time.Duration
}

type recordingPrompter struct {
	pauses []recordedPause
	offers []recordedOffer
}

func (p *recordingPrompter) Paused(c Category, state PauseState) {
	p.pauses = append(p.pauses, recordedPause{c, state})
}

func (p *recordingPrompter) OfferResume(reason LockReason, d time.Duration) {
	p.offers = append(p.offers, recordedOffer{reason, d})
}

type recordingNotifier struct {
	titles []string
}

func (n *recordingNotifier) Notify(title, _ string) error {
	n.titles = append(n.titles, title)
	return nil
}

type harness struct {
	clock    *fakeClock
	sched    *manualScheduler
	repo     *memRepo
	apps     *scriptedApps
	prompter *recordingPrompter
	notifier *recordingNotifier
	core     *core
}

func newHarness(t *testing.T, start time.Time, settings Settings) *harness {
	t.Helper()

	return newHarnessWithRepo(t, start, settings, &memRepo{})
}

func newHarnessWithRepo(
	t *testing.T,
	start time.Time,
	settings Settings,
	repo *memRepo,
) *harness {
	t.Helper()

	clock := &fakeClock{now: start}

	h := &harness{
		clock:    clock,
		sched:    &manualScheduler{clock: clock},
		repo:     repo,
		apps:     &scriptedApps{},
		prompter: &recordingPrompter{},
		notifier: &recordingNotifier{},
	}

	h.core = newCore(h.sched, settings, Deps{
		Clock:        clock,
		Sessions:     repo,
		Accumulators: repo,
		Notices:      repo,
		Foreground:   h.apps,
		Notifier:     h.notifier,
		Prompter:     h.prompter,
		Logger:       logger.Discard(),
	})

	return h
}

func (h *harness) signal(kind SignalKind) {
	h.core.lock.Handle(Signal{Kind: kind})
}

func openSessions(h *harness) int {
	var n int

	for _, s := range h.core.sessions.All() {
		if s.IsOpen() {
			n++
		}
	}

	if h.core.engine.State().Current != nil {
		n++
	}

	return n
}

func closedSession(id string, c Category, start time.Time, secs int, usage ...AppUsage) Session {
	end := start.Add(time.Duration(secs) * time.Second)

	return Session{
		ID:              id,
		Category:        c,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: secs,
		AppUsages:       usage,
	}
}
