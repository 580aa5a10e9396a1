package tracker

import (
	"log/slog"
	"slices"
	"time"

	"github.com/timetrackerpro/timetracker/internal/timeutil"
)

// SessionRepository persists closed sessions.
type SessionRepository interface {
	// LoadSessions returns every stored session. An empty store is not an
	// error.
	LoadSessions() ([]Session, error)
	// SaveSession stores a closed session.
	SaveSession(sess *Session) error
	// DeleteSessions removes the given sessions.
	DeleteSessions(sessions []Session) error
}

// SessionStore is the in-memory history of closed sessions, newest first.
// Sessions are only ever added or deleted, never edited in place.
type SessionStore struct {
	repo     SessionRepository
	logger   *slog.Logger
	sessions []Session
}

// NewSessionStore loads the saved history from repo. Unreadable history is
// treated as empty.
func NewSessionStore(repo SessionRepository, logger *slog.Logger) *SessionStore {
	s := &SessionStore{
		repo:   repo,
		logger: logger,
	}

	sessions, err := repo.LoadSessions()
	if err != nil {
		logger.Error("loading sessions failed, starting empty", slog.Any("error", err))

		return s
	}

	slices.SortStableFunc(sessions, func(a, b Session) int {
		return b.StartTime.Compare(a.StartTime)
	})

	s.sessions = sessions

	return s
}

// Add prepends a closed session to the history and persists it.
func (s *SessionStore) Add(sess Session) {
	s.sessions = slices.Insert(s.sessions, 0, sess)

	if err := s.repo.SaveSession(&sess); err != nil {
		s.logger.Error(
			"saving session failed",
			slog.String("id", sess.ID),
			slog.Any("error", err),
		)
	}
}

// All returns a copy of the history, newest first.
func (s *SessionStore) All() []Session {
	return slices.Clone(s.sessions)
}

// SessionsForDay returns the sessions that started on the calendar day of
// day, newest first.
func (s *SessionStore) SessionsForDay(day time.Time) []Session {
	start := timeutil.RoundToStart(day)
	end := timeutil.NextDay(day)

	var result []Session

	for i := range s.sessions {
		if inRange(s.sessions[i].StartTime, start, end) {
			result = append(result, s.sessions[i])
		}
	}

	return result
}

// TotalSeconds sums the duration of every session on day.
func (s *SessionStore) TotalSeconds(day time.Time) int {
	return s.sum(day, func(Category) bool { return true })
}

// WorkSeconds sums the duration of the work sessions on day.
func (s *SessionStore) WorkSeconds(day time.Time) int {
	return s.sum(day, func(c Category) bool { return c == Work })
}

// BreakSeconds sums the duration of the coffee and lunch sessions on day.
func (s *SessionStore) BreakSeconds(day time.Time) int {
	return s.sum(day, Category.IsBreak)
}

func (s *SessionStore) sum(day time.Time, match func(Category) bool) int {
	var total int

	for _, sess := range s.SessionsForDay(day) {
		if match(sess.Category) {
			total += sess.DurationSeconds
		}
	}

	return total
}

// AggregatedAppUsage merges the application usage of the sessions of
// category c on day. Each application appears once with its summed
// duration, keeping the first name seen for it. The result is ordered by
// duration, longest first.
func (s *SessionStore) AggregatedAppUsage(day time.Time, c Category) []AppUsage {
	var (
		order  []string
		totals = make(map[string]*AppUsage)
	)

	for _, sess := range s.SessionsForDay(day) {
		if sess.Category != c {
			continue
		}

		for _, u := range sess.AppUsages {
			agg, ok := totals[u.AppID]
			if !ok {
				agg = &AppUsage{
					AppID:    u.AppID,
					AppName:  u.AppName,
					Category: c,
					Date:     day,
				}
				totals[u.AppID] = agg
				order = append(order, u.AppID)
			}

			agg.DurationSeconds += u.DurationSeconds
		}
	}

	result := make([]AppUsage, 0, len(order))
	for _, id := range order {
		result = append(result, *totals[id])
	}

	sortUsage(result)

	return result
}

// ClearDay deletes every session that started on the calendar day of day
// and returns how many were removed.
func (s *SessionStore) ClearDay(day time.Time) int {
	start := timeutil.RoundToStart(day)
	end := timeutil.NextDay(day)

	return s.deleteWhere(func(sess *Session) bool {
		return inRange(sess.StartTime, start, end)
	})
}

// Prune deletes every session that started before cutoff and returns how
// many were removed.
func (s *SessionStore) Prune(cutoff time.Time) int {
	return s.deleteWhere(func(sess *Session) bool {
		return sess.StartTime.Before(cutoff)
	})
}

func (s *SessionStore) deleteWhere(match func(*Session) bool) int {
	var (
		kept    = make([]Session, 0, len(s.sessions))
		removed []Session
	)

	for i := range s.sessions {
		if match(&s.sessions[i]) {
			removed = append(removed, s.sessions[i])
			continue
		}

		kept = append(kept, s.sessions[i])
	}

	if len(removed) == 0 {
		return 0
	}

	s.sessions = kept

	if err := s.repo.DeleteSessions(removed); err != nil {
		s.logger.Error(
			"deleting sessions failed",
			slog.Int("count", len(removed)),
			slog.Any("error", err),
		)
	}

	return len(removed)
}

// DaysWithSessions returns the start of each calendar day that has at least
// one session, most recent first.
func (s *SessionStore) DaysWithSessions() []time.Time {
	seen := make(map[string]bool)

	var days []time.Time

	for i := range s.sessions {
		day := timeutil.RoundToStart(s.sessions[i].StartTime)

		key := timeutil.DayKey(day)
		if seen[key] {
			continue
		}

		seen[key] = true

		days = append(days, day)
	}

	slices.SortFunc(days, func(a, b time.Time) int {
		return b.Compare(a)
	})

	return days
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
