package tracker

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
)

const (
	sampleInterval = 5 * time.Second
	sampleTimeout  = 2 * time.Second
)

// ErrNoForegroundApp is returned by a ForegroundApp when no application
// currently has input focus.
var ErrNoForegroundApp = errors.New("no foreground application")

// AppInfo identifies an application.
type AppInfo struct {
	ID   string
	Name string
}

// ForegroundApp reports the application that currently has input focus.
type ForegroundApp interface {
	Current(ctx context.Context) (AppInfo, error)
}

type appTotal struct {
	name    string
	seconds int
}

// Sampler periodically records which application is in the foreground and
// accumulates the time attributed to each one.
type Sampler struct {
	source ForegroundApp
	sched  Scheduler
	logger *slog.Logger
	usage  map[string]appTotal
	cancel func()
	// gen changes on every Start and Stop so that a query answered after
	// sampling stopped is discarded.
	gen      uint64
	inFlight bool
}

// NewSampler returns a Sampler that queries source. A nil source disables
// sampling.
func NewSampler(source ForegroundApp, sched Scheduler, logger *slog.Logger) *Sampler {
	return &Sampler{
		source: source,
		sched:  sched,
		logger: logger,
		usage:  make(map[string]appTotal),
	}
}

// Start clears previous usage and begins sampling.
func (s *Sampler) Start() {
	s.Stop()
	s.Reset()

	if s.source == nil {
		return
	}

	s.gen++
	s.cancel = s.sched.Every(sampleInterval, s.sample)
}

// Stop cancels sampling but keeps the accumulated usage.
func (s *Sampler) Stop() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	s.cancel = nil
	s.gen++
}

// Tracking reports whether the sampler is active.
func (s *Sampler) Tracking() bool {
	return s.cancel != nil
}

// Reset discards accumulated usage.
func (s *Sampler) Reset() {
	clear(s.usage)
}

// sample queries the foreground application off the logical context and
// records the answer back on it. A tick is skipped while the previous
// query is still running.
func (s *Sampler) sample() {
	if s.inFlight {
		return
	}

	s.inFlight = true
	gen := s.gen

	s.sched.Offload(func() func() {
		ctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
		defer cancel()

		app, err := s.source.Current(ctx)

		return func() {
			s.inFlight = false

			if gen != s.gen {
				return
			}

			s.record(app, err)
		}
	})
}

func (s *Sampler) record(app AppInfo, err error) {
	if err != nil {
		if !errors.Is(err, ErrNoForegroundApp) {
			s.logger.Debug("foreground app query failed", slog.Any("error", err))
		}

		return
	}

	if app.ID == "" {
		return
	}

	total := s.usage[app.ID]

	total.seconds += int(sampleInterval / time.Second)

	// the most recently observed name wins
	if app.Name != "" {
		total.name = app.Name
	} else if total.name == "" {
		total.name = app.ID
	}

	s.usage[app.ID] = total
}

// Records converts the accumulated usage into AppUsage values for a session
// of category c started on day. Records are ordered by duration, longest
// first.
func (s *Sampler) Records(c Category, day time.Time) []AppUsage {
	if len(s.usage) == 0 {
		return nil
	}

	records := make([]AppUsage, 0, len(s.usage))

	for id, total := range s.usage {
		records = append(records, AppUsage{
			AppID:           id,
			AppName:         total.name,
			DurationSeconds: total.seconds,
			Category:        c,
			Date:            day,
		})
	}

	sortUsage(records)

	return records
}

// sortUsage orders usage by duration, longest first. Equal durations fall
// back to the natural order of the application names, then to the id.
func sortUsage(records []AppUsage) {
	slices.SortFunc(records, func(a, b AppUsage) int {
		if a.DurationSeconds != b.DurationSeconds {
			return b.DurationSeconds - a.DurationSeconds
		}

		switch {
		case natural.Less(a.AppName, b.AppName):
			return -1
		case natural.Less(b.AppName, a.AppName):
			return 1
		}

		return cmp.Or(
			strings.Compare(a.AppName, b.AppName),
			strings.Compare(a.AppID, b.AppID),
		)
	})
}
