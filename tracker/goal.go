package tracker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/timetrackerpro/timetracker/internal/timeutil"
)

const (
	goalCheckInterval = 300 * time.Second
	goalNoticeID      = "goal_reached"
)

// NoticeRepository remembers which once-a-day notifications were sent.
type NoticeRepository interface {
	NoticeSent(key string) (bool, error)
	MarkNoticeSent(key string) error
}

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(title, message string) error
}

// GoalMonitor sends a notification the first time the daily work target is
// reached on a given day.
type GoalMonitor struct {
	clock    Clock
	sessions *SessionStore
	engine   *Engine
	notices  NoticeRepository
	notifier Notifier
	logger   *slog.Logger
	target   float64
	enabled  bool
}

// NewGoalMonitor returns a disabled monitor. Call Configure to set it up.
func NewGoalMonitor(
	clock Clock,
	sessions *SessionStore,
	engine *Engine,
	notices NoticeRepository,
	notifier Notifier,
	logger *slog.Logger,
) *GoalMonitor {
	return &GoalMonitor{
		clock:    clock,
		sessions: sessions,
		engine:   engine,
		notices:  notices,
		notifier: notifier,
		logger:   logger,
	}
}

// Configure sets the daily target in hours. Checks only run when enabled is
// true.
func (g *GoalMonitor) Configure(targetHours float64, enabled bool) {
	g.target = targetHours
	g.enabled = enabled
}

// TodayWorkSeconds is the closed work time of today plus the open work
// session.
func (g *GoalMonitor) TodayWorkSeconds() int {
	now := g.clock.Now()

	return g.sessions.WorkSeconds(now) + g.engine.OpenWorkSeconds()
}

// Check notifies the user if today's work time reached the target and no
// notification was sent yet today.
func (g *GoalMonitor) Check() {
	if !g.enabled || g.target <= 0 || g.notifier == nil {
		return
	}

	worked := g.TodayWorkSeconds()
	if float64(worked) < g.target*3600 {
		return
	}

	key := noticeKey(goalNoticeID, g.clock.Now())

	sent, err := g.notices.NoticeSent(key)
	if err != nil {
		g.logger.Error("reading notice failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if sent {
		return
	}

	err = g.notifier.Notify(
		"Work goal reached!",
		fmt.Sprintf("You have already worked %s today.", formatHours(g.target)),
	)
	if err != nil {
		g.logger.Error("goal notification failed", slog.Any("error", err))
		return
	}

	if err := g.notices.MarkNoticeSent(key); err != nil {
		g.logger.Error("recording notice failed", slog.String("key", key), slog.Any("error", err))
	}
}

func noticeKey(id string, day time.Time) string {
	return "notification_" + id + "_" + timeutil.DayKey(day)
}

func formatHours(h float64) string {
	if h == float64(int(h)) {
		if h == 1 {
			return "1 hour"
		}

		return fmt.Sprintf("%d hours", int(h))
	}

	return fmt.Sprintf("%.1f hours", h)
}
