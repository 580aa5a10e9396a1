package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func goalSettings() Settings {
	s := DefaultSettings()
	s.Notify = true
	s.TargetWorkHours = 1

	return s
}

func TestGoalNotifiesOncePerDay(t *testing.T) {
	h := newHarness(t, monday, goalSettings())

	h.core.engine.Start(Work)

	// the goal is checked every five minutes
	h.sched.tasks = append(h.sched.tasks, &task{
		every: goalCheckInterval,
		next:  monday.Add(goalCheckInterval),
		fn:    h.core.goal.Check,
	})

	h.sched.advance(55 * time.Minute)
	assert.Empty(t, h.notifier.titles)

	h.sched.advance(5 * time.Minute)
	assert.Equal(t, []string{"Work goal reached!"}, h.notifier.titles)

	h.sched.advance(30 * time.Minute)
	assert.Len(t, h.notifier.titles, 1)
	assert.True(t, h.repo.notices["notification_goal_reached_2026-10-12"])
}

func TestGoalCountsClosedSessions(t *testing.T) {
	repo := &memRepo{sessions: []Session{
		closedSession("a", Work, monday.Add(-30*time.Minute), 3600),
	}}

	h := newHarnessWithRepo(t, monday.Add(time.Hour), goalSettings(), repo)

	h.core.goal.Check()

	assert.Len(t, h.notifier.titles, 1)
}

func TestGoalDisabled(t *testing.T) {
	settings := goalSettings()
	settings.MonitorWorkTime = false

	repo := &memRepo{sessions: []Session{
		closedSession("a", Work, monday, 7200),
	}}

	h := newHarnessWithRepo(t, monday.Add(3*time.Hour), settings, repo)

	h.core.goal.Check()

	assert.Empty(t, h.notifier.titles)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8 hours", formatHours(8))
	assert.Equal(t, "1 hour", formatHours(1))
	assert.Equal(t, "7.5 hours", formatHours(7.5))
}
