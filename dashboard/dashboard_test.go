package dashboard

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetrackerpro/timetracker/internal/config"
	"github.com/timetrackerpro/timetracker/tracker"
)

var now = time.Date(2026, time.October, 12, 10, 30, 0, 0, time.Local)

type fakeController struct {
	mu      sync.Mutex
	calls   []string
	started []tracker.Category
}

func (f *fakeController) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)
}

func (f *fakeController) Start(c tracker.Category) {
	f.record("start")

	f.mu.Lock()
	f.started = append(f.started, c)
	f.mu.Unlock()
}

func (f *fakeController) Stop() { f.record("stop") }

func (f *fakeController) Toggle(c tracker.Category) { f.record("toggle " + string(c)) }

func (f *fakeController) ResetAll() { f.record("reset") }

func newTestModel(t *testing.T) (*Model, *fakeController, chan tracker.Snapshot, *Prompter) {
	t.Helper()

	ctl := &fakeController{}
	snaps := make(chan tracker.Snapshot, 1)
	prompter := NewPrompter(nil)

	m := New(ctl, snaps, prompter, config.DisplayConfig{
		ShowSeconds:    true,
		TwentyFourHour: true,
		DarkTheme:      true,
	})

	return m, ctl, snaps, prompter
}

func press(m *Model, k string) tea.Cmd {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}

	_, cmd := m.Update(msg)

	return cmd
}

func exec(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()

	require.NotNil(t, cmd)

	return cmd()
}

func TestSnapshotsAreRendered(t *testing.T) {
	m, _, snaps, _ := newTestModel(t)

	assert.Contains(t, m.View(), "Starting")

	snaps <- tracker.Snapshot{
		Now:              now,
		SessionStart:     now.Add(-5 * time.Minute),
		Category:         tracker.Work,
		Running:          true,
		Accumulators:     tracker.Accumulators{Work: 3725, Coffee: 60},
		TargetWorkHours:  8,
		TodayWorkSeconds: 4 * 3600,
	}

	msg := exec(t, m.waitForSnapshot())
	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd, "the model keeps listening for snapshots")

	view := m.View()
	assert.Contains(t, view, "1:02:05")
	assert.Contains(t, view, "01:00")
	assert.Contains(t, view, "Work since 10:25:00")
	assert.Contains(t, view, "Today: 4h 00m of 8h 00m")
	assert.Contains(t, view, "10:30:00")
}

func TestClosedSnapshotsQuit(t *testing.T) {
	m, _, snaps, _ := newTestModel(t)
	close(snaps)

	msg := exec(t, m.waitForSnapshot())
	assert.Equal(t, closedMsg{}, msg)

	_, cmd := m.Update(msg)
	assert.Equal(t, tea.QuitMsg{}, exec(t, cmd))
}

func TestCategoryKeysToggle(t *testing.T) {
	m, ctl, _, _ := newTestModel(t)

	exec(t, press(m, "w"))
	exec(t, press(m, "c"))
	exec(t, press(m, "l"))
	exec(t, press(m, "s"))

	assert.Equal(t, []string{"toggle work", "toggle coffee", "toggle lunch", "stop"}, ctl.calls)
}

func TestResetNeedsConfirmation(t *testing.T) {
	m, ctl, _, _ := newTestModel(t)

	assert.Nil(t, press(m, "r"))
	assert.Contains(t, m.promptView(), "Reset all totals")

	assert.Nil(t, press(m, "n"))
	assert.Empty(t, m.promptView())

	press(m, "r")
	exec(t, press(m, "y"))

	assert.Equal(t, []string{"reset"}, ctl.calls)
}

func TestResumeOffer(t *testing.T) {
	m, ctl, _, prompter := newTestModel(t)

	prompter.OfferResume(tracker.CoffeeBreak, 3*time.Minute)

	msg := exec(t, m.waitForPrompt())
	m.Update(msg)

	assert.Equal(t, confirmResume, m.confirm)
	assert.Contains(t, m.promptView(), "Resume work?")
	assert.Contains(t, m.promptView(), "3 minutes")

	exec(t, press(m, "y"))

	assert.Equal(t, []tracker.Category{tracker.Work}, ctl.started)
	assert.Equal(t, confirmNone, m.confirm)
}

func TestResumeOfferDismissed(t *testing.T) {
	m, ctl, _, _ := newTestModel(t)

	m.Update(resumeOfferMsg{reason: tracker.LunchBreak, lockedFor: time.Hour})
	press(m, "n")

	assert.Empty(t, ctl.calls)
	assert.Equal(t, confirmNone, m.confirm)
}

type recordingPrompter struct {
	paused []tracker.Category
}

func (r *recordingPrompter) Paused(c tracker.Category, _ tracker.PauseState) {
	r.paused = append(r.paused, c)
}

func (r *recordingPrompter) OfferResume(tracker.LockReason, time.Duration) {}

func TestPrompterDoesNotBlock(t *testing.T) {
	fallback := &recordingPrompter{}
	p := NewPrompter(fallback)

	for range 100 {
		p.Paused(tracker.Work, tracker.PausedByLock)
	}

	assert.Len(t, p.msgs, cap(p.msgs))
	assert.Len(t, fallback.paused, 100)
}

func TestQuit(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, tea.QuitMsg{}, exec(t, cmd))
}

func TestClockFormat(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	assert.Equal(t, "15:04:05", m.clockFormat())

	m.SetDisplay(config.DisplayConfig{ShowDate: true})
	assert.Equal(t, "Mon Jan 02  03:04 PM", m.clockFormat())
}

func TestDisplayChanged(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	_, cmd := m.Update(DisplayChanged(config.DisplayConfig{TwentyFourHour: true}))
	assert.Nil(t, cmd)
	assert.Equal(t, "15:04", m.clockFormat())
}
