// Package dashboard is the interactive terminal front end of the tracker.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timetrackerpro/timetracker/internal/config"
	"github.com/timetrackerpro/timetracker/tracker"
)

const (
	padding  = 2
	maxWidth = 60

	noticeTimeout = 10 * time.Second
)

// Controller is the part of the tracker that the dashboard drives.
type Controller interface {
	Start(c tracker.Category)
	Stop()
	Toggle(c tracker.Category)
	ResetAll()
}

type (
	snapshotMsg tracker.Snapshot

	// closedMsg is sent when the tracker stops publishing.
	closedMsg struct{}

	// actionDoneMsg is sent after a controller call returns.
	actionDoneMsg struct{}

	// DisplayChanged carries new display settings into a running
	// dashboard. Send it with tea.Program.Send.
	DisplayChanged config.DisplayConfig
)

type confirmation int

const (
	confirmNone confirmation = iota
	confirmResume
	confirmReset
)

// Model renders the live state of the tracker and maps key presses to
// tracker operations.
type Model struct {
	ctl       Controller
	snapshots <-chan tracker.Snapshot
	prompts   <-chan tea.Msg
	snap      tracker.Snapshot
	display   config.DisplayConfig
	styles    styles
	keys      keymap
	help      help.Model
	progress  progress.Model
	notice    string
	noticeAt  time.Time
	offer     resumeOfferMsg
	confirm   confirmation
	ready     bool
}

// New returns a dashboard for ctl. snapshots is usually the result of
// Tracker.Subscribe.
func New(
	ctl Controller,
	snapshots <-chan tracker.Snapshot,
	prompter *Prompter,
	display config.DisplayConfig,
) *Model {
	m := &Model{
		ctl:       ctl,
		snapshots: snapshots,
		display:   display,
		styles:    newStyles(display.DarkTheme),
		keys:      defaultKeymap,
		help:      help.New(),
		progress: progress.New(
			progress.WithGradient(tracker.Work.Color(), tracker.Lunch.Color()),
			progress.WithoutPercentage(),
		),
	}

	if prompter != nil {
		m.prompts = prompter.msgs
	}

	m.progress.Width = maxWidth

	return m
}

// SetDisplay applies new display settings, for example after the settings
// file changed.
func (m *Model) SetDisplay(display config.DisplayConfig) {
	m.display = display
	m.styles = newStyles(display.DarkTheme)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForSnapshot(), m.waitForPrompt())
}

func (m *Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.snapshots
		if !ok {
			return closedMsg{}
		}

		return snapshotMsg(snap)
	}
}

func (m *Model) waitForPrompt() tea.Cmd {
	if m.prompts == nil {
		return nil
	}

	return func() tea.Msg {
		return <-m.prompts
	}
}

// run calls fn off the UI goroutine since controller calls wait for the
// tracker.
func (m *Model) run(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return actionDoneMsg{}
	}
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeAt = m.snap.Now
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	if m.confirm != confirmNone {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.work):
		return m, m.run(func() { m.ctl.Toggle(tracker.Work) })

	case key.Matches(msg, m.keys.coffee):
		return m, m.run(func() { m.ctl.Toggle(tracker.Coffee) })

	case key.Matches(msg, m.keys.lunch):
		return m, m.run(func() { m.ctl.Toggle(tracker.Lunch) })

	case key.Matches(msg, m.keys.stop):
		return m, m.run(m.ctl.Stop)

	case key.Matches(msg, m.keys.reset):
		m.confirm = confirmReset
		return m, nil

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		c := m.confirm
		m.confirm = confirmNone

		if c == confirmReset {
			m.setNotice("All totals were reset")
			return m, m.run(m.ctl.ResetAll)
		}

		return m, m.run(func() { m.ctl.Start(tracker.Work) })

	case key.Matches(msg, m.keys.no):
		m.confirm = confirmNone
	}

	return m, nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = tracker.Snapshot(msg)
		m.ready = true

		if m.notice != "" && m.snap.Now.Sub(m.noticeAt) > noticeTimeout {
			m.notice = ""
		}

		return m, m.waitForSnapshot()

	case closedMsg:
		return m, tea.Quit

	case pausedMsg:
		m.setNotice(pausedNotice(msg))
		return m, m.waitForPrompt()

	case resumeOfferMsg:
		m.offer = msg
		m.confirm = confirmResume

		return m, m.waitForPrompt()

	case actionDoneMsg:
		return m, nil

	case DisplayChanged:
		m.SetDisplay(config.DisplayConfig(msg))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		m.help.Width = msg.Width

		return m, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	return m, nil
}
