package dashboard

import (
	"fmt"
	"strings"

	"github.com/timetrackerpro/timetracker/internal/notify"
	"github.com/timetrackerpro/timetracker/internal/timeutil"
	"github.com/timetrackerpro/timetracker/tracker"
)

func pausedNotice(msg pausedMsg) string {
	_, text := notify.PausedMessage(msg.category, msg.state)
	return text
}

func (m *Model) clockFormat() string {
	layout := "03:04"
	if m.display.TwentyFourHour {
		layout = "15:04"
	}

	if m.display.ShowSeconds {
		layout += ":05"
	}

	if !m.display.TwentyFourHour {
		layout += " PM"
	}

	if m.display.ShowDate {
		layout = "Mon Jan 02  " + layout
	}

	return layout
}

func (m *Model) headerView() string {
	now := m.snap.Now.Format(m.clockFormat())

	return m.styles.title.Render("Time Tracker") + "  " + m.styles.hint.Render(now)
}

func (m *Model) formatSeconds(secs int) string {
	if m.display.ShowSeconds {
		return timeutil.FormatTimer(secs)
	}

	return timeutil.FormatShort(secs)
}

func (m *Model) categoryView(c tracker.Category) string {
	marker := "  "
	label := m.styles.secondary.Render(fmt.Sprintf("%-14s", c.Label()))

	if m.snap.Running && m.snap.Category == c {
		marker = m.styles.category[c].Render(c.Symbol() + " ")
		label = m.styles.category[c].Render(fmt.Sprintf("%-14s", c.Label()))
	}

	return marker + label + m.styles.main.Render(m.formatSeconds(m.snap.Accumulators.Get(c)))
}

func (m *Model) statusView() string {
	switch {
	case m.snap.Locked:
		return m.styles.warning.Render(
			"Screen locked for " + timeutil.FormatTimer(int(m.snap.LockedFor.Seconds())),
		)
	case m.snap.Running:
		since := m.snap.SessionStart.Format(strings.TrimPrefix(m.clockFormat(), "Mon Jan 02  "))

		return m.styles.hint.Render(
			fmt.Sprintf("%s since %s", m.snap.Category.Label(), since),
		)
	case m.snap.PauseState != tracker.NotPaused:
		return m.styles.hint.Render("[Paused] " + m.snap.PauseState.String())
	}

	return m.styles.hint.Render("[Idle]")
}

func (m *Model) goalView() string {
	var s strings.Builder

	progress := m.snap.WorkProgress()

	s.WriteString(m.styles.secondary.Render(
		fmt.Sprintf(
			"Today: %s of %s",
			timeutil.FormatShort(m.snap.TodayWorkSeconds),
			timeutil.FormatShort(int(m.snap.TargetWorkHours*3600)),
		),
	))

	if progress >= 1 {
		s.WriteString(m.styles.category[tracker.Lunch].Render("  goal reached"))
	}

	s.WriteString("\n")
	s.WriteString(m.progress.ViewAs(min(progress, 1)))

	return s.String()
}

func (m *Model) promptView() string {
	switch m.confirm {
	case confirmResume:
		title, msg := notify.ResumeMessage(m.offer.reason, m.offer.lockedFor)

		return m.styles.prompt.Render(
			m.styles.main.Render(title) + "\n" +
				m.styles.secondary.Render(msg) + "\n" +
				m.styles.secondary.Render("Resume work?") + "\n\n" +
				m.help.ShortHelpView(m.keys.confirmHelp()),
		)
	case confirmReset:
		return m.styles.prompt.Render(
			m.styles.main.Render("Reset all totals to zero?") + "\n\n" +
				m.help.ShortHelpView(m.keys.confirmHelp()),
		)
	}

	return ""
}

func (m *Model) helpView() string {
	if m.confirm != confirmNone {
		return ""
	}

	return m.help.View(m.keys)
}

func (m *Model) View() string {
	if !m.ready {
		return m.styles.base.Render(m.styles.hint.Render("Starting…"))
	}

	var s strings.Builder

	s.WriteString(m.headerView())
	s.WriteString("\n\n")

	for _, c := range tracker.Categories {
		s.WriteString(m.categoryView(c))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.statusView())
	s.WriteString("\n\n")
	s.WriteString(m.goalView())

	if m.notice != "" {
		s.WriteString("\n\n")
		s.WriteString(m.styles.hint.Render(m.notice))
	}

	if p := m.promptView(); p != "" {
		s.WriteString("\n\n")
		s.WriteString(p)
	}

	if h := m.helpView(); h != "" {
		s.WriteString("\n\n")
		s.WriteString(h)
	}

	return m.styles.base.Render(s.String())
}
