package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/timetrackerpro/timetracker/tracker"
)

type styles struct {
	base      lipgloss.Style
	title     lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	warning   lipgloss.Style
	prompt    lipgloss.Style
	category  map[tracker.Category]lipgloss.Style
}

func newStyles(dark bool) styles {
	text := lipgloss.Color("#1F2937")
	muted := lipgloss.Color("#6B7280")

	if dark {
		text = lipgloss.Color("#F9FAFB")
		muted = lipgloss.Color("#9CA3AF")
	}

	s := styles{
		base:      lipgloss.NewStyle().Padding(1, padding),
		title:     lipgloss.NewStyle().Bold(true).Foreground(text),
		main:      lipgloss.NewStyle().Bold(true).Foreground(text),
		secondary: lipgloss.NewStyle().Foreground(text),
		hint:      lipgloss.NewStyle().Foreground(muted),
		warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(tracker.Work.Color())).
			Padding(0, 1),
		category: make(map[tracker.Category]lipgloss.Style),
	}

	for _, c := range tracker.Categories {
		s.category[c] = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Color()))
	}

	return s
}
