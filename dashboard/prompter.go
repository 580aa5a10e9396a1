package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timetrackerpro/timetracker/tracker"
)

type (
	pausedMsg struct {
		category tracker.Category
		state    tracker.PauseState
	}

	resumeOfferMsg struct {
		reason    tracker.LockReason
		lockedFor time.Duration
	}
)

// Prompter forwards auto-pause events from the tracker to the dashboard.
// Events are dropped when the dashboard falls behind. An optional fallback
// receives every event as well, typically to show a desktop notification.
type Prompter struct {
	msgs     chan tea.Msg
	fallback tracker.Prompter
}

// NewPrompter returns a Prompter. fallback may be nil.
func NewPrompter(fallback tracker.Prompter) *Prompter {
	return &Prompter{
		msgs:     make(chan tea.Msg, 8),
		fallback: fallback,
	}
}

func (p *Prompter) Paused(stopped tracker.Category, state tracker.PauseState) {
	p.send(pausedMsg{category: stopped, state: state})

	if p.fallback != nil {
		p.fallback.Paused(stopped, state)
	}
}

func (p *Prompter) OfferResume(reason tracker.LockReason, lockedFor time.Duration) {
	p.send(resumeOfferMsg{reason: reason, lockedFor: lockedFor})
}

func (p *Prompter) send(msg tea.Msg) {
	select {
	case p.msgs <- msg:
	default:
	}
}
