package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetrackerpro/timetracker/internal/logger"
	"github.com/timetrackerpro/timetracker/tracker"
)

type sent struct {
	title, message, icon string
}

func newTestNotifier(sound bool) (*Notifier, *[]sent, chan struct{}) {
	var out []sent

	played := make(chan struct{}, 1)

	n := New("/tmp/icon.svg", sound, logger.Discard())
	n.send = func(title, message, icon string) error {
		out = append(out, sent{title, message, icon})
		return nil
	}
	n.play = func() error {
		played <- struct{}{}
		return nil
	}

	return n, &out, played
}

func TestNotifierSendsAndPlays(t *testing.T) {
	n, out, played := newTestNotifier(true)

	require.NoError(t, n.Notify("Work goal reached!", "You have already worked 8 hours today."))

	assert.Equal(t, []sent{{
		"Work goal reached!",
		"You have already worked 8 hours today.",
		"/tmp/icon.svg",
	}}, *out)

	select {
	case <-played:
	case <-time.After(time.Second):
		t.Fatal("chime was not played")
	}
}

func TestNotifierWithoutSound(t *testing.T) {
	n, _, played := newTestNotifier(false)

	require.NoError(t, n.Notify("a", "b"))

	select {
	case <-played:
		t.Fatal("chime should be silent")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifierSendError(t *testing.T) {
	n, _, _ := newTestNotifier(true)
	n.send = func(string, string, string) error {
		return errors.New("no notification daemon")
	}

	assert.Error(t, n.Notify("a", "b"))
}

func TestPrompter(t *testing.T) {
	n, out, _ := newTestNotifier(false)
	p := NewPrompter(n, true, logger.Discard())

	p.Paused(tracker.Work, tracker.PausedOutsideHours)
	p.OfferResume(tracker.LunchBreak, 42*time.Minute)

	require.Len(t, *out, 2)
	assert.Equal(t, "Timer paused", (*out)[0].title)
	assert.Contains(t, (*out)[0].message, "outside work hours")
	assert.Equal(t, "Welcome back from lunch", (*out)[1].title)
	assert.Contains(t, (*out)[1].message, "42 minutes")
	assert.NotContains(t, (*out)[1].message, "dashboard")
	assert.NotContains(t, (*out)[1].message, "Press")
}

func TestPrompterDisabled(t *testing.T) {
	n, out, _ := newTestNotifier(false)
	p := NewPrompter(n, false, logger.Discard())

	p.Paused(tracker.Work, tracker.PausedByLock)
	p.OfferResume(tracker.CoffeeBreak, 10*time.Minute)
	assert.Empty(t, *out)

	p.SetEnabled(true)
	p.OfferResume(tracker.CoffeeBreak, 10*time.Minute)
	assert.Len(t, *out, 1)
}

func TestChime(t *testing.T) {
	s, err := chime()
	require.NoError(t, err)

	buf := make([][2]float64, 512)

	var total int

	for {
		n, ok := s.Stream(buf)
		total += n

		if !ok {
			break
		}
	}

	want := 0
	for _, tn := range chimeTones {
		want += sampleRate.N(tn.dur)
	}

	assert.Equal(t, want, total)
}
