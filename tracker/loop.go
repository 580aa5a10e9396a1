package tracker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Clock is the source of the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Scheduler runs fn every interval until the returned cancel function is
// called. Implementations must invoke fn on the logical context that owns
// the tracker state.
//
// Offload runs work away from that context and then applies the function
// it returns back on it. Blocking queries go through Offload so that they
// never hold up ticks or commands.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
	Offload(work func() (apply func()))
}

// Loop serialises all state changes onto a single goroutine. Work is
// submitted with Do or Call, and repeating ticks with Every.
type Loop struct {
	actions chan func()
	done    chan struct{}
	once    sync.Once
}

// NewLoop creates a Loop. Nothing runs until Run is called.
func NewLoop() *Loop {
	return &Loop{
		actions: make(chan func(), 64),
		done:    make(chan struct{}),
	}
}

// Run executes submitted work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer l.once.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.actions:
			fn()
		}
	}
}

// Do queues fn without waiting for it to run. It reports false if the loop
// has already stopped.
func (l *Loop) Do(fn func()) bool {
	select {
	case l.actions <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call queues fn and waits until it has run. It must not be called from
// the loop goroutine.
func (l *Loop) Call(fn func()) bool {
	finished := make(chan struct{})

	ok := l.Do(func() {
		defer close(finished)
		fn()
	})
	if !ok {
		return false
	}

	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Offload implements Scheduler. apply is dropped if the loop has stopped.
func (l *Loop) Offload(work func() (apply func())) {
	go func() {
		apply := work()
		if apply != nil {
			l.Do(apply)
		}
	}()
}

// Every implements Scheduler. Ticks that were already queued when cancel is
// called are dropped.
func (l *Loop) Every(interval time.Duration, fn func()) func() {
	var (
		cancelled atomic.Bool
		stop      = make(chan struct{})
		once      sync.Once
	)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-l.done:
				return
			case <-ticker.C:
				l.Do(func() {
					if cancelled.Load() {
						return
					}

					fn()
				})
			}
		}
	}()

	return func() {
		once.Do(func() {
			cancelled.Store(true)
			close(stop)
		})
	}
}
