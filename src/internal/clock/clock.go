// Package clock abstracts deferred callbacks so the controllers' timers can be
// driven deterministically in tests.
package clock

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	// AfterFunc runs f on its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the wall clock.
type Real struct{}

var wall = clockwork.NewRealClock()

// AfterFunc schedules f on the wall clock.
func (Real) AfterFunc(d time.Duration, f func()) Timer { return wall.AfterFunc(d, f) }

// Fake is a clockwork fake clock that only moves when Advance is called.
// Advance steps from deadline to deadline and waits for each callback that
// falls due, so timers scheduled by a callback fire within the same Advance
// when they are due before its end.
type Fake struct {
	fc     *clockwork.FakeClock
	start  time.Time
	mu     sync.Mutex
	timers map[*fakeTimer]struct{}
}

type fakeTimer struct {
	f       *Fake
	t       clockwork.Timer
	at      time.Time
	done    chan struct{}
	stopped chan struct{}
}

// NewFake returns a fake clock at elapsed time zero.
func NewFake() *Fake {
	start := time.Unix(0, 0).UTC()
	return &Fake{
		fc:     clockwork.NewFakeClockAt(start),
		start:  start,
		timers: map[*fakeTimer]struct{}{},
	}
}

// AfterFunc schedules f at now+d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	ft := &fakeTimer{
		f:       f,
		at:      f.fc.Now().Add(d),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	f.mu.Lock()
	f.timers[ft] = struct{}{}
	f.mu.Unlock()
	ft.t = f.fc.AfterFunc(d, func() {
		f.remove(ft)
		defer close(ft.done)
		fn()
	})
	return ft
}

func (t *fakeTimer) Stop() bool {
	if !t.t.Stop() {
		return false
	}
	t.f.remove(t)
	close(t.stopped)
	return true
}

func (f *Fake) remove(t *fakeTimer) {
	f.mu.Lock()
	delete(f.timers, t)
	f.mu.Unlock()
}

// Elapsed returns the fake time passed since NewFake.
func (f *Fake) Elapsed() time.Duration { return f.fc.Since(f.start) }

// Pending returns the number of timers that have neither fired nor been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// Advance moves time forward by d, firing every timer that falls due and
// returning once their callbacks have finished.
func (f *Fake) Advance(d time.Duration) {
	target := f.fc.Now().Add(d)
	for {
		due := f.due(target)
		if len(due) == 0 {
			break
		}
		f.fc.Advance(due[0].at.Sub(f.fc.Now()))
		for _, t := range due {
			select {
			case <-t.done:
			case <-t.stopped:
			}
		}
	}
	if rest := target.Sub(f.fc.Now()); rest > 0 {
		f.fc.Advance(rest)
	}
}

// due returns the live timers sharing the earliest deadline at or before
// target.
func (f *Fake) due(target time.Time) []*fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()
	var first time.Time
	for t := range f.timers {
		if t.at.After(target) {
			continue
		}
		if first.IsZero() || t.at.Before(first) {
			first = t.at
		}
	}
	if first.IsZero() {
		return nil
	}
	var due []*fakeTimer
	for t := range f.timers {
		if t.at.Equal(first) {
			due = append(due, t)
		}
	}
	return due
}
