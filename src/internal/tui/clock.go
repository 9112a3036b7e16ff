package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"certview/src/internal/clock"
)

// timerMsg fires a loopClock timer on the program's event loop.
type timerMsg struct{ id int }

// loopClock is a clock.Clock whose callbacks run inside Update. AfterFunc
// queues a tea.Tick; the model drains the queue after every Update and runs
// the callback when the matching timerMsg arrives.
type loopClock struct {
	seq    int
	timers map[int]*loopTimer
	queued []tea.Cmd
}

type loopTimer struct {
	c  *loopClock
	id int
	f  func()
}

func newLoopClock() *loopClock {
	return &loopClock{timers: map[int]*loopTimer{}}
}

func (c *loopClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.seq++
	t := &loopTimer{c: c, id: c.seq, f: f}
	c.timers[t.id] = t
	id := t.id
	c.queued = append(c.queued, tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{id: id} }))
	return t
}

func (t *loopTimer) Stop() bool {
	if _, ok := t.c.timers[t.id]; !ok {
		return false
	}
	delete(t.c.timers, t.id)
	return true
}

// fire runs the callback for id unless it was stopped or already ran.
func (c *loopClock) fire(id int) {
	t, ok := c.timers[id]
	if !ok {
		return
	}
	delete(c.timers, id)
	t.f()
}

// pending returns the live timer ids in scheduling order.
func (c *loopClock) pending() []int {
	var ids []int
	for i := 1; i <= c.seq; i++ {
		if _, ok := c.timers[i]; ok {
			ids = append(ids, i)
		}
	}
	return ids
}

func (c *loopClock) drain() tea.Cmd {
	if len(c.queued) == 0 {
		return nil
	}
	cmds := c.queued
	c.queued = nil
	return tea.Batch(cmds...)
}
