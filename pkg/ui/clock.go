package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/clampgen/pkg/clock"
)

// settleMsg carries a timer callback back onto the update goroutine.
type settleMsg struct {
	fire func()
}

// programClock is a clock.Clock whose timers do not run their callbacks
// on the timer goroutine. The callback is queued as a settleMsg and runs
// inside Model.Update, so the preview controller is only ever touched from
// the bubbletea event loop.
type programClock struct {
	msgs chan tea.Msg
	done chan struct{}
	once sync.Once
}

func newProgramClock() *programClock {
	return &programClock{
		msgs: make(chan tea.Msg, 8),
		done: make(chan struct{}),
	}
}

func (c *programClock) Now() time.Time { return time.Now() }

func (c *programClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	return time.AfterFunc(d, func() {
		select {
		case c.msgs <- settleMsg{fire: f}:
		case <-c.done:
		}
	})
}

// wait returns a command that blocks until the next timer fires.
func (c *programClock) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-c.msgs:
			return msg
		case <-c.done:
			return nil
		}
	}
}

// stop releases any goroutine blocked on delivery.
func (c *programClock) stop() {
	c.once.Do(func() { close(c.done) })
}
