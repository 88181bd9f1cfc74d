// Package preview drives the transient feedback on the live preview: a
// highlight that flashes on every resize or expression change and fades
// after a settle delay, a border shown while the viewport is inside the
// scaling range, and an overflow flag from re-measuring the content.
package preview

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Dicklesworthstone/clampgen/pkg/clock"
	"github.com/Dicklesworthstone/clampgen/pkg/watcher"
)

// DefaultSettleDelay is how long the highlight stays after the last trigger.
const DefaultSettleDelay = 1000 * time.Millisecond

// State is the snapshot handed to renderers.
type State struct {
	BackgroundVisible bool
	BorderVisible     bool
	Overflowing       bool
}

// Options configures a Controller.
type Options struct {
	Viewport           Viewport
	Measurer           Measurer
	Clock              clock.Clock
	SettleDelay        time.Duration
	MaxViewportWidthPx float64
	Logger             *slog.Logger
}

// Controller owns the preview State. It is Idle until a resize or an
// expression change flashes it, and returns to Idle when the settle timer
// fires without another trigger in between.
type Controller struct {
	mu            sync.Mutex
	state         State
	maxViewportPx float64
	viewport      Viewport
	measurer      Measurer
	settle        *watcher.Debouncer
	gen           uint64
	detach        func()
	observers     []observer
	nextObserver  int
	closed        bool
	logger        *slog.Logger
}

type observer struct {
	id int
	fn func(State)
}

// New creates a controller and attaches it to the viewport's resize events.
func New(opts Options) *Controller {
	if opts.Viewport == nil {
		opts.Viewport = NewWindow(0)
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		maxViewportPx: opts.MaxViewportWidthPx,
		viewport:      opts.Viewport,
		measurer:      opts.Measurer,
		settle:        watcher.NewDebouncerWithClock(opts.SettleDelay, opts.Clock),
		logger:        opts.Logger,
	}
	c.detach = opts.Viewport.OnResize(c.Resize)
	return c
}

// State returns the current feedback flags.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Flashing reports whether a settle timer is pending.
func (c *Controller) Flashing() bool {
	return c.settle.Pending()
}

// Resize handles a viewport resize.
func (c *Controller) Resize() {
	c.trigger("resize")
}

// ExpressionChanged handles a new clamp expression being applied to the
// preview content.
func (c *Controller) ExpressionChanged() {
	c.trigger("expression")
}

// SetMaxViewportWidth updates the upper viewport bound and re-measures
// overflow. It does not flash the highlight.
func (c *Controller) SetMaxViewportWidth(px float64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.maxViewportPx = px
	before := c.state
	c.remeasureLocked()
	snap := c.state
	c.mu.Unlock()

	if snap != before {
		c.notify()
	}
}

func (c *Controller) trigger(reason string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	width := c.viewport.Width()
	c.state.BackgroundVisible = true
	c.state.BorderVisible = width <= c.maxViewportPx
	c.remeasureLocked()
	snap := c.state

	// Armed under c.mu so no earlier fade can land between the flash and
	// the new timer. Re-arming cancels the pending fade, if any.
	c.gen++
	gen := c.gen
	c.settle.Trigger(func() { c.fadeFor(gen) })
	c.mu.Unlock()

	c.logger.Debug("preview flash",
		"reason", reason,
		"viewport_px", width,
		"border", snap.BorderVisible,
		"overflowing", snap.Overflowing)
	c.notify()
}

// fadeFor hides the highlight unless another flash started after the one
// that scheduled it.
func (c *Controller) fadeFor(gen uint64) {
	c.mu.Lock()
	if c.closed || c.gen != gen {
		c.mu.Unlock()
		return
	}
	c.state.BackgroundVisible = false
	c.state.BorderVisible = false
	c.mu.Unlock()

	c.logger.Debug("preview settled")
	c.notify()
}

// remeasureLocked refreshes Overflowing. A missing measurement leaves the
// previous value in place.
func (c *Controller) remeasureLocked() {
	if c.measurer == nil {
		return
	}
	m, ok := c.measurer.Measure()
	if !ok {
		return
	}
	c.state.Overflowing = m.Overflowing()
}

// Subscribe registers fn to be called with every new State. The returned
// function removes it.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextObserver++
	id := c.nextObserver
	c.observers = append(c.observers, observer{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// notify sends the current state, not a snapshot taken earlier, so a
// late notification never reverts a newer one.
func (c *Controller) notify() {
	c.mu.Lock()
	s := c.state
	fns := make([]func(State), len(c.observers))
	for i, o := range c.observers {
		fns[i] = o.fn
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Close cancels the pending settle timer and detaches from the viewport.
// It is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	detach := c.detach
	c.detach = nil
	c.observers = nil
	c.mu.Unlock()

	c.settle.Cancel()
	if detach != nil {
		detach()
	}
}
