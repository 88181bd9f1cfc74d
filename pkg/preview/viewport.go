package preview

import "sync"

// Viewport is the environment the preview lives in: it reports its
// current width in CSS pixels and notifies listeners when it is resized.
type Viewport interface {
	Width() float64
	// OnResize registers fn and returns a function that removes it.
	OnResize(fn func()) (detach func())
}

// Window is an in-memory Viewport. The terminal UI resizes it from
// window-size events; tests resize it directly.
type Window struct {
	mu        sync.Mutex
	width     float64
	nextID    int
	listeners []listener
}

type listener struct {
	id int
	fn func()
}

// NewWindow creates a window with the given initial width in pixels.
func NewWindow(width float64) *Window {
	return &Window{width: width}
}

// Width returns the current width in pixels.
func (w *Window) Width() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

// Resize sets the width and notifies every listener in registration order.
func (w *Window) Resize(width float64) {
	w.mu.Lock()
	w.width = width
	fns := make([]func(), len(w.listeners))
	for i, l := range w.listeners {
		fns[i] = l.fn
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// OnResize implements Viewport.
func (w *Window) OnResize(fn func()) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	w.listeners = append(w.listeners, listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			for i, l := range w.listeners {
				if l.id == id {
					w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// ListenerCount returns the number of attached resize listeners.
func (w *Window) ListenerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}
