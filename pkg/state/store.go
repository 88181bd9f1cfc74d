// Package state holds the parameters being edited and notifies observers
// whenever they change.
package state

import (
	"sync"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

// Snapshot is what observers receive: the parameters and the result
// computed from them.
type Snapshot struct {
	Params clamp.Params
	Result clamp.Result
}

// Store owns the current parameter set. Every mutation recomputes the
// result and notifies observers in subscription order.
type Store struct {
	mu        sync.Mutex
	params    clamp.Params
	result    clamp.Result
	nextID    int
	observers []observer
}

type observer struct {
	id int
	fn func(Snapshot)
}

// New creates a store seeded with initial.
func New(initial clamp.Params) *Store {
	return &Store{
		params: initial,
		result: clamp.Generate(initial),
	}
}

// Params returns the current parameters.
func (s *Store) Params() clamp.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Result returns the result for the current parameters.
func (s *Store) Result() clamp.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Snapshot returns params and result together.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Params: s.params, Result: s.result}
}

// SetValue changes the number of a bound, keeping its unit.
func (s *Store) SetValue(f clamp.Field, v float64) {
	s.update(func(p clamp.Params) clamp.Params {
		l := p.Length(f)
		l.Value = v
		return p.WithLength(f, l)
	})
}

// SetLength replaces a bound.
func (s *Store) SetLength(f clamp.Field, l clamp.Length) {
	s.update(func(p clamp.Params) clamp.Params {
		return p.WithLength(f, l)
	})
}

// SetUnit switches the unit of a bound and converts its number so the
// pixel magnitude stays the same.
func (s *Store) SetUnit(f clamp.Field, u clamp.Unit) {
	s.update(func(p clamp.Params) clamp.Params {
		l := p.Length(f)
		if l.Unit == u {
			return p
		}
		converted := clamp.ConvertUnit(l.Value, l.Unit, u, p.RootFontSizePx)
		return p.WithLength(f, clamp.Length{Value: converted, Unit: u})
	})
}

// ToggleUnit flips a bound between px and rem.
func (s *Store) ToggleUnit(f clamp.Field) {
	s.SetUnit(f, s.Params().Length(f).Unit.Toggle())
}

// Replace swaps in a whole parameter set.
func (s *Store) Replace(p clamp.Params) {
	s.update(func(clamp.Params) clamp.Params { return p })
}

func (s *Store) update(fn func(clamp.Params) clamp.Params) {
	s.mu.Lock()
	next := fn(s.params)
	if next == s.params {
		s.mu.Unlock()
		return
	}
	s.params = next
	s.result = clamp.Generate(next)
	snap := Snapshot{Params: s.params, Result: s.result}
	fns := make([]func(Snapshot), len(s.observers))
	for i, o := range s.observers {
		fns[i] = o.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// ObserverCount returns the number of registered observers.
func (s *Store) ObserverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}
