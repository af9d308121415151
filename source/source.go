package source

import "github.com/lowkeylabs/sourcekit/subscribable"

// Subscription couples a controller subscription with the snapshot
// accessor of the source it came from. S is the snapshot shape, E the
// event shape.
type Subscription[S, E any] struct {
	*subscribable.Subscription[E]
	snapshot func() S
}

// Snapshot returns the source's current state. Reading through a disposed
// subscription is a programming error.
func (s *Subscription[S, E]) Snapshot() S {
	if s.Disposed() {
		panic("subscription has been disposed")
	}
	return s.snapshot()
}

// ValueSource is a scalar source: a current value plus change events
// carrying the new value.
type ValueSource[T comparable] interface {
	Snapshot() T
	Subscribe(receiver subscribable.Receiver[T]) *Subscription[T, T]
}

// ArraySource is an ordered-collection source; events carry index-based
// changes.
type ArraySource[T comparable] interface {
	Snapshot() []T
	Subscribe(receiver subscribable.Receiver[[]ArrayChange[T]]) *Subscription[[]T, []ArrayChange[T]]
}
