package latch

// EventLatch is a queueing event latch: Dispatch releases the latch with
// the event as current and runs the handlers; a Dispatch issued from
// inside a handler is enqueued instead of interleaved, then drained in
// arrival order (reset-then-release per queued event) once the in-flight
// dispatch unwinds. Handlers therefore observe events in strict FIFO
// order, and Current always reflects the event of the handler invocation
// in progress.
type EventLatch[T any] struct {
	released    bool
	dispatching bool
	current     T
	queue       []T
	fns         []func()
}

func NewEventLatch[T any]() *EventLatch[T] {
	return &EventLatch[T]{}
}

func (l *EventLatch[T]) Released() bool {
	return l.released
}

// Current returns the event of the most recent release. Reading before the
// first release is a programming error.
func (l *EventLatch[T]) Current() T {
	if !l.released {
		panic("event latch has not released")
	}
	return l.current
}

// OnRelease attaches fn, running it immediately if the latch is currently
// released.
func (l *EventLatch[T]) OnRelease(fn func()) DetachFunc {
	if l.released {
		fn()
	}
	l.fns = append(l.fns, fn)
	i := len(l.fns) - 1
	return func() {
		if i < len(l.fns) {
			l.fns[i] = nil
		}
	}
}

// Dispatch releases the latch with event, or enqueues it when a dispatch
// is already in flight.
func (l *EventLatch[T]) Dispatch(event T) {
	if l.dispatching {
		l.queue = append(l.queue, event)
		return
	}
	l.dispatching = true
	l.fire(event)
	for len(l.queue) > 0 {
		next := l.queue[0]
		l.queue = l.queue[1:]
		l.released = false
		l.fire(next)
	}
	l.dispatching = false
}

func (l *EventLatch[T]) fire(event T) {
	l.current = event
	l.released = true
	for _, fn := range l.fns {
		if fn != nil {
			fn()
		}
	}
}
