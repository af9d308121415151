package subscribable

// SignalStatus is the ref-counted hold/release buffer. While at least one
// hold is open, events are buffered in arrival order and terminal signals
// are flagged for replay after the buffered events.
//
// The ref-count exists because several independent upstreams may hold the
// same downstream receiver; it must only flush once all of them release.
type SignalStatus[E any] struct {
	holds        int
	buf          []E
	ended        bool
	unsubscribed bool
}

// InitiateHold opens a hold and reports whether it was the outermost one.
// Only the outermost hold should propagate further downstream.
func (s *SignalStatus[E]) InitiateHold() bool {
	s.holds++
	return s.holds == 1
}

// ReleaseHold closes a hold and reports whether it was the last one.
// Releasing with no open hold is a no-op.
func (s *SignalStatus[E]) ReleaseHold() bool {
	if s.holds == 0 {
		return false
	}
	s.holds--
	return s.holds == 0
}

// HoldEvent buffers one event. Only valid while a hold is open.
func (s *SignalStatus[E]) HoldEvent(event E) {
	if s.holds == 0 {
		panic("hold event without an active hold")
	}
	s.buf = append(s.buf, event)
}

// HoldEnd records a deferred end signal, to be replayed after the buffer.
func (s *SignalStatus[E]) HoldEnd() {
	s.ended = true
}

// HoldUnsubscribed records a deferred unsubscribed signal.
func (s *SignalStatus[E]) HoldUnsubscribed() {
	s.unsubscribed = true
}

// Flush drains the buffer in arrival order. The buffer may be refilled by
// later holds and flushed again.
func (s *SignalStatus[E]) Flush() []E {
	out := s.buf
	s.buf = nil
	return out
}

// Reset returns the status to its initial state: no open holds, empty
// buffer, no deferred terminals. Sources that drop their upstream
// subscriptions on the offline transition must reset, since the releases
// matching any open holds will never arrive.
func (s *SignalStatus[E]) Reset() {
	s.holds = 0
	s.buf = nil
	s.ended = false
	s.unsubscribed = false
}

func (s *SignalStatus[E]) IsOnHold() bool {
	return s.holds > 0
}

func (s *SignalStatus[E]) HasBufferedEvents() bool {
	return len(s.buf) > 0
}

func (s *SignalStatus[E]) IsEnded() bool {
	return s.ended
}

func (s *SignalStatus[E]) IsUnsubscribed() bool {
	return s.unsubscribed
}
