package subscribable

// Receiver is the required half of the subscriber contract: it is handed
// every event dispatched while its subscription is alive.
type Receiver[E any] interface {
	Signal(event E)
}

// EndReceiver is implemented by receivers that want the terminal signal.
type EndReceiver interface {
	End()
}

// UnsubscribedReceiver is implemented by receivers that want to know when
// their subscription has been disposed.
type UnsubscribedReceiver interface {
	Unsubscribed()
}

// HoldReceiver is implemented by receivers that batch: Hold announces that
// upstream work is starting, Release that it is done. Receivers that buffer
// must ref-count, since several upstreams may hold the same receiver.
type HoldReceiver interface {
	Hold()
	Release()
}

// ReceiverFunc adapts a plain callback to the Receiver contract.
type ReceiverFunc[E any] func(event E)

func (f ReceiverFunc[E]) Signal(event E) { f(event) }

// DemandHooks lets the owner of a controller wire an external resource in
// sync with demand. Every field is optional.
type DemandHooks struct {
	// Online runs on the 0->1 demand transition, before the subscription
	// that caused it is usable, so the owner can materialize state the new
	// subscriber will read synchronously.
	Online func()
	// Offline runs on the N->0 demand transition.
	Offline func()
	// Subscribe runs after each new subscription is recorded.
	Subscribe func()
	// Unsubscribe runs after each subscription is disposed.
	Unsubscribe func()
}

// Controller is the publish/subscribe primitive every source is built on:
// an ordered subscriber list, a demand ref-count distinct from the
// subscriber count, synchronous dispatch, and a terminal ended state.
//
// A controller is single-turn: it must only be touched from one logical
// call stack at a time. Re-entrancy (a receiver subscribing, disposing or
// signalling from inside a callback) is supported; goroutines are not.
type Controller[E any] struct {
	sched  *Scheduler
	hooks  DemandHooks
	subs   []*Subscription[E]
	demand int

	ended     bool
	endQueued bool
	lateEnds  []*Subscription[E]
}

func NewController[E any](sched *Scheduler, hooks DemandHooks) *Controller[E] {
	return &Controller[E]{sched: sched, hooks: hooks}
}

// Subscription is the sole external handle on a subscriber record.
// Disposing it is the only way to remove the record.
type Subscription[E any] struct {
	ctrl       *Controller[E]
	receiver   Receiver[E]
	terminated bool
}

// Subscribe registers receiver and returns its disposer handle. Demand is
// bumped (possibly firing Online) before the record is appended, so no
// event can reach the receiver before Subscribe returns. Subscribing to an
// ended controller is allowed; the receiver's End is delivered on the next
// scheduler flush, never synchronously.
func (c *Controller[E]) Subscribe(receiver Receiver[E]) *Subscription[E] {
	c.IncrementDemand()
	sub := &Subscription[E]{ctrl: c, receiver: receiver}
	c.subs = append(c.subs, sub)
	if c.hooks.Subscribe != nil {
		c.hooks.Subscribe()
	}
	if c.ended {
		c.queueLateEnd(sub)
	}
	return sub
}

// SubscribeFunc subscribes a bare callback.
func (c *Controller[E]) SubscribeFunc(fn func(event E)) *Subscription[E] {
	return c.Subscribe(ReceiverFunc[E](fn))
}

// IncrementDemand takes a manual demand hold. Sources use it to force
// themselves online before seeding a first subscriber with current state.
func (c *Controller[E]) IncrementDemand() {
	c.demand++
	if c.demand == 1 && c.hooks.Online != nil {
		c.hooks.Online()
	}
}

// DecrementDemand releases a manual demand hold. Releasing at zero is a
// no-op, mirroring SignalStatus.ReleaseHold.
func (c *Controller[E]) DecrementDemand() {
	if c.demand == 0 {
		return
	}
	c.demand--
	if c.demand == 0 && c.hooks.Offline != nil {
		c.hooks.Offline()
	}
}

// Signal dispatches event to every currently subscribed receiver, in
// subscription order. Receivers subscribed during dispatch do not see the
// in-flight event; receivers disposed during dispatch are skipped.
// Signalling an ended controller is a programming error.
func (c *Controller[E]) Signal(event E) {
	if c.ended {
		panic("signal after end")
	}
	for _, sub := range c.snapshot() {
		if sub.terminated {
			continue
		}
		sub.receiver.Signal(event)
	}
}

// SignalHold announces to hold-aware receivers that batched work is
// starting on this source.
func (c *Controller[E]) SignalHold() {
	if c.ended {
		panic("signal after end")
	}
	for _, sub := range c.snapshot() {
		if sub.terminated {
			continue
		}
		if hr, ok := sub.receiver.(HoldReceiver); ok {
			hr.Hold()
		}
	}
}

// SignalRelease announces that batched work is done.
func (c *Controller[E]) SignalRelease() {
	if c.ended {
		panic("signal after end")
	}
	for _, sub := range c.snapshot() {
		if sub.terminated {
			continue
		}
		if hr, ok := sub.receiver.(HoldReceiver); ok {
			hr.Release()
		}
	}
}

// End marks the controller terminal and delivers End to every current
// subscriber. Idempotent. It does not release demand: each subscription
// must still be disposed.
func (c *Controller[E]) End() {
	if c.ended {
		return
	}
	c.ended = true
	for _, sub := range c.snapshot() {
		if sub.terminated {
			continue
		}
		if er, ok := sub.receiver.(EndReceiver); ok {
			er.End()
		}
	}
}

// queueLateEnd defers End delivery for a subscriber that joined after the
// controller ended. One task per end-wave regardless of how many late
// subscribers pile up before the flush.
func (c *Controller[E]) queueLateEnd(sub *Subscription[E]) {
	c.lateEnds = append(c.lateEnds, sub)
	if c.endQueued {
		return
	}
	c.endQueued = true
	c.sched.Defer(func() {
		c.endQueued = false
		pending := c.lateEnds
		c.lateEnds = nil
		for _, late := range pending {
			if late.terminated {
				continue
			}
			if er, ok := late.receiver.(EndReceiver); ok {
				er.End()
			}
		}
	})
}

func (c *Controller[E]) DemandExists() bool {
	return c.demand > 0
}

func (c *Controller[E]) SubscriberCount() int {
	return len(c.subs)
}

func (c *Controller[E]) IsEnded() bool {
	return c.ended
}

// snapshot copies the subscriber list so dispatch iterates the list as it
// existed at dispatch start, immune to mid-dispatch adds and removals.
func (c *Controller[E]) snapshot() []*Subscription[E] {
	out := make([]*Subscription[E], len(c.subs))
	copy(out, c.subs)
	return out
}

// Dispose removes the record, releases its demand, and notifies the
// receiver. Safe to call any number of times.
func (s *Subscription[E]) Dispose() {
	if s.terminated {
		return
	}
	s.terminated = true
	c := s.ctrl
	for i, sub := range c.subs {
		if sub == s {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.DecrementDemand()
	if c.hooks.Unsubscribe != nil {
		c.hooks.Unsubscribe()
	}
	if ur, ok := s.receiver.(UnsubscribedReceiver); ok {
		ur.Unsubscribed()
	}
}

func (s *Subscription[E]) Disposed() bool {
	return s.terminated
}
