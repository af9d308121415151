package source

import "github.com/lowkeylabs/sourcekit/subscribable"

type combined2[T0, T1, O comparable] struct {
	src0 ValueSource[T0]
	src1 ValueSource[T1]
	fn   func(T0, T1) O

	sched  *subscribable.Scheduler
	ctrl   *subscribable.Controller[O]
	status subscribable.SignalStatus[O]

	online   bool
	dirty    bool
	queued   bool
	cache    O
	lastSent O

	sub0 *Subscription[T0, T0]
	sub1 *Subscription[T1, T1]
}

func Combine2[T0, T1, O comparable](
	sched *subscribable.Scheduler,
	src0 ValueSource[T0],
	src1 ValueSource[T1],
	fn func(T0, T1) O,
) ValueSource[O] {
	c := &combined2[T0, T1, O]{
		sched: sched,
		src0:  src0,
		src1:  src1,
		fn:    fn,
	}
	c.ctrl = subscribable.NewController[O](sched, subscribable.DemandHooks{
		Online:  c.goOnline,
		Offline: c.goOffline,
	})
	return c
}

func (c *combined2[T0, T1, O]) goOnline() {
	c.sub0 = c.src0.Subscribe(&inputReceiver[T0]{
		onSignal:  c.markDirty,
		onEnd:     c.upstreamEnd,
		onHold:    c.upstreamHold,
		onRelease: c.upstreamRelease,
	})
	c.sub1 = c.src1.Subscribe(&inputReceiver[T1]{
		onSignal:  c.markDirty,
		onEnd:     c.upstreamEnd,
		onHold:    c.upstreamHold,
		onRelease: c.upstreamRelease,
	})
	c.cache = c.recompute()
	c.dirty = false
	c.lastSent = c.cache
	c.online = true
}

func (c *combined2[T0, T1, O]) goOffline() {
	c.sub0.Dispose()
	c.sub0 = nil
	c.sub1.Dispose()
	c.sub1 = nil
	c.status.Reset()
	c.online = false
	c.dirty = false
	var zero O
	c.cache = zero
	c.lastSent = zero
}

func (c *combined2[T0, T1, O]) recompute() O {
	return c.fn(
		c.src0.Snapshot(),
		c.src1.Snapshot(),
	)
}

func (c *combined2[T0, T1, O]) Snapshot() O {
	if !c.online {
		panic("source is offline, snapshot unavailable")
	}
	if c.dirty {
		c.dirty = false
		c.cache = c.recompute()
	}
	return c.cache
}

func (c *combined2[T0, T1, O]) Subscribe(receiver subscribable.Receiver[O]) *Subscription[O, O] {
	return &Subscription[O, O]{
		Subscription: c.ctrl.Subscribe(receiver),
		snapshot:     c.Snapshot,
	}
}

func (c *combined2[T0, T1, O]) markDirty() {
	c.dirty = true
	if c.queued {
		return
	}
	c.queued = true
	c.sched.Defer(c.flushDirty)
}

func (c *combined2[T0, T1, O]) flushDirty() {
	c.queued = false
	if !c.online || c.status.IsOnHold() || c.ctrl.IsEnded() {
		return
	}
	if c.dirty {
		c.dirty = false
		c.cache = c.recompute()
	}
	if c.cache == c.lastSent {
		return
	}
	c.lastSent = c.cache
	c.ctrl.Signal(c.lastSent)
}

func (c *combined2[T0, T1, O]) upstreamHold() {
	if c.status.InitiateHold() && !c.ctrl.IsEnded() {
		c.ctrl.SignalHold()
	}
}

func (c *combined2[T0, T1, O]) upstreamRelease() {
	if !c.status.ReleaseHold() || c.ctrl.IsEnded() {
		return
	}
	next := c.Snapshot()
	if next != c.lastSent {
		c.lastSent = next
		c.ctrl.Signal(next)
	}
	c.ctrl.SignalRelease()
	if c.status.IsEnded() {
		c.ctrl.End()
	}
}

func (c *combined2[T0, T1, O]) upstreamEnd() {
	if c.status.IsOnHold() {
		c.status.HoldEnd()
		return
	}
	if !c.ctrl.IsEnded() {
		c.ctrl.End()
	}
}

type combined3[T0, T1, T2, O comparable] struct {
	src0 ValueSource[T0]
	src1 ValueSource[T1]
	src2 ValueSource[T2]
	fn   func(T0, T1, T2) O

	sched  *subscribable.Scheduler
	ctrl   *subscribable.Controller[O]
	status subscribable.SignalStatus[O]

	online   bool
	dirty    bool
	queued   bool
	cache    O
	lastSent O

	sub0 *Subscription[T0, T0]
	sub1 *Subscription[T1, T1]
	sub2 *Subscription[T2, T2]
}

func Combine3[T0, T1, T2, O comparable](
	sched *subscribable.Scheduler,
	src0 ValueSource[T0],
	src1 ValueSource[T1],
	src2 ValueSource[T2],
	fn func(T0, T1, T2) O,
) ValueSource[O] {
	c := &combined3[T0, T1, T2, O]{
		sched: sched,
		src0:  src0,
		src1:  src1,
		src2:  src2,
		fn:    fn,
	}
	c.ctrl = subscribable.NewController[O](sched, subscribable.DemandHooks{
		Online:  c.goOnline,
		Offline: c.goOffline,
	})
	return c
}

func (c *combined3[T0, T1, T2, O]) goOnline() {
	c.sub0 = c.src0.Subscribe(&inputReceiver[T0]{
		onSignal:  c.markDirty,
		onEnd:     c.upstreamEnd,
		onHold:    c.upstreamHold,
		onRelease: c.upstreamRelease,
	})
	c.sub1 = c.src1.Subscribe(&inputReceiver[T1]{
		onSignal:  c.markDirty,
		onEnd:     c.upstreamEnd,
		onHold:    c.upstreamHold,
		onRelease: c.upstreamRelease,
	})
	c.sub2 = c.src2.Subscribe(&inputReceiver[T2]{
		onSignal:  c.markDirty,
		onEnd:     c.upstreamEnd,
		onHold:    c.upstreamHold,
		onRelease: c.upstreamRelease,
	})
	c.cache = c.recompute()
	c.dirty = false
	c.lastSent = c.cache
	c.online = true
}

func (c *combined3[T0, T1, T2, O]) goOffline() {
	c.sub0.Dispose()
	c.sub0 = nil
	c.sub1.Dispose()
	c.sub1 = nil
	c.sub2.Dispose()
	c.sub2 = nil
	c.status.Reset()
	c.online = false
	c.dirty = false
	var zero O
	c.cache = zero
	c.lastSent = zero
}

func (c *combined3[T0, T1, T2, O]) recompute() O {
	return c.fn(
		c.src0.Snapshot(),
		c.src1.Snapshot(),
		c.src2.Snapshot(),
	)
}

func (c *combined3[T0, T1, T2, O]) Snapshot() O {
	if !c.online {
		panic("source is offline, snapshot unavailable")
	}
	if c.dirty {
		c.dirty = false
		c.cache = c.recompute()
	}
	return c.cache
}

func (c *combined3[T0, T1, T2, O]) Subscribe(receiver subscribable.Receiver[O]) *Subscription[O, O] {
	return &Subscription[O, O]{
		Subscription: c.ctrl.Subscribe(receiver),
		snapshot:     c.Snapshot,
	}
}

func (c *combined3[T0, T1, T2, O]) markDirty() {
	c.dirty = true
	if c.queued {
		return
	}
	c.queued = true
	c.sched.Defer(c.flushDirty)
}

func (c *combined3[T0, T1, T2, O]) flushDirty() {
	c.queued = false
	if !c.online || c.status.IsOnHold() || c.ctrl.IsEnded() {
		return
	}
	if c.dirty {
		c.dirty = false
		c.cache = c.recompute()
	}
	if c.cache == c.lastSent {
		return
	}
	c.lastSent = c.cache
	c.ctrl.Signal(c.lastSent)
}

func (c *combined3[T0, T1, T2, O]) upstreamHold() {
	if c.status.InitiateHold() && !c.ctrl.IsEnded() {
		c.ctrl.SignalHold()
	}
}

func (c *combined3[T0, T1, T2, O]) upstreamRelease() {
	if !c.status.ReleaseHold() || c.ctrl.IsEnded() {
		return
	}
	next := c.Snapshot()
	if next != c.lastSent {
		c.lastSent = next
		c.ctrl.Signal(next)
	}
	c.ctrl.SignalRelease()
	if c.status.IsEnded() {
		c.ctrl.End()
	}
}

func (c *combined3[T0, T1, T2, O]) upstreamEnd() {
	if c.status.IsOnHold() {
		c.status.HoldEnd()
		return
	}
	if !c.ctrl.IsEnded() {
		c.ctrl.End()
	}
}

type combined4[T0, T1, T2, T3, O comparable] struct {
	src0 ValueSource[T0]
	src1 ValueSource[T1]
	src2 ValueSource[T2]
	src3 ValueSource[T3]
	fn   func(T0, T1, T2, T3) O

	sched  *subscribable.Scheduler
	ctrl   *subscribable.Controller[O]
	status subscribable.SignalStatus[O]

	online   bool
	dirty    bool
	queued   bool
	cache    O
	lastSent O

	sub0 *Subscription[T0, T0]
	sub1 *Subscription[T1, T1]
	sub2 *Subscription[T2, T2]
	sub3 *Subscription[T3, T3]
}

func Combine4[T0, T1, T2, T3, O comparable](
	sched *subscribable.Scheduler,
	src0 ValueSource[T0],
	src1 ValueSource[T1],
	src2 ValueSource[T2],
	src3 ValueSource[T3],
	fn func(T0, T1, T2, T3) O,
) ValueSource[O] {
	c := &combined4[T0, T1, T2, T3, O]{
		sched: sched,
		src0:  src0,
		src1:  src1,
		src2:  src2,
		src3:  src3,
		fn:    fn,
	}
	c.ctrl = subscribable.NewController[O](sched, subscribable.DemandHooks{
		Online:  c.goOnline,
		Offline: c.goOffline,
	})
	return c
}

func (c *combined4[T0, T1, T2, T3, O]) goOnline() {
	c.sub0 = c.src0.Subscribe(&inputReceiver[T0]{
		onSignal:  c.markDirty,
		onEnd:     c.upstreamEnd,
		onHold:    c.upstreamHold,
		onRelease: c.upstreamRelease,
	})
	c.sub1 = c.src1.Subscribe(&inputReceiver[T1]{
		onSignal:  c.markDirty,
		onEnd:     c.upstreamEnd,
		onHold:    c.upstreamHold,
		onRelease: c.upstreamRelease,
	})
	c.sub2 = c.src2.Subscribe(&inputReceiver[T2]{
		onSignal:  c.markDirty,
		onEnd:     c.upstreamEnd,
		onHold:    c.upstreamHold,
		onRelease: c.upstreamRelease,
	})
	c.sub3 = c.src3.Subscribe(&inputReceiver[T3]{
		onSignal:  c.markDirty,
		onEnd:     c.upstreamEnd,
		onHold:    c.upstreamHold,
		onRelease: c.upstreamRelease,
	})
	c.cache = c.recompute()
	c.dirty = false
	c.lastSent = c.cache
	c.online = true
}

func (c *combined4[T0, T1, T2, T3, O]) goOffline() {
	c.sub0.Dispose()
	c.sub0 = nil
	c.sub1.Dispose()
	c.sub1 = nil
	c.sub2.Dispose()
	c.sub2 = nil
	c.sub3.Dispose()
	c.sub3 = nil
	c.status.Reset()
	c.online = false
	c.dirty = false
	var zero O
	c.cache = zero
	c.lastSent = zero
}

func (c *combined4[T0, T1, T2, T3, O]) recompute() O {
	return c.fn(
		c.src0.Snapshot(),
		c.src1.Snapshot(),
		c.src2.Snapshot(),
		c.src3.Snapshot(),
	)
}

func (c *combined4[T0, T1, T2, T3, O]) Snapshot() O {
	if !c.online {
		panic("source is offline, snapshot unavailable")
	}
	if c.dirty {
		c.dirty = false
		c.cache = c.recompute()
	}
	return c.cache
}

func (c *combined4[T0, T1, T2, T3, O]) Subscribe(receiver subscribable.Receiver[O]) *Subscription[O, O] {
	return &Subscription[O, O]{
		Subscription: c.ctrl.Subscribe(receiver),
		snapshot:     c.Snapshot,
	}
}

func (c *combined4[T0, T1, T2, T3, O]) markDirty() {
	c.dirty = true
	if c.queued {
		return
	}
	c.queued = true
	c.sched.Defer(c.flushDirty)
}

func (c *combined4[T0, T1, T2, T3, O]) flushDirty() {
	c.queued = false
	if !c.online || c.status.IsOnHold() || c.ctrl.IsEnded() {
		return
	}
	if c.dirty {
		c.dirty = false
		c.cache = c.recompute()
	}
	if c.cache == c.lastSent {
		return
	}
	c.lastSent = c.cache
	c.ctrl.Signal(c.lastSent)
}

func (c *combined4[T0, T1, T2, T3, O]) upstreamHold() {
	if c.status.InitiateHold() && !c.ctrl.IsEnded() {
		c.ctrl.SignalHold()
	}
}

func (c *combined4[T0, T1, T2, T3, O]) upstreamRelease() {
	if !c.status.ReleaseHold() || c.ctrl.IsEnded() {
		return
	}
	next := c.Snapshot()
	if next != c.lastSent {
		c.lastSent = next
		c.ctrl.Signal(next)
	}
	c.ctrl.SignalRelease()
	if c.status.IsEnded() {
		c.ctrl.End()
	}
}

func (c *combined4[T0, T1, T2, T3, O]) upstreamEnd() {
	if c.status.IsOnHold() {
		c.status.HoldEnd()
		return
	}
	if !c.ctrl.IsEnded() {
		c.ctrl.End()
	}
}
