package source

import (
	"slices"

	"github.com/lowkeylabs/sourcekit/subscribable"
)

// mappedValue is the element transform over a scalar source. It holds no
// upstream subscription and no cache while nobody subscribes; the first
// subscriber takes it online (subscribe upstream, rebuild the cache from
// the upstream snapshot) and the last one takes it offline again.
type mappedValue[T, U comparable] struct {
	upstream ValueSource[T]
	fn       func(T) U
	ctrl     *subscribable.Controller[U]
	status   subscribable.SignalStatus[U]

	online  bool
	cache   U
	preHold U
	upSub   *Subscription[T, T]
}

// MapValue derives a read-only scalar source whose value is fn applied to
// upstream's value.
func MapValue[T, U comparable](sched *subscribable.Scheduler, upstream ValueSource[T], fn func(T) U) ValueSource[U] {
	m := &mappedValue[T, U]{upstream: upstream, fn: fn}
	m.ctrl = subscribable.NewController[U](sched, subscribable.DemandHooks{
		Online:  m.goOnline,
		Offline: m.goOffline,
	})
	return m
}

func (m *mappedValue[T, U]) goOnline() {
	m.upSub = m.upstream.Subscribe(m)
	m.cache = m.fn(m.upstream.Snapshot())
	m.online = true
}

func (m *mappedValue[T, U]) goOffline() {
	m.upSub.Dispose()
	m.upSub = nil
	m.status.Reset()
	m.online = false
	var zero U
	m.cache = zero
}

func (m *mappedValue[T, U]) Snapshot() U {
	if !m.online {
		panic("source is offline, snapshot unavailable")
	}
	return m.cache
}

func (m *mappedValue[T, U]) Subscribe(receiver subscribable.Receiver[U]) *Subscription[U, U] {
	return &Subscription[U, U]{
		Subscription: m.ctrl.Subscribe(receiver),
		snapshot:     m.Snapshot,
	}
}

// Signal is the upstream event callback: recompute, forward only when the
// transform produced an observable difference.
func (m *mappedValue[T, U]) Signal(value T) {
	next := m.fn(value)
	if next == m.cache {
		return
	}
	m.cache = next
	if m.status.IsOnHold() {
		return
	}
	m.ctrl.Signal(next)
}

func (m *mappedValue[T, U]) Hold() {
	if m.status.InitiateHold() {
		m.preHold = m.cache
		m.ctrl.SignalHold()
	}
}

func (m *mappedValue[T, U]) Release() {
	if !m.status.ReleaseHold() {
		return
	}
	if m.cache != m.preHold {
		m.ctrl.Signal(m.cache)
	}
	m.ctrl.SignalRelease()
	if m.status.IsEnded() {
		m.ctrl.End()
	}
}

func (m *mappedValue[T, U]) End() {
	if m.status.IsOnHold() {
		m.status.HoldEnd()
		return
	}
	m.ctrl.End()
}

// filteredValue forwards only values accepted by the predicate. Its
// snapshot is the last accepted upstream value, or the zero value while
// nothing has been accepted yet.
type filteredValue[T comparable] struct {
	upstream ValueSource[T]
	pred     func(T) bool
	ctrl     *subscribable.Controller[T]
	status   subscribable.SignalStatus[T]

	online  bool
	cache   T
	preHold T
	upSub   *Subscription[T, T]
}

// FilterValue derives a read-only scalar source that tracks upstream
// values satisfying pred.
func FilterValue[T comparable](sched *subscribable.Scheduler, upstream ValueSource[T], pred func(T) bool) ValueSource[T] {
	f := &filteredValue[T]{upstream: upstream, pred: pred}
	f.ctrl = subscribable.NewController[T](sched, subscribable.DemandHooks{
		Online:  f.goOnline,
		Offline: f.goOffline,
	})
	return f
}

func (f *filteredValue[T]) goOnline() {
	f.upSub = f.upstream.Subscribe(f)
	var zero T
	f.cache = zero
	if v := f.upstream.Snapshot(); f.pred(v) {
		f.cache = v
	}
	f.online = true
}

func (f *filteredValue[T]) goOffline() {
	f.upSub.Dispose()
	f.upSub = nil
	f.status.Reset()
	f.online = false
	var zero T
	f.cache = zero
}

func (f *filteredValue[T]) Snapshot() T {
	if !f.online {
		panic("source is offline, snapshot unavailable")
	}
	return f.cache
}

func (f *filteredValue[T]) Subscribe(receiver subscribable.Receiver[T]) *Subscription[T, T] {
	return &Subscription[T, T]{
		Subscription: f.ctrl.Subscribe(receiver),
		snapshot:     f.Snapshot,
	}
}

func (f *filteredValue[T]) Signal(value T) {
	if !f.pred(value) || value == f.cache {
		return
	}
	f.cache = value
	if f.status.IsOnHold() {
		return
	}
	f.ctrl.Signal(value)
}

func (f *filteredValue[T]) Hold() {
	if f.status.InitiateHold() {
		f.preHold = f.cache
		f.ctrl.SignalHold()
	}
}

func (f *filteredValue[T]) Release() {
	if !f.status.ReleaseHold() {
		return
	}
	if f.cache != f.preHold {
		f.ctrl.Signal(f.cache)
	}
	f.ctrl.SignalRelease()
	if f.status.IsEnded() {
		f.ctrl.End()
	}
}

func (f *filteredValue[T]) End() {
	if f.status.IsOnHold() {
		f.status.HoldEnd()
		return
	}
	f.ctrl.End()
}

// mappedArray is the element-wise transform over an array source,
// maintaining a transformed copy of the upstream collection while online.
type mappedArray[T, U comparable] struct {
	upstream ArraySource[T]
	fn       func(T) U
	ctrl     *subscribable.Controller[[]ArrayChange[U]]
	status   subscribable.SignalStatus[ArrayChange[U]]

	online  bool
	cache   []U
	preHold []U
	upSub   *Subscription[[]T, []ArrayChange[T]]
}

// MapArray derives a read-only array source whose items are fn applied
// element-wise to upstream's items.
func MapArray[T, U comparable](sched *subscribable.Scheduler, upstream ArraySource[T], fn func(T) U) ArraySource[U] {
	m := &mappedArray[T, U]{upstream: upstream, fn: fn}
	m.ctrl = subscribable.NewController[[]ArrayChange[U]](sched, subscribable.DemandHooks{
		Online:  m.goOnline,
		Offline: m.goOffline,
	})
	return m
}

func (m *mappedArray[T, U]) goOnline() {
	m.upSub = m.upstream.Subscribe(m)
	items := m.upstream.Snapshot()
	m.cache = make([]U, len(items))
	for i, v := range items {
		m.cache[i] = m.fn(v)
	}
	m.online = true
}

func (m *mappedArray[T, U]) goOffline() {
	m.upSub.Dispose()
	m.upSub = nil
	m.status.Reset()
	m.online = false
	m.cache = nil
	m.preHold = nil
}

func (m *mappedArray[T, U]) Snapshot() []U {
	if !m.online {
		panic("source is offline, snapshot unavailable")
	}
	return slices.Clone(m.cache)
}

func (m *mappedArray[T, U]) Subscribe(receiver subscribable.Receiver[[]ArrayChange[U]]) *Subscription[[]U, []ArrayChange[U]] {
	return &Subscription[[]U, []ArrayChange[U]]{
		Subscription: m.ctrl.Subscribe(receiver),
		snapshot:     m.Snapshot,
	}
}

func (m *mappedArray[T, U]) Signal(changes []ArrayChange[T]) {
	var out []ArrayChange[U]
	for _, ch := range changes {
		switch ch.Kind {
		case ChangeSet:
			next := m.fn(ch.Value)
			if m.cache[ch.Index] == next {
				continue
			}
			m.cache[ch.Index] = next
			out = append(out, ArrayChange[U]{Kind: ChangeSet, Index: ch.Index, Value: next})
		case ChangeInsert:
			next := m.fn(ch.Value)
			m.cache = slices.Insert(m.cache, ch.Index, next)
			out = append(out, ArrayChange[U]{Kind: ChangeInsert, Index: ch.Index, Value: next})
		case ChangeDelete:
			removed := m.cache[ch.Index]
			m.cache = slices.Delete(m.cache, ch.Index, ch.Index+1)
			out = append(out, ArrayChange[U]{Kind: ChangeDelete, Index: ch.Index, Value: removed})
		case ChangeClear:
			if len(m.cache) == 0 {
				continue
			}
			m.cache = nil
			out = append(out, ArrayChange[U]{Kind: ChangeClear})
		}
	}
	if len(out) == 0 {
		return
	}
	if m.status.IsOnHold() {
		for _, ch := range out {
			m.status.HoldEvent(ch)
		}
		return
	}
	m.ctrl.Signal(out)
}

func (m *mappedArray[T, U]) Hold() {
	if m.status.InitiateHold() {
		m.preHold = slices.Clone(m.cache)
		m.ctrl.SignalHold()
	}
}

func (m *mappedArray[T, U]) Release() {
	if !m.status.ReleaseHold() {
		return
	}
	buf := m.status.Flush()
	if len(buf) > 0 && !slices.Equal(m.cache, m.preHold) {
		m.ctrl.Signal(buf)
	}
	m.preHold = nil
	m.ctrl.SignalRelease()
	if m.status.IsEnded() {
		m.ctrl.End()
	}
}

func (m *mappedArray[T, U]) End() {
	if m.status.IsOnHold() {
		m.status.HoldEnd()
		return
	}
	m.ctrl.End()
}

// inputReceiver adapts one upstream of a multi-input combinator, routing
// every callback into the shared combinator state.
type inputReceiver[T comparable] struct {
	onSignal  func()
	onEnd     func()
	onHold    func()
	onRelease func()
}

func (r *inputReceiver[T]) Signal(T) { r.onSignal() }
func (r *inputReceiver[T]) End()     { r.onEnd() }
func (r *inputReceiver[T]) Hold()    { r.onHold() }
func (r *inputReceiver[T]) Release() { r.onRelease() }
