package source

import (
	"maps"

	"github.com/lowkeylabs/sourcekit/subscribable"
)

// ManualMap is the writable keyed-collection source.
type ManualMap[K, V comparable] struct {
	items     map[K]V
	preHold   map[K]V
	ctrl      *subscribable.Controller[[]MapChange[K, V]]
	status    subscribable.SignalStatus[MapChange[K, V]]
	finalized bool
}

func NewMap[K, V comparable](sched *subscribable.Scheduler, initial map[K]V, hooks ...subscribable.DemandHooks) *ManualMap[K, V] {
	var h subscribable.DemandHooks
	if len(hooks) > 0 {
		h = hooks[0]
	}
	items := map[K]V{}
	maps.Copy(items, initial)
	return &ManualMap[K, V]{
		items: items,
		ctrl:  subscribable.NewController[[]MapChange[K, V]](sched, h),
	}
}

// Snapshot returns a copy of the current entries.
func (m *ManualMap[K, V]) Snapshot() map[K]V {
	out := map[K]V{}
	maps.Copy(out, m.items)
	return out
}

func (m *ManualMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

func (m *ManualMap[K, V]) Len() int {
	return len(m.items)
}

// Set writes key to value. Writing the value already present is a no-op.
func (m *ManualMap[K, V]) Set(key K, value V) {
	m.mutable()
	if prev, ok := m.items[key]; ok && prev == value {
		return
	}
	m.items[key] = value
	m.dispatch(MapChange[K, V]{Kind: ChangeSet, Key: key, Value: value})
}

// Delete removes key. Deleting an absent key is a no-op. The change
// carries the removed value.
func (m *ManualMap[K, V]) Delete(key K) {
	m.mutable()
	prev, ok := m.items[key]
	if !ok {
		return
	}
	delete(m.items, key)
	m.dispatch(MapChange[K, V]{Kind: ChangeDelete, Key: key, Value: prev})
}

// Clear removes every entry. Clearing an empty map is a no-op.
func (m *ManualMap[K, V]) Clear() {
	m.mutable()
	if len(m.items) == 0 {
		return
	}
	m.items = map[K]V{}
	m.dispatch(MapChange[K, V]{Kind: ChangeClear})
}

func (m *ManualMap[K, V]) Hold() {
	if m.status.InitiateHold() {
		m.preHold = map[K]V{}
		maps.Copy(m.preHold, m.items)
		m.ctrl.SignalHold()
	}
}

func (m *ManualMap[K, V]) Release() {
	if m.finalized {
		m.status.ReleaseHold()
		return
	}
	if !m.status.ReleaseHold() {
		return
	}
	buf := m.status.Flush()
	if len(buf) > 0 && !maps.Equal(m.items, m.preHold) {
		m.ctrl.Signal(buf)
	}
	m.preHold = nil
	m.ctrl.SignalRelease()
}

func (m *ManualMap[K, V]) Finalize() {
	if m.finalized {
		return
	}
	m.finalized = true
	if m.status.IsOnHold() {
		buf := m.status.Flush()
		if len(buf) > 0 && !maps.Equal(m.items, m.preHold) {
			m.ctrl.Signal(buf)
		}
		m.ctrl.SignalRelease()
	}
	m.ctrl.End()
}

func (m *ManualMap[K, V]) Finalized() bool {
	return m.finalized
}

func (m *ManualMap[K, V]) Subscribe(receiver subscribable.Receiver[[]MapChange[K, V]]) *Subscription[map[K]V, []MapChange[K, V]] {
	return &Subscription[map[K]V, []MapChange[K, V]]{
		Subscription: m.ctrl.Subscribe(receiver),
		snapshot:     m.Snapshot,
	}
}

func (m *ManualMap[K, V]) SubscribeFunc(fn func(changes []MapChange[K, V])) *Subscription[map[K]V, []MapChange[K, V]] {
	return m.Subscribe(subscribable.ReceiverFunc[[]MapChange[K, V]](fn))
}

func (m *ManualMap[K, V]) mutable() {
	if m.finalized {
		panic("cannot set value, source has already been finalized")
	}
}

func (m *ManualMap[K, V]) dispatch(change MapChange[K, V]) {
	if m.status.IsOnHold() {
		m.status.HoldEvent(change)
		return
	}
	m.ctrl.Signal([]MapChange[K, V]{change})
}
