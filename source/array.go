package source

import (
	"slices"

	"github.com/lowkeylabs/sourcekit/subscribable"
)

// ManualArray is the writable ordered-collection source. Events carry
// index-based changes; a hold buffers changes and releases them as one
// event, dropped entirely if the array ends up equal to its pre-hold
// contents.
type ManualArray[T comparable] struct {
	items     []T
	preHold   []T
	ctrl      *subscribable.Controller[[]ArrayChange[T]]
	status    subscribable.SignalStatus[ArrayChange[T]]
	finalized bool
}

func NewArray[T comparable](sched *subscribable.Scheduler, initial []T, hooks ...subscribable.DemandHooks) *ManualArray[T] {
	var h subscribable.DemandHooks
	if len(hooks) > 0 {
		h = hooks[0]
	}
	return &ManualArray[T]{
		items: slices.Clone(initial),
		ctrl:  subscribable.NewController[[]ArrayChange[T]](sched, h),
	}
}

// Snapshot returns a copy of the current items.
func (a *ManualArray[T]) Snapshot() []T {
	return slices.Clone(a.items)
}

func (a *ManualArray[T]) Len() int {
	return len(a.items)
}

func (a *ManualArray[T]) At(i int) T {
	return a.items[i]
}

// Set replaces the item at i. Writing the value already present is a
// no-op.
func (a *ManualArray[T]) Set(i int, value T) {
	a.mutable()
	if a.items[i] == value {
		return
	}
	a.items[i] = value
	a.dispatch(ArrayChange[T]{Kind: ChangeSet, Index: i, Value: value})
}

// Append adds value at the end.
func (a *ManualArray[T]) Append(value T) {
	a.mutable()
	a.items = append(a.items, value)
	a.dispatch(ArrayChange[T]{Kind: ChangeInsert, Index: len(a.items) - 1, Value: value})
}

// Insert adds value at index i, shifting later items right.
func (a *ManualArray[T]) Insert(i int, value T) {
	a.mutable()
	a.items = slices.Insert(a.items, i, value)
	a.dispatch(ArrayChange[T]{Kind: ChangeInsert, Index: i, Value: value})
}

// Delete removes the item at index i. The change carries the removed
// value.
func (a *ManualArray[T]) Delete(i int) {
	a.mutable()
	removed := a.items[i]
	a.items = slices.Delete(a.items, i, i+1)
	a.dispatch(ArrayChange[T]{Kind: ChangeDelete, Index: i, Value: removed})
}

// Clear empties the array. Clearing an empty array is a no-op.
func (a *ManualArray[T]) Clear() {
	a.mutable()
	if len(a.items) == 0 {
		return
	}
	a.items = nil
	a.dispatch(ArrayChange[T]{Kind: ChangeClear})
}

func (a *ManualArray[T]) Hold() {
	if a.status.InitiateHold() {
		a.preHold = slices.Clone(a.items)
		a.ctrl.SignalHold()
	}
}

func (a *ManualArray[T]) Release() {
	if a.finalized {
		a.status.ReleaseHold()
		return
	}
	if !a.status.ReleaseHold() {
		return
	}
	buf := a.status.Flush()
	if len(buf) > 0 && !slices.Equal(a.items, a.preHold) {
		a.ctrl.Signal(buf)
	}
	a.preHold = nil
	a.ctrl.SignalRelease()
}

func (a *ManualArray[T]) Finalize() {
	if a.finalized {
		return
	}
	a.finalized = true
	if a.status.IsOnHold() {
		buf := a.status.Flush()
		if len(buf) > 0 && !slices.Equal(a.items, a.preHold) {
			a.ctrl.Signal(buf)
		}
		a.ctrl.SignalRelease()
	}
	a.ctrl.End()
}

func (a *ManualArray[T]) Finalized() bool {
	return a.finalized
}

func (a *ManualArray[T]) Subscribe(receiver subscribable.Receiver[[]ArrayChange[T]]) *Subscription[[]T, []ArrayChange[T]] {
	return &Subscription[[]T, []ArrayChange[T]]{
		Subscription: a.ctrl.Subscribe(receiver),
		snapshot:     a.Snapshot,
	}
}

func (a *ManualArray[T]) SubscribeFunc(fn func(changes []ArrayChange[T])) *Subscription[[]T, []ArrayChange[T]] {
	return a.Subscribe(subscribable.ReceiverFunc[[]ArrayChange[T]](fn))
}

func (a *ManualArray[T]) mutable() {
	if a.finalized {
		panic("cannot set value, source has already been finalized")
	}
}

func (a *ManualArray[T]) dispatch(change ArrayChange[T]) {
	if a.status.IsOnHold() {
		a.status.HoldEvent(change)
		return
	}
	a.ctrl.Signal([]ArrayChange[T]{change})
}
