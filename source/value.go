package source

import (
	"github.com/lowkeylabs/sourcekit/intern"
	"github.com/lowkeylabs/sourcekit/subscribable"
)

// ManualValue is the writable scalar source. Mutations that leave the
// value unchanged dispatch nothing; mutations inside a Hold/Release
// bracket update the snapshot immediately but dispatch a single coalesced
// event on the outermost release, and only if the value differs from the
// pre-hold value.
type ManualValue[T comparable] struct {
	val       T
	preHold   T
	ctrl      *subscribable.Controller[T]
	status    subscribable.SignalStatus[T]
	finalized bool
}

func NewValue[T comparable](sched *subscribable.Scheduler, initial T, hooks ...subscribable.DemandHooks) *ManualValue[T] {
	var h subscribable.DemandHooks
	if len(hooks) > 0 {
		h = hooks[0]
	}
	return &ManualValue[T]{
		val:  initial,
		ctrl: subscribable.NewController[T](sched, h),
	}
}

// Const returns a finalized value source that will never change. New
// subscribers get their End on the next scheduler flush.
func Const[T comparable](sched *subscribable.Scheduler, value T) *ManualValue[T] {
	s := NewValue(sched, value)
	s.Finalize()
	return s
}

// ConstString returns an interned constant string source, sharing one
// instance per distinct string while it stays resident in the cache.
func ConstString(sched *subscribable.Scheduler, cache *intern.Cache[*ManualValue[string]], value string) *ManualValue[string] {
	return cache.Get(value, func() *ManualValue[string] {
		return Const(sched, value)
	})
}

func (v *ManualValue[T]) Snapshot() T {
	return v.val
}

// Set updates the value. A write equal to the current value is a no-op.
func (v *ManualValue[T]) Set(next T) {
	if v.finalized {
		panic("cannot set value, source has already been finalized")
	}
	if next == v.val {
		return
	}
	v.val = next
	if v.status.IsOnHold() {
		return
	}
	v.ctrl.Signal(next)
}

// Hold opens a batching bracket. Nested holds ref-count; only the
// outermost propagates downstream.
func (v *ManualValue[T]) Hold() {
	if v.status.InitiateHold() {
		v.preHold = v.val
		v.ctrl.SignalHold()
	}
}

// Release closes a bracket. The outermost release dispatches the net
// change, if any, then announces the release downstream. An unmatched
// release is a no-op, and a release after Finalize only settles the count:
// Finalize already closed the bracket downstream.
func (v *ManualValue[T]) Release() {
	if v.finalized {
		v.status.ReleaseHold()
		return
	}
	if !v.status.ReleaseHold() {
		return
	}
	if v.val != v.preHold {
		v.ctrl.Signal(v.val)
	}
	v.ctrl.SignalRelease()
}

// Finalize freezes the value and ends the source. A hold still open is
// closed first: the pending net change is dispatched, then the release,
// so subscribers see a balanced bracket and never a change after End.
// Idempotent.
func (v *ManualValue[T]) Finalize() {
	if v.finalized {
		return
	}
	v.finalized = true
	if v.status.IsOnHold() {
		if v.val != v.preHold {
			v.ctrl.Signal(v.val)
		}
		v.ctrl.SignalRelease()
	}
	v.ctrl.End()
}

func (v *ManualValue[T]) Finalized() bool {
	return v.finalized
}

func (v *ManualValue[T]) DemandExists() bool {
	return v.ctrl.DemandExists()
}

func (v *ManualValue[T]) Subscribe(receiver subscribable.Receiver[T]) *Subscription[T, T] {
	return &Subscription[T, T]{
		Subscription: v.ctrl.Subscribe(receiver),
		snapshot:     v.Snapshot,
	}
}

func (v *ManualValue[T]) SubscribeFunc(fn func(value T)) *Subscription[T, T] {
	return v.Subscribe(subscribable.ReceiverFunc[T](fn))
}
