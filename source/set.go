package source

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/lowkeylabs/sourcekit/subscribable"
)

// ManualSet is the writable unordered-collection source, materialized as a
// mapset.Set.
type ManualSet[T comparable] struct {
	items     mapset.Set[T]
	preHold   mapset.Set[T]
	ctrl      *subscribable.Controller[[]SetChange[T]]
	status    subscribable.SignalStatus[SetChange[T]]
	finalized bool
}

func NewSet[T comparable](sched *subscribable.Scheduler, initial []T, hooks ...subscribable.DemandHooks) *ManualSet[T] {
	var h subscribable.DemandHooks
	if len(hooks) > 0 {
		h = hooks[0]
	}
	return &ManualSet[T]{
		items: mapset.NewSet(initial...),
		ctrl:  subscribable.NewController[[]SetChange[T]](sched, h),
	}
}

// Snapshot returns a copy of the current members.
func (s *ManualSet[T]) Snapshot() mapset.Set[T] {
	return s.items.Clone()
}

func (s *ManualSet[T]) Contains(value T) bool {
	return s.items.Contains(value)
}

func (s *ManualSet[T]) Len() int {
	return s.items.Cardinality()
}

// Add inserts value. Adding a member already present is a no-op.
func (s *ManualSet[T]) Add(value T) {
	s.mutable()
	if !s.items.Add(value) {
		return
	}
	s.dispatch(SetChange[T]{Kind: ChangeAdd, Value: value})
}

// Delete removes value. Deleting an absent member is a no-op.
func (s *ManualSet[T]) Delete(value T) {
	s.mutable()
	if !s.items.Contains(value) {
		return
	}
	s.items.Remove(value)
	s.dispatch(SetChange[T]{Kind: ChangeDelete, Value: value})
}

// Clear removes every member. Clearing an empty set is a no-op.
func (s *ManualSet[T]) Clear() {
	s.mutable()
	if s.items.Cardinality() == 0 {
		return
	}
	s.items = mapset.NewSet[T]()
	s.dispatch(SetChange[T]{Kind: ChangeClear})
}

func (s *ManualSet[T]) Hold() {
	if s.status.InitiateHold() {
		s.preHold = s.items.Clone()
		s.ctrl.SignalHold()
	}
}

func (s *ManualSet[T]) Release() {
	if s.finalized {
		s.status.ReleaseHold()
		return
	}
	if !s.status.ReleaseHold() {
		return
	}
	buf := s.status.Flush()
	if len(buf) > 0 && !s.items.Equal(s.preHold) {
		s.ctrl.Signal(buf)
	}
	s.preHold = nil
	s.ctrl.SignalRelease()
}

func (s *ManualSet[T]) Finalize() {
	if s.finalized {
		return
	}
	s.finalized = true
	if s.status.IsOnHold() {
		buf := s.status.Flush()
		if len(buf) > 0 && !s.items.Equal(s.preHold) {
			s.ctrl.Signal(buf)
		}
		s.ctrl.SignalRelease()
	}
	s.ctrl.End()
}

func (s *ManualSet[T]) Finalized() bool {
	return s.finalized
}

func (s *ManualSet[T]) Subscribe(receiver subscribable.Receiver[[]SetChange[T]]) *Subscription[mapset.Set[T], []SetChange[T]] {
	return &Subscription[mapset.Set[T], []SetChange[T]]{
		Subscription: s.ctrl.Subscribe(receiver),
		snapshot:     s.Snapshot,
	}
}

func (s *ManualSet[T]) SubscribeFunc(fn func(changes []SetChange[T])) *Subscription[mapset.Set[T], []SetChange[T]] {
	return s.Subscribe(subscribable.ReceiverFunc[[]SetChange[T]](fn))
}

func (s *ManualSet[T]) mutable() {
	if s.finalized {
		panic("cannot set value, source has already been finalized")
	}
}

func (s *ManualSet[T]) dispatch(change SetChange[T]) {
	if s.status.IsOnHold() {
		s.status.HoldEvent(change)
		return
	}
	s.ctrl.Signal([]SetChange[T]{change})
}
