package source_test

import (
	"fmt"
	"testing"

	"github.com/lowkeylabs/sourcekit/intern"
	"github.com/lowkeylabs/sourcekit/source"
	"github.com/lowkeylabs/sourcekit/subscribable"
	"github.com/stretchr/testify/assert"
)

// writes dispatch the new value; equal writes dispatch nothing
func TestValueSetDispatch(t *testing.T) {
	sched := subscribable.NewScheduler()
	v := source.NewValue(sched, 0)

	var events []int
	v.SubscribeFunc(func(value int) { events = append(events, value) })

	v.Set(1)
	v.Set(1)
	v.Set(2)
	assert.Equal(t, []int{1, 2}, events)
	assert.Equal(t, 2, v.Snapshot())
}

// a hold coalesces several writes into one event on the outermost release
func TestValueHoldCoalesces(t *testing.T) {
	sched := subscribable.NewScheduler()
	v := source.NewValue(sched, 0)

	var events []int
	v.SubscribeFunc(func(value int) { events = append(events, value) })

	v.Set(1)
	v.Hold()
	v.Set(2)
	assert.Equal(t, 2, v.Snapshot()) // snapshot moves immediately
	v.Set(3)
	v.Release()
	assert.Equal(t, []int{1, 3}, events)
}

// a held change that nets out to the pre-hold value dispatches nothing
func TestValueHoldNetNoop(t *testing.T) {
	sched := subscribable.NewScheduler()
	v := source.NewValue(sched, 1)

	events := 0
	v.SubscribeFunc(func(int) { events++ })

	v.Hold()
	v.Set(9)
	v.Set(1)
	v.Release()
	assert.Equal(t, 0, events)
}

// nested holds ref-count; only the outermost release dispatches
func TestValueNestedHolds(t *testing.T) {
	sched := subscribable.NewScheduler()
	v := source.NewValue(sched, 0)

	var events []int
	v.SubscribeFunc(func(value int) { events = append(events, value) })

	v.Hold()
	v.Hold()
	v.Set(5)
	v.Release()
	assert.Empty(t, events)
	v.Release()
	assert.Equal(t, []int{5}, events)

	// an unmatched release is a no-op
	v.Release()
	v.Set(6)
	assert.Equal(t, []int{5, 6}, events)
}

// hold and release propagate to hold-aware subscribers around the event
func TestValueHoldPropagation(t *testing.T) {
	sched := subscribable.NewScheduler()
	v := source.NewValue(sched, 0)

	var order []string
	v.Subscribe(&holdOrderReceiver[int]{order: &order})

	v.Hold()
	v.Set(1)
	v.Release()
	assert.Equal(t, []string{"hold", "signal 1", "release"}, order)
}

// finalize flushes a pending held change before end, and freezes the value
func TestValueFinalize(t *testing.T) {
	sched := subscribable.NewScheduler()
	v := source.NewValue(sched, 0)

	var order []string
	v.Subscribe(&holdOrderReceiver[int]{order: &order})

	v.Hold()
	v.Set(4)
	v.Finalize()
	assert.True(t, v.Finalized())
	assert.Equal(t, []string{"hold", "signal 4", "release", "end"}, order)

	assert.PanicsWithValue(t, "cannot set value, source has already been finalized", func() {
		v.Set(5)
	})
	v.Finalize() // idempotent
}

// subscribers joining a finalized source get end on the next flush
func TestConstEndsLateSubscribers(t *testing.T) {
	sched := subscribable.NewScheduler()
	c := source.Const(sched, "fixed")
	assert.Equal(t, "fixed", c.Snapshot())

	var order []string
	c.Subscribe(&holdOrderReceiver[string]{order: &order})
	assert.Empty(t, order)
	sched.Flush()
	assert.Equal(t, []string{"end"}, order)
}

// interned constants share one instance per distinct string
func TestConstStringInterned(t *testing.T) {
	sched := subscribable.NewScheduler()
	cache := intern.New[*source.ManualValue[string]](16)

	a := source.ConstString(sched, cache, "x")
	b := source.ConstString(sched, cache, "x")
	c := source.ConstString(sched, cache, "y")
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.True(t, a.Finalized())
}

// reading a snapshot through a disposed subscription is a programming error
func TestSubscriptionSnapshotAfterDispose(t *testing.T) {
	sched := subscribable.NewScheduler()
	v := source.NewValue(sched, 1)

	sub := v.SubscribeFunc(func(int) {})
	assert.Equal(t, 1, sub.Snapshot())

	sub.Dispose()
	assert.PanicsWithValue(t, "subscription has been disposed", func() { sub.Snapshot() })
}

// demand hooks see the online transition before the offline one
func TestValueDemandHooks(t *testing.T) {
	sched := subscribable.NewScheduler()
	var transitions []string
	v := source.NewValue(sched, 0, subscribable.DemandHooks{
		Online:  func() { transitions = append(transitions, "online") },
		Offline: func() { transitions = append(transitions, "offline") },
	})

	assert.False(t, v.DemandExists())
	sub := v.SubscribeFunc(func(int) {})
	assert.True(t, v.DemandExists())
	sub.Dispose()
	assert.Equal(t, []string{"online", "offline"}, transitions)
}

type holdOrderReceiver[T any] struct {
	order *[]string
}

func (r *holdOrderReceiver[T]) Signal(event T) {
	*r.order = append(*r.order, fmt.Sprintf("signal %v", event))
}
func (r *holdOrderReceiver[T]) End()     { *r.order = append(*r.order, "end") }
func (r *holdOrderReceiver[T]) Hold()    { *r.order = append(*r.order, "hold") }
func (r *holdOrderReceiver[T]) Release() { *r.order = append(*r.order, "release") }
