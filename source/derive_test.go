package source_test

import (
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/lowkeylabs/sourcekit/source"
	"github.com/lowkeylabs/sourcekit/subscribable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a mapped value is offline until the first subscriber arrives
func TestMapValueDemandLifecycle(t *testing.T) {
	sched := subscribable.NewScheduler()
	var transitions []string
	up := source.NewValue(sched, 2, subscribable.DemandHooks{
		Online:  func() { transitions = append(transitions, "online") },
		Offline: func() { transitions = append(transitions, "offline") },
	})
	doubled := source.MapValue(sched, up, func(v int) int { return v * 2 })

	// no demand yet: no upstream subscription, no cache
	assert.Empty(t, transitions)
	assert.PanicsWithValue(t, "source is offline, snapshot unavailable", func() {
		doubled.Snapshot()
	})

	sub := doubled.Subscribe(subscribable.ReceiverFunc[int](func(int) {}))
	assert.Equal(t, []string{"online"}, transitions)
	assert.Equal(t, 4, doubled.Snapshot())

	sub.Dispose()
	assert.Equal(t, []string{"online", "offline"}, transitions)
	assert.PanicsWithValue(t, "source is offline, snapshot unavailable", func() {
		doubled.Snapshot()
	})
}

// upstream changes forward through the transform, suppressed when the
// transformed value is unchanged
func TestMapValueSuppressesUnobservableChanges(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewValue(sched, 0)
	halved := source.MapValue(sched, up, func(v int) int { return v / 2 })

	var events []int
	halved.Subscribe(subscribable.ReceiverFunc[int](func(v int) { events = append(events, v) }))

	up.Set(1) // 1/2 is still 0
	up.Set(2)
	up.Set(3) // 3/2 is still 1
	up.Set(4)
	assert.Equal(t, []int{1, 2}, events)
	assert.Equal(t, 2, halved.Snapshot())
}

// an upstream hold propagates and the mapped value coalesces to one event
func TestMapValueHoldPropagates(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewValue(sched, 1)
	asText := source.MapValue(sched, up, strconv.Itoa)

	var order []string
	asText.Subscribe(&holdOrderReceiver[string]{order: &order})

	up.Hold()
	up.Set(2)
	up.Set(3)
	up.Release()
	assert.Equal(t, []string{"hold", "signal 3", "release"}, order)

	// a held run that nets out produces hold/release with nothing between
	order = nil
	up.Hold()
	up.Set(9)
	up.Set(3)
	up.Release()
	assert.Equal(t, []string{"hold", "release"}, order)
}

// ending the upstream while held defers the end to the release
func TestMapValueEndDeferredUnderHold(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewValue(sched, 1)
	copied := source.MapValue(sched, up, func(v int) int { return v })

	var order []string
	copied.Subscribe(&holdOrderReceiver[int]{order: &order})

	up.Hold()
	up.Set(2)
	up.Finalize()
	assert.Equal(t, []string{"hold", "signal 2", "release", "end"}, order)
}

// upstream end forwards to mapped subscribers when no hold is open
func TestMapValueEndForwards(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewValue(sched, 1)
	copied := source.MapValue(sched, up, func(v int) int { return v })

	var order []string
	copied.Subscribe(&holdOrderReceiver[int]{order: &order})

	up.Finalize()
	assert.Equal(t, []string{"end"}, order)
}

// losing the last subscriber mid-hold resets the hold bookkeeping; a new
// subscriber sees upstream changes again
func TestMapValueOfflineDuringUpstreamHold(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewValue(sched, 1)
	doubled := source.MapValue(sched, up, func(v int) int { return v * 2 })

	sub := doubled.Subscribe(subscribable.ReceiverFunc[int](func(int) {}))
	up.Hold()
	sub.Dispose() // the matching release never reaches the mapped source
	up.Release()

	var events []int
	doubled.Subscribe(subscribable.ReceiverFunc[int](func(v int) { events = append(events, v) }))
	up.Set(5)
	assert.Equal(t, []int{10}, events)
	assert.Equal(t, 10, doubled.Snapshot())
}

// a filtered value tracks only accepted upstream values
func TestFilterValue(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewValue(sched, 3)
	evens := source.FilterValue(sched, up, func(v int) bool { return v%2 == 0 })

	var events []int
	evens.Subscribe(subscribable.ReceiverFunc[int](func(v int) { events = append(events, v) }))

	// initial upstream value rejected: snapshot starts at zero
	assert.Equal(t, 0, evens.Snapshot())

	up.Set(4)
	up.Set(5) // rejected
	up.Set(6)
	assert.Equal(t, []int{4, 6}, events)
	assert.Equal(t, 6, evens.Snapshot())
}

// a filtered value whose initial upstream value is accepted starts there
func TestFilterValueInitialAccepted(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewValue(sched, 4)
	evens := source.FilterValue(sched, up, func(v int) bool { return v%2 == 0 })

	evens.Subscribe(subscribable.ReceiverFunc[int](func(int) {}))
	assert.Equal(t, 4, evens.Snapshot())
}

// a mapped array maintains a transformed copy across every change kind
func TestMapArrayTracksMutations(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewArray(sched, []int{1, 2})
	texts := source.MapArray(sched, up, strconv.Itoa)

	var events [][]source.ArrayChange[string]
	texts.Subscribe(subscribable.ReceiverFunc[[]source.ArrayChange[string]](func(changes []source.ArrayChange[string]) {
		events = append(events, changes)
	}))
	assert.Equal(t, []string{"1", "2"}, texts.Snapshot())

	up.Set(0, 10)
	up.Append(3)
	up.Delete(1)
	assert.Equal(t, []string{"10", "3"}, texts.Snapshot())

	assert.Equal(t, [][]source.ArrayChange[string]{
		{{Kind: source.ChangeSet, Index: 0, Value: "10"}},
		{{Kind: source.ChangeInsert, Index: 2, Value: "3"}},
		{{Kind: source.ChangeDelete, Index: 1, Value: "2"}},
	}, events)
}

// changes invisible through the transform are dropped
func TestMapArraySuppressesUnobservableChanges(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewArray(sched, []int{1})
	parities := source.MapArray(sched, up, func(v int) int { return v % 2 })

	events := 0
	parities.Subscribe(subscribable.ReceiverFunc[[]source.ArrayChange[int]](func([]source.ArrayChange[int]) {
		events++
	}))

	up.Set(0, 3) // still odd
	assert.Equal(t, 0, events)
	up.Set(0, 4)
	assert.Equal(t, 1, events)
}

// the mapped snapshot equals recomputing from scratch after every
// mutation, in any order
func TestMapArraySnapshotMatchesRecompute(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sched := subscribable.NewScheduler()
	up := source.NewArray(sched, []int{1, 2, 3})
	tripled := source.MapArray(sched, up, func(v int) int { return v * 3 })
	tripled.Subscribe(subscribable.ReceiverFunc[[]source.ArrayChange[int]](func([]source.ArrayChange[int]) {}))

	for i := 0; i < 200; i++ {
		n := up.Len()
		switch op := rng.Intn(5); {
		case op == 0 || n == 0:
			up.Append(rng.Intn(10))
		case op == 1:
			up.Set(rng.Intn(n), rng.Intn(10))
		case op == 2:
			up.Insert(rng.Intn(n+1), rng.Intn(10))
		case op == 3:
			up.Delete(rng.Intn(n))
		default:
			up.Clear()
		}

		var want []int
		for _, v := range up.Snapshot() {
			want = append(want, v*3)
		}
		require.True(t, slices.Equal(want, tripled.Snapshot()), "iteration %d", i)
	}
}

// an upstream hold batches mapped array changes into one event
func TestMapArrayHoldBatches(t *testing.T) {
	sched := subscribable.NewScheduler()
	up := source.NewArray(sched, []int{1})
	texts := source.MapArray(sched, up, strconv.Itoa)

	var events [][]source.ArrayChange[string]
	texts.Subscribe(subscribable.ReceiverFunc[[]source.ArrayChange[string]](func(changes []source.ArrayChange[string]) {
		events = append(events, changes)
	}))

	up.Hold()
	up.Append(2)
	up.Set(0, 9)
	up.Release()

	assert.Equal(t, [][]source.ArrayChange[string]{
		{
			{Kind: source.ChangeInsert, Index: 1, Value: "2"},
			{Kind: source.ChangeSet, Index: 0, Value: "9"},
		},
	}, events)
	assert.Equal(t, []string{"9", "2"}, texts.Snapshot())
}
