package subscribable_test

import (
	"testing"

	"github.com/lowkeylabs/sourcekit/subscribable"
	"github.com/stretchr/testify/assert"
)

// only the outermost hold and the last release report true
func TestStatusHoldRefCount(t *testing.T) {
	var s subscribable.SignalStatus[int]

	assert.True(t, s.InitiateHold())
	assert.False(t, s.InitiateHold())
	assert.True(t, s.IsOnHold())

	assert.False(t, s.ReleaseHold())
	assert.True(t, s.ReleaseHold())
	assert.False(t, s.IsOnHold())

	// releasing with no open hold is a no-op
	assert.False(t, s.ReleaseHold())
}

// buffered events flush in arrival order and the buffer can be reused
func TestStatusBufferFlush(t *testing.T) {
	var s subscribable.SignalStatus[string]

	s.InitiateHold()
	s.HoldEvent("a")
	s.HoldEvent("b")
	assert.True(t, s.HasBufferedEvents())
	assert.Equal(t, []string{"a", "b"}, s.Flush())
	assert.False(t, s.HasBufferedEvents())

	s.HoldEvent("c")
	assert.Equal(t, []string{"c"}, s.Flush())
	s.ReleaseHold()
}

// buffering without an open hold is a programming error
func TestStatusHoldEventWithoutHoldPanics(t *testing.T) {
	var s subscribable.SignalStatus[int]
	assert.PanicsWithValue(t, "hold event without an active hold", func() {
		s.HoldEvent(1)
	})
}

// terminal signals arriving during a hold are latched for later replay
func TestStatusDeferredTerminals(t *testing.T) {
	var s subscribable.SignalStatus[int]
	assert.False(t, s.IsEnded())
	assert.False(t, s.IsUnsubscribed())

	s.InitiateHold()
	s.HoldEnd()
	s.HoldUnsubscribed()
	s.ReleaseHold()

	assert.True(t, s.IsEnded())
	assert.True(t, s.IsUnsubscribed())
}

// reset abandons open holds, buffered events and latched terminals, so
// the status can be reused across a demand cycle
func TestStatusReset(t *testing.T) {
	var s subscribable.SignalStatus[int]

	s.InitiateHold()
	s.HoldEvent(1)
	s.HoldEnd()
	s.Reset()

	assert.False(t, s.IsOnHold())
	assert.False(t, s.HasBufferedEvents())
	assert.False(t, s.IsEnded())
	assert.False(t, s.IsUnsubscribed())
	assert.True(t, s.InitiateHold())
}
