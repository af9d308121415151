package intern_test

import (
	"fmt"
	"testing"

	"github.com/lowkeylabs/sourcekit/intern"
	"github.com/stretchr/testify/assert"
)

// a hit returns the interned value without calling create again
func TestCacheGetReuses(t *testing.T) {
	c := intern.New[*int](8)

	creates := 0
	create := func() *int {
		creates++
		v := creates
		return &v
	}

	first := c.Get("a", create)
	second := c.Get("a", create)
	assert.Same(t, first, second)
	assert.Equal(t, 1, creates)
	assert.True(t, c.Contains("a"))
	assert.Equal(t, 1, c.Len())
}

// the least recently used entry is the one evicted at capacity
func TestCacheEvictsLRU(t *testing.T) {
	c := intern.New[string](2)

	c.Get("a", func() string { return "A" })
	c.Get("b", func() string { return "B" })
	c.Get("a", func() string { return "A2" }) // refresh a
	c.Get("c", func() string { return "C" })  // evicts b

	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
	assert.Equal(t, 2, c.Len())
}

// a non-positive capacity falls back to the default
func TestCacheDefaultCapacity(t *testing.T) {
	c := intern.New[int](0)
	for i := 0; i < intern.DefaultCapacity+10; i++ {
		c.Get(fmt.Sprintf("k%d", i), func() int { return i })
	}
	assert.Equal(t, intern.DefaultCapacity, c.Len())
}
