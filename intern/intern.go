package intern

import (
	"container/list"

	"github.com/cespare/xxhash/v2"
)

const DefaultCapacity = 1024

// Cache is a bounded interning cache keyed by string. Lookups hash the key
// with xxhash; the least recently used entry is evicted once the cache is
// full. Eviction is explicit rather than GC-driven, so an interned value
// can be dropped and rebuilt later.
type Cache[V any] struct {
	capacity int
	entries  map[uint64]*list.Element
	order    *list.List
}

type entry[V any] struct {
	hash uint64
	key  string
	val  V
}

func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[V]{
		capacity: capacity,
		entries:  map[uint64]*list.Element{},
		order:    list.New(),
	}
}

// Get returns the interned value for key, calling create on a miss. A key
// whose hash collides with a different resident key replaces it.
func (c *Cache[V]) Get(key string, create func() V) V {
	h := xxhash.Sum64String(key)
	if el, ok := c.entries[h]; ok {
		e := el.Value.(*entry[V])
		if e.key == key {
			c.order.MoveToFront(el)
			return e.val
		}
		c.order.Remove(el)
		delete(c.entries, h)
	}
	v := create()
	c.entries[h] = c.order.PushFront(&entry[V]{hash: h, key: key, val: v})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry[V]).hash)
	}
	return v
}

func (c *Cache[V]) Contains(key string) bool {
	el, ok := c.entries[xxhash.Sum64String(key)]
	return ok && el.Value.(*entry[V]).key == key
}

func (c *Cache[V]) Len() int {
	return c.order.Len()
}
