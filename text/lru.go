// SPDX-License-Identifier: Unlicense OR MIT

package text

// maxSize is the default capacity of the text caches.
const maxSize = 1000

type layoutKey struct {
	str    string
	params Parameters
}

type glyphKey struct {
	face FaceID
	ppem int32
	id   GlyphID
}

type (
	layoutCache = lru[layoutKey, *Layout]
	glyphCache  = lru[glyphKey, GlyphImage]
)

// lru is a least recently used cache. The zero value holds up to
// maxSize entries.
type lru[K comparable, V any] struct {
	// Cap overrides maxSize if positive.
	Cap int

	m map[K]*lruElem[K, V]
	// root links the most recent element through next and the least
	// recent through prev.
	root lruElem[K, V]
}

type lruElem[K comparable, V any] struct {
	next, prev *lruElem[K, V]
	key        K
	val        V
}

// Get returns the value of k and marks it most recently used.
func (c *lru[K, V]) Get(k K) (V, bool) {
	e, ok := c.m[k]
	if !ok {
		var zero V
		return zero, false
	}
	c.unlink(e)
	c.link(e)
	return e.val, true
}

// Put sets the value of k and evicts the least recently used entry if
// the cache is full.
func (c *lru[K, V]) Put(k K, v V) {
	if c.m == nil {
		c.m = make(map[K]*lruElem[K, V])
		c.root.next = &c.root
		c.root.prev = &c.root
	}
	if e, ok := c.m[k]; ok {
		e.val = v
		c.unlink(e)
		c.link(e)
		return
	}
	e := &lruElem[K, V]{key: k, val: v}
	c.m[k] = e
	c.link(e)
	capacity := c.Cap
	if capacity <= 0 {
		capacity = maxSize
	}
	if len(c.m) > capacity {
		oldest := c.root.prev
		c.unlink(oldest)
		delete(c.m, oldest.key)
	}
}

// Len returns the number of entries.
func (c *lru[K, V]) Len() int {
	return len(c.m)
}

func (c *lru[K, V]) unlink(e *lruElem[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

// link inserts e as the most recent element.
func (c *lru[K, V]) link(e *lruElem[K, V]) {
	e.prev = &c.root
	e.next = c.root.next
	e.prev.next = e
	e.next.prev = e
}
