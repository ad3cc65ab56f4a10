// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"testing"
)

func TestLRUEviction(t *testing.T) {
	c := &lru[int, string]{Cap: 3}
	for i := 1; i <= 3; i++ {
		c.Put(i, "v")
	}
	// Touching 1 makes 2 the least recently used entry.
	if _, ok := c.Get(1); !ok {
		t.Fatal("1 missing")
	}
	c.Put(4, "v")
	if _, ok := c.Get(2); ok {
		t.Error("2 not evicted")
	}
	for _, k := range []int{1, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%d evicted", k)
		}
	}
	if c.Len() != 3 {
		t.Errorf("len %d", c.Len())
	}
}

func TestLRUReplace(t *testing.T) {
	c := &lru[string, int]{Cap: 2}
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 3)
	if v, _ := c.Get("a"); v != 3 {
		t.Errorf("a = %d, want 3", v)
	}
	if c.Len() != 2 {
		t.Errorf("replacing grew the cache to %d", c.Len())
	}
	// a is now the most recent entry; b goes first.
	c.Put("c", 4)
	if _, ok := c.Get("b"); ok {
		t.Error("b not evicted")
	}
}

func TestLRUDefaultCapacity(t *testing.T) {
	var c glyphCache
	for i := 0; i <= maxSize; i++ {
		c.Put(glyphKey{id: GlyphID(i)}, GlyphImage{})
	}
	if c.Len() != maxSize {
		t.Errorf("len %d, want %d", c.Len(), maxSize)
	}
	if _, ok := c.Get(glyphKey{id: 0}); ok {
		t.Error("oldest glyph not evicted")
	}
}
