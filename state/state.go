// SPDX-License-Identifier: Unlicense OR MIT

/*
Package state implements the shared values widgets bind to.

A Cell holds a value. Derived states (Map1, Map2, Map3, MapN and their
read-write variants) compute a value from upstream states. Propagation
is pull based: nothing is recomputed until Sync is called, and Value
only reports what the last Sync (or write) left behind. Widgets call
Sync on every state they read at the start of each layout, event or
render pass.

Read-only states have no write methods, so writing to a derived state
without a backward mapping is a compile error rather than a runtime
failure.
*/
package state

import (
	"sync"

	"github.com/loomkit/loom/env"
)

// Syncer is implemented by every state. Sync brings the state up to
// date with its upstream states.
type Syncer interface {
	Sync(e *env.Env)
}

// ReadState is a value that can be read. Version increases every time
// the value changes; it is how dependents detect change.
type ReadState[T any] interface {
	Syncer
	Value() T
	Version() uint64
}

// State is a ReadState that can also be written.
type State[T any] interface {
	ReadState[T]
	// SetValue replaces the value and marks the state changed.
	SetValue(v T)
	// Update calls f with a pointer to the value and marks the state
	// changed afterwards.
	Update(f func(v *T))
}

// Cell is a State owning its value. Cells are shared by pointer and
// may be written from other goroutines, for example by a background
// task; readers observe the write at their next Sync.
type Cell[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
}

// New returns a Cell holding v.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{value: v, version: 1}
}

// Value returns the current value.
func (c *Cell[T]) Value() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Version returns the change counter of the cell.
func (c *Cell[T]) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Sync is a no-op; a Cell has no upstream.
func (c *Cell[T]) Sync(e *env.Env) {}

func (c *Cell[T]) SetValue(v T) {
	c.mu.Lock()
	c.value = v
	c.version++
	c.mu.Unlock()
}

// Update runs f on a copy of the value without holding the lock, so
// f may read the cell. Concurrent writes during f are overwritten.
func (c *Cell[T]) Update(f func(v *T)) {
	c.mu.Lock()
	v := c.value
	c.mu.Unlock()
	f(&v)
	c.mu.Lock()
	c.value = v
	c.version++
	c.mu.Unlock()
}

// Const is a ReadState that never changes.
type Const[T any] struct {
	V T
}

func (c Const[T]) Value() T        { return c.V }
func (c Const[T]) Version() uint64 { return 0 }
func (c Const[T]) Sync(e *env.Env) {}

// Of returns a constant state for v.
func Of[T any](v T) ReadState[T] {
	return Const[T]{V: v}
}

// FromEnv is a ReadState that takes its value from the environment at
// every Sync.
type FromEnv[T comparable] struct {
	key     *env.Key[T]
	value   T
	version uint64
}

// NewFromEnv returns a state tracking key.
func NewFromEnv[T comparable](key *env.Key[T]) *FromEnv[T] {
	return &FromEnv[T]{key: key, value: key.Default(), version: 1}
}

func (s *FromEnv[T]) Value() T        { return s.value }
func (s *FromEnv[T]) Version() uint64 { return s.version }

func (s *FromEnv[T]) Sync(e *env.Env) {
	if v := env.Get(e, s.key); v != s.value {
		s.value = v
		s.version++
	}
}

// SyncAll syncs every state in order. Nil entries are skipped.
func SyncAll(e *env.Env, states ...Syncer) {
	for _, s := range states {
		if s != nil {
			s.Sync(e)
		}
	}
}

// Changed reports whether s has changed since the version recorded in
// *seen, and records the current version.
func Changed[T any](s ReadState[T], seen *uint64) bool {
	v := s.Version()
	if v == *seen {
		return false
	}
	*seen = v
	return true
}
