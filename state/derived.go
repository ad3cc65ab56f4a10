// SPDX-License-Identifier: Unlicense OR MIT

package state

import "github.com/loomkit/loom/env"

type versioned interface {
	Syncer
	Version() uint64
}

// derived is the cache shared by all mapped states.
type derived[T any] struct {
	deps    []versioned
	seen    []uint64
	compute func() T
	value   T
	version uint64
	syncing bool
}

func (d *derived[T]) init(compute func() T, deps ...versioned) {
	d.deps = deps
	d.seen = make([]uint64, len(deps))
	d.compute = compute
	d.refresh()
}

func (d *derived[T]) refresh() {
	for i, dep := range d.deps {
		d.seen[i] = dep.Version()
	}
	d.value = d.compute()
	d.version++
}

// Sync syncs the upstream states and recomputes the value if any of
// them changed. Calling Sync from within the mapping function of the
// same state panics.
func (d *derived[T]) Sync(e *env.Env) {
	if d.syncing {
		panic("state: reentrant Sync")
	}
	d.syncing = true
	defer func() { d.syncing = false }()
	stale := false
	for i, dep := range d.deps {
		dep.Sync(e)
		if dep.Version() != d.seen[i] {
			stale = true
		}
	}
	if stale {
		d.refresh()
	}
}

// Value returns the value computed by the last Sync or write.
func (d *derived[T]) Value() T { return d.value }

// Version returns the change counter of the state.
func (d *derived[T]) Version() uint64 { return d.version }

// write stores v, runs the backward mapping and accepts the upstream
// versions it produced, so the next Sync keeps v.
func (d *derived[T]) write(v T, backward func(v T)) {
	if d.syncing {
		panic("state: write during Sync")
	}
	d.value = v
	d.version++
	backward(v)
	for i, dep := range d.deps {
		d.seen[i] = dep.Version()
	}
}

// Map1 is a read-only state derived from one upstream state.
type Map1[A, T any] struct {
	derived[T]
}

// NewMap1 returns the state f(a).
func NewMap1[A, T any](a ReadState[A], f func(a A) T) *Map1[A, T] {
	m := new(Map1[A, T])
	m.init(func() T { return f(a.Value()) }, a)
	return m
}

// Map1RW is a read-write state derived from one upstream state.
type Map1RW[A, T any] struct {
	derived[T]
	a        State[A]
	backward func(v T, a State[A])
}

// NewMap1RW returns the state f(a). Writes call backward, which decides
// how to update a; it may leave a untouched.
func NewMap1RW[A, T any](a State[A], f func(a A) T, backward func(v T, a State[A])) *Map1RW[A, T] {
	m := &Map1RW[A, T]{a: a, backward: backward}
	m.init(func() T { return f(a.Value()) }, a)
	return m
}

// Bijection returns a read-write state for a pair of mutually inverse
// functions.
func Bijection[A, T any](a State[A], f func(a A) T, inv func(v T) A) *Map1RW[A, T] {
	return NewMap1RW(a, f, func(v T, a State[A]) {
		a.SetValue(inv(v))
	})
}

func (m *Map1RW[A, T]) SetValue(v T) {
	m.write(v, func(v T) { m.backward(v, m.a) })
}

func (m *Map1RW[A, T]) Update(f func(v *T)) {
	v := m.value
	f(&v)
	m.SetValue(v)
}

// Map2 is a read-only state derived from two upstream states.
type Map2[A, B, T any] struct {
	derived[T]
}

// NewMap2 returns the state f(a, b).
func NewMap2[A, B, T any](a ReadState[A], b ReadState[B], f func(a A, b B) T) *Map2[A, B, T] {
	m := new(Map2[A, B, T])
	m.init(func() T { return f(a.Value(), b.Value()) }, a, b)
	return m
}

// Map2RW is a read-write state derived from two upstream states.
type Map2RW[A, B, T any] struct {
	derived[T]
	a        State[A]
	b        State[B]
	backward func(v T, a State[A], b State[B])
}

// NewMap2RW returns the state f(a, b). Writes call backward, which
// distributes the new value over a and b.
func NewMap2RW[A, B, T any](a State[A], b State[B], f func(a A, b B) T, backward func(v T, a State[A], b State[B])) *Map2RW[A, B, T] {
	m := &Map2RW[A, B, T]{a: a, b: b, backward: backward}
	m.init(func() T { return f(a.Value(), b.Value()) }, a, b)
	return m
}

func (m *Map2RW[A, B, T]) SetValue(v T) {
	m.write(v, func(v T) { m.backward(v, m.a, m.b) })
}

func (m *Map2RW[A, B, T]) Update(f func(v *T)) {
	v := m.value
	f(&v)
	m.SetValue(v)
}

// Map3 is a read-only state derived from three upstream states.
type Map3[A, B, C, T any] struct {
	derived[T]
}

// NewMap3 returns the state f(a, b, c).
func NewMap3[A, B, C, T any](a ReadState[A], b ReadState[B], c ReadState[C], f func(a A, b B, c C) T) *Map3[A, B, C, T] {
	m := new(Map3[A, B, C, T])
	m.init(func() T { return f(a.Value(), b.Value(), c.Value()) }, a, b, c)
	return m
}

// Map3RW is a read-write state derived from three upstream states.
type Map3RW[A, B, C, T any] struct {
	derived[T]
	a        State[A]
	b        State[B]
	c        State[C]
	backward func(v T, a State[A], b State[B], c State[C])
}

// NewMap3RW returns the state f(a, b, c) with a backward mapping.
func NewMap3RW[A, B, C, T any](a State[A], b State[B], c State[C], f func(a A, b B, c C) T, backward func(v T, a State[A], b State[B], c State[C])) *Map3RW[A, B, C, T] {
	m := &Map3RW[A, B, C, T]{a: a, b: b, c: c, backward: backward}
	m.init(func() T { return f(a.Value(), b.Value(), c.Value()) }, a, b, c)
	return m
}

func (m *Map3RW[A, B, C, T]) SetValue(v T) {
	m.write(v, func(v T) { m.backward(v, m.a, m.b, m.c) })
}

func (m *Map3RW[A, B, C, T]) Update(f func(v *T)) {
	v := m.value
	f(&v)
	m.SetValue(v)
}

// MapN is a read-only state derived from any number of upstream states
// of the same type.
type MapN[A, T any] struct {
	derived[T]
}

// NewMapN returns the state f(values of states).
func NewMapN[A, T any](states []ReadState[A], f func(vs []A) T) *MapN[A, T] {
	m := new(MapN[A, T])
	deps := make([]versioned, len(states))
	for i, s := range states {
		deps[i] = s
	}
	vs := make([]A, len(states))
	m.init(func() T {
		for i, s := range states {
			vs[i] = s.Value()
		}
		return f(vs)
	}, deps...)
	return m
}

// MapNRW is the read-write variant of MapN.
type MapNRW[A, T any] struct {
	derived[T]
	states   []State[A]
	backward func(v T, states []State[A])
}

// NewMapNRW returns the state f(values of states) with a backward
// mapping.
func NewMapNRW[A, T any](states []State[A], f func(vs []A) T, backward func(v T, states []State[A])) *MapNRW[A, T] {
	m := &MapNRW[A, T]{states: states, backward: backward}
	deps := make([]versioned, len(states))
	for i, s := range states {
		deps[i] = s
	}
	vs := make([]A, len(states))
	m.init(func() T {
		for i, s := range states {
			vs[i] = s.Value()
		}
		return f(vs)
	}, deps...)
	return m
}

func (m *MapNRW[A, T]) SetValue(v T) {
	m.write(v, func(v T) { m.backward(v, m.states) })
}

func (m *MapNRW[A, T]) Update(f func(v *T)) {
	v := m.value
	f(&v)
	m.SetValue(v)
}
