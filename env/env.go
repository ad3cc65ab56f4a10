// SPDX-License-Identifier: Unlicense OR MIT

/*
Package env implements the environment: a set of typed values that
flow down the widget tree during layout, event dispatch and rendering.

A subtree overrides a value by pushing it and popping it again when the
subtree is done, usually with a deferred call:

	defer env.Push(e, theme.Accent, red).Pop()

Overrides are strictly nested. Popping out of order panics.
*/
package env

import "fmt"

// Key identifies a value of type T in an Env. Keys compare by identity
// and are typically declared as package level variables.
type Key[T any] struct {
	name string
	def  T
}

// Env holds the current value of every key.
type Env struct {
	values map[any]*slot
	depth  int
}

// slot holds the values of one key. stack[0] is the base value, valid
// only if set.
type slot struct {
	set   bool
	stack []any
}

// Stack is a pushed environment value. Pop restores the previous value.
type Stack struct {
	env   *Env
	key   any
	depth int
}

// NewKey returns a new key with a default value used when the key
// has never been set.
func NewKey[T any](name string, def T) *Key[T] {
	return &Key[T]{name: name, def: def}
}

// Name returns the key's debug name.
func (k *Key[T]) Name() string { return k.name }

// Default returns the value reported for k when no value is set.
func (k *Key[T]) Default() T { return k.def }

func (k *Key[T]) String() string { return k.name }

// New returns an empty environment.
func New() *Env {
	return &Env{values: make(map[any]*slot)}
}

// Get returns the current value of k in e, or the key default. A nil
// Env reports defaults.
func Get[T any](e *Env, k *Key[T]) T {
	v, _ := Lookup(e, k)
	return v
}

// Lookup is like Get but also reports whether a value was set.
func Lookup[T any](e *Env, k *Key[T]) (T, bool) {
	if e == nil {
		return k.def, false
	}
	sl := e.values[k]
	if sl == nil || len(sl.stack) == 0 || len(sl.stack) == 1 && !sl.set {
		return k.def, false
	}
	return sl.stack[len(sl.stack)-1].(T), true
}

// Set replaces the base value of k. It must not be called while k is
// pushed.
func Set[T any](e *Env, k *Key[T], v T) {
	sl := e.slot(k)
	if len(sl.stack) > 1 {
		panic(fmt.Sprintf("env: Set of pushed key %s", k.name))
	}
	sl.set = true
	if len(sl.stack) == 0 {
		sl.stack = append(sl.stack, any(v))
		return
	}
	sl.stack[0] = v
}

func (e *Env) slot(k any) *slot {
	if e.values == nil {
		e.values = make(map[any]*slot)
	}
	sl := e.values[k]
	if sl == nil {
		sl = new(slot)
		e.values[k] = sl
	}
	return sl
}

// Push overrides k with v until the returned Stack is popped.
func Push[T any](e *Env, k *Key[T], v T) Stack {
	sl := e.slot(k)
	if len(sl.stack) == 0 {
		// Unset base; Pop restores the default.
		sl.stack = append(sl.stack, any(k.def))
	}
	sl.stack = append(sl.stack, any(v))
	e.depth++
	return Stack{env: e, key: k, depth: e.depth}
}

// With calls f with k overridden by v.
func With[T any](e *Env, k *Key[T], v T, f func(e *Env)) {
	defer Push(e, k, v).Pop()
	f(e)
}

// Pop restores the value that was current before the push.
func (s Stack) Pop() {
	e := s.env
	if e.depth != s.depth {
		panic("env: unbalanced Pop")
	}
	sl := e.values[s.key]
	sl.stack[len(sl.stack)-1] = nil
	sl.stack = sl.stack[:len(sl.stack)-1]
	e.depth--
}

// Depth returns the number of active pushes.
func (e *Env) Depth() int {
	return e.depth
}
