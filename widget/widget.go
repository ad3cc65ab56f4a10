// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"
	"sync/atomic"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/layout"
)

// ID identifies a widget. IDs are unique within a process and never
// reused.
type ID = event.Tag

// Widget is a node of the widget tree.
type Widget interface {
	layout.Child
	ID() ID
	Children() iter.Seq[Widget]
}

// Syncer is implemented by widgets bound to state. Sync pulls the
// current values of the bound states.
type Syncer interface {
	Sync(e *env.Env)
}

// EnvScoper is implemented by widgets that change the environment
// of their subtree. ScopeEnv applies the change and returns the
// function restoring e.
type EnvScoper interface {
	ScopeEnv(e *env.Env) (restore func())
}

// InputCapturer is implemented by widgets that may keep events from
// their children. Traversals skip the children of a widget reporting
// true.
type InputCapturer interface {
	CapturesInput() bool
}

var lastID atomic.Uint64

// NewID returns an unused ID.
func NewID() ID {
	return ID(lastID.Add(1))
}

// Base implements the bookkeeping shared by widgets. Embed it and
// implement CalculateSize; widgets with children also implement
// Children and PositionChildren.
type Base struct {
	id    ID
	flags layout.Flags
	flex  int
	pos   f32.Point
	dims  f32.Point
}

// ID returns the widget's ID, assigned on first use.
func (b *Base) ID() ID {
	if b.id == 0 {
		b.id = NewID()
	}
	return b.id
}

func (b *Base) Flags() layout.Flags {
	return b.flags
}

// SetFlags replaces the layout flags.
func (b *Base) SetFlags(f layout.Flags) {
	b.flags = f
}

func (b *Base) Flexibility() int {
	return b.flex
}

// SetFlexibility sets the sizing rank among stack siblings.
func (b *Base) SetFlexibility(f int) {
	b.flex = f
}

func (b *Base) Dimension() f32.Point {
	return b.dims
}

func (b *Base) SetDimension(size f32.Point) {
	b.dims = size.NonNegative()
}

func (b *Base) Position() f32.Point {
	return b.pos
}

func (b *Base) SetPosition(p f32.Point) {
	b.pos = p
}

// Bounds returns the rectangle the widget occupies in window
// coordinates.
func (b *Base) Bounds() f32.Rectangle {
	return f32.Rectangle{Min: b.pos, Max: b.pos.Add(b.dims)}
}

// Children is empty for leaf widgets.
func (b *Base) Children() iter.Seq[Widget] {
	return func(yield func(Widget) bool) {}
}

func (b *Base) PositionChildren() {}

// Of returns a sequence of the given widgets, skipping nils.
func Of(ws ...Widget) iter.Seq[Widget] {
	return func(yield func(Widget) bool) {
		for _, w := range ws {
			if w == nil {
				continue
			}
			if !yield(w) {
				return
			}
		}
	}
}

// Flatten returns the children of ws with the children of proxy
// widgets spliced in place of the proxies.
func Flatten(ws iter.Seq[Widget]) []Widget {
	var out []Widget
	var splice func(ws iter.Seq[Widget])
	splice = func(ws iter.Seq[Widget]) {
		for w := range ws {
			if w.Flags().Has(layout.Proxy) {
				splice(w.Children())
				continue
			}
			out = append(out, w)
		}
	}
	splice(ws)
	return out
}

// layoutChildren converts ws for the layout algorithms.
func layoutChildren(ws []Widget) []layout.Child {
	cs := make([]layout.Child, len(ws))
	for i, w := range ws {
		cs[i] = w
	}
	return cs
}

// Walk calls f for w and every descendant in declaration order,
// depth first, until f returns false.
func Walk(w Widget, f func(w Widget) bool) bool {
	if !f(w) {
		return false
	}
	for c := range w.Children() {
		if !Walk(c, f) {
			return false
		}
	}
	return true
}

// Find returns the first widget with the given ID.
func Find(root Widget, id ID) (Widget, bool) {
	var found Widget
	Walk(root, func(w Widget) bool {
		if w.ID() == id {
			found = w
			return false
		}
		return true
	})
	return found, found != nil
}

// captures reports whether w keeps events from its children.
func captures(w Widget) bool {
	c, ok := w.(InputCapturer)
	return ok && c.CapturesInput()
}

// scope applies the environment change of w, if any.
func scope(w Widget, e *env.Env) func() {
	if s, ok := w.(EnvScoper); ok {
		return s.ScopeEnv(e)
	}
	return func() {}
}

// single sizes a widget with at most one child to the size chosen by
// the child.
func single(b *Base, c Widget, gtx *layout.Context, requested f32.Point) f32.Point {
	var sz f32.Point
	if c != nil {
		sz = c.CalculateSize(gtx, requested)
		c.SetDimension(sz)
	}
	b.SetDimension(sz)
	return b.Dimension()
}

// place positions c at p and then its descendants.
func place(c Widget, p f32.Point) {
	if c == nil {
		return
	}
	c.SetPosition(p)
	c.PositionChildren()
}
