// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/state"
)

// ForEach builds a widget for every item of a list state. It is a
// proxy: its children take its place in the enclosing container.
// Widgets are reused across rebuilds for items with the same key, so
// they keep their internal state.
type ForEach[T any, K comparable] struct {
	Base
	items state.ReadState[[]T]
	key   func(T) K
	build func(T) Widget

	seen     uint64
	built    map[K]Widget
	children []Widget
	flat     []Widget
}

// NewForEach returns a proxy for items. key identifies an item across
// changes of the list and build makes the widget of a new item.
func NewForEach[T any, K comparable](items state.ReadState[[]T], key func(T) K, build func(T) Widget) *ForEach[T, K] {
	f := &ForEach[T, K]{items: items, key: key, build: build}
	f.SetFlags(layout.Proxy)
	return f
}

// Sync rebuilds the children when the list changed.
func (f *ForEach[T, K]) Sync(e *env.Env) {
	f.items.Sync(e)
	if !state.Changed(f.items, &f.seen) {
		return
	}
	built := make(map[K]Widget)
	f.children = f.children[:0]
	for _, it := range f.items.Value() {
		k := f.key(it)
		w, dup := built[k]
		switch {
		case dup:
			// Duplicate keys get fresh widgets.
			w = f.build(it)
		case f.built[k] != nil:
			w = f.built[k]
			built[k] = w
		default:
			w = f.build(it)
			built[k] = w
		}
		f.children = append(f.children, w)
	}
	f.built = built
}

func (f *ForEach[T, K]) Children() iter.Seq[Widget] {
	return Of(f.children...)
}

// CalculateSize stacks the children vertically. It is only used when
// the proxy is the root of a tree.
func (f *ForEach[T, K]) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	f.flat = Flatten(f.Children())
	f.SetDimension(layout.Stack{Axis: layout.Vertical}.CalculateSize(gtx, requested, layoutChildren(f.flat)))
	return f.Dimension()
}

func (f *ForEach[T, K]) PositionChildren() {
	layout.Stack{Axis: layout.Vertical}.PositionChildren(f.Position(), f.Dimension(), layoutChildren(f.flat))
}
