// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/key"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/widget"
)

// Focus returns the focused widget, or zero.
func (r *Router) Focus() event.Tag {
	return r.focus
}

// Focusables returns the focusable widgets in traversal order. The
// descendants of widgets capturing input are skipped.
func (r *Router) Focusables() []event.Tag {
	var tags []event.Tag
	if r.root == nil {
		return nil
	}
	var visit func(w widget.Widget)
	visit = func(w widget.Widget) {
		if w.Flags().Has(layout.Focusable) {
			tags = append(tags, w.ID())
		}
		if c, ok := w.(widget.InputCapturer); ok && c.CapturesInput() {
			return
		}
		for c := range w.Children() {
			visit(c)
		}
	}
	visit(r.root)
	return tags
}

// FocusNext moves the focus to the next focusable widget, wrapping
// around at the end. It reports whether the focus changed.
func (r *Router) FocusNext() bool {
	return r.moveFocus(1)
}

// FocusPrevious moves the focus to the previous focusable widget,
// wrapping around at the start.
func (r *Router) FocusPrevious() bool {
	return r.moveFocus(-1)
}

func (r *Router) moveFocus(dir int) bool {
	tags := r.Focusables()
	if len(tags) == 0 {
		return false
	}
	cur := -1
	for i, t := range tags {
		if t == r.focus {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur == -1 && dir > 0:
		next = 0
	case cur == -1:
		next = len(tags) - 1
	default:
		next = (cur + dir + len(tags)) % len(tags)
	}
	return r.setFocus(tags[next])
}

// RequestFocus moves the focus to the focusable widget id. It
// reports false and leaves the focus unchanged when no such widget
// exists.
func (r *Router) RequestFocus(id event.Tag) bool {
	if r.root == nil || id == 0 {
		return false
	}
	w, ok := widget.Find(r.root, id)
	if !ok || !w.Flags().Has(layout.Focusable) {
		return false
	}
	return r.setFocus(id)
}

// ClearFocus removes the focus.
func (r *Router) ClearFocus() bool {
	return r.setFocus(0)
}

func (r *Router) setFocus(t event.Tag) bool {
	if t == r.focus {
		return false
	}
	old := r.focus
	r.focus = t
	if old != 0 {
		r.deliverFocus(key.FocusEvent{Tag: old, Focus: false})
	}
	if t != 0 {
		r.deliverFocus(key.FocusEvent{Tag: t, Focus: true})
	}
	return true
}

func (r *Router) deliverFocus(e key.FocusEvent) {
	ctx := key.NewContext(r.context(), r.focus)
	widget.ProcessKey(r.root, e, ctx)
}
