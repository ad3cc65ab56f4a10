// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/key"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/io/system"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
)

// Renderer is implemented by widgets that draw. Render is called
// before the children are rendered.
type Renderer interface {
	Render(ctx *op.Context)
}

// RenderProcessor replaces the default render traversal. It is
// responsible for rendering the children, usually through
// RenderChildren.
type RenderProcessor interface {
	ProcessRender(ctx *op.Context)
}

type PointerHandler interface {
	HandlePointer(e pointer.Event, ctx *pointer.Context)
}

type KeyHandler interface {
	HandleKey(e event.Event, ctx *key.Context)
}

type WindowHandler interface {
	HandleWindow(e event.Event, ctx *system.Context)
}

type SemanticHandler interface {
	HandleSemantic(e event.Event, ctx *semantic.Context)
}

type OtherHandler interface {
	HandleOther(e event.Event, ctx *event.Context)
}

// PointerProcessor replaces the default pointer traversal.
type PointerProcessor interface {
	ProcessPointer(e pointer.Event, ctx *pointer.Context)
}

// KeyProcessor replaces the default key traversal.
type KeyProcessor interface {
	ProcessKey(e event.Event, ctx *key.Context)
}

// WindowProcessor replaces the default window event traversal.
type WindowProcessor interface {
	ProcessWindow(e event.Event, ctx *system.Context)
}

// Sync pulls the bound state of w and its descendants.
func Sync(w Widget, e *env.Env) {
	defer scope(w, e)()
	if s, ok := w.(Syncer); ok {
		s.Sync(e)
	}
	for c := range w.Children() {
		Sync(c, e)
	}
}

func syncOne(w Widget, e *env.Env) {
	if s, ok := w.(Syncer); ok {
		s.Sync(e)
	}
}

// Layout sizes w for the requested size, places it at origin and
// positions its descendants.
func Layout(w Widget, gtx *layout.Context, origin, requested f32.Point) f32.Point {
	sz := w.CalculateSize(gtx, requested.NonNegative())
	w.SetDimension(sz)
	w.SetPosition(origin)
	w.PositionChildren()
	return w.Dimension()
}

// Render draws w and its descendants.
func Render(w Widget, ctx *op.Context) {
	defer scope(w, ctx.Env)()
	if p, ok := w.(RenderProcessor); ok {
		p.ProcessRender(ctx)
		return
	}
	if r, ok := w.(Renderer); ok {
		r.Render(ctx)
	}
	RenderChildren(w, ctx)
}

// RenderChildren renders the children of w.
func RenderChildren(w Widget, ctx *op.Context) {
	for c := range w.Children() {
		Render(c, ctx)
	}
}

// ProcessPointer delivers a pointer event to w and its descendants.
func ProcessPointer(w Widget, e pointer.Event, ctx *pointer.Context) {
	defer scope(w, ctx.Env)()
	syncOne(w, ctx.Env)
	if p, ok := w.(PointerProcessor); ok {
		p.ProcessPointer(e, ctx)
		return
	}
	if h, ok := w.(PointerHandler); ok {
		h.HandlePointer(e, ctx)
	}
	ProcessPointerChildren(w, e, ctx)
}

// ProcessPointerChildren delivers e to the children of w, unless w
// captures input.
func ProcessPointerChildren(w Widget, e pointer.Event, ctx *pointer.Context) {
	if captures(w) {
		return
	}
	for c := range w.Children() {
		ProcessPointer(c, e, ctx)
	}
}

// ProcessKey delivers a key event to w and its descendants.
func ProcessKey(w Widget, e event.Event, ctx *key.Context) {
	defer scope(w, ctx.Env)()
	syncOne(w, ctx.Env)
	if p, ok := w.(KeyProcessor); ok {
		p.ProcessKey(e, ctx)
		return
	}
	if h, ok := w.(KeyHandler); ok {
		h.HandleKey(e, ctx)
	}
	ProcessKeyChildren(w, e, ctx)
}

// ProcessKeyChildren delivers e to the children of w, unless w
// captures input.
func ProcessKeyChildren(w Widget, e event.Event, ctx *key.Context) {
	if captures(w) {
		return
	}
	for c := range w.Children() {
		ProcessKey(c, e, ctx)
	}
}

// ProcessWindow delivers a window event to w and its descendants.
func ProcessWindow(w Widget, e event.Event, ctx *system.Context) {
	defer scope(w, ctx.Env)()
	syncOne(w, ctx.Env)
	if p, ok := w.(WindowProcessor); ok {
		p.ProcessWindow(e, ctx)
		return
	}
	if h, ok := w.(WindowHandler); ok {
		h.HandleWindow(e, ctx)
	}
	ProcessWindowChildren(w, e, ctx)
}

// ProcessWindowChildren delivers e to the children of w. Window
// events reach every widget, even below widgets capturing input.
func ProcessWindowChildren(w Widget, e event.Event, ctx *system.Context) {
	for c := range w.Children() {
		ProcessWindow(c, e, ctx)
	}
}

// ProcessSemantic delivers a semantic event to w and its
// descendants. Descriptions made by w become the parent of the
// descriptions of its descendants.
func ProcessSemantic(w Widget, e event.Event, ctx *semantic.Context) {
	defer scope(w, ctx.Env)()
	syncOne(w, ctx.Env)
	if h, ok := w.(SemanticHandler); ok {
		h.HandleSemantic(e, ctx)
	}
	if captures(w) {
		return
	}
	if ctx.Described(w.ID()) {
		defer ctx.PushParent(w.ID()).Pop()
	}
	for c := range w.Children() {
		ProcessSemantic(c, e, ctx)
	}
}

// ProcessOther delivers an event of any other kind to w and its
// descendants.
func ProcessOther(w Widget, e event.Event, ctx *event.Context) {
	defer scope(w, ctx.Env)()
	syncOne(w, ctx.Env)
	if h, ok := w.(OtherHandler); ok {
		h.HandleOther(e, ctx)
	}
	if captures(w) {
		return
	}
	for c := range w.Children() {
		ProcessOther(c, e, ctx)
	}
}
