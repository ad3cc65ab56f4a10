// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/system"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/unit"
)

// Window is the root of the widgets shown in one OS window. It only
// acts on window events targeting its identity; events for other
// windows still reach its content.
type Window struct {
	Base
	Window event.WindowID
	Title  state.ReadState[string]
	// Size, if set, receives the window size from resize events.
	Size *state.Cell[f32.Point]
	// OnCloseRequest is called when the user asks to close the
	// window. Returning false keeps the window open.
	OnCloseRequest func() bool
	Content        Widget

	focused bool
	metric  *unit.Metric
}

// NewWindow returns the root widget of window id.
func NewWindow(id event.WindowID, title string, content Widget) *Window {
	return &Window{Window: id, Title: state.Of(title), Content: content}
}

// Focused reports whether the window has the input focus.
func (w *Window) Focused() bool {
	return w.focused
}

func (w *Window) Sync(e *env.Env) {
	if w.Title != nil {
		w.Title.Sync(e)
	}
}

func (w *Window) ScopeEnv(e *env.Env) func() {
	return env.Push(e, CurrentWindow, w.Window).Pop
}

func (w *Window) Children() iter.Seq[Widget] {
	return Of(w.Content)
}

func (w *Window) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	defer w.ScopeEnv(gtx.Env)()
	if w.metric != nil {
		defer gtx.PushMetric(*w.metric).Pop()
	}
	single(&w.Base, w.Content, gtx, requested)
	w.SetDimension(requested)
	return w.Dimension()
}

func (w *Window) PositionChildren() {
	place(w.Content, w.Position())
}

func (w *Window) HandleWindow(e event.Event, ctx *system.Context) {
	if !Targeted(&ctx.Context) {
		return
	}
	switch e := e.(type) {
	case system.ResizeEvent:
		if w.Size != nil {
			w.Size.SetValue(e.Size)
		}
		ctx.Invalidate()
	case system.FocusEvent:
		w.focused = e.Focus
	case system.ScaleEvent:
		m := e.Metric
		w.metric = &m
		ctx.Invalidate()
	case system.CloseRequestEvent:
		if w.OnCloseRequest != nil && !w.OnCloseRequest() {
			ctx.CancelClose()
		}
	}
}
