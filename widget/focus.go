// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/key"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/clip"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/unit"
)

var focusRingWidth = unit.Dp(2)

// FocusArea takes part in focus traversal and receives the key events
// sent while it is focused. Pressing a pointer inside the area
// requests the focus.
type FocusArea struct {
	Base
	Content Widget
	// Filter selects the keys delivered to OnKey. An empty Filter
	// delivers every key.
	Filter key.Set
	// OnKey handles a key event; returning true consumes it.
	OnKey func(e key.Event) bool
	// OnEdit handles text input; returning true consumes it.
	OnEdit func(e key.EditEvent) bool

	focused bool
	ring    float32
}

// NewFocusArea returns a focusable area around content.
func NewFocusArea(content Widget) *FocusArea {
	f := &FocusArea{Content: content}
	f.SetFlags(layout.Focusable)
	return f
}

// Focused reports whether the area has the keyboard focus.
func (f *FocusArea) Focused() bool {
	return f.focused
}

func (f *FocusArea) Children() iter.Seq[Widget] {
	return Of(f.Content)
}

func (f *FocusArea) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	f.ring = gtx.Metric.Px(focusRingWidth)
	return single(&f.Base, f.Content, gtx, requested)
}

func (f *FocusArea) PositionChildren() {
	place(f.Content, f.Position())
}

func (f *FocusArea) HandleKey(e event.Event, ctx *key.Context) {
	switch e := e.(type) {
	case key.FocusEvent:
		if e.Tag == f.ID() {
			f.focused = e.Focus
		}
	case key.Event:
		if ctx.Focus != f.ID() || ctx.Consumed || !env.Get(ctx.Env, Enabled) || f.OnKey == nil {
			return
		}
		if f.Filter != "" && !f.Filter.Contains(e.Name, e.Modifiers) {
			return
		}
		if f.OnKey(e) {
			ctx.Consume()
		}
	case key.EditEvent:
		if ctx.Focus != f.ID() || ctx.Consumed || !env.Get(ctx.Env, Enabled) || f.OnEdit == nil {
			return
		}
		if f.OnEdit(e) {
			ctx.Consume()
		}
	}
}

func (f *FocusArea) HandlePointer(e pointer.Event, ctx *pointer.Context) {
	if e.Kind != pointer.Press || ctx.Consumed || f.focused || !env.Get(ctx.Env, Enabled) {
		return
	}
	if ctx.Local(e.Position).In(f.Bounds()) {
		ctx.Execute(key.FocusCmd{Tag: f.ID()})
	}
}

func (f *FocusArea) HandleSemantic(e event.Event, ctx *semantic.Context) {
	switch e := e.(type) {
	case semantic.RebuildEvent:
		if ctx.Described(f.ID()) {
			return
		}
		ctx.Describe(f.ID(), semantic.Desc{
			Class:    semantic.Group,
			Selected: f.focused,
			Disabled: !env.Get(ctx.Env, Enabled),
			Gestures: semantic.FocusGesture,
			Bounds:   f.Bounds(),
		})
	case semantic.ActionEvent:
		if e.Target == f.ID() && e.Action == semantic.ActionFocus && !ctx.Handled {
			ctx.Handled = true
			ctx.Execute(key.FocusCmd{Tag: f.ID()})
		}
	}
}

func (f *FocusArea) ProcessRender(ctx *op.Context) {
	RenderChildren(f, ctx)
	if !f.focused {
		return
	}
	rr := clip.UniformRRect(f.Bounds(), 0)
	ctx.Fill(paint.Color(env.Get(ctx.Env, AccentColor)), clip.Border(rr, f.ring).Triangles())
}
