// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
)

// Transform applies an affine transform to its content, relative to
// the transform's own position. Layout is unaffected; rendering and
// pointer hit testing see the transformed content.
type Transform struct {
	Base
	Transform f32.Affine2D
	Content   Widget
}

func (t *Transform) Children() iter.Seq[Widget] {
	return Of(t.Content)
}

func (t *Transform) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	return single(&t.Base, t.Content, gtx, requested)
}

func (t *Transform) PositionChildren() {
	place(t.Content, t.Position())
}

// matrix returns the transform in window coordinates.
func (t *Transform) matrix() f32.Affine2D {
	pos := t.Position()
	return f32.Affine2D{}.Offset(pos).Mul(t.Transform).Mul(f32.Affine2D{}.Offset(pos.Mul(-1)))
}

func (t *Transform) ProcessRender(ctx *op.Context) {
	defer ctx.PushTransform(t.matrix()).Pop()
	RenderChildren(t, ctx)
}

func (t *Transform) ProcessPointer(e pointer.Event, ctx *pointer.Context) {
	defer ctx.PushTransform(t.matrix()).Pop()
	ProcessPointerChildren(t, e, ctx)
}

// Clip restricts the drawing of its content to its bounds. Presses
// and scrolls outside the bounds do not reach the content.
type Clip struct {
	Base
	Content Widget
}

func (c *Clip) Children() iter.Seq[Widget] {
	return Of(c.Content)
}

func (c *Clip) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	single(&c.Base, c.Content, gtx, requested)
	c.SetDimension(constrain(c.Dimension(), requested))
	return c.Dimension()
}

func (c *Clip) PositionChildren() {
	place(c.Content, c.Position())
}

func (c *Clip) ProcessRender(ctx *op.Context) {
	defer ctx.PushClip(c.Bounds()).Pop()
	RenderChildren(c, ctx)
}

func (c *Clip) ProcessPointer(e pointer.Event, ctx *pointer.Context) {
	switch e.Kind {
	case pointer.Press, pointer.Scroll:
		if !ctx.Local(e.Position).In(c.Bounds()) {
			return
		}
	}
	ProcessPointerChildren(c, e, ctx)
}

// Layer draws its content into an offscreen layer composited with
// Opacity, optionally through a filter.
type Layer struct {
	Base
	Opacity float32
	Filter  *op.Filter
	Content Widget
}

// Opacity returns a layer drawing content with the given opacity.
func Opacity(opacity float32, content Widget) *Layer {
	return &Layer{Opacity: opacity, Content: content}
}

func (l *Layer) Children() iter.Seq[Widget] {
	return Of(l.Content)
}

func (l *Layer) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	return single(&l.Base, l.Content, gtx, requested)
}

func (l *Layer) PositionChildren() {
	place(l.Content, l.Position())
}

func (l *Layer) ProcessRender(ctx *op.Context) {
	if l.Opacity <= 0 {
		return
	}
	defer ctx.PushLayer(min(l.Opacity, 1)).Pop()
	if l.Filter != nil {
		defer ctx.PushFilter(*l.Filter).Pop()
	}
	RenderChildren(l, ctx)
}
