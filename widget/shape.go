// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image/color"
	"iter"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/clip"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/unit"
)

// Rectangle fills the size it is offered. A nil Fill paints with the
// ForegroundColor of the environment.
type Rectangle struct {
	Base
	Fill         *paint.Style
	CornerRadius unit.Value

	radius float32
}

// NewRectangle returns a rectangle filled with c.
func NewRectangle(c color.NRGBA) *Rectangle {
	s := paint.Color(c)
	return &Rectangle{Fill: &s}
}

func (r *Rectangle) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	r.radius = gtx.Metric.Px(r.CornerRadius)
	r.SetDimension(requested)
	return r.Dimension()
}

func (r *Rectangle) Render(ctx *op.Context) {
	ctx.Fill(fillStyle(ctx.Env, r.Fill), clip.UniformRRect(r.Bounds(), r.radius).Triangles())
}

// Ellipse fills the ellipse inscribed in the size it is offered.
type Ellipse struct {
	Base
	Fill *paint.Style
}

func (el *Ellipse) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	el.SetDimension(requested)
	return el.Dimension()
}

func (el *Ellipse) Render(ctx *op.Context) {
	ctx.Fill(fillStyle(ctx.Env, el.Fill), clip.Ellipse(el.Bounds()).Triangles())
}

// Border draws a border inside the bounds of its content, on top of
// it.
type Border struct {
	Base
	Color        color.NRGBA
	CornerRadius unit.Value
	Width        unit.Value
	Content      Widget

	radius, width float32
}

func (b *Border) Children() iter.Seq[Widget] {
	return Of(b.Content)
}

func (b *Border) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	b.radius = gtx.Metric.Px(b.CornerRadius)
	b.width = gtx.Metric.Px(b.Width)
	return single(&b.Base, b.Content, gtx, requested)
}

func (b *Border) PositionChildren() {
	place(b.Content, b.Position())
}

func (b *Border) ProcessRender(ctx *op.Context) {
	RenderChildren(b, ctx)
	if b.width <= 0 {
		return
	}
	rr := clip.UniformRRect(b.Bounds(), b.radius)
	ctx.Fill(paint.Color(b.Color), clip.Border(rr, b.width).Triangles())
}

func fillStyle(e *env.Env, s *paint.Style) paint.Style {
	if s != nil {
		return *s
	}
	return paint.Color(env.Get(e, ForegroundColor))
}

// Background fills the bounds of its content before drawing the
// content.
type Background struct {
	Base
	Fill         *paint.Style
	CornerRadius unit.Value
	Content      Widget

	radius float32
}

func (b *Background) Children() iter.Seq[Widget] {
	return Of(b.Content)
}

func (b *Background) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	b.radius = gtx.Metric.Px(b.CornerRadius)
	return single(&b.Base, b.Content, gtx, requested)
}

func (b *Background) PositionChildren() {
	place(b.Content, b.Position())
}

func (b *Background) Render(ctx *op.Context) {
	style := paint.Color(env.Get(ctx.Env, BackgroundColor))
	if b.Fill != nil {
		style = *b.Fill
	}
	ctx.Fill(style, clip.UniformRRect(b.Bounds(), b.radius).Triangles())
}
