// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/unit"
)

// Frame gives its content a fixed or expanded size and aligns the
// content within it. A zero Width or Height sizes that axis after the
// content, unless the axis is expanded to the requested size.
type Frame struct {
	Base
	Width, Height unit.Value
	ExpandX       bool
	ExpandY       bool
	Alignment     layout.Direction
	Content       Widget
}

// Sized returns a frame of fixed size around content.
func Sized(width, height unit.Value, content Widget) *Frame {
	return &Frame{Width: width, Height: height, Alignment: layout.Center, Content: content}
}

// Expanded returns a frame filling the requested size.
func Expanded(content Widget) *Frame {
	return &Frame{ExpandX: true, ExpandY: true, Alignment: layout.Center, Content: content}
}

func (f *Frame) Children() iter.Seq[Widget] {
	return Of(f.Content)
}

func (f *Frame) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	offer := requested
	fixedX, fixedY := f.Width.V > 0, f.Height.V > 0
	if fixedX {
		offer.X = gtx.Metric.Px(f.Width)
	}
	if fixedY {
		offer.Y = gtx.Metric.Px(f.Height)
	}
	var content f32.Point
	if f.Content != nil {
		content = f.Content.CalculateSize(gtx, offer)
		f.Content.SetDimension(content)
		content = f.Content.Dimension()
	}
	sz := content
	switch {
	case fixedX:
		sz.X = offer.X
	case f.ExpandX:
		sz.X = max(requested.X, content.X)
	}
	switch {
	case fixedY:
		sz.Y = offer.Y
	case f.ExpandY:
		sz.Y = max(requested.Y, content.Y)
	}
	f.SetDimension(sz)
	return f.Dimension()
}

func (f *Frame) PositionChildren() {
	if f.Content == nil {
		return
	}
	place(f.Content, f.Position().Add(f.Alignment.Position(f.Dimension(), f.Content.Dimension())))
}

// Padding adds space around its content.
type Padding struct {
	Base
	layout.Inset
	Content Widget

	offset f32.Point
}

// Pad returns content surrounded by the same inset on every edge.
func Pad(v unit.Value, content Widget) *Padding {
	return &Padding{Inset: layout.UniformInset(v), Content: content}
}

func (p *Padding) Children() iter.Seq[Widget] {
	return Of(p.Content)
}

func (p *Padding) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	var content f32.Point
	if p.Content != nil {
		content = p.Content.CalculateSize(gtx, p.Shrink(gtx.Metric, requested))
		p.Content.SetDimension(content)
		content = p.Content.Dimension()
	}
	p.offset = p.Inset.Offset(gtx.Metric)
	p.SetDimension(p.Grow(gtx.Metric, content))
	return p.Dimension()
}

func (p *Padding) PositionChildren() {
	place(p.Content, p.Position().Add(p.offset))
}

// Offset shifts its content without changing its own size.
type Offset struct {
	Base
	X, Y    unit.Value
	Content Widget

	offset f32.Point
}

func (o *Offset) Children() iter.Seq[Widget] {
	return Of(o.Content)
}

func (o *Offset) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	o.offset = f32.Pt(gtx.Metric.Px(o.X), gtx.Metric.Px(o.Y))
	return single(&o.Base, o.Content, gtx, requested)
}

func (o *Offset) PositionChildren() {
	place(o.Content, o.Position().Add(o.offset))
}
