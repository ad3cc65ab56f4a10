// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/gesture"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
)

// unbounded is the size offered to scrolled content along the scroll
// axis.
const unbounded = 1e9

// Scroll shows a viewport into content that may be larger than the
// viewport along Axis. Wheels and touch drags move the viewport.
//
// Content is offered unbounded space along the axis; content filling
// all offered space is limited to the viewport.
type Scroll struct {
	Base
	Axis layout.Axis
	// ScrollToEnd keeps the viewport at the far end once it reached
	// it, for example for logs.
	ScrollToEnd bool
	// Offset is the distance in pixels from the start of the content
	// to the start of the viewport. It is clamped during layout; set
	// it to scroll programmatically.
	Offset  float32
	Content Widget

	scroll  gesture.Scroll
	drag    gesture.Drag
	from    float32
	content float32
	atEnd   bool
}

// VScroll returns a vertical scroll view of content.
func VScroll(content Widget) *Scroll {
	return &Scroll{Axis: layout.Vertical, Content: content}
}

// HScroll returns a horizontal scroll view of content.
func HScroll(content Widget) *Scroll {
	return &Scroll{Axis: layout.Horizontal, Content: content}
}

// Max returns the largest offset of the last layout.
func (s *Scroll) Max() float32 {
	return max(s.content-s.Axis.Main(s.Dimension()), 0)
}

// AtEnd reports whether the viewport shows the end of the content.
func (s *Scroll) AtEnd() bool {
	return s.atEnd
}

func (s *Scroll) Children() iter.Seq[Widget] {
	return Of(s.Content)
}

func (s *Scroll) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	view := s.Axis.Main(requested)
	var csz f32.Point
	if s.Content != nil {
		csz = s.Content.CalculateSize(gtx, s.Axis.Point(unbounded, s.Axis.Cross(requested)))
		if s.Axis.Main(csz) >= unbounded {
			csz = s.Axis.Point(view, s.Axis.Cross(csz))
		}
		s.Content.SetDimension(csz)
	}
	s.content = s.Axis.Main(csz)
	s.SetDimension(s.Axis.Point(view, min(s.Axis.Cross(csz), s.Axis.Cross(requested))))
	end := s.Max()
	if s.ScrollToEnd && s.atEnd {
		s.Offset = end
	}
	s.Offset = min(max(s.Offset, 0), end)
	s.atEnd = s.Offset >= end
	return s.Dimension()
}

func (s *Scroll) PositionChildren() {
	place(s.Content, s.Position().Sub(s.Axis.Point(s.Offset, 0)))
}

func (s *Scroll) ProcessRender(ctx *op.Context) {
	defer ctx.PushClip(s.Bounds()).Pop()
	RenderChildren(s, ctx)
}

// scrollBy moves the viewport by d pixels and reports whether it
// moved.
func (s *Scroll) scrollBy(d float32) bool {
	off := min(max(s.Offset+d, 0), s.Max())
	if off == s.Offset {
		return false
	}
	s.Offset = off
	s.atEnd = off >= s.Max()
	return true
}

func (s *Scroll) axis() gesture.Axis {
	if s.Axis == layout.Horizontal {
		return gesture.Horizontal
	}
	return gesture.Vertical
}

func (s *Scroll) ProcessPointer(e pointer.Event, ctx *pointer.Context) {
	hit := ctx.Local(e.Position).In(s.Bounds())
	switch e.Kind {
	case pointer.Press, pointer.Scroll:
		if !hit {
			return
		}
	}
	ProcessPointerChildren(s, e, ctx)
	if e.Kind == pointer.Scroll {
		// Nested views scroll first; at their end the scroll
		// passes on.
		if d := s.scroll.Update(e, s.axis()); d != 0 && !ctx.Consumed && s.scrollBy(float32(d)) {
			ctx.Consume()
		}
		return
	}
	active := !ctx.Consumed && (e.Kind != pointer.Press || e.Source == pointer.Touch)
	de, ok := s.drag.Update(e, hit, active)
	if !ok {
		return
	}
	switch de.Kind {
	case pointer.Press:
		s.from = s.Offset
	case pointer.Drag:
		moved := s.Axis.Main(ctx.Local(de.Position)) - s.Axis.Main(ctx.Local(s.drag.Start()))
		s.Offset = s.from
		s.scrollBy(-moved)
	}
	ctx.Consume()
}

func (s *Scroll) HandleSemantic(e event.Event, ctx *semantic.Context) {
	switch e := e.(type) {
	case semantic.RebuildEvent:
		ctx.Describe(s.ID(), semantic.Desc{
			Class:    semantic.Group,
			Disabled: !env.Get(ctx.Env, Enabled),
			Gestures: semantic.ScrollGesture,
			Bounds:   s.Bounds(),
		})
	case semantic.ActionEvent:
		if e.Target != s.ID() || ctx.Handled {
			return
		}
		page := s.Axis.Main(s.Dimension())
		switch e.Action {
		case semantic.ActionScrollForward:
			ctx.Handled = s.scrollBy(page)
		case semantic.ActionScrollBackward:
			ctx.Handled = s.scrollBy(-page)
		}
	}
}
