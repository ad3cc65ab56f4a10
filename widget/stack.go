// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/unit"
)

// Stack lays out its children along an axis. See layout.Stack for the
// sizing rules.
type Stack struct {
	Base
	Axis      layout.Axis
	Spacing   unit.Value
	Alignment layout.Alignment

	children []Widget
	flat     []Widget
	spacing  float32
}

// HStack returns a horizontal stack.
func HStack(spacing unit.Value, children ...Widget) *Stack {
	return &Stack{Axis: layout.Horizontal, Spacing: spacing, Alignment: layout.Middle, children: children}
}

// VStack returns a vertical stack.
func VStack(spacing unit.Value, children ...Widget) *Stack {
	return &Stack{Axis: layout.Vertical, Spacing: spacing, Alignment: layout.Middle, children: children}
}

// Append adds children at the end of the stack.
func (s *Stack) Append(children ...Widget) {
	s.children = append(s.children, children...)
}

func (s *Stack) Children() iter.Seq[Widget] {
	return Of(s.children...)
}

func (s *Stack) stack() layout.Stack {
	return layout.Stack{Axis: s.Axis, Spacing: s.spacing, Alignment: s.Alignment}
}

func (s *Stack) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	s.flat = Flatten(s.Children())
	s.spacing = gtx.Metric.Px(s.Spacing)
	s.SetDimension(s.stack().CalculateSize(gtx, requested, layoutChildren(s.flat)))
	return s.Dimension()
}

func (s *Stack) PositionChildren() {
	s.stack().PositionChildren(s.Position(), s.Dimension(), layoutChildren(s.flat))
}

// ZStack lays its children on top of each other. The stack is as
// large as its largest child; smaller children are placed by
// Alignment. Later children are drawn above earlier ones and see
// pointer events first.
type ZStack struct {
	Base
	Alignment layout.Direction

	children []Widget
	flat     []Widget
}

// NewZStack returns a ZStack with children from bottom to top.
func NewZStack(alignment layout.Direction, children ...Widget) *ZStack {
	return &ZStack{Alignment: alignment, children: children}
}

func (z *ZStack) Children() iter.Seq[Widget] {
	return Of(z.children...)
}

func (z *ZStack) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	z.flat = Flatten(z.Children())
	var sz f32.Point
	for _, c := range z.flat {
		d := c.CalculateSize(gtx, requested)
		c.SetDimension(d)
		d = c.Dimension()
		if d.X > sz.X {
			sz.X = d.X
		}
		if d.Y > sz.Y {
			sz.Y = d.Y
		}
	}
	z.SetDimension(sz)
	return z.Dimension()
}

func (z *ZStack) PositionChildren() {
	for _, c := range z.flat {
		place(c, z.Position().Add(z.Alignment.Position(z.Dimension(), c.Dimension())))
	}
}

// ProcessPointer visits the children from top to bottom. Children of
// proxies are ordered as they were laid out.
func (z *ZStack) ProcessPointer(e pointer.Event, ctx *pointer.Context) {
	if captures(z) {
		return
	}
	flat := Flatten(z.Children())
	for i := len(flat) - 1; i >= 0; i-- {
		ProcessPointer(flat[i], e, ctx)
	}
}

// Spacer claims a share of the leftover space in a Stack.
type Spacer struct {
	Base
}

// NewSpacer returns a spacer.
func NewSpacer() *Spacer {
	s := new(Spacer)
	s.SetFlags(layout.Spacer)
	return s
}

// CalculateSize is only called outside of stacks, where a spacer has
// no size.
func (s *Spacer) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	return f32.Point{}
}
