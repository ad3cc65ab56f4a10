// SPDX-License-Identifier: Unlicense OR MIT

/*
Package layout implements the two-pass layout of the widget tree.

The first pass, CalculateSize, offers every widget a requested size and
lets it choose its own size, asking its children in turn. The second
pass, PositionChildren, runs top-down and assigns absolute positions.
Dimensions are never negative after the first pass; positions are only
meaningful after the second.
*/
package layout

import (
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/unit"
)

// Flags describe how a widget takes part in layout and traversal.
type Flags uint8

// Axis is the Horizontal or Vertical direction.
type Axis uint8

// Alignment is the mutual alignment of a list of widgets in the
// cross axis.
type Alignment uint8

// Direction is the alignment of widgets relative to a containing
// space.
type Direction uint8

// Child is the part of a widget the layout algorithms work with.
type Child interface {
	Flags() Flags
	// Flexibility ranks siblings in a stack. Lower flexibility is
	// sized first.
	Flexibility() int
	// CalculateSize chooses and records the child's dimension given
	// the requested size.
	CalculateSize(gtx *Context, requested f32.Point) f32.Point
	Dimension() f32.Point
	SetDimension(size f32.Point)
	Position() f32.Point
	SetPosition(p f32.Point)
	// PositionChildren positions the children of an already
	// positioned child.
	PositionChildren()
}

const (
	// Proxy widgets are transparent to traversal; their children are
	// spliced into the parent's children.
	Proxy Flags = 1 << iota
	// Ignore excludes a widget from stack allocation. It is offered
	// the full requested size and placed at the container origin.
	Ignore
	// Focusable widgets take part in focus traversal.
	Focusable
	// Spacer widgets claim leftover main axis space.
	Spacer
	// UseMaxCrossAxis widgets are sized after their siblings and
	// offered the largest cross axis extent those siblings chose.
	UseMaxCrossAxis
)

const (
	Start Alignment = iota
	End
	Middle
)

const (
	NW Direction = iota
	N
	NE
	E
	SE
	S
	SW
	W
	Center
)

const (
	Horizontal Axis = iota
	Vertical
)

// Has reports whether all of g is set in f.
func (f Flags) Has(g Flags) bool {
	return f&g == g
}

func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	var s string
	for _, n := range []struct {
		f    Flags
		name string
	}{
		{Proxy, "Proxy"},
		{Ignore, "Ignore"},
		{Focusable, "Focusable"},
		{Spacer, "Spacer"},
		{UseMaxCrossAxis, "UseMaxCrossAxis"},
	} {
		if f.Has(n.f) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}

// Main returns the main axis component of p.
func (a Axis) Main(p f32.Point) float32 {
	if a == Horizontal {
		return p.X
	}
	return p.Y
}

// Cross returns the cross axis component of p.
func (a Axis) Cross(p f32.Point) float32 {
	if a == Horizontal {
		return p.Y
	}
	return p.X
}

// Point returns the point with the given main and cross axis
// components.
func (a Axis) Point(main, cross float32) f32.Point {
	if a == Horizontal {
		return f32.Point{X: main, Y: cross}
	}
	return f32.Point{X: cross, Y: main}
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("unreachable")
	}
}

// Offset returns the cross axis offset of an item of size sz within
// extent.
func (a Alignment) Offset(extent, sz float32) float32 {
	switch a {
	case Middle:
		return (extent - sz) / 2
	case End:
		return extent - sz
	default:
		return 0
	}
}

func (a Alignment) String() string {
	switch a {
	case Start:
		return "Start"
	case End:
		return "End"
	case Middle:
		return "Middle"
	default:
		panic("unreachable")
	}
}

// Position returns the offset of an item of size sz placed in a space
// of size outer.
func (d Direction) Position(outer, sz f32.Point) f32.Point {
	var p f32.Point
	switch d {
	case N, S, Center:
		p.X = (outer.X - sz.X) / 2
	case NE, SE, E:
		p.X = outer.X - sz.X
	}
	switch d {
	case W, Center, E:
		p.Y = (outer.Y - sz.Y) / 2
	case SW, S, SE:
		p.Y = outer.Y - sz.Y
	}
	return p
}

func (d Direction) String() string {
	switch d {
	case NW:
		return "NW"
	case N:
		return "N"
	case NE:
		return "NE"
	case E:
		return "E"
	case SE:
		return "SE"
	case S:
		return "S"
	case SW:
		return "SW"
	case W:
		return "W"
	case Center:
		return "Center"
	default:
		panic("unreachable")
	}
}

// Inset adds space around a widget.
type Inset struct {
	Top, Right, Bottom, Left unit.Value
}

// UniformInset returns an Inset with a single inset applied to all
// edges.
func UniformInset(v unit.Value) Inset {
	return Inset{Top: v, Right: v, Bottom: v, Left: v}
}

// Shrink returns the size left for the inset content, never negative.
func (in Inset) Shrink(m unit.Metric, size f32.Point) f32.Point {
	return f32.Point{
		X: size.X - m.Px(in.Left) - m.Px(in.Right),
		Y: size.Y - m.Px(in.Top) - m.Px(in.Bottom),
	}.NonNegative()
}

// Grow returns the size of the inset content of size size, including
// the inset.
func (in Inset) Grow(m unit.Metric, size f32.Point) f32.Point {
	return f32.Point{
		X: size.X + m.Px(in.Left) + m.Px(in.Right),
		Y: size.Y + m.Px(in.Top) + m.Px(in.Bottom),
	}
}

// Offset returns the position of the content relative to the outer
// edge.
func (in Inset) Offset(m unit.Metric) f32.Point {
	return f32.Point{X: m.Px(in.Left), Y: m.Px(in.Top)}
}
