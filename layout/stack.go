// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"github.com/loomkit/loom/f32"
	"golang.org/x/exp/slices"
)

// Stack lays out children sequentially along an axis.
type Stack struct {
	// Axis is the main axis, either Horizontal or Vertical.
	Axis Axis
	// Spacing is the space between two adjacent non-spacer children.
	Spacing float32
	// Alignment is the alignment in the cross axis.
	Alignment Alignment
}

// CalculateSize sizes children and returns the size of the stack.
//
// Non-spacer children are sized in two groups: the children without
// the UseMaxCrossAxis flag first, then the ones with it. Within a
// group, children are sized in order of increasing flexibility, ties
// in declaration order. Each child is offered an equal share of the
// main axis space that is still unclaimed. Children flagged
// UseMaxCrossAxis are offered the largest cross axis extent of the
// first group. Space left over is divided evenly between spacers.
func (s Stack) CalculateSize(gtx *Context, requested f32.Point, children []Child) f32.Point {
	requested = requested.NonNegative()
	var (
		rest, greedy, spacers []Child
	)
	for _, c := range children {
		f := c.Flags()
		switch {
		case f.Has(Ignore):
			c.CalculateSize(gtx, requested)
		case f.Has(Spacer):
			spacers = append(spacers, c)
		case f.Has(UseMaxCrossAxis):
			greedy = append(greedy, c)
		default:
			rest = append(rest, c)
		}
	}
	n := len(rest) + len(greedy)
	spacing := s.spacingTotal(n)
	reqMain, reqCross := s.Axis.Main(requested), s.Axis.Cross(requested)

	byFlexibility := func(a, b Child) int {
		return a.Flexibility() - b.Flexibility()
	}
	slices.SortStableFunc(rest, byFlexibility)
	slices.SortStableFunc(greedy, byFlexibility)

	remaining := reqMain - spacing
	count := n
	var chosen, maxCross float32
	size := func(c Child, cross float32) {
		if remaining < 0 {
			remaining = 0
		}
		offer := remaining / float32(count)
		sz := c.CalculateSize(gtx, s.Axis.Point(offer, cross)).NonNegative()
		c.SetDimension(sz)
		main := s.Axis.Main(sz)
		remaining -= main
		chosen += main
		count--
		if cr := s.Axis.Cross(sz); cr > maxCross {
			maxCross = cr
		}
	}
	for _, c := range rest {
		size(c, reqCross)
	}
	crossOffer := maxCross
	for _, c := range greedy {
		size(c, crossOffer)
	}

	leftover := reqMain - chosen - spacing
	var each float32
	if leftover > 0 && len(spacers) > 0 {
		each = leftover / float32(len(spacers))
	}
	for _, c := range spacers {
		c.SetDimension(s.Axis.Point(each, 0))
		chosen += each
	}
	return s.Axis.Point(chosen+spacing, maxCross)
}

// PositionChildren places children that were sized by CalculateSize,
// starting at origin. size is the size the stack reported.
func (s Stack) PositionChildren(origin, size f32.Point, children []Child) {
	main := s.Axis.Main(origin)
	cross := s.Axis.Cross(origin)
	extent := s.Axis.Cross(size)
	placed := false
	for _, c := range children {
		f := c.Flags()
		dims := c.Dimension()
		switch {
		case f.Has(Ignore):
			c.SetPosition(origin)
		case f.Has(Spacer):
			c.SetPosition(s.Axis.Point(main, cross))
			main += s.Axis.Main(dims)
		default:
			if placed {
				main += s.Spacing
			}
			placed = true
			off := s.Alignment.Offset(extent, s.Axis.Cross(dims))
			c.SetPosition(s.Axis.Point(main, cross+off))
			main += s.Axis.Main(dims)
		}
		c.PositionChildren()
	}
}

func (s Stack) spacingTotal(n int) float32 {
	if n < 2 {
		return 0
	}
	return float32(n-1) * s.Spacing
}
