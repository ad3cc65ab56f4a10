// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/layout"
)

// Fit scales a widget to fit and clip to the requested size.
type Fit uint8

const (
	// Unscaled does not alter the scale of a widget.
	Unscaled Fit = iota
	// Contain scales widget as large as possible without cropping
	// and it preserves aspect-ratio.
	Contain
	// Cover scales the widget to cover the requested area and
	// preserves aspect-ratio.
	Cover
	// ScaleDown scales the widget smaller without cropping,
	// when it exceeds the requested area.
	// It preserves aspect-ratio.
	ScaleDown
	// Fill stretches the widget to the requested size and does not
	// preserve aspect-ratio.
	Fill
)

// scale fits content of size natural into requested. It returns the
// resulting widget size and the destination of the scaled content
// relative to the widget, which may extend past the widget size and
// must be clipped.
func (fit Fit) scale(requested, natural f32.Point, pos layout.Direction) (size f32.Point, dst f32.Rectangle) {
	place := func(scaled f32.Point) (f32.Point, f32.Rectangle) {
		size := constrain(scaled, requested)
		off := pos.Position(size, scaled)
		return size, f32.Rectangle{Min: off, Max: off.Add(scaled)}
	}
	if fit == Unscaled || natural.X == 0 || natural.Y == 0 {
		return place(natural)
	}

	scale := f32.Point{
		X: requested.X / natural.X,
		Y: requested.Y / natural.Y,
	}

	switch fit {
	case Contain:
		if scale.Y < scale.X {
			scale.X = scale.Y
		} else {
			scale.Y = scale.X
		}
	case Cover:
		if scale.Y > scale.X {
			scale.X = scale.Y
		} else {
			scale.Y = scale.X
		}
	case ScaleDown:
		if scale.Y < scale.X {
			scale.X = scale.Y
		} else {
			scale.Y = scale.X
		}

		// The widget would need to be scaled up, no change needed.
		if scale.X >= 1 {
			return place(natural)
		}
	case Fill:
	}

	return place(f32.Pt(natural.X*scale.X, natural.Y*scale.Y))
}

func constrain(sz, limit f32.Point) f32.Point {
	return f32.Pt(min(sz.X, limit.X), min(sz.Y, limit.Y))
}
