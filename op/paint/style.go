// SPDX-License-Identifier: Unlicense OR MIT

package paint

import (
	"fmt"
	"image/color"

	"github.com/loomkit/loom/f32"
)

// StyleKind selects how a Style fills.
type StyleKind uint8

const (
	StyleColor StyleKind = iota
	StyleLinearGradient
	StyleRadialGradient
)

// Style is a fill style.
type Style struct {
	Kind  StyleKind
	Color color.NRGBA
	// Start and End are the gradient end points. For radial
	// gradients Start is the center and End a point on the outer
	// circle.
	Start, End f32.Point
	Stops      []Stop
}

// Stop is a gradient color stop.
type Stop struct {
	Offset float32
	Color  color.NRGBA
}

// Color returns a solid style.
func Color(c color.NRGBA) Style {
	return Style{Kind: StyleColor, Color: c}
}

// LinearGradient returns a style interpolating stops from start to end.
func LinearGradient(start, end f32.Point, stops ...Stop) Style {
	return Style{Kind: StyleLinearGradient, Start: start, End: end, Stops: stops}
}

// RadialGradient returns a style interpolating stops outwards from
// center to radius.
func RadialGradient(center f32.Point, radius float32, stops ...Stop) Style {
	return Style{
		Kind:  StyleRadialGradient,
		Start: center,
		End:   center.Add(f32.Pt(radius, 0)),
		Stops: stops,
	}
}

func (s Style) String() string {
	switch s.Kind {
	case StyleColor:
		c := s.Color
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	case StyleLinearGradient:
		return fmt.Sprintf("linear %v-%v %d stops", s.Start, s.End, len(s.Stops))
	default:
		return fmt.Sprintf("radial %v-%v %d stops", s.Start, s.End, len(s.Stops))
	}
}
