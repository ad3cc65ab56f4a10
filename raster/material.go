// SPDX-License-Identifier: Unlicense OR MIT

package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/op/paint"
)

// material returns the source image of style s pushed under the
// transform t.
func material(s paint.Style, t f32.Affine2D) image.Image {
	switch s.Kind {
	case paint.StyleLinearGradient, paint.StyleRadialGradient:
		if len(s.Stops) == 0 {
			return transparent
		}
		return &gradient{style: s, inv: t.Invert()}
	default:
		return image.NewUniform(s.Color)
	}
}

// gradient is an unbounded image of a gradient style, addressed in
// frame coordinates.
type gradient struct {
	style paint.Style
	inv   f32.Affine2D
}

func (g *gradient) ColorModel() color.Model {
	return color.NRGBAModel
}

func (g *gradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *gradient) At(x, y int) color.Color {
	p := g.inv.Transform(f32.Pt(float32(x)+.5, float32(y)+.5))
	s := g.style
	d := s.End.Sub(s.Start)
	var t float32
	switch s.Kind {
	case paint.StyleLinearGradient:
		if l2 := d.X*d.X + d.Y*d.Y; l2 > 0 {
			v := p.Sub(s.Start)
			t = (v.X*d.X + v.Y*d.Y) / l2
		}
	default:
		if r := float32(math.Hypot(float64(d.X), float64(d.Y))); r > 0 {
			v := p.Sub(s.Start)
			t = float32(math.Hypot(float64(v.X), float64(v.Y))) / r
		}
	}
	return interpolate(s.Stops, t)
}

// interpolate returns the color at offset t of stops sorted by offset.
func interpolate(stops []paint.Stop, t float32) color.NRGBA {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		if t > s1.Offset {
			continue
		}
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return s1.Color
		}
		return lerp(s0.Color, s1.Color, (t-s0.Offset)/span)
	}
	return stops[len(stops)-1].Color
}

func lerp(a, b color.NRGBA, t float32) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + .5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
