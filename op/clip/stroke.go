// SPDX-License-Identifier: Unlicense OR MIT

package clip

import (
	"math"

	"github.com/loomkit/loom/f32"
)

// Stroke represents a stroked polyline.
type Stroke struct {
	Path []f32.Point
	// Closed joins the last point to the first.
	Closed bool
	Width  float32
}

// Border returns the stroke tracing the rounded rectangle rr.
func Border(rr RRect, width float32) Stroke {
	inset := width / 2
	rr.Rect.Min = rr.Rect.Min.Add(f32.Pt(inset, inset))
	rr.Rect.Max = rr.Rect.Max.Sub(f32.Pt(inset, inset))
	return Stroke{Path: rr.Outline(), Closed: true, Width: width}
}

// Triangles tessellates each segment as a quad. Joins are left open,
// which is invisible for the short segments of flattened curves.
func (s Stroke) Triangles() []f32.Triangle {
	n := len(s.Path)
	if n < 2 || s.Width <= 0 {
		return nil
	}
	segs := n - 1
	if s.Closed {
		segs = n
	}
	hw := s.Width / 2
	tris := make([]f32.Triangle, 0, 2*segs)
	for i := 0; i < segs; i++ {
		a, b := s.Path[i], s.Path[(i+1)%n]
		d := b.Sub(a)
		l := float32(math.Hypot(float64(d.X), float64(d.Y)))
		if l == 0 {
			continue
		}
		nrm := f32.Pt(-d.Y/l*hw, d.X/l*hw)
		a0, a1 := a.Add(nrm), a.Sub(nrm)
		b0, b1 := b.Add(nrm), b.Sub(nrm)
		tris = append(tris, f32.Triangle{a0, b0, b1}, f32.Triangle{a0, b1, a1})
	}
	return tris
}
