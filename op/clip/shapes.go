// SPDX-License-Identifier: Unlicense OR MIT

package clip

import (
	"math"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/op"
)

// Shape is anything that can be tessellated.
type Shape interface {
	Triangles() []f32.Triangle
}

// Rect represents the clip area of a rectangle.
type Rect f32.Rectangle

// Triangles returns the two triangles covering r.
func (r Rect) Triangles() []f32.Triangle {
	if f32.Rectangle(r).Empty() {
		return nil
	}
	return []f32.Triangle{
		{r.Min, f32.Pt(r.Max.X, r.Min.Y), r.Max},
		{r.Min, r.Max, f32.Pt(r.Min.X, r.Max.Y)},
	}
}

// Push the rectangle as the clip area.
func (r Rect) Push(ctx *op.Context) op.Stack {
	return ctx.PushClip(f32.Rectangle(r))
}

// UniformRRect returns an RRect with all corner radii set to the
// provided radius.
func UniformRRect(rect f32.Rectangle, radius float32) RRect {
	return RRect{
		Rect: rect,
		SE:   radius,
		SW:   radius,
		NE:   radius,
		NW:   radius,
	}
}

// RRect represents the clip area of a rectangle with rounded
// corners.
//
// Specify a square with corner radii equal to half the square size to
// construct a circular clip area.
type RRect struct {
	Rect f32.Rectangle
	// The corner radii.
	SE, SW, NW, NE float32
}

// Outline returns the convex outline of the rounded rectangle,
// clockwise from the top edge.
func (rr RRect) Outline() []f32.Point {
	r := rr.Rect
	if r.Empty() {
		return nil
	}
	limit := min(r.Dx(), r.Dy()) / 2
	clamp := func(v float32) float32 {
		return max(0, min(v, limit))
	}
	se, sw, nw, ne := clamp(rr.SE), clamp(rr.SW), clamp(rr.NW), clamp(rr.NE)
	w, n, e, s := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	var pts []f32.Point
	pts = appendArc(pts, f32.Pt(e-ne, n+ne), ne, -math.Pi/2, 0)
	pts = appendArc(pts, f32.Pt(e-se, s-se), se, 0, math.Pi/2)
	pts = appendArc(pts, f32.Pt(w+sw, s-sw), sw, math.Pi/2, math.Pi)
	pts = appendArc(pts, f32.Pt(w+nw, n+nw), nw, math.Pi, 3*math.Pi/2)
	return pts
}

// Triangles tessellates the rounded rectangle.
func (rr RRect) Triangles() []f32.Triangle {
	return Polygon(rr.Outline()).Triangles()
}

// Push the rounded rectangle as the clip area.
func (rr RRect) Push(ctx *op.Context) op.Stack {
	if rr.SE == 0 && rr.SW == 0 && rr.NW == 0 && rr.NE == 0 {
		return Rect(rr.Rect).Push(ctx)
	}
	return ctx.PushStencil(rr.Triangles())
}

// Ellipse represents the largest axis-aligned ellipse that
// is contained in its bounds.
type Ellipse f32.Rectangle

// Outline returns the outline of the ellipse.
func (e Ellipse) Outline() []f32.Point {
	r := f32.Rectangle(e)
	if r.Empty() {
		return nil
	}
	c := r.Min.Add(r.Max).Mul(.5)
	rx, ry := r.Dx()/2, r.Dy()/2
	n := segments(max(rx, ry), 2*math.Pi)
	pts := make([]f32.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		sin, cos := math.Sincos(a)
		pts[i] = f32.Pt(c.X+rx*float32(cos), c.Y+ry*float32(sin))
	}
	return pts
}

// Triangles tessellates the ellipse.
func (e Ellipse) Triangles() []f32.Triangle {
	return Polygon(e.Outline()).Triangles()
}

// Push the ellipse as the clip area.
func (e Ellipse) Push(ctx *op.Context) op.Stack {
	return ctx.PushStencil(e.Triangles())
}

// Polygon is a convex polygon.
type Polygon []f32.Point

// Triangles tessellates the polygon as a fan around its first vertex.
func (p Polygon) Triangles() []f32.Triangle {
	if len(p) < 3 {
		return nil
	}
	tris := make([]f32.Triangle, 0, len(p)-2)
	for i := 1; i < len(p)-1; i++ {
		tris = append(tris, f32.Triangle{p[0], p[i], p[i+1]})
	}
	return tris
}

// Push the polygon as the clip area.
func (p Polygon) Push(ctx *op.Context) op.Stack {
	return ctx.PushStencil(p.Triangles())
}

// Bounds returns the bounding rectangle of the triangles.
func Bounds(tris []f32.Triangle) f32.Rectangle {
	if len(tris) == 0 {
		return f32.Rectangle{}
	}
	b := f32.Rectangle{Min: tris[0][0], Max: tris[0][0]}
	for _, t := range tris {
		for _, p := range t {
			b = b.Union(f32.Rectangle{Min: p, Max: p})
		}
	}
	return b
}

// appendArc appends points along the circle arc around c from angle
// beg to end, in radians, both inclusive. A zero radius appends c.
func appendArc(pts []f32.Point, c f32.Point, radius float32, beg, end float64) []f32.Point {
	if radius <= 0 {
		return append(pts, c)
	}
	n := segments(radius, end-beg)
	for i := 0; i <= n; i++ {
		a := beg + (end-beg)*float64(i)/float64(n)
		sin, cos := math.Sincos(a)
		pts = append(pts, f32.Pt(c.X+radius*float32(cos), c.Y+radius*float32(sin)))
	}
	return pts
}

// segments returns the number of line segments approximating an arc
// of the given radius and angle within a quarter pixel.
func segments(radius float32, angle float64) int {
	const tolerance = 0.25
	r := float64(radius)
	if r <= tolerance {
		return 1
	}
	step := 2 * math.Acos(1-tolerance/r)
	n := int(math.Ceil(math.Abs(angle) / step))
	return max(1, min(n, 64))
}
