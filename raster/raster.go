// SPDX-License-Identifier: Unlicense OR MIT

/*
Package raster implements a software rasterizer for op lists.

The rasterizer trades speed for simplicity and is meant for headless
rendering and tests. Clip rectangles and images under rotating or
shearing transforms are approximated by their bounding boxes;
geometry, stencils and gradients are transformed exactly.
*/
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/text"
)

// GlyphSource locates rasterized glyphs. It is implemented by
// *text.Rasterizer and by the *text.GlyphSet snapshots of frames.
type GlyphSource interface {
	Glyph(l *text.Layout, g text.Glyph) (text.GlyphImage, bool)
	AtlasImage() *image.NRGBA
}

// ImageSource provides decoded images. It is implemented by
// *paint.Registry.
type ImageSource interface {
	Image(id paint.ImageID) (image.Image, error)
}

// Rasterizer draws op lists into images. A nil Glyphs skips text and a
// nil Images skips images.
type Rasterizer struct {
	Glyphs GlyphSource
	Images ImageSource

	state   drawState
	scratch struct {
		states []drawState
	}
	err error
}

type drawState struct {
	t        f32.Affine2D
	material image.Image
	clip     image.Rectangle
	// mask is the coverage of the active stencils, or nil.
	mask   *image.Alpha
	target *image.RGBA
	// effect is applied when a layer target is composited into its
	// parent.
	effect effect
}

type effect struct {
	opacity float32
	filter  *op.Filter
}

var transparent = image.NewUniform(color.NRGBA{})

// Frame draws frame over dst. Drawing continues after errors; the
// first error is returned.
func (r *Rasterizer) Frame(frame *op.Ops, dst *image.RGBA) error {
	if frame == nil {
		return nil
	}
	stack := r.scratch.states[:0]
	defer func() {
		clear(stack)
		r.scratch.states = stack[:0]
		r.state = drawState{}
	}()
	r.err = nil
	r.state = drawState{
		material: transparent,
		clip:     dst.Bounds(),
		target:   dst,
	}
	for _, p := range frame.Primitives() {
		switch p := p.(type) {
		case op.PushStyle:
			stack = append(stack, r.state)
			r.state.material = material(p.Style, r.state.t)
		case op.PushTransform:
			stack = append(stack, r.state)
			r.state.t = r.state.t.Mul(p.Transform)
		case op.PushClip:
			stack = append(stack, r.state)
			r.state.clip = r.state.clip.Intersect(roundOut(transformBounds(r.state.t, p.Rect)))
		case op.PushStencil:
			stack = append(stack, r.state)
			r.stencil(p.Triangles)
		case op.PushLayer:
			stack = append(stack, r.state)
			r.layer(effect{opacity: p.Opacity})
		case op.PushFilter:
			stack = append(stack, r.state)
			f := p.Filter
			r.layer(effect{opacity: 1, filter: &f})
		case op.Pop:
			if len(stack) == 0 {
				return fmt.Errorf("raster: unbalanced Pop of %v", p.Of)
			}
			prev := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if r.state.target != prev.target {
				composite(r.state, prev.target)
			}
			r.state = prev
		case op.Geometry:
			r.fill(p.Triangles)
		case op.Text:
			r.text(p)
		case op.Image:
			r.image(p)
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("raster: %d unpopped pushes", len(stack))
	}
	return r.err
}

// coverage rasterizes the transformed triangles into an alpha image
// covering their bounds within the clip, or returns nil if nothing is
// covered.
func (r *Rasterizer) coverage(tris []f32.Triangle) *image.Alpha {
	if len(tris) == 0 {
		return nil
	}
	t := r.state.t
	pts := make([]f32.Point, 0, len(tris)*3)
	bounds := f32.Rectangle{Min: t.Transform(tris[0][0]), Max: t.Transform(tris[0][0])}
	for _, tri := range tris {
		for _, p := range tri {
			p = t.Transform(p)
			pts = append(pts, p)
			bounds = bounds.Union(f32.Rectangle{Min: p, Max: p})
		}
	}
	b := roundOut(bounds).Intersect(r.state.clip)
	if b.Empty() {
		return nil
	}
	vr := vector.NewRasterizer(b.Dx(), b.Dy())
	off := f32.Pt(float32(-b.Min.X), float32(-b.Min.Y))
	for i := 0; i+2 < len(pts); i += 3 {
		p0, p1, p2 := pts[i].Add(off), pts[i+1].Add(off), pts[i+2].Add(off)
		// Windings of overlapping triangles must not cancel.
		if (p1.X-p0.X)*(p2.Y-p0.Y)-(p1.Y-p0.Y)*(p2.X-p0.X) < 0 {
			p1, p2 = p2, p1
		}
		vr.MoveTo(p0.X, p0.Y)
		vr.LineTo(p1.X, p1.Y)
		vr.LineTo(p2.X, p2.Y)
		vr.ClosePath()
	}
	cov := image.NewAlpha(b)
	vr.Draw(cov, b, image.Opaque, image.Point{})
	return cov
}

func (r *Rasterizer) fill(tris []f32.Triangle) {
	if cov := r.coverage(tris); cov != nil {
		r.paint(cov.Rect, r.state.material, cov)
	}
}

func (r *Rasterizer) stencil(tris []f32.Triangle) {
	cov := r.coverage(tris)
	if cov == nil {
		r.state.clip = image.Rectangle{}
		return
	}
	r.state.clip = cov.Rect
	if prev := r.state.mask; prev != nil {
		multiply(cov, prev)
	}
	r.state.mask = cov
}

// layer redirects drawing to a fresh target until the matching Pop.
func (r *Rasterizer) layer(e effect) {
	r.state.effect = e
	r.state.target = image.NewRGBA(r.state.target.Bounds())
}

// paint draws src over the target within b, through cov if not nil and
// the stencil mask.
func (r *Rasterizer) paint(b image.Rectangle, src image.Image, cov *image.Alpha) {
	b = b.Intersect(r.state.clip)
	if b.Empty() {
		return
	}
	if m := r.state.mask; m != nil {
		if cov == nil {
			cov = image.NewAlpha(b)
			draw.Draw(cov, b, m, b.Min, draw.Src)
		} else {
			multiply(cov, m)
		}
	}
	if cov == nil {
		draw.Draw(r.state.target, b, src, b.Min, draw.Over)
		return
	}
	draw.DrawMask(r.state.target, b, src, b.Min, cov, b.Min, draw.Over)
}

func (r *Rasterizer) text(p op.Text) {
	l, ok := p.Run.(*text.Layout)
	if !ok || r.Glyphs == nil {
		return
	}
	glyphs := r.Glyphs.AtlasImage()
	origin := r.state.t.Transform(p.Origin)
	for _, line := range l.Lines {
		for _, run := range line.Runs {
			for _, g := range run.Glyphs {
				gi, ok := r.Glyphs.Glyph(l, g)
				if !ok || gi.Empty {
					continue
				}
				pos := origin.Add(f32.Pt(line.X+g.X, line.Y+g.Y))
				at := image.Pt(int(math.Round(float64(pos.X))), int(math.Round(float64(pos.Y)))).Add(gi.Bearing)
				dst := image.Rectangle{Min: at, Max: at.Add(gi.Book.Size)}
				b := dst.Intersect(r.state.clip)
				if b.Empty() {
					continue
				}
				cov := image.NewAlpha(b)
				draw.Draw(cov, b, glyphs, gi.Book.Offset.Add(b.Min.Sub(dst.Min)), draw.Src)
				r.paint(b, r.state.material, cov)
			}
		}
	}
}

func (r *Rasterizer) image(p op.Image) {
	if r.Images == nil {
		return
	}
	img, err := r.Images.Image(p.ID)
	if err != nil {
		if r.err == nil {
			r.err = fmt.Errorf("raster: %w", err)
		}
		return
	}
	src := img.Bounds()
	if !p.Src.Empty() {
		src = roundOut(p.Src.Add(f32.Pt(float32(src.Min.X), float32(src.Min.Y)))).Intersect(src)
	}
	dst := roundOut(transformBounds(r.state.t, p.Dst))
	if src.Empty() || dst.Intersect(r.state.clip).Empty() {
		return
	}
	scaled := image.NewRGBA(dst)
	draw.ApproxBiLinear.Scale(scaled, dst, img, src, draw.Src, nil)
	r.paint(dst, scaled, nil)
}

// composite applies the effect of the layer s and draws it over dst.
func composite(s drawState, dst *image.RGBA) {
	b := s.clip.Intersect(dst.Bounds())
	if b.Empty() {
		return
	}
	if f := s.effect.filter; f != nil {
		apply(s.target, b, *f)
		if f.Kind == op.FilterOpacity {
			s.effect.opacity = f.Amount
		}
	}
	a := clamp01(s.effect.opacity)
	if a == 0 {
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(a*0xff + .5)})
	draw.DrawMask(dst, b, s.target, b.Min, mask, image.Point{}, draw.Over)
}

// multiply scales the coverage of dst by m.
func multiply(dst, m *image.Alpha) {
	b := dst.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := dst.PixOffset(x, y)
			mv := m.AlphaAt(x, y).A
			dst.Pix[i] = uint8(uint16(dst.Pix[i]) * uint16(mv) / 0xff)
		}
	}
}

func transformBounds(t f32.Affine2D, r f32.Rectangle) f32.Rectangle {
	b0 := f32.Rectangle{
		Min: t.Transform(r.Min),
		Max: t.Transform(r.Max),
	}.Canon()
	b1 := f32.Rectangle{
		Min: t.Transform(f32.Pt(r.Max.X, r.Min.Y)),
		Max: t.Transform(f32.Pt(r.Min.X, r.Max.Y)),
	}.Canon()
	return b0.Union(b1)
}

func roundOut(r f32.Rectangle) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Min.X))),
		int(math.Floor(float64(r.Min.Y))),
		int(math.Ceil(float64(r.Max.X))),
		int(math.Ceil(float64(r.Max.Y))),
	)
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
