// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/gesture"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/clip"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/unit"
)

var (
	sliderHeight = unit.Dp(24)
	sliderTrack  = unit.Dp(4)
)

// Slider selects a value in the range [Min, Max] by dragging.
type Slider struct {
	Base
	Value    state.State[float32]
	Min, Max float32

	drag  gesture.Drag
	track float32
}

// NewSlider returns a slider writing to v.
func NewSlider(v state.State[float32], min, max float32) *Slider {
	s := &Slider{Value: v, Min: min, Max: max}
	s.SetFlags(layout.UseMaxCrossAxis)
	return s
}

func (s *Slider) Sync(e *env.Env) {
	s.Value.Sync(e)
}

func (s *Slider) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	s.track = gtx.Metric.Px(sliderTrack)
	s.SetDimension(f32.Pt(requested.X, gtx.Metric.Px(sliderHeight)))
	return s.Dimension()
}

// Pos returns the normalized position of the value, in [0, 1].
func (s *Slider) Pos() float32 {
	lo, hi := s.Min, s.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == lo {
		return 0
	}
	return clamp01((s.Value.Value() - lo) / (hi - lo))
}

func (s *Slider) HandlePointer(e pointer.Event, ctx *pointer.Context) {
	hit := ctx.Local(e.Position).In(s.Bounds())
	de, ok := s.drag.Update(e, hit, !ctx.Consumed && env.Get(ctx.Env, Enabled))
	if !ok {
		return
	}
	ctx.Consume()
	if de.Kind != pointer.Press && de.Kind != pointer.Drag {
		return
	}
	b := s.Bounds()
	if b.Dx() == 0 {
		return
	}
	pos := clamp01((ctx.Local(de.Position).X - b.Min.X) / b.Dx())
	s.setValue(s.Min + (s.Max-s.Min)*pos)
}

func (s *Slider) setValue(value float32) {
	lo, hi := s.Min, s.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	value = max(lo, min(hi, value))
	if s.Value.Value() != value {
		s.Value.SetValue(value)
	}
}

func (s *Slider) Render(ctx *op.Context) {
	b := s.Bounds()
	mid := b.Min.Y + b.Dy()/2
	track := f32.Rect(b.Min.X, mid-s.track/2, b.Max.X, mid+s.track/2)
	ctx.Fill(paint.Color(trackColor), clip.Rect(track).Triangles())
	x := b.Min.X + s.Pos()*b.Dx()
	r := b.Dy() / 2
	thumb := f32.Rect(x-r, mid-r, x+r, mid+r)
	ctx.Fill(paint.Color(env.Get(ctx.Env, AccentColor)), clip.Ellipse(thumb).Triangles())
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
