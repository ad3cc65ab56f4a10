// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image/color"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/gesture"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/clip"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/unit"
)

var (
	toggleWidth  = unit.Dp(40)
	toggleHeight = unit.Dp(24)
	trackColor   = color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
)

// Toggle is a switch bound to a boolean state.
type Toggle struct {
	Base
	Value state.State[bool]

	clk gesture.Click
}

// NewToggle returns a switch writing to v.
func NewToggle(v state.State[bool]) *Toggle {
	return &Toggle{Value: v}
}

func (t *Toggle) Sync(e *env.Env) {
	t.Value.Sync(e)
}

func (t *Toggle) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	t.SetDimension(f32.Pt(gtx.Metric.Px(toggleWidth), gtx.Metric.Px(toggleHeight)))
	return t.Dimension()
}

func (t *Toggle) HandlePointer(e pointer.Event, ctx *pointer.Context) {
	hit := ctx.Local(e.Position).In(t.Bounds())
	ce, ok := t.clk.Update(e, hit, !ctx.Consumed && env.Get(ctx.Env, Enabled))
	if !ok {
		return
	}
	ctx.Consume()
	if ce.Type == gesture.TypeClick {
		t.flip()
	}
}

func (t *Toggle) flip() {
	t.Value.Update(func(v *bool) { *v = !*v })
}

func (t *Toggle) HandleSemantic(e event.Event, ctx *semantic.Context) {
	switch e := e.(type) {
	case semantic.RebuildEvent:
		ctx.Describe(t.ID(), semantic.Desc{
			Class:    semantic.CheckBox,
			Selected: t.Value.Value(),
			Disabled: !env.Get(ctx.Env, Enabled),
			Gestures: semantic.ClickGesture,
			Bounds:   t.Bounds(),
		})
	case semantic.ActionEvent:
		if e.Target == t.ID() && e.Action == semantic.ActionClick && !ctx.Handled && env.Get(ctx.Env, Enabled) {
			ctx.Handled = true
			t.flip()
		}
	}
}

func (t *Toggle) Render(ctx *op.Context) {
	b := t.Bounds()
	r := b.Dy() / 2
	track := trackColor
	if t.Value.Value() {
		track = env.Get(ctx.Env, AccentColor)
	}
	ctx.Fill(paint.Color(track), clip.UniformRRect(b, r).Triangles())
	thumb := f32.Rectangle{Min: b.Min, Max: b.Min.Add(f32.Pt(b.Dy(), b.Dy()))}
	if t.Value.Value() {
		thumb = thumb.Add(f32.Pt(b.Dx()-b.Dy(), 0))
	}
	inset := b.Dy() / 8
	thumb.Min = thumb.Min.Add(f32.Pt(inset, inset))
	thumb.Max = thumb.Max.Sub(f32.Pt(inset, inset))
	ctx.Fill(paint.Color(env.Get(ctx.Env, BackgroundColor)), clip.Ellipse(thumb).Triangles())
}
