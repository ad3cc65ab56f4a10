// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image/color"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/internal/logger"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/text"
	"github.com/loomkit/loom/unit"
)

// Text displays a string bound to a state. Zero valued style fields
// are taken from the environment.
type Text struct {
	Base
	Text      state.ReadState[string]
	Color     *color.NRGBA
	Size      unit.Value
	Font      *text.Font
	Alignment text.Alignment
	Wrap      text.WrapPolicy
	// MaxLines limits the number of lines; zero means no limit.
	MaxLines int

	layout *text.Layout
	err    error
}

// Label returns a widget displaying a constant string.
func Label(s string) *Text {
	return &Text{Text: state.Of(s)}
}

// NewText returns a widget displaying the value of s.
func NewText(s state.ReadState[string]) *Text {
	return &Text{Text: s}
}

func (t *Text) Sync(e *env.Env) {
	t.Text.Sync(e)
}

// Layout returns the shaped text of the last layout pass.
func (t *Text) Layout() *text.Layout {
	return t.layout
}

// Err returns the shaping error of the last layout pass, if any.
func (t *Text) Err() error {
	return t.err
}

func (t *Text) params(gtx *layout.Context, requested f32.Point) text.Parameters {
	size := t.Size
	if size.V == 0 {
		size = env.Get(gtx.Env, TextSize)
	}
	fnt := env.Get(gtx.Env, TextFont)
	if t.Font != nil {
		fnt = *t.Font
	}
	return text.Parameters{
		Font:      fnt,
		Size:      gtx.Metric.Px(size),
		MaxWidth:  requested.X,
		Wrap:      t.Wrap,
		Alignment: t.Alignment,
		MaxLines:  t.MaxLines,
	}
}

func (t *Text) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	t.layout, t.err = nil, nil
	if gtx.Text == nil {
		t.SetDimension(f32.Point{})
		return f32.Point{}
	}
	l, err := gtx.Text.Layout(t.Text.Value(), t.params(gtx, requested))
	if err != nil {
		logger.Get().Warn("widget: shaping text failed", "err", err)
		t.err = err
		t.SetDimension(f32.Point{})
		return f32.Point{}
	}
	t.layout = l
	t.SetDimension(l.Size())
	return t.Dimension()
}

func (t *Text) Render(ctx *op.Context) {
	if t.layout == nil {
		return
	}
	c := env.Get(ctx.Env, ForegroundColor)
	if t.Color != nil {
		c = *t.Color
	}
	defer ctx.PushStyle(paint.Color(c)).Pop()
	ctx.Text(t.layout, t.Position())
}

func (t *Text) HandleSemantic(e event.Event, ctx *semantic.Context) {
	if _, ok := e.(semantic.RebuildEvent); !ok {
		return
	}
	ctx.Describe(t.ID(), semantic.Desc{
		Class:  semantic.Label,
		Label:  t.Text.Value(),
		Bounds: t.Bounds(),
	})
}
