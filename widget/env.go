// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image/color"
	"iter"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/text"
	"github.com/loomkit/loom/unit"
)

// Environment keys read by the widgets of this package.
var (
	ForegroundColor = env.NewKey("ForegroundColor", color.NRGBA{A: 0xff})
	BackgroundColor = env.NewKey("BackgroundColor", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	AccentColor     = env.NewKey("AccentColor", color.NRGBA{R: 0x3f, G: 0x51, B: 0xb5, A: 0xff})
	TextSize        = env.NewKey("TextSize", unit.Sp(16))
	TextFont        = env.NewKey("TextFont", text.Font{})
	// Enabled is false below a Disabled widget.
	Enabled = env.NewKey("Enabled", true)
	// CurrentWindow is the identity of the enclosing Window widget.
	// Zero outside any window.
	CurrentWindow = env.NewKey[event.WindowID]("CurrentWindow", 0)
)

// Targeted reports whether an event with context c is meant for the
// window enclosing the visited widget. Events without a target window
// and widgets outside a window match everything.
func Targeted(c *event.Context) bool {
	cur := env.Get(c.Env, CurrentWindow)
	return c.Window == 0 || cur == 0 || c.Window == cur
}

// EnvUpdater changes the environment of its content.
type EnvUpdater struct {
	Base
	// Update applies the change and returns the function undoing it.
	Update  func(e *env.Env) (restore func())
	Content Widget
}

// WithEnv returns a widget setting k to v for content.
func WithEnv[T any](k *env.Key[T], v T, content Widget) *EnvUpdater {
	return &EnvUpdater{
		Update: func(e *env.Env) func() {
			return env.Push(e, k, v).Pop
		},
		Content: content,
	}
}

func (u *EnvUpdater) ScopeEnv(e *env.Env) func() {
	if u.Update == nil {
		return func() {}
	}
	return u.Update(e)
}

func (u *EnvUpdater) Children() iter.Seq[Widget] {
	return Of(u.Content)
}

func (u *EnvUpdater) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	defer u.ScopeEnv(gtx.Env)()
	return single(&u.Base, u.Content, gtx, requested)
}

func (u *EnvUpdater) PositionChildren() {
	place(u.Content, u.Position())
}
