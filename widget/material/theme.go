// SPDX-License-Identifier: Unlicense OR MIT

package material

import (
	"image/color"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/text"
	"github.com/loomkit/loom/unit"
	"github.com/loomkit/loom/widget"
)

type Theme struct {
	Palette
	TextSize unit.Value
	Font     text.Font
}

// Palette contains the minimal set of colors that a widget may need
// to draw itself.
type Palette struct {
	// Bg is the background color atop which content is currently being
	// drawn.
	Bg color.NRGBA
	// Fg is a color suitable for drawing on top of Bg.
	Fg color.NRGBA
	// ContrastBg is a color used to draw attention to active,
	// important, interactive widgets such as buttons.
	ContrastBg color.NRGBA
	// ContrastFg is a color suitable for content drawn on top of
	// ContrastBg.
	ContrastFg color.NRGBA
}

func NewTheme() *Theme {
	return &Theme{
		Palette: Palette{
			Fg:         rgb(0x000000),
			Bg:         rgb(0xffffff),
			ContrastBg: rgb(0x3f51b5),
			ContrastFg: rgb(0xffffff),
		},
		TextSize: unit.Sp(16),
	}
}

// Apply makes the theme the environment of content.
func (th *Theme) Apply(content widget.Widget) widget.Widget {
	return &widget.EnvUpdater{
		Update: func(e *env.Env) func() {
			stacks := []env.Stack{
				env.Push(e, widget.ForegroundColor, th.Fg),
				env.Push(e, widget.BackgroundColor, th.Bg),
				env.Push(e, widget.AccentColor, th.ContrastBg),
				env.Push(e, widget.TextSize, th.TextSize),
				env.Push(e, widget.TextFont, th.Font),
			}
			return func() {
				for i := len(stacks) - 1; i >= 0; i-- {
					stacks[i].Pop()
				}
			}
		},
		Content: content,
	}
}

func rgb(c uint32) color.NRGBA {
	return argb(0xff000000 | c)
}

func argb(c uint32) color.NRGBA {
	return color.NRGBA{A: uint8(c >> 24), R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c)}
}
