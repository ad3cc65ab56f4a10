// SPDX-License-Identifier: Unlicense OR MIT

package material

import (
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/unit"
	"github.com/loomkit/loom/widget"
)

// Switch returns a toggle bound to v, followed by a label.
func Switch(th *Theme, v state.State[bool], label string) widget.Widget {
	t := widget.NewToggle(v)
	if label == "" {
		return t
	}
	return widget.HStack(unit.Dp(8), t, Body1(th, label))
}

// Slider returns a slider bound to v in the theme's accent color.
func Slider(th *Theme, v state.State[float32], min, max float32) widget.Widget {
	return widget.WithEnv(widget.AccentColor, th.ContrastBg, widget.NewSlider(v, min, max))
}
