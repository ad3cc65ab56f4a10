// SPDX-License-Identifier: Unlicense OR MIT

package material

import (
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/text"
	"github.com/loomkit/loom/unit"
	"github.com/loomkit/loom/widget"
)

func H1(th *Theme, txt string) *widget.Text {
	l := Label(th, th.TextSize.Scale(96.0/16.0), txt)
	f := th.Font
	f.Weight = text.Light
	l.Font = &f
	return l
}

func H2(th *Theme, txt string) *widget.Text {
	return Label(th, th.TextSize.Scale(60.0/16.0), txt)
}

func H3(th *Theme, txt string) *widget.Text {
	return Label(th, th.TextSize.Scale(48.0/16.0), txt)
}

func H4(th *Theme, txt string) *widget.Text {
	return Label(th, th.TextSize.Scale(34.0/16.0), txt)
}

func H5(th *Theme, txt string) *widget.Text {
	return Label(th, th.TextSize.Scale(24.0/16.0), txt)
}

func H6(th *Theme, txt string) *widget.Text {
	l := Label(th, th.TextSize.Scale(20.0/16.0), txt)
	f := th.Font
	f.Weight = text.Medium
	l.Font = &f
	return l
}

func Body1(th *Theme, txt string) *widget.Text {
	return Label(th, th.TextSize, txt)
}

func Body2(th *Theme, txt string) *widget.Text {
	return Label(th, th.TextSize.Scale(14.0/16.0), txt)
}

func Caption(th *Theme, txt string) *widget.Text {
	return Label(th, th.TextSize.Scale(12.0/16.0), txt)
}

// Label returns a text of the given size in the theme's foreground
// color.
func Label(th *Theme, size unit.Value, txt string) *widget.Text {
	return BoundLabel(th, size, state.Of(txt))
}

// BoundLabel is like Label but displays the value of s.
func BoundLabel(th *Theme, size unit.Value, s state.ReadState[string]) *widget.Text {
	l := widget.NewText(s)
	fg := th.Fg
	l.Color = &fg
	l.Size = size
	return l
}
