// SPDX-License-Identifier: Unlicense OR MIT

package material

import (
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/text"
	"github.com/loomkit/loom/unit"
	"github.com/loomkit/loom/widget"
)

// ButtonStyle is a contained text button.
type ButtonStyle struct {
	*widget.MouseArea
	Background *widget.Background
	Label      *widget.Text
}

// Button returns a contained button calling onClick.
func Button(th *Theme, txt string, onClick func(widget.Click)) *ButtonStyle {
	lbl := widget.Label(txt)
	fg := th.ContrastFg
	lbl.Color = &fg
	lbl.Size = th.TextSize.Scale(14.0 / 16.0)
	lbl.Alignment = text.Middle

	bg := paint.Color(th.ContrastBg)
	back := &widget.Background{
		Fill:         &bg,
		CornerRadius: unit.Dp(4),
		Content: &widget.Padding{
			Inset: layout.Inset{
				Top: unit.Dp(10), Bottom: unit.Dp(10),
				Left: unit.Dp(12), Right: unit.Dp(12),
			},
			Content: lbl,
		},
	}
	area := widget.Clickable(back, onClick)
	area.Description = txt
	return &ButtonStyle{MouseArea: area, Background: back, Label: lbl}
}
