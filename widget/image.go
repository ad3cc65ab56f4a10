// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"image/color"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/internal/logger"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/clip"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/unit"
)

// placeholderSize is the size of the placeholder drawn for images that
// failed to load.
var placeholderSize = unit.Dp(24)

var placeholderColor = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}

// Image displays an image of the image service.
type Image struct {
	Base
	Src paint.ImageID
	// Fit specifies how to scale the image to the requested size.
	Fit Fit
	// Alignment specifies where to place the image within the widget.
	Alignment layout.Direction
	// Description is the accessible description of the image.
	Description string

	// LoadFailed is set when the last layout could not load Src.
	LoadFailed bool
	err        error
	dst        f32.Rectangle
}

// NewImage returns a widget displaying id scaled to fit.
func NewImage(id paint.ImageID) *Image {
	return &Image{Src: id, Fit: Contain, Alignment: layout.Center}
}

// Err returns the load error of the last layout pass.
func (im *Image) Err() error {
	return im.err
}

func (im *Image) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	var err error
	if gtx.Images == nil {
		err = paint.ErrUnknownImage
	}
	var natural f32.Point
	if err == nil {
		var sz image.Point
		sz, err = gtx.Images.ImageSize(im.Src)
		natural = f32.Pt(float32(sz.X), float32(sz.Y))
	}
	if err != nil {
		if !im.LoadFailed {
			logger.Get().Warn("widget: image load failed", "id", im.Src, "err", err)
		}
		im.LoadFailed, im.err = true, err
		ph := gtx.Metric.Px(placeholderSize)
		im.SetDimension(constrain(f32.Pt(ph, ph), requested))
		return im.Dimension()
	}
	im.LoadFailed, im.err = false, nil
	size, dst := im.Fit.scale(requested, natural, im.Alignment)
	im.dst = dst
	im.SetDimension(size)
	return im.Dimension()
}

func (im *Image) Render(ctx *op.Context) {
	b := im.Bounds()
	if im.LoadFailed {
		ctx.Fill(paint.Color(placeholderColor), clip.Rect(b).Triangles())
		return
	}
	defer ctx.PushClip(b).Pop()
	ctx.Image(im.Src, im.dst.Add(b.Min), f32.Rectangle{})
}

func (im *Image) HandleSemantic(e event.Event, ctx *semantic.Context) {
	if _, ok := e.(semantic.RebuildEvent); !ok {
		return
	}
	ctx.Describe(im.ID(), semantic.Desc{
		Class:       semantic.Image,
		Description: im.Description,
		Bounds:      im.Bounds(),
	})
}
