// SPDX-License-Identifier: Unlicense OR MIT

package raster

import (
	"image"

	"github.com/loomkit/loom/op"
)

// apply runs filter f over the premultiplied pixels of img within b.
// Opacity is applied by the caller while compositing.
func apply(img *image.RGBA, b image.Rectangle, f op.Filter) {
	switch f.Kind {
	case op.FilterInvert:
		amt := clamp01(f.Amount)
		eachPixel(img, b, func(px []uint8) {
			a := float32(px[3])
			for i := 0; i < 3; i++ {
				c := float32(px[i])
				px[i] = uint8(c + (a-c-c)*amt + .5)
			}
		})
	case op.FilterSaturate:
		s := f.Amount
		if s < 0 {
			s = 0
		}
		eachPixel(img, b, func(px []uint8) {
			a := float32(px[3])
			lum := .2126*float32(px[0]) + .7152*float32(px[1]) + .0722*float32(px[2])
			for i := 0; i < 3; i++ {
				c := lum + (float32(px[i])-lum)*s
				switch {
				case c < 0:
					c = 0
				case c > a:
					c = a
				}
				px[i] = uint8(c + .5)
			}
		})
	case op.FilterBlur:
		if r := int(f.Amount + .5); r > 0 {
			blur(img, b, r)
		}
	}
}

func eachPixel(img *image.RGBA, b image.Rectangle, f func(px []uint8)) {
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			f(img.Pix[i : i+4 : i+4])
		}
	}
}

// blur runs a horizontal and a vertical box blur of radius r within b.
func blur(img *image.RGBA, b image.Rectangle, r int) {
	n := max(b.Dx(), b.Dy())
	line := make([][4]uint32, n)
	pass := func(count, length int, offset func(i, j int) int) {
		for i := 0; i < count; i++ {
			for j := 0; j < length; j++ {
				o := offset(i, j)
				line[j] = [4]uint32{uint32(img.Pix[o]), uint32(img.Pix[o+1]), uint32(img.Pix[o+2]), uint32(img.Pix[o+3])}
			}
			for j := 0; j < length; j++ {
				lo, hi := max(j-r, 0), min(j+r, length-1)
				var sum [4]uint32
				for k := lo; k <= hi; k++ {
					for c := range sum {
						sum[c] += line[k][c]
					}
				}
				cnt := uint32(hi - lo + 1)
				o := offset(i, j)
				for c := range sum {
					img.Pix[o+c] = uint8(sum[c] / cnt)
				}
			}
		}
	}
	pass(b.Dy(), b.Dx(), func(i, j int) int { return img.PixOffset(b.Min.X+j, b.Min.Y+i) })
	pass(b.Dx(), b.Dy(), func(i, j int) int { return img.PixOffset(b.Min.X+i, b.Min.Y+j) })
}
