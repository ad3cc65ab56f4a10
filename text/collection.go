// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// FaceID identifies a font face of a Collection.
type FaceID uint64

type face struct {
	id    FaceID
	font  Font
	sfnt  *sfnt.Font
	buf   sfnt.Buffer
	sized map[fixed.Int26_6]font.Face
	// shaping is the face used by the HarfBuzz shaper. It is not
	// safe for concurrent use.
	shaping *gtfont.Face
}

// Collection is a set of fonts. The first font added is the fallback
// for fonts that match nothing. A Collection is safe for concurrent
// use.
type Collection struct {
	mu    sync.Mutex
	faces []*face
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return new(Collection)
}

var (
	goOnce sync.Once
	goColl *Collection
)

// GoFonts returns a collection of the Go fonts. The fallback typeface
// is "Go"; "Go Mono" is also available.
func GoFonts() *Collection {
	goOnce.Do(func() {
		c := NewCollection()
		fonts := []struct {
			font Font
			ttf  []byte
		}{
			{Font{Typeface: "Go"}, goregular.TTF},
			{Font{Typeface: "Go", Weight: Bold}, gobold.TTF},
			{Font{Typeface: "Go", Style: Italic}, goitalic.TTF},
			{Font{Typeface: "Go", Style: Italic, Weight: Bold}, gobolditalic.TTF},
			{Font{Typeface: "Go Mono"}, gomono.TTF},
		}
		for _, f := range fonts {
			if err := c.AddFont(f.font, f.ttf); err != nil {
				panic(fmt.Errorf("failed to parse font: %v", err))
			}
		}
		goColl = c
	})
	return goColl
}

// AddFont parses an OpenType or TrueType font and adds it under fnt.
// An empty fnt.Typeface is replaced by the family name of the font.
func (c *Collection) AddFont(fnt Font, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("text: parse font: %w", err)
	}
	gt, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("text: parse font for shaping: %w", err)
	}
	if fnt.Typeface == "" {
		var buf sfnt.Buffer
		name, err := f.Name(&buf, sfnt.NameIDFamily)
		if err != nil {
			return fmt.Errorf("text: font family name: %w", err)
		}
		fnt.Typeface = Typeface(name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faces = append(c.faces, &face{
		id:   FaceID(len(c.faces) + 1),
		font:    fnt,
		sfnt:    f,
		shaping: gtfont.NewFace(gt.Font),
	})
	return nil
}

// Fonts lists the fonts of the collection in the order added.
func (c *Collection) Fonts() []Font {
	c.mu.Lock()
	defer c.mu.Unlock()
	fonts := make([]Font, len(c.faces))
	for i, f := range c.faces {
		fonts[i] = f.font
	}
	return fonts
}

// Resolve returns the face chosen for fnt.
func (c *Collection) Resolve(fnt Font) (FaceID, Font, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, err := c.match(fnt)
	if err != nil {
		return 0, Font{}, err
	}
	return f.id, f.font, nil
}

// match returns the closest face to fnt. Faces of the requested
// typeface win over the fallback typeface; within a typeface style
// outweighs weight.
func (c *Collection) match(fnt Font) (*face, error) {
	if len(c.faces) == 0 {
		return nil, ErrNoFont
	}
	fallback := c.faces[0].font.Typeface
	tf := fnt.Typeface
	if !c.hasTypeface(tf) {
		tf = fallback
	}
	var best *face
	bestScore := -1
	for _, f := range c.faces {
		if f.font.Typeface != tf {
			continue
		}
		score := 0
		if f.font.Style != fnt.Style {
			score += 10000
		}
		d := int(f.font.Weight - fnt.Weight)
		if d < 0 {
			d = -d
		}
		score += d
		if best == nil || score < bestScore {
			best, bestScore = f, score
		}
	}
	return best, nil
}

func (c *Collection) hasTypeface(tf Typeface) bool {
	for _, f := range c.faces {
		if f.font.Typeface == tf {
			return true
		}
	}
	return false
}

func (c *Collection) byID(id FaceID) *face {
	if id == 0 || int(id) > len(c.faces) {
		return nil
	}
	return c.faces[id-1]
}

// sizedFace returns a face of f for ppem, creating it on first use.
// The collection lock must be held.
func (f *face) sizedFace(ppem fixed.Int26_6) (font.Face, error) {
	if sf, ok := f.sized[ppem]; ok {
		return sf, nil
	}
	sf, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    float64(ppem) / 64,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("text: %s at %v: %w", f.font, ppem, err)
	}
	if f.sized == nil {
		f.sized = make(map[fixed.Int26_6]font.Face)
	}
	f.sized[ppem] = sf
	return sf, nil
}

// rasterize renders the outline of glyph g at ppem into an alpha
// mask. The returned point is the offset of the mask from the glyph
// origin. A nil mask means the glyph has no pixels. The collection
// lock must be held.
func (f *face) rasterize(g GlyphID, ppem fixed.Int26_6) (*image.Alpha, image.Point, error) {
	segs, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(g), ppem, nil)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("text: %s: load glyph %d: %w", f.font, g, err)
	}
	b := segs.Bounds()
	dr := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if dr.Empty() {
		return nil, dr.Min, nil
	}
	ox, oy := float32(dr.Min.X), float32(dr.Min.Y)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return fixedToFloat(p.X) - ox, fixedToFloat(p.Y) - oy
	}
	r := vector.NewRasterizer(dr.Dx(), dr.Dy())
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		r.ClosePath()
	}
	mask := image.NewAlpha(image.Rectangle{Max: dr.Size()})
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, dr.Min, nil
}
