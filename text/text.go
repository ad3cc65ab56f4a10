// SPDX-License-Identifier: Unlicense OR MIT

/*
Package text lays out and rasterizes text.

A Shaper breaks text into lines, splits lines into runs of uniform
direction and script and positions glyphs using the fonts of a
Collection. A Rasterizer renders the glyphs of a Layout into a texture
atlas for backends.
*/
package text

import (
	"errors"
	"fmt"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/math/fixed"

	"github.com/loomkit/loom/f32"
)

// ErrNoFont is returned when a collection holds no font.
var ErrNoFont = errors.New("text: no font available")

// Style is the font style.
type Style int

// Weight is a font weight, in CSS units subtracted 400 so the zero value
// is normal text weight.
type Weight int

// Typeface identifies a particular typeface design. The empty
// string denotes the default typeface.
type Typeface string

// Font specify a particular typeface, style and weight.
type Font struct {
	Typeface Typeface
	Style    Style
	// Weight is the text weight. If zero, Normal is used instead.
	Weight Weight
}

const (
	Regular Style = iota
	Italic
)

const (
	Light  Weight = -100
	Normal Weight = 0
	Medium Weight = 100
	Bold   Weight = 300
)

func (s Style) String() string {
	switch s {
	case Regular:
		return "Regular"
	case Italic:
		return "Italic"
	default:
		panic("invalid Style")
	}
}

func (f Font) String() string {
	return fmt.Sprintf("%s %s %d", f.Typeface, f.Style, f.Weight+400)
}

// Alignment is the horizontal alignment of lines.
type Alignment uint8

const (
	Start Alignment = iota
	End
	Middle
)

func (a Alignment) String() string {
	switch a {
	case Start:
		return "Start"
	case End:
		return "End"
	case Middle:
		return "Middle"
	default:
		panic("invalid Alignment")
	}
}

// WrapPolicy chooses where lines may break.
type WrapPolicy uint8

const (
	// WrapHeuristically breaks between words and falls back to
	// breaking between graphemes for words wider than a line.
	WrapHeuristically WrapPolicy = iota
	// WrapWords only breaks between words. Words wider than a line
	// overflow.
	WrapWords
	// WrapGraphemes breaks between any two grapheme clusters.
	WrapGraphemes
)

// Direction is the direction of a run of text.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "RTL"
	}
	return "LTR"
}

// Parameters are the style and constraints of a layout.
type Parameters struct {
	Font Font
	// Size is the font size in pixels.
	Size float32
	// MaxWidth is the wrapping width in pixels. Zero disables
	// wrapping.
	MaxWidth  float32
	Wrap      WrapPolicy
	Alignment Alignment
	// MaxLines limits the number of lines. Zero means no limit.
	MaxLines int
	// LineHeightScale multiplies the font line height. Zero means 1.
	LineHeightScale float32
	// Direction is the base direction of paragraphs.
	Direction Direction
}

// GlyphID is a glyph index within a font.
type GlyphID uint32

// Glyph is a positioned glyph.
type Glyph struct {
	ID GlyphID
	// Rune is the first rune of the cluster the glyph belongs to.
	Rune rune
	// X is the position of the glyph origin relative to the line.
	X float32
	// Y offsets the glyph from the baseline, positive downwards.
	Y       float32
	Advance float32
	// Cluster is the byte offset of the cluster in the layout text.
	Cluster int
}

// Run is a sequence of glyphs sharing direction and script. Glyphs are
// in visual order.
type Run struct {
	Direction Direction
	Script    language.Script
	Glyphs    []Glyph
}

// Line is a line of a Layout.
type Line struct {
	// Runs in visual order.
	Runs []Run
	// Start and End are byte offsets of the line in the layout text.
	Start, End int
	// X is the alignment offset of the line.
	X float32
	// Y is the baseline of the line.
	Y float32
	// Width excludes trailing white space.
	Width           float32
	Ascent, Descent float32
}

// Layout is shaped and measured text.
type Layout struct {
	// ID identifies the layout. It is stable for as long as the text
	// and parameters are unchanged.
	ID    uint64
	Text  string
	Lines []Line
	// Face identifies the font face of the glyphs.
	Face FaceID
	PPEM fixed.Int26_6
	// Truncated is the number of runes dropped by MaxLines.
	Truncated int

	size f32.Point
}

// RunID returns l.ID.
func (l *Layout) RunID() uint64 {
	return l.ID
}

// Size returns the bounding size of the layout.
func (l *Layout) Size() f32.Point {
	return l.size
}

// Baseline returns the distance from the top of the layout to the
// first baseline.
func (l *Layout) Baseline() float32 {
	if len(l.Lines) == 0 {
		return 0
	}
	return l.Lines[0].Y
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v*64 + .5)
}
