// SPDX-License-Identifier: Unlicense OR MIT

package op

import (
	"fmt"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/op/paint"
)

// Kind identifies a primitive type.
type Kind uint8

const (
	KindPushStyle Kind = iota
	KindPushTransform
	KindPushClip
	KindPushStencil
	KindPushLayer
	KindPushFilter
	KindPop
	KindGeometry
	KindText
	KindImage
)

// Primitive is a backend independent draw instruction.
type Primitive interface {
	Kind() Kind
}

// TextRun identifies shaped text. Backends resolve glyphs through
// their text service; ID stays valid until the text or its style
// changes.
type TextRun interface {
	RunID() uint64
	Size() f32.Point
}

// FilterKind selects a filter.
type FilterKind uint8

const (
	FilterBlur FilterKind = iota
	FilterSaturate
	FilterInvert
	FilterOpacity
)

// Filter is an image filter applied to a subtree.
type Filter struct {
	Kind   FilterKind
	Amount float32
}

type (
	PushStyle struct {
		Style paint.Style
	}
	PushTransform struct {
		Transform f32.Affine2D
	}
	PushClip struct {
		Rect f32.Rectangle
	}
	PushStencil struct {
		Triangles []f32.Triangle
	}
	PushLayer struct {
		Opacity float32
	}
	PushFilter struct {
		Filter Filter
	}
	// Pop ends the innermost push, which is of kind Of.
	Pop struct {
		Of Kind
	}
	Geometry struct {
		Triangles []f32.Triangle
	}
	Text struct {
		Run    TextRun
		Origin f32.Point
	}
	Image struct {
		ID  paint.ImageID
		Dst f32.Rectangle
		Src f32.Rectangle
	}
)

func (PushStyle) Kind() Kind     { return KindPushStyle }
func (PushTransform) Kind() Kind { return KindPushTransform }
func (PushClip) Kind() Kind      { return KindPushClip }
func (PushStencil) Kind() Kind   { return KindPushStencil }
func (PushLayer) Kind() Kind     { return KindPushLayer }
func (PushFilter) Kind() Kind    { return KindPushFilter }
func (Pop) Kind() Kind           { return KindPop }
func (Geometry) Kind() Kind      { return KindGeometry }
func (Text) Kind() Kind          { return KindText }
func (Image) Kind() Kind         { return KindImage }

func (k Kind) String() string {
	switch k {
	case KindPushStyle:
		return "PushStyle"
	case KindPushTransform:
		return "PushTransform"
	case KindPushClip:
		return "PushClip"
	case KindPushStencil:
		return "PushStencil"
	case KindPushLayer:
		return "PushLayer"
	case KindPushFilter:
		return "PushFilter"
	case KindPop:
		return "Pop"
	case KindGeometry:
		return "Geometry"
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Describe returns a one line description of p, for debugging.
func Describe(p Primitive) string {
	switch p := p.(type) {
	case PushStyle:
		return fmt.Sprintf("PushStyle %v", p.Style)
	case PushTransform:
		return fmt.Sprintf("PushTransform %v", p.Transform)
	case PushClip:
		return fmt.Sprintf("PushClip %v", p.Rect)
	case PushStencil:
		return fmt.Sprintf("PushStencil %d triangles", len(p.Triangles))
	case PushLayer:
		return fmt.Sprintf("PushLayer opacity=%g", p.Opacity)
	case PushFilter:
		return fmt.Sprintf("PushFilter %d %g", p.Filter.Kind, p.Filter.Amount)
	case Pop:
		return fmt.Sprintf("Pop %v", p.Of)
	case Geometry:
		return fmt.Sprintf("Geometry %d triangles", len(p.Triangles))
	case Text:
		var id uint64
		if p.Run != nil {
			id = p.Run.RunID()
		}
		return fmt.Sprintf("Text run=%d at %v", id, p.Origin)
	case Image:
		return fmt.Sprintf("Image id=%d dst=%v", p.ID, p.Dst)
	default:
		return p.Kind().String()
	}
}
