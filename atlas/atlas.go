// SPDX-License-Identifier: Unlicense OR MIT

// Package atlas packs images and glyph masks into a single texture
// using shelves.
//
// A shelf is a horizontal strip of fixed height. Items are packed into
// a shelf left to right, and a shelf only accepts items whose height h
// satisfies shelf.Height/2 < h <= shelf.Height. Items that fit no
// existing shelf open a new shelf directly below the last one. Packing
// is append-only: nothing is ever evicted or moved.
package atlas

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/exp/slices"
	"golang.org/x/image/draw"
)

var (
	// ErrFull is returned when items did not fit below MaxHeight.
	ErrFull = errors.New("atlas: no space left in atlas texture")
	// ErrTooLarge is returned for items wider than the atlas or taller
	// than its maximum height.
	ErrTooLarge = errors.New("atlas: item larger than atlas")
)

// Key identifies a packed item. Images use the Image field, glyphs
// the Face, Glyph and PPEM fields.
type Key struct {
	Image uint64
	Face  uint64
	Glyph uint32
	PPEM  uint32
}

// ImageKey returns the key of a paint image.
func ImageKey(id uint64) Key {
	return Key{Image: id}
}

// GlyphKey returns the key of glyph g in face at size ppem, in 26.6
// fixed point.
func GlyphKey(face uint64, g uint32, ppem int32) Key {
	return Key{Face: face, Glyph: g, PPEM: uint32(ppem)}
}

func (k Key) String() string {
	if k.Image != 0 {
		return fmt.Sprintf("image(%d)", k.Image)
	}
	return fmt.Sprintf("glyph(%d,%d,%d)", k.Face, k.Glyph, k.PPEM)
}

// Book is an item placed in the atlas.
type Book struct {
	Key    Key
	Offset image.Point
	Size   image.Point
}

// Bounds returns the pixel rectangle of b in the atlas image.
func (b Book) Bounds() image.Rectangle {
	return image.Rectangle{Min: b.Offset, Max: b.Offset.Add(b.Size)}
}

// Shelf is a horizontal strip of the atlas.
type Shelf struct {
	Y, Height int
	// Used is the width taken by the books of the shelf.
	Used  int
	Books []Key
}

func (s *Shelf) accepts(sz image.Point, width int) bool {
	return sz.Y <= s.Height && sz.Y*2 > s.Height && width-s.Used >= sz.X
}

// Error lists the keys that could not be placed.
type Error struct {
	Err  error
	Keys []Key
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Err, e.Keys)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type queued struct {
	key Key
	img image.Image
}

// Atlas is a shelf packed texture. Its height doubles on demand up to
// MaxHeight. The zero value is not usable; use New.
type Atlas struct {
	width, maxHeight int
	img              *image.NRGBA
	shelves          []Shelf
	books            map[Key]Book
	queue            []queued
	queuedKeys       map[Key]bool
	gen              uint64
}

// New returns an empty atlas of the given size that may grow to
// maxHeight. A maxHeight smaller than height disables growth.
func New(width, height, maxHeight int) *Atlas {
	if maxHeight < height {
		maxHeight = height
	}
	return &Atlas{
		width:      width,
		maxHeight:  maxHeight,
		img:        image.NewNRGBA(image.Rect(0, 0, width, height)),
		books:      make(map[Key]Book),
		queuedKeys: make(map[Key]bool),
		gen:        1,
	}
}

// Queue schedules img for placement at the next ProcessQueued. Items
// already placed or queued are ignored.
func (a *Atlas) Queue(k Key, img image.Image) {
	if _, ok := a.books[k]; ok || a.queuedKeys[k] {
		return
	}
	a.queuedKeys[k] = true
	a.queue = append(a.queue, queued{key: k, img: img})
}

// Queued returns the number of items waiting for placement.
func (a *Atlas) Queued() int {
	return len(a.queue)
}

// ProcessQueued places every queued item and copies its pixels into
// the atlas image. It returns the keys placed. Items that cannot be
// placed are dropped from the queue and reported by an *Error whose
// Err is ErrFull or ErrTooLarge; when both happen the errors are
// joined.
func (a *Atlas) ProcessQueued() ([]Key, error) {
	q := a.queue
	a.queue = nil
	clear(a.queuedKeys)
	slices.SortStableFunc(q, func(x, y queued) int {
		return y.img.Bounds().Dy() - x.img.Bounds().Dy()
	})
	var placed, full, tooLarge []Key
	for _, it := range q {
		sz := it.img.Bounds().Size()
		if sz.X > a.width || sz.Y > a.maxHeight {
			tooLarge = append(tooLarge, it.key)
			continue
		}
		b, ok := a.place(it.key, sz)
		if !ok {
			full = append(full, it.key)
			continue
		}
		draw.Draw(a.img, b.Bounds(), it.img, it.img.Bounds().Min, draw.Src)
		a.books[it.key] = b
		placed = append(placed, it.key)
	}
	var errs []error
	if len(full) > 0 {
		errs = append(errs, &Error{Err: ErrFull, Keys: full})
	}
	if len(tooLarge) > 0 {
		errs = append(errs, &Error{Err: ErrTooLarge, Keys: tooLarge})
	}
	return placed, errors.Join(errs...)
}

func (a *Atlas) place(k Key, sz image.Point) (Book, bool) {
	for i := range a.shelves {
		s := &a.shelves[i]
		if s.accepts(sz, a.width) {
			return a.append(s, k, sz), true
		}
	}
	y := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		y = last.Y + last.Height
	}
	if y+sz.Y > a.img.Bounds().Dy() && !a.grow(y+sz.Y) {
		return Book{}, false
	}
	a.shelves = append(a.shelves, Shelf{Y: y, Height: sz.Y})
	return a.append(&a.shelves[len(a.shelves)-1], k, sz), true
}

func (a *Atlas) append(s *Shelf, k Key, sz image.Point) Book {
	b := Book{Key: k, Offset: image.Pt(s.Used, s.Y), Size: sz}
	s.Used += sz.X
	s.Books = append(s.Books, k)
	return b
}

// grow doubles the atlas height until it is at least h.
func (a *Atlas) grow(h int) bool {
	if h > a.maxHeight {
		return false
	}
	nh := a.img.Bounds().Dy()
	if nh == 0 {
		nh = 1
	}
	for nh < h {
		nh *= 2
	}
	nh = min(nh, a.maxHeight)
	img := image.NewNRGBA(image.Rect(0, 0, a.width, nh))
	draw.Draw(img, a.img.Bounds(), a.img, image.Point{}, draw.Src)
	a.img = img
	a.gen++
	return true
}

// Lookup returns the placement of k.
func (a *Atlas) Lookup(k Key) (Book, bool) {
	b, ok := a.books[k]
	return b, ok
}

// Len returns the number of placed items.
func (a *Atlas) Len() int {
	return len(a.books)
}

// Image returns the atlas pixels. The image is replaced when the
// atlas grows.
func (a *Atlas) Image() *image.NRGBA {
	return a.img
}

// Size returns the current atlas size.
func (a *Atlas) Size() image.Point {
	return a.img.Bounds().Size()
}

// Generation changes every time the atlas image is reallocated.
// Backends compare it to decide whether to recreate their texture.
func (a *Atlas) Generation() uint64 {
	return a.gen
}

// Shelves returns the shelves in top to bottom order. The slice must
// not be modified.
func (a *Atlas) Shelves() []Shelf {
	return a.shelves
}
