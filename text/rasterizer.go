// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"fmt"
	"image"

	"golang.org/x/exp/slices"

	"github.com/loomkit/loom/atlas"
)

// GlyphImage locates a rasterized glyph in an atlas.
type GlyphImage struct {
	Book atlas.Book
	// Bearing is the offset of the glyph image from the glyph
	// origin on the baseline.
	Bearing image.Point
	// Empty is set for glyphs without pixels, such as spaces.
	Empty bool
}

type pendingGlyph struct {
	key     atlas.Key
	bearing image.Point
}

// Rasterizer renders glyph masks into a texture atlas. A Rasterizer
// is not safe for concurrent use.
type Rasterizer struct {
	coll    *Collection
	atlas   *atlas.Atlas
	cache   glyphCache
	pending map[glyphKey]pendingGlyph
	// snap is the atlas image of the last Snapshot, shared by the
	// snapshots until new glyphs are packed.
	snap *image.NRGBA
}

// NewRasterizer returns a rasterizer for the fonts of c that packs
// glyphs into a.
func NewRasterizer(c *Collection, a *atlas.Atlas) *Rasterizer {
	return &Rasterizer{
		coll:    c,
		atlas:   a,
		pending: make(map[glyphKey]pendingGlyph),
	}
}

// Atlas returns the atlas glyphs are packed into.
func (r *Rasterizer) Atlas() *atlas.Atlas {
	return r.atlas
}

// AtlasImage returns the live atlas pixels.
func (r *Rasterizer) AtlasImage() *image.NRGBA {
	return r.atlas.Image()
}

// Prepare rasterizes the glyphs of l that are not yet in the atlas
// and packs them. Glyphs that did not fit are reported by the
// returned error and stay unavailable.
func (r *Rasterizer) Prepare(l *Layout) error {
	if err := r.queue(l); err != nil {
		return err
	}
	if len(r.pending) == 0 {
		return nil
	}
	placed, err := r.atlas.ProcessQueued()
	if len(placed) > 0 {
		r.snap = nil
	}
	for k, p := range r.pending {
		if b, ok := r.atlas.Lookup(p.key); ok {
			r.cache.Put(k, GlyphImage{Book: b, Bearing: p.bearing})
		}
	}
	clear(r.pending)
	if err != nil {
		return fmt.Errorf("text: pack glyphs: %w", err)
	}
	return nil
}

func (r *Rasterizer) queue(l *Layout) error {
	r.coll.mu.Lock()
	defer r.coll.mu.Unlock()
	f := r.coll.byID(l.Face)
	if f == nil {
		return fmt.Errorf("text: layout %d: unknown face %d", l.ID, l.Face)
	}
	for _, line := range l.Lines {
		for _, run := range line.Runs {
			for _, g := range run.Glyphs {
				k := keyOf(l, g)
				if _, ok := r.cache.Get(k); ok {
					continue
				}
				if _, ok := r.pending[k]; ok {
					continue
				}
				mask, bearing, err := f.rasterize(g.ID, l.PPEM)
				if err != nil {
					return err
				}
				if mask == nil {
					r.cache.Put(k, GlyphImage{Empty: true})
					continue
				}
				ak := atlas.GlyphKey(uint64(l.Face), uint32(g.ID), int32(l.PPEM))
				r.atlas.Queue(ak, mask)
				r.pending[k] = pendingGlyph{key: ak, bearing: bearing}
			}
		}
	}
	return nil
}

// Glyph returns the atlas location of g, a glyph of l. The result is
// only available after Prepare.
func (r *Rasterizer) Glyph(l *Layout, g Glyph) (GlyphImage, bool) {
	return r.cache.Get(keyOf(l, g))
}

func keyOf(l *Layout, g Glyph) glyphKey {
	return glyphKey{face: l.Face, ppem: int32(l.PPEM), id: g.ID}
}

// GlyphSet is a snapshot of the placements of the glyphs of some
// layouts and of the atlas pixels holding them. A GlyphSet never
// changes, so it may be read by any goroutine while its Rasterizer
// goes on packing glyphs.
type GlyphSet struct {
	img    *image.NRGBA
	gen    uint64
	glyphs map[glyphKey]GlyphImage
}

// Snapshot returns the placements of the prepared glyphs of ls. The
// atlas image is copied only if glyphs were packed since the previous
// snapshot.
func (r *Rasterizer) Snapshot(ls ...*Layout) *GlyphSet {
	if r.snap == nil {
		src := r.atlas.Image()
		r.snap = &image.NRGBA{Pix: slices.Clone(src.Pix), Stride: src.Stride, Rect: src.Rect}
	}
	s := &GlyphSet{
		img:    r.snap,
		gen:    r.atlas.Generation(),
		glyphs: make(map[glyphKey]GlyphImage),
	}
	for _, l := range ls {
		for _, line := range l.Lines {
			for _, run := range line.Runs {
				for _, g := range run.Glyphs {
					k := keyOf(l, g)
					if _, ok := s.glyphs[k]; ok {
						continue
					}
					if gi, ok := r.cache.Get(k); ok {
						s.glyphs[k] = gi
					}
				}
			}
		}
	}
	return s
}

// Glyph returns the atlas location of g, a glyph of l.
func (s *GlyphSet) Glyph(l *Layout, g Glyph) (GlyphImage, bool) {
	gi, ok := s.glyphs[keyOf(l, g)]
	return gi, ok
}

// AtlasImage returns the atlas pixels as of the snapshot.
func (s *GlyphSet) AtlasImage() *image.NRGBA {
	return s.img
}

// Generation returns the atlas generation as of the snapshot.
func (s *GlyphSet) Generation() uint64 {
	return s.gen
}

// Len returns the number of distinct glyphs in the set.
func (s *GlyphSet) Len() int {
	return len(s.glyphs)
}
