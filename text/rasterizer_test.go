// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"errors"
	"testing"

	"github.com/loomkit/loom/atlas"
)

func TestRasterizer(t *testing.T) {
	s := newTestShaper()
	l := mustLayout(t, s, "Hi there", Parameters{Size: 20})
	a := atlas.New(256, 64, 256)
	r := NewRasterizer(s.Collection(), a)
	if err := r.Prepare(l); err != nil {
		t.Fatal(err)
	}
	// H i t h e r
	if n := a.Len(); n != 6 {
		t.Errorf("atlas holds %d glyphs, want 6", n)
	}
	var h, space Glyph
	for _, g := range l.Lines[0].Runs[0].Glyphs {
		switch g.Rune {
		case 'H':
			h = g
		case ' ':
			space = g
		}
	}
	img, ok := r.Glyph(l, h)
	if !ok || img.Empty {
		t.Fatal("no image for 'H'")
	}
	if img.Bearing.Y >= 0 {
		t.Errorf("'H' bearing %v is not above the baseline", img.Bearing)
	}
	var ink bool
	pix := a.Image()
	b := img.Book.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if pix.NRGBAAt(x, y).A != 0 {
				ink = true
			}
		}
	}
	if !ink {
		t.Error("'H' has no pixels in the atlas")
	}
	if img, ok := r.Glyph(l, space); !ok || !img.Empty {
		t.Errorf("space: %+v, %v; want an empty glyph", img, ok)
	}
	// A second prepare finds everything cached.
	if err := r.Prepare(l); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 6 {
		t.Errorf("glyphs packed twice")
	}
}

func TestRasterizerOverflow(t *testing.T) {
	s := newTestShaper()
	l := mustLayout(t, s, "W", Parameters{Size: 64})
	r := NewRasterizer(s.Collection(), atlas.New(8, 8, 8))
	err := r.Prepare(l)
	if !errors.Is(err, atlas.ErrTooLarge) {
		t.Fatalf("got %v, want ErrTooLarge", err)
	}
	if _, ok := r.Glyph(l, l.Lines[0].Runs[0].Glyphs[0]); ok {
		t.Error("unplaced glyph reported as available")
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestShaper()
	hi := mustLayout(t, s, "Hi", Parameters{Size: 20})
	a := atlas.New(256, 32, 256)
	r := NewRasterizer(s.Collection(), a)
	if err := r.Prepare(hi); err != nil {
		t.Fatal(err)
	}
	snap := r.Snapshot(hi)
	if snap.Len() != 2 {
		t.Errorf("snapshot holds %d glyphs, want 2", snap.Len())
	}
	if again := r.Snapshot(hi); again.AtlasImage() != snap.AtlasImage() {
		t.Error("atlas copied without new glyphs")
	}
	pix := append([]byte(nil), snap.AtlasImage().Pix...)
	gen := snap.Generation()

	// Enough glyphs to grow the atlas.
	more := mustLayout(t, s, "The quick brown fox jumps over 123 lazy dogs", Parameters{Size: 40})
	if err := r.Prepare(more); err != nil {
		t.Fatal(err)
	}
	if a.Generation() == gen {
		t.Fatal("atlas did not grow")
	}
	if string(snap.AtlasImage().Pix) != string(pix) {
		t.Error("snapshot pixels changed")
	}
	if snap.Generation() != gen {
		t.Error("snapshot generation changed")
	}
	g := more.Lines[0].Runs[0].Glyphs[0]
	if _, ok := snap.Glyph(more, g); ok {
		t.Error("snapshot reports a glyph packed after it")
	}
	next := r.Snapshot(more)
	if gi, ok := next.Glyph(more, g); !ok || gi.Empty {
		t.Error("new snapshot misses a packed glyph")
	}
	if next.AtlasImage() == snap.AtlasImage() {
		t.Error("new glyphs did not copy the atlas")
	}
}
