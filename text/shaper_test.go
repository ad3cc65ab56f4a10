// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func newTestShaper() *Shaper {
	return NewShaper(GoFonts())
}

func mustLayout(t *testing.T, s *Shaper, str string, p Parameters) *Layout {
	t.Helper()
	if p.Size == 0 {
		p.Size = 16
	}
	l, err := s.Layout(str, p)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func lineText(l *Layout, i int) string {
	return l.Text[l.Lines[i].Start:l.Lines[i].End]
}

func TestLayoutIdentity(t *testing.T) {
	s := newTestShaper()
	p := Parameters{Size: 16}
	a := mustLayout(t, s, "identity", p)
	b := mustLayout(t, s, "identity", p)
	if a != b {
		t.Error("repeated layout not cached")
	}
	c := mustLayout(t, s, "identity!", p)
	if c.ID == a.ID {
		t.Error("different text shares an identity")
	}
	d := mustLayout(t, s, "identity", Parameters{Size: 17})
	if d.ID == a.ID {
		t.Error("different style shares an identity")
	}
	for i := 0; i < maxSize+1; i++ {
		mustLayout(t, s, strconv.Itoa(i), p)
	}
	e := mustLayout(t, s, "identity", p)
	if e == a {
		t.Fatal("layout was not evicted")
	}
	if e.ID != a.ID {
		t.Errorf("identity changed after eviction: %d != %d", e.ID, a.ID)
	}
	if e.RunID() != e.ID {
		t.Error("RunID differs from ID")
	}
}

func TestWrapWords(t *testing.T) {
	s := newTestShaper()
	w := mustLayout(t, s, "hello", Parameters{}).Size().X
	l := mustLayout(t, s, "hello hello hello", Parameters{MaxWidth: w * 1.5})
	if n := len(l.Lines); n != 3 {
		t.Fatalf("got %d lines, want 3", n)
	}
	if got := lineText(l, 0); got != "hello " {
		t.Errorf("first line %q, want %q", got, "hello ")
	}
	for i, line := range l.Lines {
		if line.Width > w*1.5 {
			t.Errorf("line %d width %v exceeds %v", i, line.Width, w*1.5)
		}
	}
	if l.Size().X > w*1.5 {
		t.Errorf("layout width %v exceeds max width", l.Size().X)
	}
}

func TestWrapLongWord(t *testing.T) {
	s := newTestShaper()
	max := mustLayout(t, s, "aaaa", Parameters{}).Size().X + .5
	str := "aaaaaaaaaa"
	l := mustLayout(t, s, str, Parameters{MaxWidth: max})
	if n := len(l.Lines); n != 3 {
		t.Fatalf("heuristic wrap: got %d lines, want 3", n)
	}
	if got := lineText(l, 2); got != "aa" {
		t.Errorf("last line %q, want %q", got, "aa")
	}
	l = mustLayout(t, s, str, Parameters{MaxWidth: max, Wrap: WrapWords})
	if n := len(l.Lines); n != 1 {
		t.Fatalf("word wrap: got %d lines, want 1", n)
	}
	if l.Lines[0].Width <= max {
		t.Errorf("word wrap: width %v should overflow %v", l.Lines[0].Width, max)
	}
	l = mustLayout(t, s, "aa aaaaaa", Parameters{MaxWidth: max, Wrap: WrapGraphemes})
	if got := lineText(l, 0); got != "aa a" {
		t.Errorf("grapheme wrap: first line %q, want %q", got, "aa a")
	}
}

func TestHardBreaks(t *testing.T) {
	s := newTestShaper()
	l := mustLayout(t, s, "a\r\nb\n", Parameters{})
	if n := len(l.Lines); n != 3 {
		t.Fatalf("got %d lines, want 3", n)
	}
	if got := lineText(l, 0); got != "a" {
		t.Errorf("line 0 = %q, want %q", got, "a")
	}
	if got := lineText(l, 2); got != "" {
		t.Errorf("line 2 = %q, want empty", got)
	}
	for i := 1; i < len(l.Lines); i++ {
		if l.Lines[i].Y <= l.Lines[i-1].Y {
			t.Errorf("baseline %d not below baseline %d", i, i-1)
		}
	}
	last := l.Lines[len(l.Lines)-1]
	if got, want := l.Size().Y, last.Y+last.Descent; got != want {
		t.Errorf("height %v, want %v", got, want)
	}
}

func TestEmptyString(t *testing.T) {
	l := mustLayout(t, newTestShaper(), "", Parameters{})
	if len(l.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(l.Lines))
	}
	if sz := l.Size(); sz.X != 0 || sz.Y <= 0 {
		t.Errorf("size %v, want zero width and a line height", sz)
	}
}

func TestMaxLines(t *testing.T) {
	l := mustLayout(t, newTestShaper(), "a\nb\ncd", Parameters{MaxLines: 2})
	if len(l.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(l.Lines))
	}
	if l.Truncated != 2 {
		t.Errorf("truncated %d runes, want 2", l.Truncated)
	}
}

func TestAlignment(t *testing.T) {
	s := newTestShaper()
	start := mustLayout(t, s, "a\nbbbb", Parameters{})
	if start.Lines[0].X != 0 {
		t.Errorf("start aligned line at %v", start.Lines[0].X)
	}
	diff := start.Lines[1].Width - start.Lines[0].Width
	mid := mustLayout(t, s, "a\nbbbb", Parameters{Alignment: Middle})
	if got := mid.Lines[0].X; got != diff/2 {
		t.Errorf("middle aligned line at %v, want %v", got, diff/2)
	}
	end := mustLayout(t, s, "a\nbbbb", Parameters{Alignment: End})
	if got := end.Lines[0].X; got != diff {
		t.Errorf("end aligned line at %v, want %v", got, diff)
	}
}

func TestBidiRuns(t *testing.T) {
	l := mustLayout(t, newTestShaper(), "abc אבג", Parameters{})
	runs := l.Lines[0].Runs
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Direction != LTR || runs[0].Script != language.Latin {
		t.Errorf("run 0: %v %v", runs[0].Direction, runs[0].Script)
	}
	rtl := runs[1]
	if rtl.Direction != RTL || rtl.Script != language.Hebrew {
		t.Errorf("run 1: %v %v", rtl.Direction, rtl.Script)
	}
	if r := rtl.Glyphs[0].Rune; r != 'ג' {
		t.Errorf("first visual glyph %q, want %q", r, 'ג')
	}
	prev := float32(-1)
	for _, run := range runs {
		for _, g := range run.Glyphs {
			if g.X <= prev {
				t.Fatalf("glyph %q at %v not right of %v", g.Rune, g.X, prev)
			}
			prev = g.X
		}
	}
}

func TestShapedGlyphs(t *testing.T) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	var buf sfnt.Buffer
	l := mustLayout(t, newTestShaper(), "Hi", Parameters{})
	for _, g := range l.Lines[0].Runs[0].Glyphs {
		want, err := f.GlyphIndex(&buf, g.Rune)
		if err != nil {
			t.Fatal(err)
		}
		if g.ID != GlyphID(want) {
			t.Errorf("glyph of %q: got %d, want %d", g.Rune, g.ID, want)
		}
	}
}

func TestCombiningMark(t *testing.T) {
	// The acute accent joins the cluster of its base.
	l := mustLayout(t, newTestShaper(), "e\u0301x", Parameters{})
	glyphs := l.Lines[0].Runs[0].Glyphs
	if len(glyphs) < 2 {
		t.Fatalf("got %d glyphs", len(glyphs))
	}
	for _, g := range glyphs[:len(glyphs)-1] {
		if g.Cluster != 0 || g.Rune != 'e' {
			t.Errorf("glyph %d in cluster %d (%q), want cluster 0", g.ID, g.Cluster, g.Rune)
		}
	}
	if last := glyphs[len(glyphs)-1]; last.Rune != 'x' || last.Cluster != 3 {
		t.Errorf("last glyph %q in cluster %d, want 'x' in cluster 3", last.Rune, last.Cluster)
	}
}

func TestRTLClusters(t *testing.T) {
	l := mustLayout(t, newTestShaper(), "אבג", Parameters{Direction: RTL})
	glyphs := l.Lines[0].Runs[0].Glyphs
	for i := 1; i < len(glyphs); i++ {
		if glyphs[i].Cluster >= glyphs[i-1].Cluster {
			t.Errorf("RTL glyph %d in cluster %d after cluster %d", i, glyphs[i].Cluster, glyphs[i-1].Cluster)
		}
	}
}

func TestErrors(t *testing.T) {
	if _, err := newTestShaper().Layout("x", Parameters{}); err == nil {
		t.Error("zero size accepted")
	}
	_, err := NewShaper(NewCollection()).Layout("x", Parameters{Size: 12})
	if !errors.Is(err, ErrNoFont) {
		t.Errorf("got %v, want ErrNoFont", err)
	}
}

func TestCollectionMatch(t *testing.T) {
	c := GoFonts()
	tests := []struct {
		req, want Font
	}{
		{Font{Typeface: "Go", Weight: Bold}, Font{Typeface: "Go", Weight: Bold}},
		{Font{Typeface: "Go", Weight: Medium}, Font{Typeface: "Go"}},
		{Font{Typeface: "Nope", Style: Italic}, Font{Typeface: "Go", Style: Italic}},
		{Font{Typeface: "Go Mono", Style: Italic}, Font{Typeface: "Go Mono"}},
		{Font{}, Font{Typeface: "Go"}},
	}
	for _, test := range tests {
		_, got, err := c.Resolve(test.req)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("Resolve(%v) = %v, want %v", test.req, got, test.want)
		}
	}
}

func TestAddFont(t *testing.T) {
	c := NewCollection()
	if err := c.AddFont(Font{}, []byte("not a font")); err == nil {
		t.Error("invalid font accepted")
	}
	if n := len(c.Fonts()); n != 0 {
		t.Errorf("%d fonts after failed add", n)
	}
	if err := c.AddFont(Font{}, goregular.TTF); err != nil {
		t.Fatal(err)
	}
	if fonts := c.Fonts(); len(fonts) != 1 || fonts[0].Typeface != "Go" {
		t.Errorf("fonts = %v, want a single Go font", fonts)
	}
}

func ExampleShaper_Layout() {
	s := NewShaper(GoFonts())
	l, err := s.Layout("hello\nworld", Parameters{Size: 14})
	if err != nil {
		panic(err)
	}
	fmt.Println(len(l.Lines), l.Lines[1].Y > l.Lines[0].Y)

	// Output:
	// 2 true
}

func BenchmarkLayout(b *testing.B) {
	s := newTestShaper()
	const str = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."
	for i := 0; i < b.N; i++ {
		// Vary the width to defeat the cache.
		if _, err := s.Layout(str, Parameters{Size: 14, MaxWidth: float32(100 + i%200)}); err != nil {
			b.Fatal(err)
		}
	}
}
