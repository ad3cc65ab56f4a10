// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"math"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/rivo/uniseg"
	"golang.org/x/exp/slices"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// Shaper lays out text with the fonts of a Collection. Layouts are
// cached and the same *Layout is returned for repeated requests. A
// Shaper is safe for concurrent use.
type Shaper struct {
	mu    sync.Mutex
	coll  *Collection
	cache layoutCache
	seed  maphash.Seed
	hb    shaping.HarfbuzzShaper
}

// NewShaper returns a shaper for the fonts of c.
func NewShaper(c *Collection) *Shaper {
	return &Shaper{coll: c, seed: maphash.MakeSeed()}
}

// Collection returns the fonts of s.
func (s *Shaper) Collection() *Collection {
	return s.coll
}

// Layout shapes str. Hard line breaks start new paragraphs; lines
// wrap at params.MaxWidth according to params.Wrap.
func (s *Shaper) Layout(str string, params Parameters) (*Layout, error) {
	if !(params.Size > 0) {
		return nil, fmt.Errorf("text: invalid font size %v", params.Size)
	}
	key := layoutKey{str: str, params: params}
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.cache.Get(key); ok {
		return l, nil
	}
	s.coll.mu.Lock()
	defer s.coll.mu.Unlock()
	f, err := s.coll.match(params.Font)
	if err != nil {
		return nil, err
	}
	ppem := floatToFixed(params.Size)
	ff, err := f.sizedFace(ppem)
	if err != nil {
		return nil, err
	}
	sh := &lineShaper{f: f, face: ff, hb: &s.hb, ppem: ppem, params: params}
	l := sh.layout(str)
	l.ID = s.hash(key)
	l.Face = f.id
	l.PPEM = ppem
	s.cache.Put(key, l)
	return l, nil
}

// hash computes the identity of a layout from its text and
// parameters.
func (s *Shaper) hash(k layoutKey) uint64 {
	var h maphash.Hash
	h.SetSeed(s.seed)
	h.WriteString(k.str)
	h.WriteByte(0)
	p := k.params
	h.WriteString(string(p.Font.Typeface))
	var b [4]byte
	for _, v := range []uint32{
		uint32(p.Font.Style),
		uint32(p.Font.Weight),
		math.Float32bits(p.Size),
		math.Float32bits(p.MaxWidth),
		uint32(p.Wrap),
		uint32(p.Alignment),
		uint32(p.MaxLines),
		math.Float32bits(p.LineHeightScale),
		uint32(p.Direction),
	} {
		binary.LittleEndian.PutUint32(b[:], v)
		h.Write(b[:])
	}
	id := h.Sum64()
	if id == 0 {
		id = 1
	}
	return id
}

type span struct {
	start, end int
}

// lineShaper lays out one text. face provides the line metrics and hb
// positions the glyphs.
type lineShaper struct {
	f      *face
	face   font.Face
	hb     *shaping.HarfbuzzShaper
	ppem   fixed.Int26_6
	params Parameters
}

func (sh *lineShaper) layout(str string) *Layout {
	l := &Layout{Text: str}
	m := sh.face.Metrics()
	ascent, descent := fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
	lh := fixedToFloat(m.Height)
	if s := sh.params.LineHeightScale; s > 0 {
		lh *= s
	}
	var spans []span
	off := 0
	for _, para := range strings.SplitAfter(str, "\n") {
		end := off + len(strings.TrimRight(para, "\r\n"))
		spans = append(spans, sh.breakParagraph(str, span{off, end})...)
		off += len(para)
	}
	if n := sh.params.MaxLines; n > 0 && len(spans) > n {
		l.Truncated = utf8.RuneCountInString(str[spans[n].start:])
		spans = spans[:n]
	}
	var width float32
	for i, sp := range spans {
		txt := str[sp.start:sp.end]
		line := Line{
			Start:   sp.start,
			End:     sp.end,
			Y:       ascent + float32(i)*lh,
			Width:   sh.advance(strings.TrimRightFunc(txt, unicode.IsSpace)),
			Ascent:  ascent,
			Descent: descent,
			Runs:    sh.runs(txt, sp.start),
		}
		width = max(width, line.Width)
		l.Lines = append(l.Lines, line)
	}
	for i := range l.Lines {
		line := &l.Lines[i]
		switch sh.params.Alignment {
		case Middle:
			line.X = (width - line.Width) / 2
		case End:
			line.X = width - line.Width
		}
	}
	height := l.Lines[len(l.Lines)-1].Y + descent
	l.size.X, l.size.Y = width, height
	return l
}

// breakParagraph splits the paragraph sp of str into lines.
func (sh *lineShaper) breakParagraph(str string, sp span) []span {
	para := str[sp.start:sp.end]
	if sh.params.MaxWidth <= 0 || para == "" {
		return []span{sp}
	}
	var lines []span
	start, pos := sp.start, sp.start
	commit := func() {
		lines = append(lines, span{start, pos})
		start = pos
	}
	graphemes := func(s string) {
		state := -1
		var g string
		for s != "" {
			g, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
			if pos > start && !sh.fits(str[start:pos+len(g)]) {
				commit()
			}
			pos += len(g)
		}
	}
	if sh.params.Wrap == WrapGraphemes {
		graphemes(para)
	} else {
		state := -1
		rest := para
		var seg string
		for rest != "" {
			seg, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
			end := pos + len(seg)
			if sh.fits(str[start:end]) {
				pos = end
				continue
			}
			if pos > start {
				commit()
				if sh.fits(str[start:end]) {
					pos = end
					continue
				}
			}
			if sh.params.Wrap == WrapWords {
				pos = end
				commit()
				continue
			}
			graphemes(seg)
		}
	}
	if pos > start || len(lines) == 0 {
		commit()
	}
	return lines
}

func (sh *lineShaper) fits(s string) bool {
	return sh.advance(strings.TrimRightFunc(s, unicode.IsSpace)) <= sh.params.MaxWidth
}

// advance measures the shaped width of s.
func (sh *lineShaper) advance(s string) float32 {
	var w float32
	for _, run := range sh.runs(s, 0) {
		for _, g := range run.Glyphs {
			w += g.Advance
		}
	}
	return w
}

type logicalRun struct {
	start, end int
	level      uint8
	script     language.Script
}

// runs splits a line into direction and script runs and positions
// their glyphs in visual order.
func (sh *lineShaper) runs(line string, offset int) []Run {
	if line == "" {
		return nil
	}
	runes := []rune(line)
	offs := make([]int, len(runes))
	o := offset
	for i, r := range runes {
		offs[i] = o
		o += utf8.RuneLen(r)
	}
	levels := bidiLevels(line, len(runes), sh.params.Direction)
	scripts := resolveScripts(runes)
	var lruns []logicalRun
	cur := logicalRun{level: levels[0], script: scripts[0]}
	for i := 1; i < len(runes); i++ {
		if levels[i] != cur.level || scripts[i] != cur.script {
			cur.end = i
			lruns = append(lruns, cur)
			cur = logicalRun{start: i, level: levels[i], script: scripts[i]}
		}
	}
	cur.end = len(runes)
	lruns = append(lruns, cur)
	visualOrder(lruns, sh.params.Direction)

	var x float32
	out := make([]Run, len(lruns))
	for i, lr := range lruns {
		run := Run{Script: lr.script}
		if lr.level == 1 {
			run.Direction = RTL
		}
		glyphs := sh.shape(runes, lr)
		run.Glyphs = make([]Glyph, 0, len(glyphs))
		for _, g := range glyphs {
			k := min(max(g.TextIndex(), lr.start), lr.end-1)
			adv := fixedToFloat(g.Advance)
			run.Glyphs = append(run.Glyphs, Glyph{
				ID:      GlyphID(g.GlyphID),
				Rune:    runes[k],
				X:       x + fixedToFloat(g.XOffset),
				Y:       -fixedToFloat(g.YOffset),
				Advance: adv,
				Cluster: offs[k],
			})
			x += adv
		}
		out[i] = run
	}
	return out
}

// shape positions the glyphs of the logical run lr of runes. The
// glyphs are returned in visual order.
func (sh *lineShaper) shape(runes []rune, lr logicalRun) []shaping.Glyph {
	dir := di.DirectionLTR
	if lr.level == 1 {
		dir = di.DirectionRTL
	}
	out := sh.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  lr.start,
		RunEnd:    lr.end,
		Direction: dir,
		Face:      sh.f.shaping,
		Size:      sh.ppem,
		Script:    lr.script,
		Language:  scriptLanguage(lr.script),
	})
	return out.Glyphs
}

// scriptLanguage returns a language written in script s. HarfBuzz
// selects language specific forms by it.
func scriptLanguage(s language.Script) language.Language {
	switch s {
	case language.Arabic:
		return language.NewLanguage("ar")
	case language.Hebrew:
		return language.NewLanguage("he")
	case language.Devanagari:
		return language.NewLanguage("hi")
	case language.Thai:
		return language.NewLanguage("th")
	case language.Cyrillic:
		return language.NewLanguage("ru")
	case language.Greek:
		return language.NewLanguage("el")
	default:
		return language.NewLanguage("en")
	}
}

// bidiLevels returns the embedding level, 0 or 1, of every rune of
// line.
func bidiLevels(line string, n int, base Direction) []uint8 {
	levels := make([]uint8, n)
	def := bidi.LeftToRight
	if base == RTL {
		def = bidi.RightToLeft
		for i := range levels {
			levels[i] = 1
		}
	}
	var p bidi.Paragraph
	if _, err := p.SetString(line, bidi.DefaultDirection(def)); err != nil {
		return levels
	}
	ord, err := p.Order()
	if err != nil {
		return levels
	}
	// Run positions are rune indices, end inclusive.
	for i := 0; i < ord.NumRuns(); i++ {
		r := ord.Run(i)
		start, end := r.Pos()
		var lvl uint8
		if r.Direction() == bidi.RightToLeft {
			lvl = 1
		}
		for j := start; j <= end && j < n; j++ {
			levels[j] = lvl
		}
	}
	return levels
}

// resolveScripts assigns a script to every rune. Common and inherited
// runes take the script of the preceding rune, or the following one
// at the start of the line.
func resolveScripts(runes []rune) []language.Script {
	scripts := make([]language.Script, len(runes))
	last := language.Common
	for i, r := range runes {
		s := language.LookupScript(r)
		if s == language.Common || s == language.Inherited {
			s = last
		}
		scripts[i] = s
		if s != language.Common {
			last = s
		}
	}
	if last == language.Common {
		return scripts
	}
	next := language.Common
	for i := len(scripts) - 1; i >= 0; i-- {
		if scripts[i] == language.Common {
			scripts[i] = next
		} else {
			next = scripts[i]
		}
	}
	return scripts
}

// visualOrder reorders runs from logical to visual order.
func visualOrder(runs []logicalRun, base Direction) {
	if base == RTL {
		slices.Reverse(runs)
		return
	}
	for i := 0; i < len(runs); {
		if runs[i].level == 0 {
			i++
			continue
		}
		j := i
		for j < len(runs) && runs[j].level == 1 {
			j++
		}
		slices.Reverse(runs[i:j])
		i = j
	}
}
