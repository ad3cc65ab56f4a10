// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/clip"
	"github.com/loomkit/loom/op/paint"
)

func TestDumpIndents(t *testing.T) {
	ops := new(op.Ops)
	ctx := op.NewContext(ops, nil)
	s := ctx.PushClip(f32.Rect(0, 0, 10, 10))
	ctx.Fill(paint.Color(color.NRGBA{A: 0xff}), clip.Rect(f32.Rect(0, 0, 5, 5)).Triangles())
	s.Pop()
	var b strings.Builder
	dump(&b, ops)
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) < 3 {
		t.Fatalf("short dump:\n%s", b.String())
	}
	if !strings.HasPrefix(lines[1][5:], " ") {
		t.Errorf("nested primitive not indented: %q", lines[1])
	}
	if strings.HasPrefix(lines[len(lines)-1][5:], " ") {
		t.Errorf("pop indented: %q", lines[len(lines)-1])
	}
}

func TestWriteAtlas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.png")
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	if err := writeAtlas(path, img, 3); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if sz := got.Bounds().Size(); sz != image.Pt(12, 6) {
		t.Errorf("scaled size %v", sz)
	}
	if err := writeAtlas(path, img, 0); err == nil {
		t.Error("zero scale accepted")
	}
}
