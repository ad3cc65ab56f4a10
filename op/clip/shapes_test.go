// SPDX-License-Identifier: Unlicense OR MIT

package clip

import (
	"math"
	"testing"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/op"
)

func area(tris []f32.Triangle) float64 {
	var a float64
	for _, t := range tris {
		u, v := t[1].Sub(t[0]), t[2].Sub(t[0])
		a += math.Abs(float64(u.X*v.Y-u.Y*v.X)) / 2
	}
	return a
}

func TestRectTriangles(t *testing.T) {
	r := Rect(f32.Rect(10, 10, 30, 20))
	if got := area(r.Triangles()); got != 200 {
		t.Errorf("area %v, want 200", got)
	}
	if Rect(f32.Rect(0, 0, 0, 5)).Triangles() != nil {
		t.Error("empty rect tessellated")
	}
}

func TestEllipseArea(t *testing.T) {
	e := Ellipse(f32.Rect(0, 0, 100, 50))
	want := math.Pi * 50 * 25
	got := area(e.Triangles())
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("ellipse area %v, want about %v", got, want)
	}
	if b := Bounds(e.Triangles()); !f32.Rect(-0.01, -0.01, 100.01, 50.01).Contains(b) {
		t.Errorf("ellipse bounds %v", b)
	}
}

func TestRRectArea(t *testing.T) {
	const w, h, r = 100, 60, 10
	rr := UniformRRect(f32.Rect(0, 0, w, h), r)
	want := w*h - (4-math.Pi)*r*r
	got := area(rr.Triangles())
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("rounded rect area %v, want about %v", got, want)
	}
	// Oversized radii are clamped to half the short side.
	circle := UniformRRect(f32.Rect(0, 0, 20, 20), 50)
	if got, want := area(circle.Triangles()), math.Pi*100; math.Abs(got-want)/want > 0.02 {
		t.Errorf("clamped area %v, want about %v", got, want)
	}
}

func TestStroke(t *testing.T) {
	s := Stroke{Path: []f32.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, Width: 2}
	if got := area(s.Triangles()); math.Abs(got-20) > 1e-4 {
		t.Errorf("stroke area %v, want 20", got)
	}
	b := Border(UniformRRect(f32.Rect(0, 0, 10, 10), 0), 1)
	if n := len(b.Triangles()); n == 0 {
		t.Error("border produced no triangles")
	}
}

func TestPushKinds(t *testing.T) {
	var ops op.Ops
	ctx := op.NewContext(&ops, nil)
	Rect(f32.Rect(0, 0, 5, 5)).Push(ctx).Pop()
	UniformRRect(f32.Rect(0, 0, 5, 5), 0).Push(ctx).Pop()
	UniformRRect(f32.Rect(0, 0, 5, 5), 2).Push(ctx).Pop()
	Ellipse(f32.Rect(0, 0, 5, 5)).Push(ctx).Pop()
	want := []op.Kind{
		op.KindPushClip, op.KindPop,
		op.KindPushClip, op.KindPop,
		op.KindPushStencil, op.KindPop,
		op.KindPushStencil, op.KindPop,
	}
	ps := ops.Primitives()
	if len(ps) != len(want) {
		t.Fatalf("got %d primitives, want %d", len(ps), len(want))
	}
	for i, p := range ps {
		if p.Kind() != want[i] {
			t.Errorf("primitive %d: %v, want %v", i, p.Kind(), want[i])
		}
	}
}
