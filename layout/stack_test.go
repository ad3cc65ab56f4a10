// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"math"
	"testing"

	"github.com/loomkit/loom/f32"
)

// box is a test child. With a zero size it takes everything it is
// offered.
type box struct {
	size    f32.Point
	flags   Flags
	flex    int
	pos     f32.Point
	dims    f32.Point
	offered []f32.Point
	order   *[]*box
}

func (b *box) Flags() Flags             { return b.flags }
func (b *box) Flexibility() int         { return b.flex }
func (b *box) Dimension() f32.Point     { return b.dims }
func (b *box) SetDimension(p f32.Point) { b.dims = p }
func (b *box) Position() f32.Point      { return b.pos }
func (b *box) SetPosition(p f32.Point)  { b.pos = p }
func (b *box) PositionChildren()        {}

func (b *box) CalculateSize(gtx *Context, requested f32.Point) f32.Point {
	b.offered = append(b.offered, requested)
	if b.order != nil {
		*b.order = append(*b.order, b)
	}
	sz := b.size
	if sz == (f32.Point{}) {
		sz = requested
	}
	b.dims = sz
	return sz
}

func children(bs ...*box) []Child {
	cs := make([]Child, len(bs))
	for i, b := range bs {
		cs[i] = b
	}
	return cs
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestHStackFixedChildren(t *testing.T) {
	b0 := &box{size: f32.Pt(50, 50)}
	b1 := &box{size: f32.Pt(50, 50)}
	b2 := &box{size: f32.Pt(100, 100)}
	cs := children(b0, b1, b2)
	s := Stack{Axis: Horizontal, Spacing: 10}
	sz := s.CalculateSize(new(Context), f32.Pt(1000, 200), cs)
	if sz != f32.Pt(220, 100) {
		t.Fatalf("stack size: got %v, want (220,100)", sz)
	}
	s.PositionChildren(f32.Point{}, sz, cs)
	for i, want := range []float32{0, 60, 120} {
		if got := cs[i].Position().X; got != want {
			t.Errorf("child %d at x=%v, want %v", i, got, want)
		}
	}
}

func TestStackConservation(t *testing.T) {
	fixed := []*box{
		{size: f32.Pt(30, 10)},
		{size: f32.Pt(45, 20)},
		{size: f32.Pt(25, 5)},
	}
	sp1 := &box{flags: Spacer}
	sp2 := &box{flags: Spacer}
	cs := children(sp1, fixed[0], fixed[1], sp2, fixed[2])
	s := Stack{Axis: Horizontal, Spacing: 5}
	const requested = 400
	sz := s.CalculateSize(new(Context), f32.Pt(requested, 50), cs)

	var sum float32
	for _, c := range cs {
		sum += c.Dimension().X
	}
	spacing := float32(2 * 5)
	if !near(sum+spacing, sz.X) {
		t.Errorf("children %v + spacing %v != stack width %v", sum, spacing, sz.X)
	}
	wantSpacer := (requested - (30 + 45 + 25) - spacing) / 2
	for _, sp := range []*box{sp1, sp2} {
		if !near(sp.dims.X, wantSpacer) {
			t.Errorf("spacer width %v, want %v", sp.dims.X, wantSpacer)
		}
	}
	if !near(sz.X, requested) {
		t.Errorf("stack with spacers: width %v, want %v", sz.X, requested)
	}
	if sz.Y != 20 {
		t.Errorf("cross size %v, want 20", sz.Y)
	}

	s.PositionChildren(f32.Pt(10, 0), sz, cs)
	// Spacers take no extra spacing; non-spacers are separated by it.
	wantX := []float32{10, 10 + wantSpacer, 10 + wantSpacer + 30 + 5, 0, 0}
	wantX[3] = wantX[2] + 45
	wantX[4] = wantX[3] + wantSpacer + 5
	for i, c := range cs {
		if !near(c.Position().X, wantX[i]) {
			t.Errorf("child %d at x=%v, want %v", i, c.Position().X, wantX[i])
		}
	}
}

func TestStackLeftoverWithoutSpacers(t *testing.T) {
	cs := children(&box{size: f32.Pt(10, 10)}, &box{size: f32.Pt(10, 10)})
	sz := Stack{Axis: Horizontal}.CalculateSize(new(Context), f32.Pt(500, 500), cs)
	if sz != f32.Pt(20, 10) {
		t.Errorf("got %v, want (20,10)", sz)
	}
}

func TestStackFlexibilityOrder(t *testing.T) {
	var order []*box
	rigid := &box{flex: 0, order: &order}
	flexible := &box{flex: 5, order: &order}
	// Declared flexible first; rigid must still be sized first and be
	// offered half the space.
	cs := children(flexible, rigid)
	Stack{Axis: Vertical}.CalculateSize(new(Context), f32.Pt(100, 100), cs)
	if len(order) != 2 || order[0] != rigid || order[1] != flexible {
		t.Fatalf("sizing order wrong")
	}
	if rigid.offered[0] != f32.Pt(100, 50) {
		t.Errorf("rigid offered %v, want (100,50)", rigid.offered[0])
	}
	if flexible.offered[0] != f32.Pt(100, 50) {
		t.Errorf("flexible offered %v, want the remaining (100,50)", flexible.offered[0])
	}

	// Swapping flexibilities swaps the sizing order. a overflows its
	// offer, so whatever is sized after it sees nothing left.
	order = nil
	a := &box{flex: 1, size: f32.Pt(10, 100), order: &order}
	b := &box{flex: 2, size: f32.Pt(10, 80), order: &order}
	Stack{Axis: Vertical}.CalculateSize(new(Context), f32.Pt(10, 100), children(a, b))
	if order[0] != a {
		t.Fatalf("lower flexibility not sized first")
	}
	if b.offered[0].Y != 0 {
		t.Errorf("b offered %v after a overflowed", b.offered[0])
	}

	order = nil
	a.flex, b.flex = 2, 1
	a.offered, b.offered = nil, nil
	Stack{Axis: Vertical}.CalculateSize(new(Context), f32.Pt(10, 100), children(a, b))
	if order[0] != b {
		t.Fatalf("swapped flexibility did not swap order")
	}
	if a.offered[0].Y != 20 {
		t.Errorf("a offered %v, want the 20 left by b", a.offered[0])
	}
}

func TestStackTiesKeepDeclarationOrder(t *testing.T) {
	var order []*box
	bs := []*box{{order: &order}, {order: &order}, {order: &order}}
	Stack{Axis: Horizontal}.CalculateSize(new(Context), f32.Pt(90, 10), children(bs...))
	for i := range bs {
		if order[i] != bs[i] {
			t.Fatalf("tie order changed at %d", i)
		}
	}
}

func TestStackUseMaxCrossAxis(t *testing.T) {
	var order []*box
	greedy := &box{flags: UseMaxCrossAxis, order: &order}
	tall := &box{flex: 10, size: f32.Pt(40, 70), order: &order}
	short := &box{size: f32.Pt(40, 30), order: &order}
	cs := children(greedy, tall, short)
	sz := Stack{Axis: Horizontal}.CalculateSize(new(Context), f32.Pt(200, 300), cs)
	// The greedy child is sized last despite its lower flexibility.
	if order[2] != greedy {
		t.Fatalf("UseMaxCrossAxis child not sized last")
	}
	if got := greedy.offered[0]; got != f32.Pt(120, 70) {
		t.Errorf("greedy offered %v, want (120,70)", got)
	}
	if sz != f32.Pt(200, 70) {
		t.Errorf("stack size %v", sz)
	}
}

func TestStackOverflowClampsRemaining(t *testing.T) {
	big := &box{size: f32.Pt(150, 10)}
	next := &box{}
	sz := Stack{Axis: Horizontal}.CalculateSize(new(Context), f32.Pt(100, 10), children(big, next))
	if next.offered[0].X != 0 {
		t.Errorf("offer after overflow: %v, want 0", next.offered[0].X)
	}
	if sz.X != 150 {
		t.Errorf("stack width %v, want 150", sz.X)
	}
	neg := &box{}
	Stack{Axis: Horizontal, Spacing: 50}.CalculateSize(new(Context), f32.Pt(-20, -5), children(neg, &box{}))
	if neg.offered[0] != (f32.Point{}) {
		t.Errorf("negative request offered %v", neg.offered[0])
	}
}

func TestStackCrossAlignment(t *testing.T) {
	for _, tc := range []struct {
		align Alignment
		want  float32
	}{
		{Start, 0},
		{Middle, 30},
		{End, 60},
	} {
		small := &box{size: f32.Pt(10, 40)}
		large := &box{size: f32.Pt(10, 100)}
		cs := children(small, large)
		s := Stack{Axis: Horizontal, Alignment: tc.align}
		sz := s.CalculateSize(new(Context), f32.Pt(100, 100), cs)
		s.PositionChildren(f32.Pt(5, 7), sz, cs)
		if got := small.pos.Y - 7; got != tc.want {
			t.Errorf("%v: cross offset %v, want %v", tc.align, got, tc.want)
		}
	}
}

func TestStackIgnoredChild(t *testing.T) {
	overlay := &box{flags: Ignore}
	a := &box{size: f32.Pt(10, 10)}
	cs := children(a, overlay)
	s := Stack{Axis: Horizontal}
	sz := s.CalculateSize(new(Context), f32.Pt(80, 60), cs)
	if sz != f32.Pt(10, 10) {
		t.Errorf("ignored child counted: %v", sz)
	}
	if overlay.dims != f32.Pt(80, 60) {
		t.Errorf("ignored child offered %v", overlay.dims)
	}
	s.PositionChildren(f32.Pt(3, 4), sz, cs)
	if overlay.pos != f32.Pt(3, 4) {
		t.Errorf("ignored child at %v", overlay.pos)
	}
}

func BenchmarkStack(b *testing.B) {
	bs := make([]*box, 20)
	for i := range bs {
		bs[i] = &box{flex: i % 3, size: f32.Pt(float32(i), 10)}
	}
	cs := children(bs...)
	s := Stack{Axis: Horizontal, Spacing: 4}
	gtx := new(Context)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sz := s.CalculateSize(gtx, f32.Pt(1000, 100), cs)
		s.PositionChildren(f32.Point{}, sz, cs)
	}
}
