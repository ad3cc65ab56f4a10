// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image/color"
	"testing"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/clip"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/unit"
)

// box is a leaf of fixed size.
type box struct {
	Base
	size f32.Point
}

func newBox(w, h float32) *box {
	return &box{size: f32.Pt(w, h)}
}

func (b *box) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	b.SetDimension(b.size)
	return b.Dimension()
}

func (b *box) Render(ctx *op.Context) {
	ctx.Fill(paint.Color(env.Get(ctx.Env, ForegroundColor)), clip.Rect(b.Bounds()).Triangles())
}

func layoutTree(root Widget, size f32.Point) *layout.Context {
	gtx := layout.NewContext(unit.Metric{}, nil, nil)
	Sync(root, gtx.Env)
	Layout(root, gtx, f32.Point{}, size)
	return gtx
}

func pointerEvent(kind pointer.Kind, x, y float32) pointer.Event {
	return pointer.Event{
		Kind:     kind,
		Source:   pointer.Mouse,
		Buttons:  pointer.ButtonPrimary,
		Position: f32.Pt(x, y),
	}
}

func dispatch(w Widget, evs ...pointer.Event) *pointer.Context {
	var ctx *pointer.Context
	for _, e := range evs {
		ctx = pointer.NewContext(event.NewContext(0, nil, nil))
		ProcessPointer(w, e, ctx)
	}
	return ctx
}

func click(w Widget, x, y float32) {
	dispatch(w, pointerEvent(pointer.Press, x, y), pointerEvent(pointer.Release, x, y))
}

func TestStackPositions(t *testing.T) {
	a, b := newBox(20, 10), newBox(30, 20)
	s := VStack(unit.Px(10), a, b)
	gtx := layout.NewContext(unit.Metric{}, nil, nil)
	if got := Layout(s, gtx, f32.Pt(5, 5), f32.Pt(100, 100)); got != f32.Pt(30, 40) {
		t.Errorf("stack size: got %v", got)
	}
	if got := a.Position(); got != f32.Pt(10, 5) {
		t.Errorf("a: got %v", got)
	}
	if got := b.Position(); got != f32.Pt(5, 25) {
		t.Errorf("b: got %v", got)
	}
}

func TestSpacerFillsLeftover(t *testing.T) {
	a, b := newBox(20, 10), newBox(20, 10)
	sp := NewSpacer()
	s := HStack(unit.Px(0), a, sp, b)
	layoutTree(s, f32.Pt(100, 10))
	if got := sp.Dimension(); got != f32.Pt(60, 0) {
		t.Errorf("spacer: got %v", got)
	}
	if got := b.Position(); got != f32.Pt(80, 0) {
		t.Errorf("b: got %v", got)
	}
}

func TestFramePaddingOffset(t *testing.T) {
	b := newBox(10, 10)
	f := Sized(unit.Px(50), unit.Px(30), Pad(unit.Px(5), &Offset{X: unit.Px(1), Y: unit.Px(2), Content: b}))
	layoutTree(f, f32.Pt(200, 200))
	if got := f.Dimension(); got != f32.Pt(50, 30) {
		t.Errorf("frame: got %v", got)
	}
	// The padded content is 20x20, centered in the frame.
	if got := b.Position(); got != f32.Pt(15+5+1, 5+5+2) {
		t.Errorf("box: got %v", got)
	}
}

func TestFlattenProxy(t *testing.T) {
	items := state.New([]string{"a", "b"})
	built := 0
	fe := NewForEach[string, string](items, func(s string) string { return s }, func(s string) Widget {
		built++
		return newBox(10, 10)
	})
	first := newBox(5, 5)
	s := HStack(unit.Px(0), first, fe)
	layoutTree(s, f32.Pt(100, 100))
	flat := Flatten(s.Children())
	if len(flat) != 3 || flat[0] != Widget(first) {
		t.Fatalf("flattened %d children", len(flat))
	}
	b := flat[2]
	if got := b.Position(); got != f32.Pt(15, 0) {
		t.Errorf("spliced child position: got %v", got)
	}

	items.SetValue([]string{"b", "c"})
	layoutTree(s, f32.Pt(100, 100))
	flat = Flatten(s.Children())
	if flat[1] != b {
		t.Error("widget of kept item was rebuilt")
	}
	if built != 3 {
		t.Errorf("built %d widgets, want 3", built)
	}
}

func TestZStackTopmostConsumes(t *testing.T) {
	var bottomClicks, topClicks int
	bottom := Clickable(newBox(50, 50), func(Click) { bottomClicks++ })
	top := Clickable(newBox(50, 50), func(Click) { topClicks++ })
	z := NewZStack(layout.NW, bottom, top)
	layoutTree(z, f32.Pt(100, 100))

	click(z, 10, 10)
	if topClicks != 1 || bottomClicks != 0 {
		t.Errorf("clicks: top %d, bottom %d", topClicks, bottomClicks)
	}
	dispatch(z, pointerEvent(pointer.Move, 10, 10))
	if !bottom.Hovered() || !top.Hovered() {
		t.Error("hover tracking skipped for consumed event")
	}
}

func TestNestedClickable(t *testing.T) {
	var inner, outer int
	in := Clickable(newBox(10, 10), func(Click) { inner++ })
	out := Clickable(Pad(unit.Px(10), in), func(Click) { outer++ })
	layoutTree(out, f32.Pt(100, 100))
	click(out, 15, 15)
	click(out, 2, 2)
	if inner != 1 || outer != 1 {
		t.Errorf("inner %d, outer %d", inner, outer)
	}
}

func TestCaptureInput(t *testing.T) {
	clicks := 0
	active := state.New(true)
	c := &Capture{Active: active, Content: Clickable(newBox(10, 10), func(Click) { clicks++ })}
	layoutTree(c, f32.Pt(100, 100))
	click(c, 5, 5)
	if clicks != 0 {
		t.Error("captured click reached the content")
	}
	active.SetValue(false)
	click(c, 5, 5)
	if clicks != 1 {
		t.Errorf("got %d clicks after release of capture", clicks)
	}
}

func TestDisabled(t *testing.T) {
	clicks := 0
	area := Clickable(newBox(10, 10), func(Click) { clicks++ })
	d := &Disabled{Content: area}
	layoutTree(d, f32.Pt(100, 100))
	click(d, 5, 5)
	dispatch(d, pointerEvent(pointer.Move, 5, 5))
	if clicks != 0 {
		t.Error("disabled area clicked")
	}
	if !area.Hovered() {
		t.Error("disabled area does not track hover")
	}
}

func TestModalPopup(t *testing.T) {
	var under, dismissed int
	open := state.New(true)
	p := &Popup{
		Open:      open,
		Modal:     true,
		Alignment: layout.Center,
		Content:   Clickable(newBox(100, 100), func(Click) { under++ }),
		Overlay:   newBox(20, 20),
		OnDismiss: func() { dismissed++ },
	}
	layoutTree(p, f32.Pt(100, 100))
	click(p, 5, 5)
	if under != 0 || dismissed != 1 {
		t.Errorf("under %d, dismissed %d", under, dismissed)
	}
	open.SetValue(false)
	layoutTree(p, f32.Pt(100, 100))
	click(p, 5, 5)
	if under != 1 {
		t.Errorf("closed popup: under %d", under)
	}
}

func TestModalPopupInsideOverlay(t *testing.T) {
	dismissed := 0
	p := &Popup{
		Open:      state.New(true),
		Modal:     true,
		Alignment: layout.NW,
		Content:   newBox(100, 100),
		Overlay:   newBox(50, 50),
		OnDismiss: func() { dismissed++ },
	}
	layoutTree(p, f32.Pt(100, 100))
	click(p, 10, 10)
	if dismissed != 0 {
		t.Errorf("press inside the overlay dismissed the popup")
	}
	click(p, 80, 80)
	if dismissed != 1 {
		t.Errorf("press outside the overlay: dismissed %d", dismissed)
	}
}

func TestZStackProxyTopmost(t *testing.T) {
	clicks := make(map[string]int)
	items := state.New([]string{"a", "b"})
	fe := NewForEach[string, string](items, func(s string) string { return s }, func(s string) Widget {
		return Clickable(newBox(50, 50), func(Click) { clicks[s]++ })
	})
	z := NewZStack(layout.NW, fe)
	layoutTree(z, f32.Pt(100, 100))
	click(z, 10, 10)
	if clicks["b"] != 1 || clicks["a"] != 0 {
		t.Errorf("clicks: %v, want the last item only", clicks)
	}
}

// consumer consumes every pointer event over it.
type consumer struct {
	box
}

func (c *consumer) HandlePointer(e pointer.Event, ctx *pointer.Context) {
	if ctx.Local(e.Position).In(c.Bounds()) {
		ctx.Consume()
	}
}

func TestConsumedEventClearsHover(t *testing.T) {
	var sibling, ancestor int
	top := &consumer{box: box{size: f32.Pt(100, 100)}}
	under := Clickable(newBox(50, 50), func(Click) { sibling++ })
	outer := Clickable(NewZStack(layout.NW, under, top), func(Click) { ancestor++ })
	layoutTree(outer, f32.Pt(100, 100))

	dispatch(outer, pointerEvent(pointer.Move, 10, 10))
	click(outer, 10, 10)
	if sibling != 0 || ancestor != 0 {
		t.Errorf("consumed click reached handlers: sibling %d, ancestor %d", sibling, ancestor)
	}
	if under.Pressed() || outer.Pressed() {
		t.Error("consumed press left an area pressed")
	}
	if !under.Hovered() || !outer.Hovered() {
		t.Error("hover not tracked for consumed move")
	}
	dispatch(outer, pointerEvent(pointer.Move, 80, 80))
	if under.Hovered() {
		t.Error("consumed move did not clear hover of the sibling")
	}
	if !outer.Hovered() {
		t.Error("ancestor lost hover inside its bounds")
	}
}

func TestTransformHitTest(t *testing.T) {
	clicks := 0
	area := Clickable(newBox(10, 10), func(Click) { clicks++ })
	tr := &Transform{Transform: f32.Affine2D{}.Offset(f32.Pt(50, 0)), Content: area}
	layoutTree(tr, f32.Pt(100, 100))
	click(tr, 5, 5)
	if clicks != 0 {
		t.Error("click at the untransformed position")
	}
	click(tr, 55, 5)
	if clicks != 1 {
		t.Error("click at the transformed position missed")
	}
}

func TestEnvScope(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	s := HStack(unit.Px(0), WithEnv(ForegroundColor, red, newBox(10, 10)), newBox(10, 10))
	gtx := layoutTree(s, f32.Pt(100, 100))
	var ops op.Ops
	ctx := op.NewContext(&ops, gtx.Env)
	Render(s, ctx)
	var styles []color.NRGBA
	for _, p := range ops.Primitives() {
		if ps, ok := p.(op.PushStyle); ok {
			styles = append(styles, ps.Style.Color)
		}
	}
	if len(styles) != 2 || styles[0] != red || styles[1] != ForegroundColor.Default() {
		t.Errorf("styles: %v", styles)
	}
	if d := gtx.Env.Depth(); d != 0 {
		t.Errorf("env depth %d after render", d)
	}
}

func TestUnbalancedRenderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	var ops op.Ops
	ctx := op.NewContext(&ops, nil)
	outer := ctx.PushClip(f32.Rect(0, 0, 1, 1))
	ctx.PushStyle(paint.Color(color.NRGBA{}))
	outer.Pop()
}
