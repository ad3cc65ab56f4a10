// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"testing"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/key"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/io/system"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/unit"
	"github.com/loomkit/loom/widget"
)

type box struct {
	widget.Base
}

func (b *box) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	b.SetDimension(f32.Pt(10, 10))
	return b.Dimension()
}

func focusTree() (*widget.Stack, []*widget.FocusArea) {
	areas := []*widget.FocusArea{
		widget.NewFocusArea(new(box)),
		widget.NewFocusArea(new(box)),
		widget.NewFocusArea(new(box)),
	}
	root := widget.VStack(unit.Px(0), areas[0], new(box), areas[1], areas[2])
	gtx := layout.NewContext(unit.Metric{}, nil, nil)
	widget.Layout(root, gtx, f32.Point{}, f32.Pt(100, 100))
	return root, areas
}

func TestFocusTraversal(t *testing.T) {
	root, areas := focusTree()
	r := New(1, root, nil)
	tab := key.Event{Name: key.NameTab, State: key.Press}
	for _, want := range []int{0, 1, 2, 0} {
		r.Dispatch(tab)
		if r.Focus() != areas[want].ID() {
			t.Fatalf("focus %d, want area %d", r.Focus(), want)
		}
	}
	if !areas[0].Focused() || areas[2].Focused() {
		t.Error("focus events not delivered")
	}
	r.Dispatch(key.Event{Name: key.NameTab, State: key.Press, Modifiers: key.ModShift})
	if r.Focus() != areas[2].ID() {
		t.Errorf("previous wraps to %d", r.Focus())
	}
}

func TestRequestFocus(t *testing.T) {
	root, areas := focusTree()
	r := New(1, root, nil)
	if !r.RequestFocus(areas[1].ID()) || r.Focus() != areas[1].ID() {
		t.Fatal("request failed")
	}
	if r.RequestFocus(areas[1].ID()) {
		t.Error("refocusing the focused widget reported a change")
	}
	if r.RequestFocus(999999) {
		t.Error("unknown target accepted")
	}
	if r.Focus() != areas[1].ID() {
		t.Error("unknown target changed the focus")
	}
	if !r.ClearFocus() || areas[1].Focused() {
		t.Error("focus not cleared")
	}
}

func TestFocusCommand(t *testing.T) {
	root, areas := focusTree()
	r := New(1, root, nil)
	pos := areas[1].Bounds().Min.Add(f32.Pt(1, 1))
	res := r.Dispatch(pointer.Event{
		Kind:     pointer.Press,
		Source:   pointer.Mouse,
		Buttons:  pointer.ButtonPrimary,
		Position: pos,
	})
	if r.Focus() != areas[1].ID() || !areas[1].Focused() {
		t.Errorf("press focused %d", r.Focus())
	}
	if !res.Invalidated {
		t.Error("focus change did not invalidate")
	}
}

func TestConsumedTabKeepsFocus(t *testing.T) {
	fa := widget.NewFocusArea(new(box))
	fa.OnKey = func(e key.Event) bool { return true }
	other := widget.NewFocusArea(new(box))
	root := widget.HStack(unit.Px(0), fa, other)
	r := New(0, root, nil)
	r.RequestFocus(fa.ID())
	res := r.Dispatch(key.Event{Name: key.NameTab, State: key.Press})
	if !res.Consumed || r.Focus() != fa.ID() {
		t.Error("consumed tab moved the focus")
	}
}

func TestCapturedFocusables(t *testing.T) {
	inner := widget.NewFocusArea(new(box))
	active := state.New(true)
	root := widget.VStack(unit.Px(0), &widget.Capture{Active: active, Content: inner})
	r := New(0, root, nil)
	if n := len(r.Focusables()); n != 0 {
		t.Errorf("%d focusables below a capture", n)
	}
	active.SetValue(false)
	if n := len(r.Focusables()); n != 1 {
		t.Errorf("%d focusables", n)
	}
}

func TestWindowEvents(t *testing.T) {
	size := state.New(f32.Point{})
	w := widget.NewWindow(3, "main", new(box))
	w.Size = size
	w.OnCloseRequest = func() bool { return false }
	r := New(3, w, nil)
	if res := r.Dispatch(system.ResizeEvent{Size: f32.Pt(10, 20)}); !res.Invalidated {
		t.Error("resize not invalidated")
	}
	if size.Value() != f32.Pt(10, 20) {
		t.Error("size not updated")
	}
	if res := r.Dispatch(system.CloseRequestEvent{}); !res.CloseCanceled {
		t.Error("close not vetoed")
	}

	other := New(4, w, nil)
	other.Dispatch(system.ResizeEvent{Size: f32.Pt(1, 1)})
	if size.Value() != f32.Pt(10, 20) {
		t.Error("window resized by an event for another window")
	}
}

func TestSemantics(t *testing.T) {
	root := widget.VStack(unit.Px(0), widget.Label("a"), widget.Clickable(widget.Label("b"), nil))
	r := New(0, root, nil)
	if n := r.Semantics().Len(); n != 3 {
		t.Errorf("%d semantic nodes", n)
	}
}

type custom struct{}

func (custom) ImplementsEvent() {}

type otherHandler struct {
	box
	got int
}

func (o *otherHandler) HandleOther(e event.Event, ctx *event.Context) {
	if _, ok := e.(custom); ok {
		o.got++
	}
}

func TestOtherEvents(t *testing.T) {
	h := new(otherHandler)
	r := New(0, widget.VStack(unit.Px(0), h), nil)
	r.Dispatch(custom{})
	if h.got != 1 {
		t.Errorf("got %d", h.got)
	}
}

func TestSemanticAction(t *testing.T) {
	fa := widget.NewFocusArea(new(box))
	r := New(0, fa, nil)
	r.Dispatch(semantic.ActionEvent{Target: fa.ID(), Action: semantic.ActionFocus})
	if r.Focus() != fa.ID() {
		t.Error("focus action ignored")
	}
}
