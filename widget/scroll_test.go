// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"testing"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/unit"
)

func scrollList(n int) (*Stack, []*box) {
	var boxes []*box
	s := VStack(unit.Px(0))
	for i := 0; i < n; i++ {
		b := newBox(20, 10)
		boxes = append(boxes, b)
		s.Append(b)
	}
	return s, boxes
}

func scrollEvent(x, y, dy float32) pointer.Event {
	return pointer.Event{
		Kind:     pointer.Scroll,
		Source:   pointer.Mouse,
		Position: f32.Pt(x, y),
		Scroll:   f32.Pt(0, dy),
	}
}

func TestScroll(t *testing.T) {
	list, boxes := scrollList(10)
	s := VScroll(list)
	layoutTree(s, f32.Pt(50, 30))
	if got := s.Dimension(); got != f32.Pt(20, 30) {
		t.Errorf("viewport %v", got)
	}
	if s.Max() != 70 {
		t.Errorf("max offset %v, want 70", s.Max())
	}
	ctx := dispatch(s, scrollEvent(5, 5, 25))
	if !ctx.Consumed || s.Offset != 25 {
		t.Fatalf("offset %v, consumed %v", s.Offset, ctx.Consumed)
	}
	layoutTree(s, f32.Pt(50, 30))
	if got := boxes[1].Position(); got != f32.Pt(0, -15) {
		t.Errorf("second child at %v", got)
	}
	// Scrolls outside the viewport are ignored.
	dispatch(s, scrollEvent(5, 40, 10))
	if s.Offset != 25 {
		t.Errorf("outside scroll moved the view to %v", s.Offset)
	}
	dispatch(s, scrollEvent(5, 5, 1000))
	if s.Offset != 70 || !s.AtEnd() {
		t.Errorf("offset %v not clamped to the end", s.Offset)
	}
	// At the end further scrolls pass on.
	if ctx := dispatch(s, scrollEvent(5, 5, 10)); ctx.Consumed {
		t.Error("scroll past the end consumed")
	}
}

func TestScrollToEnd(t *testing.T) {
	list, _ := scrollList(10)
	s := VScroll(list)
	s.ScrollToEnd = true
	s.Offset = 1000
	layoutTree(s, f32.Pt(50, 30))
	if s.Offset != 70 {
		t.Fatalf("offset %v", s.Offset)
	}
	list.Append(newBox(20, 10))
	layoutTree(s, f32.Pt(50, 30))
	if s.Offset != 80 {
		t.Errorf("offset %v did not follow the end", s.Offset)
	}
}

func TestScrollTouchDrag(t *testing.T) {
	list, _ := scrollList(10)
	s := VScroll(list)
	layoutTree(s, f32.Pt(50, 30))
	touch := func(kind pointer.Kind, y float32) pointer.Event {
		return pointer.Event{Kind: kind, Source: pointer.Touch, Position: f32.Pt(5, y)}
	}
	dispatch(s, touch(pointer.Press, 25), touch(pointer.Drag, 5), touch(pointer.Release, 5))
	if s.Offset != 20 {
		t.Errorf("offset %v after dragging up 20px", s.Offset)
	}
	// Mouse presses do not drag.
	dispatch(s, pointerEvent(pointer.Press, 5, 5), pointerEvent(pointer.Drag, 5, 25))
	if s.Offset != 20 {
		t.Errorf("mouse drag moved the view to %v", s.Offset)
	}
}

func TestScrollSemantic(t *testing.T) {
	list, _ := scrollList(10)
	s := VScroll(list)
	layoutTree(s, f32.Pt(50, 30))
	ctx := semantic.NewContext(event.NewContext(0, nil, nil))
	ProcessSemantic(s, semantic.ActionEvent{Target: s.ID(), Action: semantic.ActionScrollForward}, ctx)
	if !ctx.Handled || s.Offset != 30 {
		t.Errorf("forward: offset %v, handled %v", s.Offset, ctx.Handled)
	}
	ctx = semantic.NewContext(event.NewContext(0, nil, nil))
	ProcessSemantic(s, semantic.ActionEvent{Target: s.ID(), Action: semantic.ActionScrollBackward}, ctx)
	ctx = semantic.NewContext(event.NewContext(0, nil, nil))
	ProcessSemantic(s, semantic.ActionEvent{Target: s.ID(), Action: semantic.ActionScrollBackward}, ctx)
	if ctx.Handled || s.Offset != 0 {
		t.Errorf("backward past the start: offset %v, handled %v", s.Offset, ctx.Handled)
	}
}
