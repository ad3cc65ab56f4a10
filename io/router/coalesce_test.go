// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"testing"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/key"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/system"
)

func TestCoalesce(t *testing.T) {
	move := func(x float32) pointer.Event {
		return pointer.Event{Kind: pointer.Move, Position: f32.Pt(x, 0)}
	}
	scroll := func(dy float32) pointer.Event {
		return pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(0, dy)}
	}
	in := []event.Event{
		move(1), move(2), move(3),
		system.ResizeEvent{Size: f32.Pt(1, 1)},
		scroll(1), scroll(2),
		key.Event{Name: "A"},
		move(4),
		pointer.Event{Kind: pointer.Move, PointerID: 1, Position: f32.Pt(5, 0)},
		system.ResizeEvent{Size: f32.Pt(2, 2)},
	}
	got := Coalesce(in)
	want := []event.Event{
		move(3),
		pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(0, 3)},
		key.Event{Name: "A"},
		move(4),
		pointer.Event{Kind: pointer.Move, PointerID: 1, Position: f32.Pt(5, 0)},
		system.ResizeEvent{Size: f32.Pt(2, 2)},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCoalesceKeepsPresses(t *testing.T) {
	press := pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary}
	in := []event.Event{press, press}
	if got := Coalesce(in); len(got) != 2 {
		t.Errorf("presses merged: %v", got)
	}
}
