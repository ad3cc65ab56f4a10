// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/system"
)

// Coalesce merges redundant events of a batch. Runs of moves or drags
// of the same pointer with the same buttons collapse to the last one,
// runs of scrolls of the same pointer sum their distances, and only
// the last resize of the batch is kept. The order of the remaining
// events is preserved.
func Coalesce(evs []event.Event) []event.Event {
	lastResize := -1
	for i, e := range evs {
		if _, ok := e.(system.ResizeEvent); ok {
			lastResize = i
		}
	}
	out := make([]event.Event, 0, len(evs))
	for i, e := range evs {
		if _, ok := e.(system.ResizeEvent); ok && i != lastResize {
			continue
		}
		pe, ok := e.(pointer.Event)
		if !ok || len(out) == 0 {
			out = append(out, e)
			continue
		}
		prev, ok := out[len(out)-1].(pointer.Event)
		if !ok || prev.PointerID != pe.PointerID || prev.Kind != pe.Kind {
			out = append(out, e)
			continue
		}
		switch pe.Kind {
		case pointer.Move, pointer.Drag:
			if prev.Buttons == pe.Buttons && prev.Modifiers == pe.Modifiers {
				out[len(out)-1] = pe
				continue
			}
		case pointer.Scroll:
			if prev.Modifiers == pe.Modifiers {
				pe.Scroll = pe.Scroll.Add(prev.Scroll)
				out[len(out)-1] = pe
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
