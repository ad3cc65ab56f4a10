// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements common pointer gestures.

Gestures accept low level pointer Events delivered to a widget and
detect higher level actions such as clicks, drags and scrolling. The
widget decides whether the event hit it and whether the event was
already consumed by a sibling; gestures only track state.
*/
package gesture

import (
	"time"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/key"
	"github.com/loomkit/loom/io/pointer"
)

// The duration is somewhat arbitrary.
const doubleClickDuration = 200 * time.Millisecond

// Click detects click gestures in the form
// of ClickEvents.
type Click struct {
	// clickedAt is the timestamp of the last click.
	clickedAt time.Duration
	// clicks is incremented for clicks within doubleClickDuration.
	clicks int
	// state tracks the gesture state.
	state   ClickState
	hovered bool
	pid     pointer.ID
}

type ClickState uint8

// ClickEvent represent a click action, either a
// TypePress for the beginning of a click or a
// TypeClick for a completed click.
type ClickEvent struct {
	Type      ClickType
	Position  f32.Point
	Source    pointer.Source
	Modifiers key.Modifiers
	// NumClicks records successive clicks occurring
	// within a short duration of each other.
	NumClicks int
}

type ClickType uint8

// Drag detects drag gestures in the form of pointer.Drag events.
type Drag struct {
	dragging bool
	pid      pointer.ID
	start    f32.Point
}

// Scroll reduces scroll events to distances along an axis.
type Scroll struct {
	// Leftover scroll.
	scroll float32
}

type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

const (
	// StateNormal is the default click state.
	StateNormal ClickState = iota
	// StatePressed is then a pointer is pressed.
	StatePressed
)

const (
	// TypePress is reported for the first pointer
	// press.
	TypePress ClickType = iota
	// TypeClick is reported when a click action
	// is complete.
	TypeClick
	// TypeCancel is reported when the gesture is
	// cancelled.
	TypeCancel
)

// State reports the click state.
func (c *Click) State() ClickState {
	return c.state
}

// Hovered reports whether a pointer is inside the area.
func (c *Click) Hovered() bool {
	return c.hovered
}

// Pressed reports whether a pointer is pressing.
func (c *Click) Pressed() bool {
	return c.state == StatePressed
}

// Update processes e. hit reports whether e is inside the area and
// active whether the widget may act on it, that is the event was not
// consumed. Hover tracking runs regardless of active.
func (c *Click) Update(e pointer.Event, hit, active bool) (ClickEvent, bool) {
	switch e.Kind {
	case pointer.Move, pointer.Drag, pointer.Enter:
		c.hovered = hit
	case pointer.Leave:
		c.hovered = false
	}
	if !active {
		if c.state == StatePressed && e.Kind == pointer.Press {
			// Another widget took the press.
			c.state = StateNormal
		}
		return ClickEvent{}, false
	}
	switch e.Kind {
	case pointer.Release:
		if c.state != StatePressed || e.PointerID != c.pid {
			break
		}
		c.state = StateNormal
		if !hit {
			return ClickEvent{Type: TypeCancel}, true
		}
		if e.Time-c.clickedAt < doubleClickDuration {
			c.clicks++
		} else {
			c.clicks = 1
		}
		c.clickedAt = e.Time
		return ClickEvent{Type: TypeClick, Position: e.Position, Source: e.Source, Modifiers: e.Modifiers, NumClicks: c.clicks}, true
	case pointer.Cancel:
		wasPressed := c.state == StatePressed
		c.state = StateNormal
		if wasPressed {
			return ClickEvent{Type: TypeCancel}, true
		}
	case pointer.Press:
		c.hovered = hit
		if c.state == StatePressed || !hit {
			break
		}
		if e.Source == pointer.Mouse && !e.Buttons.Contain(pointer.ButtonPrimary) {
			break
		}
		c.state = StatePressed
		c.pid = e.PointerID
		return ClickEvent{Type: TypePress, Position: e.Position, Source: e.Source, Modifiers: e.Modifiers}, true
	}
	return ClickEvent{}, false
}

// Dragging reports whether a drag is in progress.
func (d *Drag) Dragging() bool {
	return d.dragging
}

// Start returns the position of the press that started the drag.
func (d *Drag) Start() f32.Point {
	return d.start
}

// Update processes e and reports the events relevant to the drag:
// Press to start, Drag while moving, Release or Cancel to end.
func (d *Drag) Update(e pointer.Event, hit, active bool) (pointer.Event, bool) {
	switch e.Kind {
	case pointer.Press:
		if !active || !hit || d.dragging {
			break
		}
		if e.Source == pointer.Mouse && !e.Buttons.Contain(pointer.ButtonPrimary) {
			break
		}
		d.dragging = true
		d.pid = e.PointerID
		d.start = e.Position
		return e, true
	case pointer.Drag, pointer.Move:
		if !d.dragging || e.PointerID != d.pid {
			break
		}
		e.Kind = pointer.Drag
		return e, true
	case pointer.Release, pointer.Cancel:
		if !d.dragging || e.PointerID != d.pid {
			break
		}
		d.dragging = false
		return e, true
	}
	return pointer.Event{}, false
}

// Update accumulates the scroll of e along axis and returns the whole
// pixels scrolled.
func (s *Scroll) Update(e pointer.Event, axis Axis) int {
	if e.Kind != pointer.Scroll {
		return 0
	}
	switch axis {
	case Horizontal:
		s.scroll += e.Scroll.X
	case Vertical:
		s.scroll += e.Scroll.Y
	}
	iscroll := int(s.scroll)
	s.scroll -= float32(iscroll)
	return iscroll
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("invalid Axis")
	}
}

func (ct ClickType) String() string {
	switch ct {
	case TypePress:
		return "TypePress"
	case TypeClick:
		return "TypeClick"
	case TypeCancel:
		return "TypeCancel"
	default:
		panic("invalid ClickType")
	}
}

func (cs ClickState) String() string {
	switch cs {
	case StateNormal:
		return "StateNormal"
	case StatePressed:
		return "StatePressed"
	default:
		panic("invalid ClickState")
	}
}
