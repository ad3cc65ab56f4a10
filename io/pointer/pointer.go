// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer implements pointer events.
package pointer

import (
	"strings"
	"time"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/key"
)

// Event is a pointer event.
type Event struct {
	Kind   Kind
	Source Source
	// PointerID is the id for the pointer and can be used
	// to track a particular pointer from Press to
	// Release or Cancel.
	PointerID ID
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
	// Buttons are the set of pressed mouse buttons for this event.
	Buttons Buttons
	// Position is the coordinates of the event in window coordinates.
	// Use Context.Local to convert it to the coordinates of the
	// receiving widget.
	Position f32.Point
	// Scroll is the scroll amount, if any.
	Scroll f32.Point
	// Modifiers is the set of active modifiers when
	// the mouse button was pressed.
	Modifiers key.Modifiers
}

type ID uint16

// Kind of an Event.
type Kind uint

// Source of an Event.
type Source uint8

// Buttons is a set of mouse buttons
type Buttons uint8

// Context is the context of pointer events. It tracks the transform
// from the coordinates of the visited widget to window coordinates.
type Context struct {
	event.Context
	// Consumed is set once a widget handled the event. Widgets check
	// it before side effects; hover tracking ignores it.
	Consumed bool

	transform f32.Affine2D
	depth     int
}

// NewContext returns a pointer context with the identity transform.
func NewContext(c event.Context) *Context {
	return &Context{Context: c}
}

// Consume marks the event as handled.
func (c *Context) Consume() {
	c.Consumed = true
}

// Transform returns the transform from local to window coordinates.
func (c *Context) Transform() f32.Affine2D {
	return c.transform
}

// Local converts p from window coordinates to local coordinates.
func (c *Context) Local(p f32.Point) f32.Point {
	return c.transform.Invert().Transform(p)
}

// PushTransform prepends t to the transform until the returned stack
// is popped. Containers push the offset of a child before visiting
// it.
func (c *Context) PushTransform(t f32.Affine2D) TransformStack {
	s := TransformStack{ctx: c, prev: c.transform, depth: c.depth}
	c.transform = c.transform.Mul(t)
	c.depth++
	return s
}

// TransformStack restores a transform of a Context.
type TransformStack struct {
	ctx   *Context
	prev  f32.Affine2D
	depth int
}

// Pop restores the transform that was current before the push.
func (s TransformStack) Pop() {
	if s.ctx.depth != s.depth+1 {
		panic("pointer: unbalanced Pop of transform")
	}
	s.ctx.transform = s.prev
	s.ctx.depth--
}

const (
	// A Cancel event is generated when the current gesture is
	// interrupted by other handlers or the system.
	Cancel Kind = 1 << iota
	// Press of a pointer.
	Press
	// Release of a pointer.
	Release
	// Move of a pointer.
	Move
	// Drag of a pointer.
	Drag
	// Pointer enters an area watching for pointer input
	Enter
	// Pointer leaves an area watching for pointer input
	Leave
	// Scroll of a pointer.
	Scroll
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
)

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

func (t Kind) String() string {
	if t == Cancel {
		return "Cancel"
	}
	var buf strings.Builder
	for tt := Kind(1); tt > 0; tt <<= 1 {
		if t&tt > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((t & tt).string())
		}
	}
	return buf.String()
}

func (t Kind) string() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	case Drag:
		return "Drag"
	case Enter:
		return "Enter"
	case Leave:
		return "Leave"
	case Scroll:
		return "Scroll"
	default:
		panic("unknown Type")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("unknown source")
	}
}

// Contain reports whether the set b contains
// all of the buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	return strings.Join(strs, "|")
}

func (Event) ImplementsEvent() {}
