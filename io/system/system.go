// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains window events.
package system

import (
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/unit"
)

// WindowID identifies a window.
type WindowID = event.WindowID

// A ResizeEvent is generated when a window changes size.
type ResizeEvent struct {
	Size f32.Point
}

// A FocusEvent is generated when a window gains or loses the
// keyboard focus of the platform.
type FocusEvent struct {
	Focus bool
}

// A CloseRequestEvent is generated when the user asks to close a
// window. Handlers may veto the close with Context.CancelClose.
type CloseRequestEvent struct{}

// A ScaleEvent is generated when the pixel density of a window
// changes.
type ScaleEvent struct {
	Metric unit.Metric
}

// Context is the context of window events.
type Context struct {
	event.Context
	invalidated   bool
	closeCanceled bool
}

// NewContext returns a context for window events targeting window.
func NewContext(c event.Context) *Context {
	return &Context{Context: c}
}

// Invalidate requests a new frame.
func (c *Context) Invalidate() {
	c.invalidated = true
}

// Invalidated reports whether a handler requested a new frame.
func (c *Context) Invalidated() bool {
	return c.invalidated
}

// CancelClose vetoes the close request being dispatched.
func (c *Context) CancelClose() {
	c.closeCanceled = true
}

// CloseCanceled reports whether a handler vetoed the close request.
func (c *Context) CloseCanceled() bool {
	return c.closeCanceled
}

func (ResizeEvent) ImplementsEvent()       {}
func (FocusEvent) ImplementsEvent()        {}
func (CloseRequestEvent) ImplementsEvent() {}
func (ScaleEvent) ImplementsEvent()        {}
