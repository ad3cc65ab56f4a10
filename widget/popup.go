// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/key"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/state"
)

// Popup shows Overlay above Content while Open is true. Overlay is
// laid out with the Ignore flag semantics: it is offered the full size
// of the popup and aligned within it. While closed, the overlay
// receives no input. A modal popup keeps every pointer and key event
// from Content while open.
type Popup struct {
	Base
	Open      state.ReadState[bool]
	Modal     bool
	Alignment layout.Direction
	Content   Widget
	Overlay   Widget
	// OnDismiss is called for presses outside the overlay of an
	// open modal popup.
	OnDismiss func()
}

func (p *Popup) Sync(e *env.Env) {
	if p.Open != nil {
		p.Open.Sync(e)
	}
}

func (p *Popup) open() bool {
	return p.Open != nil && p.Open.Value()
}

// Children lists the overlay only while open.
func (p *Popup) Children() iter.Seq[Widget] {
	if p.open() {
		return Of(p.Content, p.Overlay)
	}
	return Of(p.Content)
}

func (p *Popup) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	single(&p.Base, p.Content, gtx, requested)
	if p.open() && p.Overlay != nil {
		sz := p.Overlay.CalculateSize(gtx, requested)
		p.Overlay.SetDimension(sz)
	}
	return p.Dimension()
}

func (p *Popup) PositionChildren() {
	place(p.Content, p.Position())
	if p.open() && p.Overlay != nil {
		place(p.Overlay, p.Position().Add(p.Alignment.Position(p.Dimension(), p.Overlay.Dimension())))
	}
}

// ProcessPointer visits the overlay first. An open modal popup
// consumes every event not handled by the overlay.
func (p *Popup) ProcessPointer(e pointer.Event, ctx *pointer.Context) {
	if !p.open() {
		if p.Content != nil {
			ProcessPointer(p.Content, e, ctx)
		}
		return
	}
	if p.Overlay != nil {
		ProcessPointer(p.Overlay, e, ctx)
	}
	if !p.Modal {
		if p.Content != nil {
			ProcessPointer(p.Content, e, ctx)
		}
		return
	}
	if ctx.Consumed {
		return
	}
	ctx.Consume()
	if e.Kind != pointer.Press || p.OnDismiss == nil {
		return
	}
	if p.Overlay != nil && ctx.Local(e.Position).In(bounds(p.Overlay)) {
		return
	}
	p.OnDismiss()
}

// bounds returns the rectangle w occupies.
func bounds(w Widget) f32.Rectangle {
	return f32.Rectangle{Min: w.Position(), Max: w.Position().Add(w.Dimension())}
}

// ProcessKey keeps key events from the content of an open modal
// popup.
func (p *Popup) ProcessKey(e event.Event, ctx *key.Context) {
	if p.open() && p.Overlay != nil {
		ProcessKey(p.Overlay, e, ctx)
	}
	if p.open() && p.Modal {
		if _, ok := e.(key.FocusEvent); !ok {
			return
		}
	}
	if p.Content != nil {
		ProcessKey(p.Content, e, ctx)
	}
}

// Disabled disables the pointer and key handling of its content. The
// content still receives events for bookkeeping such as hover
// tracking.
type Disabled struct {
	Base
	Content Widget
}

func (d *Disabled) ScopeEnv(e *env.Env) func() {
	return env.Push(e, Enabled, false).Pop
}

func (d *Disabled) Children() iter.Seq[Widget] {
	return Of(d.Content)
}

func (d *Disabled) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	defer d.ScopeEnv(gtx.Env)()
	return single(&d.Base, d.Content, gtx, requested)
}

func (d *Disabled) PositionChildren() {
	place(d.Content, d.Position())
}

// Capture keeps pointer, key, semantic and other events from its
// content while Active is true. The content is still laid out and
// rendered, and still receives window events.
type Capture struct {
	Base
	Active  state.ReadState[bool]
	Content Widget
}

func (c *Capture) Sync(e *env.Env) {
	if c.Active != nil {
		c.Active.Sync(e)
	}
}

func (c *Capture) CapturesInput() bool {
	return c.Active != nil && c.Active.Value()
}

func (c *Capture) Children() iter.Seq[Widget] {
	return Of(c.Content)
}

func (c *Capture) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	return single(&c.Base, c.Content, gtx, requested)
}

func (c *Capture) PositionChildren() {
	place(c.Content, c.Position())
}
