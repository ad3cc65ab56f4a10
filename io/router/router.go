// SPDX-License-Identifier: Unlicense OR MIT

/*
Package router delivers input events to a widget tree.

A Router owns the dispatch state of one window: the keyboard focus and
the command queue widgets use to ask for focus changes. Every event is
delivered by broadcast in declaration order through the traversal
functions of package widget, with a fresh context of the event's kind.

Commands executed by widgets during a dispatch run after the traversal
completes, so a widget never observes a focus change in the middle of
an event.
*/
package router

import (
	"fmt"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/internal/logger"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/key"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/io/system"
	"github.com/loomkit/loom/widget"
)

// maxCommandRounds bounds the command rounds of a single dispatch.
// Focus events may make widgets execute further commands.
const maxCommandRounds = 8

// Router routes events to the widgets of a window.
type Router struct {
	window event.WindowID
	root   widget.Widget
	env    *env.Env
	focus  event.Tag
	queue  event.Queue
}

// Result summarizes the effects of a dispatch.
type Result struct {
	// Consumed reports whether a widget consumed a pointer or key
	// event.
	Consumed bool
	// Invalidated reports whether a widget asked for a new frame.
	Invalidated bool
	// CloseCanceled reports whether a widget vetoed a close request.
	CloseCanceled bool
}

// New returns a router for the tree root of window. A nil e is
// replaced by an empty environment.
func New(window event.WindowID, root widget.Widget, e *env.Env) *Router {
	if e == nil {
		e = env.New()
	}
	return &Router{window: window, root: root, env: e}
}

// SetRoot replaces the widget tree. The focus is kept if the focused
// widget is part of the new tree.
func (r *Router) SetRoot(root widget.Widget) {
	r.root = root
	if r.focus != 0 {
		if _, ok := widget.Find(root, r.focus); !ok {
			r.focus = 0
		}
	}
}

// Root returns the widget tree.
func (r *Router) Root() widget.Widget {
	return r.root
}

// Env returns the root environment of dispatches.
func (r *Router) Env() *env.Env {
	return r.env
}

// Window returns the identity of the routed window.
func (r *Router) Window() event.WindowID {
	return r.window
}

func (r *Router) context() event.Context {
	return event.NewContext(r.window, r.env, &r.queue)
}

// Dispatch delivers e to the tree and runs the commands executed by
// the widgets.
func (r *Router) Dispatch(e event.Event) Result {
	var res Result
	if r.root == nil {
		return res
	}
	logger.Get().Debug("router: dispatch", "window", r.window, "event", fmt.Sprintf("%T", e))
	switch e := e.(type) {
	case pointer.Event:
		ctx := pointer.NewContext(r.context())
		widget.ProcessPointer(r.root, e, ctx)
		res.Consumed = ctx.Consumed
		res.Invalidated = true
	case key.Event:
		ctx := key.NewContext(r.context(), r.focus)
		widget.ProcessKey(r.root, e, ctx)
		res.Consumed = ctx.Consumed
		res.Invalidated = true
		if !ctx.Consumed && e.State == key.Press && e.Name == key.NameTab {
			switch e.Modifiers {
			case 0:
				r.FocusNext()
			case key.ModShift:
				r.FocusPrevious()
			}
		}
	case key.EditEvent, key.FocusEvent:
		ctx := key.NewContext(r.context(), r.focus)
		widget.ProcessKey(r.root, e, ctx)
		res.Consumed = ctx.Consumed
		res.Invalidated = true
	case system.ResizeEvent, system.FocusEvent, system.CloseRequestEvent, system.ScaleEvent:
		ctx := system.NewContext(r.context())
		widget.ProcessWindow(r.root, e, ctx)
		res.Invalidated = ctx.Invalidated()
		res.CloseCanceled = ctx.CloseCanceled()
	case semantic.ActionEvent, semantic.RebuildEvent:
		ctx := semantic.NewContext(r.context())
		widget.ProcessSemantic(r.root, e, ctx)
		res.Invalidated = ctx.Handled
	default:
		ctx := r.context()
		widget.ProcessOther(r.root, e, &ctx)
	}
	if r.runCommands() {
		res.Invalidated = true
	}
	return res
}

// Semantics describes the tree for accessibility services.
func (r *Router) Semantics() *semantic.Tree {
	ctx := semantic.NewContext(r.context())
	if r.root != nil {
		widget.ProcessSemantic(r.root, semantic.RebuildEvent{}, ctx)
	}
	return ctx.Tree()
}

// runCommands executes the queued commands and reports whether any
// of them had an effect.
func (r *Router) runCommands() bool {
	changed := false
	for i := 0; i < maxCommandRounds; i++ {
		cmds := r.queue.Drain()
		if len(cmds) == 0 {
			return changed
		}
		for _, c := range cmds {
			switch c := c.(type) {
			case key.FocusCmd:
				if r.RequestFocus(c.Tag) {
					changed = true
				}
			default:
				logger.Get().Debug("router: unknown command", "command", fmt.Sprintf("%T", c))
			}
		}
	}
	logger.Get().Warn("router: command rounds exhausted", "window", r.window)
	r.queue.Drain()
	return changed
}
