// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types for event handling.
package event

import (
	"github.com/loomkit/loom/env"
)

// Tag is the stable identifier of a widget. The zero Tag identifies
// nothing.
type Tag uint64

// WindowID identifies a window. Events carry the id of the window
// they target.
type WindowID uint64

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}

// Command is the marker interface for requests from event handlers
// to the router.
type Command interface {
	ImplementsCommand()
}

// Queue collects the commands executed during a dispatch.
type Queue struct {
	cmds []Command
}

// Execute appends cmd to the queue.
func (q *Queue) Execute(cmd Command) {
	q.cmds = append(q.cmds, cmd)
}

// Drain returns the queued commands and empties the queue.
func (q *Queue) Drain() []Command {
	cmds := q.cmds
	q.cmds = nil
	return cmds
}

// Context is the context of events without a dedicated context kind.
// The contexts of the other kinds embed it.
type Context struct {
	// Window is the window targeted by the event.
	Window WindowID
	// Env is the environment of the widget receiving the event.
	Env   *env.Env
	queue *Queue
}

// NewContext returns a context targeting window. Commands are
// collected in q; a nil q drops them.
func NewContext(window WindowID, e *env.Env, q *Queue) Context {
	if e == nil {
		e = env.New()
	}
	return Context{Window: window, Env: e, queue: q}
}

// Execute requests cmd from the router.
func (c *Context) Execute(cmd Command) {
	if c.queue != nil {
		c.queue.Execute(cmd)
	}
}
