// SPDX-License-Identifier: Unlicense OR MIT

// Package semantic provides accessibility descriptions of widgets.
//
// Widgets describe themselves while a RebuildEvent is dispatched; the
// descriptions form a tree that mirrors the widget tree. Assistive
// technology acts on widgets through ActionEvents.
package semantic

import (
	"fmt"

	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/io/event"
)

// Class is the kind of a described widget.
type Class uint8

const (
	Unknown Class = iota
	Button
	CheckBox
	Editor
	Label
	Image
	Group
	Window
)

// Gestures is a bit-set of supported gestures.
type Gestures uint8

const (
	ClickGesture Gestures = 1 << iota
	ScrollGesture
	FocusGesture
)

// Action is an accessibility action.
type Action uint8

const (
	ActionClick Action = iota
	ActionFocus
	ActionScrollForward
	ActionScrollBackward
)

// Desc describes a widget.
type Desc struct {
	Class       Class
	Description string
	Label       string
	Selected    bool
	Disabled    bool
	Gestures    Gestures
	// Bounds in window coordinates.
	Bounds f32.Rectangle
}

// Node is a described widget.
type Node struct {
	ID       event.Tag
	ParentID event.Tag
	Desc     Desc
	Children []event.Tag
}

// RebuildEvent asks widgets to describe themselves.
type RebuildEvent struct{}

// ActionEvent asks the widget identified by Target to perform
// Action.
type ActionEvent struct {
	Target event.Tag
	Action Action
}

// Tree is the result of a rebuild.
type Tree struct {
	// Roots are the nodes without a described ancestor.
	Roots []event.Tag
	nodes map[event.Tag]*Node
	order []event.Tag
}

// Lookup returns the node of id.
func (t *Tree) Lookup(id event.Tag) (Node, bool) {
	if n, ok := t.nodes[id]; ok {
		return *n, true
	}
	return Node{}, false
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.order)
}

// Nodes returns the nodes in description order.
func (t *Tree) Nodes() []Node {
	nodes := make([]Node, len(t.order))
	for i, id := range t.order {
		nodes[i] = *t.nodes[id]
	}
	return nodes
}

// Context is the context of semantic events.
type Context struct {
	event.Context
	// Handled is set when a widget performed an ActionEvent.
	Handled bool

	tree    *Tree
	parents []event.Tag
}

// NewContext returns a context that collects descriptions in a new
// tree.
func NewContext(c event.Context) *Context {
	return &Context{
		Context: c,
		tree:    &Tree{nodes: make(map[event.Tag]*Node)},
	}
}

// Tree returns the collected descriptions.
func (c *Context) Tree() *Tree {
	return c.tree
}

// Describe records the description of the widget id. Its parent is
// the innermost widget pushed with PushParent. Describing a widget
// twice replaces its description.
func (c *Context) Describe(id event.Tag, d Desc) {
	if n, ok := c.tree.nodes[id]; ok {
		n.Desc = d
		return
	}
	n := &Node{ID: id, Desc: d}
	if len(c.parents) > 0 {
		n.ParentID = c.parents[len(c.parents)-1]
		p := c.tree.nodes[n.ParentID]
		p.Children = append(p.Children, id)
	} else {
		c.tree.Roots = append(c.tree.Roots, id)
	}
	c.tree.nodes[id] = n
	c.tree.order = append(c.tree.order, id)
}

// Described reports whether id was described.
func (c *Context) Described(id event.Tag) bool {
	_, ok := c.tree.nodes[id]
	return ok
}

// PushParent makes the described widget id the parent of subsequent
// descriptions until the returned stack is popped.
func (c *Context) PushParent(id event.Tag) ParentStack {
	if !c.Described(id) {
		panic(fmt.Errorf("semantic: parent %d not described", id))
	}
	c.parents = append(c.parents, id)
	return ParentStack{ctx: c, depth: len(c.parents)}
}

// ParentStack restores the parent of a Context.
type ParentStack struct {
	ctx   *Context
	depth int
}

// Pop restores the previous parent.
func (s ParentStack) Pop() {
	if len(s.ctx.parents) != s.depth {
		panic("semantic: unbalanced Pop of parent")
	}
	s.ctx.parents = s.ctx.parents[:s.depth-1]
}

func (c Class) String() string {
	switch c {
	case Unknown:
		return "Unknown"
	case Button:
		return "Button"
	case CheckBox:
		return "CheckBox"
	case Editor:
		return "Editor"
	case Label:
		return "Label"
	case Image:
		return "Image"
	case Group:
		return "Group"
	case Window:
		return "Window"
	default:
		panic("invalid Class")
	}
}

func (a Action) String() string {
	switch a {
	case ActionClick:
		return "Click"
	case ActionFocus:
		return "Focus"
	case ActionScrollForward:
		return "ScrollForward"
	case ActionScrollBackward:
		return "ScrollBackward"
	default:
		panic("invalid Action")
	}
}

func (RebuildEvent) ImplementsEvent() {}
func (ActionEvent) ImplementsEvent()  {}
