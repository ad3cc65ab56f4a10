// SPDX-License-Identifier: Unlicense OR MIT

/*

Package op implements the render context and the draw primitives it
produces.

Widgets do not draw to a surface. They call methods on a Context, which
turns every call into a Primitive delivered to a Sink. A backend is a
Sink: it keeps its own style, transform, clip, stencil, layer and filter
stacks that mirror the Push and Pop primitives one to one.

Every Push returns a Stack that must be popped on every exit path. The
usual idiom is a deferred call:

	defer ctx.PushTransform(f32.Affine2D{}.Offset(pos)).Pop()

Popping out of order panics.

An Ops list is a Sink that records primitives, for replaying into a
backend later or on another goroutine.

*/
package op

import (
	"fmt"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/op/paint"
)

// Sink receives primitives.
type Sink interface {
	Add(p Primitive)
}

// Context is the render context of a single frame.
type Context struct {
	// Env is the environment of the widget being rendered.
	Env *env.Env

	sink       Sink
	stack      []Kind
	transforms []f32.Affine2D
	transform  f32.Affine2D
}

// Stack is an active push. Pop emits the matching pop primitive.
type Stack struct {
	ctx   *Context
	kind  Kind
	depth int
}

// NewContext returns a context delivering primitives to sink.
func NewContext(sink Sink, e *env.Env) *Context {
	if e == nil {
		e = env.New()
	}
	return &Context{Env: e, sink: sink}
}

// PushStyle sets the fill style of subsequent geometry.
func (c *Context) PushStyle(s paint.Style) Stack {
	return c.push(PushStyle{Style: s})
}

// PushTransform applies t to subsequent primitives, on top of the
// current transform.
func (c *Context) PushTransform(t f32.Affine2D) Stack {
	c.transforms = append(c.transforms, c.transform)
	c.transform = c.transform.Mul(t)
	return c.push(PushTransform{Transform: t})
}

// PushClip intersects the clip with r, in local coordinates.
func (c *Context) PushClip(r f32.Rectangle) Stack {
	return c.push(PushClip{Rect: r})
}

// PushStencil intersects the clip with the area covered by the
// triangles, in local coordinates.
func (c *Context) PushStencil(tris []f32.Triangle) Stack {
	return c.push(PushStencil{Triangles: tris})
}

// PushLayer starts an offscreen layer composited with opacity when
// popped.
func (c *Context) PushLayer(opacity float32) Stack {
	return c.push(PushLayer{Opacity: opacity})
}

// PushFilter applies f to everything drawn until the stack is popped.
func (c *Context) PushFilter(f Filter) Stack {
	return c.push(PushFilter{Filter: f})
}

// Geometry draws triangles in local coordinates with the current style.
func (c *Context) Geometry(tris []f32.Triangle) {
	if len(tris) == 0 {
		return
	}
	c.sink.Add(Geometry{Triangles: tris})
}

// Fill draws triangles with style s.
func (c *Context) Fill(s paint.Style, tris []f32.Triangle) {
	defer c.PushStyle(s).Pop()
	c.Geometry(tris)
}

// Text draws the shaped text run identified by id with its top left
// corner at origin.
func (c *Context) Text(run TextRun, origin f32.Point) {
	c.sink.Add(Text{Run: run, Origin: origin})
}

// Image draws the src part of image id into dst. A zero src means the
// whole image.
func (c *Context) Image(id paint.ImageID, dst, src f32.Rectangle) {
	c.sink.Add(Image{ID: id, Dst: dst, Src: src})
}

// Transform returns the accumulated transform from local to frame
// coordinates.
func (c *Context) Transform() f32.Affine2D {
	return c.transform
}

// Depth returns the number of active pushes.
func (c *Context) Depth() int {
	return len(c.stack)
}

func (c *Context) push(p Primitive) Stack {
	k := p.Kind()
	c.stack = append(c.stack, k)
	c.sink.Add(p)
	return Stack{ctx: c, kind: k, depth: len(c.stack)}
}

// Pop ends the push.
func (s Stack) Pop() {
	c := s.ctx
	if len(c.stack) != s.depth || c.stack[s.depth-1] != s.kind {
		panic(fmt.Sprintf("op: unbalanced Pop of %v at depth %d", s.kind, len(c.stack)))
	}
	c.stack = c.stack[:s.depth-1]
	if s.kind == KindPushTransform {
		n := len(c.transforms) - 1
		c.transform = c.transforms[n]
		c.transforms = c.transforms[:n]
	}
	c.sink.Add(Pop{Of: s.kind})
}
