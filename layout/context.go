// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"image"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/text"
	"github.com/loomkit/loom/unit"
)

// Context carries the services needed by a layout pass. A Context is
// created for every pass and not kept afterwards.
type Context struct {
	// Env is the environment of the widget being laid out.
	Env *env.Env
	// Metric converts device independent units to pixels.
	Metric unit.Metric
	// Text measures text.
	Text TextMeasurer
	// Images reports image dimensions.
	Images ImageSource
}

// TextMeasurer shapes and measures text.
type TextMeasurer interface {
	// Layout shapes str. The returned layout carries a stable
	// identity for as long as str and params are unchanged.
	Layout(str string, params text.Parameters) (*text.Layout, error)
}

// ImageSource knows the natural size of images. Querying the size of
// an image makes it resident in the backend texture cache.
type ImageSource interface {
	ImageSize(id paint.ImageID) (image.Point, error)
}

// NewContext returns a context with an empty environment.
func NewContext(m unit.Metric, txt TextMeasurer, images ImageSource) *Context {
	return &Context{
		Env:    env.New(),
		Metric: m,
		Text:   txt,
		Images: images,
	}
}

// Dp converts v to pixels.
func (c *Context) Dp(v float32) float32 {
	return c.Metric.Dp(v)
}

// Sp converts v to pixels.
func (c *Context) Sp(v float32) float32 {
	return c.Metric.Sp(v)
}

// PushMetric replaces the metric for a scaled subtree until the
// returned stack is popped.
func (c *Context) PushMetric(m unit.Metric) MetricStack {
	s := MetricStack{ctx: c, prev: c.Metric}
	c.Metric = m
	return s
}

// MetricStack restores a Context metric.
type MetricStack struct {
	ctx  *Context
	prev unit.Metric
}

// Pop restores the metric that was current before the push.
func (s MetricStack) Pop() {
	s.ctx.Metric = s.prev
}
