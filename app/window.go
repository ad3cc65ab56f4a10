// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/loomkit/loom/atlas"
	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/internal/logger"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/router"
	"github.com/loomkit/loom/io/system"
	"github.com/loomkit/loom/layout"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/text"
	"github.com/loomkit/loom/widget"
)

// Window binds a widget tree to the services of its frames. A Window
// is not safe for concurrent use; Run confines it to one goroutine.
type Window struct {
	cfg    Config
	root   *widget.Window
	env    *env.Env
	router *router.Router
	shaper *text.Shaper
	images *paint.Registry
	raster *text.Rasterizer
	size   *state.Cell[f32.Point]
	frames uint64
}

// Frame is the output of one frame. A Frame does not change once
// returned and may be presented by another goroutine while the window
// goes on producing frames.
type Frame struct {
	// Seq numbers the frames of a window from 1.
	Seq uint64
	// Size is the window size in pixels.
	Size f32.Point
	Ops  *op.Ops
	// Glyphs locates the glyphs of the text runs of Ops in a
	// snapshot of the glyph atlas.
	Glyphs *text.GlyphSet
	// Images holds the images referenced by Ops. It is safe for
	// concurrent use.
	Images *paint.Registry
}

// Update summarizes the effects of a batch of events.
type Update struct {
	// Invalidated reports whether a new frame is needed.
	Invalidated bool
	// Closed reports an uncanceled close request.
	Closed bool
}

var lastWindowID atomic.Uint64

// NewWindow returns a window showing content.
func NewWindow(cfg Config, content widget.Widget, options ...Option) *Window {
	for _, o := range options {
		o(&cfg)
	}
	m := cfg.Metric()
	id := event.WindowID(lastWindowID.Add(1))
	w := &Window{
		cfg:    cfg,
		env:    env.New(),
		shaper: text.NewShaper(text.GoFonts()),
		images: paint.NewRegistry(cfg.Uploader),
		size:   state.New(f32.Pt(m.Dp(cfg.Window.Width), m.Dp(cfg.Window.Height))),
	}
	w.raster = text.NewRasterizer(w.shaper.Collection(), atlas.New(cfg.Atlas.Width, cfg.Atlas.Height, cfg.Atlas.MaxHeight))
	w.root = widget.NewWindow(id, cfg.Window.Title, content)
	w.root.Size = w.size
	w.router = router.New(id, w.root, w.env)
	return w
}

// ID returns the identity of the window.
func (w *Window) ID() event.WindowID {
	return w.root.Window
}

// Config returns the configuration of the window, options applied.
func (w *Window) Config() Config {
	return w.cfg
}

// Root returns the root widget of the window.
func (w *Window) Root() *widget.Window {
	return w.root
}

// Env returns the root environment of the window.
func (w *Window) Env() *env.Env {
	return w.env
}

// Router returns the event router of the window.
func (w *Window) Router() *router.Router {
	return w.router
}

// Shaper returns the text shaper used for layout.
func (w *Window) Shaper() *text.Shaper {
	return w.shaper
}

// Images returns the image registry of the window.
func (w *Window) Images() *paint.Registry {
	return w.images
}

// Atlas returns the glyph atlas.
func (w *Window) Atlas() *atlas.Atlas {
	return w.raster.Atlas()
}

// Rasterizer returns the glyph rasterizer feeding the atlas.
func (w *Window) Rasterizer() *text.Rasterizer {
	return w.raster
}

// Size returns the window size in pixels.
func (w *Window) Size() f32.Point {
	return w.size.Value()
}

// Frame runs the sync, layout, position and render passes and packs
// the glyphs of the rendered text into the atlas. Glyphs that did not
// fit are logged; the frame is still returned.
func (w *Window) Frame() (Frame, error) {
	widget.Sync(w.root, w.env)

	gtx := layout.NewContext(w.cfg.Metric(), w.shaper, w.images)
	gtx.Env = w.env
	size := w.size.Value()
	widget.Layout(w.root, gtx, f32.Point{}, size)

	ops := new(op.Ops)
	widget.Render(w.root, op.NewContext(ops, w.env))
	if err := ops.Check(); err != nil {
		return Frame{}, fmt.Errorf("app: render: %w", err)
	}
	layouts, err := w.prepareText(ops)
	if err != nil {
		if !errors.Is(err, atlas.ErrFull) && !errors.Is(err, atlas.ErrTooLarge) {
			return Frame{}, err
		}
		logger.Get().Warn("glyphs dropped", "window", w.ID(), "err", err)
	}
	w.frames++
	logger.Get().Debug("frame",
		"window", w.ID(),
		"seq", w.frames,
		"size", size,
		"ops", ops.Len(),
		"glyphs", w.raster.Atlas().Len(),
	)
	return Frame{
		Seq:    w.frames,
		Size:   size,
		Ops:    ops,
		Glyphs: w.raster.Snapshot(layouts...),
		Images: w.images,
	}, nil
}

// prepareText packs the glyphs of the text runs of ops and returns
// their layouts.
func (w *Window) prepareText(ops *op.Ops) ([]*text.Layout, error) {
	var layouts []*text.Layout
	var errs []error
	for _, p := range ops.Primitives() {
		t, ok := p.(op.Text)
		if !ok {
			continue
		}
		l, ok := t.Run.(*text.Layout)
		if !ok {
			continue
		}
		layouts = append(layouts, l)
		if err := w.raster.Prepare(l); err != nil {
			errs = append(errs, err)
		}
	}
	return layouts, errors.Join(errs...)
}

// Dispatch coalesces a batch of events and routes them to the widget
// tree.
func (w *Window) Dispatch(batch []event.Event) Update {
	var u Update
	for _, e := range router.Coalesce(batch) {
		res := w.router.Dispatch(e)
		u.Invalidated = u.Invalidated || res.Invalidated
		if _, ok := e.(system.CloseRequestEvent); ok && !res.CloseCanceled {
			u.Closed = true
		}
	}
	return u
}
