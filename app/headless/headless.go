// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements an app.Driver without a platform window.
// Events are injected by the caller and presented frames are kept for
// inspection, which makes the driver suitable for tests and offline
// rendering.
package headless

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"github.com/loomkit/loom/app"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/raster"
)

// Driver is an app.Driver that records frames. It is safe for
// concurrent use.
type Driver struct {
	events    chan []event.Event
	closeOnce sync.Once

	mu       sync.Mutex
	frames   []app.Frame
	presents chan struct{}
}

// New returns a driver buffering up to buffer batches of events.
func New(buffer int) *Driver {
	return &Driver{
		events:   make(chan []event.Event, buffer),
		presents: make(chan struct{}, 1),
	}
}

// Send delivers a batch of events. It blocks while the buffer is full
// and panics after Close.
func (d *Driver) Send(evs ...event.Event) {
	d.events <- evs
}

// Close ends the event stream, which stops app.Run once pending
// events are processed.
func (d *Driver) Close() {
	d.closeOnce.Do(func() {
		close(d.events)
	})
}

func (d *Driver) Events() <-chan []event.Event {
	return d.events
}

func (d *Driver) Present(ctx context.Context, f app.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	d.frames = append(d.frames, f)
	d.mu.Unlock()
	select {
	case d.presents <- struct{}{}:
	default:
	}
	return nil
}

// Frames returns the presented frames in order.
func (d *Driver) Frames() []app.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]app.Frame(nil), d.frames...)
}

// Last returns the most recently presented frame.
func (d *Driver) Last() (app.Frame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return app.Frame{}, false
	}
	return d.frames[len(d.frames)-1], true
}

// WaitFrame blocks until a frame with a sequence number of at least
// seq is presented.
func (d *Driver) WaitFrame(ctx context.Context, seq uint64) (app.Frame, error) {
	for {
		if f, ok := d.Last(); ok && f.Seq >= seq {
			return f, nil
		}
		select {
		case <-ctx.Done():
			return app.Frame{}, ctx.Err()
		case <-d.presents:
		}
	}
}

// Uploader is a paint.Uploader keeping uploaded images in memory.
type Uploader struct {
	mu      sync.Mutex
	images  map[paint.ImageID]image.Image
	uploads int
}

func (u *Uploader) Upload(id paint.ImageID, img image.Image) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.images == nil {
		u.images = make(map[paint.ImageID]image.Image)
	}
	u.images[id] = img
	u.uploads++
	return nil
}

// Uploads returns the number of uploads.
func (u *Uploader) Uploads() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploads
}

// Image returns the uploaded image of id.
func (u *Uploader) Image(id paint.ImageID) (image.Image, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	img, ok := u.images[id]
	return img, ok
}

// Render rasterizes f in software over a background of color bg. It
// may be called from Driver.Present while the window runs threaded.
func Render(f app.Frame, bg color.NRGBA) (*image.RGBA, error) {
	sz := image.Pt(int(math.Ceil(float64(f.Size.X))), int(math.Ceil(float64(f.Size.Y))))
	img := image.NewRGBA(image.Rectangle{Max: sz})
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	var r raster.Rasterizer
	if f.Images != nil {
		r.Images = f.Images
	}
	if f.Glyphs != nil {
		r.Glyphs = f.Glyphs
	}
	if err := r.Frame(f.Ops, img); err != nil {
		return img, fmt.Errorf("headless: %w", err)
	}
	return img, nil
}
