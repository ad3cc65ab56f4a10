// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/loomkit/loom/internal/logger"
	"github.com/loomkit/loom/io/event"
)

// Driver connects a window to a platform.
type Driver interface {
	// Events delivers batches of input events. The channel is closed
	// when the platform window is gone.
	Events() <-chan []event.Event
	// Present shows a frame.
	Present(ctx context.Context, f Frame) error
}

// errClosed stops the pipeline after an uncanceled close request.
var errClosed = errors.New("app: window closed")

// Run shows w through d until the driver closes its event channel,
// the window accepts a close request or ctx is canceled. The first
// frame is presented before any event is processed.
//
// If the window is configured as threaded, the widget passes run on
// their own goroutine and frames are presented concurrently.
func Run(ctx context.Context, w *Window, d Driver) error {
	log := logger.Get().With("window", w.ID())
	log.Info("run", "threaded", w.cfg.Threaded)
	var err error
	if w.cfg.Threaded {
		err = runThreaded(ctx, w, d)
	} else {
		err = runSync(ctx, w, d)
	}
	if errors.Is(err, errClosed) {
		err = nil
	}
	log.Info("stopped", "err", err)
	return err
}

func runSync(ctx context.Context, w *Window, d Driver) error {
	if err := present(ctx, w, d); err != nil {
		return err
	}
	events := d.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-events:
			if !ok {
				return nil
			}
			u := w.Dispatch(batch)
			if u.Closed {
				return errClosed
			}
			if u.Invalidated {
				if err := present(ctx, w, d); err != nil {
					return err
				}
			}
		}
	}
}

func present(ctx context.Context, w *Window, d Driver) error {
	f, err := w.Frame()
	if err != nil {
		return err
	}
	if err := d.Present(ctx, f); err != nil {
		return fmt.Errorf("app: present: %w", err)
	}
	return nil
}

func runThreaded(ctx context.Context, w *Window, d Driver) error {
	in := newQueue[[]event.Event]()
	out := newQueue[Frame]()
	g, gctx := errgroup.WithContext(ctx)

	// Input pump.
	g.Go(func() error {
		defer in.Close()
		events := d.Events()
		for {
			select {
			case <-gctx.Done():
				return nil
			case batch, ok := <-events:
				if !ok {
					return nil
				}
				in.Push(batch)
			}
		}
	})

	// Widget passes.
	g.Go(func() error {
		defer out.Close()
		f, err := w.Frame()
		if err != nil {
			return err
		}
		out.Push(f)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-in.Ready():
			}
			batches, closed := in.Drain()
			var evs []event.Event
			for _, b := range batches {
				evs = append(evs, b...)
			}
			if len(evs) > 0 {
				u := w.Dispatch(evs)
				if u.Closed {
					return errClosed
				}
				if u.Invalidated {
					f, err := w.Frame()
					if err != nil {
						return err
					}
					out.Push(f)
				}
			}
			if closed {
				return nil
			}
		}
	})

	// Presentation. Only the newest pending frame is shown.
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-out.Ready():
			}
			frames, closed := out.Drain()
			if n := len(frames); n > 0 {
				if n > 1 {
					logger.Get().Debug("frames skipped", "window", w.ID(), "n", n-1)
				}
				if err := d.Present(gctx, frames[n-1]); err != nil {
					return fmt.Errorf("app: present: %w", err)
				}
			}
			if closed {
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
