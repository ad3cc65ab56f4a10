// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app runs widget trees against a driver.

A Window binds a widget tree to the services a frame needs: text
shaping, the image registry, the glyph atlas and an event router.
Every frame runs the same passes in order: sync the bound states, lay
out the tree, position it and render it into an op.Ops list.

Run connects a Window to a Driver, the source of input events and the
consumer of frames. In threaded mode the widget passes run on their
own goroutine, connected to the driver loop by two unbounded queues:
batches of input events flow in, finished frames flow out.

# Configuration

Windows are configured by a Config, usually loaded from a TOML file
with LoadConfig and adjusted with Options:

	cfg, err := app.LoadConfig("loom.toml")
	if err != nil {
		log.Fatal(err)
	}
	w := app.NewWindow(cfg, root, app.Title("Hello"))

# Logging

The loom packages log through log/slog and are silent by default. Use
SetLogger to enable logging.
*/
package app
