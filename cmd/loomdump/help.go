// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The loomdump command renders one frame of a demo window without a
platform window and prints the resulting draw primitives.

Usage:

	loomdump [flags]

The -config flag names a TOML configuration file. Settings missing from the
file keep their defaults; -width, -height and -scale override the file.

The -text flag sets the headline of the demo window and -image adds an image
file below it.

The -o flag rasterizes the frame in software and writes it to a PNG file.

The -atlas flag writes the glyph atlas of the frame to a PNG file. Use
-atlas-scale to magnify it.

The -q flag suppresses the primitive listing and prints only the summary.
`
