// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/draw"

	"github.com/loomkit/loom/app"
	"github.com/loomkit/loom/app/headless"
	"github.com/loomkit/loom/atlas"
	"github.com/loomkit/loom/op"
	"github.com/loomkit/loom/state"
	"github.com/loomkit/loom/unit"
	"github.com/loomkit/loom/widget"
	"github.com/loomkit/loom/widget/material"
)

var (
	configPath = flag.String("config", "", "TOML configuration file.")
	width      = flag.Float64("width", 0, "window width in dp; overrides the configuration.")
	height     = flag.Float64("height", 0, "window height in dp; overrides the configuration.")
	scale      = flag.Float64("scale", 0, "pixels per dp; overrides the configuration.")
	headline   = flag.String("text", "Hello, Loom", "headline of the demo window.")
	imagePath  = flag.String("image", "", "image file shown below the headline.")
	outPath    = flag.String("o", "", "rasterize the frame in software and write it to this PNG file.")
	atlasPath  = flag.String("atlas", "", "write the glyph atlas to this PNG file.")
	atlasScale = flag.Int("atlas-scale", 1, "magnification of the written atlas.")
	quiet      = flag.Bool("q", false, "print only the summary.")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "loomdump: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := app.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}
	app.SetLogger(l)

	// The demo is rendered once; no pipeline goroutines are needed.
	cfg.Threaded = false
	up := new(headless.Uploader)
	w := app.NewWindow(cfg, nil, app.WithUploader(up))
	w.Root().Content = demo(w)

	d := headless.New(0)
	d.Close()
	if err := app.Run(context.Background(), w, d); err != nil {
		return err
	}
	f, ok := d.Last()
	if !ok {
		return errors.New("no frame rendered")
	}

	out := bufio.NewWriter(os.Stdout)
	if !*quiet {
		dump(out, f.Ops)
	}
	summary(out, f, w.Atlas(), up)
	if err := out.Flush(); err != nil {
		return err
	}
	if *outPath != "" {
		img, err := headless.Render(f, material.NewTheme().Bg)
		if err != nil {
			return err
		}
		if err := writePNG(*outPath, img); err != nil {
			return err
		}
	}
	if *atlasPath != "" {
		return writeAtlas(*atlasPath, f.Glyphs.AtlasImage(), *atlasScale)
	}
	return nil
}

func loadConfig() (app.Config, error) {
	cfg := app.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = app.LoadConfig(*configPath)
		if err != nil {
			return cfg, err
		}
	}
	if *width > 0 || *height > 0 {
		w, h := cfg.Window.Width, cfg.Window.Height
		if *width > 0 {
			w = float32(*width)
		}
		if *height > 0 {
			h = float32(*height)
		}
		app.Size(w, h)(&cfg)
	}
	if *scale > 0 {
		app.Scale(float32(*scale))(&cfg)
	}
	return cfg, cfg.Validate()
}

// demo builds the widget tree of the demo window.
func demo(w *app.Window) widget.Widget {
	th := material.NewTheme()
	clicks := state.New(0)
	count := state.NewMap1[int, string](clicks, func(n int) string {
		return fmt.Sprintf("%d clicks", n)
	})
	col := widget.VStack(unit.Dp(12),
		material.H4(th, *headline),
		material.Body1(th, "Widgets are laid out, rendered and dumped without a window."),
		widget.HStack(unit.Dp(8),
			material.Button(th, "Click", func(widget.Click) {
				clicks.Update(func(n *int) { *n++ })
			}),
			material.BoundLabel(th, th.TextSize, count),
		),
		material.Switch(th, state.New(true), "Enabled"),
		material.Slider(th, state.New[float32](0.25), 0, 1),
	)
	if *imagePath != "" {
		img := widget.NewImage(w.Images().Open(*imagePath))
		img.Description = *imagePath
		col.Append(widget.Sized(unit.Dp(160), unit.Dp(120), img))
	}
	return th.Apply(widget.VScroll(widget.Pad(unit.Dp(16), col)))
}

func dump(out io.Writer, ops *op.Ops) {
	depth := 0
	for i, p := range ops.Primitives() {
		if p.Kind() == op.KindPop {
			depth--
		}
		fmt.Fprintf(out, "%4d %s%s\n", i, strings.Repeat("  ", depth), op.Describe(p))
		switch p.Kind() {
		case op.KindPushStyle, op.KindPushTransform, op.KindPushClip, op.KindPushStencil, op.KindPushLayer, op.KindPushFilter:
			depth++
		}
	}
}

func summary(out io.Writer, f app.Frame, a *atlas.Atlas, up *headless.Uploader) {
	counts := make(map[op.Kind]int)
	for _, p := range f.Ops.Primitives() {
		counts[p.Kind()]++
	}
	fmt.Fprintf(out, "frame %d: %vx%v px, %d primitives (%d geometry, %d text, %d image)\n",
		f.Seq, f.Size.X, f.Size.Y, f.Ops.Len(), counts[op.KindGeometry], counts[op.KindText], counts[op.KindImage])
	sz := a.Size()
	fmt.Fprintf(out, "atlas: %dx%d px, %d glyphs on %d shelves, generation %d, %d glyphs in frame\n",
		sz.X, sz.Y, a.Len(), len(a.Shelves()), a.Generation(), f.Glyphs.Len())
	fmt.Fprintf(out, "images: %d uploaded\n", up.Uploads())
}

func writeAtlas(path string, img *image.NRGBA, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid -atlas-scale %d", scale)
	}
	var src image.Image = img
	if scale > 1 {
		b := img.Bounds()
		scaled := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		src = scaled
	}
	return writePNG(path, src)
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
