// SPDX-License-Identifier: Unlicense OR MIT

package app_test

import (
	"context"
	"fmt"
	"log"

	"github.com/loomkit/loom/app"
	"github.com/loomkit/loom/app/headless"
	"github.com/loomkit/loom/widget"
)

func Example() {
	d := headless.New(1)
	// Without events the window shows its first frame and stops.
	d.Close()
	w := app.NewWindow(app.DefaultConfig(), widget.Label("Hello"), app.Threaded(false))
	if err := app.Run(context.Background(), w, d); err != nil {
		log.Fatal(err)
	}
	f, _ := d.Last()
	fmt.Println(f.Seq, f.Size.X, f.Size.Y)
	// Output: 1 800 600
}
