// SPDX-License-Identifier: Unlicense OR MIT

// Package material implements the Material design.
//
// A Theme holds the palette and text size shared by a set of widgets.
// Theme functions compose the widgets of package widget into styled
// controls:
//
//	th := material.NewTheme()
//	clicks := state.New(0)
//	btn := material.Button(th, "Click me!", func(widget.Click) {
//		clicks.Update(func(n *int) { *n++ })
//	})
//
// Wrap a tree with Theme.Apply to make the palette the environment
// default of every widget below it:
//
//	root := th.Apply(widget.VStack(unit.Dp(8), btn))
//
// Customization
//
// Adjust the Theme fields to change the look of every widget built from
// it, or set the exported fields of the returned widgets to change a
// single one.
package material
