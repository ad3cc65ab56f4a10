// SPDX-License-Identifier: Unlicense OR MIT

/*
Package widget implements the widget tree.

A widget is a node that takes part in layout through layout.Child,
reports a stable ID and enumerates its children. Everything else is
optional: widgets that bind state implement Syncer, widgets that draw
implement Renderer, and widgets that react to input implement one of
the Handle methods. The free functions of this package traverse the
tree and call whatever a widget implements.

Every traversal visits children in declaration order. Widgets that
need a different order or scope implement the matching Processor
interface and call the Children variant of the traversal themselves.

Proxy widgets, such as ForEach, are transparent: Flatten splices their
children into the child list of the enclosing container.
*/
package widget
