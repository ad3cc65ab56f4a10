// SPDX-License-Identifier: Unlicense OR MIT

/*
Package clip provides shapes tessellated into triangles, for drawing
and for clipping.

Drawing outside the current clip area is ignored. The current clip is
initially the infinite set. Pushing a shape sets the clip to the
intersection of the current clip and the shape. Popping the area
restores the clip to its state before pushing:

	defer clip.Rect(bounds).Push(ctx).Pop()

Rectangles clip with a clip rectangle; other shapes clip with a
stencil built from their triangles. Triangles are in local coordinates.
*/
package clip
