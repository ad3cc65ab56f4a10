// SPDX-License-Identifier: Unlicense OR MIT

/*
Package paint implements fill styles and the image registry.

A Style describes how geometry is filled. The Registry owns decoded
images, knows their natural size and makes them resident in the
backend texture cache the first time their size is asked for, which
happens during layout.
*/
package paint
