// SPDX-License-Identifier: Unlicense OR MIT

/*

Package unit implements device independent units and values.

A Value is a value with a Unit attached.

Device independent pixel, or dp, is the unit for sizes independent of
the underlying display device.

Scaled pixels, or sp, is the unit for text sizes. An sp is like dp with
text scaling applied.

Finally, pixels, or px, is the unit for display dependent pixels. Their
size vary between platforms and displays.

Layout and rendering work in px. A Metric converts between the units and
is replaced, not mutated, when a subtree introduces a scale-factor
boundary.

*/
package unit

import (
	"fmt"
	"math"
)

// Value is a value with a unit.
type Value struct {
	V float32
	U Unit
}

// Unit represents a unit for a Value.
type Unit uint8

// Converter converts Values to pixels.
type Converter interface {
	Px(v Value) float32
}

// Metric converts Values to device-dependent pixels. The zero
// Metric uses a scale of 1 for both dp and sp.
type Metric struct {
	// PxPerDp is the device-dependent pixels per dp.
	PxPerDp float32
	// PxPerSp is the device-dependent pixels per sp.
	PxPerSp float32
}

const (
	// UnitPx represent device pixels in the resolution of
	// the underlying display.
	UnitPx Unit = iota
	// UnitDp represents device independent pixels. 1 dp will
	// have the same apparent size across platforms and
	// display resolutions.
	UnitDp
	// UnitSp is like UnitDp but for font sizes.
	UnitSp
)

// Px returns the Value for v device pixels.
func Px(v float32) Value {
	return Value{V: v, U: UnitPx}
}

// Dp returns the Value for v device independent
// pixels.
func Dp(v float32) Value {
	return Value{V: v, U: UnitDp}
}

// Sp returns the Value for v scaled dps.
func Sp(v float32) Value {
	return Value{V: v, U: UnitSp}
}

// Scale returns the value scaled by s.
func (v Value) Scale(s float32) Value {
	v.V *= s
	return v
}

func (v Value) String() string {
	return fmt.Sprintf("%g%s", v.V, v.U)
}

func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitDp:
		return "dp"
	case UnitSp:
		return "sp"
	default:
		panic("unknown unit")
	}
}

// Px converts v to device pixels.
func (m Metric) Px(v Value) float32 {
	var r float32
	switch v.U {
	case UnitPx:
		r = v.V
	case UnitDp:
		r = v.V * nonZero(m.PxPerDp)
	case UnitSp:
		r = v.V * nonZero(m.PxPerSp)
	default:
		panic("unknown unit")
	}
	if math.IsNaN(float64(r)) {
		return 0
	}
	return r
}

// Dp converts v dps to pixels.
func (m Metric) Dp(v float32) float32 {
	return m.Px(Dp(v))
}

// Sp converts v sps to pixels.
func (m Metric) Sp(v float32) float32 {
	return m.Px(Sp(v))
}

// PxToDp converts v pixels to a dp Value.
func (m Metric) PxToDp(v float32) Value {
	return Dp(v / nonZero(m.PxPerDp))
}

// PxToSp converts v pixels to an sp Value.
func (m Metric) PxToSp(v float32) Value {
	return Sp(v / nonZero(m.PxPerSp))
}

// Scaled returns the Metric for a subtree drawn at s times the
// scale of m.
func (m Metric) Scaled(s float32) Metric {
	return Metric{
		PxPerDp: nonZero(m.PxPerDp) * s,
		PxPerSp: nonZero(m.PxPerSp) * s,
	}
}

func nonZero(v float32) float32 {
	if v == 0. {
		return 1
	}
	return v
}

// Add a list of Values.
func Add(c Converter, values ...Value) Value {
	var sum Value
	for _, v := range values {
		sum, v = compatible(c, sum, v)
		sum.V += v.V
	}
	return sum
}

// Max returns the maximum of a list of Values.
func Max(c Converter, values ...Value) Value {
	var max Value
	for _, v := range values {
		max, v = compatible(c, max, v)
		if v.V > max.V {
			max.V = v.V
		}
	}
	return max
}

func compatible(c Converter, v1, v2 Value) (Value, Value) {
	if v1.U == v2.U {
		return v1, v2
	}
	if v1.V == 0 {
		v1.U = v2.U
		return v1, v2
	}
	if v2.V == 0 {
		v2.U = v1.U
		return v1, v2
	}
	return Px(c.Px(v1)), Px(c.Px(v2))
}
