// SPDX-License-Identifier: Unlicense OR MIT

package op

import "fmt"

// Ops holds a recorded list of primitives.
type Ops struct {
	// version is incremented at each Reset.
	version int
	list    []Primitive
}

// Add appends p.
func (o *Ops) Add(p Primitive) {
	o.list = append(o.list, p)
}

// Reset the Ops, preparing it for re-use.
func (o *Ops) Reset() {
	// Leave references to the GC.
	for i := range o.list {
		o.list[i] = nil
	}
	o.list = o.list[:0]
	o.version++
}

// Primitives returns the recorded primitives. The slice is valid until
// the next Reset.
func (o *Ops) Primitives() []Primitive {
	return o.list
}

// Len returns the number of recorded primitives.
func (o *Ops) Len() int {
	return len(o.list)
}

// Version is incremented by every Reset.
func (o *Ops) Version() int {
	return o.version
}

// Replay delivers the recorded primitives to s in order.
func (o *Ops) Replay(s Sink) {
	for _, p := range o.list {
		s.Add(p)
	}
}

// Check verifies that every push is matched by a pop of the same kind.
func (o *Ops) Check() error {
	var stack []Kind
	for i, p := range o.list {
		switch k := p.Kind(); k {
		case KindPushStyle, KindPushTransform, KindPushClip, KindPushStencil, KindPushLayer, KindPushFilter:
			stack = append(stack, k)
		case KindPop:
			of := p.(Pop).Of
			if len(stack) == 0 || stack[len(stack)-1] != of {
				return fmt.Errorf("op: primitive %d: Pop %v does not match", i, of)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("op: %d unpopped pushes, innermost %v", len(stack), stack[len(stack)-1])
	}
	return nil
}
