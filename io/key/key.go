// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements key and text events.
package key

import (
	"runtime"
	"strings"

	"github.com/loomkit/loom/io/event"
)

// An Event is generated when a key is pressed. For text input
// use EditEvent.
type Event struct {
	// Name of the key.
	Name Name
	// Modifiers is the set of active modifiers when the key was pressed.
	Modifiers Modifiers
	// State is the state of the key when the event was fired.
	State State
}

// An EditEvent inserts text at the caret of the focused widget.
type EditEvent struct {
	Text string
}

// A FocusEvent is generated when the widget identified by Tag gains
// or loses the keyboard focus.
type FocusEvent struct {
	Tag   event.Tag
	Focus bool
}

// FocusCmd requests to move the keyboard focus to Tag. Unknown or
// unfocusable tags are ignored.
type FocusCmd struct {
	Tag event.Tag
}

// Context is the context of key events.
type Context struct {
	event.Context
	// Focus is the focused widget, if any.
	Focus event.Tag
	// Consumed is set once a widget handled the event. Widgets check
	// it before acting on the event.
	Consumed bool
}

// NewContext returns a key context.
func NewContext(c event.Context, focus event.Tag) *Context {
	return &Context{Context: c, Focus: focus}
}

// Consume marks the event as handled.
func (c *Context) Consume() {
	c.Consumed = true
}

// State is the state of a key during an event.
type State uint8

const (
	// Press is the state of a pressed key.
	Press State = iota
	// Release is the state of a key that has been released.
	Release
)

// Modifiers
type Modifiers uint32

const (
	// ModCtrl is the ctrl modifier key.
	ModCtrl Modifiers = 1 << iota
	// ModCommand is the command modifier key
	// found on Apple keyboards.
	ModCommand
	// ModShift is the shift modifier key.
	ModShift
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, often
	// represented by a Windows logo.
	ModSuper
)

// ModShortcut is the platform's shortcut modifier, usually the ctrl
// modifier. On Apple platforms it is the cmd key.
var ModShortcut = ModCtrl

func init() {
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		ModShortcut = ModCommand
	}
}

// Name is the identifier for a keyboard key.
//
// For letters, the upper case form is used, via unicode.ToUpper.
// The shift modifier is taken into account, all other
// modifiers are ignored. For example, the "shift-1" and "ctrl-shift-1"
// combinations both give the Name "!" with the US keyboard layout.
type Name string

const (
	// Names for special keys.
	NameLeftArrow      Name = "←"
	NameRightArrow     Name = "→"
	NameUpArrow        Name = "↑"
	NameDownArrow      Name = "↓"
	NameReturn         Name = "⏎"
	NameEnter          Name = "⌤"
	NameEscape         Name = "⎋"
	NameHome           Name = "⇱"
	NameEnd            Name = "⇲"
	NameDeleteBackward Name = "⌫"
	NameDeleteForward  Name = "⌦"
	NamePageUp         Name = "⇞"
	NamePageDown       Name = "⇟"
	NameTab            Name = "Tab"
	NameSpace          Name = "Space"
	NameCtrl           Name = "Ctrl"
	NameShift          Name = "Shift"
	NameAlt            Name = "Alt"
	NameSuper          Name = "Super"
	NameCommand        Name = "⌘"
	NameF1             Name = "F1"
	NameF2             Name = "F2"
	NameF3             Name = "F3"
	NameF4             Name = "F4"
	NameF5             Name = "F5"
	NameF6             Name = "F6"
	NameF7             Name = "F7"
	NameF8             Name = "F8"
	NameF9             Name = "F9"
	NameF10            Name = "F10"
	NameF11            Name = "F11"
	NameF12            Name = "F12"
	NameBack           Name = "Back"
)

// Set is an expression that describes a set of key combinations, in the form
// "<modifiers>-<keyset>|...".  Modifiers are separated by dashes, optional
// modifiers are enclosed by parentheses.  A key set is either a literal key
// name or a list of key names separated by commas and enclosed in brackets.
//
// The "Short" modifier matches the shortcut modifier (ModShortcut).
//
// Examples:
//
//   - A|B matches the A and B keys
//   - [A,B] also matches the A and B keys
//   - Shift-A matches A key with shift.
//   - (Shift)-A matches A with and without shift.
//   - (Shift,Ctrl)-[A,B] matches A or B with shift and ctrl held or not.
type Set string

// Contains reports whether the set contains the key name with the
// modifiers mods.
func (k Set) Contains(name Name, mods Modifiers) bool {
	ks := string(k)
	for ks != "" {
		chord, rest, _ := strings.Cut(ks, "|")
		ks = rest
		modSet, keySet := "", chord
		if sep := strings.LastIndex(chord, "-"); sep != -1 && sep < len(chord)-1 {
			modSet, keySet = chord[:sep], chord[sep+1:]
		}
		if keySetContains(keySet, name) && modSetContains(modSet, mods) {
			return true
		}
	}
	return false
}

func keySetContains(keySet string, name Name) bool {
	if Name(keySet) == name {
		return true
	}
	if len(keySet) < 2 || keySet[0] != '[' || keySet[len(keySet)-1] != ']' {
		return false
	}
	keySet = keySet[1 : len(keySet)-1]
	for keySet != "" {
		key, rest, _ := strings.Cut(keySet, ",")
		keySet = rest
		if Name(key) == name {
			return true
		}
	}
	return false
}

func modSetContains(modSet string, mods Modifiers) bool {
	var smods Modifiers
	for modSet != "" {
		mod, rest, _ := strings.Cut(modSet, "-")
		modSet = rest
		if len(mod) >= 2 && mod[0] == '(' && mod[len(mod)-1] == ')' {
			for _, m := range strings.Split(mod[1:len(mod)-1], ",") {
				mods &^= modFor(m)
			}
		} else {
			smods |= modFor(mod)
		}
	}
	return mods == smods
}

func modFor(name string) Modifiers {
	switch Name(name) {
	case NameCtrl:
		return ModCtrl
	case NameShift:
		return ModShift
	case NameAlt:
		return ModAlt
	case NameSuper:
		return ModSuper
	case NameCommand:
		return ModCommand
	case "Short":
		return ModShortcut
	}
	return 0
}

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (EditEvent) ImplementsEvent()  {}
func (Event) ImplementsEvent()      {}
func (FocusEvent) ImplementsEvent() {}

func (FocusCmd) ImplementsCommand() {}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, string(NameCtrl))
	}
	if m.Contain(ModCommand) {
		strs = append(strs, string(NameCommand))
	}
	if m.Contain(ModShift) {
		strs = append(strs, string(NameShift))
	}
	if m.Contain(ModAlt) {
		strs = append(strs, string(NameAlt))
	}
	if m.Contain(ModSuper) {
		strs = append(strs, string(NameSuper))
	}
	return strings.Join(strs, "-")
}

func (s State) String() string {
	switch s {
	case Press:
		return "Press"
	case Release:
		return "Release"
	default:
		panic("invalid State")
	}
}
