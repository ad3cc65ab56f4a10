// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"iter"
	"time"

	"github.com/loomkit/loom/env"
	"github.com/loomkit/loom/f32"
	"github.com/loomkit/loom/gesture"
	"github.com/loomkit/loom/io/event"
	"github.com/loomkit/loom/io/key"
	"github.com/loomkit/loom/io/pointer"
	"github.com/loomkit/loom/io/semantic"
	"github.com/loomkit/loom/layout"
)

// historyDuration bounds the press history of a MouseArea.
const historyDuration = time.Second

// MouseArea makes its content clickable. Children see pointer events
// before the area itself, so a clickable child consumes the clicks
// inside it.
type MouseArea struct {
	Base
	Content Widget
	// OnClick, if set, is called for every completed click.
	OnClick func(c Click)
	// Description is the accessible description of the area.
	Description string

	click   gesture.Click
	clicks  []Click
	history []Press
}

// Click represents a click.
type Click struct {
	Modifiers key.Modifiers
	NumClicks int
}

// Press represents a past pointer press.
type Press struct {
	Position f32.Point
	Time     time.Duration
}

// Clickable returns a MouseArea around content calling onClick.
func Clickable(content Widget, onClick func(c Click)) *MouseArea {
	return &MouseArea{Content: content, OnClick: onClick}
}

// Clicked reports whether there are pending clicks as would be
// reported by Clicks. If so, Clicked removes the earliest click.
func (m *MouseArea) Clicked() bool {
	if len(m.clicks) == 0 {
		return false
	}
	n := copy(m.clicks, m.clicks[1:])
	m.clicks = m.clicks[:n]
	return true
}

// Clicks returns and clears the clicks since the last call to Clicks.
func (m *MouseArea) Clicks() []Click {
	clicks := m.clicks
	m.clicks = nil
	return clicks
}

// History is the past pointer presses useful for drawing markers.
// History is retained for a short duration (about a second).
func (m *MouseArea) History() []Press {
	return m.history
}

// Hovered reports whether a pointer is over the area.
func (m *MouseArea) Hovered() bool {
	return m.click.Hovered()
}

// Pressed reports whether a pointer is pressing the area.
func (m *MouseArea) Pressed() bool {
	return m.click.Pressed()
}

func (m *MouseArea) Children() iter.Seq[Widget] {
	return Of(m.Content)
}

func (m *MouseArea) CalculateSize(gtx *layout.Context, requested f32.Point) f32.Point {
	return single(&m.Base, m.Content, gtx, requested)
}

func (m *MouseArea) PositionChildren() {
	place(m.Content, m.Position())
}

func (m *MouseArea) ProcessPointer(e pointer.Event, ctx *pointer.Context) {
	ProcessPointerChildren(m, e, ctx)
	hit := ctx.Local(e.Position).In(m.Bounds())
	active := !ctx.Consumed && env.Get(ctx.Env, Enabled)
	ce, ok := m.click.Update(e, hit, active)
	if !ok {
		return
	}
	ctx.Consume()
	switch ce.Type {
	case gesture.TypePress:
		m.expire(e.Time)
		m.history = append(m.history, Press{Position: ce.Position, Time: e.Time})
	case gesture.TypeClick:
		m.fire(Click{Modifiers: ce.Modifiers, NumClicks: ce.NumClicks})
	}
}

func (m *MouseArea) fire(c Click) {
	m.clicks = append(m.clicks, c)
	if m.OnClick != nil {
		m.OnClick(c)
	}
}

func (m *MouseArea) expire(now time.Duration) {
	for len(m.history) > 0 {
		if now-m.history[0].Time < historyDuration {
			break
		}
		n := copy(m.history, m.history[1:])
		m.history = m.history[:n]
	}
}

func (m *MouseArea) HandleSemantic(e event.Event, ctx *semantic.Context) {
	switch e := e.(type) {
	case semantic.RebuildEvent:
		ctx.Describe(m.ID(), semantic.Desc{
			Class:       semantic.Button,
			Description: m.Description,
			Disabled:    !env.Get(ctx.Env, Enabled),
			Gestures:    semantic.ClickGesture,
			Bounds:      m.Bounds(),
		})
	case semantic.ActionEvent:
		if e.Target != m.ID() || e.Action != semantic.ActionClick || ctx.Handled {
			return
		}
		if !env.Get(ctx.Env, Enabled) {
			return
		}
		ctx.Handled = true
		m.fire(Click{NumClicks: 1})
	}
}
