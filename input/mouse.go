// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package input

import "time"

// DefaultDragSteps is the number of interpolated move events a drag
// emits between press and release when the caller does not choose.
const DefaultDragSteps = 10

// doubleClickPause separates the two clicks of a double-click so the
// host registers them as distinct.
const doubleClickPause = 50 * time.Millisecond

// dragPause paces the events of a drag so the host's motion handling
// sees a plausible gesture rather than a burst.
const dragPause = 10 * time.Millisecond

// MouseEvent is one mouse event to submit via send_mouse. Button and
// Action are empty for pure motion events.
type MouseEvent struct {
	X      float64
	Y      float64
	Button string
	Action string
	Mods   string
}

// MouseStep pairs an event with the pause to observe after submitting
// it. The client sends the event, then sleeps Pause.
type MouseStep struct {
	Event MouseEvent
	Pause time.Duration
}

// Click plans a press+release at one position.
func Click(x, y float64, button, mods string) []MouseStep {
	return []MouseStep{
		{Event: MouseEvent{X: x, Y: y, Button: button, Action: "press", Mods: mods}},
		{Event: MouseEvent{X: x, Y: y, Button: button, Action: "release", Mods: mods}},
	}
}

// DoubleClick plans two clicks separated by a short fixed pause.
func DoubleClick(x, y float64, button, mods string) []MouseStep {
	first := Click(x, y, button, mods)
	first[len(first)-1].Pause = doubleClickPause
	return append(first, Click(x, y, button, mods)...)
}

// Drag plans a press at the origin, steps linearly interpolated move
// events ending exactly at the destination, and a release at the
// destination: steps+2 events in total. Moves carry the modifiers but
// no button. A non-positive steps uses DefaultDragSteps.
func Drag(fromX, fromY, toX, toY float64, button string, steps int, mods string) []MouseStep {
	if steps <= 0 {
		steps = DefaultDragSteps
	}

	plan := make([]MouseStep, 0, steps+2)
	plan = append(plan, MouseStep{
		Event: MouseEvent{X: fromX, Y: fromY, Button: button, Action: "press", Mods: mods},
		Pause: dragPause,
	})
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		plan = append(plan, MouseStep{
			Event: MouseEvent{
				X:    fromX + (toX-fromX)*t,
				Y:    fromY + (toY-fromY)*t,
				Mods: mods,
			},
			Pause: dragPause,
		})
	}
	return append(plan, MouseStep{
		Event: MouseEvent{X: toX, Y: toY, Button: button, Action: "release", Mods: mods},
	})
}
