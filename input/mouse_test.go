// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"math"
	"testing"
)

func TestClickPlan(t *testing.T) {
	t.Parallel()

	plan := Click(100, 50, "left", "shift")
	if len(plan) != 2 {
		t.Fatalf("click plan has %d steps, want 2", len(plan))
	}
	if plan[0].Event.Action != "press" || plan[1].Event.Action != "release" {
		t.Errorf("actions = %s,%s, want press,release", plan[0].Event.Action, plan[1].Event.Action)
	}
	for _, step := range plan {
		if step.Event.X != 100 || step.Event.Y != 50 {
			t.Errorf("event at (%v,%v), want (100,50)", step.Event.X, step.Event.Y)
		}
		if step.Event.Button != "left" || step.Event.Mods != "shift" {
			t.Errorf("event %+v lost button or mods", step.Event)
		}
	}
}

func TestDoubleClickPause(t *testing.T) {
	t.Parallel()

	plan := DoubleClick(10, 20, "left", "")
	if len(plan) != 4 {
		t.Fatalf("double click plan has %d steps, want 4", len(plan))
	}
	if plan[1].Pause != doubleClickPause {
		t.Errorf("pause after first click = %v, want %v", plan[1].Pause, doubleClickPause)
	}
	if plan[3].Pause != 0 {
		t.Errorf("pause after final release = %v, want 0", plan[3].Pause)
	}
}

func TestDragEventCountAndOrder(t *testing.T) {
	t.Parallel()

	for _, steps := range []int{1, 3, 10, 25} {
		plan := Drag(0, 0, 100, 100, "left", steps, "")
		if len(plan) != steps+2 {
			t.Fatalf("drag with steps=%d emitted %d events, want %d", steps, len(plan), steps+2)
		}
		if plan[0].Event.Action != "press" {
			t.Errorf("first event action = %q, want press", plan[0].Event.Action)
		}
		for i := 1; i <= steps; i++ {
			if plan[i].Event.Action != "" || plan[i].Event.Button != "" {
				t.Errorf("move %d carries button/action: %+v", i, plan[i].Event)
			}
		}
		if last := plan[len(plan)-1].Event; last.Action != "release" || last.X != 100 || last.Y != 100 {
			t.Errorf("final event = %+v, want release at destination", last)
		}
	}
}

func TestDragInterpolationLinear(t *testing.T) {
	t.Parallel()

	plan := Drag(0, 10, 100, 60, "left", 4, "")
	moves := plan[1 : len(plan)-1]
	wantX := []float64{25, 50, 75, 100}
	wantY := []float64{22.5, 35, 47.5, 60}
	for i, step := range moves {
		if math.Abs(step.Event.X-wantX[i]) > 1e-9 || math.Abs(step.Event.Y-wantY[i]) > 1e-9 {
			t.Errorf("move %d at (%v,%v), want (%v,%v)", i, step.Event.X, step.Event.Y, wantX[i], wantY[i])
		}
	}
}

func TestDragDefaultSteps(t *testing.T) {
	t.Parallel()

	plan := Drag(0, 0, 10, 10, "left", 0, "")
	if len(plan) != DefaultDragSteps+2 {
		t.Fatalf("drag with steps=0 emitted %d events, want %d", len(plan), DefaultDragSteps+2)
	}
}
