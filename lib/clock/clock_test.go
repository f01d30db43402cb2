// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeNowFrozen(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := Fake(start)

	if got := clk.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}
	clk.Advance(90 * time.Second)
	if got := clk.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Fatalf("Now() after Advance = %v, want %v", got, start.Add(90*time.Second))
	}
}

func TestFakeAfterFiresOnAdvance(t *testing.T) {
	t.Parallel()

	clk := Fake(time.Unix(0, 0))
	ch := clk.After(5 * time.Second)

	select {
	case <-ch:
		t.Fatal("After fired before Advance")
	default:
	}

	clk.Advance(4 * time.Second)
	select {
	case <-ch:
		t.Fatal("After fired before its deadline")
	default:
	}

	clk.Advance(time.Second)
	select {
	case fired := <-ch:
		want := time.Unix(5, 0)
		if !fired.Equal(want) {
			t.Fatalf("fire time = %v, want %v", fired, want)
		}
	default:
		t.Fatal("After did not fire at its deadline")
	}
}

func TestFakeAfterNonPositiveImmediate(t *testing.T) {
	t.Parallel()

	clk := Fake(time.Unix(100, 0))
	select {
	case <-clk.After(0):
	default:
		t.Fatal("After(0) did not deliver immediately")
	}
	if clk.Pending() != 0 {
		t.Fatalf("Pending() = %d after immediate delivery, want 0", clk.Pending())
	}
}

func TestFakeSleepBlocksUntilAdvance(t *testing.T) {
	t.Parallel()

	clk := Fake(time.Unix(0, 0))
	done := make(chan struct{})
	go func() {
		clk.Sleep(time.Second)
		close(done)
	}()

	clk.WaitForSleepers(1)
	select {
	case <-done:
		t.Fatal("Sleep returned before Advance")
	default:
	}

	clk.Advance(time.Second)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Sleep did not return after Advance")
	}
}

func TestFakeTickerFiresPerInterval(t *testing.T) {
	t.Parallel()

	clk := Fake(time.Unix(0, 0))
	ticker := clk.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	ticks := 0
	for range 3 {
		clk.Advance(100 * time.Millisecond)
		select {
		case <-ticker.C:
			ticks++
		default:
			t.Fatalf("no tick after advance %d", ticks+1)
		}
	}
	if ticks != 3 {
		t.Fatalf("ticks = %d, want 3", ticks)
	}
}

func TestFakeTickerDropsWhenFull(t *testing.T) {
	t.Parallel()

	clk := Fake(time.Unix(0, 0))
	ticker := clk.NewTicker(time.Second)
	defer ticker.Stop()

	// Nobody drains between fires: three periods may only queue one tick.
	clk.Advance(3 * time.Second)

	drained := 0
	for {
		select {
		case <-ticker.C:
			drained++
			continue
		default:
		}
		break
	}
	if drained != 1 {
		t.Fatalf("drained %d ticks from capacity-1 channel, want 1", drained)
	}
}

func TestFakeTickerStop(t *testing.T) {
	t.Parallel()

	clk := Fake(time.Unix(0, 0))
	ticker := clk.NewTicker(time.Second)
	ticker.Stop()

	clk.Advance(5 * time.Second)
	select {
	case <-ticker.C:
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestFakeAdvanceFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()

	clk := Fake(time.Unix(0, 0))
	late := clk.After(2 * time.Second)
	early := clk.After(1 * time.Second)

	clk.Advance(3 * time.Second)

	earlyFired := <-early
	lateFired := <-late
	// Both deliver the post-advance time; ordering is observable through
	// the pending count dropping to zero.
	if earlyFired.After(lateFired) {
		t.Fatalf("early sleeper fired at %v, after late sleeper %v", earlyFired, lateFired)
	}
	if clk.Pending() != 0 {
		t.Fatalf("Pending() = %d after firing all, want 0", clk.Pending())
	}
}

func TestRealClockBasics(t *testing.T) {
	t.Parallel()

	clk := Real()
	before := clk.Now()
	clk.Sleep(time.Millisecond)
	if !clk.Now().After(before) {
		t.Fatal("real clock did not move forward across Sleep")
	}

	ticker := clk.NewTicker(time.Millisecond)
	defer ticker.Stop()
	select {
	case <-ticker.C:
	case <-time.After(5 * time.Second):
		t.Fatal("real ticker never ticked")
	}
}
