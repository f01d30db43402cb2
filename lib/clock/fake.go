// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock frozen at initial. Time moves only through
// Advance, which fires every sleeper whose deadline the new time has
// reached, in deadline order.
//
// FakeClock is safe for concurrent use.
func Fake(initial time.Time) *FakeClock {
	clk := &FakeClock{current: initial}
	clk.registered = sync.NewCond(&clk.mu)
	return clk
}

// FakeClock is the deterministic Clock used by tests. Goroutines that
// call After, Sleep, or NewTicker register sleepers; the test calls
// WaitForSleepers to rendezvous with them and Advance to release them.
type FakeClock struct {
	mu         sync.Mutex
	current    time.Time
	sleepers   []*sleeper
	registered *sync.Cond
}

// sleeper is one pending After, Sleep, or ticker wait.
type sleeper struct {
	deadline time.Time
	ch       chan time.Time

	// interval is non-zero for tickers; the sleeper is rescheduled at
	// deadline+interval after each fire instead of being removed.
	interval time.Duration

	stopped bool
}

// Now returns the frozen current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// After registers a one-shot sleeper. A non-positive d delivers
// immediately without registering.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.current
		return ch
	}
	c.sleepers = append(c.sleepers, &sleeper{deadline: c.current.Add(d), ch: ch})
	c.registered.Broadcast()
	return ch
}

// Sleep blocks until the clock advances past the deadline.
func (c *FakeClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	<-c.After(d)
}

// NewTicker registers a repeating sleeper. Panics if d <= 0.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker interval")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s := &sleeper{
		deadline: c.current.Add(d),
		ch:       make(chan time.Time, 1),
		interval: d,
	}
	c.sleepers = append(c.sleepers, s)
	c.registered.Broadcast()

	return &Ticker{
		C: s.ch,
		stop: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			s.stopped = true
		},
	}
}

// Advance moves the clock forward by d and fires expired sleepers in
// deadline order. Ticker sends are non-blocking; a tick that finds the
// channel full is dropped, matching time.Ticker. Tickers whose period
// divides the advance fire once per elapsed period.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	target := c.current
	c.mu.Unlock()

	for {
		expired := c.takeExpired(target)
		if len(expired) == 0 {
			return
		}
		sort.Slice(expired, func(i, j int) bool {
			return expired[i].deadline.Before(expired[j].deadline)
		})
		for _, s := range expired {
			select {
			case s.ch <- target:
			default:
			}
		}
	}
}

// takeExpired removes sleepers due at or before target from the pending
// list, rescheduling tickers for their next period.
func (c *FakeClock) takeExpired(target time.Time) []*sleeper {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expired, remaining []*sleeper
	for _, s := range c.sleepers {
		if s.stopped {
			continue
		}
		if s.deadline.After(target) {
			remaining = append(remaining, s)
			continue
		}
		expired = append(expired, s)
		if s.interval > 0 {
			s.deadline = s.deadline.Add(s.interval)
			remaining = append(remaining, s)
		}
	}
	c.sleepers = remaining
	return expired
}

// WaitForSleepers blocks until at least n sleepers are pending. This
// closes the race between a goroutine registering its wait and the test
// advancing the clock:
//
//	go func() { clk.Sleep(time.Second) }()
//	clk.WaitForSleepers(1)
//	clk.Advance(time.Second)
func (c *FakeClock) WaitForSleepers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pendingLocked() < n {
		c.registered.Wait()
	}
}

// Pending returns the number of active sleepers.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked()
}

func (c *FakeClock) pendingLocked() int {
	n := 0
	for _, s := range c.sleepers {
		if !s.stopped {
			n++
		}
	}
	return n
}
