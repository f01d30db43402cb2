// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds small helpers shared by tests, mainly
// channel-rendezvous assertions used when a test drives a fake Ghostty
// host on one goroutine and the code under test on another.
package testutil

import (
	"fmt"
	"time"
)

// failer is the slice of testing.TB these helpers need.
type failer interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive reads one value from ch within timeout or fails the
// test. The timeout is a hang safety valve, not an assertion about
// latency; tests pass generous values.
//
//	req := testutil.RequireReceive(t, host.Requests, 5*time.Second, "first request")
func RequireReceive[T any](t failer, ch <-chan T, timeout time.Duration, format string, args ...any) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while waiting: %s", fmt.Sprintf(format, args...))
		}
		return v
	case <-time.After(timeout):
		t.Fatalf("timed out after %v: %s", timeout, fmt.Sprintf(format, args...))
	}
	panic("unreachable")
}

// RequireNoReceive asserts ch delivers nothing for the full grace
// window. Used to prove negative transport properties, for example
// that an oversize request never reaches the host.
func RequireNoReceive[T any](t failer, ch <-chan T, grace time.Duration, format string, args ...any) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected value %v: %s", v, fmt.Sprintf(format, args...))
	case <-time.After(grace):
	}
}

// RequireClosed waits for ch to close (or deliver) within timeout.
func RequireClosed(t failer, ch <-chan struct{}, timeout time.Duration, format string, args ...any) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v waiting for close: %s", timeout, fmt.Sprintf(format, args...))
	}
}
