// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"errors"
	"fmt"
	"time"
)

// The failure taxonomy. Every error leaving this package is one of
// these four kinds (or wraps one of the sentinels below), so callers
// can branch with errors.As: retry on TimeoutError, give up on
// ConnectionError, fail a test on AssertionError.

// ErrNoSurfaces reports an empty surface list where at least one
// surface was required.
var ErrNoSurfaces = errors.New("no terminal surfaces found")

// ErrSurfaceGone reports that a surface id present in an earlier
// listing has disappeared from the host.
var ErrSurfaceGone = errors.New("surface no longer exists")

// ConnectionError means the socket could not be used at all: it is
// missing, fails security validation, refuses the connection, or the
// host hung up mid-exchange.
type ConnectionError struct {
	// Path is the socket or directory the diagnosis refers to. Empty
	// for failures after the connection was established.
	Path string

	// Msg is the diagnosis, for example "socket is not owned by the
	// current user".
	Msg string

	// Err is the underlying cause, when there is one.
	Err error
}

func (e *ConnectionError) Error() string {
	s := e.Msg
	if e.Path != "" {
		s = fmt.Sprintf("%s: %s", e.Msg, e.Path)
	}
	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}
	return s
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError means the exchange happened but its content was
// unacceptable: an oversize message in either direction, a response
// that is not valid JSON, or a failure the host itself reported.
type ProtocolError struct {
	// Msg describes the violation. For host-reported failures it is
	// the error string from the response envelope.
	Msg string

	// Err is the underlying cause, when there is one.
	Err error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// TimeoutError means a deadline elapsed: a single request outlived the
// request timeout, or a polling wait exhausted its window.
type TimeoutError struct {
	// Op names what was being waited for.
	Op string

	// Timeout is the configured limit that elapsed, not the time
	// actually spent.
	Timeout time.Duration

	// Diagnostic is the truncated screen content at expiry, when the
	// wait had content to show.
	Diagnostic string

	// Err is the underlying cause, when there is one.
	Err error
}

func (e *TimeoutError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("timed out after %v", e.Timeout)
	}
	return fmt.Sprintf("%s: timed out after %v", e.Op, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// AssertionError is the presentation form of a failed expectation:
// either a timed-out positive wait or an edge-triggered negative check.
// It carries the truncated screen content that made the call.
type AssertionError struct {
	// Msg states the expectation, for example `expected terminal to
	// contain "ready"`.
	Msg string

	// Diagnostic is the truncated actual content (screen text or
	// metadata) observed when the assertion failed.
	Diagnostic string

	// Err is the TimeoutError behind a timed-out positive assertion,
	// nil for edge-triggered failures.
	Err error
}

func (e *AssertionError) Error() string {
	if e.Diagnostic == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s\n\nactual content:\n%s", e.Msg, e.Diagnostic)
}

func (e *AssertionError) Unwrap() error { return e.Err }
