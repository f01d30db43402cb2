// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"strings"

	"github.com/ghostctl/ghostctl/ghostty"
)

// ClassifyError maps the client library's failure taxonomy onto
// [ToolError] categories. Errors that already carry a category pass
// through unchanged; errors outside the taxonomy are returned as-is
// and classified internal at the MCP boundary.
//
// The mapping: socket validation failures are forbidden (the socket
// exists but its security posture is wrong), a missing socket is
// not_found with a hint, dial and timeout failures are transient,
// malformed or refused exchanges are internal, and failed assertions
// are conflicts (the screen may still get there).
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return err
	}

	var connErr *ghostty.ConnectionError
	if errors.As(err, &connErr) {
		switch {
		case strings.Contains(connErr.Msg, "not found"):
			return (&ToolError{Category: CategoryNotFound, Err: err}).
				WithHint("is Ghostty running? pass --socket to name its control socket")
		case strings.Contains(connErr.Msg, "owned"),
			strings.Contains(connErr.Msg, "accessible"),
			strings.Contains(connErr.Msg, "writable"),
			strings.Contains(connErr.Msg, "not a unix socket"):
			return &ToolError{Category: CategoryForbidden, Err: err}
		default:
			return &ToolError{Category: CategoryTransient, Err: err}
		}
	}

	// AssertionError can wrap a TimeoutError, so it goes first: a
	// timed-out expectation is a conflict, not a transient failure.
	var assertErr *ghostty.AssertionError
	if errors.As(err, &assertErr) {
		return &ToolError{Category: CategoryConflict, Err: err}
	}

	var timeoutErr *ghostty.TimeoutError
	if errors.As(err, &timeoutErr) {
		return &ToolError{Category: CategoryTransient, Err: err}
	}

	var protoErr *ghostty.ProtocolError
	if errors.As(err, &protoErr) {
		return &ToolError{Category: CategoryInternal, Err: err}
	}

	if errors.Is(err, ghostty.ErrNoSurfaces) || errors.Is(err, ghostty.ErrSurfaceGone) {
		return &ToolError{Category: CategoryNotFound, Err: err}
	}

	return err
}
