// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ghostctl/ghostctl/ghostty"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{
			name: "missing socket is not found",
			err:  &ghostty.ConnectionError{Path: "/run/ghostty.sock", Msg: "socket not found"},
			want: CategoryNotFound,
		},
		{
			name: "foreign owner is forbidden",
			err:  &ghostty.ConnectionError{Path: "/tmp/ghostty.sock", Msg: "socket is not owned by the current user"},
			want: CategoryForbidden,
		},
		{
			name: "loose permissions are forbidden",
			err:  &ghostty.ConnectionError{Path: "/tmp/ghostty.sock", Msg: "socket is accessible to group or others"},
			want: CategoryForbidden,
		},
		{
			name: "dial failure is transient",
			err:  &ghostty.ConnectionError{Path: "/run/ghostty.sock", Msg: "failed to connect to socket"},
			want: CategoryTransient,
		},
		{
			name: "timeout is transient",
			err:  &ghostty.TimeoutError{Op: "waiting for text", Timeout: 30 * time.Second},
			want: CategoryTransient,
		},
		{
			name: "assertion failure is conflict",
			err:  &ghostty.AssertionError{Msg: `expected terminal to contain "ready"`},
			want: CategoryConflict,
		},
		{
			name: "timed-out assertion stays conflict",
			err: &ghostty.AssertionError{
				Msg: `expected terminal to contain "ready"`,
				Err: &ghostty.TimeoutError{Timeout: 5 * time.Second},
			},
			want: CategoryConflict,
		},
		{
			name: "protocol failure is internal",
			err:  &ghostty.ProtocolError{Msg: "invalid JSON response from host"},
			want: CategoryInternal,
		},
		{
			name: "no surfaces is not found",
			err:  fmt.Errorf("resolving target: %w", ghostty.ErrNoSurfaces),
			want: CategoryNotFound,
		},
		{
			name: "vanished surface is not found",
			err:  ghostty.ErrSurfaceGone,
			want: CategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ClassifyError(tt.err)
			var toolErr *ToolError
			if !errors.As(classified, &toolErr) {
				t.Fatalf("ClassifyError(%v) = %v, not a ToolError", tt.err, classified)
			}
			if toolErr.Category != tt.want {
				t.Errorf("category = %q, want %q", toolErr.Category, tt.want)
			}
			// The original error stays reachable through the wrapper.
			if !errors.Is(classified, tt.err) {
				t.Errorf("original error lost from chain")
			}
		})
	}
}

func TestClassifyError_PassThrough(t *testing.T) {
	if ClassifyError(nil) != nil {
		t.Error("ClassifyError(nil) != nil")
	}

	already := Validation("bad flag")
	if got := ClassifyError(already); got != error(already) {
		t.Errorf("already-classified error was rewrapped: %v", got)
	}

	plain := errors.New("something else")
	if got := ClassifyError(plain); got != plain {
		t.Errorf("unclassifiable error was changed: %v", got)
	}
}

func TestClassifyError_MissingSocketCarriesHint(t *testing.T) {
	err := ClassifyError(&ghostty.ConnectionError{Path: "/run/ghostty.sock", Msg: "socket not found"})
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatal("not a ToolError")
	}
	if toolErr.Hint == "" {
		t.Error("missing-socket classification lacks a hint")
	}
}
