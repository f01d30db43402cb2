// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestToolError_ErrorWithoutHint(t *testing.T) {
	err := Validation("missing required argument <text>")
	if err.Error() != "missing required argument <text>" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestToolError_ErrorWithHint(t *testing.T) {
	err := NotFound("no surface with ID %q", "s-9").
		WithHint("run 'ghostctl list' to see surface IDs")

	want := "no surface with ID \"s-9\"\n\nrun 'ghostctl list' to see surface IDs"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestToolError_WithHintReturnsReceiver(t *testing.T) {
	original := Validation("bad input")
	chained := original.WithHint("fix it")
	if original != chained {
		t.Error("WithHint should return the same pointer")
	}
}

func TestToolError_Categories(t *testing.T) {
	tests := []struct {
		err  *ToolError
		want ErrorCategory
	}{
		{Validation("v"), CategoryValidation},
		{NotFound("n"), CategoryNotFound},
		{Forbidden("f"), CategoryForbidden},
		{Conflict("c"), CategoryConflict},
		{Transient("t"), CategoryTransient},
		{Internal("i"), CategoryInternal},
	}
	for _, tt := range tests {
		if tt.err.Category != tt.want {
			t.Errorf("category = %q, want %q", tt.err.Category, tt.want)
		}
	}
}

func TestToolError_SurvivesWrapping(t *testing.T) {
	inner := Transient("dial failed")
	wrapped := fmt.Errorf("sending text: %w", inner)

	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) {
		t.Fatal("errors.As should find ToolError in wrapped chain")
	}
	if toolErr.Category != CategoryTransient {
		t.Errorf("Category = %q after unwrap", toolErr.Category)
	}
}

func TestToolError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := &ToolError{Category: CategoryInternal, Err: fmt.Errorf("wrapping: %w", cause)}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the root cause through ToolError")
	}
}
