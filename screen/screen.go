// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package screen models terminal screen content as the Ghostty host
// reports it: a plain-text form with cursor position, and a structured
// form of per-row style runs (spans) that expand lazily to styled
// cells. Spans are the source of truth; cells are always derived.
package screen

import "strings"

// Screen is the text form of a surface's content at one instant.
type Screen struct {
	// Text is the raw screen content, escape sequences included.
	Text string

	// CursorX and CursorY are the cursor position in cells, origin
	// top left.
	CursorX int
	CursorY int
}

// PlainText returns Text with escape sequences stripped. It is
// recomputed on every call so it can never drift from Text.
func (s Screen) PlainText() string { return StripANSI(s.Text) }

// Lines splits the raw text into lines.
func (s Screen) Lines() []string { return strings.Split(s.Text, "\n") }

// Contains reports whether the raw text contains substr.
func (s Screen) Contains(substr string) bool { return strings.Contains(s.Text, substr) }
