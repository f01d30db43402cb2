// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

// ToolAnnotations describes behavioral properties of a CLI command
// when exposed as a tool by a tool server (e.g., MCP). Tool servers
// translate these properties into protocol-specific hints that help
// agents decide which tools are safe to call, which can be retried,
// and which require confirmation.
//
// All fields are pointers. A nil field means "unspecified"; the tool
// server applies its own defaults (which in MCP are: not read-only,
// destructive, not idempotent, open-world).
//
// Command authors should set Annotations on every leaf command using
// one of the preset constructors: [ReadOnly], [Idempotent], [Create],
// or [Destructive].
type ToolAnnotations struct {
	// ReadOnly is true when the command only reads terminal state and
	// never injects input or changes layout. Agents may call
	// read-only tools freely without confirmation prompts.
	ReadOnly *bool

	// Destructive is true when the command may irreversibly remove
	// state, like closing a surface. Agents should require explicit
	// confirmation before calling destructive tools.
	Destructive *bool

	// Idempotent is true when repeated calls with identical arguments
	// produce the same result. Agents may safely retry idempotent
	// tools on transient failures.
	Idempotent *bool

	// OpenWorld is true when the command's effect reaches beyond the
	// Ghostty instance itself. Injecting input into a live shell is
	// open-world: whatever runs there can touch anything.
	OpenWorld *bool
}

// ReadOnly returns annotations for commands that query state without
// modifying it: list, screen, wait, expect, trace show.
func ReadOnly() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(true),
		Destructive: boolPtr(false),
		Idempotent:  boolPtr(true),
		OpenWorld:   boolPtr(false),
	}
}

// Idempotent returns annotations for commands that modify state but
// converge to the same result when called repeatedly with identical
// arguments: focus, resize.
func Idempotent() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(false),
		Destructive: boolPtr(false),
		Idempotent:  boolPtr(true),
		OpenWorld:   boolPtr(false),
	}
}

// Create returns annotations for commands whose side effects
// accumulate on repeated calls: new window, send, type, press, click,
// drag, scroll, script run.
func Create() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(false),
		Destructive: boolPtr(false),
		Idempotent:  boolPtr(false),
		OpenWorld:   boolPtr(true),
	}
}

// Destructive returns annotations for commands that irreversibly
// remove state: close.
func Destructive() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(false),
		Destructive: boolPtr(true),
		Idempotent:  boolPtr(false),
		OpenWorld:   boolPtr(false),
	}
}

func boolPtr(value bool) *bool {
	return &value
}
