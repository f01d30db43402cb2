// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for ghostctl.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a parameter struct bound
// to pflag flags via struct tags, and a Run function. Commands are
// assembled into a tree in cmd/ghostctl/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing,
// and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3). This is
// implemented in suggest.go.
//
// Commands that talk to a Ghostty instance embed [ClientConfig] (the
// connection flags --socket, --target, --timeout, --no-validate) or
// [TargetConfig] (connection flags plus surface selection via
// --surface and --pick) in their parameter struct. Both merge defaults
// from the optional config file before flags apply.
//
// The same parameter structs drive JSON Schema generation (schema.go)
// so that the MCP server can expose leaf commands as tools without any
// per-command glue.
package cli
