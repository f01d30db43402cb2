// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package query implements the read side of the CLI: screen capture in
// its three renderings, the blocking waits, and the expect assertions
// that exit nonzero on failure.
package query
