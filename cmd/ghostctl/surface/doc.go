// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package surface implements the surface-management commands: list,
// new, focus, close, resize, and screenshot. Each constructor returns
// a root-level command wired into the tree by cmd/ghostctl/commands.
package surface
