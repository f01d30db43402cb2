// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package watchui is the bubbletea model behind "ghostctl watch": a
// live read-only view of one Ghostty surface, polled on a fixed
// interval. The model owns connection and polling; the command wires
// in a client and a target resolver and runs the program.
package watchui
