// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package ghostty drives a running Ghostty instance over its control
// socket: creating windows and tabs, sending keystrokes and mouse
// gestures, reading screen content, and waiting for output.
//
// Every operation is a complete request cycle on a fresh connection,
// so no connection state is held between calls and concurrent use
// needs no coordination. Terminal handles carry a metadata snapshot
// that only changes on Refresh; screen content is always fetched
// fresh.
//
// Construct a Client, find or create a terminal, then drive it:
//
//	client := ghostty.NewClient(ghostty.Options{})
//	term, err := client.Terminals().First(ctx)
//	if err != nil {
//		return err
//	}
//	if err := term.Send(ctx, "make test"); err != nil {
//		return err
//	}
//	if _, err := term.WaitForText(ctx, "PASS", ghostty.WaitTextOptions{}); err != nil {
//		return err
//	}
//
// Failures are classified: ConnectionError for an unusable socket,
// ProtocolError for malformed or rejected exchanges, TimeoutError for
// elapsed deadlines, and AssertionError for failed expectations.
package ghostty
