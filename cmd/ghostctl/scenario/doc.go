// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package scenario implements the script and trace commands: running
// and checking JSONC automation scripts, and inspecting or verifying
// the session traces they record.
package scenario
