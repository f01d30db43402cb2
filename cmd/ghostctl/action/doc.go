// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package action implements the input-injection commands: send, type,
// press, key, click, drag, and scroll.
package action
