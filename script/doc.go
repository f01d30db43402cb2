// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package script parses and executes scenario scripts: JSONC files
// describing a sequence of terminal automation steps (inputs, waits,
// assertions) run against a single Ghostty surface.
//
// A script file is a JSON object extended with // line comments,
// /* block comments */, and trailing commas:
//
//	{
//	    // Smoke-test the shell.
//	    "name": "shell-smoke",
//	    "steps": [
//	        {"wait_prompt": {}},
//	        {"send": {"text": "echo hello"}},
//	        {"expect_contain": {"text": "hello"}},
//	    ],
//	}
//
// Each step is an object with exactly one key naming the action. The
// action set is closed: [Parse] rejects unknown action names and
// unknown payload fields, so typos fail at validation rather than
// silently doing nothing. [Runner] executes a parsed script and
// optionally records every input and resulting screen to a session
// trace.
package script
