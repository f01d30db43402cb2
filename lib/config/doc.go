// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads ghostctl's optional YAML configuration file.
//
// The file holds client defaults (socket path, target instance,
// request timeout, poll interval, socket-validation toggle, log
// level). Every field has a usable built-in default, so the file is
// optional end to end: [Load] returns a zero Config when no file
// exists on the search path. CLI flags always override file values.
//
// The search order is:
//
//  1. GHOSTCTL_CONFIG environment variable (explicit path; a missing
//     file here is an error, since the user asked for it)
//  2. $XDG_CONFIG_HOME/ghostctl/config.yaml
//  3. ~/.config/ghostctl/config.yaml
//
// Before decoding, ${VAR} and ${VAR:-default} patterns anywhere in
// the file are expanded from the environment. Decoding is strict:
// unknown keys are an error, so typos in field names surface
// immediately instead of silently falling back to defaults.
//
// Key exports:
//
//   - [Config] -- the decoded file, raw strings for durations
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- structural checks, joined into one error
//
// This package depends on no other ghostctl packages.
package config
