// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides ghostctl's standard CBOR encoding
// configuration.
//
// Ghostctl uses two serialization formats with a clear boundary: JSON
// for the Ghostty wire protocol, scenario scripts, and CLI output;
// CBOR for session trace files on disk. This package holds the shared
// CBOR modes so every encoder in the module encodes identically
// without duplicating configuration.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length
// items. Same logical data always produces identical bytes, which is
// what makes the per-frame integrity hashes in the trace format
// meaningful: a frame's hash is computed over its encoded bytes, so
// encoding must be a pure function of the frame.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// [Diagnose] renders encoded bytes in CBOR diagnostic notation
// (RFC 8949 §8) for debugging and the trace inspection commands.
package codec
