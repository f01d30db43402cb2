// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package trace implements the .gtrace session trace format: an
// append-only file of timestamped frames recording what a terminal
// automation session did (inputs sent) and saw (screen snapshots).
//
// A trace file is an 8-byte magic header followed by a sequence of
// frame records. Each record carries a BLAKE3 keyed hash of the
// frame's encoded bytes, a compression tag, and the compressed
// payload:
//
//	file   := magic record*
//	magic  := "GTRACE" version reserved            (8 bytes)
//	record := hash[32] tag[1] reserved[3]
//	          compressedSize[4] uncompressedSize[4]
//	          payload[compressedSize]              (sizes little-endian)
//
// Frames are CBOR with deterministic encoding (lib/codec), so the
// stored hash is reproducible from the decoded frame. The hash is
// computed over the uncompressed bytes; [Reader] re-verifies it on
// every read, so corruption and splicing are detected at the frame
// that was tampered with, not at the end of the file.
//
// Payloads default to zstd compression. Frames smaller than the
// compression threshold, and frames that do not shrink, are stored
// raw with [CompressionNone].
//
// [Writer] appends frames, [Recorder] stamps and writes them during a
// live session, [Reader] iterates them back, and [Verify] checks a
// whole file and reports the session digest.
package trace
