// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package screen

import "strings"

// StripANSI removes terminal escape sequences from s. Three sequence
// classes are recognized:
//
//   - two-byte sequences: ESC followed by one byte in @-Z, \, ], ^, _
//   - CSI: ESC '[' + parameter bytes (0x30-0x3F) + intermediate bytes
//     (0x20-0x2F) + one final byte (0x40-0x7E)
//   - OSC: ESC ']' + any bytes except BEL and ESC, terminated by BEL
//     or by ESC '\'
//
// Stripping is idempotent and leaves escape-free text untouched.
// Printable text adjacent to a sequence is never consumed. A sequence
// left unterminated at the end of the input is dropped; an ESC that
// introduces none of the classes above passes through unchanged.
//
// The scan is byte-oriented: every byte of a multi-byte UTF-8 character
// is >= 0x80 and therefore outside all sequence-structure ranges, so
// encoded text passes through intact.
func StripANSI(s string) string {
	// Fast path: no ESC byte, no work.
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != 0x1b {
			out.WriteByte(s[i])
			i++
			continue
		}
		if i+1 >= len(s) {
			// Lone ESC at end of input.
			out.WriteByte(s[i])
			i++
			continue
		}

		switch next := s[i+1]; {
		case next == '[':
			i = skipCSI(s, i+2)
		case next == ']':
			i = skipOSC(s, i+2)
		case next >= 0x40 && next <= 0x5f:
			// Two-byte sequence. '[' and ']' are in this range but
			// were claimed by the CSI and OSC cases above.
			i += 2
		default:
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String()
}

// skipCSI consumes a CSI body starting at the first byte after "ESC [".
// It returns the index of the first byte after the sequence. When the
// byte stream violates the param/intermediate/final grammar the bytes
// consumed so far are dropped and scanning resumes at the offending
// byte; when the input ends mid-sequence the partial sequence is
// dropped.
func skipCSI(s string, start int) int {
	i := start
	for i < len(s) && s[i] >= 0x30 && s[i] <= 0x3f {
		i++
	}
	for i < len(s) && s[i] >= 0x20 && s[i] <= 0x2f {
		i++
	}
	if i < len(s) && s[i] >= 0x40 && s[i] <= 0x7e {
		return i + 1
	}
	return i
}

// skipOSC consumes an OSC body starting at the first byte after "ESC ]".
// The body runs until BEL (consumed) or ESC '\' (both consumed). An ESC
// not followed by '\' ends the body without being consumed, so it is
// re-examined as the start of a new sequence.
func skipOSC(s string, start int) int {
	i := start
	for i < len(s) && s[i] != 0x07 && s[i] != 0x1b {
		i++
	}
	if i >= len(s) {
		return i
	}
	if s[i] == 0x07 {
		return i + 1
	}
	if i+1 < len(s) && s[i+1] == '\\' {
		return i + 2
	}
	return i
}
