// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/zeebo/blake3"
)

// FrameKind discriminates the two frame payloads.
type FrameKind string

const (
	// FrameScreen is a screen snapshot: what the surface showed at
	// Frame.Time.
	FrameScreen FrameKind = "screen"

	// FrameInput is an input event: what the session sent to the
	// surface at Frame.Time.
	FrameInput FrameKind = "input"
)

// Frame is one timestamped entry in a session trace. Exactly one of
// Input and Screen is set, matching Kind.
type Frame struct {
	// Seq is the zero-based position of the frame in the file. The
	// writer assigns it; the reader rejects files whose stored
	// sequence numbers disagree with frame positions.
	Seq uint64 `cbor:"seq"`

	// Time is the frame timestamp in Unix nanoseconds.
	Time int64 `cbor:"time"`

	// Kind is the payload discriminator.
	Kind FrameKind `cbor:"kind"`

	// Surface is the Ghostty surface id the frame belongs to.
	Surface string `cbor:"surface,omitempty"`

	// Label is free-form provenance, e.g. the script step that
	// produced the frame ("steps[3] wait_text").
	Label string `cbor:"label,omitempty"`

	// Input is set for FrameInput frames.
	Input *InputFrame `cbor:"input,omitempty"`

	// Screen is set for FrameScreen frames.
	Screen *ScreenFrame `cbor:"screen,omitempty"`
}

// Timestamp returns Time as a time.Time.
func (f *Frame) Timestamp() time.Time { return time.Unix(0, f.Time) }

// InputFrame records one input event. Action names the high-level
// operation (send, type, press, click, drag, scroll, resize); the
// remaining fields carry whichever parameters the action has.
type InputFrame struct {
	Action string  `cbor:"action"`
	Text   string  `cbor:"text,omitempty"`
	Key    string  `cbor:"key,omitempty"`
	Mods   string  `cbor:"mods,omitempty"`
	Button string  `cbor:"button,omitempty"`
	X      float64 `cbor:"x,omitempty"`
	Y      float64 `cbor:"y,omitempty"`
	ToX    float64 `cbor:"to_x,omitempty"`
	ToY    float64 `cbor:"to_y,omitempty"`
	Rows   int     `cbor:"rows,omitempty"`
	Cols   int     `cbor:"cols,omitempty"`
}

// ScreenFrame records a screen snapshot: the raw text as the host
// reported it (escape sequences included) and the cursor position.
type ScreenFrame struct {
	Text    string `cbor:"text"`
	CursorX int    `cbor:"cursor_x"`
	CursorY int    `cbor:"cursor_y"`
}

// Hash is a 32-byte BLAKE3 digest. Frame hashes and the session
// digest are this size.
type Hash [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing. Domain
// separation ensures the same bytes hash differently in different
// contexts, so a frame hash can never be confused for a session
// digest. The byte values are the ASCII domain name zero-padded to 32
// bytes, readable in hex dumps without weakening the keyed mode.
type domainKey [32]byte

// Domain separation keys. These are format constants. Changing them
// invalidates every existing trace file.
var (
	frameDomainKey = domainKey{
		'g', 'h', 'o', 's', 't', 'c', 't', 'l', '.', 't', 'r', 'a', 'c', 'e', '.',
		'f', 'r', 'a', 'm', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	sessionDomainKey = domainKey{
		'g', 'h', 'o', 's', 't', 'c', 't', 'l', '.', 't', 'r', 'a', 'c', 'e', '.',
		's', 'e', 's', 's', 'i', 'o', 'n', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// HashFrame computes the frame-domain keyed hash of a frame's encoded
// (uncompressed) bytes. This is the hash stored in each record header.
func HashFrame(encoded []byte) Hash {
	return keyedHash(frameDomainKey, encoded)
}

// HashSession computes the session-domain digest over the ordered
// frame hashes of a trace. Appending, dropping, or reordering any
// frame changes the digest.
func HashSession(frameHashes []Hash) Hash {
	hasher, err := blake3.NewKeyed(sessionDomainKey[:])
	if err != nil {
		panic("trace: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	for _, h := range frameHashes {
		hasher.Write(h[:])
	}
	var digest Hash
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// FormatHash returns the hex form of a hash, the canonical
// representation in CLI output and error messages.
func FormatHash(h Hash) string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	var h Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return h, fmt.Errorf("parsing trace hash: %w", err)
	}
	if len(decoded) != 32 {
		return h, fmt.Errorf("trace hash is %d bytes, want 32", len(decoded))
	}
	copy(h[:], decoded)
	return h, nil
}

// keyedHash computes a BLAKE3 keyed hash with the given domain key.
func keyedHash(key domainKey, data []byte) Hash {
	// NewKeyed requires exactly 32 bytes, which domainKey guarantees.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("trace: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}
