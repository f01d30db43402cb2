// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ghostctl/ghostctl/lib/codec"
)

// Format constants.
const (
	formatVersion = 1

	// recordHeaderSize is the fixed per-record header: 32-byte frame
	// hash + 1-byte compression tag + 3 reserved bytes + 4-byte
	// compressed size + 4-byte uncompressed size. The reserved bytes
	// keep the uint32 fields 4-byte aligned.
	recordHeaderSize = 44

	// compressThreshold is the minimum encoded frame size worth
	// compressing. Tiny frames (single key presses) gain nothing
	// from a zstd header.
	compressThreshold = 64

	// maxFrameSize bounds a single encoded frame. Screen snapshots
	// are at most a few hundred KiB of text; anything larger means
	// a corrupt record header, not a real frame.
	maxFrameSize = 16 << 20
)

// fileMagic is the 8-byte trace file signature: "GTRACE" + version
// byte + reserved byte.
var fileMagic = [8]byte{'G', 'T', 'R', 'A', 'C', 'E', formatVersion, 0}

// Writer appends frames to a trace stream. It owns frame sequence
// numbering: callers hand it frames in session order and the writer
// stamps Seq before encoding.
type Writer struct {
	out         io.Writer
	compression CompressionTag
	seq         uint64
	hashes      []Hash
	headerDone  bool
}

// NewWriter creates a trace writer on out with the given payload
// compression (CompressionZstd for typical use). The file magic is
// written lazily with the first frame, so creating a writer on a file
// that never records anything leaves the file empty.
func NewWriter(out io.Writer, compression CompressionTag) *Writer {
	return &Writer{out: out, compression: compression}
}

// Append encodes, hashes, compresses, and writes one frame. The
// frame's Seq field is overwritten with the writer's own counter;
// everything else is recorded as given.
func (w *Writer) Append(frame *Frame) error {
	if !w.headerDone {
		if _, err := w.out.Write(fileMagic[:]); err != nil {
			return fmt.Errorf("writing trace magic: %w", err)
		}
		w.headerDone = true
	}

	frame.Seq = w.seq

	encoded, err := codec.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encoding frame %d: %w", frame.Seq, err)
	}

	frameHash := HashFrame(encoded)

	tag := w.compression
	payload := encoded
	if tag != CompressionNone && len(encoded) >= compressThreshold {
		compressed, compressErr := Compress(encoded, tag)
		switch {
		case compressErr == nil:
			payload = compressed
		case IsIncompressible(compressErr):
			tag = CompressionNone
		default:
			return fmt.Errorf("compressing frame %d: %w", frame.Seq, compressErr)
		}
	} else {
		tag = CompressionNone
	}

	var header [recordHeaderSize]byte
	copy(header[:32], frameHash[:])
	header[32] = byte(tag)
	binary.LittleEndian.PutUint32(header[36:40], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(encoded)))

	if _, err := w.out.Write(header[:]); err != nil {
		return fmt.Errorf("writing frame %d header: %w", frame.Seq, err)
	}
	if _, err := w.out.Write(payload); err != nil {
		return fmt.Errorf("writing frame %d payload: %w", frame.Seq, err)
	}

	w.seq++
	w.hashes = append(w.hashes, frameHash)
	return nil
}

// Count returns the number of frames written so far.
func (w *Writer) Count() uint64 { return w.seq }

// SessionDigest returns the session-domain digest over all frame
// hashes written so far. Stable only once the session is complete.
func (w *Writer) SessionDigest() Hash {
	return HashSession(w.hashes)
}
