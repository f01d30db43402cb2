// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ghostctl/ghostctl/lib/codec"
)

// Reader iterates the frames of a trace stream, re-verifying each
// frame's stored hash and sequence number as it goes. Corruption is
// reported at the frame where it occurred.
type Reader struct {
	in     io.Reader
	seq    uint64
	hashes []Hash
	header bool
}

// NewReader creates a reader on in. The magic header is checked on
// the first Next call, so an empty file yields io.EOF immediately
// without a format error.
func NewReader(in io.Reader) *Reader {
	return &Reader{in: in}
}

// Next reads, verifies, and decodes the next frame. Returns io.EOF
// at the clean end of the stream. A truncated record, hash mismatch,
// or out-of-order sequence number is an error, not EOF.
func (r *Reader) Next() (*Frame, error) {
	if !r.header {
		var magic [8]byte
		if _, err := io.ReadFull(r.in, magic[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("reading trace magic: %w", err)
		}
		if !bytes.Equal(magic[:6], fileMagic[:6]) {
			return nil, fmt.Errorf("not a trace file (bad magic %q)", magic[:6])
		}
		if magic[6] != formatVersion {
			return nil, fmt.Errorf("unsupported trace version %d (want %d)", magic[6], formatVersion)
		}
		r.header = true
	}

	var header [recordHeaderSize]byte
	if _, err := io.ReadFull(r.in, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		// An unexpected EOF mid-header means the file was cut off.
		return nil, fmt.Errorf("frame %d: reading record header: %w", r.seq, err)
	}

	var stored Hash
	copy(stored[:], header[:32])
	tag := CompressionTag(header[32])
	compressedSize := binary.LittleEndian.Uint32(header[36:40])
	uncompressedSize := binary.LittleEndian.Uint32(header[40:44])

	if uncompressedSize > maxFrameSize || compressedSize > maxFrameSize {
		return nil, fmt.Errorf("frame %d: implausible size %d/%d (corrupt header?)",
			r.seq, compressedSize, uncompressedSize)
	}

	payload := make([]byte, compressedSize)
	if _, err := io.ReadFull(r.in, payload); err != nil {
		return nil, fmt.Errorf("frame %d: reading payload: %w", r.seq, err)
	}

	encoded, err := Decompress(payload, tag, int(uncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w", r.seq, err)
	}

	if got := HashFrame(encoded); got != stored {
		return nil, fmt.Errorf("frame %d: hash mismatch (stored %s, computed %s)",
			r.seq, FormatHash(stored), FormatHash(got))
	}

	var frame Frame
	if err := codec.Unmarshal(encoded, &frame); err != nil {
		return nil, fmt.Errorf("frame %d: decoding: %w", r.seq, err)
	}
	if frame.Seq != r.seq {
		return nil, fmt.Errorf("frame %d: stored sequence number %d (spliced file?)",
			r.seq, frame.Seq)
	}

	r.seq++
	r.hashes = append(r.hashes, stored)
	return &frame, nil
}

// SessionDigest returns the session digest over the frames read so
// far. After draining the stream to io.EOF it covers the whole trace
// and matches the writing side's digest.
func (r *Reader) SessionDigest() Hash {
	return HashSession(r.hashes)
}

// Summary describes a verified trace file.
type Summary struct {
	Frames  int
	Screens int
	Inputs  int
	Digest  Hash
}

// Verify reads an entire trace stream, checking every frame hash and
// sequence number, and returns counts plus the session digest.
func Verify(in io.Reader) (Summary, error) {
	reader := NewReader(in)
	var summary Summary
	for {
		frame, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Summary{}, err
		}
		summary.Frames++
		switch frame.Kind {
		case FrameScreen:
			summary.Screens++
		case FrameInput:
			summary.Inputs++
		}
	}
	summary.Digest = reader.SessionDigest()
	return summary, nil
}

// VerifyFile opens path and verifies it with [Verify].
func VerifyFile(path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening trace: %w", err)
	}
	defer file.Close()
	return Verify(file)
}
