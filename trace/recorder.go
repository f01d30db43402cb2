// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"sync"

	"github.com/ghostctl/ghostctl/lib/clock"
)

// Recorder stamps frames with the current time and appends them to a
// writer. Safe for concurrent use; the underlying writer is not, so
// the recorder serializes appends.
type Recorder struct {
	mu     sync.Mutex
	writer *Writer
	clk    clock.Clock
}

// NewRecorder creates a recorder on writer. A nil clk uses the real
// clock; tests pass clock.Fake for deterministic timestamps.
func NewRecorder(writer *Writer, clk clock.Clock) *Recorder {
	if clk == nil {
		clk = clock.Real()
	}
	return &Recorder{writer: writer, clk: clk}
}

// Screen records a screen snapshot frame.
func (r *Recorder) Screen(surface, text string, cursorX, cursorY int, label string) error {
	return r.append(&Frame{
		Kind:    FrameScreen,
		Surface: surface,
		Label:   label,
		Screen:  &ScreenFrame{Text: text, CursorX: cursorX, CursorY: cursorY},
	})
}

// Input records an input event frame.
func (r *Recorder) Input(surface string, event InputFrame, label string) error {
	return r.append(&Frame{
		Kind:    FrameInput,
		Surface: surface,
		Label:   label,
		Input:   &event,
	})
}

// SessionDigest returns the digest over everything recorded so far.
func (r *Recorder) SessionDigest() Hash {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writer.SessionDigest()
}

func (r *Recorder) append(frame *Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	frame.Time = r.clk.Now().UnixNano()
	return r.writer.Append(frame)
}
