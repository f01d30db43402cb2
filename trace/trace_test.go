// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ghostctl/ghostctl/lib/clock"
)

func screenFrame(surface, text string) *Frame {
	return &Frame{
		Kind:    FrameScreen,
		Surface: surface,
		Screen:  &ScreenFrame{Text: text, CursorX: 3, CursorY: 1},
	}
}

func inputFrame(surface, action, text string) *Frame {
	return &Frame{
		Kind:    FrameInput,
		Surface: surface,
		Input:   &InputFrame{Action: action, Text: text},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer := NewWriter(&buf, CompressionZstd)

	// A mix of small (raw) and large (compressed) frames.
	long := strings.Repeat("user@host:~$ ls -la\n", 200)
	frames := []*Frame{
		inputFrame("surface-1", "send", "ls\r"),
		screenFrame("surface-1", long),
		inputFrame("surface-1", "press", ""),
		screenFrame("surface-1", "$ "),
	}
	for _, frame := range frames {
		frame.Time = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).UnixNano()
		if err := writer.Append(frame); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	reader := NewReader(bytes.NewReader(buf.Bytes()))
	for i, want := range frames {
		got, err := reader.Next()
		if err != nil {
			t.Fatalf("Next frame %d: %v", i, err)
		}
		if got.Seq != uint64(i) {
			t.Errorf("frame %d: Seq = %d", i, got.Seq)
		}
		if got.Kind != want.Kind || got.Surface != want.Surface {
			t.Errorf("frame %d: got kind %q surface %q, want %q %q",
				i, got.Kind, got.Surface, want.Kind, want.Surface)
		}
		if want.Screen != nil && (got.Screen == nil || got.Screen.Text != want.Screen.Text) {
			t.Errorf("frame %d: screen text mismatch", i)
		}
		if want.Input != nil && (got.Input == nil || got.Input.Text != want.Input.Text) {
			t.Errorf("frame %d: input mismatch", i)
		}
	}
	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("after last frame: err = %v, want io.EOF", err)
	}

	if reader.SessionDigest() != writer.SessionDigest() {
		t.Error("reader and writer session digests differ")
	}
}

func TestEmptyStream(t *testing.T) {
	t.Parallel()

	// A writer that never appended leaves nothing behind, and the
	// reader treats that as a clean empty trace.
	var buf bytes.Buffer
	NewWriter(&buf, CompressionZstd)
	if buf.Len() != 0 {
		t.Fatalf("writer wrote %d bytes with no frames", buf.Len())
	}

	reader := NewReader(&buf)
	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("Next on empty stream: %v, want io.EOF", err)
	}
}

func TestBadMagic(t *testing.T) {
	t.Parallel()

	reader := NewReader(strings.NewReader("NOTRACE0 garbage"))
	_, err := reader.Next()
	if err == nil || !strings.Contains(err.Error(), "bad magic") {
		t.Fatalf("Next = %v, want bad magic error", err)
	}
}

func TestCorruptPayloadDetected(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer := NewWriter(&buf, CompressionNone)
	frame := screenFrame("s", "hello world, this is screen content")
	if err := writer.Append(frame); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// Flip one byte inside the payload (past magic + record header).
	data := buf.Bytes()
	data[len(data)-5] ^= 0xff

	reader := NewReader(bytes.NewReader(data))
	_, err := reader.Next()
	if err == nil || !strings.Contains(err.Error(), "hash mismatch") {
		t.Fatalf("Next on corrupt payload = %v, want hash mismatch", err)
	}
}

func TestTruncatedFileDetected(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer := NewWriter(&buf, CompressionZstd)
	if err := writer.Append(screenFrame("s", strings.Repeat("x", 500))); err != nil {
		t.Fatalf("Append: %v", err)
	}

	reader := NewReader(bytes.NewReader(buf.Bytes()[:buf.Len()-3]))
	_, err := reader.Next()
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("Next on truncated file = %v, want explicit error", err)
	}
}

func TestSplicedSequenceDetected(t *testing.T) {
	t.Parallel()

	// Write two single-frame traces and splice the second file's
	// frame (seq 0) after the first file's frame. The stored
	// sequence number no longer matches the position.
	var first, second bytes.Buffer
	w1 := NewWriter(&first, CompressionNone)
	if err := w1.Append(screenFrame("a", "first trace frame")); err != nil {
		t.Fatal(err)
	}
	w2 := NewWriter(&second, CompressionNone)
	if err := w2.Append(screenFrame("b", "second trace frame")); err != nil {
		t.Fatal(err)
	}

	spliced := append([]byte{}, first.Bytes()...)
	spliced = append(spliced, second.Bytes()[len(fileMagic):]...)

	reader := NewReader(bytes.NewReader(spliced))
	if _, err := reader.Next(); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	_, err := reader.Next()
	if err == nil || !strings.Contains(err.Error(), "sequence") {
		t.Fatalf("spliced frame: %v, want sequence error", err)
	}
}

func TestVerifyCounts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer := NewWriter(&buf, CompressionZstd)
	for i := 0; i < 3; i++ {
		if err := writer.Append(inputFrame("s", "send", "echo hi\r")); err != nil {
			t.Fatal(err)
		}
		if err := writer.Append(screenFrame("s", "hi")); err != nil {
			t.Fatal(err)
		}
	}

	summary, err := Verify(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if summary.Frames != 6 || summary.Inputs != 3 || summary.Screens != 3 {
		t.Errorf("summary = %+v, want 6 frames, 3 inputs, 3 screens", summary)
	}
	if summary.Digest != writer.SessionDigest() {
		t.Error("digest mismatch")
	}
}

func TestRecorderStampsClockTime(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := clock.Fake(start)

	var buf bytes.Buffer
	recorder := NewRecorder(NewWriter(&buf, CompressionZstd), fake)

	if err := recorder.Input("s", InputFrame{Action: "send", Text: "ls\r"}, "steps[0] send"); err != nil {
		t.Fatalf("Input: %v", err)
	}
	fake.Advance(250 * time.Millisecond)
	if err := recorder.Screen("s", "ls output", 0, 2, "steps[1] wait_text"); err != nil {
		t.Fatalf("Screen: %v", err)
	}

	reader := NewReader(bytes.NewReader(buf.Bytes()))
	first, err := reader.Next()
	if err != nil {
		t.Fatal(err)
	}
	second, err := reader.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got := first.Timestamp(); !got.Equal(start) {
		t.Errorf("first frame time = %v, want %v", got, start)
	}
	if got := second.Time - first.Time; got != int64(250*time.Millisecond) {
		t.Errorf("frame spacing = %dns, want 250ms", got)
	}
	if first.Label != "steps[0] send" {
		t.Errorf("label = %q", first.Label)
	}
}

func TestHashRoundTrip(t *testing.T) {
	t.Parallel()

	h := HashFrame([]byte("some encoded frame"))
	parsed, err := ParseHash(FormatHash(h))
	if err != nil {
		t.Fatalf("ParseHash: %v", err)
	}
	if parsed != h {
		t.Error("hash did not round-trip through hex")
	}

	if _, err := ParseHash("zz"); err == nil {
		t.Error("ParseHash accepted invalid hex")
	}
}

func TestDomainSeparation(t *testing.T) {
	t.Parallel()

	data := []byte("identical bytes")
	frameHash := HashFrame(data)
	sessionHash := HashSession([]Hash{})
	if frameHash == sessionHash {
		t.Error("frame and session domains produced the same hash")
	}

	// Session digest changes with order.
	a, b := HashFrame([]byte("a")), HashFrame([]byte("b"))
	if HashSession([]Hash{a, b}) == HashSession([]Hash{b, a}) {
		t.Error("session digest is order-insensitive")
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	t.Parallel()

	compressible := []byte(strings.Repeat("abcdef", 100))
	for _, tag := range []CompressionTag{CompressionLZ4, CompressionZstd} {
		compressed, err := Compress(compressible, tag)
		if err != nil {
			t.Fatalf("%s: Compress: %v", tag, err)
		}
		if len(compressed) >= len(compressible) {
			t.Fatalf("%s: did not shrink", tag)
		}
		restored, err := Decompress(compressed, tag, len(compressible))
		if err != nil {
			t.Fatalf("%s: Decompress: %v", tag, err)
		}
		if !bytes.Equal(restored, compressible) {
			t.Fatalf("%s: round-trip mismatch", tag)
		}
	}
}
