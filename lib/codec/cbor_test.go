// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

// sampleFrame is a representative trace-shaped record using cbor
// struct tags.
type sampleFrame struct {
	Seq     uint64 `cbor:"seq"`
	Kind    string `cbor:"kind"`
	Content string `cbor:"content,omitempty"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	t.Parallel()

	original := sampleFrame{
		Seq:     42,
		Kind:    "screen",
		Content: "user@host:~$ ",
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleFrame
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	t.Parallel()

	// Map iteration order is randomized in Go, so identical encodings
	// of a map prove the sorted-keys encoder configuration is active.
	value := map[string]int{"cursor_x": 3, "cursor_y": 9, "seq": 1, "alpha": 0}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}

	for range 8 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("repeat Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	t.Parallel()

	frames := []sampleFrame{
		{Seq: 1, Kind: "input", Content: "ls -la"},
		{Seq: 2, Kind: "screen", Content: "total 48"},
		{Seq: 3, Kind: "screen"},
	}

	var buf bytes.Buffer
	encoder := NewEncoder(&buf)
	for _, frame := range frames {
		if err := encoder.Encode(frame); err != nil {
			t.Fatalf("Encode seq %d: %v", frame.Seq, err)
		}
	}

	decoder := NewDecoder(&buf)
	for _, want := range frames {
		var got sampleFrame
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode seq %d: %v", want.Seq, err)
		}
		if got != want {
			t.Errorf("stream roundtrip: got %+v, want %+v", got, want)
		}
	}
}

func TestUnmarshalAnyUsesStringKeyedMaps(t *testing.T) {
	t.Parallel()

	data, err := Marshal(map[string]any{"action": "press", "key": "Enter"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	m, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded type = %T, want map[string]any", decoded)
	}
	if m["key"] != "Enter" {
		t.Errorf("m[key] = %v, want Enter", m["key"])
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	// A frame written by a newer tool with an extra field must still
	// decode into the older struct.
	data, err := Marshal(map[string]any{"seq": 7, "kind": "screen", "future": true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleFrame
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Seq != 7 || decoded.Kind != "screen" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	data, err := Marshal(sampleFrame{Seq: 9, Kind: "input"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	diag, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diag, `"kind"`) || !strings.Contains(diag, `"input"`) {
		t.Errorf("diagnostic %q missing expected fields", diag)
	}
}
