// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"encoding/json"
	"errors"
	"testing"
)

// Flattening preserves the nested traversal order: all surfaces of a
// tab, all tabs of a window, then the next window.
func TestDecodeSurfacesFlattenOrder(t *testing.T) {
	t.Parallel()

	tree := `{
		"windows": [
			{"tabs": [
				{"surfaces": [{"id": "a"}, {"id": "b"}]},
				{"surfaces": [{"id": "c"}]}
			]},
			{"tabs": [
				{"surfaces": [{"id": "d"}]}
			]}
		]
	}`
	surfaces, err := decodeSurfaces(json.RawMessage(tree))
	if err != nil {
		t.Fatalf("decodeSurfaces: %v", err)
	}
	want := []string{"a", "b", "c", "d"}
	if len(surfaces) != len(want) {
		t.Fatalf("got %d surfaces, want %d", len(surfaces), len(want))
	}
	for i, id := range want {
		if surfaces[i].ID != id {
			t.Errorf("surfaces[%d].ID = %q, want %q", i, surfaces[i].ID, id)
		}
	}
}

func TestDecodeSurfacesDefaults(t *testing.T) {
	t.Parallel()

	tree := `{"windows":[{"tabs":[{"surfaces":[
		{"id": "bare"},
		{"id": "sized", "title": "vim", "pwd": "/src", "focused": true, "rows": 50, "cols": 132},
		{"id": "zeroed", "rows": 0, "cols": 0}
	]}]}]}`
	surfaces, err := decodeSurfaces(json.RawMessage(tree))
	if err != nil {
		t.Fatalf("decodeSurfaces: %v", err)
	}

	bare := surfaces[0]
	if bare.Title != "" || bare.Pwd != "" || bare.Focused {
		t.Errorf("bare surface metadata = %+v, want empty defaults", bare)
	}
	if bare.Rows != 24 || bare.Cols != 80 {
		t.Errorf("bare surface size = %dx%d, want 24x80", bare.Rows, bare.Cols)
	}

	sized := surfaces[1]
	if sized.Rows != 50 || sized.Cols != 132 || sized.Title != "vim" || !sized.Focused {
		t.Errorf("sized surface = %+v", sized)
	}

	// An explicit zero is the host's value, not an absent field.
	zeroed := surfaces[2]
	if zeroed.Rows != 0 || zeroed.Cols != 0 {
		t.Errorf("zeroed surface size = %dx%d, want 0x0", zeroed.Rows, zeroed.Cols)
	}
}

func TestDecodeSurfacesEmptyTree(t *testing.T) {
	t.Parallel()

	surfaces, err := decodeSurfaces(json.RawMessage(`{"windows":[]}`))
	if err != nil {
		t.Fatalf("decodeSurfaces: %v", err)
	}
	if len(surfaces) != 0 {
		t.Errorf("got %d surfaces, want 0", len(surfaces))
	}
}

func TestDecodeSurfacesMalformed(t *testing.T) {
	t.Parallel()

	_, err := decodeSurfaces(json.RawMessage(`{"windows": 7}`))
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Errorf("error = %v, want ProtocolError", err)
	}
}
