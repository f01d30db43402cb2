// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package screen

import (
	"encoding/json"
	"fmt"
)

// Color is a terminal color as reported by the host: an indexed palette
// entry or a direct RGB triple. The zero value is "unset" (the host did
// not style the run). Colors compare through their canonical string
// form, "palette(N)" or "rgb(r,g,b)", which is also what Span and Cell
// carry in their FG/BG fields.
type Color struct {
	kind    colorKind
	index   uint8
	r, g, b uint8
}

type colorKind uint8

const (
	colorUnset colorKind = iota
	colorPalette
	colorRGB
)

// Palette returns the color for a 256-color palette index.
func Palette(index uint8) Color {
	return Color{kind: colorPalette, index: index}
}

// RGB returns a direct-color value.
func RGB(r, g, b uint8) Color {
	return Color{kind: colorRGB, r: r, g: g, b: b}
}

// IsSet reports whether the color carries a value.
func (c Color) IsSet() bool { return c.kind != colorUnset }

// String returns the canonical form used for all comparisons:
// "palette(N)" for indexed colors, "rgb(r,g,b)" for direct colors, and
// "" for the unset color.
func (c Color) String() string {
	switch c.kind {
	case colorPalette:
		return fmt.Sprintf("palette(%d)", c.index)
	case colorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.r, c.g, c.b)
	default:
		return ""
	}
}

// parseColor decodes the wire representation of a color: a JSON number
// is a palette index, a three-element array is an RGB triple, and
// null or absent (nil raw) is unset.
func parseColor(raw json.RawMessage) (Color, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Color{}, nil
	}

	var index uint8
	if err := json.Unmarshal(raw, &index); err == nil {
		return Palette(index), nil
	}

	var triple []uint8
	if err := json.Unmarshal(raw, &triple); err != nil {
		return Color{}, fmt.Errorf("color is neither a palette index nor an rgb array: %s", raw)
	}
	if len(triple) != 3 {
		return Color{}, fmt.Errorf("rgb color has %d components, want 3", len(triple))
	}
	return RGB(triple[0], triple[1], triple[2]), nil
}
