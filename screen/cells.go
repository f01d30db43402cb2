// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package screen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Underline is the underline style of a span or cell.
type Underline string

const (
	UnderlineNone   Underline = "none"
	UnderlineSingle Underline = "single"
	UnderlineDouble Underline = "double"
	UnderlineCurly  Underline = "curly"
	UnderlineDotted Underline = "dotted"
	UnderlineDashed Underline = "dashed"
)

// parseUnderline maps the wire value onto the closed enum. Absent and
// unrecognized values both degrade to none so decoded spans are always
// fully populated.
func parseUnderline(s string) Underline {
	switch Underline(s) {
	case UnderlineSingle, UnderlineDouble, UnderlineCurly, UnderlineDotted, UnderlineDashed:
		return Underline(s)
	default:
		return UnderlineNone
	}
}

// Span is a contiguous run of identically styled characters within one
// screen row. Within a row, spans are ordered by ascending X and never
// overlap: span.X + len(span.Text) in runes is at most the next span's
// X. Positions between spans are unwritten cells.
//
// FG and BG hold the canonical color strings ("palette(N)",
// "rgb(r,g,b)", or "" for unset); see Color.
type Span struct {
	Y    int
	X    int
	Text string

	FG            string
	BG            string
	Bold          bool
	Italic        bool
	Faint         bool
	Strikethrough bool
	Inverse       bool
	Underline     Underline
}

// Width returns the number of cells the span covers.
func (s Span) Width() int { return len([]rune(s.Text)) }

// Cell is one character position with its resolved style. Cells are
// derived from spans on demand and never stored.
type Cell struct {
	Char rune
	X    int
	Y    int

	FG            string
	BG            string
	Bold          bool
	Italic        bool
	Faint         bool
	Strikethrough bool
	Inverse       bool
	Underline     Underline
}

// Row is the span list for one screen row.
type Row struct {
	Spans []Span
}

// Size is the surface dimensions in cells.
type Size struct {
	Rows int
	Cols int
}

// ScreenCells is the structured form of a surface's content: per-row
// span lists plus cursor position and dimensions.
type ScreenCells struct {
	Rows    []Row
	CursorX int
	CursorY int
	Size    Size
}

// Wire shapes for the JSON document carried in the get_screen
// format="cells" content field:
//
//	{"rows":[{"spans":[...]}], "cursor":{"x":..,"y":..}, "size":{"rows":..,"cols":..}}
//
// Span fields absent on the wire take defaults: colors unset, flags
// false, underline "none".
type wireCells struct {
	Rows []struct {
		Spans []wireSpan `json:"spans"`
	} `json:"rows"`
	Cursor struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"cursor"`
	Size struct {
		Rows int `json:"rows"`
		Cols int `json:"cols"`
	} `json:"size"`
}

type wireSpan struct {
	X             int             `json:"x"`
	Text          string          `json:"text"`
	FG            json.RawMessage `json:"fg"`
	BG            json.RawMessage `json:"bg"`
	Bold          bool            `json:"bold"`
	Italic        bool            `json:"italic"`
	Faint         bool            `json:"faint"`
	Strikethrough bool            `json:"strikethrough"`
	Inverse       bool            `json:"inverse"`
	Underline     string          `json:"underline"`
}

// DecodeCells parses the cells JSON document. Every returned span is
// fully populated; wire omissions become the documented defaults.
func DecodeCells(data []byte) (*ScreenCells, error) {
	var wire wireCells
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("cells document: %w", err)
	}

	cells := &ScreenCells{
		Rows:    make([]Row, len(wire.Rows)),
		CursorX: wire.Cursor.X,
		CursorY: wire.Cursor.Y,
		Size:    Size{Rows: wire.Size.Rows, Cols: wire.Size.Cols},
	}
	for y, row := range wire.Rows {
		spans := make([]Span, len(row.Spans))
		for i, ws := range row.Spans {
			fg, err := parseColor(ws.FG)
			if err != nil {
				return nil, fmt.Errorf("row %d span %d fg: %w", y, i, err)
			}
			bg, err := parseColor(ws.BG)
			if err != nil {
				return nil, fmt.Errorf("row %d span %d bg: %w", y, i, err)
			}
			spans[i] = Span{
				Y:             y,
				X:             ws.X,
				Text:          ws.Text,
				FG:            fg.String(),
				BG:            bg.String(),
				Bold:          ws.Bold,
				Italic:        ws.Italic,
				Faint:         ws.Faint,
				Strikethrough: ws.Strikethrough,
				Inverse:       ws.Inverse,
				Underline:     parseUnderline(ws.Underline),
			}
		}
		cells.Rows[y] = Row{Spans: spans}
	}
	return cells, nil
}

// TextAtRow returns the text of row y: the row's spans concatenated in
// ascending X order. Gaps between spans contribute nothing. Out-of-range
// rows return "".
func (c *ScreenCells) TextAtRow(y int) string {
	if y < 0 || y >= len(c.Rows) {
		return ""
	}
	var b strings.Builder
	for _, span := range c.Rows[y].Spans {
		b.WriteString(span.Text)
	}
	return b.String()
}

// Text returns all rows joined with newlines.
func (c *ScreenCells) Text() string {
	lines := make([]string, len(c.Rows))
	for y := range c.Rows {
		lines[y] = c.TextAtRow(y)
	}
	return strings.Join(lines, "\n")
}

// CellAt returns the cell at (x, y), or nil when the position falls in
// an unwritten gap or outside the screen. The lookup scans the row's
// spans for the one whose half-open range [X, X+width) covers x; the
// full cell grid is never materialized.
func (c *ScreenCells) CellAt(x, y int) *Cell {
	if y < 0 || y >= len(c.Rows) {
		return nil
	}
	for _, span := range c.Rows[y].Spans {
		runes := []rune(span.Text)
		if x < span.X || x >= span.X+len(runes) {
			continue
		}
		cell := span.cell(runes[x-span.X], x)
		return &cell
	}
	return nil
}

// Cells returns the flat cell expansion of every span, in row-major
// ascending-x order. The slice is derived on each call.
func (c *ScreenCells) Cells() []Cell {
	var out []Cell
	for _, row := range c.Rows {
		for _, span := range row.Spans {
			out = append(out, span.Cells()...)
		}
	}
	return out
}

// Cells expands the span to one cell per character.
func (s Span) Cells() []Cell {
	runes := []rune(s.Text)
	cells := make([]Cell, len(runes))
	for i, r := range runes {
		cells[i] = s.cell(r, s.X+i)
	}
	return cells
}

// cell synthesizes the cell at column x holding r, copying the span's
// style verbatim.
func (s Span) cell(r rune, x int) Cell {
	return Cell{
		Char:          r,
		X:             x,
		Y:             s.Y,
		FG:            s.FG,
		BG:            s.BG,
		Bold:          s.Bold,
		Italic:        s.Italic,
		Faint:         s.Faint,
		Strikethrough: s.Strikethrough,
		Inverse:       s.Inverse,
		Underline:     s.Underline,
	}
}

// StyleFilter selects spans or cells by style. Nil fields are not
// consulted; set fields must all match (logical AND). Color fields
// compare against the canonical string form.
type StyleFilter struct {
	FG            *string
	BG            *string
	Bold          *bool
	Italic        *bool
	Faint         *bool
	Strikethrough *bool
	Inverse       *bool
	Underline     *Underline
}

// Matches reports whether the span satisfies every set filter field.
func (f StyleFilter) Matches(s Span) bool {
	if f.FG != nil && s.FG != *f.FG {
		return false
	}
	if f.BG != nil && s.BG != *f.BG {
		return false
	}
	if f.Bold != nil && s.Bold != *f.Bold {
		return false
	}
	if f.Italic != nil && s.Italic != *f.Italic {
		return false
	}
	if f.Faint != nil && s.Faint != *f.Faint {
		return false
	}
	if f.Strikethrough != nil && s.Strikethrough != *f.Strikethrough {
		return false
	}
	if f.Inverse != nil && s.Inverse != *f.Inverse {
		return false
	}
	if f.Underline != nil && s.Underline != *f.Underline {
		return false
	}
	return true
}

// StyledSpans returns the spans matching the filter, in row-major
// ascending-x order.
func (c *ScreenCells) StyledSpans(filter StyleFilter) []Span {
	var out []Span
	for _, row := range c.Rows {
		for _, span := range row.Spans {
			if filter.Matches(span) {
				out = append(out, span)
			}
		}
	}
	return out
}

// StyledCells returns the cell expansion of every span matching the
// filter.
func (c *ScreenCells) StyledCells(filter StyleFilter) []Cell {
	var out []Cell
	for _, span := range c.StyledSpans(filter) {
		out = append(out, span.Cells()...)
	}
	return out
}
