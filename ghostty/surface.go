// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import "encoding/json"

// Surface is a point-in-time snapshot of one terminal surface. The
// host owns the live state; a Surface is never updated in place.
type Surface struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Pwd     string `json:"pwd"`
	Focused bool   `json:"focused"`
	Rows    int    `json:"rows"`
	Cols    int    `json:"cols"`
}

const (
	defaultRows = 24
	defaultCols = 80
)

// wireSurface separates wire decoding from the Surface value so absent
// dimensions can be told apart from explicit zeros.
type wireSurface struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Pwd     string `json:"pwd"`
	Focused bool   `json:"focused"`
	Rows    *int   `json:"rows"`
	Cols    *int   `json:"cols"`
}

func (w wireSurface) surface() Surface {
	s := Surface{
		ID:      w.ID,
		Title:   w.Title,
		Pwd:     w.Pwd,
		Focused: w.Focused,
		Rows:    defaultRows,
		Cols:    defaultCols,
	}
	if w.Rows != nil {
		s.Rows = *w.Rows
	}
	if w.Cols != nil {
		s.Cols = *w.Cols
	}
	return s
}

// surfaceTree is the nested list_surfaces payload: windows holding
// tabs holding surfaces.
type surfaceTree struct {
	Windows []struct {
		Tabs []struct {
			Surfaces []wireSurface `json:"surfaces"`
		} `json:"tabs"`
	} `json:"windows"`
}

// decodeSurfaces flattens the host's window/tab/surface hierarchy into
// a single slice, preserving the nested traversal order: surfaces of
// the first tab of the first window first.
func decodeSurfaces(data json.RawMessage) ([]Surface, error) {
	var tree surfaceTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, &ProtocolError{Msg: "invalid surface list from host", Err: err}
	}
	var out []Surface
	for _, win := range tree.Windows {
		for _, tab := range win.Tabs {
			for _, ws := range tab.Surfaces {
				out = append(out, ws.surface())
			}
		}
	}
	return out, nil
}
