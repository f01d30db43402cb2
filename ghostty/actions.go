// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"context"
	"encoding/json"

	"github.com/ghostctl/ghostctl/input"
	"github.com/ghostctl/ghostctl/screen"
)

// ScreenKind selects how much of a surface's content get_screen
// returns.
type ScreenKind string

const (
	// Viewport is the visible grid only.
	Viewport ScreenKind = "viewport"

	// Scrollback is the full screen including scrollback history. The
	// wire value is "screen".
	Scrollback ScreenKind = "screen"
)

type sendTextPayload struct {
	SurfaceID string `json:"surface_id"`
	Text      string `json:"text"`
}

type sendKeyPayload struct {
	SurfaceID string `json:"surface_id"`
	Key       string `json:"key"`
	Action    string `json:"action"`
	Mods      string `json:"mods,omitempty"`
}

// sendMousePayload covers both motion and button events: a bare
// position is a move, a position with button and button_action is a
// press or release at that position.
type sendMousePayload struct {
	SurfaceID    string  `json:"surface_id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Button       string  `json:"button,omitempty"`
	ButtonAction string  `json:"button_action,omitempty"`
	Mods         string  `json:"mods,omitempty"`
}

type sendScrollPayload struct {
	SurfaceID string  `json:"surface_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Mods      string  `json:"mods,omitempty"`
}

type getScreenPayload struct {
	SurfaceID string `json:"surface_id"`
	Screen    string `json:"screen"`
	Format    string `json:"format,omitempty"`
}

// screenData is the get_screen response payload. For format "cells"
// the content field holds a nested JSON document rather than terminal
// text.
type screenData struct {
	Content string `json:"content"`
	CursorX int    `json:"cursor_x"`
	CursorY int    `json:"cursor_y"`
}

type surfacePayload struct {
	SurfaceID string `json:"surface_id"`
}

type resizePayload struct {
	SurfaceID string `json:"surface_id"`
	Rows      *int   `json:"rows,omitempty"`
	Cols      *int   `json:"cols,omitempty"`
}

type screenshotPayload struct {
	SurfaceID  string `json:"surface_id"`
	OutputPath string `json:"output_path"`
}

type newSurfacePayload struct {
	Arguments []string `json:"arguments"`
}

// ListSurfaces returns every surface the host knows about, flattened
// in window/tab order.
func (c *Client) ListSurfaces(ctx context.Context) ([]Surface, error) {
	data, err := c.do(ctx, "list_surfaces", nil)
	if err != nil {
		return nil, err
	}
	return decodeSurfaces(data)
}

// SendText delivers text to a surface exactly as given. No newline is
// appended.
func (c *Client) SendText(ctx context.Context, surfaceID, text string) error {
	_, err := c.do(ctx, "send_text", sendTextPayload{SurfaceID: surfaceID, Text: text})
	return err
}

// SendKey delivers a single key transition.
func (c *Client) SendKey(ctx context.Context, surfaceID string, ev input.KeyEvent) error {
	_, err := c.do(ctx, "send_key", sendKeyPayload{
		SurfaceID: surfaceID,
		Key:       ev.Key,
		Action:    string(ev.Action),
		Mods:      ev.Mods,
	})
	return err
}

// SendMouse delivers a single mouse event, either a motion or a
// button transition.
func (c *Client) SendMouse(ctx context.Context, surfaceID string, ev input.MouseEvent) error {
	_, err := c.do(ctx, "send_mouse", sendMousePayload{
		SurfaceID:    surfaceID,
		X:            ev.X,
		Y:            ev.Y,
		Button:       ev.Button,
		ButtonAction: ev.Action,
		Mods:         ev.Mods,
	})
	return err
}

// SendScroll delivers a scroll delta. Positive y scrolls down,
// positive x scrolls right.
func (c *Client) SendScroll(ctx context.Context, surfaceID string, deltaX, deltaY float64, mods string) error {
	_, err := c.do(ctx, "send_scroll", sendScrollPayload{
		SurfaceID: surfaceID,
		X:         deltaX,
		Y:         deltaY,
		Mods:      mods,
	})
	return err
}

// GetScreen fetches the text content and cursor position of a surface.
func (c *Client) GetScreen(ctx context.Context, surfaceID string, kind ScreenKind) (screen.Screen, error) {
	data, err := c.do(ctx, "get_screen", getScreenPayload{SurfaceID: surfaceID, Screen: string(kind)})
	if err != nil {
		return screen.Screen{}, err
	}
	var sd screenData
	if err := json.Unmarshal(data, &sd); err != nil {
		return screen.Screen{}, &ProtocolError{Msg: "invalid screen payload from host", Err: err}
	}
	return screen.Screen{Text: sd.Content, CursorX: sd.CursorX, CursorY: sd.CursorY}, nil
}

// GetScreenCells fetches per-cell styling for a surface. The host
// returns the cell document as a JSON string inside the regular screen
// payload.
func (c *Client) GetScreenCells(ctx context.Context, surfaceID string, kind ScreenKind) (*screen.ScreenCells, error) {
	data, err := c.do(ctx, "get_screen", getScreenPayload{
		SurfaceID: surfaceID,
		Screen:    string(kind),
		Format:    "cells",
	})
	if err != nil {
		return nil, err
	}
	var sd screenData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, &ProtocolError{Msg: "invalid screen payload from host", Err: err}
	}
	if sd.Content == "" {
		sd.Content = "{}"
	}
	cells, err := screen.DecodeCells([]byte(sd.Content))
	if err != nil {
		return nil, &ProtocolError{Msg: "invalid cell data from host", Err: err}
	}
	return cells, nil
}

// FocusSurface brings a surface's window to the front.
func (c *Client) FocusSurface(ctx context.Context, surfaceID string) error {
	_, err := c.do(ctx, "focus_surface", surfacePayload{SurfaceID: surfaceID})
	return err
}

// CloseSurface closes a surface.
func (c *Client) CloseSurface(ctx context.Context, surfaceID string) error {
	_, err := c.do(ctx, "close_surface", surfacePayload{SurfaceID: surfaceID})
	return err
}

// ResizeSurface changes a surface's grid size. A zero dimension is
// left unchanged.
func (c *Client) ResizeSurface(ctx context.Context, surfaceID string, rows, cols int) error {
	p := resizePayload{SurfaceID: surfaceID}
	if rows > 0 {
		p.Rows = &rows
	}
	if cols > 0 {
		p.Cols = &cols
	}
	_, err := c.do(ctx, "resize_surface", p)
	return err
}

// ScreenshotSurface writes a screenshot of a surface to outputPath on
// the host. The path should be absolute; Terminal.Screenshot resolves
// relative paths before calling this.
func (c *Client) ScreenshotSurface(ctx context.Context, surfaceID, outputPath string) error {
	_, err := c.do(ctx, "screenshot_surface", screenshotPayload{
		SurfaceID:  surfaceID,
		OutputPath: outputPath,
	})
	return err
}
