// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/ghostctl/ghostctl/input"
	"github.com/ghostctl/ghostctl/screen"
)

// Terminal is a handle on one surface. It carries the client and a
// metadata snapshot; screen content is always fetched fresh, never
// cached. Handles are safe for concurrent use: each operation is an
// independent request cycle and the snapshot swap is locked.
type Terminal struct {
	client *Client
	id     string

	mu      sync.Mutex
	surface Surface
}

func newTerminal(c *Client, s Surface) *Terminal {
	return &Terminal{client: c, id: s.ID, surface: s}
}

// ID is the host-assigned surface id. It never changes for the life of
// the handle.
func (t *Terminal) ID() string { return t.id }

// Surface returns the current metadata snapshot. It reflects the host
// as of construction or the last Refresh, not live state.
func (t *Terminal) Surface() Surface {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.surface
}

// Title is the snapshot window title.
func (t *Terminal) Title() string { return t.Surface().Title }

// Pwd is the snapshot working directory.
func (t *Terminal) Pwd() string { return t.Surface().Pwd }

// Focused reports whether the surface had focus in the snapshot.
func (t *Terminal) Focused() bool { return t.Surface().Focused }

// Rows is the snapshot grid height.
func (t *Terminal) Rows() int { return t.Surface().Rows }

// Cols is the snapshot grid width.
func (t *Terminal) Cols() int { return t.Surface().Cols }

func (t *Terminal) String() string {
	s := t.Surface()
	return fmt.Sprintf("Terminal(id=%s, title=%q, pwd=%q)", s.ID, s.Title, s.Pwd)
}

// Refresh replaces the metadata snapshot from a fresh listing. If the
// surface has disappeared from the host the snapshot is left as it was
// and the error wraps ErrSurfaceGone.
func (t *Terminal) Refresh(ctx context.Context) error {
	surfaces, err := t.client.ListSurfaces(ctx)
	if err != nil {
		return err
	}
	for _, s := range surfaces {
		if s.ID == t.id {
			t.mu.Lock()
			t.surface = s
			t.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("refresh %s: %w", t.id, ErrSurfaceGone)
}

// Send submits a line of input: the text with Enter appended.
func (t *Terminal) Send(ctx context.Context, text string) error {
	return t.client.SendText(ctx, t.id, text+"\r")
}

// Type submits text without Enter. A positive delay sends one
// character per request with the delay observed after each, which
// paces input for programs that react per keystroke.
func (t *Terminal) Type(ctx context.Context, text string, delay time.Duration) error {
	if delay <= 0 {
		return t.client.SendText(ctx, t.id, text)
	}
	for _, r := range text {
		if err := t.client.SendText(ctx, t.id, string(r)); err != nil {
			return err
		}
		if err := t.client.sleep(ctx, delay); err != nil {
			return err
		}
	}
	return nil
}

// Press taps a key: a press event immediately followed by a release.
// Key names are W3C key codes ("KeyC", "Enter", "F5") with friendly
// aliases ("Up") and the legacy "Ctrl+X" form accepted. Mods is a
// comma-separated modifier list such as "ctrl,shift", empty for none.
func (t *Terminal) Press(ctx context.Context, key, mods string) error {
	chord := input.ResolveKey(key, mods)
	if chord.Text != "" {
		return t.client.SendText(ctx, t.id, chord.Text)
	}
	for _, ev := range input.PressEvents(chord) {
		if err := t.client.SendKey(ctx, t.id, ev); err != nil {
			return err
		}
	}
	return nil
}

// KeyDown presses a key without releasing it. The key is taken as a
// raw W3C code; pair with KeyUp to hold modifiers across other input.
func (t *Terminal) KeyDown(ctx context.Context, key, mods string) error {
	return t.client.SendKey(ctx, t.id, input.KeyEvent{Key: key, Action: input.KeyPress, Mods: mods})
}

// KeyUp releases a key previously pressed with KeyDown.
func (t *Terminal) KeyUp(ctx context.Context, key, mods string) error {
	return t.client.SendKey(ctx, t.id, input.KeyEvent{Key: key, Action: input.KeyRelease, Mods: mods})
}

// Screen fetches the surface's content and cursor position.
func (t *Terminal) Screen(ctx context.Context, kind ScreenKind) (screen.Screen, error) {
	return t.client.GetScreen(ctx, t.id, kind)
}

// Text fetches the visible text, shorthand for the viewport screen.
func (t *Terminal) Text(ctx context.Context) (string, error) {
	scr, err := t.Screen(ctx, Viewport)
	if err != nil {
		return "", err
	}
	return scr.Text, nil
}

// Cells fetches per-cell styling for the surface.
func (t *Terminal) Cells(ctx context.Context, kind ScreenKind) (*screen.ScreenCells, error) {
	return t.client.GetScreenCells(ctx, t.id, kind)
}

// Focus brings the surface's window to the front.
func (t *Terminal) Focus(ctx context.Context) error {
	return t.client.FocusSurface(ctx, t.id)
}

// Close closes the surface. The handle is dead afterwards; further
// operations fail host-side.
func (t *Terminal) Close(ctx context.Context) error {
	return t.client.CloseSurface(ctx, t.id)
}

// Resize changes the surface's grid. A zero dimension keeps the
// current value.
func (t *Terminal) Resize(ctx context.Context, rows, cols int) error {
	return t.client.ResizeSurface(ctx, t.id, rows, cols)
}

// Screenshot writes an image of the surface to path, which is resolved
// to an absolute path first because the host interprets it relative to
// its own working directory. Returns the resolved path.
func (t *Terminal) Screenshot(ctx context.Context, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := t.client.ScreenshotSurface(ctx, t.id, abs); err != nil {
		return "", err
	}
	return abs, nil
}

// MouseOptions adjust a click. The zero value is an unmodified left
// click.
type MouseOptions struct {
	Button string // "left", "right", "middle"; empty means "left"
	Mods   string
}

func (o MouseOptions) button() string {
	if o.Button == "" {
		return "left"
	}
	return o.Button
}

// DragOptions adjust a drag. The zero value is a left-button drag with
// the default number of interpolated moves.
type DragOptions struct {
	Button string
	Steps  int
	Mods   string
}

func (o DragOptions) button() string {
	if o.Button == "" {
		return "left"
	}
	return o.Button
}

// Click presses and releases a mouse button at a pixel position.
func (t *Terminal) Click(ctx context.Context, x, y float64, opts MouseOptions) error {
	return t.runMouse(ctx, input.Click(x, y, opts.button(), opts.Mods))
}

// DoubleClick clicks twice with a short pause so the host registers a
// double-click rather than two clicks.
func (t *Terminal) DoubleClick(ctx context.Context, x, y float64, opts MouseOptions) error {
	return t.runMouse(ctx, input.DoubleClick(x, y, opts.button(), opts.Mods))
}

// Drag presses at the origin, moves through interpolated positions,
// and releases at the destination.
func (t *Terminal) Drag(ctx context.Context, fromX, fromY, toX, toY float64, opts DragOptions) error {
	return t.runMouse(ctx, input.Drag(fromX, fromY, toX, toY, opts.button(), opts.Steps, opts.Mods))
}

// Scroll submits a scroll delta. Positive deltaY scrolls down,
// positive deltaX scrolls right.
func (t *Terminal) Scroll(ctx context.Context, deltaX, deltaY float64, mods string) error {
	return t.client.SendScroll(ctx, t.id, deltaX, deltaY, mods)
}

// runMouse submits a planned event sequence, observing each step's
// pause on the client clock.
func (t *Terminal) runMouse(ctx context.Context, plan []input.MouseStep) error {
	for _, step := range plan {
		if err := t.client.SendMouse(ctx, t.id, step.Event); err != nil {
			return err
		}
		if step.Pause > 0 {
			if err := t.client.sleep(ctx, step.Pause); err != nil {
				return err
			}
		}
	}
	return nil
}
