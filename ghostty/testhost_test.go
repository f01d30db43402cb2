// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// hostRequest is one decoded request envelope the fake host received.
type hostRequest struct {
	Version int
	Target  *string
	Action  string
	Payload json.RawMessage
	Raw     []byte
}

// fakeHost stands in for the Ghostty control socket: a real unix
// listener that records every request and answers from a handler.
// Each connection carries exactly one exchange, mirroring the host.
type fakeHost struct {
	Path     string
	Requests chan hostRequest

	handle   func(action string, payload json.RawMessage) []byte
	raw      func(conn net.Conn)
	listener net.Listener
}

// newFakeHost starts a host whose handler returns the response body
// for each request. A nil return closes the connection without
// replying. The handler runs on connection goroutines; handlers with
// state must lock it.
func newFakeHost(t *testing.T, handle func(action string, payload json.RawMessage) []byte) *fakeHost {
	t.Helper()
	return startFakeHost(t, handle, nil)
}

// newRawFakeHost starts a host that hands the connection to raw after
// reading the request, for tests that need malformed framing.
func newRawFakeHost(t *testing.T, raw func(conn net.Conn)) *fakeHost {
	t.Helper()
	return startFakeHost(t, nil, raw)
}

func startFakeHost(t *testing.T, handle func(string, json.RawMessage) []byte, raw func(net.Conn)) *fakeHost {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ghostty.sock")
	listener, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen on %s: %v", path, err)
	}
	// The listener inherits the umask; tighten it so the client's
	// socket validation passes.
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("chmod socket: %v", err)
	}

	h := &fakeHost{
		Path:     path,
		Requests: make(chan hostRequest, 64),
		handle:   handle,
		raw:      raw,
		listener: listener,
	}
	go h.serve()
	t.Cleanup(func() { listener.Close() })
	return h
}

func (h *fakeHost) serve() {
	for {
		conn, err := h.listener.Accept()
		if err != nil {
			return
		}
		go h.handleConn(conn)
	}
}

func (h *fakeHost) handleConn(conn net.Conn) {
	defer conn.Close()

	frame, err := readFrame(conn)
	if err != nil {
		return
	}
	var env requestEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return
	}
	req := hostRequest{Version: env.Version, Target: env.Target, Raw: frame}
	for name, payload := range env.Action {
		req.Action = name
		req.Payload = payload
	}
	select {
	case h.Requests <- req:
	default: // tests that don't drain shouldn't wedge the host
	}

	if h.raw != nil {
		h.raw(conn)
		return
	}
	if resp := h.handle(req.Action, req.Payload); resp != nil {
		_ = writeFrame(conn, resp)
	}
}

// jsonBody marshals a response body, panicking on impossible input so
// handlers stay usable from connection goroutines.
func jsonBody(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func okBody(data any) []byte {
	return jsonBody(map[string]any{"ok": true, "data": data})
}

func errBody(msg string) []byte {
	return jsonBody(map[string]any{"ok": false, "error": msg})
}

// screenBody builds a get_screen response.
func screenBody(content string, cursorX, cursorY int) []byte {
	return okBody(map[string]any{"content": content, "cursor_x": cursorX, "cursor_y": cursorY})
}

// surf builds one surface entry for surfaceList.
func surf(id, title, pwd string, focused bool) map[string]any {
	return map[string]any{"id": id, "title": title, "pwd": pwd, "focused": focused, "rows": 24, "cols": 80}
}

// surfaceList builds a list_surfaces response with every surface in a
// single window and tab.
func surfaceList(surfaces ...map[string]any) []byte {
	return okBody(map[string]any{
		"windows": []any{
			map[string]any{
				"tabs": []any{
					map[string]any{"surfaces": surfaces},
				},
			},
		},
	})
}

// newTestClient builds a client against the fake host with timeouts
// sized for tests. mutate adjusts the options before construction.
func newTestClient(t *testing.T, h *fakeHost, mutate func(*Options)) *Client {
	t.Helper()
	opts := Options{
		SocketPath:     h.Path,
		RequestTimeout: 5 * time.Second,
		PollInterval:   time.Millisecond,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return NewClient(opts)
}
