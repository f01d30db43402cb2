// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/ghostctl/ghostctl/lib/clock"
)

const (
	// DefaultRequestTimeout bounds a single request cycle from dial to
	// decoded response.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultPollInterval is the pause between samples in every
	// polling loop: waits, assertions, and new-surface detection.
	DefaultPollInterval = 100 * time.Millisecond

	// newSurfaceAttempts bounds how many poll intervals NewWindow and
	// NewTab wait for the created surface to show up in listings.
	newSurfaceAttempts = 50
)

// Options configure a Client. The zero value connects to the default
// Ghostty instance with standard timeouts.
type Options struct {
	// SocketPath overrides socket discovery when non-empty.
	SocketPath string

	// Target names an alternate host instance. Empty targets the
	// default instance, which goes on the wire as an explicit null.
	Target string

	// RequestTimeout bounds a single request cycle. Zero means
	// DefaultRequestTimeout.
	RequestTimeout time.Duration

	// PollInterval is the pause between polling samples. Zero means
	// DefaultPollInterval.
	PollInterval time.Duration

	// DisableSocketValidation skips the ownership and permission
	// checks made before each connection. Discovery and the
	// connection itself still fail on a missing socket.
	DisableSocketValidation bool

	// Logger receives debug-level request tracing. Nil discards it.
	Logger *slog.Logger

	// Clock drives polling loops and input pacing. Nil means the
	// system clock; tests substitute a fake.
	Clock clock.Clock

	// Environment overrides the process environment for socket
	// discovery. Nil means the real one.
	Environment *Environment
}

// Client talks to a Ghostty instance over its control socket. Every
// request opens a fresh connection, so a Client holds no connection
// state and is safe for concurrent use.
type Client struct {
	socketPath     string
	target         *string
	requestTimeout time.Duration
	pollInterval   time.Duration
	validate       bool
	logger         *slog.Logger
	clk            clock.Clock
	terminals      *Terminals
}

// NewClient builds a client. The socket path is resolved once, here;
// later environment changes do not move the socket out from under
// in-flight work.
func NewClient(opts Options) *Client {
	env := SystemEnvironment()
	if opts.Environment != nil {
		env = *opts.Environment
	}
	c := &Client{
		socketPath:     ResolveSocketPath(opts.SocketPath, env),
		requestTimeout: opts.RequestTimeout,
		pollInterval:   opts.PollInterval,
		validate:       !opts.DisableSocketValidation,
		logger:         opts.Logger,
		clk:            opts.Clock,
	}
	if opts.Target != "" {
		target := opts.Target
		c.target = &target
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = DefaultRequestTimeout
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.clk == nil {
		c.clk = clock.Real()
	}
	c.terminals = &Terminals{client: c}
	return c
}

// SocketPath reports the resolved control socket path.
func (c *Client) SocketPath() string { return c.socketPath }

// Terminals exposes the surface finders.
func (c *Client) Terminals() *Terminals { return c.terminals }

// NewWindow opens a new window, optionally running command in it, and
// returns the terminal for the surface that appears.
func (c *Client) NewWindow(ctx context.Context, command ...string) (*Terminal, error) {
	return c.newSurface(ctx, "new_window", "new window did not appear", command)
}

// NewTab opens a new tab, optionally running command in it, and
// returns the terminal for the surface that appears.
func (c *Client) NewTab(ctx context.Context, command ...string) (*Terminal, error) {
	return c.newSurface(ctx, "new_tab", "new tab did not appear", command)
}

// newSurface fires a surface-creating action, then polls listings
// until a surface id absent from the before snapshot shows up. The
// host does not return the new id directly, so the diff is the only
// way to name what was created.
func (c *Client) newSurface(ctx context.Context, action, what string, command []string) (*Terminal, error) {
	before, err := c.ListSurfaces(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(before))
	for _, s := range before {
		known[s.ID] = true
	}

	var payload any
	if len(command) > 0 {
		payload = newSurfacePayload{Arguments: command}
	}
	if _, err := c.do(ctx, action, payload); err != nil {
		return nil, err
	}

	for range newSurfaceAttempts {
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return nil, err
		}
		after, err := c.ListSurfaces(ctx)
		if err != nil {
			return nil, err
		}
		for _, s := range after {
			if !known[s.ID] {
				return newTerminal(c, s), nil
			}
		}
	}
	return nil, &TimeoutError{Op: what, Timeout: newSurfaceAttempts * c.pollInterval}
}

// sleep pauses on the client's clock, returning early if ctx ends.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-c.clk.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// do runs one complete request cycle: validate, dial, frame the
// request, read the response, unwrap the envelope. The connection
// never outlives the call.
func (c *Client) do(ctx context.Context, action string, payload any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.validate {
		if err := ValidateSocketPath(c.socketPath); err != nil {
			return nil, err
		}
	}

	deadline := time.Now().Add(c.requestTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	dialCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()
	var dialer net.Dialer
	conn, err := dialer.DialContext(dialCtx, "unix", c.socketPath)
	if err != nil {
		return nil, c.dialError(ctx, action, err)
	}
	defer conn.Close()

	// A caller cancellation must interrupt blocked reads; the deadline
	// alone would let them linger until it expires.
	stop := context.AfterFunc(ctx, func() { conn.SetDeadline(time.Unix(1, 0)) })
	defer stop()
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, &ConnectionError{Msg: "set connection deadline", Err: err}
	}

	frame, err := encodeRequest(c.target, action, payload)
	if err != nil {
		return nil, err
	}
	if len(frame) > MaxMessageSize {
		return nil, &ProtocolError{Msg: fmt.Sprintf("request too large: %d bytes (limit %d)", len(frame), MaxMessageSize)}
	}
	c.logger.Debug("ghostty request", "action", action, "bytes", len(frame))

	if err := writeFrame(conn, frame); err != nil {
		return nil, c.wireError(ctx, action, err)
	}
	raw, err := readFrame(conn)
	if err != nil {
		return nil, c.wireError(ctx, action, err)
	}
	c.logger.Debug("ghostty response", "action", action, "bytes", len(raw))

	return decodeResponse(raw)
}

// dialError classifies a failure to establish the connection.
func (c *Client) dialError(ctx context.Context, action string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &TimeoutError{Op: "request " + action, Timeout: c.requestTimeout, Err: err}
	case errors.Is(err, fs.ErrNotExist):
		return &ConnectionError{Path: c.socketPath, Msg: "socket not found", Err: err}
	default:
		return &ConnectionError{Path: c.socketPath, Msg: "failed to connect to socket", Err: err}
	}
}

// wireError classifies a failure after the connection was established.
// ProtocolErrors from the framing layer pass through untouched.
func (c *Client) wireError(ctx context.Context, action string, err error) error {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded):
		return &TimeoutError{Op: "request " + action, Timeout: c.requestTimeout, Err: err}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &ConnectionError{Msg: "connection closed by host", Err: err}
	default:
		return &ConnectionError{Msg: "socket i/o failed", Err: err}
	}
}
