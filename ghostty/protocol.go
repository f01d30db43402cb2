// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
)

const (
	// ProtocolVersion is the request envelope version this client
	// speaks. The host rejects envelopes it does not understand.
	ProtocolVersion = 1

	// MaxMessageSize caps a framed message in either direction at
	// 1 MiB. Oversize requests are rejected locally before any bytes
	// are written; an oversize response length aborts the read before
	// the body is consumed.
	MaxMessageSize = 1 << 20

	// frameHeaderSize is the little-endian uint32 length prefix.
	frameHeaderSize = 4
)

// requestEnvelope is the outer shape of every request. Target is a
// pointer so the default instance serializes as an explicit null
// rather than being omitted.
type requestEnvelope struct {
	Version int                        `json:"version"`
	Target  *string                    `json:"target"`
	Action  map[string]json.RawMessage `json:"action"`
}

// responseEnvelope is the outer shape of every response.
type responseEnvelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// encodeRequest builds the envelope bytes for one action. A nil
// payload marshals as an empty object, which is how parameterless
// actions go on the wire.
func encodeRequest(target *string, action string, payload any) ([]byte, error) {
	body := json.RawMessage("{}")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, &ProtocolError{Msg: fmt.Sprintf("encode %s payload", action), Err: err}
		}
		body = b
	}
	env := requestEnvelope{
		Version: ProtocolVersion,
		Target:  target,
		Action:  map[string]json.RawMessage{action: body},
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, &ProtocolError{Msg: fmt.Sprintf("encode %s request", action), Err: err}
	}
	return b, nil
}

// decodeResponse unwraps a response envelope, converting host-reported
// failures and malformed payloads into ProtocolErrors. Malformed JSON
// is a protocol violation regardless of how long the host took to
// produce it.
func decodeResponse(raw []byte) (json.RawMessage, error) {
	var env responseEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ProtocolError{Msg: "invalid JSON response from host", Err: err}
	}
	if !env.OK {
		msg := env.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &ProtocolError{Msg: msg}
	}
	return env.Data, nil
}

// writeFrame sends one length-prefixed message. The header and body go
// out in a single write so a frame is never half-visible to the host.
func writeFrame(conn net.Conn, payload []byte) error {
	buf := make([]byte, frameHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[frameHeaderSize:], payload)
	_, err := conn.Write(buf)
	return err
}

// readFrame receives one length-prefixed message, enforcing
// MaxMessageSize before reading the body.
func readFrame(conn net.Conn) ([]byte, error) {
	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(conn, header); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(header)
	if size > MaxMessageSize {
		return nil, &ProtocolError{Msg: fmt.Sprintf("response too large: %d bytes (limit %d)", size, MaxMessageSize)}
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(conn, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
