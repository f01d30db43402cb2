// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"context"
	"strings"

	"github.com/ghostctl/ghostctl/lib/fuzzy"
)

// Terminals finds surfaces. Every lookup fetches a fresh listing; no
// result is cached between calls.
type Terminals struct {
	client *Client
}

// All returns a handle for every surface, in window/tab order.
func (ts *Terminals) All(ctx context.Context) ([]*Terminal, error) {
	surfaces, err := ts.client.ListSurfaces(ctx)
	if err != nil {
		return nil, err
	}
	terminals := make([]*Terminal, len(surfaces))
	for i, s := range surfaces {
		terminals[i] = newTerminal(ts.client, s)
	}
	return terminals, nil
}

// First returns the first surface in listing order. An empty listing
// is an error wrapping ErrNoSurfaces.
func (ts *Terminals) First(ctx context.Context) (*Terminal, error) {
	surfaces, err := ts.client.ListSurfaces(ctx)
	if err != nil {
		return nil, err
	}
	if len(surfaces) == 0 {
		return nil, ErrNoSurfaces
	}
	return newTerminal(ts.client, surfaces[0]), nil
}

// Focused returns the surface that has focus, or nil when none does.
// Absence is not an error.
func (ts *Terminals) Focused(ctx context.Context) (*Terminal, error) {
	surfaces, err := ts.client.ListSurfaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range surfaces {
		if s.Focused {
			return newTerminal(ts.client, s), nil
		}
	}
	return nil, nil
}

// ByTitle returns the first surface whose title contains title, or nil
// when none does.
func (ts *Terminals) ByTitle(ctx context.Context, title string) (*Terminal, error) {
	surfaces, err := ts.client.ListSurfaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range surfaces {
		if strings.Contains(s.Title, title) {
			return newTerminal(ts.client, s), nil
		}
	}
	return nil, nil
}

// ByPwd returns the first surface whose working directory contains
// path, or nil when none does.
func (ts *Terminals) ByPwd(ctx context.Context, path string) (*Terminal, error) {
	surfaces, err := ts.client.ListSurfaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range surfaces {
		if strings.Contains(s.Pwd, path) {
			return newTerminal(ts.client, s), nil
		}
	}
	return nil, nil
}

// ByID returns the surface with exactly that id, or nil when it does
// not exist.
func (ts *Terminals) ByID(ctx context.Context, id string) (*Terminal, error) {
	surfaces, err := ts.client.ListSurfaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range surfaces {
		if s.ID == id {
			return newTerminal(ts.client, s), nil
		}
	}
	return nil, nil
}

// Match fuzzy-matches query against surface titles and returns the
// best-scoring surface, or nil when nothing matches.
func (ts *Terminals) Match(ctx context.Context, query string) (*Terminal, error) {
	surfaces, err := ts.client.ListSurfaces(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(surfaces))
	for i, s := range surfaces {
		titles[i] = s.Title
	}
	idx, ok := fuzzy.Best(query, titles)
	if !ok {
		return nil, nil
	}
	return newTerminal(ts.client, surfaces[idx]), nil
}
