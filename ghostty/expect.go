// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Expectation groups the assertion forms of the waits: failures come
// back as AssertionErrors carrying the screen content that made the
// call, ready to surface in test output.
type Expectation struct {
	terminal *Terminal
}

// Expect returns the assertion interface for this terminal.
func (t *Terminal) Expect() *Expectation {
	return &Expectation{terminal: t}
}

// ExpectOptions adjust a single assertion. A zero Timeout takes the
// assertion's default: DefaultWaitTimeout for positive assertions,
// DefaultAbsenceWindow for NotToContain.
type ExpectOptions struct {
	Timeout time.Duration
}

// MatchOptions adjust the metadata assertions. Exact demands equality
// instead of substring containment.
type MatchOptions struct {
	Exact   bool
	Timeout time.Duration
}

// expectationFailure converts a timed-out wait into an assertion
// failure, reusing the diagnostic the timeout already carries.
// Transport errors pass through untouched.
func expectationFailure(err error, msg string) error {
	if err == nil {
		return nil
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return &AssertionError{Msg: msg, Diagnostic: te.Diagnostic, Err: te}
	}
	return err
}

// ToContain asserts that text appears on screen within the timeout.
func (e *Expectation) ToContain(ctx context.Context, text string, opts ExpectOptions) error {
	_, err := e.terminal.WaitForText(ctx, text, WaitTextOptions{Timeout: opts.Timeout})
	return expectationFailure(err, fmt.Sprintf("expected terminal to contain %q", text))
}

// NotToContain asserts that text stays off screen for the whole
// window. The check is edge-triggered: the first sighting fails
// immediately, and a window that passes without a sighting succeeds.
func (e *Expectation) NotToContain(ctx context.Context, text string, opts ExpectOptions) error {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultAbsenceWindow
	}
	t := e.terminal
	clk := t.client.clk
	deadline := clk.Now().Add(timeout)
	for clk.Now().Before(deadline) {
		scr, err := t.Screen(ctx, Viewport)
		if err != nil {
			return err
		}
		if strings.Contains(scr.Text, text) {
			return &AssertionError{
				Msg:        fmt.Sprintf("expected terminal not to contain %q", text),
				Diagnostic: truncateScreen(scr.PlainText()),
			}
		}
		if err := t.client.sleep(ctx, t.client.pollInterval); err != nil {
			return err
		}
	}
	return nil
}

// ToMatch asserts that the regex pattern matches the screen within the
// timeout and returns the matched text.
func (e *Expectation) ToMatch(ctx context.Context, pattern string, opts ExpectOptions) (string, error) {
	scr, err := e.terminal.WaitForText(ctx, pattern, WaitTextOptions{Timeout: opts.Timeout, Regex: true})
	if err != nil {
		return "", expectationFailure(err, fmt.Sprintf("expected terminal to match pattern %q", pattern))
	}
	// The wait compiled and matched this pattern against this screen.
	return regexp.MustCompile(pattern).FindString(scr.Text), nil
}

// ToHaveTitle asserts the surface title contains title, or equals it
// with Exact.
func (e *Expectation) ToHaveTitle(ctx context.Context, title string, opts MatchOptions) error {
	return e.pollMetadata(ctx, opts.Timeout,
		func(s Surface) bool {
			if opts.Exact {
				return s.Title == title
			}
			return strings.Contains(s.Title, title)
		},
		func(s Surface) *AssertionError {
			return &AssertionError{
				Msg:        fmt.Sprintf("expected terminal title %s %q", matchVerb(opts.Exact), title),
				Diagnostic: fmt.Sprintf("actual title: %q", s.Title),
			}
		})
}

// ToHavePwd asserts the surface working directory contains path, or
// equals it with Exact.
func (e *Expectation) ToHavePwd(ctx context.Context, path string, opts MatchOptions) error {
	return e.pollMetadata(ctx, opts.Timeout,
		func(s Surface) bool {
			if opts.Exact {
				return s.Pwd == path
			}
			return strings.Contains(s.Pwd, path)
		},
		func(s Surface) *AssertionError {
			return &AssertionError{
				Msg:        fmt.Sprintf("expected terminal pwd %s %q", matchVerb(opts.Exact), path),
				Diagnostic: fmt.Sprintf("actual pwd: %q", s.Pwd),
			}
		})
}

// ToBeFocused asserts the surface gains focus within the timeout.
func (e *Expectation) ToBeFocused(ctx context.Context, opts ExpectOptions) error {
	return e.pollMetadata(ctx, opts.Timeout,
		func(s Surface) bool { return s.Focused },
		func(s Surface) *AssertionError {
			return &AssertionError{Msg: "expected terminal to be focused"}
		})
}

// Prompt asserts a shell prompt is visible within the timeout.
func (e *Expectation) Prompt(ctx context.Context, opts ExpectOptions) error {
	_, err := e.terminal.WaitForPrompt(ctx, WaitPromptOptions{Timeout: opts.Timeout})
	return expectationFailure(err, "expected shell prompt to be visible")
}

func matchVerb(exact bool) string {
	if exact {
		return "to be"
	}
	return "to contain"
}

// pollMetadata refreshes the surface snapshot on every poll interval
// until done accepts it. Like pollScreen, the deadline check follows
// the predicate. A surface that vanishes mid-poll propagates the
// Refresh error rather than reporting an assertion failure.
func (e *Expectation) pollMetadata(ctx context.Context, timeout time.Duration, done func(Surface) bool, fail func(Surface) *AssertionError) error {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	t := e.terminal
	clk := t.client.clk
	deadline := clk.Now().Add(timeout)
	for {
		if err := t.Refresh(ctx); err != nil {
			return err
		}
		snap := t.Surface()
		if done(snap) {
			return nil
		}
		if !clk.Now().Before(deadline) {
			return fail(snap)
		}
		if err := t.client.sleep(ctx, t.client.pollInterval); err != nil {
			return err
		}
	}
}
