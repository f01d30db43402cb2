// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/ghostctl/ghostctl/screen"
)

const (
	// DefaultWaitTimeout bounds a wait when the caller does not choose.
	DefaultWaitTimeout = 30 * time.Second

	// DefaultStableFor is how long content must hold still for
	// WaitForIdle to call the screen idle.
	DefaultStableFor = 500 * time.Millisecond

	// DefaultPromptPattern matches the trailing sigil of common shell
	// prompts, plain and decorated.
	DefaultPromptPattern = `[$#>%➤❯λ»›]\s*`

	// DefaultAbsenceWindow is how long NotToContain keeps checking
	// that text stays absent.
	DefaultAbsenceWindow = time.Second
)

const (
	maxDiagnosticLines = 80
	maxDiagnosticChars = 8000
)

// truncateScreen bounds screen content for inclusion in an error. The
// tail is kept because that is where the newest output lands.
func truncateScreen(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > maxDiagnosticLines {
		omitted := len(lines) - maxDiagnosticLines
		kept := lines[len(lines)-maxDiagnosticLines:]
		text = fmt.Sprintf("… (%d lines truncated) …\n%s", omitted, strings.Join(kept, "\n"))
	}
	if r := []rune(text); len(r) > maxDiagnosticChars {
		text = "… (truncated) …\n" + string(r[len(r)-maxDiagnosticChars:])
	}
	return text
}

// pollScreen fetches the viewport on every poll interval until done
// reports the wait satisfied, returning the satisfying screen. The
// deadline is checked after the predicate, so a wait that is satisfied
// on the first fetch succeeds whatever the timeout. Fetch errors
// propagate immediately; only predicate failure is retried.
func (t *Terminal) pollScreen(ctx context.Context, timeout time.Duration, op string, done func(screen.Screen) bool) (screen.Screen, error) {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	clk := t.client.clk
	deadline := clk.Now().Add(timeout)
	for {
		scr, err := t.Screen(ctx, Viewport)
		if err != nil {
			return screen.Screen{}, err
		}
		if done(scr) {
			return scr, nil
		}
		if !clk.Now().Before(deadline) {
			return screen.Screen{}, &TimeoutError{
				Op:         op,
				Timeout:    timeout,
				Diagnostic: truncateScreen(scr.PlainText()),
			}
		}
		if err := t.client.sleep(ctx, t.client.pollInterval); err != nil {
			return screen.Screen{}, err
		}
	}
}

// WaitTextOptions adjust WaitForText. The zero value is a plain
// substring wait with the default timeout.
type WaitTextOptions struct {
	Timeout time.Duration
	Regex   bool
}

// WaitForText polls until pattern appears in the raw screen text and
// returns the screen that contained it. Escape sequences are not
// stripped; match against styled output or use WaitForPrompt for
// decorated prompts.
func (t *Terminal) WaitForText(ctx context.Context, pattern string, opts WaitTextOptions) (screen.Screen, error) {
	var done func(screen.Screen) bool
	if opts.Regex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return screen.Screen{}, fmt.Errorf("compile pattern %q: %w", pattern, err)
		}
		done = func(s screen.Screen) bool { return re.MatchString(s.Text) }
	} else {
		done = func(s screen.Screen) bool { return strings.Contains(s.Text, pattern) }
	}
	return t.pollScreen(ctx, opts.Timeout, fmt.Sprintf("waiting for text %q", pattern), done)
}

// WaitPromptOptions adjust WaitForPrompt. An empty Pattern uses
// DefaultPromptPattern.
type WaitPromptOptions struct {
	Timeout time.Duration
	Pattern string
}

// WaitForPrompt polls until a shell prompt is visible. Matching runs
// on ANSI-stripped text with trailing replacement characters removed,
// so decorated prompts and uninitialized cells do not hide the sigil.
func (t *Terminal) WaitForPrompt(ctx context.Context, opts WaitPromptOptions) (screen.Screen, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPromptPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("compile prompt pattern %q: %w", pattern, err)
	}
	done := func(s screen.Screen) bool {
		return re.MatchString(strings.TrimRight(s.PlainText(), "�"))
	}
	return t.pollScreen(ctx, opts.Timeout, fmt.Sprintf("waiting for prompt %q", pattern), done)
}

// WaitIdleOptions adjust WaitForIdle. Zero values take the defaults.
type WaitIdleOptions struct {
	Timeout   time.Duration
	StableFor time.Duration
}

// WaitForIdle polls until the screen content stops changing for
// StableFor, returning the settled screen. Content comparison is by
// digest, so large screens are not retained between polls.
func (t *Terminal) WaitForIdle(ctx context.Context, opts WaitIdleOptions) (screen.Screen, error) {
	stableFor := opts.StableFor
	if stableFor <= 0 {
		stableFor = DefaultStableFor
	}
	clk := t.client.clk
	lastSum := blake3.Sum256(nil)
	stableSince := clk.Now()
	done := func(s screen.Screen) bool {
		sum := blake3.Sum256([]byte(s.Text))
		now := clk.Now()
		if sum != lastSum {
			lastSum = sum
			stableSince = now
		}
		return now.Sub(stableSince) >= stableFor
	}
	return t.pollScreen(ctx, opts.Timeout, "waiting for screen to stabilize", done)
}
