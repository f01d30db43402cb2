// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package input plans keyboard and mouse event sequences for the host.
// The host models physical transitions, not logical keystrokes: a
// keystroke is always a press event followed by a release event, a drag
// is a press, a run of interpolated moves, and a release. This package
// computes those sequences; the client submits them one request each.
package input

import "strings"

// KeyAction is the transition direction of a key event.
type KeyAction string

const (
	KeyPress   KeyAction = "press"
	KeyRelease KeyAction = "release"
)

// KeyEvent is one key transition to submit via send_key.
type KeyEvent struct {
	Key    string
	Action KeyAction
	// Mods is the comma-separated modifier list the host expects, for
	// example "ctrl" or "ctrl,shift". Empty means no modifiers.
	Mods string
}

// Chord is a resolved key combination. Exactly one of Key and Text is
// set: Key for combinations the host takes as key events, Text for
// legacy control combinations that only exist as a control byte and
// travel via send_text.
type Chord struct {
	Key  string
	Mods string
	Text string
}

// keyAliases maps friendly names onto the W3C key codes the host
// expects. Unlisted names pass through unchanged, so full codes like
// "KeyA", "Digit7", and "F5" need no entry.
var keyAliases = map[string]string{
	"Enter":      "Enter",
	"Tab":        "Tab",
	"Escape":     "Escape",
	"Backspace":  "Backspace",
	"Delete":     "Delete",
	"Space":      "Space",
	"Up":         "ArrowUp",
	"Down":       "ArrowDown",
	"Left":       "ArrowLeft",
	"Right":      "ArrowRight",
	"ArrowUp":    "ArrowUp",
	"ArrowDown":  "ArrowDown",
	"ArrowLeft":  "ArrowLeft",
	"ArrowRight": "ArrowRight",
	"Home":       "Home",
	"End":        "End",
	"PageUp":     "PageUp",
	"PageDown":   "PageDown",
	"Insert":     "Insert",
}

// ResolveKey canonicalizes a key name and modifier list into a Chord.
//
// The legacy "Ctrl+<letter>" form rewrites to the letter's key code
// with "ctrl" prepended to the modifiers. "Ctrl+" followed by a single
// non-letter maps to the corresponding control byte when one exists
// ("Ctrl+[" is ESC) and becomes a Text chord; anything else falls
// through to the alias table untouched.
func ResolveKey(key, mods string) Chord {
	if rest, ok := strings.CutPrefix(key, "Ctrl+"); ok {
		upper := strings.ToUpper(rest)
		if len(upper) == 1 && upper[0] >= 'A' && upper[0] <= 'Z' {
			return Chord{Key: "Key" + upper, Mods: prependMod("ctrl", mods)}
		}
		if len(upper) == 1 && upper[0] > 'A' {
			return Chord{Text: string(rune(upper[0] - 'A' + 1))}
		}
	}

	if canonical, ok := keyAliases[key]; ok {
		key = canonical
	}
	return Chord{Key: key, Mods: mods}
}

// prependMod puts mod in front of an existing comma-separated list.
func prependMod(mod, mods string) string {
	if mods == "" {
		return mod
	}
	return mod + "," + mods
}

// PressEvents returns the press+release pair for a chord. The release
// always follows with the same key and modifiers.
func PressEvents(c Chord) []KeyEvent {
	return []KeyEvent{
		{Key: c.Key, Action: KeyPress, Mods: c.Mods},
		{Key: c.Key, Action: KeyRelease, Mods: c.Mods},
	}
}
