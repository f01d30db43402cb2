// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package input

import "testing"

func TestResolveKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		mods string
		want Chord
	}{
		{
			name: "arrow alias",
			key:  "Up",
			want: Chord{Key: "ArrowUp"},
		},
		{
			name: "canonical arrow unchanged",
			key:  "ArrowDown",
			want: Chord{Key: "ArrowDown"},
		},
		{
			name: "unlisted key passes through",
			key:  "F5",
			want: Chord{Key: "F5"},
		},
		{
			name: "mods preserved",
			key:  "KeyS",
			mods: "ctrl,shift",
			want: Chord{Key: "KeyS", Mods: "ctrl,shift"},
		},
		{
			name: "legacy ctrl letter",
			key:  "Ctrl+C",
			want: Chord{Key: "KeyC", Mods: "ctrl"},
		},
		{
			name: "legacy ctrl lowercase letter",
			key:  "Ctrl+c",
			want: Chord{Key: "KeyC", Mods: "ctrl"},
		},
		{
			name: "legacy ctrl with extra mods",
			key:  "Ctrl+S",
			mods: "shift",
			want: Chord{Key: "KeyS", Mods: "ctrl,shift"},
		},
		{
			name: "legacy ctrl bracket becomes escape byte",
			key:  "Ctrl+[",
			want: Chord{Text: "\x1b"},
		},
		{
			name: "legacy ctrl without control byte falls through",
			key:  "Ctrl+1",
			want: Chord{Key: "Ctrl+1"},
		},
		{
			name: "legacy ctrl multi char falls through",
			key:  "Ctrl+Enter",
			want: Chord{Key: "Ctrl+Enter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveKey(tt.key, tt.mods); got != tt.want {
				t.Errorf("ResolveKey(%q, %q) = %+v, want %+v", tt.key, tt.mods, got, tt.want)
			}
		})
	}
}

func TestPressEventsAlwaysPairs(t *testing.T) {
	t.Parallel()

	events := PressEvents(Chord{Key: "Enter", Mods: "ctrl"})
	if len(events) != 2 {
		t.Fatalf("PressEvents emitted %d events, want 2", len(events))
	}
	if events[0].Action != KeyPress || events[1].Action != KeyRelease {
		t.Errorf("actions = %s,%s, want press,release", events[0].Action, events[1].Action)
	}
	for _, e := range events {
		if e.Key != "Enter" || e.Mods != "ctrl" {
			t.Errorf("event %+v lost key or mods", e)
		}
	}
}
