// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"screen", "screen", 0},
		{"screeen", "screen", 1},
		{"scren", "screen", 1},
		{"secren", "screen", 2},
		{"watch", "scroll", 6},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "screen"},
		{Name: "scroll"},
		{Name: "screenshot"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"screeen", "screen"},
		{"scrol", "scroll"},
		{"zzzzzzzzzz", ""},
	}
	for _, tt := range tests {
		if got := suggestCommand(tt.input, commands); got != tt.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("timeout", "", "")
	flagSet.Bool("plain", false, "")

	if got := suggestFlag([]string{"--timeuot", "5s"}, flagSet); got != "--timeout" {
		t.Errorf("suggestFlag = %q, want --timeout", got)
	}
	if got := suggestFlag([]string{"--zzzzzzzz"}, flagSet); got != "" {
		t.Errorf("suggestFlag on hopeless typo = %q, want empty", got)
	}
	// Defined flags are not suggestions for themselves.
	if got := suggestFlag([]string{"--plain"}, flagSet); got != "" {
		t.Errorf("suggestFlag on defined flag = %q, want empty", got)
	}
	if got := suggestFlag(nil, nil); got != "" {
		t.Errorf("suggestFlag(nil set) = %q, want empty", got)
	}
}
