// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package fuzzy

import "testing"

func TestRankOrdersBestFirst(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"editor — vim",
		"build logs",
		"vim: notes.md",
	}
	matches := Rank("vim", candidates)
	if len(matches) != 2 {
		t.Fatalf("Rank returned %d matches, want 2: %+v", len(matches), matches)
	}
	for _, m := range matches {
		if m.Index == 1 {
			t.Fatalf("candidate %q should not match %q", candidates[1], "vim")
		}
		if m.Score <= 0 {
			t.Errorf("match %+v has non-positive score", m)
		}
	}
	if matches[0].Score < matches[1].Score {
		t.Errorf("matches not ordered best-first: %+v", matches)
	}
}

func TestRankEmptyQuery(t *testing.T) {
	t.Parallel()

	if got := Rank("", []string{"anything"}); got != nil {
		t.Errorf("Rank with empty query = %+v, want nil", got)
	}
}

func TestBest(t *testing.T) {
	t.Parallel()

	idx, ok := Best("log", []string{"editor", "build logs", "shell"})
	if !ok || idx != 1 {
		t.Fatalf("Best = (%d, %v), want (1, true)", idx, ok)
	}

	if _, ok := Best("zzz", []string{"editor", "shell"}); ok {
		t.Error("Best matched a query with no candidates")
	}
}

func TestBestCaseInsensitiveForLowercaseQuery(t *testing.T) {
	t.Parallel()

	idx, ok := Best("notes", []string{"shell", "Notes.md — vim"})
	if !ok || idx != 1 {
		t.Fatalf("Best = (%d, %v), want (1, true)", idx, ok)
	}
}
