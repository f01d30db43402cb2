// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuzzy ranks candidate strings against a query with fzf's
// matching algorithm, smart-case like fzf itself: a lowercase query
// matches case-insensitively, any uppercase in the query makes the
// match exact-case.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Slab sizes fzf uses for its own matcher scratch space.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// Match is one ranked candidate.
type Match struct {
	// Index is the candidate's position in the input slice.
	Index int

	// Score is fzf's match score; higher is better. Only positive
	// scores are returned.
	Score int
}

// Rank scores every candidate against query and returns the matches
// ordered best-first. Candidates that do not match are dropped. Ties
// keep input order.
func Rank(query string, candidates []string) []Match {
	if query == "" {
		return nil
	}
	caseSensitive := strings.ToLower(query) != query
	pattern := []rune(query)
	slab := util.MakeSlab(slab16Size, slab32Size)

	var matches []Match
	for i, candidate := range candidates {
		chars := util.ToChars([]byte(candidate))
		result, _ := algo.FuzzyMatchV2(caseSensitive, true, true, &chars, pattern, false, slab)
		if result.Score > 0 {
			matches = append(matches, Match{Index: i, Score: result.Score})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	return matches
}

// Best returns the index of the best-matching candidate, or false when
// nothing matches.
func Best(query string, candidates []string) (int, bool) {
	matches := Rank(query, candidates)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Index, true
}
