// Package picker implements the fuzzy file, buffer, and grep pickers.
//
// A picker turns a user selection into either a file path or a buffer
// id; those two values are the only things it hands back to the editor.
package picker

import (
	"sort"
	"strings"
	"unicode"
)

// Match is one scored result of a fuzzy query.
type Match struct {
	// Index is the position of the item in the input slice.
	Index int

	// Score is the match quality; higher is better.
	Score int
}

// FuzzyFilter matches query against items as a case-insensitive
// subsequence and returns matching indices ordered best-first.
// An empty query matches everything in input order.
func FuzzyFilter(query string, items []string) []Match {
	if query == "" {
		out := make([]Match, len(items))
		for i := range items {
			out[i] = Match{Index: i}
		}
		return out
	}

	queryRunes := []rune(strings.ToLower(query))
	var out []Match
	for i, item := range items {
		positions := subsequence(queryRunes, []rune(strings.ToLower(item)))
		if positions == nil {
			continue
		}
		out = append(out, Match{Index: i, Score: score([]rune(item), positions)})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

// subsequence returns the rune indices at which query matches text as a
// subsequence, greedily left to right, or nil when it does not match.
func subsequence(query, text []rune) []int {
	positions := make([]int, 0, len(query))
	ti := 0
	for _, qr := range query {
		found := false
		for ; ti < len(text); ti++ {
			if text[ti] == qr {
				positions = append(positions, ti)
				ti++
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}
	return positions
}

// score rates a subsequence match. Consecutive runs, word-boundary hits,
// and early matches score higher; long gaps and long candidates lower.
func score(text []rune, positions []int) int {
	s := 100

	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			s += 20
		}
	}
	for _, idx := range positions {
		if isBoundary(text, idx) {
			s += 15
		}
	}
	if positions[0] == 0 {
		s += 25
	} else {
		s -= positions[0]
	}
	if len(positions) > 1 {
		gap := positions[len(positions)-1] - positions[0] - len(positions) + 1
		s -= gap * 2
	}
	if len(text) < 20 {
		s += 20 - len(text)
	}
	if s < 1 {
		s = 1
	}
	return s
}

// isBoundary reports whether idx starts a word within text: position 0,
// after a separator, or at a camelCase hump.
func isBoundary(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(text) {
		return false
	}
	prev := text[idx-1]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) || prev == '/' {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(text[idx])
}
