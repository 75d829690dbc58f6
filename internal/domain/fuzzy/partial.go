// Package fuzzy scores approximate substring matches on a 0-100 scale.
package fuzzy

import (
	"math"

	"github.com/pmezard/go-difflib/difflib"
)

// PartialRatio scores how well the shorter string aligns with its best
// window inside the longer one, so extra surrounding text in the longer
// string is not penalized. Identical strings score 100; if exactly one is
// empty the score is 0.
//
// Candidate windows start at every longest-common-substring block of the
// two strings. Each window is scored with the matching-block ratio 2*M/T and
// the best score is rounded half to even.
func PartialRatio(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}
	if s1 == "" || s2 == "" {
		return 0
	}

	shorter, longer := runes(s1), runes(s2)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := 0.0
	for _, blk := range matchingBlocks(shorter, longer) {
		start := max(blk.B-blk.A, 0)
		end := min(start+len(shorter), len(longer))
		r := difflib.NewMatcher(shorter, longer[start:end]).Ratio()
		if r > 0.995 {
			return 100
		}
		best = max(best, r)
	}
	return int(math.RoundToEven(100 * best))
}

// matchingBlocks returns the longest-common-substring blocks of a and b in
// order, followed by a terminating zero-size block at (len(a), len(b)).
func matchingBlocks(a, b []string) []difflib.Match {
	return difflib.NewMatcher(a, b).GetMatchingBlocks()
}

// runes splits s into one string per code point.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
