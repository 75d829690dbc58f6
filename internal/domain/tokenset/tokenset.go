// Package tokenset builds the weighted word sets used for item similarity.
package tokenset

import (
	"strings"

	"github.com/kailas-cloud/reelmatch/internal/domain/item"
)

// Field multipliers. The similarity metric is set-based, so repeating a
// field's tokens changes nothing on its own; the weights only matter when
// the same token also comes from another field.
const (
	TitleWeight    = 4
	OverviewWeight = 3
	GenresWeight   = 2
	CastWeight     = 1
	DirectorWeight = 1
)

// Set is a deduplicated set of lowercase tokens.
type Set map[string]struct{}

// Build derives the token set of an item. Pure and deterministic.
func Build(it *item.Item) Set {
	title := strings.Fields(strings.ToLower(it.Title()))
	overview := strings.Fields(strings.ToLower(it.Overview()))
	genres := item.SplitList(strings.ToLower(it.Genres()))
	cast := item.SplitList(strings.ToLower(it.Cast()))
	director := strings.Fields(strings.ToLower(it.Director()))

	words := make([]string, 0,
		len(title)*TitleWeight+len(overview)*OverviewWeight+len(genres)*GenresWeight+len(cast)+len(director))
	words = repeat(words, title, TitleWeight)
	words = repeat(words, overview, OverviewWeight)
	words = repeat(words, genres, GenresWeight)
	words = repeat(words, cast, CastWeight)
	words = repeat(words, director, DirectorWeight)

	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func repeat(dst, tokens []string, n int) []string {
	for range n {
		dst = append(dst, tokens...)
	}
	return dst
}

// Contains reports whether token is a member of the set.
func (s Set) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func Jaccard(a, b Set) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for t := range a {
		if b.Contains(t) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
