package result

import (
	"github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/item"
)

// FieldScores holds per-field fuzzy scores (0-100) of a search hit.
type FieldScores struct {
	Title    int
	Genres   int
	Overview int
	Cast     int
	Director int
}

// Max returns the best of the five field scores.
func (f FieldScores) Max() int {
	return max(f.Title, f.Genres, f.Overview, f.Cast, f.Director)
}

// Result is a single ranked hit, ready for presentation.
type Result struct {
	item        item.Item
	score       float64
	imageURL    string
	trailerURL  string
	fieldScores *FieldScores
}

// New creates a ranked result.
func New(it item.Item, score float64, imageURL, trailerURL string) Result {
	return Result{item: it, score: score, imageURL: imageURL, trailerURL: trailerURL}
}

// WithFieldScores returns a copy carrying per-field search scores.
func (r Result) WithFieldScores(fs FieldScores) Result {
	r.fieldScores = &fs
	return r
}

// ID returns the item identifier.
func (r *Result) ID() string { return r.item.ID() }

// Item returns the underlying catalog item.
func (r *Result) Item() item.Item { return r.item }

// Score returns the ranking score: Jaccard in [0,1] for recommendations,
// the weighted fuzzy sum for search.
func (r *Result) Score() float64 { return r.score }

// ImageURL returns the resolved poster URL (never empty).
func (r *Result) ImageURL() string { return r.imageURL }

// TrailerURL returns the synthesized trailer search URL.
func (r *Result) TrailerURL() string { return r.trailerURL }

// FieldScores returns per-field scores; nil for recommendations.
func (r *Result) FieldScores() *FieldScores { return r.fieldScores }

// Present builds the result for the item at catalog position pos, resolving
// its image (placeholder on miss) and trailer link.
func Present(cat *catalog.Catalog, pos int, score float64, trailerURL func(title, year string) string) Result {
	it := cat.At(pos)
	return New(*it, score, cat.ImageURL(it.ID()), trailerURL(it.Title(), it.Year()))
}
