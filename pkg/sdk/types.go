package reelmatch

import "github.com/kailas-cloud/reelmatch/internal/domain/search/result"

// FieldScores holds the per-field fuzzy scores (0-100) of a search hit.
type FieldScores struct {
	Title    int
	Genres   int
	Overview int
	Cast     int
	Director int
}

// Hit is a presented catalog item.
type Hit struct {
	ID         string
	Title      string
	Year       string
	Genres     []string
	Overview   string
	Cast       []string
	Director   string
	ImageURL   string
	TrailerURL string
	// Score is the Jaccard similarity for recommendations, the weighted
	// field sum for searches and zero for featured items and lookups.
	Score       float64
	FieldScores *FieldScores // search hits only
}

// CatalogInfo describes a loaded catalog snapshot.
type CatalogInfo struct {
	Version   uint64
	Items     int
	ImageRows int
	// Rows dropped as malformed during the load.
	ItemsSkipped  int
	ImagesSkipped int
	// ImagesUnavailable means every hit carries the placeholder image.
	ImagesUnavailable bool
}

func hitFromResult(r *result.Result) Hit {
	it := r.Item()
	h := Hit{
		ID:         it.ID(),
		Title:      it.Title(),
		Year:       it.Year(),
		Genres:     it.GenreList(),
		Overview:   it.Overview(),
		Cast:       it.CastList(),
		Director:   it.Director(),
		ImageURL:   r.ImageURL(),
		TrailerURL: r.TrailerURL(),
		Score:      r.Score(),
	}
	if fs := r.FieldScores(); fs != nil {
		h.FieldScores = &FieldScores{
			Title:    fs.Title,
			Genres:   fs.Genres,
			Overview: fs.Overview,
			Cast:     fs.Cast,
			Director: fs.Director,
		}
	}
	return h
}

func hitsFromResults(rs []result.Result) []Hit {
	hits := make([]Hit, len(rs))
	for i := range rs {
		hits[i] = hitFromResult(&rs[i])
	}
	return hits
}
