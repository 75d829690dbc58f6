package request

import (
	"errors"
	"fmt"
	"strings"
)

// Request parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in bytes.
	MaxQueryLength     = 4096
	DefaultRecommend   = 10
	MaxRecommend       = 10
	DefaultSearchLimit = 20
	MaxSearchLimit     = 20
	// MinSearchQuery is the shortest trimmed query (in runes) that triggers a scan.
	MinSearchQuery = 3
)

// Recommend is a validated "items similar to title" query.
type Recommend struct {
	title string
	limit int
}

// NewRecommend validates and normalizes recommend parameters.
// The title is trimmed and must be non-empty; limit<=0 selects the default.
func NewRecommend(title string, limit int) (Recommend, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Recommend{}, errors.New("title is required")
	}
	if len(title) > MaxQueryLength {
		return Recommend{}, fmt.Errorf("title too long (max %d chars)", MaxQueryLength)
	}
	return Recommend{title: title, limit: clamp(limit, DefaultRecommend, MaxRecommend)}, nil
}

// Title returns the trimmed title query.
func (r *Recommend) Title() string { return r.title }

// Limit returns the maximum number of results.
func (r *Recommend) Limit() int { return r.limit }

// Search is a validated free-text search.
type Search struct {
	query string
	limit int
}

// NewSearch validates and normalizes search parameters.
// A short or empty query is valid; the ranker returns no results for it.
func NewSearch(query string, limit int) (Search, error) {
	query = strings.TrimSpace(query)
	if len(query) > MaxQueryLength {
		return Search{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	return Search{query: query, limit: clamp(limit, DefaultSearchLimit, MaxSearchLimit)}, nil
}

// Query returns the trimmed query text.
func (r *Search) Query() string { return r.query }

// Limit returns the maximum number of results.
func (r *Search) Limit() int { return r.limit }

func clamp(v, def, maxV int) int {
	if v <= 0 {
		return def
	}
	if v > maxV {
		return maxV
	}
	return v
}
