package chi

import (
	"github.com/kailas-cloud/reelmatch/internal/domain/search/result"
)

// ErrorCode is a machine-readable error classification.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeItemNotFound       ErrorCode = "item_not_found"
	ErrorCodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	ErrorCodeTimeout            ErrorCode = "timeout"
	ErrorCodeCanceled           ErrorCode = "request_canceled"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FieldScores mirrors result.FieldScores on the wire.
type FieldScores struct {
	Title    int `json:"title"`
	Genres   int `json:"genres"`
	Overview int `json:"overview"`
	Cast     int `json:"cast"`
	Director int `json:"director"`
}

// Item is a presented catalog item.
type Item struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Year        string       `json:"year,omitempty"`
	Genres      []string     `json:"genres"`
	Overview    string       `json:"overview,omitempty"`
	Cast        []string     `json:"cast"`
	Director    string       `json:"director,omitempty"`
	ImageURL    string       `json:"image_url"`
	TrailerURL  string       `json:"trailer_url"`
	Score       *float64     `json:"score,omitempty"`
	FieldScores *FieldScores `json:"field_scores,omitempty"`
}

// ListResponse wraps a ranked or featured list.
type ListResponse struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

// ReloadResponse reports the snapshot produced by a reload.
type ReloadResponse struct {
	Version   uint64 `json:"version"`
	Items     int    `json:"items"`
	ImageRows int    `json:"image_rows"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func itemFromResult(r *result.Result, withScore bool) Item {
	it := r.Item()
	out := Item{
		ID:         it.ID(),
		Title:      it.Title(),
		Year:       it.Year(),
		Genres:     nonNil(it.GenreList()),
		Overview:   it.Overview(),
		Cast:       nonNil(it.CastList()),
		Director:   it.Director(),
		ImageURL:   r.ImageURL(),
		TrailerURL: r.TrailerURL(),
	}
	if withScore {
		score := r.Score()
		out.Score = &score
	}
	if fs := r.FieldScores(); fs != nil {
		out.FieldScores = &FieldScores{
			Title:    fs.Title,
			Genres:   fs.Genres,
			Overview: fs.Overview,
			Cast:     fs.Cast,
			Director: fs.Director,
		}
	}
	return out
}

func listFromResults(rs []result.Result, withScore bool) ListResponse {
	items := make([]Item, len(rs))
	for i := range rs {
		items[i] = itemFromResult(&rs[i], withScore)
	}
	return ListResponse{Items: items, Count: len(items)}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
