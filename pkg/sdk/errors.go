package reelmatch

import "github.com/kailas-cloud/reelmatch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrItemNotFound       = domain.ErrItemNotFound
	ErrInvalidRequest     = domain.ErrInvalidRequest
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
)
