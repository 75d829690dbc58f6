package search

import (
	"context"

	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
)

// CatalogReader provides the current catalog snapshot.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*domcat.Catalog, error)
}

// TrailerLinker synthesizes trailer links for hits.
type TrailerLinker interface {
	URL(title, year string) string
}
