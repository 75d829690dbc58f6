package recommend

import (
	"context"

	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/tokenset"
)

// CatalogReader provides the snapshot to rank against.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*domcat.Catalog, error)
}

// TokenSource returns the token set of the item at a catalog position.
// Implementations may memoize; returned sets are read-only.
type TokenSource interface {
	TokenSet(cat *domcat.Catalog, pos int) tokenset.Set
}

// TrailerLinker synthesizes trailer search URLs.
type TrailerLinker interface {
	URL(title, year string) string
}
