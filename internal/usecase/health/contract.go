package health

import "context"

// CatalogPinger checks whether a catalog snapshot is loaded.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// ImageChecker checks whether poster images are available.
type ImageChecker interface {
	CheckImages(ctx context.Context) error
}
