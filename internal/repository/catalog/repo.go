package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/reelmatch/internal/domain"
	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/metrics"
)

// source is the consumer interface for catalog loading (ISP).
type source interface {
	Load(ctx context.Context, version uint64) (*domcat.Catalog, Stats, error)
}

// Repo owns the current catalog snapshot.
// Snapshots are immutable; a reload swaps the pointer atomically so
// in-flight calls keep ranking against the snapshot they started with.
type Repo struct {
	src             source
	reloadOnRequest bool
	logger          *zap.Logger

	mu       sync.Mutex // serializes loads
	version  uint64
	current  atomic.Pointer[domcat.Catalog]
	onReload []func(*domcat.Catalog)
}

// New creates a catalog repository. With reloadOnRequest every Snapshot
// re-reads the source tables.
func New(src source, reloadOnRequest bool, logger *zap.Logger) *Repo {
	return &Repo{src: src, reloadOnRequest: reloadOnRequest, logger: logger}
}

// OnReload registers a hook called after each successful swap.
// Hooks must be registered before the repo is shared.
func (r *Repo) OnReload(fn func(*domcat.Catalog)) {
	r.onReload = append(r.onReload, fn)
}

// Snapshot returns the catalog to rank against.
func (r *Repo) Snapshot(ctx context.Context) (*domcat.Catalog, error) {
	if !r.reloadOnRequest {
		if c := r.current.Load(); c != nil {
			return c, nil
		}
	}
	return r.Reload(ctx)
}

// Reload reads the source tables and swaps the snapshot. On failure the
// previous snapshot stays in place and the error is returned.
func (r *Repo) Reload(ctx context.Context) (*domcat.Catalog, error) {
	c, _, err := r.ReloadStats(ctx)
	return c, err
}

// ReloadStats is Reload that also reports what the load read and skipped.
func (r *Repo) ReloadStats(ctx context.Context) (*domcat.Catalog, Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.version++
	c, stats, err := r.src.Load(ctx, r.version)
	if err != nil {
		metrics.CatalogLoadsTotal.WithLabelValues("error").Inc()
		r.logger.Error("Catalog load failed", zap.Uint64("version", r.version), zap.Error(err))
		return nil, Stats{}, fmt.Errorf("load catalog: %w", err)
	}

	metrics.CatalogLoadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogItems.Set(float64(stats.Items))
	metrics.CatalogRowsSkippedTotal.WithLabelValues(tableItems).Add(float64(stats.ItemsSkipped))
	metrics.CatalogRowsSkippedTotal.WithLabelValues(tableImages).Add(float64(stats.ImagesSkipped))

	fields := []zap.Field{
		zap.Uint64("version", r.version),
		zap.Int("items", stats.Items),
		zap.Int("images", stats.Images),
	}
	if stats.ItemsSkipped > 0 || stats.ImagesSkipped > 0 {
		r.logger.Warn("Catalog loaded with skipped rows", append(fields,
			zap.Int("items_skipped", stats.ItemsSkipped),
			zap.Int("images_skipped", stats.ImagesSkipped),
		)...)
	} else {
		r.logger.Debug("Catalog loaded", fields...)
	}

	r.current.Store(c)
	for _, fn := range r.onReload {
		fn(c)
	}
	return c, stats, nil
}

// Ping reports whether a snapshot is available.
func (r *Repo) Ping(_ context.Context) error {
	if r.current.Load() == nil {
		return domain.ErrCatalogUnavailable
	}
	return nil
}

// CheckImages reports whether the current snapshot has any image rows.
// Without them every item falls back to the placeholder poster.
func (r *Repo) CheckImages(_ context.Context) error {
	c := r.current.Load()
	if c == nil {
		return domain.ErrCatalogUnavailable
	}
	if c.ImageRows() == 0 {
		return errors.New("no image rows loaded")
	}
	return nil
}
