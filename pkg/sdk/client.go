package reelmatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/reelmatch/internal/domain"
	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/request"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/result"
	"github.com/kailas-cloud/reelmatch/internal/domain/trailer"
	catalogrepo "github.com/kailas-cloud/reelmatch/internal/repository/catalog"
	"github.com/kailas-cloud/reelmatch/internal/repository/tokencache"
	browseuc "github.com/kailas-cloud/reelmatch/internal/usecase/browse"
	healthuc "github.com/kailas-cloud/reelmatch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/reelmatch/internal/usecase/recommend"
	searchuc "github.com/kailas-cloud/reelmatch/internal/usecase/search"
)

// Internal interfaces, replaced by mocks in tests.
type recommendUseCase interface {
	Recommend(ctx context.Context, req *request.Recommend) ([]result.Result, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Search) ([]result.Result, error)
}

type browseUseCase interface {
	Featured(ctx context.Context, n int) ([]result.Result, error)
	Get(ctx context.Context, id string) (result.Result, error)
}

type catalogReloader interface {
	ReloadStats(ctx context.Context) (*domcat.Catalog, catalogrepo.Stats, error)
}

// Client is the reelmatch SDK entry point. It is safe for concurrent use.
type Client struct {
	catalog      catalogReloader
	recommendSvc recommendUseCase
	searchSvc    searchUseCase
	browseSvc    browseUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client and loads the catalog. The provided context bounds
// the initial load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.itemsPath == "" {
		return nil, errors.New("reelmatch: items table required (use WithItemsCSV)")
	}
	if cfg.minFieldScore < 0 || cfg.minFieldScore > 100 {
		return nil, fmt.Errorf("reelmatch: min field score %d out of range [0, 100]", cfg.minFieldScore)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c, err := wireClient(cfg, obs)
	if err != nil {
		return nil, err
	}
	if _, err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func wireClient(cfg *clientConfig, obs *observer) (*Client, error) {
	logger := engineLogger(cfg.logger)

	loader := catalogrepo.NewLoader(catalogrepo.LoaderConfig{
		ItemsPath:      cfg.itemsPath,
		ImagesPath:     cfg.imagesPath,
		PlaceholderURL: cfg.placeholderURL,
	}, logger)
	repo := catalogrepo.New(loader, cfg.reloadOnRequest, logger)
	links := trailer.New(cfg.trailerTemplate)

	recommendSvc := recommenduc.New(repo, links, logger)
	if cfg.tokenCacheSize > 0 {
		cache, err := tokencache.New(cfg.tokenCacheSize, nil)
		if err != nil {
			return nil, fmt.Errorf("reelmatch: %w", err)
		}
		repo.OnReload(func(*domcat.Catalog) { cache.Purge() })
		recommendSvc.WithTokenSource(cache)
	}

	searchSvc := searchuc.New(repo, links, logger).WithWorkers(cfg.workers)
	if cfg.minFieldScore > 0 {
		searchSvc.WithMinFieldScore(cfg.minFieldScore)
	}

	return &Client{
		catalog:      repo,
		recommendSvc: recommendSvc,
		searchSvc:    searchSvc,
		browseSvc:    browseuc.New(repo, links, logger),
		healthSvc:    healthuc.New(repo, repo),
		obs:          obs,
	}, nil
}

// Recommend returns up to limit items most similar to the first item whose
// title contains title, best first. limit <= 0 selects 10; larger values are
// capped at 10.
func (c *Client) Recommend(ctx context.Context, title string, limit int) (hits []Hit, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, len(hits), err) }()

	req, err := request.NewRecommend(title, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	res, err := c.recommendSvc.Recommend(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	return hitsFromResults(res), nil
}

// Search returns up to limit fuzzy matches for query, best first. Queries
// shorter than three characters return no hits. limit <= 0 selects 20.
func (c *Client) Search(ctx context.Context, query string, limit int) (hits []Hit, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, len(hits), err) }()

	req, err := request.NewSearch(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	res, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return hitsFromResults(res), nil
}

// Featured returns up to n distinct random items.
func (c *Client) Featured(ctx context.Context, n int) (hits []Hit, err error) {
	start := time.Now()
	defer func() { c.obs.observe("featured", start, len(hits), err) }()

	res, err := c.browseSvc.Featured(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("featured: %w", err)
	}
	return hitsFromResults(res), nil
}

// Item returns a single item by id.
func (c *Client) Item(ctx context.Context, id string) (hit Hit, err error) {
	start := time.Now()
	defer func() { c.obs.observe("item.get", start, 1, err) }()

	res, err := c.browseSvc.Get(ctx, id)
	if err != nil {
		return Hit{}, fmt.Errorf("get item: %w", err)
	}
	return hitFromResult(&res), nil
}

// Reload re-reads both tables. On failure the previous snapshot is kept.
// The returned info counts the rows skipped as malformed and reports whether
// the image table was unavailable.
func (c *Client) Reload(ctx context.Context) (info CatalogInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("catalog.reload", start, info.Items, err) }()

	cat, stats, err := c.catalog.ReloadStats(ctx)
	if err != nil {
		return CatalogInfo{}, fmt.Errorf("reelmatch: %w", err)
	}
	return CatalogInfo{
		Version:           cat.Version(),
		Items:             cat.Len(),
		ImageRows:         cat.ImageRows(),
		ItemsSkipped:      stats.ItemsSkipped,
		ImagesSkipped:     stats.ImagesSkipped,
		ImagesUnavailable: stats.ImagesUnavailable,
	}, nil
}
