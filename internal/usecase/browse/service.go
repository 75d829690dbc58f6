package browse

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/reelmatch/internal/domain"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/reelmatch/internal/logger"
	"github.com/kailas-cloud/reelmatch/internal/metrics"
)

// DefaultFeatured is the number of featured items when the caller asks for none.
const DefaultFeatured = 10

// Service serves the homepage selection and single-item details.
type Service struct {
	catalog  CatalogReader
	trailers TrailerLinker
	featured int
	logger   *zap.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// New creates a browse service with a time-seeded random source.
func New(catalog CatalogReader, trailers TrailerLinker, logger *zap.Logger) *Service {
	seed := uint64(time.Now().UnixNano())
	return &Service{
		catalog:  catalog,
		trailers: trailers,
		featured: DefaultFeatured,
		logger:   logger,
		rng:      rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// WithRand replaces the random source.
func (s *Service) WithRand(r *rand.Rand) *Service {
	if r != nil {
		s.rng = r
	}
	return s
}

// WithFeaturedCount sets the default size of the featured selection.
func (s *Service) WithFeaturedCount(n int) *Service {
	if n > 0 {
		s.featured = n
	}
	return s
}

// Featured returns up to n distinct random items. The selection never exceeds
// the number of items nor the number of image rows. n <= 0 selects the default.
func (s *Service) Featured(ctx context.Context, n int) (res []result.Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRanking("featured", start, err) }()

	if n <= 0 {
		n = s.featured
	}

	cat, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	k := min(n, cat.Len(), cat.ImageRows())

	s.mu.Lock()
	perm := s.rng.Perm(cat.Len())
	s.mu.Unlock()

	res = make([]result.Result, k)
	for i := range k {
		res[i] = result.Present(cat, perm[i], 0, s.trailers.URL)
	}

	logpkg.FromContext(ctx, s.logger).Debug("Featured selection",
		zap.Int("requested", n),
		zap.Int("returned", k),
	)
	return res, nil
}

// Get returns the item with the given id, presented with its image and
// trailer link.
func (s *Service) Get(ctx context.Context, id string) (result.Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return result.Result{}, fmt.Errorf("%w: id is required", domain.ErrInvalidRequest)
	}

	cat, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return result.Result{}, fmt.Errorf("get catalog: %w", err)
	}

	pos, ok := cat.FindByID(id)
	if !ok {
		return result.Result{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return result.Present(cat, pos, 0, s.trailers.URL), nil
}
