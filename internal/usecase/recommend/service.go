package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/reelmatch/internal/domain"
	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/request"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/result"
	"github.com/kailas-cloud/reelmatch/internal/domain/tokenset"
	logpkg "github.com/kailas-cloud/reelmatch/internal/logger"
	"github.com/kailas-cloud/reelmatch/internal/metrics"
)

const (
	operation     = "recommend"
	ctxCheckEvery = 512
)

// Service recommends catalog items similar to a title by Jaccard similarity
// of their token sets.
type Service struct {
	catalog     CatalogReader
	tokens      TokenSource
	trailers    TrailerLinker
	maxResults  int
	scanTimeout time.Duration
	logger      *zap.Logger
}

// New creates a recommend service that builds token sets on every call.
func New(catalog CatalogReader, trailers TrailerLinker, logger *zap.Logger) *Service {
	return &Service{
		catalog:    catalog,
		tokens:     buildTokens{},
		trailers:   trailers,
		maxResults: request.MaxRecommend,
		logger:     logger,
	}
}

// WithTokenSource replaces per-call token set construction, e.g. with a cache.
func (s *Service) WithTokenSource(ts TokenSource) *Service {
	if ts != nil {
		s.tokens = ts
	}
	return s
}

// WithMaxResults caps the number of recommendations regardless of the request limit.
func (s *Service) WithMaxResults(n int) *Service {
	if n > 0 {
		s.maxResults = n
	}
	return s
}

// WithScanTimeout bounds the similarity scan. Zero disables the deadline.
func (s *Service) WithScanTimeout(d time.Duration) *Service {
	s.scanTimeout = d
	return s
}

type candidate struct {
	pos   int
	score float64
}

// Recommend returns up to req.Limit() items most similar to the first item
// whose title contains req.Title(). Items sharing the matched item's id are
// never returned. Ties keep catalog order.
func (s *Service) Recommend(ctx context.Context, req *request.Recommend) (res []result.Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRanking(operation, start, err) }()

	if s.scanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.scanTimeout)
		defer cancel()
	}

	cat, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	pos, ok := cat.FindByTitle(req.Title())
	if !ok {
		logpkg.FromContext(ctx, s.logger).Debug("No title match", zap.String("title", req.Title()))
		return nil, fmt.Errorf("%w: no title contains %q", domain.ErrItemNotFound, req.Title())
	}

	cands, err := s.rank(ctx, cat, pos)
	if err != nil {
		return nil, err
	}

	n := min(req.Limit(), s.maxResults, len(cands))
	res = make([]result.Result, n)
	for i := range n {
		res[i] = result.Present(cat, cands[i].pos, cands[i].score, s.trailers.URL)
	}
	return res, nil
}

// rank scores every other item against the item at pos, best first.
func (s *Service) rank(ctx context.Context, cat *domcat.Catalog, pos int) ([]candidate, error) {
	sourceID := cat.At(pos).ID()
	target := s.tokens.TokenSet(cat, pos)

	cands := make([]candidate, 0, cat.Len())
	for i := range cat.Len() {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("similarity scan: %w", err)
			}
		}
		if cat.At(i).ID() == sourceID {
			continue
		}
		cands = append(cands, candidate{pos: i, score: tokenset.Jaccard(target, s.tokens.TokenSet(cat, i))})
	}

	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].score > cands[b].score
	})
	return cands, nil
}

// buildTokens recomputes token sets on every call.
type buildTokens struct{}

func (buildTokens) TokenSet(cat *domcat.Catalog, pos int) tokenset.Set {
	return tokenset.Build(cat.At(pos))
}
