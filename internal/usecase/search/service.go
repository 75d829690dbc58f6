package search

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/fuzzy"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/request"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/reelmatch/internal/logger"
	"github.com/kailas-cloud/reelmatch/internal/metrics"
)

const (
	operation = "search"

	// DefaultMinFieldScore is the best-field floor an item must reach to be a hit.
	DefaultMinFieldScore = 80

	titleWeight    = 10
	genresWeight   = 3
	overviewWeight = 1
	castWeight     = 2
	directorWeight = 2

	ctxCheckEvery = 256
)

// Service ranks catalog items against a free-text query by weighted partial
// fuzzy ratio over title, genres, overview, cast and director.
type Service struct {
	catalog       CatalogReader
	trailers      TrailerLinker
	minQuery      int
	minFieldScore int
	maxResults    int
	workers       int
	scanTimeout   time.Duration
	logger        *zap.Logger
}

// New creates a search service with default thresholds.
func New(catalog CatalogReader, trailers TrailerLinker, logger *zap.Logger) *Service {
	return &Service{
		catalog:       catalog,
		trailers:      trailers,
		minQuery:      request.MinSearchQuery,
		minFieldScore: DefaultMinFieldScore,
		maxResults:    request.MaxSearchLimit,
		workers:       runtime.GOMAXPROCS(0),
		logger:        logger,
	}
}

// WithMinQueryLength sets the shortest query (in runes) that triggers a scan.
func (s *Service) WithMinQueryLength(n int) *Service {
	if n > 0 {
		s.minQuery = n
	}
	return s
}

// WithMinFieldScore sets the floor on an item's best field score.
func (s *Service) WithMinFieldScore(n int) *Service {
	if n >= 0 && n <= 100 {
		s.minFieldScore = n
	}
	return s
}

// WithMaxResults caps the number of hits regardless of the request limit.
func (s *Service) WithMaxResults(n int) *Service {
	if n > 0 {
		s.maxResults = n
	}
	return s
}

// WithWorkers sets how many goroutines share the scan.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithScanTimeout bounds the scan. Zero disables the deadline.
func (s *Service) WithScanTimeout(d time.Duration) *Service {
	s.scanTimeout = d
	return s
}

type hit struct {
	pos    int
	fields result.FieldScores
	score  int
}

// Search returns up to req.Limit() hits best first. Queries shorter than the
// minimum length return an empty list without scanning.
func (s *Service) Search(ctx context.Context, req *request.Search) (res []result.Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRanking(operation, start, err) }()

	if utf8.RuneCountInString(req.Query()) < s.minQuery {
		return []result.Result{}, nil
	}

	if s.scanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.scanTimeout)
		defer cancel()
	}

	cat, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	hits, err := s.scan(ctx, cat, strings.ToLower(req.Query()))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})

	n := min(req.Limit(), s.maxResults, len(hits))
	res = make([]result.Result, n)
	for i := range n {
		h := hits[i]
		res[i] = result.Present(cat, h.pos, float64(h.score), s.trailers.URL).WithFieldScores(h.fields)
	}

	logpkg.FromContext(ctx, s.logger).Debug("Search ranked",
		zap.String("query", req.Query()),
		zap.Int("matched", len(hits)),
		zap.Int("returned", n),
	)
	return res, nil
}

// scan scores every item. Each worker owns a contiguous range of positions
// and writes only its own slots, so the collected hits are in catalog order.
func (s *Service) scan(ctx context.Context, cat *domcat.Catalog, query string) ([]hit, error) {
	total := cat.Len()
	slots := make([]hit, total)
	ok := make([]bool, total)

	workers := max(min(s.workers, total), 1)
	chunk := (total + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for from := 0; from < total; from += chunk {
		to := min(from+chunk, total)
		g.Go(func() error {
			for i := from; i < to; i++ {
				if (i-from)%ctxCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				fs := scoreFields(query, cat, i)
				if fs.Max() < s.minFieldScore {
					continue
				}
				slots[i] = hit{pos: i, fields: fs, score: combined(fs)}
				ok[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fuzzy scan: %w", err)
	}
	// A worker may finish its range before observing cancellation.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fuzzy scan: %w", err)
	}

	hits := make([]hit, 0, total)
	for i := range slots {
		if ok[i] {
			hits = append(hits, slots[i])
		}
	}
	return hits, nil
}

func scoreFields(query string, cat *domcat.Catalog, pos int) result.FieldScores {
	it := cat.At(pos)
	return result.FieldScores{
		Title:    fuzzy.PartialRatio(query, strings.ToLower(it.Title())),
		Genres:   fuzzy.PartialRatio(query, strings.ToLower(it.Genres())),
		Overview: fuzzy.PartialRatio(query, strings.ToLower(it.Overview())),
		Cast:     fuzzy.PartialRatio(query, strings.ToLower(it.Cast())),
		Director: fuzzy.PartialRatio(query, strings.ToLower(it.Director())),
	}
}

func combined(fs result.FieldScores) int {
	return fs.Title*titleWeight +
		fs.Genres*genresWeight +
		fs.Overview*overviewWeight +
		fs.Cast*castWeight +
		fs.Director*directorWeight
}
