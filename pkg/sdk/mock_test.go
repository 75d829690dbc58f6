package reelmatch

import (
	"context"

	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/request"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/result"
	catalogrepo "github.com/kailas-cloud/reelmatch/internal/repository/catalog"
	healthuc "github.com/kailas-cloud/reelmatch/internal/usecase/health"
)

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	fn func(ctx context.Context, req *request.Recommend) ([]result.Result, error)
}

func (m *mockRecommendUC) Recommend(ctx context.Context, req *request.Recommend) ([]result.Result, error) {
	return m.fn(ctx, req)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	fn func(ctx context.Context, req *request.Search) ([]result.Result, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Search) ([]result.Result, error) {
	return m.fn(ctx, req)
}

// --- browseUseCase mock ---

type mockBrowseUC struct {
	featuredFn func(ctx context.Context, n int) ([]result.Result, error)
	getFn      func(ctx context.Context, id string) (result.Result, error)
}

func (m *mockBrowseUC) Featured(ctx context.Context, n int) ([]result.Result, error) {
	return m.featuredFn(ctx, n)
}

func (m *mockBrowseUC) Get(ctx context.Context, id string) (result.Result, error) {
	return m.getFn(ctx, id)
}

// --- catalogReloader mock ---

type mockReloader struct {
	cat   *domcat.Catalog
	stats catalogrepo.Stats
	err   error
}

func (m *mockReloader) ReloadStats(_ context.Context) (*domcat.Catalog, catalogrepo.Stats, error) {
	return m.cat, m.stats, m.err
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
