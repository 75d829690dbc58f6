package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/reelmatch/internal/domain"
	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/item"
	"github.com/kailas-cloud/reelmatch/internal/metrics"
)

// --- Mocks ---

type mockSource struct {
	calls    int
	err      error
	stats    Stats
	versions []uint64
}

func (m *mockSource) Load(_ context.Context, version uint64) (*domcat.Catalog, Stats, error) {
	m.calls++
	m.versions = append(m.versions, version)
	if m.err != nil {
		return nil, Stats{}, m.err
	}
	items := []item.Item{item.New(item.Fields{ID: "1", Title: "Dune"})}
	return domcat.New(version, items, nil, ""), m.stats, nil
}

// --- Tests ---

func TestSnapshot_LoadsOnce(t *testing.T) {
	src := &mockSource{}
	repo := New(src, false, zap.NewNop())

	a, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	b, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if a != b {
		t.Error("expected the same snapshot without reload")
	}
	if src.calls != 1 {
		t.Errorf("source loaded %d times, want 1", src.calls)
	}
}

func TestSnapshot_ReloadOnRequest(t *testing.T) {
	src := &mockSource{}
	repo := New(src, true, zap.NewNop())

	a, _ := repo.Snapshot(context.Background())
	b, _ := repo.Snapshot(context.Background())
	if src.calls != 2 {
		t.Errorf("source loaded %d times, want 2", src.calls)
	}
	if a.Version() >= b.Version() {
		t.Errorf("versions must increase: %d then %d", a.Version(), b.Version())
	}
}

func TestReload_FailureKeepsPrevious(t *testing.T) {
	src := &mockSource{}
	repo := New(src, false, zap.NewNop())

	first, err := repo.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}

	errBefore := testutil.ToFloat64(metrics.CatalogLoadsTotal.WithLabelValues("error"))
	src.err = domain.ErrCatalogUnavailable
	if _, err := repo.Reload(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
	if got := testutil.ToFloat64(metrics.CatalogLoadsTotal.WithLabelValues("error")) - errBefore; got != 1 {
		t.Errorf("error loads delta = %f, want 1", got)
	}

	cur, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if cur != first {
		t.Error("failed reload must keep the previous snapshot")
	}
}

func TestSnapshot_InitialFailure(t *testing.T) {
	repo := New(&mockSource{err: domain.ErrCatalogUnavailable}, false, zap.NewNop())

	if _, err := repo.Snapshot(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
	if err := repo.Ping(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("Ping() = %v, want ErrCatalogUnavailable", err)
	}
}

func TestReload_HooksAndMetrics(t *testing.T) {
	src := &mockSource{stats: Stats{Items: 1, ItemsSkipped: 2, ImagesSkipped: 1}}
	repo := New(src, false, zap.NewNop())

	var seen []uint64
	repo.OnReload(func(c *domcat.Catalog) { seen = append(seen, c.Version()) })

	skippedBefore := testutil.ToFloat64(metrics.CatalogRowsSkippedTotal.WithLabelValues("items"))

	if _, err := repo.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if _, err := repo.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("hook versions = %v, want [1 2]", seen)
	}
	if got := testutil.ToFloat64(metrics.CatalogRowsSkippedTotal.WithLabelValues("items")) - skippedBefore; got != 4 {
		t.Errorf("items skipped delta = %f, want 4", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogItems); got != 1 {
		t.Errorf("catalog_items = %f, want 1", got)
	}
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping() = %v", err)
	}
}

func TestRepo_WithCSVLoader(t *testing.T) {
	l := newTestLoader(t, itemsCSV, imagesCSV)
	repo := New(l, false, zap.NewNop())

	c, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d", c.Len())
	}
}

func TestCheckImages(t *testing.T) {
	repo := New(&mockSource{}, false, zap.NewNop())
	if err := repo.CheckImages(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("before load: %v, want ErrCatalogUnavailable", err)
	}

	if _, err := repo.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if err := repo.CheckImages(context.Background()); err == nil {
		t.Error("expected error for a snapshot without image rows")
	}

	withImages := New(newTestLoader(t, itemsCSV, imagesCSV), false, zap.NewNop())
	if _, err := withImages.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if err := withImages.CheckImages(context.Background()); err != nil {
		t.Errorf("CheckImages() = %v", err)
	}
}
