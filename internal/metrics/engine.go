package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog and ranking Prometheus metrics.
var (
	CatalogItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reelmatch",
			Name:      "catalog_items",
			Help:      "Number of items in the current catalog snapshot",
		},
	)

	CatalogRowsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reelmatch",
			Name:      "catalog_rows_skipped_total",
			Help:      "Malformed catalog rows skipped during load",
		},
		[]string{"table"}, // "items" / "images"
	)

	CatalogLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reelmatch",
			Name:      "catalog_loads_total",
			Help:      "Catalog loads by outcome",
		},
		[]string{"status"}, // "ok" / "error"
	)

	RankingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reelmatch",
			Name:      "ranking_duration_seconds",
			Help:      "Recommend/search computation time in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	RankingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reelmatch",
			Name:      "ranking_requests_total",
			Help:      "Recommend/search calls by outcome",
		},
		[]string{"operation", "status"},
	)

	TokenCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reelmatch",
			Name:      "token_cache_total",
			Help:      "Token set cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registered bool

// Register registers HTTP, catalog and ranking metrics with the default registry.
// Must be called from main; repeated calls are no-ops.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(CatalogItems)
	prometheus.MustRegister(CatalogRowsSkippedTotal)
	prometheus.MustRegister(CatalogLoadsTotal)
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(RankingRequestsTotal)
	prometheus.MustRegister(TokenCacheTotal)
	registered = true
}

// ObserveRanking records one recommend/search call.
func ObserveRanking(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RankingDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	RankingRequestsTotal.WithLabelValues(operation, status).Inc()
}
