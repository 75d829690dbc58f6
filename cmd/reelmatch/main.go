package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/reelmatch/internal/config"
	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/trailer"
	logpkg "github.com/kailas-cloud/reelmatch/internal/logger"
	"github.com/kailas-cloud/reelmatch/internal/metrics"
	catalogrepo "github.com/kailas-cloud/reelmatch/internal/repository/catalog"
	"github.com/kailas-cloud/reelmatch/internal/repository/tokencache"
	chiTransport "github.com/kailas-cloud/reelmatch/internal/transport/chi"
	"github.com/kailas-cloud/reelmatch/internal/version"
	browseuc "github.com/kailas-cloud/reelmatch/internal/usecase/browse"
	healthuc "github.com/kailas-cloud/reelmatch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/reelmatch/internal/usecase/recommend"
	searchuc "github.com/kailas-cloud/reelmatch/internal/usecase/search"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println(version.String())
		return
	}

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting reelmatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("build_date", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("items_path", cfg.Catalog.ItemsPath),
		zap.String("images_path", cfg.Catalog.ImagesPath),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	loader := catalogrepo.NewLoader(catalogrepo.LoaderConfig{
		ItemsPath:      cfg.Catalog.ItemsPath,
		ImagesPath:     cfg.Catalog.ImagesPath,
		PlaceholderURL: cfg.Catalog.PlaceholderImageURL,
	}, logger)
	catalog := catalogrepo.New(loader, cfg.Catalog.ReloadOnRequest, logger)

	links := trailer.New(cfg.Presentation.TrailerURLTemplate)

	recommendSvc := recommenduc.New(catalog, links, logger).
		WithMaxResults(cfg.Ranking.RecommendLimit).
		WithScanTimeout(cfg.ScanTimeout())

	if cfg.Ranking.TokenCacheSize > 0 {
		cache, err := tokencache.New(cfg.Ranking.TokenCacheSize, metrics.TokenCacheTotal)
		if err != nil {
			logger.Fatal("Failed to create token cache", zap.Error(err))
		}
		catalog.OnReload(func(*domcat.Catalog) { cache.Purge() })
		recommendSvc.WithTokenSource(cache)
	}

	searchSvc := searchuc.New(catalog, links, logger).
		WithMaxResults(cfg.Ranking.SearchLimit).
		WithMinQueryLength(cfg.Ranking.MinQueryLength).
		WithMinFieldScore(cfg.Ranking.MinFieldScore).
		WithWorkers(cfg.Ranking.Workers).
		WithScanTimeout(cfg.ScanTimeout())
	browseSvc := browseuc.New(catalog, links, logger).
		WithFeaturedCount(cfg.Ranking.FeaturedCount)
	healthSvc := healthuc.New(catalog, catalog)

	// Initial load; on failure Snapshot retries per request.
	if c, err := catalog.Reload(context.Background()); err != nil {
		logger.Error("Initial catalog load failed", zap.Error(err))
	} else {
		logger.Info("Catalog ready",
			zap.Int("items", c.Len()),
			zap.Int("image_rows", c.ImageRows()),
		)
	}

	server := chiTransport.NewServer(recommendSvc, searchSvc, browseSvc, healthSvc, catalog, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logpkg.FromContext(r.Context(), logger).Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
