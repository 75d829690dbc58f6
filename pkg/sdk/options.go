package reelmatch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	itemsPath       string
	imagesPath      string
	placeholderURL  string
	reloadOnRequest bool

	trailerTemplate string
	tokenCacheSize  int
	workers         int
	minFieldScore   int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithItemsCSV sets the item table. Required.
func WithItemsCSV(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.itemsPath = path
	})
}

// WithImagesCSV sets the image table. Without it every item shows the placeholder.
func WithImagesCSV(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.imagesPath = path
	})
}

// WithPlaceholderURL sets the poster URL used when an item has no image.
// Default: /static/defaultposter.jpg.
func WithPlaceholderURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.placeholderURL = url
	})
}

// WithReloadOnRequest re-reads both tables on every call.
func WithReloadOnRequest() Option {
	return optionFunc(func(c *clientConfig) {
		c.reloadOnRequest = true
	})
}

// WithTrailerTemplate sets the trailer search URL template; it must contain
// exactly one %s. Default: YouTube search.
func WithTrailerTemplate(tmpl string) Option {
	return optionFunc(func(c *clientConfig) {
		c.trailerTemplate = tmpl
	})
}

// WithTokenCache memoizes item token sets across recommendations.
// Zero disables the cache (default).
func WithTokenCache(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.tokenCacheSize = size
	})
}

// WithWorkers sets the number of goroutines sharing a search scan.
// Default: GOMAXPROCS.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithMinFieldScore sets the best-field floor (0-100) for search hits. Default: 80.
func WithMinFieldScore(score int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minFieldScore = score
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
