package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/reelmatch/internal/domain"
	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/item"
)

// Column names of the item and image tables.
const (
	colID       = "movie_id"
	colTitle    = "title"
	colGenres   = "genres"
	colOverview = "overview"
	colCast     = "cast"
	colDirector = "director"
	colYear     = "year"
	colImageURL = "image_url"

	tableItems  = "items"
	tableImages = "images"
)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 1024

// LoaderConfig holds the table locations.
type LoaderConfig struct {
	ItemsPath      string
	ImagesPath     string
	PlaceholderURL string
}

// Stats summarizes one load.
type Stats struct {
	Items         int
	ItemsSkipped  int
	Images        int
	ImagesSkipped int
	// ImagesUnavailable is set when the image table could not be read and
	// every item resolves to the placeholder.
	ImagesUnavailable bool
}

// Loader reads the item and image tables (CSV or Parquet) into a catalog snapshot.
type Loader struct {
	cfg    LoaderConfig
	logger *zap.Logger
}

// NewLoader creates a catalog loader.
func NewLoader(cfg LoaderConfig, logger *zap.Logger) *Loader {
	return &Loader{cfg: cfg, logger: logger}
}

// Load reads both tables. Failure to read the item table yields
// domain.ErrCatalogUnavailable; a missing or broken image table only degrades
// image lookups to the placeholder.
func (l *Loader) Load(ctx context.Context, version uint64) (*domcat.Catalog, Stats, error) {
	var stats Stats

	items, skipped, err := l.loadItems(ctx)
	if err != nil {
		return nil, stats, err
	}
	stats.Items, stats.ItemsSkipped = len(items), skipped

	images, skipped, err := l.loadImages(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, stats, fmt.Errorf("load images: %w", err)
		}
		l.logger.Warn("Image table unavailable, using placeholder for every item",
			zap.String("path", l.cfg.ImagesPath),
			zap.Error(err),
		)
		images, skipped = nil, 0
		stats.ImagesUnavailable = true
	}
	stats.Images, stats.ImagesSkipped = len(images), skipped

	return domcat.New(version, items, images, l.cfg.PlaceholderURL), stats, nil
}

func (l *Loader) loadItems(ctx context.Context) ([]item.Item, int, error) {
	scan, closeFn, err := openTable(ctx, l.cfg.ItemsPath)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	defer closeFn()

	items, skipped, err := parseItems(scan)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read %s: %w", domain.ErrCatalogUnavailable, l.cfg.ItemsPath, err)
	}
	return items, skipped, nil
}

func (l *Loader) loadImages(ctx context.Context) ([]item.ImageAsset, int, error) {
	if l.cfg.ImagesPath == "" {
		return nil, 0, nil
	}
	scan, closeFn, err := openTable(ctx, l.cfg.ImagesPath)
	if err != nil {
		return nil, 0, fmt.Errorf("open images: %w", err)
	}
	defer closeFn()

	return parseImages(scan)
}

// scanFunc feeds every data row of one table to fn and returns the number of
// skipped rows.
type scanFunc func(table string, fn func(row) error) (int, error)

// openTable picks the table format by file extension: .parquet files are
// read with parquet-go, anything else as CSV.
func openTable(ctx context.Context, path string) (scanFunc, func(), error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		h, err := openParquet(path)
		if err != nil {
			return nil, nil, err
		}
		scan := func(table string, fn func(row) error) (int, error) {
			return readParquetTable(ctx, h.pf, table, fn)
		}
		return scan, h.Close, nil
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	scan := func(table string, fn func(row) error) (int, error) {
		return readTable(ctx, f, table, fn)
	}
	return scan, func() { _ = f.Close() }, nil
}

func parseItems(scan scanFunc) ([]item.Item, int, error) {
	var items []item.Item
	skipped, err := scan(tableItems, func(row row) error {
		id, hasID := row.get(colID)
		if !hasID {
			id = strconv.Itoa(len(items))
		} else if strings.TrimSpace(id) == "" {
			return domain.NewMalformedRow(tableItems, row.line, "blank "+colID)
		}
		title, _ := row.get(colTitle)
		genres, _ := row.get(colGenres)
		overview, _ := row.get(colOverview)
		cast, _ := row.get(colCast)
		director, _ := row.get(colDirector)
		year, _ := row.get(colYear)

		items = append(items, item.New(item.Fields{
			ID:       id,
			Title:    title,
			Genres:   genres,
			Overview: overview,
			Cast:     cast,
			Director: director,
			Year:     year,
		}))
		return nil
	})
	return items, skipped, err
}

func parseImages(scan scanFunc) ([]item.ImageAsset, int, error) {
	var images []item.ImageAsset
	skipped, err := scan(tableImages, func(row row) error {
		id, ok := row.get(colID)
		if !ok {
			return fmt.Errorf("image table has no %s column", colID)
		}
		if strings.TrimSpace(id) == "" {
			return domain.NewMalformedRow(tableImages, row.line, "blank "+colID)
		}
		url, _ := row.get(colImageURL)
		images = append(images, item.NewImageAsset(id, url))
		return nil
	})
	return images, skipped, err
}

// row gives named access to one table record.
type row struct {
	line   int
	header map[string]int
	fields []string
}

// get returns the column value; ok is false when the column is absent from
// the header. Short rows yield "" for missing trailing columns.
func (r row) get(col string) (string, bool) {
	i, ok := r.header[col]
	if !ok {
		return "", false
	}
	if i >= len(r.fields) {
		return "", true
	}
	return r.fields[i], true
}

// headerIndex maps normalized column names to their first position.
func headerIndex(names []string) map[string]int {
	header := make(map[string]int, len(names))
	for i, name := range names {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := header[name]; !dup {
			header[name] = i
		}
	}
	return header
}

// readTable drives the CSV skip-and-continue loop: rows failing CSV parsing,
// carrying more fields than the header, or rejected by fn with a
// domain.ErrMalformedRow are counted and skipped. Any other error aborts.
func readTable(ctx context.Context, r io.Reader, table string, fn func(row) error) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rawHeader, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s header: %w", table, err)
	}
	header := headerIndex(rawHeader)

	skipped := 0
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return skipped, fmt.Errorf("read %s: %w", table, err)
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return skipped, nil
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			skipped++
			continue
		}
		if err != nil {
			return skipped, fmt.Errorf("read %s: %w", table, err)
		}

		line, _ := cr.FieldPos(0)
		if len(rec) > len(rawHeader) {
			skipped++
			continue
		}

		if err := fn(row{line: line, header: header, fields: rec}); err != nil {
			if errors.Is(err, domain.ErrMalformedRow) {
				skipped++
				continue
			}
			return skipped, err
		}
	}
}
