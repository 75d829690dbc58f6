package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/kailas-cloud/reelmatch/internal/domain"
)

type parquetItem struct {
	MovieID  string   `parquet:"movie_id"`
	Title    string   `parquet:"title"`
	Genres   []string `parquet:"genres"`
	Overview string   `parquet:"overview"`
	Director string   `parquet:"director"`
	Year     string   `parquet:"year"`
}

type parquetImage struct {
	MovieID  string `parquet:"movie_id"`
	ImageURL string `parquet:"image_url"`
}

func writeParquet[T any](t *testing.T, dir, name string, rows []T) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := parquet.WriteFile(p, rows); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoad_Parquet(t *testing.T) {
	dir := t.TempDir()
	items := writeParquet(t, dir, "movies.parquet", []parquetItem{
		{MovieID: "1", Title: "Dune", Genres: []string{"Science Fiction", "Adventure"}, Year: "2021"},
		{MovieID: " ", Title: "Nameless"},
		{MovieID: "2", Title: "Dune Part Two", Director: "Denis Villeneuve", Year: "2024"},
	})
	images := writeParquet(t, dir, "images.parquet", []parquetImage{
		{MovieID: "1", ImageURL: "https://img/dune.jpg"},
	})

	l := NewLoader(LoaderConfig{ItemsPath: items, ImagesPath: images}, zap.NewNop())
	c, stats, err := l.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if stats.Items != 2 || stats.ItemsSkipped != 1 || stats.Images != 1 {
		t.Errorf("stats = %+v", stats)
	}
	first := c.At(0)
	if first.Title() != "Dune" || first.Year() != "2021" {
		t.Errorf("first item = %q (%q)", first.Title(), first.Year())
	}
	if got := first.GenreList(); len(got) != 2 || got[1] != "Adventure" {
		t.Errorf("genres = %v", got)
	}
	if c.At(1).Director() != "Denis Villeneuve" {
		t.Errorf("director = %q", c.At(1).Director())
	}
	if c.ImageURL("1") != "https://img/dune.jpg" {
		t.Errorf("ImageURL(1) = %q", c.ImageURL("1"))
	}
}

func TestLoad_ParquetCorrupt(t *testing.T) {
	dir := t.TempDir()
	items := filepath.Join(dir, "movies.parquet")
	if err := os.WriteFile(items, []byte("not parquet"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := NewLoader(LoaderConfig{ItemsPath: items}, zap.NewNop()).Load(context.Background(), 1)
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}
