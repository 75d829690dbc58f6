package result

import (
	"testing"

	"github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/item"
)

func TestNew(t *testing.T) {
	it := item.New(item.Fields{ID: "doc-1", Title: "Heat", Director: "Michael Mann", Year: "1995"})
	r := New(it, 0.42, "/img/heat.jpg", "https://example.com/heat")

	if r.ID() != "doc-1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Score() != 0.42 {
		t.Errorf("Score() = %f", r.Score())
	}
	if r.ImageURL() != "/img/heat.jpg" {
		t.Errorf("ImageURL() = %q", r.ImageURL())
	}
	if r.TrailerURL() != "https://example.com/heat" {
		t.Errorf("TrailerURL() = %q", r.TrailerURL())
	}
	got := r.Item()
	if got.Director() != "Michael Mann" {
		t.Errorf("Item().Director() = %q", got.Director())
	}
	if r.FieldScores() != nil {
		t.Errorf("FieldScores() = %v, want nil", r.FieldScores())
	}
}

func TestWithFieldScores(t *testing.T) {
	base := New(item.New(item.Fields{ID: "1"}), 10, "", "")
	r := base.WithFieldScores(FieldScores{Title: 90, Cast: 40})

	if base.FieldScores() != nil {
		t.Error("WithFieldScores must not modify the receiver")
	}
	fs := r.FieldScores()
	if fs == nil || fs.Title != 90 || fs.Cast != 40 {
		t.Errorf("FieldScores() = %+v", fs)
	}
}

func TestFieldScores_Max(t *testing.T) {
	tests := []struct {
		fs   FieldScores
		want int
	}{
		{FieldScores{}, 0},
		{FieldScores{Title: 10, Genres: 20, Overview: 30, Cast: 40, Director: 50}, 50},
		{FieldScores{Title: 95, Director: 80}, 95},
		{FieldScores{Overview: 81}, 81},
	}
	for _, tt := range tests {
		if got := tt.fs.Max(); got != tt.want {
			t.Errorf("%+v.Max() = %d, want %d", tt.fs, got, tt.want)
		}
	}
}

func TestPresent(t *testing.T) {
	cat := catalog.New(1, []item.Item{
		item.New(item.Fields{ID: "1", Title: "Dune", Year: "2021"}),
		item.New(item.Fields{ID: "2", Title: "Arrival", Year: "2016"}),
	}, []item.ImageAsset{item.NewImageAsset("1", "https://img/dune.jpg")}, "/static/none.jpg")

	link := func(title, year string) string { return title + "|" + year }

	r := Present(cat, 0, 0.5, link)
	if r.ID() != "1" || r.ImageURL() != "https://img/dune.jpg" || r.TrailerURL() != "Dune|2021" {
		t.Errorf("Present(0) = %s %s %s", r.ID(), r.ImageURL(), r.TrailerURL())
	}

	r = Present(cat, 1, 0.1, link)
	if r.ImageURL() != "/static/none.jpg" {
		t.Errorf("ImageURL() = %q, want placeholder", r.ImageURL())
	}
}
