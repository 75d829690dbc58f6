package item

import (
	"reflect"
	"testing"
)

func TestNew_TrimsID(t *testing.T) {
	it := New(Fields{ID: "  42 ", Title: " Dune ", Year: " 2021"})

	if it.ID() != "42" {
		t.Errorf("ID() = %q, want %q", it.ID(), "42")
	}
	if it.Title() != " Dune " {
		t.Errorf("Title() = %q, title must be kept verbatim", it.Title())
	}
	if it.Year() != "2021" {
		t.Errorf("Year() = %q", it.Year())
	}
}

func TestNew_EmptyFields(t *testing.T) {
	it := New(Fields{ID: "1"})

	if it.Title() != "" || it.Overview() != "" || it.Director() != "" {
		t.Error("absent fields must be empty strings")
	}
	if it.GenreList() != nil {
		t.Errorf("GenreList() = %v, want nil", it.GenreList())
	}
	if it.CastList() != nil {
		t.Errorf("CastList() = %v, want nil", it.CastList())
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "drama", []string{"drama"}},
		{"spaces", " Crime, Drama ,Thriller", []string{"Crime", "Drama", "Thriller"}},
		{"empty entries", "a,,b,", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewImageAsset(t *testing.T) {
	a := NewImageAsset(" 7 ", "  ")
	if a.ItemID() != "7" {
		t.Errorf("ItemID() = %q", a.ItemID())
	}
	if a.HasURL() {
		t.Error("blank URL must be treated as missing")
	}

	b := NewImageAsset("8", "https://img.example.com/8.jpg")
	if !b.HasURL() || b.URL() != "https://img.example.com/8.jpg" {
		t.Errorf("URL() = %q", b.URL())
	}
}
