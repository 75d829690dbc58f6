package request

import (
	"strings"
	"testing"
)

func TestNewRecommend_Defaults(t *testing.T) {
	r, err := NewRecommend("  Dune ", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title() != "Dune" {
		t.Errorf("Title() = %q", r.Title())
	}
	if r.Limit() != DefaultRecommend {
		t.Errorf("Limit() = %d, want %d", r.Limit(), DefaultRecommend)
	}
}

func TestNewRecommend_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   "} {
		_, err := NewRecommend(title, 5)
		if err == nil {
			t.Fatalf("expected error for %q", title)
		}
		if !strings.Contains(err.Error(), "required") {
			t.Errorf("error = %q", err)
		}
	}
}

func TestNewRecommend_TooLong(t *testing.T) {
	_, err := NewRecommend(strings.Repeat("x", MaxQueryLength+1), 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q", err)
	}
}

func TestNewRecommend_LimitClamping(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"negative", -1, DefaultRecommend},
		{"zero", 0, DefaultRecommend},
		{"normal", 3, 3},
		{"over max", 50, MaxRecommend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecommend("q", tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Limit() != tt.want {
				t.Errorf("Limit() = %d, want %d", r.Limit(), tt.want)
			}
		})
	}
}

func TestNewSearch_ShortQueryIsValid(t *testing.T) {
	for _, q := range []string{"", "a", " ab "} {
		r, err := NewSearch(q, 0)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", q, err)
		}
		if r.Query() != strings.TrimSpace(q) {
			t.Errorf("Query() = %q", r.Query())
		}
	}
}

func TestNewSearch_LimitClamping(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero", 0, DefaultSearchLimit},
		{"normal", 5, 5},
		{"over max", 100, MaxSearchLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewSearch("dune", tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Limit() != tt.want {
				t.Errorf("Limit() = %d, want %d", r.Limit(), tt.want)
			}
		})
	}
}

func TestNewSearch_TooLong(t *testing.T) {
	_, err := NewSearch(strings.Repeat("y", MaxQueryLength+1), 0)
	if err == nil {
		t.Fatal("expected error")
	}
}
