package trailer

import "testing"

func TestURL(t *testing.T) {
	tests := []struct {
		title, year string
		want        string
	}{
		{"Dune", "2021", "https://www.youtube.com/results?search_query=Dune+2021+trailer"},
		{"Dune  Part\tTwo ", "2024", "https://www.youtube.com/results?search_query=Dune+Part+Two+2024+trailer"},
		{"", "", "https://www.youtube.com/results?search_query=++trailer"},
	}
	s := New("")
	for _, tt := range tests {
		if got := s.URL(tt.title, tt.year); got != tt.want {
			t.Errorf("URL(%q, %q) = %q, want %q", tt.title, tt.year, got, tt.want)
		}
	}
}

func TestSynthesizer_CustomTemplate(t *testing.T) {
	s := New("https://video.example.com/find?q=%s")
	got := s.URL("The Matrix", "1999")
	want := "https://video.example.com/find?q=The+Matrix+1999+trailer"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestURL_DefaultTemplate(t *testing.T) {
	if New("").URL("Heat", "1995") != New(DefaultTemplate).URL("Heat", "1995") {
		t.Error("empty template must select DefaultTemplate")
	}
}
