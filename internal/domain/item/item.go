package item

import "strings"

// Item is a catalog entry (immutable value object).
// All text fields are normalized to "" when absent in the source.
type Item struct {
	id       string
	title    string
	genres   string
	overview string
	cast     string
	director string
	year     string
}

// Fields holds the raw column values of one catalog row.
type Fields struct {
	ID       string
	Title    string
	Genres   string
	Overview string
	Cast     string
	Director string
	Year     string
}

// New creates an Item. The id is trimmed; everything else is kept verbatim.
func New(f Fields) Item {
	return Item{
		id:       strings.TrimSpace(f.ID),
		title:    f.Title,
		genres:   f.Genres,
		overview: f.Overview,
		cast:     f.Cast,
		director: f.Director,
		year:     strings.TrimSpace(f.Year),
	}
}

// ID returns the external item identifier.
func (i *Item) ID() string { return i.id }

// Title returns the display title.
func (i *Item) Title() string { return i.title }

// Genres returns the raw comma-delimited category tags.
func (i *Item) Genres() string { return i.genres }

// GenreList returns the trimmed, non-empty category tags in source order.
func (i *Item) GenreList() []string { return SplitList(i.genres) }

// Overview returns the free-text description.
func (i *Item) Overview() string { return i.overview }

// Cast returns the raw comma-delimited contributor list.
func (i *Item) Cast() string { return i.cast }

// CastList returns the trimmed, non-empty contributors in source order.
func (i *Item) CastList() []string { return SplitList(i.cast) }

// Director returns the primary author.
func (i *Item) Director() string { return i.director }

// Year returns the release year as displayed.
func (i *Item) Year() string { return i.year }

// SplitList splits a comma-delimited list, trimming entries and dropping empty ones.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ImageAsset links an item to its poster image.
type ImageAsset struct {
	itemID string
	url    string
}

// NewImageAsset creates an ImageAsset. A blank URL is stored as "".
func NewImageAsset(itemID, url string) ImageAsset {
	url = strings.TrimSpace(url)
	return ImageAsset{itemID: strings.TrimSpace(itemID), url: url}
}

// ItemID returns the joined item identifier.
func (a *ImageAsset) ItemID() string { return a.itemID }

// URL returns the asset URL, "" when missing.
func (a *ImageAsset) URL() string { return a.url }

// HasURL reports whether the asset carries a usable URL.
func (a *ImageAsset) HasURL() bool { return a.url != "" }
