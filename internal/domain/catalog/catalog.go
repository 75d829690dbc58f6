package catalog

import (
	"strings"

	"github.com/kailas-cloud/reelmatch/internal/domain/item"
)

// DefaultPlaceholderURL is used when no placeholder is configured.
const DefaultPlaceholderURL = "/static/defaultposter.jpg"

// Catalog is a read-only snapshot of items and their image assets.
// It is never mutated after New and may be shared across goroutines.
type Catalog struct {
	version     uint64
	items       []item.Item
	byID        map[string]int
	images      map[string]item.ImageAsset
	imageRows   int
	placeholder string
}

// New creates a catalog snapshot. Items keep their order; for duplicate ids
// (in either table) the first occurrence wins on lookup.
func New(version uint64, items []item.Item, images []item.ImageAsset, placeholder string) *Catalog {
	if placeholder == "" {
		placeholder = DefaultPlaceholderURL
	}

	byID := make(map[string]int, len(items))
	for i := range items {
		if _, ok := byID[items[i].ID()]; !ok {
			byID[items[i].ID()] = i
		}
	}

	imgs := make(map[string]item.ImageAsset, len(images))
	for _, a := range images {
		if _, ok := imgs[a.ItemID()]; !ok {
			imgs[a.ItemID()] = a
		}
	}

	return &Catalog{
		version:     version,
		items:       items,
		byID:        byID,
		images:      imgs,
		imageRows:   len(images),
		placeholder: placeholder,
	}
}

// Version identifies the load that produced this snapshot.
func (c *Catalog) Version() uint64 { return c.version }

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// ImageRows returns the number of rows read from the image table.
func (c *Catalog) ImageRows() int { return c.imageRows }

// At returns the item at catalog position i.
func (c *Catalog) At(i int) *item.Item { return &c.items[i] }

// FindByID returns the position of the first item with the given id.
func (c *Catalog) FindByID(id string) (int, bool) {
	i, ok := c.byID[strings.TrimSpace(id)]
	return i, ok
}

// FindByTitle returns the position of the first item whose title contains
// query, compared trimmed and case-insensitively.
func (c *Catalog) FindByTitle(query string) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for i := range c.items {
		if strings.Contains(strings.ToLower(strings.TrimSpace(c.items[i].Title())), q) {
			return i, true
		}
	}
	return 0, false
}

// ImageURL resolves the asset URL for an item id, falling back to the placeholder.
func (c *Catalog) ImageURL(id string) string {
	if a, ok := c.images[id]; ok && a.HasURL() {
		return a.URL()
	}
	return c.placeholder
}
