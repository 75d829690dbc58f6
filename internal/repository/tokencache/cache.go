package tokencache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/tokenset"
)

// key identifies an item within one catalog load. Catalog position is used
// rather than the item id because ids are not guaranteed unique.
type key struct {
	version uint64
	pos     int
}

// Cache memoizes token sets per catalog snapshot.
// Cached sets are shared between callers and must be treated as read-only.
type Cache struct {
	lru        *lru.Cache[key, tokenset.Set]
	cacheTotal *prometheus.CounterVec
}

// New creates a token set cache holding up to size entries.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(size int, cacheTotal *prometheus.CounterVec) (*Cache, error) {
	l, err := lru.New[key, tokenset.Set](size)
	if err != nil {
		return nil, fmt.Errorf("create token cache: %w", err)
	}
	return &Cache{lru: l, cacheTotal: cacheTotal}, nil
}

// TokenSet returns the token set of the item at pos, building it on miss.
func (c *Cache) TokenSet(cat *domcat.Catalog, pos int) tokenset.Set {
	k := key{version: cat.Version(), pos: pos}
	if s, ok := c.lru.Get(k); ok {
		c.inc("hit")
		return s
	}
	c.inc("miss")
	s := tokenset.Build(cat.At(pos))
	c.lru.Add(k, s)
	return s
}

// Purge drops every entry. Called when a new snapshot replaces the old one.
func (c *Cache) Purge() {
	c.lru.Purge()
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
