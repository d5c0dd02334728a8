package enrich

import (
	"context"
	"sync"

	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
)

// TitleCache maps opaque catalog item ids to display titles. It is scoped
// to one view session, merged into additively, and never evicts. Lookups
// are decorative: a failed resolution leaves the id itself as the display
// fallback and never affects the primary flow.
type TitleCache struct {
	catalog gateway.CatalogClient

	mu     sync.Mutex
	titles map[string]string
}

func NewTitleCache(catalog gateway.CatalogClient) *TitleCache {
	return &TitleCache{
		catalog: catalog,
		titles:  make(map[string]string),
	}
}

// Resolve fetches the titles for every id not already cached, one parallel
// best-effort lookup per missing id. Safe to call repeatedly with
// overlapping id sets; already-resolved ids trigger no further network
// calls.
func (c *TitleCache) Resolve(ctx context.Context, ids []string) {
	missing := c.missing(ids)
	if len(missing) == 0 {
		return
	}

	var wg sync.WaitGroup

	for _, id := range missing {
		wg.Add(1)

		go func(id string) {
			defer wg.Done()

			book, err := c.catalog.GetBook(ctx, id)
			if err != nil || book.Title == "" {
				return
			}

			c.merge(id, book.Title)
		}(id)
	}

	wg.Wait()
}

// Title returns the cached title for id, or id itself when unresolved.
func (c *TitleCache) Title(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if title, ok := c.titles[id]; ok {
		return title
	}

	return id
}

func (c *TitleCache) missing(ids []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(ids))
	missing := make([]string, 0, len(ids))

	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}

		seen[id] = true

		if _, ok := c.titles[id]; !ok {
			missing = append(missing, id)
		}
	}

	return missing
}

// merge never overwrites an existing entry with a different value and never
// stores empty titles, so concurrent merges from overlapping resolutions
// are idempotent and commutative.
func (c *TitleCache) merge(id, title string) {
	if title == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.titles[id]; !ok {
		c.titles[id] = title
	}
}
