package enrich

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
)

// AuthorIndex maps normalized author GUIDs to display names. It is built at
// most once per instance, lazily, from the full author list, and treated as
// immutable afterwards. A failed build leaves an empty index rather than
// retrying forever.
type AuthorIndex struct {
	authors gateway.AuthorClient

	once  sync.Once
	names map[string]string
}

func NewAuthorIndex(authors gateway.AuthorClient) *AuthorIndex {
	return &AuthorIndex{authors: authors}
}

// DisplayName resolves guid to a display name, building the index on first
// use. Unresolvable GUIDs fall back to the raw identifier.
func (idx *AuthorIndex) DisplayName(ctx context.Context, guid string) string {
	idx.once.Do(func() {
		idx.build(ctx)
	})

	if name, ok := idx.names[normalizeGUID(guid)]; ok {
		return name
	}

	return guid
}

func (idx *AuthorIndex) build(ctx context.Context) {
	idx.names = make(map[string]string)

	authors, err := idx.authors.ListAuthors(ctx)
	if err != nil {
		// Enrichment only; the caller keeps working with raw GUIDs.
		slog.Warn("Failed to load author directory for enrichment", slog.String("error", err.Error()))

		return
	}

	for i := range authors {
		guid := normalizeGUID(authors[i].GUID)
		name := authors[i].DisplayName()

		if guid != "" && name != "" {
			idx.names[guid] = name
		}
	}
}

func normalizeGUID(guid string) string {
	return strings.ToLower(strings.TrimSpace(guid))
}
