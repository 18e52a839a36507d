// Package search defines the search engine contract used by the log
// generation pipeline. Implementations wrap a concrete engine; the pipeline
// only sees ranked results.
package search

import (
	"context"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// Engine is the search oracle boundary: it indexes generated content and
// executes queries against it.
type Engine interface {
	// SetupIndex creates the content index. With force, an existing index is
	// dropped and recreated; without, an existing index is kept.
	SetupIndex(ctx context.Context, force bool) error

	// IndexContent indexes one content item under its content id.
	IndexContent(ctx context.Context, content domain.Content) error

	// IndexContents indexes a batch of content items.
	IndexContents(ctx context.Context, contents []domain.Content) error

	// Search executes a query and returns ranked results, highest relevance
	// first. A non-empty category is an exact-match filter. maxResults must
	// be positive.
	Search(ctx context.Context, query string, maxResults int, category string) ([]domain.SearchResult, error)

	// CountDocuments returns the number of documents the index holds.
	CountDocuments(ctx context.Context) (int, error)

	// IsHealthy reports whether the engine is reachable and responsive.
	IsHealthy(ctx context.Context) bool
}
