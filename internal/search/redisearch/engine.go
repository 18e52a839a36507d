// Package redisearch implements the search engine contract on Redis 8
// full-text search.
package redisearch

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/logfaker/internal/db"
	"github.com/kailas-cloud/logfaker/internal/domain"
	"github.com/kailas-cloud/logfaker/internal/metrics"
	"github.com/kailas-cloud/logfaker/internal/search"
)

// Compile-time check: Engine implements search.Engine.
var _ search.Engine = (*Engine)(nil)

// store is the consumer interface for catalog operations (ISP).
type store interface {
	Ping(ctx context.Context) error
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Engine is a Redis full-text search engine for the generated catalog.
// Documents live under <index>:doc:<content_id>; title and description are
// folded into one TEXT field, category is an exact-match TAG.
type Engine struct {
	store  store
	index  string
	logger *zap.Logger
}

// New creates a RediSearch-backed engine over the given index name.
func New(s store, index string, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: s, index: index, logger: logger}
}

func (e *Engine) indexName() string { return e.index + ":idx" }
func (e *Engine) docKey(id int) string {
	return fmt.Sprintf("%s:doc:%d", e.index, id)
}

// SetupIndex creates the catalog index. An existing index is kept as-is
// unless force is set, in which case it is dropped and recreated.
func (e *Engine) SetupIndex(ctx context.Context, force bool) error {
	exists, err := e.store.IndexExists(ctx, e.indexName())
	if err != nil {
		return fmt.Errorf("probe index: %v: %w", err, domain.ErrSearchEngine)
	}
	if exists {
		if !force {
			return nil
		}
		if err := e.store.DropIndex(ctx, e.indexName()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("drop index: %v: %w", err, domain.ErrSearchEngine)
		}
	}

	def := &db.IndexDefinition{
		Name:        e.indexName(),
		StorageType: db.StorageHash,
		Prefixes:    []string{e.index + ":doc:"},
		Fields: []db.IndexField{
			{Name: "text", Type: db.IndexFieldText},
			{Name: "category", Type: db.IndexFieldTag},
		},
	}

	if err := e.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) && !force {
			return nil
		}
		return fmt.Errorf("create index: %v: %w", err, domain.ErrSearchEngine)
	}
	return nil
}

// IndexContent indexes one content item under its content id.
func (e *Engine) IndexContent(ctx context.Context, content domain.Content) error {
	if err := e.store.HSet(ctx, e.docKey(content.ContentID), docFields(content)); err != nil {
		metrics.IndexedDocumentsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("index content %d: %v: %w", content.ContentID, err, domain.ErrSearchEngine)
	}
	metrics.IndexedDocumentsTotal.WithLabelValues("success").Inc()
	return nil
}

// IndexContents indexes a batch of content items in one round trip.
func (e *Engine) IndexContents(ctx context.Context, contents []domain.Content) error {
	if len(contents) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(contents))
	for i, c := range contents {
		items[i] = db.HashSetItem{Key: e.docKey(c.ContentID), Fields: docFields(c)}
	}

	if err := e.store.HSetMulti(ctx, items); err != nil {
		metrics.IndexedDocumentsTotal.WithLabelValues("error").Add(float64(len(contents)))
		return fmt.Errorf("index %d contents: %v: %w", len(contents), err, domain.ErrSearchEngine)
	}
	metrics.IndexedDocumentsTotal.WithLabelValues("success").Add(float64(len(contents)))
	return nil
}

// Search executes a BM25 query and returns ranked results.
func (e *Engine) Search(
	ctx context.Context, query string, maxResults int, category string,
) ([]domain.SearchResult, error) {
	if maxResults <= 0 {
		return nil, fmt.Errorf("max results must be positive, got %d: %w", maxResults, domain.ErrValidation)
	}

	res, err := e.store.SearchText(ctx, &db.TextQuery{
		IndexName:    e.indexName(),
		Query:        query,
		CategoryTag:  category,
		TopK:         maxResults,
		ReturnFields: []string{"content_id", "title"},
	})
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search %q: %v: %w", query, err, domain.ErrSearchEngine)
	}
	metrics.SearchQueriesTotal.WithLabelValues("success").Inc()

	results := make([]domain.SearchResult, 0, len(res.Entries))
	for _, entry := range res.Entries {
		id, err := strconv.Atoi(entry.Fields["content_id"])
		if err != nil {
			e.logger.Warn("skipping hit with unparsable content id",
				zap.String("key", entry.Key),
			)
			continue
		}
		score := entry.Score
		results = append(results, domain.SearchResult{
			ContentID:      id,
			Title:          entry.Fields["title"],
			RelevanceScore: &score,
		})
	}
	return results, nil
}

// CountDocuments returns the number of documents in the catalog index.
func (e *Engine) CountDocuments(ctx context.Context) (int, error) {
	count, err := e.store.SearchCount(ctx, e.indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("count documents: %v: %w", err, domain.ErrSearchEngine)
	}
	return count, nil
}

// IsHealthy reports whether the engine responds to ping.
func (e *Engine) IsHealthy(ctx context.Context) bool {
	return e.store.Ping(ctx) == nil
}

func docFields(c domain.Content) map[string]string {
	return map[string]string{
		"content_id":  strconv.Itoa(c.ContentID),
		"title":       c.Title,
		"description": c.Description,
		"category":    c.Category,
		"text":        c.Title + " " + c.Description,
	}
}
