// Package content generates catalog entries anchored to the run's category
// set. Every entry belongs to exactly one category, assigned round-robin so
// the catalog stays balanced regardless of what the oracle returns.
package content

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/logfaker/internal/domain"
	"github.com/kailas-cloud/logfaker/internal/metrics"
	"github.com/kailas-cloud/logfaker/internal/repository/csvfile"
)

// Config holds the generation context baked into prompts.
type Config struct {
	ServiceType string // e.g. "Book search service"
	CatalogType string // e.g. "library"
	Language    string // e.g. "en"
}

// Service is the content generator.
type Service struct {
	oracle     Oracle
	categories CategoryStore
	repo       Repository
	cfg        Config
	logger     *zap.Logger
}

// New creates a content generator.
func New(oracle Oracle, categories CategoryStore, repo Repository, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{oracle: oracle, categories: categories, repo: repo, cfg: cfg, logger: logger}
}

// GenerateContents returns count catalog entries with 1-based ids. With reuse
// enabled, a persisted set of at least count entries short-circuits
// generation and the first count entries are returned as-is. Generated
// entries cycle through the category set in order, one category per entry.
func (s *Service) GenerateContents(ctx context.Context, count int, reuse bool) ([]domain.Content, error) {
	if count > domain.MaxContents {
		return nil, domain.NewContentLimit(count)
	}
	if count <= 0 {
		return nil, nil
	}

	if reuse {
		persisted, err := s.repo.ImportContents(csvfile.ContentsFile)
		if err != nil {
			return nil, fmt.Errorf("load persisted contents: %w", err)
		}
		if len(persisted) >= count {
			metrics.DatasetReuseTotal.WithLabelValues("contents", "hit").Inc()
			s.logger.Info("reusing persisted contents",
				zap.Int("persisted", len(persisted)),
				zap.Int("requested", count),
			)
			return persisted[:count], nil
		}
		metrics.DatasetReuseTotal.WithLabelValues("contents", "miss").Inc()
	}

	categories, err := s.categories.EnsureCategories(ctx, count)
	if err != nil {
		return nil, err
	}

	contents := make([]domain.Content, 0, count)
	for i := 0; i < count; i++ {
		cat := categories[i%len(categories)]
		draft, err := s.oracle.CreateContent(ctx, s.prompt(cat))
		if err != nil {
			return nil, fmt.Errorf("generate content %d: %w", i+1, err)
		}
		contents = append(contents, domain.Content{
			ContentID:   i + 1,
			Title:       strings.TrimSpace(draft.Title),
			Description: strings.TrimSpace(draft.Description),
			Category:    cat.Name,
		})
		metrics.EntitiesGeneratedTotal.WithLabelValues("content").Inc()
	}

	s.logger.Info("generated contents", zap.Int("count", len(contents)))
	return contents, nil
}

func (s *Service) prompt(cat domain.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Produce one realistic %s catalog entry for this service: %s.\n",
		s.cfg.CatalogType, s.cfg.ServiceType)
	fmt.Fprintf(&b, "The entry must belong to the category %q: %s\n", cat.Name, cat.Description)
	fmt.Fprintf(&b, "Write the title and description in language %q.\n", s.cfg.Language)
	return b.String()
}
