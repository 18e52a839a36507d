// Package category owns the canonical category set for a run: it loads a
// persisted set when one is large enough, generates the remainder otherwise,
// and serves the result read-only to the other generators.
package category

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/logfaker/internal/domain"
	"github.com/kailas-cloud/logfaker/internal/metrics"
	"github.com/kailas-cloud/logfaker/internal/repository/csvfile"
)

// maxStalledBatches bounds consecutive oracle batches that add no new names
// before the run fails.
const maxStalledBatches = 3

// Config holds the generation context baked into prompts.
type Config struct {
	ServiceType string // e.g. "Book search service"
	Language    string // e.g. "en"
	BatchSize   int    // candidate categories requested per oracle call
}

// Service is the category store.
type Service struct {
	oracle Oracle
	repo   Repository
	cfg    Config
	logger *zap.Logger

	// cached holds the set for the current run; populated once, then
	// read-only. The pipeline is single-threaded, so no locking.
	cached []domain.Category
}

// New creates a category store.
func New(oracle Oracle, repo Repository, cfg Config, logger *zap.Logger) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{oracle: oracle, repo: repo, cfg: cfg, logger: logger}
}

// EnsureCategories returns at least minCount categories, in stable order with
// 1-based ids. Reuse precedence: in-run cache, then the persisted set, then
// oracle generation (which persists the new set).
func (s *Service) EnsureCategories(ctx context.Context, minCount int) ([]domain.Category, error) {
	if minCount <= 0 {
		minCount = 1
	}

	if len(s.cached) >= minCount {
		return s.cached, nil
	}

	persisted, err := s.repo.ImportCategories(csvfile.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("load persisted categories: %w", err)
	}
	if len(persisted) >= minCount {
		metrics.DatasetReuseTotal.WithLabelValues("categories", "hit").Inc()
		s.logger.Info("reusing persisted categories", zap.Int("count", len(persisted)))
		s.cached = persisted
		return s.cached, nil
	}
	metrics.DatasetReuseTotal.WithLabelValues("categories", "miss").Inc()

	generated, err := s.generate(ctx, minCount)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ExportCategories(generated, csvfile.CategoriesFile); err != nil {
		return nil, fmt.Errorf("persist categories: %w", err)
	}

	s.cached = generated
	return s.cached, nil
}

// generate accumulates unique categories from batched oracle calls until
// minCount is reached. Duplicate names are discarded locally even though the
// prompt asks the oracle not to repeat them.
func (s *Service) generate(ctx context.Context, minCount int) ([]domain.Category, error) {
	var categories []domain.Category
	seen := make(map[string]struct{})
	stalled := 0

	for len(categories) < minCount {
		drafts, err := s.oracle.CreateCategories(ctx, s.batchPrompt(categories))
		if err != nil {
			return nil, fmt.Errorf("generate categories: %w", err)
		}

		added := 0
		for _, d := range drafts {
			name := strings.TrimSpace(d.Name)
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			categories = append(categories, domain.Category{
				ID:          len(categories) + 1,
				Name:        name,
				Description: d.Description,
			})
			added++
		}

		metrics.EntitiesGeneratedTotal.WithLabelValues("category").Add(float64(added))
		s.logger.Debug("category batch",
			zap.Int("returned", len(drafts)),
			zap.Int("added", added),
			zap.Int("total", len(categories)),
		)

		if added == 0 {
			stalled++
			if stalled >= maxStalledBatches {
				return nil, fmt.Errorf("no new categories after %d batches (%d of %d collected): %w",
					stalled, len(categories), minCount, domain.ErrGeneration)
			}
			continue
		}
		stalled = 0
	}

	return categories, nil
}

func (s *Service) batchPrompt(existing []domain.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Produce %d distinct content categories for this service: %s.\n",
		s.cfg.BatchSize, s.cfg.ServiceType)
	fmt.Fprintf(&b, "Write category names and descriptions in language %q.\n", s.cfg.Language)
	b.WriteString("Each category needs a short name and a one-sentence description.\n")

	if len(existing) > 0 {
		b.WriteString("Do not repeat any of these already-known categories:\n")
		for _, c := range existing {
			b.WriteString("- ")
			b.WriteString(c.Name)
			b.WriteString("\n")
		}
	}
	return b.String()
}
