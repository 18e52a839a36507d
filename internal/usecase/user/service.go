// Package user generates synthetic user profiles whose preferences are
// guaranteed to name existing categories. The oracle is prompted with the
// closed category enumeration, and whatever it returns is re-validated
// against the same list before a profile is accepted.
package user

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
	Language    string // e.g. "en"
}

// Service is the user generator.
type Service struct {
	oracle     Oracle
	categories CategoryStore
	repo       Repository
	cfg        Config
	logger     *zap.Logger
}

// New creates a user generator.
func New(oracle Oracle, categories CategoryStore, repo Repository, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{oracle: oracle, categories: categories, repo: repo, cfg: cfg, logger: logger}
}

// GenerateUsers returns count user profiles with 1-based ids. With reuse
// enabled, a persisted set of at least count users short-circuits generation;
// the import path re-validates preferences against the current category set.
// Every returned profile has at least one preference.
func (s *Service) GenerateUsers(ctx context.Context, count int, reuse bool) ([]domain.UserProfile, error) {
	if count <= 0 {
		return nil, nil
	}

	categories, err := s.categories.EnsureCategories(ctx, 1)
	if err != nil {
		return nil, err
	}

	if reuse {
		persisted, err := s.repo.ImportUsers(csvfile.UsersFile, categories)
		if err != nil {
			return nil, fmt.Errorf("load persisted users: %w", err)
		}
		if len(persisted) >= count {
			metrics.DatasetReuseTotal.WithLabelValues("users", "hit").Inc()
			s.logger.Info("reusing persisted users",
				zap.Int("persisted", len(persisted)),
				zap.Int("requested", count),
			)
			return persisted[:count], nil
		}
		metrics.DatasetReuseTotal.WithLabelValues("users", "miss").Inc()
	}

	names := domain.CategoryNames(categories)
	prompt := s.prompt(names)

	users := make([]domain.UserProfile, 0, count)
	for i := 0; i < count; i++ {
		draft, err := s.oracle.CreateUser(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("generate user %d: %w", i+1, err)
		}
		prefs := domain.ValidatePreferences(draft.Preferences, names)
		if len(prefs) < len(draft.Preferences) {
			s.logger.Debug("dropped unknown preferences",
				zap.Int("user_id", i+1),
				zap.Strings("raw", draft.Preferences),
				zap.Strings("kept", prefs),
			)
		}
		users = append(users, domain.UserProfile{
			UserID:           i + 1,
			BriefExplanation: strings.TrimSpace(draft.BriefExplanation),
			Profession:       strings.TrimSpace(draft.Profession),
			Preferences:      prefs,
		})
		metrics.EntitiesGeneratedTotal.WithLabelValues("user").Inc()
	}

	s.logger.Info("generated users", zap.Int("count", len(users)))
	return users, nil
}

func (s *Service) prompt(categoryNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Produce one realistic user profile for this service: %s.\n", s.cfg.ServiceType)
	b.WriteString("The profile needs a brief explanation of the user, a profession, ")
	b.WriteString("and a list of preferred categories.\n")
	b.WriteString("Preferences must be chosen from exactly these categories, verbatim:\n")
	for _, name := range categoryNames {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Write the profile in language %q.\n", s.cfg.Language)
	return b.String()
}
