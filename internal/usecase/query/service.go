// Package query turns user profiles into plausible search queries and
// simulates click engagement over result sets. Engagement is deterministic
// per user: the same profile always produces the same clicks, which keeps
// regenerated datasets comparable.
package query

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/logfaker/internal/domain"
	"github.com/kailas-cloud/logfaker/internal/metrics"
)

// maxClicksPerLog caps simulated clicks on a single result set.
const maxClicksPerLog = 5

// Config holds the generation context baked into prompts.
type Config struct {
	ServiceType string // e.g. "Book search service"
	Language    string // e.g. "en"
}

// Service is the query generator.
type Service struct {
	oracle Oracle
	cfg    Config
	logger *zap.Logger

	// rng drives preference selection only; engagement has its own
	// per-user source.
	rng *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand replaces the preference-selection source. Tests use this to make
// query generation reproducible.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// New creates a query generator.
func New(oracle Oracle, cfg Config, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		oracle: oracle,
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateQuery produces one query for the user under the given id. One of
// the user's preferences is picked at random to anchor the prompt; when the
// oracle omits the category, the anchor preference stands in for it.
func (s *Service) GenerateQuery(ctx context.Context, user domain.UserProfile, queryID int) (domain.SearchQuery, error) {
	if len(user.Preferences) == 0 {
		return domain.SearchQuery{}, fmt.Errorf("user %d has no preferences: %w", user.UserID, domain.ErrValidation)
	}
	preference := user.Preferences[s.rng.Intn(len(user.Preferences))]

	draft, err := s.oracle.CreateQuery(ctx, s.prompt(user, preference))
	if err != nil {
		return domain.SearchQuery{}, fmt.Errorf("generate query %d for user %d: %w", queryID, user.UserID, err)
	}

	category := strings.TrimSpace(draft.Category)
	if category == "" {
		category = preference
	}

	metrics.EntitiesGeneratedTotal.WithLabelValues("query").Inc()
	return domain.SearchQuery{
		QueryID:      queryID,
		UserID:       user.UserID,
		QueryContent: strings.TrimSpace(draft.QueryContent),
		Category:     category,
		Timestamp:    time.Now().UTC(),
	}, nil
}

// GenerateQueries produces count queries for the user with ids 1..count.
func (s *Service) GenerateQueries(ctx context.Context, user domain.UserProfile, count int) ([]domain.SearchQuery, error) {
	if count <= 0 {
		return nil, nil
	}
	queries := make([]domain.SearchQuery, 0, count)
	for i := 0; i < count; i++ {
		q, err := s.GenerateQuery(ctx, user, i+1)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// SimulateEngagement derives clicks and click-through rate for one result
// set. The source is seeded with the user id alone, so engagement for a user
// is stable across runs and across that user's queries.
func (s *Service) SimulateEngagement(user domain.UserProfile, results []domain.SearchResult) domain.Engagement {
	r := rand.New(rand.NewSource(int64(user.UserID)))

	limit := len(results)
	if limit > maxClicksPerLog {
		limit = maxClicksPerLog
	}
	clicks := r.Intn(limit + 1)

	ctr := 0.0
	if len(results) > 0 {
		ctr = float64(clicks) / float64(len(results))
	}
	return domain.Engagement{Clicks: clicks, CTR: ctr}
}

func (s *Service) prompt(user domain.UserProfile, preference string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Produce one realistic search query for this service: %s.\n", s.cfg.ServiceType)
	fmt.Fprintf(&b, "The query is typed by this user: %s (profession: %s).\n",
		user.BriefExplanation, user.Profession)
	fmt.Fprintf(&b, "The query must concern the category %q.\n", preference)
	fmt.Fprintf(&b, "Write the query in language %q, the way a user would actually type it.\n", s.cfg.Language)
	return b.String()
}
