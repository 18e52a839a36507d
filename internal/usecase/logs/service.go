// Package logs assembles search logs: per-user queries, their ranked result
// sets, and optional simulated engagement. A missing or failing search
// engine degrades the run instead of aborting it; logs are still produced,
// just with empty result sets.
package logs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// defaultMaxResults applies when the caller leaves the result cap unset.
// Result-set sizing is resolved here, once; the engine rejects non-positive
// values instead of silently fixing them.
const defaultMaxResults = 10

// Service is the search log builder.
type Service struct {
	queries QueryGenerator
	engine  Engine
	logger  *zap.Logger
}

// New creates a search log builder.
func New(queries QueryGenerator, engine Engine, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{queries: queries, engine: engine, logger: logger}
}

// BuildLogs generates queriesPerUser queries for each user, executes them
// against the engine, and assembles one SearchLog per query. Query ids are
// 1-based per user. With withEngagement set, deterministic per-user clicks
// and CTR are attached to each log. Oracle failures abort the run; engine
// failures do not.
func (s *Service) BuildLogs(
	ctx context.Context,
	users []domain.UserProfile,
	queriesPerUser int,
	maxResults int,
	withEngagement bool,
) ([]domain.SearchQuery, []domain.SearchLog, error) {
	if queriesPerUser <= 0 || len(users) == 0 {
		return nil, nil, nil
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	healthy := s.engine.IsHealthy(ctx)
	if !healthy {
		s.logger.Warn("search engine unavailable, logs will carry empty result sets")
	}

	queries := make([]domain.SearchQuery, 0, len(users)*queriesPerUser)
	searchLogs := make([]domain.SearchLog, 0, len(users)*queriesPerUser)

	for _, user := range users {
		userQueries, err := s.queries.GenerateQueries(ctx, user, queriesPerUser)
		if err != nil {
			return nil, nil, fmt.Errorf("queries for user %d: %w", user.UserID, err)
		}

		for _, q := range userQueries {
			results := s.search(ctx, q, maxResults, healthy)

			log := domain.SearchLog{
				QueryID:       q.QueryID,
				UserID:        q.UserID,
				SearchQuery:   q.QueryContent,
				SearchResults: results,
			}
			if withEngagement {
				e := s.queries.SimulateEngagement(user, results)
				log.Clicks = &e.Clicks
				log.CTR = &e.CTR
			}

			queries = append(queries, q)
			searchLogs = append(searchLogs, log)
		}
	}

	s.logger.Info("built search logs",
		zap.Int("users", len(users)),
		zap.Int("logs", len(searchLogs)),
		zap.Bool("engaged", withEngagement),
	)
	return queries, searchLogs, nil
}

// search runs one query, degrading to an empty result set when the engine is
// down or the query fails. The engine adapter owns the search counters;
// counting here as well would double-book every query.
func (s *Service) search(ctx context.Context, q domain.SearchQuery, maxResults int, healthy bool) []domain.SearchResult {
	if !healthy {
		return []domain.SearchResult{}
	}

	results, err := s.engine.Search(ctx, q.QueryContent, maxResults, q.Category)
	if err != nil {
		s.logger.Warn("search failed, logging empty result set",
			zap.Int("query_id", q.QueryID),
			zap.Int("user_id", q.UserID),
			zap.String("query", q.QueryContent),
			zap.Error(err),
		)
		return []domain.SearchResult{}
	}

	return results
}
