package logs

import (
	"context"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// QueryGenerator produces queries for a user and simulates engagement over
// result sets.
type QueryGenerator interface {
	GenerateQueries(ctx context.Context, user domain.UserProfile, count int) ([]domain.SearchQuery, error)
	SimulateEngagement(user domain.UserProfile, results []domain.SearchResult) domain.Engagement
}

// Engine executes ranked searches over the indexed catalog.
type Engine interface {
	Search(ctx context.Context, query string, maxResults int, category string) ([]domain.SearchResult, error)
	IsHealthy(ctx context.Context) bool
}
