package pipeline

import (
	"context"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// ContentGenerator produces the run's catalog.
type ContentGenerator interface {
	GenerateContents(ctx context.Context, count int, reuse bool) ([]domain.Content, error)
}

// UserGenerator produces the run's user profiles.
type UserGenerator interface {
	GenerateUsers(ctx context.Context, count int, reuse bool) ([]domain.UserProfile, error)
}

// LogBuilder produces queries and search logs over the indexed catalog.
type LogBuilder interface {
	BuildLogs(ctx context.Context, users []domain.UserProfile, queriesPerUser, maxResults int, withEngagement bool) ([]domain.SearchQuery, []domain.SearchLog, error)
}

// Indexer prepares the search index and loads the catalog into it.
type Indexer interface {
	SetupIndex(ctx context.Context, force bool) error
	IndexContents(ctx context.Context, contents []domain.Content) error
	CountDocuments(ctx context.Context) (int, error)
}

// Exporter persists the generated dataset as CSV files.
type Exporter interface {
	ExportContents(contents []domain.Content, path string) error
	ExportUsers(users []domain.UserProfile, path string) error
	ExportQueries(queries []domain.SearchQuery, path string) error
	ExportLogs(logs []domain.SearchLog, path string) error
}
