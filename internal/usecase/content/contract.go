package content

import (
	"context"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// Oracle requests single content entries from the generative oracle.
type Oracle interface {
	CreateContent(ctx context.Context, prompt string) (domain.ContentDraft, error)
}

// CategoryStore serves the shared category set for the run.
type CategoryStore interface {
	EnsureCategories(ctx context.Context, minCount int) ([]domain.Category, error)
}

// Repository reloads previously persisted content for reuse.
type Repository interface {
	ImportContents(path string) ([]domain.Content, error)
}
