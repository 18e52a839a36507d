package category

import (
	"context"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// Oracle requests category batches from the generative oracle.
type Oracle interface {
	CreateCategories(ctx context.Context, prompt string) ([]domain.CategoryDraft, error)
}

// Repository persists and reloads the category set.
type Repository interface {
	ImportCategories(path string) ([]domain.Category, error)
	ExportCategories(categories []domain.Category, path string) error
}
