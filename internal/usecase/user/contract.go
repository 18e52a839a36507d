package user

import (
	"context"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// Oracle requests single user profiles from the generative oracle.
type Oracle interface {
	CreateUser(ctx context.Context, prompt string) (domain.UserDraft, error)
}

// CategoryStore serves the shared category set for the run.
type CategoryStore interface {
	EnsureCategories(ctx context.Context, minCount int) ([]domain.Category, error)
}

// Repository reloads previously persisted users for reuse.
type Repository interface {
	ImportUsers(path string, categories []domain.Category) ([]domain.UserProfile, error)
}
