package query

import (
	"context"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// Oracle requests single search queries from the generative oracle.
type Oracle interface {
	CreateQuery(ctx context.Context, prompt string) (domain.QueryDraft, error)
}
