package domain

import "context"

// GenerativeOracle is the shared contract for the LLM completion service.
// Each call is one synchronous round trip returning a schema-validated draft;
// drafts carry no ids, those are assigned by the generators.
type GenerativeOracle interface {
	CreateCategories(ctx context.Context, prompt string) ([]CategoryDraft, error)
	CreateContent(ctx context.Context, prompt string) (ContentDraft, error)
	CreateUser(ctx context.Context, prompt string) (UserDraft, error)
	CreateQuery(ctx context.Context, prompt string) (QueryDraft, error)
}

// OracleHealthChecker verifies oracle availability.
type OracleHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CategoryDraft is an unnumbered category returned by the oracle.
type CategoryDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ContentDraft is an unnumbered catalog entry returned by the oracle.
type ContentDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UserDraft is an unnumbered user profile returned by the oracle.
// Preferences are validated against the category names by the user generator.
type UserDraft struct {
	BriefExplanation string   `json:"brief_explanation"`
	Profession       string   `json:"profession"`
	Preferences      []string `json:"preferences"`
}

// QueryDraft is an unnumbered search query returned by the oracle.
type QueryDraft struct {
	QueryContent string `json:"query_content"`
	Category     string `json:"category"`
}
