// Package domain holds the synthetic dataset entities shared between layers.
package domain

import "time"

// Category is a topical bucket used to partition generated content and
// constrain user interests. Preferences reference categories by name, not id.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Content is a single catalog entry. Immutable once generated.
type Content struct {
	ContentID   int    `json:"content_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"` // equals some Category.Name at generation time
}

// UserProfile is a synthetic catalog user. Preferences is never empty and
// every entry matches a known category name.
type UserProfile struct {
	UserID           int      `json:"user_id"`
	BriefExplanation string   `json:"brief_explanation"`
	Profession       string   `json:"profession"`
	Preferences      []string `json:"preferences"`
}

// SearchQuery is one query attributed to a user. QueryID is 1-based within a
// per-user generation batch.
type SearchQuery struct {
	QueryID      int       `json:"query_id"`
	UserID       int       `json:"user_id"`
	QueryContent string    `json:"query_content"`
	Category     string    `json:"category"`
	Timestamp    time.Time `json:"timestamp"`
}

// SearchResult is a single ranked hit returned by the search engine. Only the
// engine constructs these.
type SearchResult struct {
	ContentID      int      `json:"content_id"`
	Title          string   `json:"title"`
	RelevanceScore *float64 `json:"relevance_score"`
}

// SearchLog aggregates one query with its result set and optional simulated
// engagement.
type SearchLog struct {
	QueryID       int            `json:"query_id"`
	UserID        int            `json:"user_id"`
	SearchQuery   string         `json:"search_query"`
	SearchResults []SearchResult `json:"search_results"`
	Clicks        *int           `json:"clicks,omitempty"`
	CTR           *float64       `json:"ctr,omitempty"`
}

// Engagement is the simulated click outcome for one search log.
type Engagement struct {
	Clicks int
	CTR    float64
}

// CategoryNames projects a category list to its name set, preserving order.
func CategoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}
