package query

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/logfaker/internal/domain"
	"github.com/kailas-cloud/logfaker/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterGenerationMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockOracle struct {
	createFn func(ctx context.Context, prompt string) (domain.QueryDraft, error)
	calls    int
	prompts  []string
}

func (m *mockOracle) CreateQuery(ctx context.Context, prompt string) (domain.QueryDraft, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	return m.createFn(ctx, prompt)
}

func testUser() domain.UserProfile {
	return domain.UserProfile{
		UserID:           7,
		BriefExplanation: "Avid reader of space fiction.",
		Profession:       "Teacher",
		Preferences:      []string{"Science Fiction", "History"},
	}
}

func testConfig() Config {
	return Config{ServiceType: "Book search service", Language: "en"}
}

func fixedRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func results(n int) []domain.SearchResult {
	out := make([]domain.SearchResult, n)
	for i := range out {
		out[i] = domain.SearchResult{ContentID: i + 1, Title: fmt.Sprintf("Title %d", i+1)}
	}
	return out
}

// --- Tests ---

func TestGenerateQuery_AnchorsOnPreference(t *testing.T) {
	oracle := &mockOracle{createFn: func(context.Context, string) (domain.QueryDraft, error) {
		return domain.QueryDraft{QueryContent: " space opera classics ", Category: "Science Fiction"}, nil
	}}

	s := New(oracle, testConfig(), nil, WithRand(fixedRand()))

	got, err := s.GenerateQuery(context.Background(), testUser(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.QueryID != 3 || got.UserID != 7 {
		t.Errorf("ids not carried: %+v", got)
	}
	if got.QueryContent != "space opera classics" {
		t.Errorf("query content not trimmed: %q", got.QueryContent)
	}
	if got.Category != "Science Fiction" {
		t.Errorf("category = %q", got.Category)
	}
	if got.Timestamp.IsZero() || got.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp not set in UTC: %v", got.Timestamp)
	}

	p := oracle.prompts[0]
	if !strings.Contains(p, "Avid reader of space fiction.") || !strings.Contains(p, "Teacher") {
		t.Errorf("prompt misses user profile:\n%s", p)
	}
	anchored := strings.Contains(p, `"Science Fiction"`) || strings.Contains(p, `"History"`)
	if !anchored {
		t.Errorf("prompt is not anchored on a preference:\n%s", p)
	}
}

func TestGenerateQuery_EmptyCategoryFallsBackToPreference(t *testing.T) {
	oracle := &mockOracle{createFn: func(context.Context, string) (domain.QueryDraft, error) {
		return domain.QueryDraft{QueryContent: "space opera", Category: "  "}, nil
	}}

	user := testUser()
	user.Preferences = []string{"Science Fiction"} // single preference, pick is forced

	s := New(oracle, testConfig(), nil, WithRand(fixedRand()))

	got, err := s.GenerateQuery(context.Background(), user, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Category != "Science Fiction" {
		t.Errorf("category = %q, want the anchor preference", got.Category)
	}
}

func TestGenerateQuery_NoPreferencesIsValidationError(t *testing.T) {
	s := New(&mockOracle{}, testConfig(), nil)

	_, err := s.GenerateQuery(context.Background(), domain.UserProfile{UserID: 1}, 1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGenerateQueries_SequentialIDs(t *testing.T) {
	oracle := &mockOracle{createFn: func(context.Context, string) (domain.QueryDraft, error) {
		return domain.QueryDraft{QueryContent: "space opera", Category: "Science Fiction"}, nil
	}}

	s := New(oracle, testConfig(), nil, WithRand(fixedRand()))

	got, err := s.GenerateQueries(context.Background(), testUser(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 queries, got %d", len(got))
	}
	for i, q := range got {
		if q.QueryID != i+1 {
			t.Errorf("got[%d].QueryID = %d, want %d", i, q.QueryID, i+1)
		}
		if q.UserID != 7 {
			t.Errorf("got[%d].UserID = %d", i, q.UserID)
		}
	}
}

func TestGenerateQueries_OracleFailureIsFatal(t *testing.T) {
	oracle := &mockOracle{createFn: func(context.Context, string) (domain.QueryDraft, error) {
		return domain.QueryDraft{}, fmt.Errorf("dial tcp: %w", domain.ErrOracleUnavailable)
	}}

	s := New(oracle, testConfig(), nil, WithRand(fixedRand()))

	_, err := s.GenerateQueries(context.Background(), testUser(), 2)
	if !errors.Is(err, domain.ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable, got %v", err)
	}
}

func TestSimulateEngagement_DeterministicPerUser(t *testing.T) {
	s := New(&mockOracle{}, testConfig(), nil)

	user := testUser()
	rs := results(10)

	first := s.SimulateEngagement(user, rs)
	second := s.SimulateEngagement(user, rs)
	if first != second {
		t.Errorf("engagement not deterministic: %+v vs %+v", first, second)
	}
}

func TestSimulateEngagement_Bounds(t *testing.T) {
	s := New(&mockOracle{}, testConfig(), nil)

	for userID := 1; userID <= 50; userID++ {
		user := domain.UserProfile{UserID: userID}
		for _, n := range []int{1, 3, 5, 8, 20} {
			e := s.SimulateEngagement(user, results(n))

			limit := n
			if limit > maxClicksPerLog {
				limit = maxClicksPerLog
			}
			if e.Clicks < 0 || e.Clicks > limit {
				t.Fatalf("user %d, %d results: clicks %d out of [0,%d]", userID, n, e.Clicks, limit)
			}
			want := float64(e.Clicks) / float64(n)
			if e.CTR != want {
				t.Fatalf("user %d, %d results: ctr %v, want %v", userID, n, e.CTR, want)
			}
		}
	}
}

func TestSimulateEngagement_EmptyResults(t *testing.T) {
	s := New(&mockOracle{}, testConfig(), nil)

	e := s.SimulateEngagement(testUser(), nil)
	if e.Clicks != 0 || e.CTR != 0.0 {
		t.Errorf("expected zero engagement, got %+v", e)
	}
}
