package logs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/logfaker/internal/db"
	"github.com/kailas-cloud/logfaker/internal/domain"
	"github.com/kailas-cloud/logfaker/internal/metrics"
	"github.com/kailas-cloud/logfaker/internal/search/redisearch"
)

func TestMain(m *testing.M) {
	metrics.RegisterGenerationMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockQueries struct {
	generateFn func(ctx context.Context, user domain.UserProfile, count int) ([]domain.SearchQuery, error)
	engagement domain.Engagement
	engaged    []int // user ids SimulateEngagement was called for
}

func (m *mockQueries) GenerateQueries(ctx context.Context, user domain.UserProfile, count int) ([]domain.SearchQuery, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, user, count)
	}
	out := make([]domain.SearchQuery, count)
	for i := range out {
		out[i] = domain.SearchQuery{
			QueryID:      i + 1,
			UserID:       user.UserID,
			QueryContent: fmt.Sprintf("query %d of user %d", i+1, user.UserID),
			Category:     "Science Fiction",
		}
	}
	return out, nil
}

func (m *mockQueries) SimulateEngagement(user domain.UserProfile, _ []domain.SearchResult) domain.Engagement {
	m.engaged = append(m.engaged, user.UserID)
	return m.engagement
}

type mockEngine struct {
	searchFn       func(ctx context.Context, query string, maxResults int, category string) ([]domain.SearchResult, error)
	healthy        bool
	searches       int
	lastMaxResults int
}

func (m *mockEngine) Search(ctx context.Context, query string, maxResults int, category string) ([]domain.SearchResult, error) {
	m.searches++
	m.lastMaxResults = maxResults
	if m.searchFn != nil {
		return m.searchFn(ctx, query, maxResults, category)
	}
	return []domain.SearchResult{{ContentID: 1, Title: "Dune"}}, nil
}

func (m *mockEngine) IsHealthy(context.Context) bool { return m.healthy }

func users(n int) []domain.UserProfile {
	out := make([]domain.UserProfile, n)
	for i := range out {
		out[i] = domain.UserProfile{UserID: i + 1, Preferences: []string{"Science Fiction"}}
	}
	return out
}

// --- Tests ---

func TestBuildLogs_AssemblesPerUserLogs(t *testing.T) {
	queries := &mockQueries{}
	engine := &mockEngine{healthy: true}

	s := New(queries, engine, nil)

	gotQueries, gotLogs, err := s.BuildLogs(context.Background(), users(2), 3, 10, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotQueries) != 6 || len(gotLogs) != 6 {
		t.Fatalf("expected 6 queries and 6 logs, got %d and %d", len(gotQueries), len(gotLogs))
	}
	if engine.searches != 6 {
		t.Errorf("expected 6 searches, got %d", engine.searches)
	}
	for i, log := range gotLogs {
		q := gotQueries[i]
		if log.QueryID != q.QueryID || log.UserID != q.UserID || log.SearchQuery != q.QueryContent {
			t.Errorf("log %d does not match its query: %+v vs %+v", i, log, q)
		}
		if len(log.SearchResults) != 1 {
			t.Errorf("log %d has %d results", i, len(log.SearchResults))
		}
		if log.Clicks != nil || log.CTR != nil {
			t.Errorf("log %d carries engagement without the flag", i)
		}
	}
	// ids restart per user
	if gotQueries[0].QueryID != 1 || gotQueries[3].QueryID != 1 {
		t.Errorf("query ids do not restart per user: %+v", gotQueries)
	}
}

func TestBuildLogs_AttachesEngagement(t *testing.T) {
	queries := &mockQueries{engagement: domain.Engagement{Clicks: 2, CTR: 0.5}}
	engine := &mockEngine{healthy: true}

	s := New(queries, engine, nil)

	_, gotLogs, err := s.BuildLogs(context.Background(), users(1), 2, 10, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, log := range gotLogs {
		if log.Clicks == nil || *log.Clicks != 2 {
			t.Errorf("log %d clicks = %v", i, log.Clicks)
		}
		if log.CTR == nil || *log.CTR != 0.5 {
			t.Errorf("log %d ctr = %v", i, log.CTR)
		}
	}
	if len(queries.engaged) != 2 {
		t.Errorf("engagement simulated %d times, want 2", len(queries.engaged))
	}
}

func TestBuildLogs_UnhealthyEngineDegrades(t *testing.T) {
	queries := &mockQueries{}
	engine := &mockEngine{healthy: false}

	s := New(queries, engine, nil)

	_, gotLogs, err := s.BuildLogs(context.Background(), users(2), 2, 10, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotLogs) != 4 {
		t.Fatalf("expected 4 logs, got %d", len(gotLogs))
	}
	if engine.searches != 0 {
		t.Errorf("engine searched %d times while unhealthy", engine.searches)
	}
	for i, log := range gotLogs {
		if log.SearchResults == nil || len(log.SearchResults) != 0 {
			t.Errorf("log %d results = %v, want empty non-nil set", i, log.SearchResults)
		}
	}
}

func TestBuildLogs_SearchFailureDegradesPerQuery(t *testing.T) {
	queries := &mockQueries{}
	engine := &mockEngine{healthy: true}
	engine.searchFn = func(_ context.Context, query string, _ int, _ string) ([]domain.SearchResult, error) {
		if query == "query 1 of user 1" {
			return nil, fmt.Errorf("search index: %w", domain.ErrSearchEngine)
		}
		return []domain.SearchResult{{ContentID: 2, Title: "SPQR"}}, nil
	}

	s := New(queries, engine, nil)

	_, gotLogs, err := s.BuildLogs(context.Background(), users(1), 2, 10, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotLogs[0].SearchResults) != 0 {
		t.Errorf("failed query must log an empty set, got %v", gotLogs[0].SearchResults)
	}
	if len(gotLogs[1].SearchResults) != 1 {
		t.Errorf("healthy query lost its results: %v", gotLogs[1].SearchResults)
	}
}

func TestBuildLogs_OracleFailureIsFatal(t *testing.T) {
	queries := &mockQueries{generateFn: func(context.Context, domain.UserProfile, int) ([]domain.SearchQuery, error) {
		return nil, fmt.Errorf("dial tcp: %w", domain.ErrOracleUnavailable)
	}}
	engine := &mockEngine{healthy: true}

	s := New(queries, engine, nil)

	_, _, err := s.BuildLogs(context.Background(), users(1), 1, 10, false)
	if !errors.Is(err, domain.ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable, got %v", err)
	}
}

// searchOnlyStore backs a real redisearch engine with canned hits.
type searchOnlyStore struct {
	result *db.SearchResult
}

func (s *searchOnlyStore) Ping(context.Context) error { return nil }

func (s *searchOnlyStore) HSet(context.Context, string, map[string]string) error { return nil }

func (s *searchOnlyStore) HSetMulti(context.Context, []db.HashSetItem) error { return nil }

func (s *searchOnlyStore) CreateIndex(context.Context, *db.IndexDefinition) error { return nil }

func (s *searchOnlyStore) DropIndex(context.Context, string) error { return nil }

func (s *searchOnlyStore) IndexExists(context.Context, string) (bool, error) { return true, nil }

func (s *searchOnlyStore) SearchText(context.Context, *db.TextQuery) (*db.SearchResult, error) {
	return s.result, nil
}

func (s *searchOnlyStore) SearchCount(context.Context, string, string) (int, error) {
	return s.result.Total, nil
}

func TestBuildLogs_CountsEachSearchOnce(t *testing.T) {
	engine := redisearch.New(&searchOnlyStore{
		result: &db.SearchResult{
			Total: 1,
			Entries: []db.SearchEntry{
				{Key: "catalog:doc:1", Score: 1.0, Fields: map[string]string{"content_id": "1", "title": "Dune"}},
			},
		},
	}, "catalog", nil)

	statuses := []string{"success", "error", "ok", "skipped"}
	before := map[string]float64{}
	for _, st := range statuses {
		before[st] = testutil.ToFloat64(metrics.SearchQueriesTotal.WithLabelValues(st))
	}

	s := New(&mockQueries{}, engine, nil)
	_, gotLogs, err := s.BuildLogs(context.Background(), users(1), 1, 10, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotLogs) != 1 || len(gotLogs[0].SearchResults) != 1 {
		t.Fatalf("logs = %+v", gotLogs)
	}

	var delta float64
	for _, st := range statuses {
		delta += testutil.ToFloat64(metrics.SearchQueriesTotal.WithLabelValues(st)) - before[st]
	}
	if delta != 1 {
		t.Errorf("one search moved the query counter by %v, want 1", delta)
	}
}

func TestBuildLogs_DefaultsMaxResults(t *testing.T) {
	engine := &mockEngine{healthy: true}

	s := New(&mockQueries{}, engine, nil)

	if _, _, err := s.BuildLogs(context.Background(), users(1), 1, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.lastMaxResults != 10 {
		t.Errorf("engine received maxResults %d, want the resolved default 10", engine.lastMaxResults)
	}
}

func TestBuildLogs_EmptyInputsAreEmpty(t *testing.T) {
	s := New(&mockQueries{}, &mockEngine{healthy: true}, nil)

	q, l, err := s.BuildLogs(context.Background(), nil, 3, 10, false)
	if err != nil || q != nil || l != nil {
		t.Errorf("expected nothing, got %v %v %v", q, l, err)
	}

	q, l, err = s.BuildLogs(context.Background(), users(2), 0, 10, false)
	if err != nil || q != nil || l != nil {
		t.Errorf("expected nothing, got %v %v %v", q, l, err)
	}
}
