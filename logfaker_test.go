package logfaker

import (
	"errors"
	"testing"
)

func TestNew_RequiresOracleKey(t *testing.T) {
	_, err := New(WithSearchEngine("localhost:6379"))
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNew_RequiresSearchAddress(t *testing.T) {
	_, err := New(WithOracle("sk-test", "gpt-4o-mini"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestOptions(t *testing.T) {
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithOracle("sk-test", "gpt-4o-mini"),
		WithOracleBaseURL("http://localhost:8080/v1"),
		WithSearchEngine("localhost:6379", "localhost:6380"),
		WithSearchAuth("default", "secret"),
		WithIndex("catalog"),
		WithService("Movie search service", "cinema", "de"),
		WithMaxResults(5),
		WithCategoryBatchSize(20),
		WithOutputDir("/tmp/out"),
	} {
		o(cfg)
	}

	if cfg.apiKey != "sk-test" || cfg.model != "gpt-4o-mini" {
		t.Errorf("oracle options not applied: %+v", cfg)
	}
	if cfg.baseURL != "http://localhost:8080/v1" {
		t.Errorf("base url not applied: %q", cfg.baseURL)
	}
	if len(cfg.addrs) != 2 || cfg.username != "default" || cfg.password != "secret" {
		t.Errorf("search options not applied: %+v", cfg)
	}
	if cfg.index != "catalog" || cfg.outputDir != "/tmp/out" {
		t.Errorf("storage options not applied: %+v", cfg)
	}
	if cfg.serviceType != "Movie search service" || cfg.catalogType != "cinema" || cfg.language != "de" {
		t.Errorf("service options not applied: %+v", cfg)
	}
	if cfg.maxResults != 5 || cfg.batchSize != 20 {
		t.Errorf("limit options not applied: %+v", cfg)
	}
}
