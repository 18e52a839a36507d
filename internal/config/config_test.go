package config

import (
	"testing"
)

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := Config{
		SearchEngine: SearchEngineConfig{Index: "library_catalog"},
	}
	cfg.ApplyDefaults()
	cfg.Generator.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := Config{
		Generator: GeneratorConfig{APIKey: "test-key"},
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Generator.Model != "gpt-4o-mini" {
		t.Errorf("default model = %q, want gpt-4o-mini", cfg.Generator.Model)
	}
	if cfg.Generator.CategoryBatchSize != 100 {
		t.Errorf("default category batch size = %d, want 100", cfg.Generator.CategoryBatchSize)
	}
	if cfg.Generator.MaxResults != 10 {
		t.Errorf("default max results = %d, want 10", cfg.Generator.MaxResults)
	}
	if cfg.SearchEngine.Index != "library_catalog" {
		t.Errorf("default index = %q, want library_catalog", cfg.SearchEngine.Index)
	}
	if len(cfg.SearchEngine.Addrs) != 1 || cfg.SearchEngine.Addrs[0] != "localhost:6379" {
		t.Errorf("default addrs = %v", cfg.SearchEngine.Addrs)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LOGFAKER_TEST_KEY", "sk-abc")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain var", "api_key: ${LOGFAKER_TEST_KEY}", "api_key: sk-abc"},
		{"default used", "dir: ${LOGFAKER_TEST_UNSET:-out}", "dir: out"},
		{"default ignored", "key: ${LOGFAKER_TEST_KEY:-fallback}", "key: sk-abc"},
		{"no vars", "model: gpt-4o-mini", "model: gpt-4o-mini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(expandEnvVars([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
