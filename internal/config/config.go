// Package config loads the logfaker pipeline configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the pipeline configuration.
type Config struct {
	Generator    GeneratorConfig    `yaml:"generator"`
	SearchEngine SearchEngineConfig `yaml:"search_engine"`
	Output       OutputConfig       `yaml:"output"`
	Logging      LoggingConfig      `yaml:"logging"`
	HTTP         HTTPConfig         `yaml:"http"`
}

// GeneratorConfig holds generative oracle settings.
type GeneratorConfig struct {
	Model             string `yaml:"model"`
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"` // empty = api.openai.com
	Language          string `yaml:"language"`
	ServiceType       string `yaml:"service_type"` // e.g. "Book search service"
	CatalogType       string `yaml:"catalog_type"` // e.g. "library"
	MaxResults        int    `yaml:"max_results"`
	CategoryBatchSize int    `yaml:"category_batch_size"`
}

// SearchEngineConfig holds search engine connection settings.
type SearchEngineConfig struct {
	Addrs            []string `yaml:"addrs"`
	Index            string   `yaml:"index"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// OutputConfig holds dataset file settings.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty = current directory
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds the metrics listener settings for the pipeline driver.
type HTTPConfig struct {
	MetricsPort int `yaml:"metrics_port"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Generator.Model == "" {
		c.Generator.Model = "gpt-4o-mini"
	}
	if c.Generator.Language == "" {
		c.Generator.Language = "en"
	}
	if c.Generator.ServiceType == "" {
		c.Generator.ServiceType = "Book search service"
	}
	if c.Generator.CatalogType == "" {
		c.Generator.CatalogType = "library"
	}
	if c.Generator.MaxResults <= 0 {
		c.Generator.MaxResults = 10
	}
	if c.Generator.CategoryBatchSize <= 0 {
		c.Generator.CategoryBatchSize = 100
	}
	if len(c.SearchEngine.Addrs) == 0 {
		c.SearchEngine.Addrs = []string{"localhost:6379"}
	}
	if c.SearchEngine.Index == "" {
		c.SearchEngine.Index = "library_catalog"
	}
	if c.SearchEngine.ReadinessTimeout <= 0 {
		c.SearchEngine.ReadinessTimeout = 10
	}
	if c.HTTP.MetricsPort <= 0 {
		c.HTTP.MetricsPort = 9090
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Generator.APIKey == "" {
		return fmt.Errorf("generator.api_key is required")
	}
	if c.SearchEngine.Index == "" {
		return fmt.Errorf("search_engine.index is required")
	}
	if c.HTTP.MetricsPort > 65535 {
		return fmt.Errorf("http.metrics_port must be at most 65535, got %d", c.HTTP.MetricsPort)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
