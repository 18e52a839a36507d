// Package logfaker generates synthetic search-service datasets: a
// category-anchored content catalog, user profiles with validated
// preferences, and search logs produced by running generated queries against
// a live full-text index. Generated data is persisted as CSV files and
// reused across runs.
package logfaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/logfaker/internal/db/redis"
	"github.com/kailas-cloud/logfaker/internal/domain"
	"github.com/kailas-cloud/logfaker/internal/repository/csvfile"
	"github.com/kailas-cloud/logfaker/internal/search/redisearch"
	"github.com/kailas-cloud/logfaker/internal/transport/openai"
	categoryuc "github.com/kailas-cloud/logfaker/internal/usecase/category"
	contentuc "github.com/kailas-cloud/logfaker/internal/usecase/content"
	logsuc "github.com/kailas-cloud/logfaker/internal/usecase/logs"
	"github.com/kailas-cloud/logfaker/internal/usecase/pipeline"
	queryuc "github.com/kailas-cloud/logfaker/internal/usecase/query"
	useruc "github.com/kailas-cloud/logfaker/internal/usecase/user"
)

// Re-exported dataset entities.
type (
	Category     = domain.Category
	Content      = domain.Content
	UserProfile  = domain.UserProfile
	SearchQuery  = domain.SearchQuery
	SearchResult = domain.SearchResult
	SearchLog    = domain.SearchLog
	Engagement   = domain.Engagement
)

// Re-exported error taxonomy.
var (
	ErrConfiguration        = domain.ErrConfiguration
	ErrGeneration           = domain.ErrGeneration
	ErrOracleUnavailable    = domain.ErrOracleUnavailable
	ErrContentLimitExceeded = domain.ErrContentLimitExceeded
	ErrSearchEngine         = domain.ErrSearchEngine
	ErrValidation           = domain.ErrValidation
)

// MaxContents is the hard cap on catalog size per run.
const MaxContents = domain.MaxContents

// Params describes one dataset run. See pipeline.Params.
type Params = pipeline.Params

// Result summarizes a finished run.
type Result = pipeline.Result

const defaultReadinessTimeout = 10 * time.Second

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	apiKey      string
	baseURL     string
	model       string
	addrs       []string
	username    string
	password    string
	index       string
	serviceType string
	catalogType string
	language    string
	maxResults  int
	batchSize   int
	outputDir   string
	logger      *zap.Logger
}

// WithOracle sets the generative oracle credentials and model.
func WithOracle(apiKey, model string) Option {
	return func(c *clientConfig) {
		c.apiKey = apiKey
		c.model = model
	}
}

// WithOracleBaseURL points the oracle at an OpenAI-compatible endpoint.
func WithOracleBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithSearchEngine sets the Redis search engine addresses.
func WithSearchEngine(addrs ...string) Option {
	return func(c *clientConfig) { c.addrs = addrs }
}

// WithSearchAuth sets search engine credentials.
func WithSearchAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithIndex sets the index name the catalog is stored under.
func WithIndex(name string) Option {
	return func(c *clientConfig) { c.index = name }
}

// WithService sets the service description baked into oracle prompts.
func WithService(serviceType, catalogType, language string) Option {
	return func(c *clientConfig) {
		c.serviceType = serviceType
		c.catalogType = catalogType
		c.language = language
	}
}

// WithMaxResults caps the result set size per search.
func WithMaxResults(n int) Option {
	return func(c *clientConfig) { c.maxResults = n }
}

// WithCategoryBatchSize sets candidate categories requested per oracle call.
func WithCategoryBatchSize(n int) Option {
	return func(c *clientConfig) { c.batchSize = n }
}

// WithOutputDir sets the directory CSV files are written to.
func WithOutputDir(dir string) Option {
	return func(c *clientConfig) { c.outputDir = dir }
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// Client is the logfaker entry point. The per-entity services are exported
// for callers that want individual generators instead of the full pipeline.
type Client struct {
	Categories *categoryuc.Service
	Contents   *contentuc.Service
	Users      *useruc.Service
	Queries    *queryuc.Service
	Logs       *logsuc.Service
	Exporter   *csvfile.Store

	store  *dbRedis.Store
	engine *redisearch.Engine
	runner *pipeline.Runner
	params clientConfig
}

// New creates a logfaker Client and connects to the search engine.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		model:       "gpt-4o-mini",
		index:       "library_catalog",
		serviceType: "Book search service",
		catalogType: "library",
		language:    "en",
		maxResults:  10,
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.apiKey == "" {
		return nil, fmt.Errorf("logfaker: oracle API key required (use WithOracle): %w", ErrConfiguration)
	}
	if len(cfg.addrs) == 0 {
		return nil, errors.New("logfaker: search engine address required (use WithSearchEngine)")
	}
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("logfaker: create store: %w", err)
	}

	if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("logfaker: search engine not ready: %w", err)
	}

	return wireClient(store, cfg, logger), nil
}

func wireClient(store *dbRedis.Store, cfg *clientConfig, logger *zap.Logger) *Client {
	oracle := openai.NewOracle(&openai.Config{
		APIKey:  cfg.apiKey,
		BaseURL: cfg.baseURL,
		Model:   cfg.model,
		Logger:  logger,
	})

	repo := csvfile.New(cfg.outputDir)
	engine := redisearch.New(store, cfg.index, logger)

	categorySvc := categoryuc.New(oracle, repo, categoryuc.Config{
		ServiceType: cfg.serviceType,
		Language:    cfg.language,
		BatchSize:   cfg.batchSize,
	}, logger)
	contentSvc := contentuc.New(oracle, categorySvc, repo, contentuc.Config{
		ServiceType: cfg.serviceType,
		CatalogType: cfg.catalogType,
		Language:    cfg.language,
	}, logger)
	userSvc := useruc.New(oracle, categorySvc, repo, useruc.Config{
		ServiceType: cfg.serviceType,
		Language:    cfg.language,
	}, logger)
	querySvc := queryuc.New(oracle, queryuc.Config{
		ServiceType: cfg.serviceType,
		Language:    cfg.language,
	}, logger)
	logsSvc := logsuc.New(querySvc, engine, logger)

	return &Client{
		Categories: categorySvc,
		Contents:   contentSvc,
		Users:      userSvc,
		Queries:    querySvc,
		Logs:       logsSvc,
		Exporter:   repo,
		store:      store,
		engine:     engine,
		runner:     pipeline.NewRunner(contentSvc, userSvc, logsSvc, engine, repo, logger),
		params:     *cfg,
	}
}

// Run executes the full dataset pipeline with the given parameters. When
// MaxResults is zero the client default applies.
func (c *Client) Run(ctx context.Context, p Params) (Result, error) {
	if p.MaxResults == 0 {
		p.MaxResults = c.params.maxResults
	}
	return c.runner.Run(ctx, p)
}

// Search executes one ranked query against the indexed catalog.
func (c *Client) Search(ctx context.Context, query string, maxResults int, category string) ([]SearchResult, error) {
	return c.engine.Search(ctx, query, maxResults, category)
}

// Close releases the search engine connection.
func (c *Client) Close() {
	c.store.Close()
}
