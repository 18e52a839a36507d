// Command logfaker runs the full synthetic dataset pipeline: category-anchored
// content generation, user profiles, and search logs built against a live
// RediSearch index. Output lands as CSV files in the configured directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/logfaker/internal/config"
	dbRedis "github.com/kailas-cloud/logfaker/internal/db/redis"
	logpkg "github.com/kailas-cloud/logfaker/internal/logger"
	"github.com/kailas-cloud/logfaker/internal/metrics"
	"github.com/kailas-cloud/logfaker/internal/repository/csvfile"
	"github.com/kailas-cloud/logfaker/internal/search/redisearch"
	"github.com/kailas-cloud/logfaker/internal/transport/openai"
	categoryuc "github.com/kailas-cloud/logfaker/internal/usecase/category"
	contentuc "github.com/kailas-cloud/logfaker/internal/usecase/content"
	logsuc "github.com/kailas-cloud/logfaker/internal/usecase/logs"
	"github.com/kailas-cloud/logfaker/internal/usecase/pipeline"
	queryuc "github.com/kailas-cloud/logfaker/internal/usecase/query"
	useruc "github.com/kailas-cloud/logfaker/internal/usecase/user"
	"github.com/kailas-cloud/logfaker/internal/version"
)

type flags struct {
	contents       int
	users          int
	queriesPerUser int
	noReuse        bool
	withEngagement bool
	forceReindex   bool
	metricsPort    int
}

func parseFlags() flags {
	f := flags{}
	flag.IntVar(&f.contents, "contents", 30, "catalog entries to generate")
	flag.IntVar(&f.users, "users", 10, "user profiles to generate")
	flag.IntVar(&f.queriesPerUser, "queries-per-user", 1, "search queries per user")
	flag.BoolVar(&f.noReuse, "no-reuse", false, "ignore persisted CSV files and regenerate everything")
	flag.BoolVar(&f.withEngagement, "with-engagement", false, "attach simulated clicks and CTR to logs")
	flag.BoolVar(&f.forceReindex, "force-reindex", false, "drop and recreate the search index")
	flag.IntVar(&f.metricsPort, "metrics-port", 0, "Prometheus metrics port (0 = config value)")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting logfaker pipeline",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("contents", f.contents),
		zap.Int("users", f.users),
		zap.Int("queries_per_user", f.queriesPerUser),
		zap.Strings("search_addrs", cfg.SearchEngine.Addrs),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.SearchEngine.Addrs,
		Username: cfg.SearchEngine.Username,
		Password: cfg.SearchEngine.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create search engine store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.SearchEngine.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}
	logger.Info("Connected to search engine")

	metrics.RegisterGenerationMetrics()
	metricsPort := f.metricsPort
	if metricsPort == 0 {
		metricsPort = cfg.HTTP.MetricsPort
	}
	metricsSrv := serveMetrics(metricsPort, store, logger)
	defer func() {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		_ = metricsSrv.Shutdown(shutCtx)
	}()

	oracle := openai.NewOracle(&openai.Config{
		APIKey:  cfg.Generator.APIKey,
		BaseURL: cfg.Generator.BaseURL,
		Model:   cfg.Generator.Model,
		Logger:  logger,
	})
	if err := oracle.HealthCheck(ctx); err != nil {
		logger.Fatal("Generative oracle not reachable", zap.Error(err))
	}

	repo := csvfile.New(cfg.Output.Dir)
	engine := redisearch.New(store, cfg.SearchEngine.Index, logger)

	categorySvc := categoryuc.New(oracle, repo, categoryuc.Config{
		ServiceType: cfg.Generator.ServiceType,
		Language:    cfg.Generator.Language,
		BatchSize:   cfg.Generator.CategoryBatchSize,
	}, logger)
	contentSvc := contentuc.New(oracle, categorySvc, repo, contentuc.Config{
		ServiceType: cfg.Generator.ServiceType,
		CatalogType: cfg.Generator.CatalogType,
		Language:    cfg.Generator.Language,
	}, logger)
	userSvc := useruc.New(oracle, categorySvc, repo, useruc.Config{
		ServiceType: cfg.Generator.ServiceType,
		Language:    cfg.Generator.Language,
	}, logger)
	querySvc := queryuc.New(oracle, queryuc.Config{
		ServiceType: cfg.Generator.ServiceType,
		Language:    cfg.Generator.Language,
	}, logger)
	logsSvc := logsuc.New(querySvc, engine, logger)

	runner := pipeline.NewRunner(contentSvc, userSvc, logsSvc, engine, repo, logger)

	res, err := runner.Run(ctx, pipeline.Params{
		Contents:       f.contents,
		Users:          f.users,
		QueriesPerUser: f.queriesPerUser,
		MaxResults:     cfg.Generator.MaxResults,
		Reuse:          !f.noReuse,
		WithEngagement: f.withEngagement,
		ForceReindex:   f.forceReindex,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Pipeline interrupted")
			return
		}
		logger.Fatal("Pipeline failed", zap.Error(err))
	}

	logger.Info("Dataset ready",
		zap.String("dir", cfg.Output.Dir),
		zap.Int("contents", res.Contents),
		zap.Int("users", res.Users),
		zap.Int("queries", res.Queries),
		zap.Int("logs", res.Logs),
		zap.Duration("elapsed", res.Elapsed),
	)
}

// serveMetrics exposes /metrics and /healthz for the duration of the run.
func serveMetrics(port int, store *dbRedis.Store, logger *zap.Logger) *http.Server {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := store.Ping(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("search engine unreachable"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Metrics server stopped", zap.Error(err))
		}
	}()
	return srv
}
