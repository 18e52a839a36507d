// Package pipeline drives a full dataset run as a fixed stage sequence:
// catalog, index, users, logs. Each stage persists its output before the
// next one starts, so an aborted run leaves reusable CSV files behind.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/logfaker/internal/domain"
	logpkg "github.com/kailas-cloud/logfaker/internal/logger"
	"github.com/kailas-cloud/logfaker/internal/repository/csvfile"
)

// Params describes one dataset run.
type Params struct {
	Contents       int
	Users          int
	QueriesPerUser int
	MaxResults     int
	Reuse          bool
	WithEngagement bool
	ForceReindex   bool
}

// Result summarizes a finished run.
type Result struct {
	Contents int
	Users    int
	Queries  int
	Logs     int
	Elapsed  time.Duration
}

// Runner executes dataset runs.
type Runner struct {
	contents ContentGenerator
	users    UserGenerator
	logs     LogBuilder
	indexer  Indexer
	exporter Exporter
	logger   *zap.Logger
}

// NewRunner wires a pipeline runner.
func NewRunner(
	contents ContentGenerator,
	users UserGenerator,
	logs LogBuilder,
	indexer Indexer,
	exporter Exporter,
	logger *zap.Logger,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		contents: contents,
		users:    users,
		logs:     logs,
		indexer:  indexer,
		exporter: exporter,
		logger:   logger,
	}
}

// Run executes the full pipeline. Oracle and indexing failures abort the run;
// search failures during the log stage degrade individual logs instead.
// A logger seeded into ctx wins over the Runner's own; the resolved logger is
// re-seeded so the stages below read it back from the context.
func (r *Runner) Run(ctx context.Context, p Params) (Result, error) {
	start := time.Now()

	log := logpkg.FromContext(ctx, r.logger)
	ctx = logpkg.ContextWithLogger(ctx, log)

	contents, err := r.stageContents(ctx, p)
	if err != nil {
		return Result{}, err
	}

	if err := r.stageIndex(ctx, contents, p.ForceReindex); err != nil {
		return Result{}, err
	}

	users, err := r.stageUsers(ctx, p)
	if err != nil {
		return Result{}, err
	}

	queries, searchLogs, err := r.stageLogs(ctx, users, p)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Contents: len(contents),
		Users:    len(users),
		Queries:  len(queries),
		Logs:     len(searchLogs),
		Elapsed:  time.Since(start),
	}
	log.Info("pipeline finished",
		zap.Int("contents", res.Contents),
		zap.Int("users", res.Users),
		zap.Int("queries", res.Queries),
		zap.Int("logs", res.Logs),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (r *Runner) stageContents(ctx context.Context, p Params) ([]domain.Content, error) {
	logpkg.FromContext(ctx).Info("stage: contents", zap.Int("count", p.Contents), zap.Bool("reuse", p.Reuse))

	contents, err := r.contents.GenerateContents(ctx, p.Contents, p.Reuse)
	if err != nil {
		return nil, fmt.Errorf("content stage: %w", err)
	}
	if err := r.exporter.ExportContents(contents, csvfile.ContentsFile); err != nil {
		return nil, fmt.Errorf("content stage: %w", err)
	}
	return contents, nil
}

func (r *Runner) stageIndex(ctx context.Context, contents []domain.Content, force bool) error {
	log := logpkg.FromContext(ctx)
	log.Info("stage: index", zap.Int("documents", len(contents)), zap.Bool("force", force))

	if err := r.indexer.SetupIndex(ctx, force); err != nil {
		return fmt.Errorf("index stage: %w", err)
	}
	if err := r.indexer.IndexContents(ctx, contents); err != nil {
		return fmt.Errorf("index stage: %w", err)
	}

	count, err := r.indexer.CountDocuments(ctx)
	if err != nil {
		log.Warn("index count unavailable", zap.Error(err))
		return nil
	}
	if count < len(contents) {
		log.Warn("index holds fewer documents than the catalog",
			zap.Int("indexed", count),
			zap.Int("catalog", len(contents)),
		)
		return nil
	}
	log.Info("index loaded", zap.Int("indexed", count))
	return nil
}

func (r *Runner) stageUsers(ctx context.Context, p Params) ([]domain.UserProfile, error) {
	logpkg.FromContext(ctx).Info("stage: users", zap.Int("count", p.Users), zap.Bool("reuse", p.Reuse))

	users, err := r.users.GenerateUsers(ctx, p.Users, p.Reuse)
	if err != nil {
		return nil, fmt.Errorf("user stage: %w", err)
	}
	if err := r.exporter.ExportUsers(users, csvfile.UsersFile); err != nil {
		return nil, fmt.Errorf("user stage: %w", err)
	}
	return users, nil
}

func (r *Runner) stageLogs(ctx context.Context, users []domain.UserProfile, p Params) ([]domain.SearchQuery, []domain.SearchLog, error) {
	logpkg.FromContext(ctx).Info("stage: logs",
		zap.Int("queries_per_user", p.QueriesPerUser),
		zap.Bool("with_engagement", p.WithEngagement),
	)

	queries, searchLogs, err := r.logs.BuildLogs(ctx, users, p.QueriesPerUser, p.MaxResults, p.WithEngagement)
	if err != nil {
		return nil, nil, fmt.Errorf("log stage: %w", err)
	}
	if err := r.exporter.ExportQueries(queries, csvfile.QueriesFile); err != nil {
		return nil, nil, fmt.Errorf("log stage: %w", err)
	}
	if err := r.exporter.ExportLogs(searchLogs, csvfile.LogsFile); err != nil {
		return nil, nil, fmt.Errorf("log stage: %w", err)
	}
	return queries, searchLogs, nil
}
