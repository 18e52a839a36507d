// Package openai implements the generative oracle on the OpenAI-compatible
// chat completion API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/logfaker/internal/domain"
	"github.com/kailas-cloud/logfaker/internal/metrics"
)

// Compile-time check: Oracle implements domain.GenerativeOracle.
var _ domain.GenerativeOracle = (*Oracle)(nil)

// Oracle is a generative oracle using the OpenAI-compatible API. Every call
// requests a strict JSON-schema response and parses it at this boundary;
// unvalidated oracle output never crosses into the generators.
type Oracle struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the oracle settings.
type Config struct {
	APIKey  string
	BaseURL string // empty = api.openai.com
	Model   string
	Logger  *zap.Logger
}

// NewOracle creates an OpenAI-compatible generative oracle.
func NewOracle(cfg *Config) *Oracle {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Oracle{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// CreateCategories requests a batch of catalog categories.
func (o *Oracle) CreateCategories(ctx context.Context, prompt string) ([]domain.CategoryDraft, error) {
	var payload categoriesPayload
	if err := o.complete(ctx, opCreateCategories, categorySystemPrompt, prompt, categoriesSchema, &payload); err != nil {
		return nil, err
	}

	if len(payload.Categories) == 0 {
		return nil, fmt.Errorf("oracle returned no categories: %w", domain.ErrGeneration)
	}
	for i, c := range payload.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("category %d has empty name: %w", i, domain.ErrGeneration)
		}
	}
	return payload.Categories, nil
}

// CreateContent requests a single catalog entry.
func (o *Oracle) CreateContent(ctx context.Context, prompt string) (domain.ContentDraft, error) {
	var draft domain.ContentDraft
	if err := o.complete(ctx, opCreateContent, contentSystemPrompt, prompt, contentSchema, &draft); err != nil {
		return domain.ContentDraft{}, err
	}

	if draft.Title == "" || draft.Description == "" {
		return domain.ContentDraft{}, fmt.Errorf("content draft missing title or description: %w", domain.ErrGeneration)
	}
	return draft, nil
}

// CreateUser requests a single user profile.
func (o *Oracle) CreateUser(ctx context.Context, prompt string) (domain.UserDraft, error) {
	var draft domain.UserDraft
	if err := o.complete(ctx, opCreateUser, userSystemPrompt, prompt, userSchema, &draft); err != nil {
		return domain.UserDraft{}, err
	}

	if draft.BriefExplanation == "" || draft.Profession == "" {
		return domain.UserDraft{}, fmt.Errorf("user draft missing required field: %w", domain.ErrGeneration)
	}
	return draft, nil
}

// CreateQuery requests a single search query.
func (o *Oracle) CreateQuery(ctx context.Context, prompt string) (domain.QueryDraft, error) {
	var draft domain.QueryDraft
	if err := o.complete(ctx, opCreateQuery, querySystemPrompt, prompt, querySchema, &draft); err != nil {
		return domain.QueryDraft{}, err
	}

	if draft.QueryContent == "" {
		return domain.QueryDraft{}, fmt.Errorf("query draft missing query_content: %w", domain.ErrGeneration)
	}
	return draft, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (o *Oracle) HealthCheck(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// complete performs one chat completion with a strict JSON-schema response
// format and unmarshals the result into out.
func (o *Oracle) complete(
	ctx context.Context, op operation, systemPrompt, userPrompt string,
	schema *schemaDefinition, out any,
) error {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   string(op),
				Schema: schema.definition,
				Strict: true,
			},
		},
	}

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues(string(op), "error").Inc()
		return parseAPIError(err)
	}

	metrics.OracleRequestsTotal.WithLabelValues(string(op), "success").Inc()
	metrics.OracleRequestDuration.WithLabelValues(string(op)).Observe(duration.Seconds())

	if resp.Usage.TotalTokens > 0 {
		metrics.OracleTokensTotal.WithLabelValues(o.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.OracleTokensTotal.WithLabelValues(o.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	if len(resp.Choices) == 0 {
		metrics.OracleRequestsTotal.WithLabelValues(string(op), "empty").Inc()
		return fmt.Errorf("empty completion response: %w", domain.ErrGeneration)
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), out); err != nil {
		o.logger.Debug("unparsable oracle response",
			zap.String("operation", string(op)),
			zap.String("content", content),
		)
		return fmt.Errorf("parse %s response: %v: %w", op, err, domain.ErrGeneration)
	}

	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// Transport-level failures map to ErrOracleUnavailable, API rejections to ErrGeneration.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return fmt.Errorf("oracle API error %d: %s: %w",
			reqErr.HTTPStatusCode, detail, domain.ErrGeneration)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("oracle API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, domain.ErrGeneration)
	}

	return fmt.Errorf("oracle request failed: %v: %w", err, domain.ErrOracleUnavailable)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
