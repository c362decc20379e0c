package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"trading-report/config"
	"trading-report/internal/dto"
	"trading-report/pkg/httpclient"
	"trading-report/pkg/logger"

	"golang.org/x/time/rate"
)

// AIRepository produces a qualitative assessment of a trading summary. The
// provider behind it (OpenRouter or Gemini) is a config choice; both return
// the same canonical schema.
type AIRepository interface {
	AnalyzeTradingSummary(ctx context.Context, summary dto.TradingSummary, notes *dto.UserNotes) (*dto.AIAnalysis, error)
}

type openRouterAIRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewOpenRouterAIRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.AI.OpenRouter.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &openRouterAIRepository{
		httpClient:     httpclient.New(cfg.AI.OpenRouter.BaseURL, cfg.AI.OpenRouter.Timeout, cfg.AI.OpenRouter.APIKey),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *openRouterAIRepository) AnalyzeTradingSummary(ctx context.Context, summary dto.TradingSummary, notes *dto.UserNotes) (*dto.AIAnalysis, error) {
	if r.cfg.AI.OpenRouter.APIKey == "" {
		return nil, fmt.Errorf("openrouter api key is not configured")
	}

	prompt, err := buildAnalyzerPrompt(summary, notes)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to build analyzer prompt", logger.ErrorField(err))
		return nil, err
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for openrouter request limit: %w", err)
	}

	payload := dto.ChatCompletionRequest{
		Model: r.cfg.AI.OpenRouter.Model,
		Messages: []dto.ChatMessage{
			{Role: "system", Content: analyzerSystemRole},
			{Role: "user", Content: prompt},
		},
		Temperature: r.cfg.AI.OpenRouter.Temperature,
		MaxTokens:   r.cfg.AI.OpenRouter.MaxTokens,
	}

	var chatResp dto.ChatCompletionResponse
	resp, err := r.httpClient.Post(ctx, "/chat/completions", payload, nil, &chatResp)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to openrouter: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "OpenRouter API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("openrouter api returned status: %d", resp.StatusCode)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("invalid response from openrouter: no choices found")
	}

	return parseAnalysisContent(chatResp.Choices[0].Message.Content), nil
}
