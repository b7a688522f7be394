package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/claimsift/claimsift/internal/model"
)

// PerplexityClient talks to Perplexity's chat-completions API, which is
// OpenAI-compatible, through the go-openai client with a custom BaseURL.
type PerplexityClient struct {
	client  *openai.Client
	limiter *rate.Limiter
	config  model.OracleConfig
}

// NewPerplexityClient creates an oracle client. The API key is required;
// callers that have none should run in degraded mode instead (no client).
func NewPerplexityClient(cfg model.OracleConfig) (*PerplexityClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("oracle API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &PerplexityClient{
		client:  openai.NewClientWithConfig(clientConfig),
		limiter: rate.NewLimiter(limit, burst),
		config:  cfg,
	}, nil
}

// Check fact-checks one claim with a single upstream call, bounded by the
// configured timeout. A reply that arrives but does not parse cleanly is
// degraded to defaults by ParseResult, never escalated.
func (c *PerplexityClient) Check(ctx context.Context, claimText string) (*Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: "rate wait", Err: err}
	}

	timeout := time.Duration(c.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatModel := c.config.Model
	if chatModel == "" {
		chatModel = "sonar"
	}
	maxTokens := c.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(claimText),
			},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, &TransportError{Op: "chat completion", StatusCode: statusCode(err), Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &TransportError{Op: "chat completion", Err: errors.New("empty response")}
	}

	return ParseResult(resp.Choices[0].Message.Content), nil
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
