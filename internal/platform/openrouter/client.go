package openrouter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/promptnest/promptnest-api/internal/config"
	"github.com/promptnest/promptnest-api/internal/generation"
	"github.com/promptnest/promptnest-api/internal/platform/logger"
	"github.com/promptnest/promptnest-api/internal/redact"
	"github.com/sashabaranov/go-openai"
)

// Client implements generation.Provider against OpenRouter's
// OpenAI-compatible chat-completion endpoint. It holds only static
// configuration and is safe for concurrent use.
type Client struct {
	logger          *slog.Logger
	api             *openai.Client
	model           string
	maxTokens       int
	singleMaxTokens int
	temperature     float32
}

var _ generation.Provider = (*Client)(nil)

// NewClient creates a Client from the LLM configuration. Zero-valued
// settings take the package defaults from config.
//
// Returns a *generation.ConfigurationError if no API key is configured.
func NewClient(cfg config.LLMConfig, log *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.OpenRouterAPIKey) == "" {
		return nil, &generation.ConfigurationError{Err: generation.ErrMissingCredential}
	}
	if log == nil {
		log = slog.Default()
	}

	cfg = withDefaults(cfg)

	apiConfig := openai.DefaultConfig(cfg.OpenRouterAPIKey)
	apiConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	apiConfig.HTTPClient = &http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": cfg.SiteURL,
				"X-Title":      cfg.AppTitle,
			},
		},
	}

	return &Client{
		logger:          log.With("component", "openrouter"),
		api:             openai.NewClientWithConfig(apiConfig),
		model:           cfg.ModelName,
		maxTokens:       cfg.MaxTokens,
		singleMaxTokens: cfg.SingleMaxTokens,
		temperature:     cfg.Temperature,
	}, nil
}

func withDefaults(cfg config.LLMConfig) config.LLMConfig {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultBaseURL
	}
	if cfg.ModelName == "" {
		cfg.ModelName = config.DefaultModelName
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = config.DefaultMaxTokens
	}
	if cfg.SingleMaxTokens <= 0 {
		cfg.SingleMaxTokens = config.DefaultSingleMaxTokens
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = config.DefaultTemperature
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = config.DefaultSiteURL
	}
	if cfg.AppTitle == "" {
		cfg.AppTitle = config.DefaultAppTitle
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = config.DefaultTimeoutSeconds
	}
	return cfg
}

// Send asks for one prompt per generated platform and returns the raw reply text.
func (c *Client) Send(ctx context.Context, userInput string) (string, error) {
	return c.complete(ctx, "generate", c.maxTokens,
		generation.SystemInstruction(), generation.UserMessage(userInput))
}

// SendSingle asks for a single prompt tailored to platform and returns the raw reply text.
func (c *Client) SendSingle(ctx context.Context, userInput, platform string) (string, error) {
	return c.complete(ctx, "generate_single", c.singleMaxTokens,
		generation.SingleSystemInstruction(platform), generation.SingleUserMessage(userInput, platform))
}

func (c *Client) complete(ctx context.Context, operation string, maxTokens int, system, user string) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger).With(
		"operation", operation,
		"model", c.model,
	)

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
	}

	log.DebugContext(ctx, "sending chat completion request",
		"max_tokens", maxTokens,
		"input_length", len(user))

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		providerErr := mapError(err)
		log.ErrorContext(ctx, "chat completion request failed",
			"status_code", providerErr.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", redact.Error(err))
		return "", providerErr
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.ErrorContext(ctx, "chat completion reply has no content",
			"choices", len(resp.Choices))
		return "", &generation.ProviderError{Err: generation.ErrEmptyReply}
	}

	log.InfoContext(ctx, "chat completion request succeeded",
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"finish_reason", resp.Choices[0].FinishReason)

	return resp.Choices[0].Message.Content, nil
}

// mapError converts go-openai failures into a *generation.ProviderError
// carrying the HTTP status and the provider's error text when there was a reply.
func mapError(err error) *generation.ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &generation.ProviderError{
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := strings.TrimSpace(string(reqErr.Body))
		if body == "" && reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &generation.ProviderError{
			StatusCode: reqErr.HTTPStatusCode,
			Body:       body,
			Err:        err,
		}
	}

	return &generation.ProviderError{Err: err}
}

// headerTransport adds fixed headers to every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for name, value := range t.headers {
		if value != "" {
			req.Header.Set(name, value)
		}
	}
	return t.base.RoundTrip(req)
}
