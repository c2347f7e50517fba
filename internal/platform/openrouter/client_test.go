package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/promptnest/promptnest-api/internal/config"
	"github.com/promptnest/promptnest-api/internal/generation"
	"github.com/promptnest/promptnest-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedRequest is what the fake provider saw.
type capturedRequest struct {
	Path    string
	Header  http.Header
	Payload struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "gen-123",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "anthropic/claude-3.5-sonnet",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{"prompt_tokens": 120, "completion_tokens": 480, "total_tokens": 600},
	})
	return string(body)
}

// newFakeProvider starts a server that records the request and replies with
// status and body.
func newFakeProvider(t *testing.T, status int, contentType, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Path = r.URL.Path
		captured.Header = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&captured.Payload)

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	c, err := NewClient(config.LLMConfig{
		OpenRouterAPIKey: "sk-or-test-key",
		BaseURL:          baseURL,
		SiteURL:          "https://promptnest.example",
		AppTitle:         "PromptNest",
		TimeoutSeconds:   5,
	}, log)
	require.NoError(t, err)
	return c
}

func TestNewClient_MissingKey(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "   "} {
		c, err := NewClient(config.LLMConfig{OpenRouterAPIKey: key}, nil)
		assert.Nil(t, c)

		var cfgErr *generation.ConfigurationError
		require.True(t, errors.As(err, &cfgErr), "got %v", err)
		assert.True(t, errors.Is(err, generation.ErrMissingCredential))
	}
}

func TestSend_Success(t *testing.T) {
	t.Parallel()

	srv, captured := newFakeProvider(t, http.StatusOK, "application/json", completionBody(`[{"platform":"ChatGPT"}]`))
	c := newTestClient(t, srv.URL+"/api/v1/")

	content, err := c.Send(context.Background(), "a bedtime story about whales")
	require.NoError(t, err)
	assert.Equal(t, `[{"platform":"ChatGPT"}]`, content)

	assert.Equal(t, "/api/v1/chat/completions", captured.Path)
	assert.Equal(t, "Bearer sk-or-test-key", captured.Header.Get("Authorization"))
	assert.Equal(t, "https://promptnest.example", captured.Header.Get("HTTP-Referer"))
	assert.Equal(t, "PromptNest", captured.Header.Get("X-Title"))
	assert.Contains(t, captured.Header.Get("Content-Type"), "application/json")

	assert.Equal(t, "anthropic/claude-3.5-sonnet", captured.Payload.Model)
	assert.Equal(t, 2000, captured.Payload.MaxTokens)
	assert.InDelta(t, 0.7, captured.Payload.Temperature, 0.0001)
	require.Len(t, captured.Payload.Messages, 2)
	assert.Equal(t, "system", captured.Payload.Messages[0].Role)
	assert.Equal(t, generation.SystemInstruction(), captured.Payload.Messages[0].Content)
	assert.Equal(t, "user", captured.Payload.Messages[1].Role)
	assert.Equal(t, "Generate 4 optimized AI prompts for: a bedtime story about whales", captured.Payload.Messages[1].Content)
}

func TestSendSingle_Success(t *testing.T) {
	t.Parallel()

	srv, captured := newFakeProvider(t, http.StatusOK, "application/json", completionBody(`{"content":"x"}`))
	c := newTestClient(t, srv.URL)

	content, err := c.SendSingle(context.Background(), "logo ideas", "Midjourney")
	require.NoError(t, err)
	assert.Equal(t, `{"content":"x"}`, content)

	assert.Equal(t, 1000, captured.Payload.MaxTokens)
	require.Len(t, captured.Payload.Messages, 2)
	assert.Equal(t, generation.SingleSystemInstruction("Midjourney"), captured.Payload.Messages[0].Content)
	assert.Equal(t, "Create an optimized Midjourney prompt for: logo ideas", captured.Payload.Messages[1].Content)
}

func TestSend_ProviderFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantStatus  int
		wantBody    string
		wantErr     error
	}{
		{
			name:        "json error envelope",
			status:      http.StatusUnauthorized,
			contentType: "application/json",
			body:        `{"error":{"message":"No auth credentials found","code":401}}`,
			wantStatus:  http.StatusUnauthorized,
			wantBody:    "No auth credentials found",
		},
		{
			name:        "plain text error",
			status:      http.StatusBadGateway,
			contentType: "text/plain",
			body:        "upstream unavailable",
			wantStatus:  http.StatusBadGateway,
			wantBody:    "upstream unavailable",
		},
		{
			name:        "empty choices",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"id":"gen-1","object":"chat.completion","choices":[]}`,
			wantErr:     generation.ErrEmptyReply,
		},
		{
			name:        "empty content",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        completionBody(""),
			wantErr:     generation.ErrEmptyReply,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := newFakeProvider(t, tc.status, tc.contentType, tc.body)
			c := newTestClient(t, srv.URL)

			content, err := c.Send(context.Background(), "anything")
			assert.Empty(t, content)

			var providerErr *generation.ProviderError
			require.True(t, errors.As(err, &providerErr), "got %T: %v", err, err)
			assert.Equal(t, tc.wantStatus, providerErr.StatusCode)
			if tc.wantBody != "" {
				assert.Contains(t, providerErr.Body, tc.wantBody)
			}
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr))
			}
			assert.NotContains(t, err.Error(), "sk-or-test-key")
		})
	}
}

func TestSend_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	_, err := c.Send(context.Background(), "anything")

	var providerErr *generation.ProviderError
	require.True(t, errors.As(err, &providerErr), "got %T: %v", err, err)
	assert.Zero(t, providerErr.StatusCode)
	assert.True(t, strings.HasPrefix(err.Error(), "provider error: "))
}

func TestSend_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv, _ := newFakeProvider(t, http.StatusOK, "application/json", completionBody("[]"))
	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Send(ctx, "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestHeaderTransport_DoesNotMutateRequest(t *testing.T) {
	t.Parallel()

	var seen http.Header
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.Header
		return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody, Request: r}, nil
	})
	tr := &headerTransport{base: base, headers: map[string]string{"X-Title": "PromptNest", "HTTP-Referer": ""}}

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "PromptNest", seen.Get("X-Title"))
	assert.Empty(t, seen.Values("HTTP-Referer"), "empty values are not sent")
	assert.Empty(t, req.Header.Get("X-Title"), "original request is untouched")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
