package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/api/middleware"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/generation"
	"github.com/promptnest/promptnest-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router     http.Handler
	generation *MockGenerationService
	catalog    *MockCatalogService
}

func newTestServer(t *testing.T, limit func(http.Handler) http.Handler) *testServer {
	t.Helper()

	ts := &testServer{
		generation: &MockGenerationService{},
		catalog:    &MockCatalogService{},
	}
	catalogHandler := NewCatalogHandler(ts.catalog, nil)
	catalogHandler.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }

	r := chi.NewRouter()
	RegisterRoutes(r, NewGenerationHandler(ts.generation, nil), catalogHandler, limit)
	ts.router = r

	t.Cleanup(func() {
		ts.generation.AssertExpectations(t)
		ts.catalog.AssertExpectations(t)
	})
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = "192.0.2.10:40000"
	req.Header.Set("User-Agent", "test-agent")

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func samplePrompts() []domain.GeneratedPrompt {
	prompts := make([]domain.GeneratedPrompt, 0, len(domain.GeneratedPlatforms))
	for _, p := range domain.GeneratedPlatforms {
		style, _ := domain.StyleFor(p)
		prompts = append(prompts, domain.GeneratedPrompt{
			Platform: p, Type: "General", Content: "c", Preview: "c", Icon: style.Icon, Color: style.Color,
		})
	}
	return prompts
}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	ts.generation.On("Generate", mock.Anything, "help me write professional emails", "").
		Return(&service.GenerationResult{Success: true, Prompts: samplePrompts(), Input: "help me write professional emails"}, nil)

	w := ts.do(http.MethodPost, "/api/generate", `{"prompt":"help me write professional emails"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "help me write professional emails", body["input"])
	require.Len(t, body["prompts"], 4)
	first := body["prompts"].([]any)[0].(map[string]any)
	assert.Equal(t, "ChatGPT", first["platform"])
	assert.Equal(t, "fab fa-openai", first["icon"])
}

func TestGenerate_LongSessionIDPassedThrough(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	sessionID := strings.Repeat("s", 200)
	ts.generation.On("Generate", mock.Anything, "hello", sessionID).
		Return(&service.GenerationResult{Success: true, Prompts: samplePrompts(), Input: "hello"}, nil)

	w := ts.do(http.MethodPost, "/api/generate", `{"prompt":"hello","sessionId":"`+sessionID+`"}`)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestGenerate_ValidationRejectsBeforeService(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"missing prompt": `{}`,
		"too long":       `{"prompt":"` + strings.Repeat("a", 501) + `"}`,
		"wrong type":     `{"prompt":42}`,
		"malformed":      `{"prompt":`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, nil)

			w := ts.do(http.MethodPost, "/api/generate", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeBody(t, w)
			assert.NotEmpty(t, resp["error"])
			ts.generation.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGenerate_ValidationDetails(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPost, "/api/generate", `{"prompt":""}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Invalid input", resp["error"])
	details := resp["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "prompt", details[0].(map[string]any)["field"])
}

func TestGenerate_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "provider failure",
			err:     &generation.GenerationError{Err: &generation.ProviderError{StatusCode: 429, Body: "rate limited"}},
			status:  http.StatusInternalServerError,
			message: "provider error: status 429 - rate limited",
		},
		{
			name:    "parse failure",
			err:     &generation.GenerationError{Err: &generation.ParseError{Err: generation.ErrWrongItemCount, Detail: "got 3 items"}},
			status:  http.StatusInternalServerError,
			message: "wrong item count: got 3 items",
		},
		{
			name:    "not configured",
			err:     &generation.GenerationError{Err: &generation.ConfigurationError{Err: generation.ErrMissingCredential}},
			status:  http.StatusServiceUnavailable,
			message: generation.ErrMissingCredential.Error(),
		},
		{
			name:   "blank input",
			err:    domain.NewValidationError("prompt", "cannot be empty", domain.ErrEmptyUserInput),
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, nil)
			ts.generation.On("Generate", mock.Anything, "   ", "s-1").Return(nil, tc.err)

			w := ts.do(http.MethodPost, "/api/generate", `{"prompt":"   ","sessionId":"s-1"}`)

			assert.Equal(t, tc.status, w.Code)
			resp := decodeBody(t, w)
			if tc.status == http.StatusInternalServerError {
				assert.Equal(t, "Failed to generate prompts", resp["error"])
			}
			if tc.message != "" {
				assert.Equal(t, tc.message, resp["message"])
			}
		})
	}
}

func TestGenerate_RateLimited(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, middleware.NewRateLimiter(0.001, 1))

	ts.generation.On("Generate", mock.Anything, "x", "").
		Return(&service.GenerationResult{Success: true, Prompts: samplePrompts(), Input: "x"}, nil).Once()

	assert.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/generate", `{"prompt":"x"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.do(http.MethodPost, "/api/generate", `{"prompt":"x"}`).Code)

	ts.catalog.On("ListCategories", mock.Anything).Return([]*domain.Category{}, nil)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/categories", "").Code, "catalog is not limited")
}

func TestGenerateSingle(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	ts.generation.On("GenerateSingle", mock.Anything, "a haiku", "Claude").
		Return(&domain.GeneratedPrompt{Platform: "Claude", Type: "Creative", Content: "c", Preview: "c", Icon: "fas fa-robot", Color: "orange"}, nil)

	w := ts.do(http.MethodPost, "/api/generate/single", `{"prompt":"a haiku","platform":"Claude"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Claude", resp["prompt"].(map[string]any)["platform"])

	w = ts.do(http.MethodPost, "/api/generate/single", `{"prompt":"a haiku"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecentGenerations(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	record, err := domain.NewGenerationRecord("poem", samplePrompts(), "session_1")
	require.NoError(t, err)
	ts.generation.On("RecentGenerations", mock.Anything, 5).Return([]*domain.GenerationRecord{record}, nil)

	w := ts.do(http.MethodGet, "/api/generations/recent?limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "session_1", records[0]["sessionId"])
}

func TestHealth(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","timestamp":"2025-06-01T09:30:00Z"}`, w.Body.String())
}

func TestCatalogListings(t *testing.T) {
	t.Parallel()

	platformID, categoryID := uuid.New(), uuid.New()
	prompts := []*domain.Prompt{{ID: uuid.New(), Title: "Cold email", Tags: []string{"sales"}}}

	tests := []struct {
		name   string
		target string
		setup  func(m *MockCatalogService)
	}{
		{"list", "/api/prompts?limit=5&offset=10", func(m *MockCatalogService) {
			m.On("ListPrompts", mock.Anything, 5, 10).Return(prompts, nil)
		}},
		{"list defaults", "/api/prompts", func(m *MockCatalogService) {
			m.On("ListPrompts", mock.Anything, 0, 0).Return(prompts, nil)
		}},
		{"trending", "/api/prompts/trending", func(m *MockCatalogService) {
			m.On("TrendingPrompts", mock.Anything, 0).Return(prompts, nil)
		}},
		{"featured", "/api/prompts/featured?limit=3", func(m *MockCatalogService) {
			m.On("FeaturedPrompts", mock.Anything, 3).Return(prompts, nil)
		}},
		{"search", "/api/prompts/search?q=email", func(m *MockCatalogService) {
			m.On("SearchPrompts", mock.Anything, "email", 0).Return(prompts, nil)
		}},
		{"by platform", "/api/prompts/platform/" + platformID.String(), func(m *MockCatalogService) {
			m.On("PromptsByPlatform", mock.Anything, platformID, 0).Return(prompts, nil)
		}},
		{"by category", "/api/prompts/category/" + categoryID.String() + "?limit=2", func(m *MockCatalogService) {
			m.On("PromptsByCategory", mock.Anything, categoryID, 2).Return(prompts, nil)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, nil)
			tc.setup(ts.catalog)

			w := ts.do(http.MethodGet, tc.target, "")

			require.Equal(t, http.StatusOK, w.Code)
			var got []map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.Len(t, got, 1)
			assert.Equal(t, "Cold email", got[0]["title"])
		})
	}
}

func TestCatalogListings_EmptyIsArray(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)
	ts.catalog.On("TrendingPrompts", mock.Anything, 0).Return(nil, nil)

	w := ts.do(http.MethodGet, "/api/prompts/trending", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCatalogListings_Errors(t *testing.T) {
	t.Parallel()

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, nil)
		ts.catalog.On("ListCategories", mock.Anything).Return(nil, errors.New("db down"))

		w := ts.do(http.MethodGet, "/api/categories", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to fetch categories", decodeBody(t, w)["error"])
	})

	t.Run("bad platform id", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, nil)

		w := ts.do(http.MethodGet, "/api/prompts/platform/chatgpt", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("search without query", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, nil)

		w := ts.do(http.MethodGet, "/api/prompts/search", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetPrompt(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	id := uuid.New()
	visitor := service.Visitor{UserAgent: "test-agent", IPAddress: "192.0.2.10"}
	ts.catalog.On("GetPrompt", mock.Anything, id, visitor).Return(&domain.Prompt{ID: id, Title: "Cold email"}, nil)

	w := ts.do(http.MethodGet, "/api/prompts/"+id.String(), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cold email", decodeBody(t, w)["title"])
}

func TestGetPrompt_NotFound(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	ts.catalog.On("GetPrompt", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrPromptNotFound)

	w := ts.do(http.MethodGet, "/api/prompts/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Prompt not found", decodeBody(t, w)["error"])
}

func TestRecordAnalytics(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	id := uuid.New()
	ts.catalog.On("RecordAction", mock.Anything, id, domain.ActionCopy,
		service.Visitor{UserAgent: "Browser/2.0", IPAddress: "192.0.2.10"}).Return(nil)

	w := ts.do(http.MethodPost, "/api/analytics", `{"promptId":"`+id.String()+`","action":"copy","userAgent":"Browser/2.0"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestRecordAnalytics_Rejected(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	tests := map[string]string{
		"unknown action": `{"promptId":"` + id + `","action":"like"}`,
		"bad id":         `{"promptId":"7","action":"view"}`,
		"missing action": `{"promptId":"` + id + `"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, nil)

			w := ts.do(http.MethodPost, "/api/analytics", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRecordAnalytics_UnknownPrompt(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	ts.catalog.On("RecordAction", mock.Anything, mock.Anything, domain.ActionView, mock.Anything).
		Return(service.ErrPromptNotFound)

	w := ts.do(http.MethodPost, "/api/analytics", `{"promptId":"`+uuid.NewString()+`","action":"view"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStats(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	ts.catalog.On("Stats", mock.Anything).Return(&service.CatalogStats{
		TotalPrompts:    11,
		TotalCategories: 2,
		TotalPlatforms:  6,
		Categories:      []*domain.Category{},
		Platforms:       []*domain.Platform{},
		FeaturedPrompts: []*domain.Prompt{},
	}, nil)

	w := ts.do(http.MethodGet, "/api/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 11, body["totalPrompts"])
	assert.EqualValues(t, 6, body["totalPlatforms"])
}
