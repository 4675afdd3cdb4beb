package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
)

type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Process(ctx context.Context, req domain.VideoRequest) (*domain.PipelineResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineResult), args.Error(1)
}

func (m *MockPipeline) CreateManualEvent(ctx context.Context, req domain.ManualEventRequest) (*domain.EventResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventResult), args.Error(1)
}

func (m *MockPipeline) RegenerateVariation(ctx context.Context, req domain.RegenerateRequest) (*domain.Variation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Variation), args.Error(1)
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestProcessEndpoint(t *testing.T) {
	t.Run("analysis failure returns 500 with fixed detail", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		pipeline.On("Process", mock.Anything, mock.Anything).Return(nil, domain.ErrAnalysisFailed)

		rec := postJSON(t, handler, "/process", domain.VideoRequest{URL: "https://x/v.mp4", Project: "demo"})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Analysis failed", decodeBody(t, rec)["detail"])
	})

	t.Run("success returns events and the import map", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		result := &domain.PipelineResult{
			Events: []domain.EventResult{{
				Name:       "Jump",
				Start:      1.0,
				Duration:   1.5,
				Prompts:    []string{"a", "b", "c"},
				Variations: []string{"u0", domain.UnresolvedURL, "u2"},
			}},
			WwiseImportMap: "Audio File\tObject Path\tEvent\tVariation\n",
		}
		pipeline.On("Process", mock.Anything, domain.VideoRequest{URL: "https://x/v.mp4", Project: "demo"}).
			Return(result, nil)

		rec := postJSON(t, handler, "/process", domain.VideoRequest{URL: "https://x/v.mp4", Project: "demo"})

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.Len(t, body["data"], 1)
		assert.NotEmpty(t, body["wwise_import_map"])
	})

	t.Run("missing fields are rejected before the pipeline runs", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		rec := postJSON(t, handler, "/process", map[string]string{"url": "https://x/v.mp4"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		pipeline.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	})

	t.Run("invalid JSON is a 400", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		req := httptest.NewRequest(http.MethodPost, "/process", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateManualEventEndpoint(t *testing.T) {
	validReq := domain.ManualEventRequest{
		Project:    "demo",
		VideoURL:   "https://x/v.mp4",
		EventName:  "Jump",
		Start:      1.0,
		Duration:   1.0,
		TextPrompt: "short grunt",
	}

	t.Run("success wraps the created event", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		pipeline.On("CreateManualEvent", mock.Anything, validReq).Return(&domain.EventResult{
			ID:         "id-1",
			Name:       "Jump",
			Variations: []string{"https://audio/x"},
			Prompts:    []string{"short grunt"},
		}, nil)

		rec := postJSON(t, handler, "/create-manual-event", validReq)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		event := body["event"].(map[string]any)
		assert.Equal(t, "id-1", event["id"])
	})

	t.Run("provider errors are forwarded with their status", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		pipeline.On("CreateManualEvent", mock.Anything, mock.Anything).
			Return(nil, &domain.ProviderError{Provider: "mirelo", Status: 402, Message: "quota exceeded"})

		rec := postJSON(t, handler, "/create-manual-event", validReq)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["detail"], "quota exceeded")
	})

	t.Run("unresolved audio is a 500", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		pipeline.On("CreateManualEvent", mock.Anything, mock.Anything).Return(nil, domain.ErrNoAudio)

		rec := postJSON(t, handler, "/create-manual-event", validReq)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRegenerateVariationEndpoint(t *testing.T) {
	validReq := domain.RegenerateRequest{
		EventID:        "id-1",
		VariationIndex: 1,
		VideoURL:       "https://x/v.mp4",
		Start:          1.0,
		Duration:       1.0,
		TextPrompt:     "brighter swing",
	}

	t.Run("success returns the new variation", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		pipeline.On("RegenerateVariation", mock.Anything, validReq).Return(&domain.Variation{
			Index:  1,
			URL:    "https://audio/new",
			Prompt: "brighter swing",
			Source: domain.SourcePrimary,
		}, nil)

		rec := postJSON(t, handler, "/regenerate-variation", validReq)

		assert.Equal(t, http.StatusOK, rec.Code)
		variation := decodeBody(t, rec)["variation"].(map[string]any)
		assert.Equal(t, float64(1), variation["index"])
		assert.Equal(t, "https://audio/new", variation["url"])
		assert.Equal(t, "brighter swing", variation["prompt"])
	})

	t.Run("unknown event id is a 404", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		pipeline.On("RegenerateVariation", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		rec := postJSON(t, handler, "/regenerate-variation", validReq)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("out of range index is rejected before the pipeline runs", func(t *testing.T) {
		pipeline := new(MockPipeline)
		handler := NewHandler(pipeline).Routes("")

		badReq := validReq
		badReq.VariationIndex = 5
		rec := postJSON(t, handler, "/regenerate-variation", badReq)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		pipeline.AssertNotCalled(t, "RegenerateVariation", mock.Anything, mock.Anything)
	})
}

func TestHealthEndpoint(t *testing.T) {
	handler := NewHandler(new(MockPipeline)).Routes("")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
