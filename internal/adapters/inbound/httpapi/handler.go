package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/ports"
)

type Handler struct {
	pipeline ports.PipelineUseCase
}

func NewHandler(pipeline ports.PipelineUseCase) *Handler {
	return &Handler{pipeline: pipeline}
}

// Routes builds the service router. mediaDir, when non-empty, is served
// read-only under /media so fallback audio URLs resolve.
func (h *Handler) Routes(mediaDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Post("/process", h.processVideo)
	r.Post("/create-manual-event", h.createManualEvent)
	r.Post("/regenerate-variation", h.regenerateVariation)
	r.Get("/healthz", h.health)

	if mediaDir != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))
	}

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) processVideo(w http.ResponseWriter, r *http.Request) {
	var req domain.VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.URL == "" || req.Project == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("url and project are required"))
		return
	}

	result, err := h.pipeline.Process(r.Context(), req)
	if err != nil {
		// The bulk path exposes a single generic failure regardless of
		// whether the download or the extraction broke.
		log.Printf("❌ Pipeline run failed for project %q: %v", req.Project, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("Analysis failed"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "success",
		"data":             result.Events,
		"wwise_import_map": result.WwiseImportMap,
	})
}

func (h *Handler) createManualEvent(w http.ResponseWriter, r *http.Request) {
	var req domain.ManualEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Project == "" || req.VideoURL == "" || req.EventName == "" || req.TextPrompt == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("project, video_url, event_name and text_prompt are required"))
		return
	}

	event, err := h.pipeline.CreateManualEvent(r.Context(), req)
	if err != nil {
		writeSynthesisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"event":  event,
	})
}

func (h *Handler) regenerateVariation(w http.ResponseWriter, r *http.Request) {
	var req domain.RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.EventID == "" || req.VideoURL == "" || req.TextPrompt == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("event_id, video_url and text_prompt are required"))
		return
	}
	if req.VariationIndex < 0 || req.VariationIndex >= domain.VariationsPerEvent {
		writeJSON(w, http.StatusBadRequest, errorBody("variation_index out of range"))
		return
	}

	variation, err := h.pipeline.RegenerateVariation(r.Context(), req)
	if err != nil {
		writeSynthesisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"variation": map[string]any{
			"index":  variation.Index,
			"url":    variation.URL,
			"prompt": variation.Prompt,
		},
	})
}

// writeSynthesisError maps single-event pipeline errors: provider errors
// keep their upstream status, a missing target is 404, everything else
// is a 500.
func writeSynthesisError(w http.ResponseWriter, err error) {
	var providerErr *domain.ProviderError
	switch {
	case errors.As(err, &providerErr):
		writeJSON(w, providerErr.Status, errorBody(providerErr.Error()))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("event not found"))
	case errors.Is(err, domain.ErrNoAudio):
		writeJSON(w, http.StatusInternalServerError, errorBody("no audio URL resolved"))
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
	}
}

func errorBody(detail string) map[string]string {
	return map[string]string{"detail": detail}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️ Failed to write JSON response: %v", err)
	}
}
