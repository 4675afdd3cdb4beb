package synthesizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/ports"
)

const (
	// Fallback clips cannot be shorter than the provider's minimum.
	minFallbackDuration = 0.5

	promptInfluence = 0.5
)

type elevenLabsFallback struct {
	apiKey string
	url    string
	client *http.Client
}

// NewElevenLabsFallback generates a sound effect from text alone via the
// ElevenLabs sound-generation API, returning raw mp3 bytes.
func NewElevenLabsFallback(apiKey, url string, timeout time.Duration) ports.FallbackSynthesizer {
	return &elevenLabsFallback{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type soundGenerationRequest struct {
	Text            string  `json:"text"`
	DurationSeconds float64 `json:"duration_seconds"`
	PromptInfluence float64 `json:"prompt_influence"`
}

func (e *elevenLabsFallback) SynthesizeText(ctx context.Context, prompt string, duration float64) ([]byte, error) {
	if duration < minFallbackDuration {
		duration = minFallbackDuration
	}

	body, err := json.Marshal(soundGenerationRequest{
		Text:            prompt,
		DurationSeconds: duration,
		PromptInfluence: promptInfluence,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding sound-generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling elevenlabs: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading elevenlabs response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ProviderError{
			Provider: "elevenlabs",
			Status:   resp.StatusCode,
			Message:  truncate(string(respBody), 200),
		}
	}
	return respBody, nil
}
