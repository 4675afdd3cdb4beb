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

type mireloSynthesizer struct {
	apiKey string
	url    string
	client *http.Client
}

// NewMireloSynthesizer renders a clip from the source video and one text
// prompt via the Mirelo video-to-sfx API.
func NewMireloSynthesizer(apiKey, url string, timeout time.Duration) ports.PrimarySynthesizer {
	return &mireloSynthesizer{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type mireloResponse struct {
	AudioURL string `json:"audio_url"`
}

func (m *mireloSynthesizer) Synthesize(ctx context.Context, req domain.SynthesisRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding synthesis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", m.apiKey)

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling mirelo: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading mirelo response: %w", err)
	}

	// Both 200 and 201 count as success; the provider has shipped both.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &domain.ProviderError{
			Provider: "mirelo",
			Status:   resp.StatusCode,
			Message:  truncate(string(respBody), 200),
		}
	}

	var parsed mireloResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decoding mirelo response: %w", err)
	}
	if parsed.AudioURL == "" {
		return "", fmt.Errorf("mirelo response missing audio_url: %w", domain.ErrNoAudio)
	}
	return parsed.AudioURL, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
