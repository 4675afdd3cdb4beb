package extractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/ports"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

type geminiExtractor struct {
	apiKey   string
	model    string
	endpoint string // format string taking the model name
	client   *http.Client
}

// NewGeminiExtractor detects gameplay events by sending the video inline
// to the Gemini generateContent API together with a policy directive.
func NewGeminiExtractor(apiKey, model string, timeout time.Duration) ports.EventExtractor {
	return &geminiExtractor{
		apiKey:   apiKey,
		model:    model,
		endpoint: geminiEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"response_mime_type"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *geminiExtractor) DetectEvents(ctx context.Context, video []byte, policy domain.ExtractionPolicy) ([]domain.EventCandidate, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &inlineData{
					MimeType: "video/mp4",
					Data:     base64.StdEncoding.EncodeToString(video),
				}},
				{Text: policy.Directive},
			},
		}},
		GenerationConfig: generationConfig{
			Temperature:      0.2,
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding gemini request: %w", err)
	}

	url := fmt.Sprintf(g.endpoint+"?key=%s", g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("🔎 Analyzing video with policy %q (%d bytes inline)", policy.Name, len(video))

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	return parseEvents(parsed.Candidates[0].Content.Parts[0].Text, policy)
}

// parseEvents decodes the model's JSON array and normalizes candidates
// to the policy's timing bounds. Anything that does not decode to the
// schema is an extraction failure.
func parseEvents(text string, policy domain.ExtractionPolicy) ([]domain.EventCandidate, error) {
	text = stripCodeFences(text)

	var raw []domain.EventCandidate
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parsing event array: %w", err)
	}

	events := make([]domain.EventCandidate, 0, len(raw))
	for _, ev := range raw {
		if strings.TrimSpace(ev.Name) == "" || ev.Start < 0 {
			continue
		}
		ev.Duration = policy.ClampDuration(ev.Duration)
		ev.Prompts = normalizePrompts(ev.Prompts)
		events = append(events, ev)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no usable events in model output")
	}
	return events, nil
}

// normalizePrompts pads or trims to exactly one prompt per variation
// slot, repeating the last prompt when the model returned fewer.
func normalizePrompts(prompts []string) []string {
	out := make([]string, domain.VariationsPerEvent)
	for i := range out {
		switch {
		case i < len(prompts):
			out[i] = prompts[i]
		case len(prompts) > 0:
			out[i] = prompts[len(prompts)-1]
		}
	}
	return out
}

func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
