package domain

import "time"

const (
	// UnresolvedURL is the value stored in a variation slot when neither
	// provider produced audio. The frontend checks for this exact literal.
	UnresolvedURL = "const"

	// VariationsPerEvent is the number of audio renderings requested per event.
	VariationsPerEvent = 3
)

type VariationSource string

const (
	SourcePrimary    VariationSource = "primary"
	SourceFallback   VariationSource = "fallback"
	SourceUnresolved VariationSource = "unresolved"
)

// Variation is the outcome of one synthesis slot. Callers must check
// Resolved before treating URL as playable audio.
type Variation struct {
	Index  int
	URL    string
	Prompt string
	Source VariationSource
}

func (v Variation) Resolved() bool {
	return v.Source != SourceUnresolved && v.URL != ""
}

// WireURL is the persisted/serialized form of the slot: the real URL when
// resolved, the fixed sentinel otherwise. Never empty, never null.
func (v Variation) WireURL() string {
	if !v.Resolved() {
		return UnresolvedURL
	}
	return v.URL
}

func UnresolvedVariation(index int, prompt string) Variation {
	return Variation{Index: index, Prompt: prompt, Source: SourceUnresolved}
}

// EventCandidate is one detected gameplay moment as returned by the
// extraction model, before synthesis.
type EventCandidate struct {
	Name     string   `json:"name"`
	Start    float64  `json:"start"`
	Duration float64  `json:"duration"`
	Prompts  []string `json:"prompts"`
}

// Prompt returns the prompt for a variation slot, empty when missing.
func (c EventCandidate) Prompt(i int) string {
	if i < 0 || i >= len(c.Prompts) {
		return ""
	}
	return c.Prompts[i]
}

// EventResult aggregates one candidate with its synthesized variations.
// Variations holds wire URLs (real URL or the sentinel), always exactly
// VariationsPerEvent entries for pipeline-produced events.
type EventResult struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name"`
	Start      float64  `json:"start"`
	Duration   float64  `json:"duration"`
	Prompts    []string `json:"prompts"`
	Variations []string `json:"variations"`
}

// AssetRecord is the persisted row for one event. ID is assigned on insert.
type AssetRecord struct {
	ID         string    `json:"id"`
	Project    string    `json:"project"`
	EventName  string    `json:"event_name"`
	Timestamp  float64   `json:"timestamp"`
	Variations []string  `json:"variations"`
	Prompts    []string  `json:"prompts"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VideoRequest drives one full pipeline run.
type VideoRequest struct {
	URL     string `json:"url"`
	Project string `json:"project"`
	Policy  string `json:"policy,omitempty"`
}

// SynthesisRequest is one call to the video-to-audio provider.
type SynthesisRequest struct {
	VideoURL string  `json:"video_url"`
	Start    float64 `json:"start_offset"`
	Duration float64 `json:"duration"`
	Prompt   string  `json:"text_prompt"`
	Seed     int     `json:"seed"`
}

// VariationSeed is the deterministic seed for a variation slot.
func VariationSeed(index int) int {
	return index*100 + 55
}

// ManualEventRequest creates a single event bypassing extraction.
type ManualEventRequest struct {
	Project    string  `json:"project"`
	VideoURL   string  `json:"video_url"`
	EventName  string  `json:"event_name"`
	Start      float64 `json:"start"`
	Duration   float64 `json:"duration"`
	TextPrompt string  `json:"text_prompt"`
}

// RegenerateRequest re-renders one variation of a persisted event.
type RegenerateRequest struct {
	EventID        string  `json:"event_id"`
	VariationIndex int     `json:"variation_index"`
	VideoURL       string  `json:"video_url"`
	Start          float64 `json:"start"`
	Duration       float64 `json:"duration"`
	TextPrompt     string  `json:"text_prompt"`
}

// PipelineResult is the payload of a successful pipeline run.
type PipelineResult struct {
	Events         []EventResult `json:"data"`
	WwiseImportMap string        `json:"wwise_import_map"`
}
