package ports

import (
	"context"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
)

// PipelineUseCase is the Inbound Port
type PipelineUseCase interface {
	Process(ctx context.Context, req domain.VideoRequest) (*domain.PipelineResult, error)
	CreateManualEvent(ctx context.Context, req domain.ManualEventRequest) (*domain.EventResult, error)
	RegenerateVariation(ctx context.Context, req domain.RegenerateRequest) (*domain.Variation, error)
}

// VideoFetcher is the Outbound Port for retrieving raw video bytes
type VideoFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// EventExtractor is the Outbound Port for the multimodal detection model
type EventExtractor interface {
	DetectEvents(ctx context.Context, video []byte, policy domain.ExtractionPolicy) ([]domain.EventCandidate, error)
}

// PrimarySynthesizer is the Outbound Port for the video-conditioned
// audio provider. It returns the URL of the rendered clip.
type PrimarySynthesizer interface {
	Synthesize(ctx context.Context, req domain.SynthesisRequest) (string, error)
}

// FallbackSynthesizer is the Outbound Port for the text-conditioned
// provider used when the primary fails. It returns raw audio bytes.
type FallbackSynthesizer interface {
	SynthesizeText(ctx context.Context, prompt string, duration float64) ([]byte, error)
}

// AssetRepository is the Outbound Port for asset record persistence
type AssetRepository interface {
	Insert(ctx context.Context, rec *domain.AssetRecord) error
	UpdateVariation(ctx context.Context, id string, index int, url, prompt string) error
}

// BlobStore is the Outbound Port for fallback audio bytes; Put returns
// a publicly reachable URL for the stored object.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// EventPublisher is the Outbound Port for best-effort completion
// notifications.
type EventPublisher interface {
	PublishAssetsReady(ctx context.Context, project string, events []domain.EventResult) error
}
