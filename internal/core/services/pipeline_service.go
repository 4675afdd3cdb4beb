package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/export"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/ports"
)

var (
	pipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sfx_pipeline_duration_seconds",
		Help:    "Duration of full pipeline runs in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	eventsDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sfx_events_detected_total",
		Help: "Total number of gameplay events detected by the extractor",
	})

	variationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sfx_variations_total",
		Help: "Total number of variation slots resolved, by source",
	}, []string{"source"})
)

type pipelineService struct {
	fetcher   ports.VideoFetcher
	extractor ports.EventExtractor
	primary   ports.PrimarySynthesizer
	fallback  ports.FallbackSynthesizer // nil disables the fallback path
	repo      ports.AssetRepository
	blobs     ports.BlobStore
	publisher ports.EventPublisher // nil disables completion events

	synthConcurrency int
}

// NewPipelineService wires the full video-to-sfx pipeline. fallback and
// publisher may be nil; everything else is required.
func NewPipelineService(
	fetcher ports.VideoFetcher,
	extractor ports.EventExtractor,
	primary ports.PrimarySynthesizer,
	fallback ports.FallbackSynthesizer,
	repo ports.AssetRepository,
	blobs ports.BlobStore,
	publisher ports.EventPublisher,
	synthConcurrency int,
) ports.PipelineUseCase {
	if synthConcurrency <= 0 {
		synthConcurrency = domain.VariationsPerEvent
	}
	return &pipelineService{
		fetcher:          fetcher,
		extractor:        extractor,
		primary:          primary,
		fallback:         fallback,
		repo:             repo,
		blobs:            blobs,
		publisher:        publisher,
		synthConcurrency: synthConcurrency,
	}
}

// Process runs the bulk pipeline: fetch, detect, synthesize three
// variations per event, persist, notify, format. It favors availability:
// per-variation and persistence failures never abort the run, only a
// fetch or extraction failure does.
func (s *pipelineService) Process(ctx context.Context, req domain.VideoRequest) (*domain.PipelineResult, error) {
	start := time.Now()
	status := "success"
	defer func() {
		pipelineDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}()

	policy := domain.PolicyByName(req.Policy)
	log.Printf("🎬 Processing %q for project %q (policy %s)", req.URL, req.Project, policy.Name)

	video, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		log.Printf("❌ Video download failed: %v", err)
		status = "error"
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}

	candidates, err := s.extractor.DetectEvents(ctx, video, policy)
	if err != nil {
		log.Printf("❌ Event extraction failed: %v", err)
		status = "error"
		return nil, domain.ErrAnalysisFailed
	}
	if len(candidates) == 0 {
		status = "error"
		return nil, domain.ErrAnalysisFailed
	}
	eventsDetectedTotal.Add(float64(len(candidates)))

	results := make([]domain.EventResult, 0, len(candidates))
	for _, ev := range candidates {
		variations := s.synthesizeVariations(ctx, req, ev)

		rec := &domain.AssetRecord{
			Project:    req.Project,
			EventName:  ev.Name,
			Timestamp:  ev.Start,
			Variations: wireURLs(variations),
			Prompts:    ev.Prompts,
		}
		// Persistence is best-effort in the bulk path.
		if err := s.repo.Insert(ctx, rec); err != nil {
			log.Printf("⚠️ Failed to persist asset for event %q: %v", ev.Name, err)
		}

		results = append(results, domain.EventResult{
			ID:         rec.ID,
			Name:       ev.Name,
			Start:      ev.Start,
			Duration:   ev.Duration,
			Prompts:    ev.Prompts,
			Variations: wireURLs(variations),
		})
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAssetsReady(ctx, req.Project, results); err != nil {
			log.Printf("⚠️ Failed to publish completion event: %v", err)
		}
	}

	log.Printf("✅ Processed %d events for project %q", len(results), req.Project)
	return &domain.PipelineResult{
		Events:         results,
		WwiseImportMap: export.WwiseImportMap(req.Project, results),
	}, nil
}

// synthesizeVariations resolves the three slots of one event under a
// bounded concurrency group. Slot order in the result is by index
// regardless of completion order.
func (s *pipelineService) synthesizeVariations(ctx context.Context, req domain.VideoRequest, ev domain.EventCandidate) []domain.Variation {
	out := make([]domain.Variation, domain.VariationsPerEvent)

	g := new(errgroup.Group)
	g.SetLimit(s.synthConcurrency)
	for i := range out {
		g.Go(func() error {
			out[i] = s.resolveVariation(ctx, req, ev, i)
			return nil
		})
	}
	g.Wait()

	return out
}

// resolveVariation tries the primary provider once, then the fallback
// once; when both fail the slot stays unresolved. Errors are logged,
// never propagated.
func (s *pipelineService) resolveVariation(ctx context.Context, req domain.VideoRequest, ev domain.EventCandidate, index int) domain.Variation {
	prompt := ev.Prompt(index)

	url, err := s.primary.Synthesize(ctx, domain.SynthesisRequest{
		VideoURL: req.URL,
		Start:    ev.Start,
		Duration: ev.Duration,
		Prompt:   prompt,
		Seed:     domain.VariationSeed(index),
	})
	if err == nil && url != "" {
		variationsTotal.WithLabelValues(string(domain.SourcePrimary)).Inc()
		return domain.Variation{Index: index, URL: url, Prompt: prompt, Source: domain.SourcePrimary}
	}
	log.Printf("⚠️ Primary synthesis failed for %q slot %d: %v", ev.Name, index, err)

	if s.fallback == nil {
		variationsTotal.WithLabelValues(string(domain.SourceUnresolved)).Inc()
		return domain.UnresolvedVariation(index, prompt)
	}

	audio, err := s.fallback.SynthesizeText(ctx, prompt, ev.Duration)
	if err != nil {
		log.Printf("⚠️ Fallback synthesis failed for %q slot %d: %v", ev.Name, index, err)
		variationsTotal.WithLabelValues(string(domain.SourceUnresolved)).Inc()
		return domain.UnresolvedVariation(index, prompt)
	}

	name := fmt.Sprintf("%s/%s_fallback_%d.mp3", req.Project, strings.ReplaceAll(ev.Name, " ", "_"), index)
	publicURL, err := s.blobs.Put(ctx, name, audio, "audio/mpeg")
	if err != nil {
		log.Printf("⚠️ Failed to store fallback audio for %q slot %d: %v", ev.Name, index, err)
		variationsTotal.WithLabelValues(string(domain.SourceUnresolved)).Inc()
		return domain.UnresolvedVariation(index, prompt)
	}

	variationsTotal.WithLabelValues(string(domain.SourceFallback)).Inc()
	return domain.Variation{Index: index, URL: publicURL, Prompt: prompt, Source: domain.SourceFallback}
}

// CreateManualEvent renders and persists a single user-specified event
// with one variation. Unlike the bulk path, any provider or persistence
// failure aborts the operation.
func (s *pipelineService) CreateManualEvent(ctx context.Context, req domain.ManualEventRequest) (*domain.EventResult, error) {
	url, err := s.primary.Synthesize(ctx, domain.SynthesisRequest{
		VideoURL: req.VideoURL,
		Start:    req.Start,
		Duration: req.Duration,
		Prompt:   req.TextPrompt,
		Seed:     domain.VariationSeed(0),
	})
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, domain.ErrNoAudio
	}

	rec := &domain.AssetRecord{
		Project:    req.Project,
		EventName:  req.EventName,
		Timestamp:  req.Start,
		Variations: []string{url},
		Prompts:    []string{req.TextPrompt},
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persisting event %q: %w", req.EventName, err)
	}

	log.Printf("✅ Manual event %q created (%s)", req.EventName, rec.ID)
	return &domain.EventResult{
		ID:         rec.ID,
		Name:       req.EventName,
		Start:      req.Start,
		Duration:   req.Duration,
		Prompts:    []string{req.TextPrompt},
		Variations: []string{url},
	}, nil
}

// RegenerateVariation re-renders one slot of a persisted event and
// overwrites it in place, leaving the other slots untouched.
func (s *pipelineService) RegenerateVariation(ctx context.Context, req domain.RegenerateRequest) (*domain.Variation, error) {
	if req.VariationIndex < 0 || req.VariationIndex >= domain.VariationsPerEvent {
		return nil, fmt.Errorf("variation index %d out of range", req.VariationIndex)
	}

	url, err := s.primary.Synthesize(ctx, domain.SynthesisRequest{
		VideoURL: req.VideoURL,
		Start:    req.Start,
		Duration: req.Duration,
		Prompt:   req.TextPrompt,
		Seed:     domain.VariationSeed(req.VariationIndex),
	})
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, domain.ErrNoAudio
	}

	if err := s.repo.UpdateVariation(ctx, req.EventID, req.VariationIndex, url, req.TextPrompt); err != nil {
		return nil, err
	}

	log.Printf("✅ Regenerated variation %d of event %s", req.VariationIndex, req.EventID)
	return &domain.Variation{
		Index:  req.VariationIndex,
		URL:    url,
		Prompt: req.TextPrompt,
		Source: domain.SourcePrimary,
	}, nil
}

func wireURLs(variations []domain.Variation) []string {
	urls := make([]string, len(variations))
	for i, v := range variations {
		urls[i] = v.WireURL()
	}
	return urls
}
