package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
)

type MockVideoFetcher struct {
	mock.Mock
}

func (m *MockVideoFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockEventExtractor struct {
	mock.Mock
}

func (m *MockEventExtractor) DetectEvents(ctx context.Context, video []byte, policy domain.ExtractionPolicy) ([]domain.EventCandidate, error) {
	args := m.Called(ctx, video, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventCandidate), args.Error(1)
}

type MockPrimarySynthesizer struct {
	mock.Mock
}

func (m *MockPrimarySynthesizer) Synthesize(ctx context.Context, req domain.SynthesisRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockFallbackSynthesizer struct {
	mock.Mock
}

func (m *MockFallbackSynthesizer) SynthesizeText(ctx context.Context, prompt string, duration float64) ([]byte, error) {
	args := m.Called(ctx, prompt, duration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Insert(ctx context.Context, rec *domain.AssetRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateVariation(ctx context.Context, id string, index int, url, prompt string) error {
	args := m.Called(ctx, id, index, url, prompt)
	return args.Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, name, data, contentType)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishAssetsReady(ctx context.Context, project string, events []domain.EventResult) error {
	args := m.Called(ctx, project, events)
	return args.Error(0)
}
