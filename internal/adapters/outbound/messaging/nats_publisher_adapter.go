package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/ports"
)

const assetsReadySubject = "sfx.assets.ready"

type NatsPublisherAdapter struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

type assetsReadyEvent struct {
	Project    string   `json:"project"`
	EventCount int      `json:"event_count"`
	EventNames []string `json:"event_names"`
}

var _ ports.EventPublisher = (*NatsPublisherAdapter)(nil)

// NewNatsPublisherAdapter notifies downstream consumers (frontend sync,
// middleware importers) that a project's assets finished rendering.
func NewNatsPublisherAdapter(url string) (*NatsPublisherAdapter, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("error getting JetStream context: %w", err)
	}

	return &NatsPublisherAdapter{
		nc: nc,
		js: js,
	}, nil
}

func (a *NatsPublisherAdapter) PublishAssetsReady(ctx context.Context, project string, events []domain.EventResult) error {
	names := make([]string, 0, len(events))
	for _, ev := range events {
		names = append(names, ev.Name)
	}

	data, err := json.Marshal(assetsReadyEvent{
		Project:    project,
		EventCount: len(events),
		EventNames: names,
	})
	if err != nil {
		return fmt.Errorf("error marshaling event: %w", err)
	}

	if _, err := a.js.Publish(assetsReadySubject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("error publishing to %s: %w", assetsReadySubject, err)
	}

	log.Printf("📤 Published %s for project %q (%d events)", assetsReadySubject, project, len(events))
	return nil
}

// Close drains the connection so in-flight publishes finish before the
// process exits. Safe to call when no connection was established.
func (a *NatsPublisherAdapter) Close() error {
	if a.nc == nil || a.nc.IsClosed() {
		return nil
	}
	return a.nc.Drain()
}
