package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/datamodeld/pkg/datamodel"
	"github.com/carverauto/datamodeld/pkg/models"
)

const (
	eventSource = "carverauto/datamodeld"
	eventType   = "com.carverauto.datamodeld.attribute.value"
)

// EventPublisher publishes attribute value CloudEvents, either to a
// JetStream stream or as plain NATS messages when no stream is configured.
type EventPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	prefix string
}

// NewEventPublisher creates a publisher rooted at the given subject
// prefix. js may be nil for plain publication.
func NewEventPublisher(nc *nats.Conn, js jetstream.JetStream, prefix string) *EventPublisher {
	return &EventPublisher{nc: nc, js: js, prefix: prefix}
}

// PublishAttributeValue publishes one attribute's current value to
// <prefix>.value.<name>.
func (p *EventPublisher) PublishAttributeValue(ctx context.Context, name string, value datamodel.Value) error {
	now := time.Now().UTC()
	subject := fmt.Sprintf("%s.value.%s", p.prefix, name)

	event := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         subject,
		Time:            &now,
		Data: models.AttributeValueEventData{
			Name:      name,
			Type:      int(value.Kind()),
			Value:     value.String(),
			Timestamp: now,
		},
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal attribute value event: %w", err)
	}

	if p.js != nil {
		if _, err := p.js.Publish(ctx, subject, eventBytes); err != nil {
			return fmt.Errorf("failed to publish attribute value event: %w", err)
		}

		return nil
	}

	if err := p.nc.Publish(subject, eventBytes); err != nil {
		return fmt.Errorf("failed to publish attribute value event: %w", err)
	}

	return nil
}

// ensureStream makes sure the configured stream exists, creating it over
// the value-event subject space when missing.
func ensureStream(ctx context.Context, js jetstream.JetStream, streamName, prefix string) error {
	if _, err := js.Stream(ctx, streamName); err == nil {
		return nil
	}

	streamConfig := jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{fmt.Sprintf("%s.value.>", prefix)},
	}

	if _, err := js.CreateOrUpdateStream(ctx, streamConfig); err != nil {
		return fmt.Errorf("failed to create or get stream %s: %w", streamName, err)
	}

	return nil
}
