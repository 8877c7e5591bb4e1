package service

import (
	"context"
	"fmt"

	"ats-assistant-be/pkg/events"
	"ats-assistant-be/pkg/jsonx"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// EventsTopic is the in-process topic carrying assistant events.
const EventsTopic = "assistant.events"

// eventBus publishes assistant events on the in-process watermill bus, so
// chat requests never wait on the external broker.
type eventBus struct {
	publisher message.Publisher
	topic     string
}

func NewEventBus(publisher message.Publisher) events.Publisher {
	return &eventBus{publisher: publisher, topic: EventsTopic}
}

func (b *eventBus) Publish(_ context.Context, event events.Event) error {
	payload, err := jsonx.Marshal(events.BaseEvent{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set("type", event.EventType())
	return b.publisher.Publish(b.topic, msg)
}
