package service

import (
	"context"

	"ats-assistant-be/internal/pkg/logger"
	"ats-assistant-be/pkg/events"
	"ats-assistant-be/pkg/jsonx"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process event topic and forwards each event
// to the external sink (NATS JetStream). Without a sink events are only
// logged.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	sink       events.Publisher
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	sink events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		sink:       sink,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.BaseEvent
	if err := jsonx.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.sink == nil {
		cs.logger.Debug("CONSUMER", "Assistant event", map[string]interface{}{
			"type": event.Type,
			"data": event.Data,
		})
		msg.Ack()
		return
	}

	if err := cs.sink.Publish(ctx, event); err != nil {
		// gochannel redelivers a nacked message at once, so a broker outage
		// would spin here; the event is dropped instead.
		cs.logger.Warn("CONSUMER", "Failed to forward event, dropping it", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
	msg.Ack()
}
