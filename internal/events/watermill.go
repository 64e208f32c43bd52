package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// WatermillPublisher publishes events as JSON messages on one topic.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher wraps any watermill publisher.
func NewWatermillPublisher(pub message.Publisher, topic string) *WatermillPublisher {
	return &WatermillPublisher{publisher: pub, topic: topic}
}

var _ Publisher = (*WatermillPublisher)(nil)

// Publish encodes e and sends it with event_type and courrier_id metadata.
func (p *WatermillPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := message.NewMessage(watermill.NewULID(), payload)
	msg.Metadata.Set(MetadataEventType, string(e.Type))
	msg.Metadata.Set(MetadataCourrierID, e.CourrierID)
	msg.SetContext(ctx)

	return p.publisher.Publish(p.topic, msg)
}

// NewGoChannel creates the in-process pub/sub used when no broker is deployed.
// The same instance serves as publisher and subscriber.
func NewGoChannel(outputBuffer int, logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            int64(outputBuffer),
			Persistent:                     false,
			BlockPublishUntilSubscriberAck: false,
		},
		watermill.NewSlogLogger(logger),
	)
}

// Decode reads an event back from a message.
func Decode(msg *message.Message) (Event, error) {
	var e Event
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return Event{}, fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}
	return e, nil
}

// RunAuditLog consumes topic and writes one log line per event until ctx is
// done. Undecodable messages are logged and acknowledged so they do not loop.
func RunAuditLog(ctx context.Context, sub message.Subscriber, topic string, logger *slog.Logger) error {
	messages, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}

	go func() {
		for msg := range messages {
			e, err := Decode(msg)
			if err != nil {
				logger.Error("event_decode_failed", "component", "events", "message_id", msg.UUID, "error", err.Error())
				msg.Ack()
				continue
			}
			logger.Info("courrier_event",
				"component", "events",
				"event_type", string(e.Type),
				"courrier_id", e.CourrierID,
				"number", e.Number,
				"node_id", e.NodeID,
				"action_type", string(e.ActionType),
				"version", e.Version,
			)
			msg.Ack()
		}
	}()
	return nil
}
