package kafka

import (
	"context"
	"encoding/json"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/mediator/cqrs/event"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/mask"
)

// Forwarder ships published domain events to a Kafka topic as JSON-encoded
// envelopes. It is attached to a dispatcher as an ordinary event subscriber.
type Forwarder struct {
	producer *Producer
	logger   logger.Logger
}

// NewForwarder creates a Forwarder on top of an existing producer. A nil
// logger disables debug output.
func NewForwarder(producer *Producer, log logger.Logger) *Forwarder {
	if log == nil {
		log = logger.NewNop()
	}
	return &Forwarder{
		producer: producer,
		logger:   log.Named("kafka.forward"),
	}
}

// SubscriberFor returns an event subscriber that wraps each event of type E
// in an envelope under the given name and produces it to the forwarder's
// topic. The envelope id becomes the message key, so consumers can
// deduplicate redelivered events.
func SubscriberFor[E event.Event](f *Forwarder, name string) event.SubscriberFunc[E] {
	return func(ctx context.Context, e E) error {
		envelope := event.NewEnvelope(ctx, name, e)

		value, err := json.Marshal(envelope)
		if err != nil {
			return errx.Wrap(err, errx.WithDetails(errx.D{"event": name}))
		}

		msg := &Message{
			Key:     []byte(envelope.EventID),
			Value:   value,
			Headers: envelope.Meta,
		}

		if err = f.producer.SendMessage(ctx, msg); err != nil {
			return errx.Wrap(err, errx.WithDetails(errx.D{
				"event":    name,
				"event_id": envelope.EventID,
			}))
		}

		f.logger.WithContext(ctx).
			With("event", name).
			With("event_id", envelope.EventID).
			With("payload", mask.Fields(e)).
			Debug("event forwarded")

		return nil
	}
}

// Close closes the underlying producer.
func (f *Forwarder) Close() error {
	return f.producer.Close()
}
