package producer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/actors/pubsub/codec"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// NewProducer creates a new producer.
func NewProducer(topic *pubsub.Topic) (*Producer, error) {
	if topic == nil {
		return nil, errors.New("topic is nil")
	}
	return &Producer{topic: topic}, nil
}

// Producer is the pubsub producer of lifecycle events. It implements ports.Sender.
type Producer struct {
	topic *pubsub.Topic
}

func (p *Producer) Send(ctx context.Context, event model.LifecycleEvent) error {
	data, err := codec.Encode(event)
	if err != nil {
		return fmt.Errorf("error encoding lifecycle event: %w", err)
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: codec.Attributes(event),
	})
	// Block until the result is returned and a server-generated
	// ID is returned for the published message.
	_, err = result.Get(ctx)
	if err != nil {
		return fmt.Errorf("pubsub: result.Get: %v", err)
	}
	return nil
}
