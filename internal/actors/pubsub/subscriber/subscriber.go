package subscriber

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/actors/pubsub/codec"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
)

// SubscriberArgs contain the mandatory arguments to build a subscriber.
type SubscriberArgs struct {
	// Subscription is a pubsub subscription
	Subscription *pubsub.Subscription

	// Handler is a lifecycle event handler
	Handler ports.LifecycleEventHandler
}

// Subscriber is a pubsub async subscriber
type Subscriber struct {
	subscription *pubsub.Subscription
	handler      ports.LifecycleEventHandler
}

// NewSubscriber creates a subscriber
func NewSubscriber(args SubscriberArgs) *Subscriber {
	return &Subscriber{
		subscription: args.Subscription,
		handler:      args.Handler,
	}
}

// Consume starts the subscriber. This is a blocking method and should be started in it's own go-routine.
// The way to terminate the method is to cancel the context in input.
func (s *Subscriber) Consume(ctx context.Context) error {
	if err := s.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if s.process(ctx, msg.ID, msg.Data) {
			msg.Ack()
		} else {
			msg.Nack()
		}
	}); err != nil {
		return fmt.Errorf("error receiving messages from subscription: %w", err)
	}
	return nil
}

// process decodes and handles one message payload. It returns whether the message must be acknowledged.
// Malformed payloads are acknowledged since a redelivery would never succeed.
func (s *Subscriber) process(ctx context.Context, msgID string, data []byte) bool {
	event, err := codec.Decode(data)
	if err != nil {
		log.WithError(err).WithField("message-id", msgID).Error("dropping undecodable lifecycle event")
		return true
	}

	if err := s.handler.Handle(ctx, event); err != nil {
		log.WithError(err).
			WithField("message-id", msgID).
			WithField("event-id", event.ID).
			Error("error in lifecycle event handler")
		return false
	}
	return true
}
