// Package codec is the wire format of lifecycle events on the message bus: a protobuf Struct carrying
// the event attributes. The resource and type are duplicated as message attributes so that
// subscriptions can filter on them.
package codec

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

const (
	AttributeResource = "resource"
	AttributeType     = "type"
)

// ErrMalformedEvent is returned when a message does not carry a complete lifecycle event.
var ErrMalformedEvent = errors.New("malformed lifecycle event")

// Encode serializes the event.
func Encode(event model.LifecycleEvent) ([]byte, error) {
	fields := map[string]any{
		"id":         event.ID,
		"resource":   event.Resource,
		"entityId":   event.EntityID,
		"type":       string(event.Type),
		"toStatus":   string(event.ToStatus),
		"occurredAt": event.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if event.FromStatus != "" {
		fields["fromStatus"] = string(event.FromStatus)
	}
	if event.ActorID != "" {
		fields["actorId"] = event.ActorID
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

// Attributes returns the message attributes of the event.
func Attributes(event model.LifecycleEvent) map[string]string {
	return map[string]string{
		AttributeResource: event.Resource,
		AttributeType:     string(event.Type),
	}
}

// Decode parses a message payload produced by Encode.
func Decode(data []byte) (model.LifecycleEvent, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return model.LifecycleEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	fields := s.GetFields()
	str := func(key string) string {
		return fields[key].GetStringValue()
	}

	event := model.LifecycleEvent{
		ID:         str("id"),
		Resource:   str("resource"),
		EntityID:   str("entityId"),
		Type:       model.EventType(str("type")),
		FromStatus: model.EntityStatus(str("fromStatus")),
		ToStatus:   model.EntityStatus(str("toStatus")),
		ActorID:    str("actorId"),
	}
	if event.ID == "" || event.Resource == "" || event.EntityID == "" || event.Type == "" {
		return model.LifecycleEvent{}, fmt.Errorf("%w: missing identifying attributes", ErrMalformedEvent)
	}
	if raw := str("occurredAt"); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return model.LifecycleEvent{}, fmt.Errorf("%w: occurredAt: %v", ErrMalformedEvent, err)
		}
		event.OccurredAt = at.UTC()
	}
	return event, nil
}
