package model

import "time"

// EventType is the kind of a lifecycle event.
type EventType string

const (
	EventCreated       EventType = "CREATED"
	EventUpdated       EventType = "UPDATED"
	EventStatusChanged EventType = "STATUS_CHANGED"
)

// LifecycleEvent collects an entity change. It can represent creation, update and status transition.
type LifecycleEvent struct {
	// ID is the event id.
	ID string `json:"id"`

	// Resource is the resource name (e.g. "person").
	Resource string `json:"resource"`

	// EntityID is the id of the changed entity.
	EntityID string `json:"entityId"`

	// Type is the kind of change.
	Type EventType `json:"type"`

	// FromStatus is the status before the change. Empty on creations.
	FromStatus EntityStatus `json:"fromStatus,omitempty"`

	// ToStatus is the status after the change.
	ToStatus EntityStatus `json:"toStatus"`

	// ActorID is the user that performed the change, when known.
	ActorID string `json:"actorId,omitempty"`

	// OccurredAt is the server time of the change.
	OccurredAt time.Time `json:"occurredAt"`
}

// AuditEvent is a LifecycleEvent as recorded in the audit trail.
type AuditEvent struct {
	LifecycleEvent

	// RecordedAt is the time at which the event reached the audit trail.
	RecordedAt time.Time `json:"recordedAt"`
}

// AuditFilter selects audit events.
type AuditFilter struct {
	// Resource restricts to a resource name. Zero-value will be ignored as filter.
	Resource string

	// EntityID restricts to an entity. Zero-value will be ignored as filter.
	EntityID string

	Page  int
	Limit int
}
