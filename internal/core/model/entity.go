package model

import (
	"strings"
	"time"
)

// EntityStatus is the lifecycle state shared by every persisted resource.
type EntityStatus string

const (
	// StatusActive is the default status of a newly created entity.
	StatusActive EntityStatus = "ACTIVE"

	// StatusInactive marks an entity disabled but still visible in default reads.
	StatusInactive EntityStatus = "INACTIVE"

	// StatusDeleted marks an entity logically deleted. Deleted entities are excluded from default reads.
	StatusDeleted EntityStatus = "DELETED"
)

// ParseEntityStatus parses s case-insensitively. The boolean is false for unknown values.
func ParseEntityStatus(s string) (EntityStatus, bool) {
	switch EntityStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, true
	case StatusInactive:
		return StatusInactive, true
	case StatusDeleted:
		return StatusDeleted, true
	}
	return "", false
}

// Valid reports whether s is one of the known statuses.
func (s EntityStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

// Base holds the identity and lifecycle bookkeeping common to all entities.
type Base struct {
	// ID is the opaque unique identifier assigned at creation.
	ID string `json:"id"`

	// EntityStatus is the lifecycle state of the entity.
	EntityStatus EntityStatus `json:"entityStatus"`

	// DeletedAt is set if and only if EntityStatus is DELETED.
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// DeletedBy is the id of the user who deleted the entity, when known.
	DeletedBy string `json:"deletedBy,omitempty"`

	// CreatedAt is the time at which the entity was created in the system.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the time at which the entity was last written.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta gives generic code access to the embedded Base.
func (b *Base) Meta() *Base {
	return b
}

// IsDeleted reports whether the entity is logically deleted.
func (b *Base) IsDeleted() bool {
	return b.EntityStatus == StatusDeleted
}

// Entity is implemented by pointers to every resource type embedding Base.
type Entity interface {
	Meta() *Base
}

// Attribute names of the lifecycle fields. They are shared by the core and the persistence adapters.
const (
	FieldID           = "id"
	FieldEntityStatus = "entity_status"
	FieldDeletedAt    = "deleted_at"
	FieldDeletedBy    = "deleted_by"
	FieldCreatedAt    = "created_at"
	FieldUpdatedAt    = "updated_at"
)

// IsManagedField reports whether name is maintained by the server and may not be written through an update.
func IsManagedField(name string) bool {
	switch name {
	case FieldID, "_id", FieldEntityStatus, FieldDeletedAt, FieldDeletedBy, FieldCreatedAt, FieldUpdatedAt:
		return true
	}
	return false
}

// Field is a single attribute assignment of an update patch.
type Field struct {
	// Name is the attribute name (snake_case, as persisted).
	Name string

	// Value is the new value.
	Value any
}

// Patch is an ordered list of attribute assignments.
type Patch []Field

// Set appends an assignment and returns the patch.
func (p Patch) Set(name string, value any) Patch {
	return append(p, Field{Name: name, Value: value})
}

// Lookup returns the value assigned to name, if any.
func (p Patch) Lookup(name string) (any, bool) {
	for _, f := range p {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// StatusChange describes a requested lifecycle transition.
type StatusChange struct {
	// Status is the target status.
	Status EntityStatus

	// ActorID is the id of the user performing the change. May be empty.
	ActorID string

	// At is the server time of the change.
	At time.Time
}

// NormalizeEmail trims and lower-cases an email so that equality is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
