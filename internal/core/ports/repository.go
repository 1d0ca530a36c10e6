package ports

import (
	"context"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// EntityStore is the persistence port of one resource. E is a pointer to the resource type.
//
// Stores report a missing (or out-of-scope) entity with model.ErrNotFound and a violated scoped
// uniqueness constraint with model.ErrConflict. Every other error is an infrastructure failure.
type EntityStore[E model.Entity] interface {
	// Insert durably saves a new entity. It assigns the id and the creation/update timestamps.
	Insert(ctx context.Context, entity E) error

	// FindByID returns the entity. Deleted entities are returned only when includeDeleted is set.
	FindByID(ctx context.Context, id string, includeDeleted bool) (E, error)

	// Exists reports whether a non-deleted entity other than query.ExcludeID holds the value.
	Exists(ctx context.Context, query UniqueQuery) (bool, error)

	// Update applies the patch to a non-deleted entity and returns its new state.
	Update(ctx context.Context, id string, patch model.Patch) (E, error)

	// ChangeStatus atomically moves the entity to change.Status, maintaining the deletion bookkeeping.
	// Changed is false when the entity already had the target status; it is then returned untouched.
	ChangeStatus(ctx context.Context, id string, change model.StatusChange) (entity E, changed bool, err error)

	// List returns the page window of the entities matching the query and the total number of matches.
	List(ctx context.Context, query model.ListQuery) ([]E, int64, error)
}

// UniqueQuery looks up a scoped-unique value.
type UniqueQuery struct {
	// Field is the attribute name.
	Field string

	// Value is the normalized value.
	Value string

	// ExcludeID is an entity id to ignore. Zero-value will be ignored.
	ExcludeID string
}

// AuditRepository is the persistence port of the audit trail.
type AuditRepository interface {
	// SaveEvent appends the event. Saving an already recorded event id is a no-op.
	SaveEvent(ctx context.Context, event model.LifecycleEvent) error

	// ListEvents lists audit events, most recent first.
	ListEvents(ctx context.Context, filter model.AuditFilter) (*model.Page[model.AuditEvent], error)
}
