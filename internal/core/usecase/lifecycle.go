package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/query"
)

// LifecycleArgs contains the arguments for a Lifecycle. Store and Resource are mandatory.
type LifecycleArgs[E model.Entity] struct {
	// Resource is the resource name used in errors and events (e.g. "person").
	Resource string

	// Store is the persistence port of the resource.
	Store ports.EntityStore[E]

	// Sender publishes lifecycle events. Optional.
	Sender ports.Sender

	// UniqueField is the attribute name of the scoped-unique field. Empty when the resource has none.
	UniqueField string

	// UniqueValue extracts the normalized scoped-unique value of an entity.
	UniqueValue func(E) string

	// Authorize is called with the current state of an entity before it is written. Optional.
	Authorize func(ctx context.Context, entity E) error

	// Query declares the sortable and searchable attributes of the resource.
	Query query.Spec

	// NowFunc overrides the clock. Useful for testing.
	NowFunc func() time.Time
}

// NewLifecycle creates a new Lifecycle.
func NewLifecycle[E model.Entity](args LifecycleArgs[E]) *Lifecycle[E] {
	l := &Lifecycle[E]{
		resource:    args.Resource,
		store:       args.Store,
		sender:      args.Sender,
		uniqueField: args.UniqueField,
		uniqueValue: args.UniqueValue,
		authorize:   args.Authorize,
		query:       args.Query,
		nowFunc:     args.NowFunc,
	}
	if l.nowFunc == nil {
		l.nowFunc = func() time.Time { return time.Now().UTC() }
	}
	return l
}

// Lifecycle is the soft-delete lifecycle manager of one resource. It is the only component allowed to
// change the status and deletion bookkeeping of an entity.
type Lifecycle[E model.Entity] struct {
	resource    string
	store       ports.EntityStore[E]
	sender      ports.Sender
	uniqueField string
	uniqueValue func(E) string
	authorize   func(ctx context.Context, entity E) error
	query       query.Spec
	nowFunc     func() time.Time
}

// Create persists a new ACTIVE entity after checking that no live entity holds its scoped-unique value.
func (l *Lifecycle[E]) Create(ctx context.Context, entity E) error {
	meta := entity.Meta()
	meta.EntityStatus = model.StatusActive
	meta.DeletedAt = nil
	meta.DeletedBy = ""

	if err := l.ensureUnique(ctx, l.unique(entity), ""); err != nil {
		return err
	}
	if err := l.store.Insert(ctx, entity); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return l.conflict(l.unique(entity))
		}
		return fmt.Errorf("error saving %s: %w", l.resource, err)
	}

	l.notify(ctx, model.LifecycleEvent{
		EntityID: meta.ID,
		Type:     model.EventCreated,
		ToStatus: model.StatusActive,
		ActorID:  model.ActorFrom(ctx),
	})
	return nil
}

// FindByID returns the entity. Deleted entities are reported as not found unless includeDeleted is set.
func (l *Lifecycle[E]) FindByID(ctx context.Context, id string, includeDeleted bool) (E, error) {
	entity, err := l.store.FindByID(ctx, id, includeDeleted)
	if err != nil {
		var zero E
		return zero, l.mapError(id, err)
	}
	return entity, nil
}

// Update applies a patch of client-settable attributes to a non-deleted entity.
func (l *Lifecycle[E]) Update(ctx context.Context, id string, patch model.Patch) (E, error) {
	var zero E
	if len(patch) == 0 {
		return zero, model.Invalid("", "no fields to update")
	}
	for _, f := range patch {
		if model.IsManagedField(f.Name) {
			return zero, model.Invalid(f.Name, "is managed by the server")
		}
	}

	if l.authorize != nil {
		current, err := l.FindByID(ctx, id, false)
		if err != nil {
			return zero, err
		}
		if err := l.authorize(ctx, current); err != nil {
			return zero, err
		}
	}

	var unique string
	if l.uniqueField != "" {
		if v, ok := patch.Lookup(l.uniqueField); ok {
			unique, _ = v.(string)
			if err := l.ensureUnique(ctx, unique, id); err != nil {
				return zero, err
			}
		}
	}

	entity, err := l.store.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return zero, l.conflict(unique)
		}
		return zero, l.mapError(id, err)
	}

	status := entity.Meta().EntityStatus
	l.notify(ctx, model.LifecycleEvent{
		EntityID:   id,
		Type:       model.EventUpdated,
		FromStatus: status,
		ToStatus:   status,
		ActorID:    model.ActorFrom(ctx),
	})
	return entity, nil
}

// ChangeStatus moves the entity to status. Any transition is allowed; callers are expected to have
// checked authorization. Into DELETED the deletion time and actor are recorded, out of DELETED both are
// cleared. Repeating a transition is a no-op returning the entity unchanged.
func (l *Lifecycle[E]) ChangeStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (E, error) {
	var zero E
	if !status.Valid() {
		return zero, model.Invalid("entityStatus", "must be one of ACTIVE, INACTIVE, DELETED")
	}

	current, err := l.FindByID(ctx, id, true)
	if err != nil {
		return zero, err
	}
	if l.authorize != nil {
		if err := l.authorize(ctx, current); err != nil {
			return zero, err
		}
	}
	from := current.Meta().EntityStatus

	// a revived entity takes its scoped-unique value back
	if from == model.StatusDeleted && status != model.StatusDeleted {
		if err := l.ensureUnique(ctx, l.unique(current), id); err != nil {
			return zero, err
		}
	}

	change := model.StatusChange{Status: status, At: l.nowFunc()}
	if status == model.StatusDeleted {
		change.ActorID = actorID
	}
	entity, changed, err := l.store.ChangeStatus(ctx, id, change)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return zero, l.conflict(l.unique(current))
		}
		return zero, l.mapError(id, err)
	}

	if changed {
		l.notify(ctx, model.LifecycleEvent{
			EntityID:   id,
			Type:       model.EventStatusChanged,
			FromStatus: from,
			ToStatus:   status,
			ActorID:    actorID,
		})
	}
	return entity, nil
}

// SoftDelete marks the entity DELETED.
func (l *Lifecycle[E]) SoftDelete(ctx context.Context, id string, actorID string) error {
	_, err := l.ChangeStatus(ctx, id, model.StatusDeleted, actorID)
	return err
}

// List returns a page of the entities matching the request and the resource clauses.
func (l *Lifecycle[E]) List(ctx context.Context, req model.FilterRequest, clauses ...model.Clause) (*model.Page[E], error) {
	q := query.Build(req, l.query, clauses...)
	items, total, err := l.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", l.resource, err)
	}
	return model.NewPage(items, total, q.Page, q.Limit), nil
}

func (l *Lifecycle[E]) unique(entity E) string {
	if l.uniqueField == "" || l.uniqueValue == nil {
		return ""
	}
	return l.uniqueValue(entity)
}

func (l *Lifecycle[E]) ensureUnique(ctx context.Context, value, excludeID string) error {
	if l.uniqueField == "" || value == "" {
		return nil
	}
	exists, err := l.store.Exists(ctx, ports.UniqueQuery{Field: l.uniqueField, Value: value, ExcludeID: excludeID})
	if err != nil {
		return fmt.Errorf("error checking %s uniqueness: %w", l.resource, err)
	}
	if exists {
		return l.conflict(value)
	}
	return nil
}

func (l *Lifecycle[E]) conflict(value string) error {
	return &model.ConflictError{Resource: l.resource, Field: l.uniqueField, Value: value}
}

func (l *Lifecycle[E]) mapError(id string, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return &model.NotFoundError{Resource: l.resource, ID: id}
	}
	return fmt.Errorf("error accessing %s [%s]: %w", l.resource, id, err)
}

// notify publishes the event. Failures are logged and never surface to the caller.
func (l *Lifecycle[E]) notify(ctx context.Context, event model.LifecycleEvent) {
	if l.sender == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Resource = l.resource
	event.OccurredAt = l.nowFunc()
	if err := l.sender.Send(ctx, event); err != nil {
		log.WithError(err).
			WithField("resource", event.Resource).
			WithField("entity-id", event.EntityID).
			WithField("event-type", event.Type).
			Warn("could not publish lifecycle event")
	}
}
