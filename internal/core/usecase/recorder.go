package usecase

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/query"
)

// NewRecorder builds a new recorder.
func NewRecorder(repository ports.AuditRepository) *Recorder {
	return &Recorder{repository: repository}
}

// Recorder appends lifecycle events to the audit trail. It is the handler of the worker subscription.
type Recorder struct {
	repository ports.AuditRepository
}

// Handle records the event. Incomplete events cannot be attributed to an entity and are dropped,
// returning nil so that they are not redelivered forever.
func (r *Recorder) Handle(ctx context.Context, event model.LifecycleEvent) error {
	if event.ID == "" || event.Resource == "" || event.EntityID == "" || event.Type == "" {
		log.WithField("event-id", event.ID).
			WithField("resource", event.Resource).
			Warn("dropping incomplete lifecycle event")
		return nil
	}

	if err := r.repository.SaveEvent(ctx, event); err != nil {
		if model.IsValidation(err) {
			log.WithError(err).WithField("event-id", event.ID).Warn("dropping malformed lifecycle event")
			return nil
		}
		return fmt.Errorf("error recording lifecycle event ID [%s]: %w", event.ID, err)
	}
	return nil
}

// ListEvents lists the audit trail, most recent first.
func (r *Recorder) ListEvents(ctx context.Context, filter model.AuditFilter) (*model.Page[model.AuditEvent], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.Limit = query.Limit(filter.Limit, query.FallbackLimit)
	page, err := r.repository.ListEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing audit events: %w", err)
	}
	return page, nil
}
