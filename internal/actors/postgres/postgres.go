package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/query"
)

// AuditDB is a postgres adapter for the audit trail. It implements ports.AuditRepository.
type AuditDB struct {
	db      *pg.DB
	nowFunc func() time.Time
}

// AuditDBArgs are the mandatory arguments for the creation of an AuditDB
type AuditDBArgs struct {
	// DB is a postgres database handle
	DB *pg.DB
}

// AuditDBOptArgs are the optional arguments for building an AuditDB
type AuditDBOptArgs = func(*AuditDB)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) AuditDBOptArgs {
	return func(p *AuditDB) {
		p.nowFunc = nowFunc
	}
}

// NewAuditDB creates a new AuditDB.
func NewAuditDB(args AuditDBArgs, optArgs ...AuditDBOptArgs) (*AuditDB, error) {
	if args.DB == nil {
		return nil, errors.New("nil database handle passed to audit constructor")
	}
	p := &AuditDB{db: args.DB, nowFunc: func() time.Time { return time.Now().UTC() }}
	for _, opt := range optArgs {
		opt(p)
	}
	return p, nil
}

// Connect opens a database handle and checks the connection.
func Connect(ctx context.Context, url string) (*pg.DB, error) {
	opts, err := pg.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing postgres url: %w", err)
	}
	db := pg.Connect(opts)
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error pinging postgres: %w", err)
	}
	return db, nil
}

// SaveEvent will append the event to the audit trail. Events already recorded are ignored so that
// redeliveries are harmless. Events whose id is not a UUID are rejected with a model.ValidationError.
func (p *AuditDB) SaveEvent(ctx context.Context, event model.LifecycleEvent) error {
	id, err := uuid.Parse(event.ID)
	if err != nil {
		return model.Invalid("id", "must be a UUID")
	}
	row := &auditEventDB{
		ID:         id,
		Resource:   event.Resource,
		EntityID:   event.EntityID,
		Type:       string(event.Type),
		FromStatus: string(event.FromStatus),
		ToStatus:   string(event.ToStatus),
		ActorID:    event.ActorID,
		OccurredAt: event.OccurredAt.UTC(),
		RecordedAt: p.nowFunc(),
	}
	if _, err := p.db.ModelContext(ctx, row).OnConflict("(id) DO NOTHING").Insert(); err != nil {
		return fmt.Errorf("error inserting audit event: %w", err)
	}
	return nil
}

// ListEvents list audit events matching the filter, most recent first. Page and Limit must be positive.
func (p *AuditDB) ListEvents(ctx context.Context, filter model.AuditFilter) (*model.Page[model.AuditEvent], error) {
	if filter.Page < 1 || filter.Limit < 1 {
		return nil, errors.New("page and limit must be positive")
	}
	var rows []auditEventDB
	q := p.db.ModelContext(ctx, &rows).
		Order("occurred_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(int(query.Skip(filter.Page, filter.Limit)))
	if filter.Resource != "" {
		q = q.Where("resource = ?", filter.Resource)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	total, err := q.SelectAndCount()
	if err != nil && !errors.Is(err, pg.ErrNoRows) {
		return nil, fmt.Errorf("error selecting audit events: %w", err)
	}
	return model.NewPage(translateDBToModels(rows), int64(total), filter.Page, filter.Limit), nil
}

func translateDBToModels(rows []auditEventDB) []model.AuditEvent {
	events := make([]model.AuditEvent, len(rows))
	for i, row := range rows {
		events[i] = model.AuditEvent{
			LifecycleEvent: model.LifecycleEvent{
				ID:         row.ID.String(),
				Resource:   row.Resource,
				EntityID:   row.EntityID,
				Type:       model.EventType(row.Type),
				FromStatus: model.EntityStatus(row.FromStatus),
				ToStatus:   model.EntityStatus(row.ToStatus),
				ActorID:    row.ActorID,
				OccurredAt: row.OccurredAt.UTC(),
			},
			RecordedAt: row.RecordedAt.UTC(),
		}
	}
	return events
}

type auditEventDB struct {
	tableName struct{} `pg:"lavc.audit_events"`

	// ID is the lifecycle event id.
	ID uuid.UUID `pg:"id,pk,type:uuid"`

	// Resource is the resource name of the changed entity.
	Resource string `pg:"resource"`

	// EntityID is the id of the changed entity.
	EntityID string `pg:"entity_id"`

	// Type is CREATED, UPDATED or STATUS_CHANGED.
	Type string `pg:"type"`

	// FromStatus is NULL for creations.
	FromStatus string `pg:"from_status"`

	ToStatus string `pg:"to_status"`

	// ActorID is NULL when the change was not attributed.
	ActorID string `pg:"actor_id"`

	// OccurredAt is the time of the change.
	OccurredAt time.Time `pg:"occurred_at"`

	// RecordedAt is the time at which the event reached the audit trail.
	RecordedAt time.Time `pg:"recorded_at"`
}
