package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

const migrationsDir = "../../../db/migrations"

type AuditDBTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *pg.DB
	audit     *AuditDB
}

var (
	dummyTime = time.Now().Truncate(time.Second).UTC()
)

func TestAuditDBTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres suite in short mode")
	}
	suite.Run(t, new(AuditDBTestSuite))
}

func (suite *AuditDBTestSuite) SetupSuite() {
	ctx := context.Background()
	url := os.Getenv("POSTGRESQL_URL")
	if url == "" {
		container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase("lavc"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			tcpostgres.BasicWaitStrategies(),
		)
		suite.Require().NoError(err)
		suite.container = container
		url, err = container.ConnectionString(ctx, "sslmode=disable")
		suite.Require().NoError(err)
	}

	suite.Require().NoError(Migrate(url, migrationsDir, false))
	// a second run is a no-op
	suite.Require().NoError(Migrate(url, migrationsDir, false))

	db, err := Connect(ctx, url)
	suite.Require().NoError(err)
	suite.db = db
	suite.audit, err = NewAuditDB(AuditDBArgs{DB: db}, WithNowFunc(func() time.Time { return dummyTime }))
	suite.Require().NoError(err)
}

func (suite *AuditDBTestSuite) SetupTest() {
	_, err := suite.db.Exec("TRUNCATE TABLE lavc.audit_events")
	suite.Require().NoError(err)
}

func (suite *AuditDBTestSuite) TearDownSuite() {
	// close the database connection after the suite
	suite.Require().NoError(suite.db.Close())
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func event(resource, entityID string, typ model.EventType, occurredAt time.Time) model.LifecycleEvent {
	return model.LifecycleEvent{
		ID:         uuid.NewString(),
		Resource:   resource,
		EntityID:   entityID,
		Type:       typ,
		ToStatus:   model.StatusActive,
		OccurredAt: occurredAt,
	}
}

func (suite *AuditDBTestSuite) TestSaveEventIsIdempotent() {
	ctx := context.Background()
	e := event("person", "p-1", model.EventStatusChanged, dummyTime)
	e.FromStatus = model.StatusActive
	e.ToStatus = model.StatusDeleted
	e.ActorID = "u-1"

	suite.Require().NoError(suite.audit.SaveEvent(ctx, e))
	suite.Require().NoError(suite.audit.SaveEvent(ctx, e))

	page, err := suite.audit.ListEvents(ctx, model.AuditFilter{Page: 1, Limit: 10})
	suite.Require().NoError(err)
	suite.EqualValues(1, page.TotalItems)
	suite.Require().Len(page.Data, 1)
	suite.Equal(e, page.Data[0].LifecycleEvent)
	suite.Equal(dummyTime, page.Data[0].RecordedAt)
}

func (suite *AuditDBTestSuite) TestSaveEventRejectsMalformedIDs() {
	e := event("person", "p-1", model.EventCreated, dummyTime)
	e.ID = "not-a-uuid"
	err := suite.audit.SaveEvent(context.Background(), e)
	suite.True(model.IsValidation(err))
}

func (suite *AuditDBTestSuite) TestCreationsHaveNoFromStatus() {
	ctx := context.Background()
	e := event("company", "c-1", model.EventCreated, dummyTime)
	suite.Require().NoError(suite.audit.SaveEvent(ctx, e))

	var fromStatus *string
	_, err := suite.db.QueryOne(pg.Scan(&fromStatus), "SELECT from_status FROM lavc.audit_events WHERE id = ?", e.ID)
	suite.Require().NoError(err)
	suite.Nil(fromStatus)
}

func (suite *AuditDBTestSuite) TestListEvents() {
	ctx := context.Background()
	events := []model.LifecycleEvent{
		event("person", "p-1", model.EventCreated, dummyTime.Add(-3*time.Minute)),
		event("person", "p-1", model.EventUpdated, dummyTime.Add(-2*time.Minute)),
		event("person", "p-2", model.EventCreated, dummyTime.Add(-1*time.Minute)),
		event("company", "c-1", model.EventCreated, dummyTime),
	}
	for _, e := range events {
		suite.Require().NoError(suite.audit.SaveEvent(ctx, e))
	}

	tests := []struct {
		name      string
		filter    model.AuditFilter
		wantIDs   []string
		wantTotal int64
		wantPages int
	}{
		{
			name:      "most recent first",
			filter:    model.AuditFilter{Page: 1, Limit: 2},
			wantIDs:   []string{events[3].ID, events[2].ID},
			wantTotal: 4,
			wantPages: 2,
		},
		{
			name:      "second page",
			filter:    model.AuditFilter{Page: 2, Limit: 2},
			wantIDs:   []string{events[1].ID, events[0].ID},
			wantTotal: 4,
			wantPages: 2,
		},
		{
			name:      "by resource",
			filter:    model.AuditFilter{Resource: "person", Page: 1, Limit: 10},
			wantIDs:   []string{events[2].ID, events[1].ID, events[0].ID},
			wantTotal: 3,
			wantPages: 1,
		},
		{
			name:      "by entity",
			filter:    model.AuditFilter{Resource: "person", EntityID: "p-1", Page: 1, Limit: 10},
			wantIDs:   []string{events[1].ID, events[0].ID},
			wantTotal: 2,
			wantPages: 1,
		},
		{
			name:      "page far beyond the end",
			filter:    model.AuditFilter{Page: 1 << 40, Limit: 100},
			wantTotal: 4,
			wantPages: 1,
		},
		{
			name:      "no match",
			filter:    model.AuditFilter{Resource: "speaker", Page: 1, Limit: 10},
			wantTotal: 0,
			wantPages: 1,
		},
	}
	for _, test := range tests {
		suite.Run(test.name, func() {
			page, err := suite.audit.ListEvents(ctx, test.filter)
			suite.Require().NoError(err)
			suite.Equal(test.wantTotal, page.TotalItems)
			suite.Equal(test.wantPages, page.TotalPages)
			suite.NotNil(page.Data)
			var ids []string
			for _, e := range page.Data {
				ids = append(ids, e.ID)
			}
			suite.Equal(test.wantIDs, ids)
		})
	}
}
