package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// MockAuditRepository is a mock implementation of the AuditRepository interface.
type MockAuditRepository struct {
	called     bool
	saved      []model.LifecycleEvent
	lastFilter model.AuditFilter
	SaveError  error
}

func (m *MockAuditRepository) SaveEvent(_ context.Context, event model.LifecycleEvent) error {
	m.called = true
	if m.SaveError != nil {
		return m.SaveError
	}
	m.saved = append(m.saved, event)
	return nil
}

func (m *MockAuditRepository) ListEvents(_ context.Context, filter model.AuditFilter) (*model.Page[model.AuditEvent], error) {
	m.lastFilter = filter
	return model.NewPage[model.AuditEvent](nil, 0, filter.Page, filter.Limit), nil
}

func TestRecorder_Handle(t *testing.T) {
	savingError := errors.New("saving error")
	complete := model.LifecycleEvent{
		ID:         "e-1",
		Resource:   ResourcePerson,
		EntityID:   "p-1",
		Type:       model.EventStatusChanged,
		FromStatus: model.StatusActive,
		ToStatus:   model.StatusDeleted,
		OccurredAt: fixedNow,
	}
	tests := []struct {
		name            string
		event           model.LifecycleEvent
		saveError       error
		callsSaveMethod bool
		expectedError   func(t *testing.T, err error)
	}{
		{
			name:            "complete event is recorded",
			event:           complete,
			callsSaveMethod: true,
		},
		{
			name:            "event without id is dropped",
			event:           model.LifecycleEvent{Resource: ResourcePerson, EntityID: "p-1", Type: model.EventCreated},
			callsSaveMethod: false,
		},
		{
			name:            "event without entity is dropped",
			event:           model.LifecycleEvent{ID: "e-2", Resource: ResourcePerson, Type: model.EventCreated},
			callsSaveMethod: false,
		},
		{
			name:            "malformed event rejected by the repository is dropped",
			event:           complete,
			saveError:       model.Invalid("id", "must be a UUID"),
			callsSaveMethod: true,
		},
		{
			name:            "error in saving event triggers error in handler",
			event:           complete,
			saveError:       savingError,
			callsSaveMethod: true,
			expectedError: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, savingError)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := &MockAuditRepository{SaveError: test.saveError}
			recorder := NewRecorder(repo)
			err := recorder.Handle(context.Background(), test.event)
			if test.expectedError != nil {
				test.expectedError(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, test.callsSaveMethod, repo.called)
			if test.callsSaveMethod && test.saveError == nil {
				require.Equal(t, []model.LifecycleEvent{test.event}, repo.saved)
			}
		})
	}
}

func TestRecorder_ListEventsClampsPaging(t *testing.T) {
	tests := []struct {
		name      string
		filter    model.AuditFilter
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", filter: model.AuditFilter{}, wantPage: 1, wantLimit: 10},
		{name: "too large", filter: model.AuditFilter{Page: 2, Limit: 500}, wantPage: 2, wantLimit: 100},
		{name: "negative", filter: model.AuditFilter{Page: -1, Limit: -5}, wantPage: 1, wantLimit: 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := &MockAuditRepository{}
			page, err := NewRecorder(repo).ListEvents(context.Background(), test.filter)
			require.NoError(t, err)
			assert.Equal(t, test.wantPage, repo.lastFilter.Page)
			assert.Equal(t, test.wantLimit, repo.lastFilter.Limit)
			assert.NotNil(t, page.Data)
		})
	}
}
