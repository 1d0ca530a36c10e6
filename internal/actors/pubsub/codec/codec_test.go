package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

func TestEncodeDecode(t *testing.T) {
	occurredAt := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)
	tests := []struct {
		name  string
		event model.LifecycleEvent
	}{
		{
			name: "creation without actor",
			event: model.LifecycleEvent{
				ID:         "5b1f0a3e-6f2c-4c1b-9d4e-2f7a8c9b0d11",
				Resource:   "person",
				EntityID:   "65e1b2c3d4e5f60718293a4b",
				Type:       model.EventCreated,
				ToStatus:   model.StatusActive,
				OccurredAt: occurredAt,
			},
		},
		{
			name: "deletion",
			event: model.LifecycleEvent{
				ID:         "0c9d8e7f-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
				Resource:   "company",
				EntityID:   "65e1b2c3d4e5f60718293a4c",
				Type:       model.EventStatusChanged,
				FromStatus: model.StatusInactive,
				ToStatus:   model.StatusDeleted,
				ActorID:    "u-1",
				OccurredAt: occurredAt,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := Encode(test.event)
			require.NoError(t, err)
			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, test.event, got)
		})
	}
}

func TestAttributes(t *testing.T) {
	attrs := Attributes(model.LifecycleEvent{Resource: "speaker", Type: model.EventUpdated})
	assert.Equal(t, map[string]string{"resource": "speaker", "type": "UPDATED"}, attrs)
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	incomplete, err := structpb.NewStruct(map[string]any{"id": "x", "resource": "person"})
	require.NoError(t, err)
	incompleteData, err := proto.Marshal(incomplete)
	require.NoError(t, err)

	badTime, err := structpb.NewStruct(map[string]any{
		"id": "x", "resource": "person", "entityId": "p", "type": "CREATED", "occurredAt": "yesterday",
	})
	require.NoError(t, err)
	badTimeData, err := proto.Marshal(badTime)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "not protobuf", data: []byte{0xff, 0xff, 0xff}},
		{name: "missing entity", data: incompleteData},
		{name: "bad timestamp", data: badTimeData},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.data)
			assert.ErrorIs(t, err, ErrMalformedEvent)
		})
	}
}
