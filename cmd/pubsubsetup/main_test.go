package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	project, topics, err := parseLayout("lavc-local, lifecycle-events:audit:persons=person+company")
	require.NoError(t, err)
	assert.Equal(t, "lavc-local", project)
	require.Len(t, topics, 1)
	assert.Equal(t, "lifecycle-events", topics[0].ID)
	require.Len(t, topics[0].Subscriptions, 2)
	assert.Equal(t, "", topics[0].Subscriptions[0].filter())
	assert.Equal(t, `attributes.resource = "person" OR attributes.resource = "company"`, topics[0].Subscriptions[1].filter())

	for _, bad := range []string{"", ",topic", "p,:sub", "p,topic:"} {
		_, _, err := parseLayout(bad)
		assert.Error(t, err, bad)
	}
}
