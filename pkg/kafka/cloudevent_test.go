package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	AssetID string `json:"asset_id"`
	Count   int    `json:"count"`
}

func TestCloudEventRoundTrip(t *testing.T) {
	ce, err := NewCloudEvent("service-booking", "asset.availability_changed", testPayload{
		AssetID: "a1b2",
		Count:   3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ce.ID)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.Equal(t, "service-booking", ce.Source)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ce.ID, parsed.ID)
	assert.Equal(t, ce.Type, parsed.Type)

	var payload testPayload
	require.NoError(t, parsed.ParseData(&payload))
	assert.Equal(t, "a1b2", payload.AssetID)
	assert.Equal(t, 3, payload.Count)
}

func TestParseCloudEvent_Malformed(t *testing.T) {
	_, err := ParseCloudEvent([]byte("not json"))
	assert.Error(t, err)
}

func TestParseData_Mismatch(t *testing.T) {
	ce, err := NewCloudEvent("service-booking", "booking.created", testPayload{AssetID: "x"})
	require.NoError(t, err)

	var wrong []int
	assert.Error(t, ce.ParseData(&wrong))
}
