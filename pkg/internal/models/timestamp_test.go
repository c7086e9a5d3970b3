package models

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTimestamp(t *testing.T, raw string) Timestamp {
	var ts Timestamp
	require.NoError(t, jsoniter.Unmarshal([]byte(raw), &ts))
	return ts
}

func TestTimestampAcceptsRFC3339(t *testing.T) {
	ts := decodeTimestamp(t, `"2024-05-01T10:30:00Z"`)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), ts.Time.UTC())
}

func TestTimestampAcceptsUnixSeconds(t *testing.T) {
	ts := decodeTimestamp(t, `1700000000`)
	assert.Equal(t, int64(1700000000), ts.Unix())
}

func TestTimestampAcceptsUnixMillis(t *testing.T) {
	ts := decodeTimestamp(t, `1700000000000`)
	assert.Equal(t, int64(1700000000), ts.Unix())
}

func TestTimestampMalformedDecodesToZero(t *testing.T) {
	// A broken timestamp degrades to the zero value instead of failing
	// the surrounding payload.
	ts := decodeTimestamp(t, `"five minutes ago"`)
	assert.True(t, ts.IsZero())

	ts = decodeTimestamp(t, `null`)
	assert.True(t, ts.IsZero())
}

func TestTimestampMalformedInsideMessageKeepsRest(t *testing.T) {
	var message Message
	payload := `{"id":"m1","workspace_id":"ws1","user_id":"u1","content":"hi","created_at":"not-a-time"}`
	require.NoError(t, jsoniter.Unmarshal([]byte(payload), &message))
	assert.Equal(t, "m1", message.ID)
	assert.True(t, message.CreatedAt.IsZero())
}

func TestTimestampRoundTrip(t *testing.T) {
	original := At(time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC))
	raw, err := jsoniter.Marshal(original)
	require.NoError(t, err)

	var decoded Timestamp
	require.NoError(t, jsoniter.Unmarshal(raw, &decoded))
	assert.True(t, original.Equal(decoded.Time))
}

func TestTimestampZeroMarshalsAsNull(t *testing.T) {
	raw, err := jsoniter.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(raw))
}

func TestTempIDConvention(t *testing.T) {
	id := NewTempID()
	assert.True(t, IsTempID(id))
	assert.False(t, IsTempID("5f1c8e8e-0000-0000-0000-000000000000"))
}
