package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalServerLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2025-01-02T03:04:05.123456"`, time.Date(2025, 1, 2, 3, 4, 5, 123456000, time.UTC)},
		{`"2025-01-02T03:04:05"`, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{`"2025-01-02T03:04:05Z"`, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{`"2025-01-02T05:04:05+02:00"`, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_NullAndEmptyAreZero(t *testing.T) {
	for _, in := range []string{`null`, `""`} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, ts.IsZero(), in)
	}
}

func TestTimestamp_Invalid(t *testing.T) {
	var ts Timestamp
	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	require.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestUser_RoundTripKeepsCreatedAt(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"email":"dm@example.org","username":"dm","created_at":"2025-01-02T03:04:05.123456"}`), &u))

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var again User
	require.NoError(t, json.Unmarshal(raw, &again))
	assert.Equal(t, u, again)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 123456000, time.UTC), again.CreatedAt.Time)
}

func TestCampaign_OmitsZeroTimestamps(t *testing.T) {
	raw, err := json.Marshal(Campaign{Name: "Ash"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ash"}`, string(raw))
}
