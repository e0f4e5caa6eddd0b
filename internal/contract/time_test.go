package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		input    string
		expected time.Time
	}{
		{"2 years ago", now.AddDate(-2, 0, 0)},
		{"1 year ago", now.AddDate(-1, 0, 0)},
		{"3 months ago", now.AddDate(0, -3, 0)},
		{"1 week ago", now.Add(-7 * 24 * time.Hour)},
		{"10 days ago", now.Add(-10 * 24 * time.Hour)},
		{"4 hours ago", now.Add(-4 * time.Hour)},
		{"30 minutes ago", now.Add(-30 * time.Minute)},
		{"  2 Days Ago  ", now.Add(-2 * 24 * time.Hour)}, // whitespace and case
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseRelativeTime(tc.input, now)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseRelativeTimeInvalid(t *testing.T) {
	now := time.Now()

	for _, input := range []string{"", "yesterday", "2 fortnights ago", "days ago", "-1 days ago"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRelativeTime(input, now)
			assert.Error(t, err)
		})
	}
}

func TestParseTimeFlag(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("absolute", func(t *testing.T) {
		got, err := ParseTimeFlag("2024-01-02T15:04:05Z", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), got.UTC())
	})

	t.Run("relative", func(t *testing.T) {
		got, err := ParseTimeFlag("3 days ago", now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(-3*24*time.Hour), got)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseTimeFlag("not-a-date", now)
		assert.Error(t, err)
	})
}
