package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"1m":  time.Minute,
		"15m": 15 * time.Minute,
		"4h":  4 * time.Hour,
		"1d":  24 * time.Hour,
		"90d": 90 * 24 * time.Hour,
		"2w":  14 * 24 * time.Hour,
		" 1D": 24 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "d", "7", "0d", "-1d", "1y", "1.5h"} {
		_, err := ParseDuration(in)
		require.Error(t, err, in)
	}
}

func TestClampPeriodCapsMinuteIntervals(t *testing.T) {
	got, err := ClampPeriod("1m", "30d")
	require.NoError(t, err)
	assert.Equal(t, "7d", got)

	got, err = ClampPeriod("5m", "7d")
	require.NoError(t, err)
	assert.Equal(t, "7d", got)

	// Hourly and daily intervals pass through unchanged.
	got, err = ClampPeriod("1h", "90d")
	require.NoError(t, err)
	assert.Equal(t, "90d", got)

	got, err = ClampPeriod("1d", "2w")
	require.NoError(t, err)
	assert.Equal(t, "2w", got)

	_, err = ClampPeriod("bogus", "7d")
	require.Error(t, err)
}
