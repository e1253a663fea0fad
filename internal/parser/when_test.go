package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, noon.
var wednesdayNoon = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.Local)

func TestParseWhenEmpty(t *testing.T) {
	res := ParseWhenAt("", wednesdayNoon)
	assert.Error(t, res.Error)

	res = ParseWhenArgs(nil)
	assert.Error(t, res.Error)
}

func TestPresetHour(t *testing.T) {
	res := ParseWhenAt("1h", wednesdayNoon)
	require.NoError(t, res.Error)
	assert.Equal(t, wednesdayNoon.Add(time.Hour), res.Time)
}

func TestPresetTomorrow(t *testing.T) {
	res := ParseWhenAt("tomorrow", wednesdayNoon)
	require.NoError(t, res.Error)
	assert.Equal(t, time.Date(2026, time.March, 5, 9, 0, 0, 0, time.Local), res.Time)
}

func TestPresetWeekend(t *testing.T) {
	res := ParseWhenAt("weekend", wednesdayNoon)
	require.NoError(t, res.Error)
	assert.Equal(t, time.Saturday, res.Time.Weekday())
	assert.Equal(t, time.Date(2026, time.March, 7, 10, 0, 0, 0, time.Local), res.Time)
}

func TestPresetWeekendOnSaturday(t *testing.T) {
	// Already Saturday: the walk stays on today, even if 10 AM has passed.
	saturdayNoon := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.Local)
	res := ParseWhenAt("weekend", saturdayNoon)
	require.NoError(t, res.Error)
	assert.Equal(t, time.Date(2026, time.March, 7, 10, 0, 0, 0, time.Local), res.Time)
	assert.True(t, res.Time.Before(saturdayNoon))
}

func TestRelativeExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"+30s", 30 * time.Second},
		{"+5m", 5 * time.Minute},
		{"+2h", 2 * time.Hour},
		{"+3d", 3 * 24 * time.Hour},
		{"+1w", 7 * 24 * time.Hour},
	}
	for _, tt := range tests {
		res := ParseWhenAt(tt.input, wednesdayNoon)
		require.NoError(t, res.Error, tt.input)
		assert.Equal(t, wednesdayNoon.Add(tt.want), res.Time, tt.input)
	}
}

func TestRelativeZeroRejected(t *testing.T) {
	res := ParseWhenAt("+0m", wednesdayNoon)
	assert.Error(t, res.Error)
}

func TestNaturalLanguage(t *testing.T) {
	res := ParseWhenAt("2026-03-10 14:00", wednesdayNoon)
	require.NoError(t, res.Error)
	assert.Equal(t, 2026, res.Time.Year())
	assert.Equal(t, 14, res.Time.Hour())
}

func TestGarbageInput(t *testing.T) {
	res := ParseWhenAt("definitely not a time", wednesdayNoon)
	assert.Error(t, res.Error)
}

func TestFormatTimeUntil(t *testing.T) {
	assert.Equal(t, "overdue", FormatTimeUntil(time.Now().Add(-time.Minute)))
	assert.Equal(t, "less than a minute", FormatTimeUntil(time.Now().Add(30*time.Second)))
	assert.Equal(t, "in 10 minutes", FormatTimeUntil(time.Now().Add(10*time.Minute+5*time.Second)))
	assert.Equal(t, "in 2 days", FormatTimeUntil(time.Now().Add(49*time.Hour)))
}
