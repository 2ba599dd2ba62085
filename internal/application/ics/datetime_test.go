package ics

import (
	"testing"
	"time"

	"easyics/internal/appers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateTime(t *testing.T) {
	dt := time.Date(2025, 10, 26, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "20251026T143000Z", FormatDateTime(dt, false))
	assert.Equal(t, "20251026", FormatDateTime(dt, true))

	// не-UTC момент нормализуется к UTC: 14:30 MSK == 11:30 UTC
	msk := time.FixedZone("MSK", 3*3600)
	local := time.Date(2025, 10, 26, 14, 30, 0, 0, msk)
	assert.Equal(t, "20251026T113000Z", FormatDateTime(local, false))
}

func TestParseDateTime(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   time.Time
		allDay bool
	}{
		{"utc", "20251026T140000Z", time.Date(2025, 10, 26, 14, 0, 0, 0, time.UTC), false},
		{"floating", "20251026T140000", time.Date(2025, 10, 26, 14, 0, 0, 0, time.UTC), false},
		{"date only", "20251026", time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC), true},
		{"surrounding spaces", "  20251026T140000Z ", time.Date(2025, 10, 26, 14, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, allDay, err := ParseDateTime(tc.input)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "expected %v, got %v", tc.want, got)
			assert.Equal(t, tc.allDay, allDay)
		})
	}
}

func TestParseDateTimeMalformed(t *testing.T) {
	inputs := []string{
		"",
		"not-a-date",
		"2025-10-26T14:00:00Z", // ISO-8601 с разделителями — не форма ICS
		"20251326T140000Z",     // месяц 13
		"20251026T",
		"202510",
	}

	for _, in := range inputs {
		_, _, err := ParseDateTime(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, appers.IsFormat(err), "input %q should yield FormatError", in)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	dt := time.Date(2026, 2, 1, 9, 15, 45, 0, time.UTC)

	back, allDay, err := ParseDateTime(FormatDateTime(dt, false))
	require.NoError(t, err)
	assert.False(t, allDay)
	assert.True(t, dt.Equal(back))

	day, allDay, err := ParseDateTime(FormatDateTime(dt, true))
	require.NoError(t, err)
	assert.True(t, allDay)
	assert.True(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Equal(day))
}
