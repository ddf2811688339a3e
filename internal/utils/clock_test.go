package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"09:00 AM", 9 * 60},
		{"9:30 am", 9*60 + 30},
		{"12:00 AM", 0},
		{"12:15 PM", 12*60 + 15},
		{"01:00 PM", 13 * 60},
		{"11:59 PM", 23*60 + 59},
		{"12:00 PM - 01:00 PM", 12 * 60},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, input := range []string{"", "09:00", "25:00 AM", "00:30 AM", "9:5 AM", "ab:cd PM", "09:00 XM", "09-00 AM"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseClock(input)
			assert.ErrorIs(t, err, ErrInvalidClock)
		})
	}
}

func TestParseClockRange(t *testing.T) {
	start, end, err := ParseClockRange("09:00 AM - 05:00 PM")
	require.NoError(t, err)
	assert.Equal(t, 9*60, start)
	assert.Equal(t, 17*60, end)

	_, _, err = ParseClockRange("09:00 AM")
	assert.ErrorIs(t, err, ErrInvalidClock)

	_, _, err = ParseClockRange("09:00 AM - later")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestTo24Hour(t *testing.T) {
	h, err := To24Hour(12, PeriodAM)
	require.NoError(t, err)
	assert.Equal(t, 0, h)

	h, err = To24Hour(12, PeriodPM)
	require.NoError(t, err)
	assert.Equal(t, 12, h)

	h, err = To24Hour(3, PeriodPM)
	require.NoError(t, err)
	assert.Equal(t, 15, h)

	_, err = To24Hour(0, PeriodAM)
	assert.Error(t, err)
	_, err = To24Hour(3, Period("XX"))
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock24(540))
	assert.Equal(t, "00:00", FormatClock24(24*60))
	assert.Equal(t, "09:00 AM", FormatClock12(540))
	assert.Equal(t, "12:00 PM", FormatClock12(720))
	assert.Equal(t, "12:20 AM", FormatClock12(20))
	assert.Equal(t, "04:40 PM", FormatClock12(16*60+40))
	assert.Equal(t, "07:05", FormatHourMinute(7, 5))
}

func TestWeekDays(t *testing.T) {
	start, err := json_types.ParseDate("2024-12-29")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-12-29", "2024-12-30", "2024-12-31",
		"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04",
	}, WeekDays(start))
}
