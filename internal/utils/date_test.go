package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
)

func TestWeekDaysCrossMonth(t *testing.T) {
	days := WeekDays(json_types.NewDate(2024, time.February, 26))
	assert.Equal(t, []string{
		"2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29",
		"2024-03-01", "2024-03-02", "2024-03-03",
	}, days)
}

func TestTodayUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*60*60)
	now := time.Now().In(loc)
	assert.Equal(t, json_types.NewDate(now.Year(), now.Month(), now.Day()), Today(loc))
}
