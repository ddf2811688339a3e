package utils

import (
	"time"

	"github.com/suchimauz/hospital-desk/internal/core/json_types"
)

// WeekDays возвращает 7 дней подряд начиная с start в формате 2006-01-02
func WeekDays(start json_types.Date) []string {
	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, start.AddDays(i).String())
	}
	return days
}

// Today - текущая календарная дата в указанной таймзоне
func Today(loc *time.Location) json_types.Date {
	now := time.Now().In(loc)
	return json_types.NewDate(now.Year(), now.Month(), now.Day())
}
