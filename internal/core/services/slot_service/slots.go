package slot_service

import (
	"strings"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/utils"
)

const DefaultGranularityMinutes = 20

// windowBounds разбирает "hh:mm AM - hh:mm PM". Каждая граница, которую не
// удалось разобрать, становится 0 (полночь), ошибка возвращается отдельно.
func windowBounds(window string) (int, int, error) {
	if start, end, err := utils.ParseClockRange(window); err == nil {
		return start, end, nil
	}

	bounds := strings.SplitN(window, " - ", 2)
	start, startErr := utils.ParseClock(bounds[0])
	var end int
	endErr := utils.ErrInvalidClock
	if len(bounds) == 2 {
		end, endErr = utils.ParseClock(bounds[1])
	}

	if startErr != nil {
		return start, end, startErr
	}
	return start, end, endErr
}

// MalformedWindows возвращает имена окон, которые не разбираются строго
func MalformedWindows(workingHours domain.WorkingHours) []string {
	malformed := make([]string, 0)
	windows := []struct {
		name  string
		value string
	}{
		{"workingTime", workingHours.WorkingTime},
		{"checkupTime", workingHours.CheckupTime},
		{"breakTime", workingHours.BreakTime},
	}

	for _, window := range windows {
		if _, _, err := utils.ParseClockRange(window.value); err != nil {
			malformed = append(malformed, window.name)
		}
	}
	return malformed
}

// ComputeAvailableSlots строит сетку от начала до конца рабочего времени
// с шагом granularity минут. Тик в [начало перерыва, +60) - обед, иначе
// до конца приема - доступен, иначе - вне расписания.
func ComputeAvailableSlots(workingHours domain.WorkingHours, granularity int) []domain.TimeSlot {
	if granularity <= 0 {
		granularity = DefaultGranularityMinutes
	}

	workStart, workEnd, _ := windowBounds(workingHours.WorkingTime)
	_, checkupEnd, _ := windowBounds(workingHours.CheckupTime)
	breakStart, _, _ := windowBounds(workingHours.BreakTime)
	breakEnd := breakStart + domain.LunchBreakMinutes

	slots := make([]domain.TimeSlot, 0)
	for tick := workStart; tick < workEnd; tick += granularity {
		status := domain.SlotStatusNoSchedule
		if tick >= breakStart && tick < breakEnd {
			status = domain.SlotStatusLunchBreak
		} else if tick < checkupEnd {
			status = domain.SlotStatusAvailable
		}

		slots = append(slots, domain.TimeSlot{
			Time:    utils.FormatClock24(tick),
			Label:   utils.FormatClock12(tick),
			Minutes: tick,
			Status:  status,
		})
	}

	return slots
}

// IsBooked: true, если в index[date] есть ровно "HH:MM"
func IsBooked(index domain.BookedSlotIndex, date string, hour24, minute int) bool {
	return index.Contains(date, utils.FormatHourMinute(hour24, minute))
}

// AvailableHours - часы (24ч, "HH") для диалога переноса. Сравнение идет
// по целым часам, обе границы включительно: час попадает в рабочее окно и
// не попадает в окно перерыва.
func AvailableHours(workingHours domain.WorkingHours) []string {
	hours := make([]string, 0)

	workStart, workEnd, err := utils.ParseClockRange(workingHours.WorkingTime)
	if err != nil {
		return hours
	}
	breakStart, breakEnd, err := utils.ParseClockRange(workingHours.BreakTime)
	hasBreak := err == nil

	for hour := 0; hour < 24; hour++ {
		if hour < workStart/60 || hour > workEnd/60 {
			continue
		}
		if hasBreak && hour >= breakStart/60 && hour <= breakEnd/60 {
			continue
		}
		hours = append(hours, utils.FormatClock24(hour * 60)[:2])
	}

	return hours
}
