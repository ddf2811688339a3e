package slot_service

import (
	"fmt"
	"strconv"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/utils"
)

// ReduceTimePicker применяет одно действие. Смена часа сбрасывает минуты,
// смена даты сбрасывает час и минуты и возвращает период в AM.
func ReduceTimePicker(state domain.TimePickerState, action domain.TimePickerAction) (domain.TimePickerState, error) {
	next := state
	if next.Period == "" {
		next.Period = string(utils.PeriodAM)
	}

	switch action.Field {
	case domain.TimePickerFieldDate:
		next.Date = action.Value
		next.Hour = ""
		next.Minute = ""
		next.Period = string(utils.PeriodAM)
	case domain.TimePickerFieldHour:
		if action.Value != "" && !inRange(action.Value, 1, 12) {
			return state, fmt.Errorf("%w: hour %q", domain.ErrValidation, action.Value)
		}
		next.Hour = action.Value
		next.Minute = ""
	case domain.TimePickerFieldMinute:
		if action.Value != "" && (len(action.Value) != 2 || !inRange(action.Value, 0, 59)) {
			return state, fmt.Errorf("%w: minute %q", domain.ErrValidation, action.Value)
		}
		next.Minute = action.Value
	case domain.TimePickerFieldPeriod:
		if action.Value != string(utils.PeriodAM) && action.Value != string(utils.PeriodPM) {
			return state, fmt.Errorf("%w: period %q", domain.ErrValidation, action.Value)
		}
		next.Period = action.Value
	default:
		return state, fmt.Errorf("%w: field %q", domain.ErrValidation, action.Field)
	}

	return next, nil
}

// PickerTime переводит выбор в "HH:MM" (24ч); ok=false, пока выбор не полный
func PickerTime(state domain.TimePickerState) (string, bool) {
	if state.Hour == "" || state.Minute == "" {
		return "", false
	}

	hour24, ok := pickerHour24(state.Hour, state.Period)
	if !ok {
		return "", false
	}
	minute, err := strconv.Atoi(state.Minute)
	if err != nil {
		return "", false
	}

	return utils.FormatHourMinute(hour24, minute), true
}

// BuildTimePickerView собирает варианты часов и минут. Минуты, занятые
// в index на выбранную дату при выбранных часе и периоде, выключены.
func BuildTimePickerView(state domain.TimePickerState, index domain.BookedSlotIndex) domain.TimePickerView {
	if state.Period == "" {
		state.Period = string(utils.PeriodAM)
	}

	view := domain.TimePickerView{
		State:   state,
		Hours:   make([]domain.PickerOption, 0, 12),
		Minutes: make([]domain.PickerOption, 0, 60),
		Periods: []string{string(utils.PeriodAM), string(utils.PeriodPM)},
	}

	for hour := 1; hour <= 12; hour++ {
		view.Hours = append(view.Hours, domain.PickerOption{Value: fmt.Sprintf("%02d", hour)})
	}

	// Без выбранного часа минуты недоступны целиком
	hour24, hourSelected := pickerHour24(state.Hour, state.Period)
	for minute := 0; minute < 60; minute++ {
		disabled := !hourSelected
		if hourSelected && state.Date != "" {
			disabled = IsBooked(index, state.Date, hour24, minute)
		}
		view.Minutes = append(view.Minutes, domain.PickerOption{
			Value:    fmt.Sprintf("%02d", minute),
			Disabled: disabled,
		})
	}

	if time, ok := PickerTime(state); ok {
		view.Time = time
	}

	return view
}

func pickerHour24(hour string, period string) (int, bool) {
	if hour == "" {
		return 0, false
	}
	hour12, err := strconv.Atoi(hour)
	if err != nil {
		return 0, false
	}
	hour24, err := utils.To24Hour(hour12, utils.Period(period))
	if err != nil {
		return 0, false
	}
	return hour24, true
}

func inRange(str string, min, max int) bool {
	value, err := strconv.Atoi(str)
	return err == nil && value >= min && value <= max
}
