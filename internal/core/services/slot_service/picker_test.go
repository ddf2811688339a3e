package slot_service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
)

func TestReduceTimePickerHourClearsMinute(t *testing.T) {
	state := domain.TimePickerState{Date: "2024-05-01", Hour: "10", Minute: "30", Period: "PM"}

	next, err := ReduceTimePicker(state, domain.TimePickerAction{Field: domain.TimePickerFieldHour, Value: "11"})
	require.NoError(t, err)
	assert.Equal(t, domain.TimePickerState{Date: "2024-05-01", Hour: "11", Minute: "", Period: "PM"}, next)
}

func TestReduceTimePickerDateResetsTime(t *testing.T) {
	state := domain.TimePickerState{Date: "2024-05-01", Hour: "10", Minute: "30", Period: "PM"}

	next, err := ReduceTimePicker(state, domain.TimePickerAction{Field: domain.TimePickerFieldDate, Value: "2024-05-02"})
	require.NoError(t, err)
	assert.Equal(t, domain.TimePickerState{Date: "2024-05-02", Period: "AM"}, next)
}

func TestReduceTimePickerMinuteAndPeriodKeepOthers(t *testing.T) {
	state := domain.TimePickerState{Date: "2024-05-01", Hour: "10"}

	next, err := ReduceTimePicker(state, domain.TimePickerAction{Field: domain.TimePickerFieldMinute, Value: "45"})
	require.NoError(t, err)
	next, err = ReduceTimePicker(next, domain.TimePickerAction{Field: domain.TimePickerFieldPeriod, Value: "PM"})
	require.NoError(t, err)

	assert.Equal(t, domain.TimePickerState{Date: "2024-05-01", Hour: "10", Minute: "45", Period: "PM"}, next)
	time, ok := PickerTime(next)
	assert.True(t, ok)
	assert.Equal(t, "22:45", time)
}

func TestReduceTimePickerRejectsInvalidValues(t *testing.T) {
	state := domain.TimePickerState{Date: "2024-05-01", Hour: "10", Minute: "30", Period: "AM"}

	for _, action := range []domain.TimePickerAction{
		{Field: domain.TimePickerFieldHour, Value: "13"},
		{Field: domain.TimePickerFieldMinute, Value: "7"},
		{Field: domain.TimePickerFieldPeriod, Value: "noon"},
		{Field: "second", Value: "10"},
	} {
		next, err := ReduceTimePicker(state, action)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, state, next)
	}
}

func TestPickerTime(t *testing.T) {
	tests := []struct {
		state domain.TimePickerState
		want  string
		ok    bool
	}{
		{domain.TimePickerState{Hour: "12", Minute: "05", Period: "AM"}, "00:05", true},
		{domain.TimePickerState{Hour: "12", Minute: "05", Period: "PM"}, "12:05", true},
		{domain.TimePickerState{Hour: "01", Minute: "00", Period: "PM"}, "13:00", true},
		{domain.TimePickerState{Hour: "01", Period: "PM"}, "", false},
		{domain.TimePickerState{Minute: "00"}, "", false},
	}

	for _, tt := range tests {
		got, ok := PickerTime(tt.state)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestBuildTimePickerViewDisablesBookedMinutes(t *testing.T) {
	index := domain.BookedSlotIndex{"2024-05-01": {"10:00", "10:30", "22:15"}}

	view := BuildTimePickerView(domain.TimePickerState{Date: "2024-05-01", Hour: "10", Period: "AM"}, index)
	require.Len(t, view.Hours, 12)
	require.Len(t, view.Minutes, 60)
	assert.Equal(t, "01", view.Hours[0].Value)
	assert.Equal(t, "12", view.Hours[11].Value)

	disabled := []string{}
	for _, option := range view.Minutes {
		if option.Disabled {
			disabled = append(disabled, option.Value)
		}
	}
	assert.Equal(t, []string{"00", "30"}, disabled)
	assert.Empty(t, view.Time)

	view = BuildTimePickerView(domain.TimePickerState{Date: "2024-05-01", Hour: "10", Minute: "15", Period: "PM"}, index)
	assert.True(t, view.Minutes[15].Disabled)
	assert.False(t, view.Minutes[0].Disabled)
	assert.Equal(t, "22:15", view.Time)
}

func TestBuildTimePickerViewWithoutHourOrDate(t *testing.T) {
	index := domain.BookedSlotIndex{"2024-05-01": {"10:00"}}

	view := BuildTimePickerView(domain.TimePickerState{Date: "2024-05-01"}, index)
	for _, option := range view.Minutes {
		assert.True(t, option.Disabled)
	}
	assert.Equal(t, "AM", view.State.Period)

	view = BuildTimePickerView(domain.TimePickerState{Hour: "10", Period: "AM"}, index)
	for _, option := range view.Minutes {
		assert.False(t, option.Disabled)
	}
}
