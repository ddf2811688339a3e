package domain

type SlotStatus string

const (
	SlotStatusAvailable  SlotStatus = "Available"
	SlotStatusLunchBreak SlotStatus = "Lunch Break"
	SlotStatusNoSchedule SlotStatus = "No Schedule"
)

// LunchBreakMinutes - длительность обеденного перерыва от его начала
const LunchBreakMinutes = 60

type TimeSlot struct {
	Time    string     `json:"time"`
	Label   string     `json:"label"`
	Minutes int        `json:"minutes"`
	Status  SlotStatus `json:"status"`
}

type SlotGrid struct {
	DoctorID    string          `json:"doctorId"`
	Granularity int             `json:"granularity"`
	Days        []string        `json:"days"`
	Slots       []TimeSlot      `json:"slots"`
	Booked      BookedSlotIndex `json:"booked"`
}

type TimePickerField string

const (
	TimePickerFieldDate   TimePickerField = "date"
	TimePickerFieldHour   TimePickerField = "hour"
	TimePickerFieldMinute TimePickerField = "minute"
	TimePickerFieldPeriod TimePickerField = "period"
)

// TimePickerState - выбор даты и времени в 12-часовом формате
type TimePickerState struct {
	Date   string `json:"date"`
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
	Period string `json:"period"`
}

type TimePickerAction struct {
	Field TimePickerField `json:"field" binding:"required,oneof=date hour minute period"`
	Value string          `json:"value"`
}

type PickerOption struct {
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

type TimePickerView struct {
	State   TimePickerState `json:"state"`
	Hours   []PickerOption  `json:"hours"`
	Minutes []PickerOption  `json:"minutes"`
	Periods []string        `json:"periods"`
	// Time - выбранное время "HH:MM" (24ч), пусто пока выбор не завершен
	Time string `json:"time,omitempty"`
}
