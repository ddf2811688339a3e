package domain

import "slices"

// BookedSlotIndex: дата (2006-01-02) -> занятые времена "HH:MM" одного врача
type BookedSlotIndex map[string][]string

func (b BookedSlotIndex) Contains(date string, time string) bool {
	times, ok := b[date]
	if !ok {
		return false
	}
	return slices.Contains(times, time)
}

// BookedSlotIndexFromAppointments строит индекс по записям врача.
// Отмененные записи слот не занимают.
func BookedSlotIndexFromAppointments(appointments []Appointment) BookedSlotIndex {
	index := make(BookedSlotIndex)
	for _, appointment := range appointments {
		if appointment.Status == AppointmentStatusCancelled {
			continue
		}
		day := appointment.AppointmentDate.String()
		if day == "" || appointment.AppointmentTime == "" {
			continue
		}
		index.Add(day, appointment.AppointmentTime)
	}
	return index
}

func (b BookedSlotIndex) Add(date string, time string) {
	if b.Contains(date, time) {
		return
	}
	b[date] = append(b[date], time)
}

func (b BookedSlotIndex) Remove(date string, time string) {
	times, ok := b[date]
	if !ok {
		return
	}
	times = slices.DeleteFunc(slices.Clone(times), func(t string) bool { return t == time })
	if len(times) == 0 {
		delete(b, date)
		return
	}
	b[date] = times
}

func (b BookedSlotIndex) Clone() BookedSlotIndex {
	clone := make(BookedSlotIndex, len(b))
	for date, times := range b {
		clone[date] = slices.Clone(times)
	}
	return clone
}
