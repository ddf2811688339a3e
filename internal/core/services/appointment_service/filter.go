package appointment_service

import "github.com/suchimauz/hospital-desk/internal/core/domain"

// FilterAppointments - стабильный фильтр: порядок записей сохраняется.
// Даты сравниваются по календарному дню включительно и только если заданы
// обе границы; пустой DoctorID и пустая вкладка не фильтруют.
func FilterAppointments(all []domain.Appointment, filter domain.AppointmentFilter) []domain.Appointment {
	result := make([]domain.Appointment, 0, len(all))

	for _, appointment := range all {
		if filter.DateRange.IsSet() && !filter.DateRange.Contains(appointment.AppointmentDate) {
			continue
		}
		if filter.DoctorID != "" && appointment.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Tab != "" && appointment.Status != filter.Tab.Status() {
			continue
		}
		result = append(result, appointment)
	}

	return result
}

// PartitionByTab раскладывает записи по вкладкам. Запись со статусом вне
// четырех известных не попадает ни в одну вкладку.
func PartitionByTab(all []domain.Appointment) map[domain.StatusTab][]domain.Appointment {
	partition := make(map[domain.StatusTab][]domain.Appointment, len(domain.StatusTabs()))
	for _, tab := range domain.StatusTabs() {
		partition[tab] = FilterAppointments(all, domain.AppointmentFilter{Tab: tab})
	}
	return partition
}

func TabCounts(all []domain.Appointment) []domain.TabCount {
	partition := PartitionByTab(all)

	counts := make([]domain.TabCount, 0, len(partition))
	for _, tab := range domain.StatusTabs() {
		counts = append(counts, domain.TabCount{
			Tab:    tab,
			Status: tab.Status(),
			Count:  len(partition[tab]),
		})
	}
	return counts
}

func findAppointment(all []domain.Appointment, appointmentID string) (domain.Appointment, bool) {
	for _, appointment := range all {
		if appointment.ID == appointmentID {
			return appointment, true
		}
	}
	return domain.Appointment{}, false
}
