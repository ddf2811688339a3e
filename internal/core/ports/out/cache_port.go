package out

import (
	"context"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
)

type CachePort interface {
	// Занятые слоты врача
	GetBookedSlots(ctx context.Context, doctorID string) (domain.BookedSlotIndex, bool)
	StoreBookedSlots(ctx context.Context, doctorID string, index domain.BookedSlotIndex)
	// previous - запись до изменения (nil для новой)
	UpdateBookedSlot(ctx context.Context, previous *domain.Appointment, appointment domain.Appointment)
	// Изменение записи, пришедшее событием
	RefreshBookedSlot(ctx context.Context, appointment domain.Appointment)
	InvalidateBookedSlots(ctx context.Context, doctorID string)
	InvalidateAllBookedSlots(ctx context.Context)

	// Список врачей с рабочими часами
	GetDoctors(ctx context.Context) ([]domain.Doctor, bool)
	StoreDoctors(ctx context.Context, doctors []domain.Doctor)
	InvalidateDoctors(ctx context.Context)

	// Записи на прием, загруженные пользователем
	GetAppointments(ctx context.Context, userID string) ([]domain.Appointment, bool)
	StoreAppointments(ctx context.Context, userID string, appointments []domain.Appointment)
	UpdateAppointment(ctx context.Context, userID string, appointment domain.Appointment) bool
	InvalidateAppointments(ctx context.Context, userID string)
	InvalidateAllAppointments(ctx context.Context)

	// PurgeAll сбрасывает все кэши разом
	PurgeAll(ctx context.Context)
}
