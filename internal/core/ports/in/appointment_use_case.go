package in

import (
	"context"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
)

type AppointmentUseCase interface {
	// Перечитывает записи пользователя с бэкенда и фильтрует их
	ListAppointments(ctx context.Context, session domain.Session, filter domain.AppointmentFilter) ([]domain.Appointment, error)

	// Количество записей на каждой вкладке
	TabCounts(ctx context.Context, session domain.Session) ([]domain.TabCount, error)

	Book(ctx context.Context, session domain.Session, form domain.BookingForm) (*domain.Appointment, error)
	Reschedule(ctx context.Context, session domain.Session, appointmentID string, form domain.RescheduleForm) (*domain.Appointment, error)
	Cancel(ctx context.Context, session domain.Session, appointmentID string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, session domain.Session, appointmentID string, form domain.StatusUpdateForm) (*domain.Appointment, error)
}
