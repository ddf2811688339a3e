package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

func (a *BackendAdapter) ListAppointments(ctx context.Context, session domain.Session) ([]domain.Appointment, error) {
	return getList[domain.Appointment](ctx, a, session, "backend.appointments.fetch", "/appointments")
}

func (a *BackendAdapter) CreateAppointment(ctx context.Context, session domain.Session, request domain.AppointmentRequest) (*domain.Appointment, error) {
	a.logger.Info("backend.appointment.create", out.LogFields{
		"doctorId": request.DoctorID,
		"date":     request.AppointmentDate,
		"time":     request.AppointmentTime,
	})

	data, err := a.doJSON(ctx, session, "backend.appointment.create", http.MethodPost, "/appointments/appointment", request)
	if err != nil {
		return nil, err
	}

	return decodeInto[domain.Appointment](a, "backend.appointment.create", data)
}

func (a *BackendAdapter) UpdateAppointmentStatus(ctx context.Context, session domain.Session, appointmentID string, status domain.AppointmentStatus) error {
	a.logger.Info("backend.appointment.status", out.LogFields{
		"appointmentId": appointmentID,
		"status":        status,
	})

	_, err := a.doJSON(ctx, session, "backend.appointment.status", http.MethodPatch,
		"/appointments/appointments/"+escape(appointmentID),
		map[string]domain.AppointmentStatus{"status": status},
	)
	return err
}

func (a *BackendAdapter) RescheduleAppointment(ctx context.Context, session domain.Session, appointmentID string, form domain.RescheduleForm) error {
	a.logger.Info("backend.appointment.reschedule", out.LogFields{
		"appointmentId": appointmentID,
		"date":          form.AppointmentDate,
		"time":          form.AppointmentTime,
	})

	_, err := a.doJSON(ctx, session, "backend.appointment.reschedule", http.MethodPatch,
		"/appointments/reschedule/"+escape(appointmentID),
		form,
	)
	return err
}

type bookedSlotsResponse struct {
	BookedSlots map[string][]string  `json:"bookedSlots"`
	Data        []domain.Appointment `json:"data"`
}

// GetBookedSlots сворачивает ответ бэкенда в индекс: либо готовая карта
// bookedSlots, либо список записей врача
func (a *BackendAdapter) GetBookedSlots(ctx context.Context, session domain.Session, doctorID string) (domain.BookedSlotIndex, error) {
	data, err := a.doJSON(ctx, session, "backend.booked_slots.fetch", http.MethodGet,
		"/appointments/appointments/booked/"+escape(doctorID), nil)
	if err != nil {
		return nil, err
	}

	var response bookedSlotsResponse
	if err := json.Unmarshal(data, &response); err != nil {
		a.logger.Error("backend.booked_slots.decode_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("backend.booked_slots.decode_failed: %w", err)
	}

	index := domain.BookedSlotIndexFromAppointments(response.Data)
	for date, times := range response.BookedSlots {
		day := date
		if parsed, err := json_types.ParseDate(date); err == nil {
			day = parsed.String()
		}
		for _, time := range times {
			index.Add(day, time)
		}
	}

	return index, nil
}
