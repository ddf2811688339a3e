package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

// CacheAppointmentMessage - тело события о записи, сама запись в формате бэкенда
type CacheAppointmentMessage domain.Appointment

func (l *CacheEventListener) processAppointmentMessage(ctx context.Context, routingKey CacheMessageRoutingKey, body []byte) error {
	var msgJson CacheAppointmentMessage
	if len(body) > 0 {
		if err := json.Unmarshal(body, &msgJson); err != nil {
			return fmt.Errorf("rabbitmq.appointment.decode_failed: %w", err)
		}
	}

	appointment := domain.Appointment(msgJson)
	if appointment.ID == "" {
		appointment.ID = routingKey.ResourceID
	}

	switch routingKey.EventType {
	case CacheEventTypeStore:
		if appointment.DoctorID == "" {
			return fmt.Errorf("rabbitmq.appointment.doctor_missing: %s", appointment.ID)
		}

		l.cachePort.RefreshBookedSlot(ctx, appointment)
		// Хранилища участников записи обновляются, только если уже загружены
		for _, userID := range []string{appointment.PatientID, appointment.DoctorID} {
			if userID != "" {
				l.cachePort.UpdateAppointment(ctx, userID, appointment)
			}
		}

		l.logger.Info("appointment.message.stored", out.LogFields{
			"appointmentId": appointment.ID,
			"doctorId":      appointment.DoctorID,
			"status":        appointment.Status,
		})

	case CacheEventTypeInvalidate:
		if appointment.DoctorID == "" {
			l.cachePort.InvalidateAllBookedSlots(ctx)
		} else {
			l.cachePort.InvalidateBookedSlots(ctx, appointment.DoctorID)
		}
		if appointment.PatientID != "" {
			l.cachePort.InvalidateAppointments(ctx, appointment.PatientID)
		}

		l.logger.Info("appointment.message.invalidated", out.LogFields{
			"appointmentId": appointment.ID,
			"doctorId":      appointment.DoctorID,
		})
	}

	return nil
}
