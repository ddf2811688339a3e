package rabbitmq

import (
	"context"

	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

// Изменение врача (рабочие часы, специальность) сбрасывает список врачей
// и его индекс занятых слотов
func (l *CacheEventListener) processDoctorMessage(ctx context.Context, routingKey CacheMessageRoutingKey) error {
	l.cachePort.InvalidateDoctors(ctx)
	if routingKey.ResourceID != "" && routingKey.ResourceID != string(CacheEventResourceTypeAll) {
		l.cachePort.InvalidateBookedSlots(ctx, routingKey.ResourceID)
	}

	l.logger.Info("doctor.message.invalidated", out.LogFields{
		"doctorId": routingKey.ResourceID,
		"event":    routingKey.EventType,
	})

	return nil
}
