package rabbitmq

import (
	"context"

	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

func (l *CacheEventListener) processAllMessage(ctx context.Context, routingKey CacheMessageRoutingKey) error {
	if routingKey.EventType != CacheEventTypeInvalidate {
		return nil
	}

	// Массовое изменение на бэкенде: сбрасываем все кэши
	l.cachePort.PurgeAll(ctx)

	l.logger.Info("_all_.message.invalidated", out.LogFields{
		"booked_slots_cache": true,
		"doctors_cache":      true,
		"appointments_cache": true,
	})

	return nil
}
