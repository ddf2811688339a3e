package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

var _ out.CachePort = (*CacheAdapter)(nil)

// CacheAdapter держит три кэша:
//   - занятые слоты по врачу (LRU), живут до события из RabbitMQ;
//   - список врачей (одно значение с TTL);
//   - записи на прием по пользователю (LRU), работают всегда, так как
//     это локальное хранилище записей, а не кэш бэкенда.
type CacheAdapter struct {
	cfg               *config.Config
	bookedSlotsCache  *bookedSlotsCache
	doctorsCache      *doctorsCache
	appointmentsCache *appointmentsCache
	logger            out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	logger = logger.WithModule("CacheAdapter")

	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Booked slots and doctors cache is disabled",
		})
	}

	lruBookedSlots, err := lru.New[string, *bookedSlotsCacheEntry](cfg.Cache.BookedSlotsSize)
	if err != nil {
		logger.Error("cache.booked_slots.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.BookedSlotsSize,
		})
		return nil, err
	}

	lruAppointments, err := lru.New[string, *appointmentsCacheEntry](cfg.Cache.AppointmentsSize)
	if err != nil {
		logger.Error("cache.appointments.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.AppointmentsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		cfg:              cfg,
		bookedSlotsCache: &bookedSlotsCache{cache: lruBookedSlots},
		doctorsCache: &doctorsCache{
			ttl: cfg.Cache.DoctorsTTL,
		},
		appointmentsCache: &appointmentsCache{cache: lruAppointments},
		logger:            logger,
	}, nil
}

// PurgeAll сбрасывает все кэши (событие _all_)
func (c *CacheAdapter) PurgeAll(ctx context.Context) {
	c.bookedSlotsCache.mu.Lock()
	c.bookedSlotsCache.cache.Purge()
	c.bookedSlotsCache.mu.Unlock()

	c.doctorsCache.mu.Lock()
	c.doctorsCache.doctors = nil
	c.doctorsCache.timestamp = time.Time{}
	c.doctorsCache.mu.Unlock()

	c.appointmentsCache.mu.Lock()
	c.appointmentsCache.cache.Purge()
	c.appointmentsCache.mu.Unlock()

	c.logger.Info("cache.purged", out.LogFields{})
}
