package cache

import (
	"context"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

type appointmentsCacheEntry struct {
	Appointments []domain.Appointment
}

type appointmentsCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *appointmentsCacheEntry]
}

// Хранилище записей пользователя. Не зависит от CACHE_ENABLED.

func (c *CacheAdapter) GetAppointments(ctx context.Context, userID string) ([]domain.Appointment, bool) {
	c.appointmentsCache.mu.RLock()
	defer c.appointmentsCache.mu.RUnlock()

	entry, exists := c.appointmentsCache.cache.Get(userID)
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"userId": userID,
		})
		return nil, false
	}

	return slices.Clone(entry.Appointments), true
}

func (c *CacheAdapter) StoreAppointments(ctx context.Context, userID string, appointments []domain.Appointment) {
	c.appointmentsCache.mu.Lock()
	defer c.appointmentsCache.mu.Unlock()

	c.logger.Debug("cache.appointments.store", out.LogFields{
		"userId": userID,
		"count":  len(appointments),
	})

	stored := slices.Clone(appointments)
	if stored == nil {
		stored = []domain.Appointment{}
	}
	c.appointmentsCache.cache.Add(userID, &appointmentsCacheEntry{Appointments: stored})
}

// UpdateAppointment заменяет запись с тем же id на месте, порядок
// сохраняется. false, если хранилища пользователя или записи нет.
func (c *CacheAdapter) UpdateAppointment(ctx context.Context, userID string, appointment domain.Appointment) bool {
	c.appointmentsCache.mu.Lock()
	defer c.appointmentsCache.mu.Unlock()

	entry, exists := c.appointmentsCache.cache.Get(userID)
	if !exists {
		return false
	}

	index := slices.IndexFunc(entry.Appointments, func(a domain.Appointment) bool {
		return a.ID == appointment.ID
	})
	if index == -1 {
		return false
	}

	entry.Appointments[index] = appointment
	c.appointmentsCache.cache.Add(userID, entry)

	return true
}

func (c *CacheAdapter) InvalidateAppointments(ctx context.Context, userID string) {
	c.appointmentsCache.mu.Lock()
	defer c.appointmentsCache.mu.Unlock()

	c.appointmentsCache.cache.Remove(userID)
}

func (c *CacheAdapter) InvalidateAllAppointments(ctx context.Context) {
	c.appointmentsCache.mu.Lock()
	defer c.appointmentsCache.mu.Unlock()

	c.appointmentsCache.cache.Purge()
}
