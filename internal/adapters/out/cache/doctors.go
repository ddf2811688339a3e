package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

type doctorsCache struct {
	mu        sync.RWMutex
	doctors   []domain.Doctor
	timestamp time.Time
	ttl       time.Duration
}

// Кэширование списка врачей

func (c *CacheAdapter) GetDoctors(ctx context.Context) ([]domain.Doctor, bool) {
	if !c.cfg.Cache.Enabled {
		return nil, false
	}

	c.doctorsCache.mu.RLock()
	defer c.doctorsCache.mu.RUnlock()

	if c.doctorsCache.doctors == nil || time.Since(c.doctorsCache.timestamp) > c.doctorsCache.ttl {
		c.logger.Debug("cache.doctors.get.miss", out.LogFields{})
		return nil, false
	}

	return slices.Clone(c.doctorsCache.doctors), true
}

func (c *CacheAdapter) StoreDoctors(ctx context.Context, doctors []domain.Doctor) {
	if !c.cfg.Cache.Enabled {
		return
	}

	c.doctorsCache.mu.Lock()
	defer c.doctorsCache.mu.Unlock()

	c.doctorsCache.doctors = slices.Clone(doctors)
	if c.doctorsCache.doctors == nil {
		c.doctorsCache.doctors = []domain.Doctor{}
	}
	c.doctorsCache.timestamp = time.Now()

	c.logger.Debug("cache.doctors.store", out.LogFields{
		"count": len(doctors),
	})
}

func (c *CacheAdapter) InvalidateDoctors(ctx context.Context) {
	c.doctorsCache.mu.Lock()
	defer c.doctorsCache.mu.Unlock()

	c.doctorsCache.doctors = nil
	c.doctorsCache.timestamp = time.Time{}
}
