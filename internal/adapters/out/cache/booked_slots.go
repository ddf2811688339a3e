package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

type bookedSlotsCacheEntry struct {
	Index domain.BookedSlotIndex
	// Времена записей по id, чтобы при переносе освободить старый слот
	Appointments map[string]bookedAppointment
}

type bookedAppointment struct {
	Date string
	Time string
}

type bookedSlotsCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *bookedSlotsCacheEntry]
}

// Кэширование занятых слотов

func (c *CacheAdapter) GetBookedSlots(ctx context.Context, doctorID string) (domain.BookedSlotIndex, bool) {
	if !c.cfg.Cache.Enabled {
		return nil, false
	}

	c.bookedSlotsCache.mu.RLock()
	defer c.bookedSlotsCache.mu.RUnlock()

	entry, exists := c.bookedSlotsCache.cache.Get(doctorID)
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"doctorId": doctorID,
		})
		return nil, false
	}

	// Копия, чтобы вызывающий не менял кэш
	return entry.Index.Clone(), true
}

func (c *CacheAdapter) StoreBookedSlots(ctx context.Context, doctorID string, index domain.BookedSlotIndex) {
	if !c.cfg.Cache.Enabled {
		c.logger.Debug("cache.booked_slots.store.disabled", out.LogFields{
			"doctorId": doctorID,
		})
		return
	}

	c.bookedSlotsCache.mu.Lock()
	defer c.bookedSlotsCache.mu.Unlock()

	c.logger.Debug("cache.booked_slots.store", out.LogFields{
		"doctorId": doctorID,
		"dates":    len(index),
	})

	c.bookedSlotsCache.cache.Add(doctorID, &bookedSlotsCacheEntry{
		Index:        index.Clone(),
		Appointments: make(map[string]bookedAppointment),
	})
}

// UpdateBookedSlot применяет изменение записи, сделанное через сервис, к
// индексу ее врача. previous - запись до изменения, nil для новой записи:
// ее старый слот освобождается, даже если индекс пришел с бэкенда и эту
// запись мы еще не видели. Если индекса в кэше нет, ничего не делаем:
// следующий запрос возьмет свежие данные у бэкенда.
func (c *CacheAdapter) UpdateBookedSlot(ctx context.Context, previous *domain.Appointment, appointment domain.Appointment) {
	if !c.cfg.Cache.Enabled {
		return
	}

	c.bookedSlotsCache.mu.Lock()
	defer c.bookedSlotsCache.mu.Unlock()

	entry, exists := c.bookedSlotsCache.cache.Get(appointment.DoctorID)
	if !exists {
		return
	}

	if tracked, ok := entry.Appointments[appointment.ID]; ok {
		entry.Index.Remove(tracked.Date, tracked.Time)
		delete(entry.Appointments, appointment.ID)
	} else if previous != nil && previous.Status != domain.AppointmentStatusCancelled {
		entry.Index.Remove(previous.AppointmentDate.String(), previous.AppointmentTime)
	}

	entry.book(appointment)

	c.logger.Debug("cache.booked_slots.update", out.LogFields{
		"doctorId":      appointment.DoctorID,
		"appointmentId": appointment.ID,
		"status":        appointment.Status,
	})

	c.bookedSlotsCache.cache.Add(appointment.DoctorID, entry)
}

// RefreshBookedSlot применяет событие об изменении записи. Прежний слот
// известен, только если запись уже проходила через кэш; иначе индекс
// врача сбрасывается целиком.
func (c *CacheAdapter) RefreshBookedSlot(ctx context.Context, appointment domain.Appointment) {
	if !c.cfg.Cache.Enabled {
		return
	}

	c.bookedSlotsCache.mu.Lock()
	defer c.bookedSlotsCache.mu.Unlock()

	entry, exists := c.bookedSlotsCache.cache.Get(appointment.DoctorID)
	if !exists {
		return
	}

	tracked, ok := entry.Appointments[appointment.ID]
	if !ok {
		c.logger.Debug("cache.booked_slots.refresh.unknown", out.LogFields{
			"doctorId":      appointment.DoctorID,
			"appointmentId": appointment.ID,
		})
		c.bookedSlotsCache.cache.Remove(appointment.DoctorID)
		return
	}

	entry.Index.Remove(tracked.Date, tracked.Time)
	delete(entry.Appointments, appointment.ID)
	entry.book(appointment)

	c.bookedSlotsCache.cache.Add(appointment.DoctorID, entry)
}

// book занимает слот записи, если она не отменена, и запоминает его
func (e *bookedSlotsCacheEntry) book(appointment domain.Appointment) {
	date := appointment.AppointmentDate.String()
	if appointment.Status == domain.AppointmentStatusCancelled || date == "" || appointment.AppointmentTime == "" {
		return
	}

	e.Index.Add(date, appointment.AppointmentTime)
	if appointment.ID != "" {
		e.Appointments[appointment.ID] = bookedAppointment{Date: date, Time: appointment.AppointmentTime}
	}
}

func (c *CacheAdapter) InvalidateBookedSlots(ctx context.Context, doctorID string) {
	c.bookedSlotsCache.mu.Lock()
	defer c.bookedSlotsCache.mu.Unlock()

	c.bookedSlotsCache.cache.Remove(doctorID)
}

func (c *CacheAdapter) InvalidateAllBookedSlots(ctx context.Context) {
	c.bookedSlotsCache.mu.Lock()
	defer c.bookedSlotsCache.mu.Unlock()

	c.bookedSlotsCache.cache.Purge()
}
