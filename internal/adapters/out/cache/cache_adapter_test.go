package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/hospital-desk/internal/adapters/out/logger"
	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
)

func newTestConfig(enabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.Cache.Enabled = enabled
	cfg.Cache.BookedSlotsSize = 10
	cfg.Cache.AppointmentsSize = 10
	cfg.Cache.DoctorsTTL = time.Minute
	return cfg
}

func newTestAdapter(t *testing.T, enabled bool) *CacheAdapter {
	t.Helper()
	adapter, err := NewCacheAdapter(newTestConfig(enabled), logger.NewNopLogger())
	require.NoError(t, err)
	return adapter
}

func TestNewCacheAdapterRejectsInvalidSize(t *testing.T) {
	cfg := newTestConfig(true)
	cfg.Cache.BookedSlotsSize = 0

	_, err := NewCacheAdapter(cfg, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestBookedSlotsStoreAndGet(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, true)

	_, exists := adapter.GetBookedSlots(ctx, "doc-1")
	assert.False(t, exists)

	adapter.StoreBookedSlots(ctx, "doc-1", domain.BookedSlotIndex{"2024-05-01": {"10:00"}})

	index, exists := adapter.GetBookedSlots(ctx, "doc-1")
	require.True(t, exists)
	assert.True(t, index.Contains("2024-05-01", "10:00"))

	// Индексы разных врачей не пересекаются
	_, exists = adapter.GetBookedSlots(ctx, "doc-2")
	assert.False(t, exists)

	// Изменение копии не трогает кэш
	index.Add("2024-05-01", "11:00")
	index, _ = adapter.GetBookedSlots(ctx, "doc-1")
	assert.False(t, index.Contains("2024-05-01", "11:00"))
}

func TestBookedSlotsDisabled(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, false)

	adapter.StoreBookedSlots(ctx, "doc-1", domain.BookedSlotIndex{"2024-05-01": {"10:00"}})
	_, exists := adapter.GetBookedSlots(ctx, "doc-1")
	assert.False(t, exists)
}

func TestUpdateBookedSlotMovesRescheduledAppointment(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, true)
	adapter.StoreBookedSlots(ctx, "doc-1", domain.BookedSlotIndex{})

	appointment := domain.Appointment{
		ID:              "a-1",
		DoctorID:        "doc-1",
		AppointmentDate: json_types.NewDate(2024, time.May, 1),
		AppointmentTime: "10:00",
		Status:          domain.AppointmentStatusPending,
	}
	adapter.UpdateBookedSlot(ctx, nil, appointment)

	index, _ := adapter.GetBookedSlots(ctx, "doc-1")
	assert.Equal(t, domain.BookedSlotIndex{"2024-05-01": {"10:00"}}, index)

	previous := appointment
	appointment.AppointmentDate = json_types.NewDate(2024, time.May, 2)
	appointment.AppointmentTime = "11:20"
	adapter.UpdateBookedSlot(ctx, &previous, appointment)

	index, _ = adapter.GetBookedSlots(ctx, "doc-1")
	assert.Equal(t, domain.BookedSlotIndex{"2024-05-02": {"11:20"}}, index)

	previous = appointment
	appointment.Status = domain.AppointmentStatusCancelled
	adapter.UpdateBookedSlot(ctx, &previous, appointment)

	index, _ = adapter.GetBookedSlots(ctx, "doc-1")
	assert.Empty(t, index)
}

func TestUpdateBookedSlotFreesSlotOfFetchedAppointment(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, true)
	// Индекс с бэкенда: a-1 занимает 10:00, но через кэш еще не проходила
	adapter.StoreBookedSlots(ctx, "doc-1", domain.BookedSlotIndex{
		"2024-05-01": {"10:00", "11:00"},
	})

	previous := domain.Appointment{
		ID:              "a-1",
		DoctorID:        "doc-1",
		AppointmentDate: json_types.NewDate(2024, time.May, 1),
		AppointmentTime: "10:00",
		Status:          domain.AppointmentStatusPending,
	}

	rescheduled := previous
	rescheduled.AppointmentTime = "12:00"
	adapter.UpdateBookedSlot(ctx, &previous, rescheduled)

	index, _ := adapter.GetBookedSlots(ctx, "doc-1")
	assert.Equal(t, domain.BookedSlotIndex{"2024-05-01": {"11:00", "12:00"}}, index)

	// Отмена другой загруженной записи
	other := domain.Appointment{
		ID:              "a-2",
		DoctorID:        "doc-1",
		AppointmentDate: json_types.NewDate(2024, time.May, 1),
		AppointmentTime: "11:00",
		Status:          domain.AppointmentStatusPending,
	}
	cancelled := other
	cancelled.Status = domain.AppointmentStatusCancelled
	adapter.UpdateBookedSlot(ctx, &other, cancelled)

	index, _ = adapter.GetBookedSlots(ctx, "doc-1")
	assert.Equal(t, domain.BookedSlotIndex{"2024-05-01": {"12:00"}}, index)
}

func TestUpdateBookedSlotKeepsSlotWhenPreviousWasCancelled(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, true)
	// 10:00 занято другой записью, a-1 была отменена и слот не держала
	adapter.StoreBookedSlots(ctx, "doc-1", domain.BookedSlotIndex{"2024-05-01": {"10:00"}})

	previous := domain.Appointment{
		ID:              "a-1",
		DoctorID:        "doc-1",
		AppointmentDate: json_types.NewDate(2024, time.May, 1),
		AppointmentTime: "10:00",
		Status:          domain.AppointmentStatusCancelled,
	}
	updated := previous
	updated.Status = domain.AppointmentStatusCancelled
	adapter.UpdateBookedSlot(ctx, &previous, updated)

	index, _ := adapter.GetBookedSlots(ctx, "doc-1")
	assert.True(t, index.Contains("2024-05-01", "10:00"))
}

func TestRefreshBookedSlot(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, true)
	adapter.StoreBookedSlots(ctx, "doc-1", domain.BookedSlotIndex{"2024-05-01": {"09:00"}})

	appointment := domain.Appointment{
		ID:              "a-1",
		DoctorID:        "doc-1",
		AppointmentDate: json_types.NewDate(2024, time.May, 1),
		AppointmentTime: "10:00",
		Status:          domain.AppointmentStatusPending,
	}
	adapter.UpdateBookedSlot(ctx, nil, appointment)

	// Известная запись переносится точно
	appointment.AppointmentTime = "10:40"
	adapter.RefreshBookedSlot(ctx, appointment)

	index, exists := adapter.GetBookedSlots(ctx, "doc-1")
	require.True(t, exists)
	assert.Equal(t, domain.BookedSlotIndex{"2024-05-01": {"09:00", "10:40"}}, index)

	// Прежний слот неизвестной записи не найти, индекс сбрасывается
	adapter.RefreshBookedSlot(ctx, domain.Appointment{
		ID:              "a-7",
		DoctorID:        "doc-1",
		AppointmentDate: json_types.NewDate(2024, time.May, 1),
		AppointmentTime: "09:00",
		Status:          domain.AppointmentStatusCancelled,
	})

	_, exists = adapter.GetBookedSlots(ctx, "doc-1")
	assert.False(t, exists)
}

func TestUpdateBookedSlotWithoutEntryIsNoop(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, true)

	adapter.UpdateBookedSlot(ctx, nil, domain.Appointment{
		ID:              "a-1",
		DoctorID:        "doc-1",
		AppointmentDate: json_types.NewDate(2024, time.May, 1),
		AppointmentTime: "10:00",
	})

	_, exists := adapter.GetBookedSlots(ctx, "doc-1")
	assert.False(t, exists)
}

func TestInvalidateBookedSlots(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, true)
	adapter.StoreBookedSlots(ctx, "doc-1", domain.BookedSlotIndex{})
	adapter.StoreBookedSlots(ctx, "doc-2", domain.BookedSlotIndex{})

	adapter.InvalidateBookedSlots(ctx, "doc-1")
	_, exists := adapter.GetBookedSlots(ctx, "doc-1")
	assert.False(t, exists)
	_, exists = adapter.GetBookedSlots(ctx, "doc-2")
	assert.True(t, exists)

	adapter.InvalidateAllBookedSlots(ctx)
	_, exists = adapter.GetBookedSlots(ctx, "doc-2")
	assert.False(t, exists)
}

func TestDoctorsTTL(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, true)

	_, exists := adapter.GetDoctors(ctx)
	assert.False(t, exists)

	adapter.StoreDoctors(ctx, []domain.Doctor{{ID: "doc-1"}})
	doctors, exists := adapter.GetDoctors(ctx)
	require.True(t, exists)
	assert.Len(t, doctors, 1)

	adapter.doctorsCache.timestamp = time.Now().Add(-2 * time.Minute)
	_, exists = adapter.GetDoctors(ctx)
	assert.False(t, exists)

	adapter.StoreDoctors(ctx, nil)
	doctors, exists = adapter.GetDoctors(ctx)
	assert.True(t, exists)
	assert.Empty(t, doctors)

	adapter.InvalidateDoctors(ctx)
	_, exists = adapter.GetDoctors(ctx)
	assert.False(t, exists)
}

func TestAppointmentsStoreWorksWithCacheDisabled(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, false)

	appointments := []domain.Appointment{
		{ID: "a-1", Status: domain.AppointmentStatusPending},
		{ID: "a-2", Status: domain.AppointmentStatusDone},
	}
	adapter.StoreAppointments(ctx, "user-1", appointments)

	stored, exists := adapter.GetAppointments(ctx, "user-1")
	require.True(t, exists)
	assert.Equal(t, appointments, stored)

	updated := appointments[0]
	updated.Status = domain.AppointmentStatusCancelled
	assert.True(t, adapter.UpdateAppointment(ctx, "user-1", updated))
	assert.False(t, adapter.UpdateAppointment(ctx, "user-1", domain.Appointment{ID: "missing"}))
	assert.False(t, adapter.UpdateAppointment(ctx, "user-2", updated))

	stored, _ = adapter.GetAppointments(ctx, "user-1")
	assert.Equal(t, []string{"a-1", "a-2"}, []string{stored[0].ID, stored[1].ID})
	assert.Equal(t, domain.AppointmentStatusCancelled, stored[0].Status)

	adapter.InvalidateAppointments(ctx, "user-1")
	_, exists = adapter.GetAppointments(ctx, "user-1")
	assert.False(t, exists)
}

func TestPurgeAll(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t, true)
	adapter.StoreBookedSlots(ctx, "doc-1", domain.BookedSlotIndex{})
	adapter.StoreDoctors(ctx, []domain.Doctor{{ID: "doc-1"}})
	adapter.StoreAppointments(ctx, "user-1", []domain.Appointment{{ID: "a-1"}})

	adapter.PurgeAll(ctx)

	_, exists := adapter.GetBookedSlots(ctx, "doc-1")
	assert.False(t, exists)
	_, exists = adapter.GetDoctors(ctx)
	assert.False(t, exists)
	_, exists = adapter.GetAppointments(ctx, "user-1")
	assert.False(t, exists)
}
