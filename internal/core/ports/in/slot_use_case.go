package in

import (
	"context"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
)

type SlotUseCase interface {
	GetDoctor(ctx context.Context, session domain.Session, doctorID string) (*domain.Doctor, error)

	// Сетка слотов врача на неделю начиная с weekStart
	SlotGrid(ctx context.Context, session domain.Session, doctorID string, granularity int, weekStart json_types.Date) (*domain.SlotGrid, error)

	// Индекс занятых слотов врача
	BookedSlots(ctx context.Context, session domain.Session, doctorID string) (domain.BookedSlotIndex, error)

	// Часы для диалога переноса записи
	DoctorHours(ctx context.Context, session domain.Session, doctorID string) ([]string, error)

	TimePicker(ctx context.Context, session domain.Session, doctorID string, state domain.TimePickerState, action *domain.TimePickerAction) (*domain.TimePickerView, error)
}
