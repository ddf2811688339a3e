package slot_service

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
	"github.com/suchimauz/hospital-desk/internal/utils"
)

type SlotService struct {
	backendPort out.BackendPort
	cachePort   out.CachePort
	logger      out.LoggerPort
	cfg         *config.Config
	location    *time.Location
}

func NewSlotService(
	backendPort out.BackendPort,
	cachePort out.CachePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *SlotService {
	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		location = time.UTC
	}

	return &SlotService{
		backendPort: backendPort,
		cachePort:   cachePort,
		logger:      logger.WithModule("SlotService"),
		cfg:         cfg,
		location:    location,
	}
}

func (s *SlotService) cacheEnabled() bool {
	return s.cachePort != nil && s.cfg.Cache.Enabled
}

// GetDoctor ищет врача в кэше списка врачей, иначе спрашивает бэкенд
func (s *SlotService) GetDoctor(ctx context.Context, session domain.Session, doctorID string) (*domain.Doctor, error) {
	if s.cacheEnabled() {
		if doctors, exists := s.cachePort.GetDoctors(ctx); exists {
			for _, doctor := range doctors {
				if doctor.ID == doctorID {
					s.logger.Debug("slots.doctor.cache.hit", out.LogFields{
						"doctorId": doctorID,
					})
					return &doctor, nil
				}
			}
		}
	}

	doctor, err := s.backendPort.GetDoctor(ctx, session, doctorID)
	if err != nil {
		s.logger.Error("slots.doctor.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("slots.doctor.fetch_failed: %w", err)
	}

	return doctor, nil
}

// BookedSlots пересчитывает индекс занятых слотов врача. Кэш (если
// включен) ведется по врачу и обновляется событиями из RabbitMQ.
func (s *SlotService) BookedSlots(ctx context.Context, session domain.Session, doctorID string) (domain.BookedSlotIndex, error) {
	if s.cacheEnabled() {
		if index, exists := s.cachePort.GetBookedSlots(ctx, doctorID); exists {
			s.logger.Debug("slots.booked.cache.hit", out.LogFields{
				"doctorId": doctorID,
				"dates":    len(index),
			})
			return index, nil
		}
	}

	index, err := s.backendPort.GetBookedSlots(ctx, session, doctorID)
	if err != nil {
		s.logger.Error("slots.booked.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("slots.booked.fetch_failed: %w", err)
	}
	if index == nil {
		index = domain.BookedSlotIndex{}
	}

	if s.cacheEnabled() {
		s.cachePort.StoreBookedSlots(ctx, doctorID, index)
	}

	return index, nil
}

func (s *SlotService) SlotGrid(ctx context.Context, session domain.Session, doctorID string, granularity int, weekStart json_types.Date) (*domain.SlotGrid, error) {
	s.logger.Info("slots.grid.started", out.LogFields{
		"doctorId":    doctorID,
		"granularity": granularity,
	})

	doctor, err := s.GetDoctor(ctx, session, doctorID)
	if err != nil {
		return nil, err
	}

	if granularity <= 0 {
		granularity = s.cfg.Slots.GranularityMinutes
	}

	workingHours := doctor.DoctorDetails.WorkingHours
	s.warnMalformed(doctorID, workingHours)

	index, err := s.BookedSlots(ctx, session, doctorID)
	if err != nil {
		return nil, err
	}

	if weekStart.IsZero() {
		weekStart = utils.Today(s.location)
	}

	return &domain.SlotGrid{
		DoctorID:    doctorID,
		Granularity: granularity,
		Days:        utils.WeekDays(weekStart),
		Slots:       ComputeAvailableSlots(workingHours, granularity),
		Booked:      index,
	}, nil
}

// DoctorHours - часы для диалога переноса записи
func (s *SlotService) DoctorHours(ctx context.Context, session domain.Session, doctorID string) ([]string, error) {
	doctor, err := s.GetDoctor(ctx, session, doctorID)
	if err != nil {
		return nil, err
	}

	s.warnMalformed(doctorID, doctor.DoctorDetails.WorkingHours)

	return AvailableHours(doctor.DoctorDetails.WorkingHours), nil
}

// TimePicker применяет действие (если есть) и пересчитывает доступность
// минут по свежему индексу занятых слотов врача
func (s *SlotService) TimePicker(ctx context.Context, session domain.Session, doctorID string, state domain.TimePickerState, action *domain.TimePickerAction) (*domain.TimePickerView, error) {
	if action != nil {
		next, err := ReduceTimePicker(state, *action)
		if err != nil {
			return nil, err
		}
		state = next
	}

	index, err := s.BookedSlots(ctx, session, doctorID)
	if err != nil {
		return nil, err
	}

	view := BuildTimePickerView(state, index)
	return &view, nil
}

func (s *SlotService) warnMalformed(doctorID string, workingHours domain.WorkingHours) {
	if malformed := MalformedWindows(workingHours); len(malformed) > 0 {
		s.logger.Warn("slots.working_hours.malformed", out.LogFields{
			"doctorId":     doctorID,
			"windows":      malformed,
			"workingHours": workingHours,
		})
	}
}
