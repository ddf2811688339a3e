package appointment_service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
	"github.com/suchimauz/hospital-desk/internal/core/ports/in"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
	"github.com/suchimauz/hospital-desk/internal/core/services/forms"
	"github.com/suchimauz/hospital-desk/internal/utils"
	"golang.org/x/sync/singleflight"
)

const (
	actionBook       = "book"
	actionReschedule = "reschedule"
	actionCancel     = "cancel"
	actionStatus     = "status"
)

// Запрос, общий для нескольких вызывающих, не зависит от отмены контекста
// первого из них
const defaultMutationTimeout = 30 * time.Second

type AppointmentService struct {
	backendPort out.BackendPort
	cachePort   out.CachePort
	slotUseCase in.SlotUseCase
	validator   *forms.Validator
	logger      out.LoggerPort
	cfg         *config.Config

	// Повторная отправка той же формы тем же пользователем, пока первая в
	// полете, получает результат первой и не уходит на бэкенд
	inflight singleflight.Group
}

func NewAppointmentService(
	backendPort out.BackendPort,
	cachePort out.CachePort,
	slotUseCase in.SlotUseCase,
	validator *forms.Validator,
	cfg *config.Config,
	logger out.LoggerPort,
) *AppointmentService {
	return &AppointmentService{
		backendPort: backendPort,
		cachePort:   cachePort,
		slotUseCase: slotUseCase,
		validator:   validator,
		logger:      logger.WithModule("AppointmentService"),
		cfg:         cfg,
	}
}

// sync перечитывает записи пользователя и кладет их в хранилище.
// При ошибке хранилище не трогаем.
func (s *AppointmentService) sync(ctx context.Context, session domain.Session) ([]domain.Appointment, error) {
	appointments, err := s.backendPort.ListAppointments(ctx, session)
	if err != nil {
		s.logger.Error("appointments.fetch_failed", out.LogFields{
			"userId": session.UserID,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("appointments.fetch_failed: %w", err)
	}
	if appointments == nil {
		appointments = []domain.Appointment{}
	}

	s.cachePort.StoreAppointments(ctx, session.UserID, appointments)

	return appointments, nil
}

// records - хранилище пользователя, при пустом - загрузка с бэкенда
func (s *AppointmentService) records(ctx context.Context, session domain.Session) ([]domain.Appointment, error) {
	if appointments, exists := s.cachePort.GetAppointments(ctx, session.UserID); exists {
		return appointments, nil
	}
	return s.sync(ctx, session)
}

func (s *AppointmentService) ListAppointments(ctx context.Context, session domain.Session, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	appointments, err := s.sync(ctx, session)
	if err != nil {
		return nil, err
	}

	filtered := FilterAppointments(appointments, filter)

	s.logger.Debug("appointments.filtered", out.LogFields{
		"userId":   session.UserID,
		"tab":      filter.Tab,
		"doctorId": filter.DoctorID,
		"total":    len(appointments),
		"filtered": len(filtered),
	})

	return filtered, nil
}

func (s *AppointmentService) TabCounts(ctx context.Context, session domain.Session) ([]domain.TabCount, error) {
	appointments, err := s.records(ctx, session)
	if err != nil {
		return nil, err
	}
	return TabCounts(appointments), nil
}

// Book проверяет форму, переводит время в 24ч и создает запись.
// Пациент всегда записывает себя.
func (s *AppointmentService) Book(ctx context.Context, session domain.Session, form domain.BookingForm) (*domain.Appointment, error) {
	if form.Period == "" {
		form.Period = string(utils.PeriodAM)
	}
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	request, err := bookingRequest(session, form)
	if err != nil {
		return nil, err
	}

	booked, err := s.slotUseCase.BookedSlots(ctx, session, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if booked.Contains(request.AppointmentDate, request.AppointmentTime) {
		s.logger.Warn("appointments.book.slot_taken", out.LogFields{
			"doctorId": request.DoctorID,
			"date":     request.AppointmentDate,
			"time":     request.AppointmentTime,
		})
		return nil, domain.ErrSlotAlreadyBooked
	}

	key := mutationKey(actionBook, session.UserID, request.DoctorID, request.AppointmentDate, request.AppointmentTime, requestDigest(request))
	result, err, shared := s.inflight.Do(key, func() (interface{}, error) {
		callCtx, cancel := s.detached(ctx)
		defer cancel()
		return s.backendPort.CreateAppointment(callCtx, session, request)
	})
	s.logShared(key, shared)
	if err != nil {
		s.logger.Error("appointments.book.failed", out.LogFields{
			"doctorId": request.DoctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("appointments.book.failed: %w", err)
	}

	appointment := *result.(*domain.Appointment)

	if appointments, exists := s.cachePort.GetAppointments(ctx, session.UserID); exists {
		if _, found := findAppointment(appointments, appointment.ID); !found {
			s.cachePort.StoreAppointments(ctx, session.UserID, append(appointments, appointment))
		}
	}
	s.cachePort.UpdateBookedSlot(ctx, nil, appointment)

	s.logger.Info("appointments.book.succeeded", out.LogFields{
		"appointmentId": appointment.ID,
		"doctorId":      appointment.DoctorID,
	})

	return &appointment, nil
}

func bookingRequest(session domain.Session, form domain.BookingForm) (domain.AppointmentRequest, error) {
	hour12, err := strconv.Atoi(form.Hour)
	if err != nil {
		return domain.AppointmentRequest{}, &domain.ValidationError{Fields: []string{"Time"}}
	}
	hour24, err := utils.To24Hour(hour12, utils.Period(form.Period))
	if err != nil {
		return domain.AppointmentRequest{}, &domain.ValidationError{Fields: []string{"Time"}}
	}
	minute, err := strconv.Atoi(form.Minute)
	if err != nil {
		return domain.AppointmentRequest{}, &domain.ValidationError{Fields: []string{"Time"}}
	}

	patientID := form.PatientID
	if session.Role == domain.RolePatient {
		patientID = session.UserID
	}

	return domain.AppointmentRequest{
		PatientID:       patientID,
		Specialty:       form.Specialty,
		Country:         form.Country,
		State:           form.State,
		City:            form.City,
		HospitalID:      form.HospitalID,
		DoctorID:        form.DoctorID,
		AppointmentDate: form.AppointmentDate,
		AppointmentTime: utils.FormatHourMinute(hour24, minute),
		PatientIssue:    form.PatientIssue,
		DiseaseName:     form.DiseaseName,
		AppointmentType: form.AppointmentType,
	}, nil
}

// Reschedule переносит запись и возвращает ее в статус Pending. Время,
// уже занятое в индексе врача, отклоняется до запроса к бэкенду.
func (s *AppointmentService) Reschedule(ctx context.Context, session domain.Session, appointmentID string, form domain.RescheduleForm) (*domain.Appointment, error) {
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	current, err := s.lookup(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}

	date, err := json_types.ParseDate(form.AppointmentDate)
	if err != nil {
		return nil, &domain.ValidationError{Fields: []string{"Date"}}
	}

	sameSlot := current.AppointmentDate.String() == form.AppointmentDate && current.AppointmentTime == form.AppointmentTime
	if !sameSlot {
		booked, err := s.slotUseCase.BookedSlots(ctx, session, current.DoctorID)
		if err != nil {
			return nil, err
		}
		if booked.Contains(form.AppointmentDate, form.AppointmentTime) {
			s.logger.Warn("appointments.reschedule.slot_taken", out.LogFields{
				"appointmentId": appointmentID,
				"doctorId":      current.DoctorID,
				"date":          form.AppointmentDate,
				"time":          form.AppointmentTime,
			})
			return nil, domain.ErrSlotAlreadyBooked
		}
	}

	updated := current
	updated.AppointmentDate = date
	updated.AppointmentTime = form.AppointmentTime
	updated.Status = domain.AppointmentStatusPending

	key := mutationKey(actionReschedule, session.UserID, appointmentID, form.AppointmentDate, form.AppointmentTime)
	return s.mutate(ctx, session, key, actionReschedule, current, updated, func(ctx context.Context) error {
		return s.backendPort.RescheduleAppointment(ctx, session, appointmentID, form)
	})
}

func (s *AppointmentService) Cancel(ctx context.Context, session domain.Session, appointmentID string) (*domain.Appointment, error) {
	current, err := s.lookup(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}

	updated := current
	updated.Status = domain.AppointmentStatusCancelled

	key := mutationKey(actionCancel, session.UserID, appointmentID)
	return s.mutate(ctx, session, key, actionCancel, current, updated, func(ctx context.Context) error {
		return s.backendPort.UpdateAppointmentStatus(ctx, session, appointmentID, domain.AppointmentStatusCancelled)
	})
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, session domain.Session, appointmentID string, form domain.StatusUpdateForm) (*domain.Appointment, error) {
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	current, err := s.lookup(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}

	updated := current
	updated.Status = form.Status

	key := mutationKey(actionStatus, session.UserID, appointmentID, string(form.Status))
	return s.mutate(ctx, session, key, actionStatus, current, updated, func(ctx context.Context) error {
		return s.backendPort.UpdateAppointmentStatus(ctx, session, appointmentID, form.Status)
	})
}

func (s *AppointmentService) lookup(ctx context.Context, session domain.Session, appointmentID string) (domain.Appointment, error) {
	appointments, err := s.records(ctx, session)
	if err != nil {
		return domain.Appointment{}, err
	}

	appointment, found := findAppointment(appointments, appointmentID)
	if !found {
		return domain.Appointment{}, fmt.Errorf("appointments.lookup: %w: appointment %s", domain.ErrNotFound, appointmentID)
	}
	return appointment, nil
}

// mutate выполняет один запрос к бэкенду и только после успеха заменяет
// запись в хранилище. При ошибке хранилище остается прежним.
// current - запись до изменения, ее слот освобождается в индексе врача.
func (s *AppointmentService) mutate(
	ctx context.Context,
	session domain.Session,
	key string,
	action string,
	current domain.Appointment,
	updated domain.Appointment,
	call func(ctx context.Context) error,
) (*domain.Appointment, error) {
	_, err, shared := s.inflight.Do(key, func() (interface{}, error) {
		callCtx, cancel := s.detached(ctx)
		defer cancel()
		return nil, call(callCtx)
	})
	s.logShared(key, shared)
	if err != nil {
		s.logger.Error("appointments.mutation.failed", out.LogFields{
			"action":        action,
			"appointmentId": updated.ID,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("appointments.%s.failed: %w", action, err)
	}

	if !s.cachePort.UpdateAppointment(ctx, session.UserID, updated) {
		s.logger.Debug("appointments.store.miss", out.LogFields{
			"appointmentId": updated.ID,
		})
	}
	s.cachePort.UpdateBookedSlot(ctx, &current, updated)

	s.logger.Info("appointments.mutation.succeeded", out.LogFields{
		"action":        action,
		"appointmentId": updated.ID,
		"status":        updated.Status,
	})

	return &updated, nil
}

func (s *AppointmentService) logShared(key string, shared bool) {
	if shared {
		s.logger.Debug("appointments.mutation.shared", out.LogFields{
			"key": key,
		})
	}
}

// detached - контекст общего запроса: значения от ctx, отмена и срок свои
func (s *AppointmentService) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.Backend.Timeout
	if timeout <= 0 {
		timeout = defaultMutationTimeout
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// mutationKey - action:user:... Разные пользователи и разные формы
// никогда не делят один запрос.
func mutationKey(action string, parts ...string) string {
	return action + ":" + strings.Join(parts, ":")
}

func requestDigest(request domain.AppointmentRequest) string {
	data, err := json.Marshal(request)
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", request))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
