package directory_service

import (
	"context"
	"fmt"
	"strings"

	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
	"github.com/suchimauz/hospital-desk/internal/core/services/forms"
)

type DirectoryService struct {
	backendPort out.BackendPort
	cachePort   out.CachePort
	validator   *forms.Validator
	logger      out.LoggerPort
	cfg         *config.Config
}

func NewDirectoryService(
	backendPort out.BackendPort,
	cachePort out.CachePort,
	validator *forms.Validator,
	cfg *config.Config,
	logger out.LoggerPort,
) *DirectoryService {
	return &DirectoryService{
		backendPort: backendPort,
		cachePort:   cachePort,
		validator:   validator,
		logger:      logger.WithModule("DirectoryService"),
		cfg:         cfg,
	}
}

func (s *DirectoryService) cacheEnabled() bool {
	return s.cachePort != nil && s.cfg.Cache.Enabled
}

func (s *DirectoryService) ListDoctors(ctx context.Context, session domain.Session) ([]domain.Doctor, error) {
	if s.cacheEnabled() {
		if doctors, exists := s.cachePort.GetDoctors(ctx); exists {
			return doctors, nil
		}
	}

	doctors, err := s.backendPort.ListDoctors(ctx, session)
	if err != nil {
		s.logger.Error("directory.doctors.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.doctors.fetch_failed: %w", err)
	}
	if doctors == nil {
		doctors = []domain.Doctor{}
	}

	if s.cacheEnabled() {
		s.cachePort.StoreDoctors(ctx, doctors)
	}

	return doctors, nil
}

// Specialties - уникальные специальности врачей в порядке первого появления
func (s *DirectoryService) Specialties(ctx context.Context, session domain.Session) ([]string, error) {
	doctors, err := s.ListDoctors(ctx, session)
	if err != nil {
		return nil, err
	}
	return UniqueSpecialties(doctors), nil
}

func UniqueSpecialties(doctors []domain.Doctor) []string {
	seen := make(map[string]struct{}, len(doctors))
	specialties := make([]string, 0)
	for _, doctor := range doctors {
		specialty := doctor.DoctorDetails.SpecialtyType
		if specialty == "" {
			continue
		}
		if _, ok := seen[specialty]; ok {
			continue
		}
		seen[specialty] = struct{}{}
		specialties = append(specialties, specialty)
	}
	return specialties
}

func (s *DirectoryService) ListPatients(ctx context.Context, session domain.Session, search string) ([]domain.Patient, error) {
	patients, err := s.backendPort.ListPatients(ctx, session)
	if err != nil {
		s.logger.Error("directory.patients.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.patients.fetch_failed: %w", err)
	}

	result := make([]domain.Patient, 0, len(patients))
	for _, patient := range patients {
		if matches(search, patient.FirstName+" "+patient.LastName, patient.Email, patient.PhoneNumber) {
			result = append(result, patient)
		}
	}
	return result, nil
}

func (s *DirectoryService) GetPatient(ctx context.Context, session domain.Session, patientID string) (*domain.Patient, error) {
	patient, err := s.backendPort.GetPatient(ctx, session, patientID)
	if err != nil {
		s.logger.Error("directory.patient.fetch_failed", out.LogFields{
			"patientId": patientID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("directory.patient.fetch_failed: %w", err)
	}
	return patient, nil
}

func (s *DirectoryService) RegisterPatient(ctx context.Context, session domain.Session, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error) {
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	patient, err := s.backendPort.RegisterPatient(ctx, session, form, image)
	if err != nil {
		s.logger.Error("directory.patient.register_failed", out.LogFields{
			"email": form.Email,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.patient.register_failed: %w", err)
	}

	s.logger.Info("directory.patient.registered", out.LogFields{
		"patientId": patient.ID,
		"withImage": image != nil,
	})
	return patient, nil
}

func (s *DirectoryService) UpdatePatient(ctx context.Context, session domain.Session, patientID string, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error) {
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	patient, err := s.backendPort.UpdatePatient(ctx, session, patientID, form, image)
	if err != nil {
		s.logger.Error("directory.patient.update_failed", out.LogFields{
			"patientId": patientID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("directory.patient.update_failed: %w", err)
	}
	return patient, nil
}

func (s *DirectoryService) DeletePatient(ctx context.Context, session domain.Session, patientID string) error {
	if err := s.backendPort.DeletePatient(ctx, session, patientID); err != nil {
		s.logger.Error("directory.patient.delete_failed", out.LogFields{
			"patientId": patientID,
			"error":     err.Error(),
		})
		return fmt.Errorf("directory.patient.delete_failed: %w", err)
	}

	s.logger.Info("directory.patient.deleted", out.LogFields{
		"patientId": patientID,
	})
	return nil
}

func (s *DirectoryService) ListReceptionists(ctx context.Context, session domain.Session) ([]domain.Receptionist, error) {
	receptionists, err := s.backendPort.ListReceptionists(ctx, session)
	if err != nil {
		s.logger.Error("directory.receptionists.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.receptionists.fetch_failed: %w", err)
	}
	if receptionists == nil {
		receptionists = []domain.Receptionist{}
	}
	return receptionists, nil
}

func (s *DirectoryService) ListHospitals(ctx context.Context, session domain.Session) ([]domain.Hospital, error) {
	hospitals, err := s.backendPort.ListHospitals(ctx, session)
	if err != nil {
		s.logger.Error("directory.hospitals.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.hospitals.fetch_failed: %w", err)
	}
	if hospitals == nil {
		hospitals = []domain.Hospital{}
	}
	return hospitals, nil
}

// matches: пустой поиск совпадает со всем, иначе подстрока без учета регистра
func matches(search string, values ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), search) {
			return true
		}
	}
	return false
}
