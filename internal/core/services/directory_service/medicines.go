package directory_service

import (
	"context"
	"fmt"
	"strings"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

func (s *DirectoryService) ListMedicines(ctx context.Context, session domain.Session, search string) ([]domain.Medicine, error) {
	medicines, err := s.backendPort.ListMedicines(ctx, session)
	if err != nil {
		s.logger.Error("directory.medicines.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.medicines.fetch_failed: %w", err)
	}

	result := make([]domain.Medicine, 0, len(medicines))
	for _, medicine := range medicines {
		if matches(search, medicine.Name) {
			result = append(result, medicine)
		}
	}
	return result, nil
}

func (s *DirectoryService) CreateMedicine(ctx context.Context, session domain.Session, form domain.MedicineForm) (*domain.Medicine, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	medicine, err := s.backendPort.CreateMedicine(ctx, session, form)
	if err != nil {
		s.logger.Error("directory.medicine.create_failed", out.LogFields{
			"name":  form.Name,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.medicine.create_failed: %w", err)
	}
	return medicine, nil
}

func (s *DirectoryService) UpdateMedicine(ctx context.Context, session domain.Session, medicineID string, form domain.MedicineForm) (*domain.Medicine, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	medicine, err := s.backendPort.UpdateMedicine(ctx, session, medicineID, form)
	if err != nil {
		s.logger.Error("directory.medicine.update_failed", out.LogFields{
			"medicineId": medicineID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("directory.medicine.update_failed: %w", err)
	}
	return medicine, nil
}

func (s *DirectoryService) DeleteMedicine(ctx context.Context, session domain.Session, medicineID string) error {
	if err := s.backendPort.DeleteMedicine(ctx, session, medicineID); err != nil {
		s.logger.Error("directory.medicine.delete_failed", out.LogFields{
			"medicineId": medicineID,
			"error":      err.Error(),
		})
		return fmt.Errorf("directory.medicine.delete_failed: %w", err)
	}
	return nil
}
