package directory_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
	"golang.org/x/sync/errgroup"
)

// DashboardStats собирает счетчики параллельно; первая ошибка отменяет
// остальные запросы
func (s *DirectoryService) DashboardStats(ctx context.Context, session domain.Session) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		patients, err := s.backendPort.ListPatients(groupCtx, session)
		if err != nil {
			return fmt.Errorf("patients: %w", err)
		}
		stats.Patients = len(patients)
		return nil
	})
	group.Go(func() error {
		doctors, err := s.ListDoctors(groupCtx, session)
		if err != nil {
			return err
		}
		stats.Doctors = len(doctors)
		return nil
	})
	group.Go(func() error {
		receptionists, err := s.backendPort.ListReceptionists(groupCtx, session)
		if err != nil {
			return fmt.Errorf("receptionists: %w", err)
		}
		stats.Receptionists = len(receptionists)
		return nil
	})
	group.Go(func() error {
		appointments, err := s.backendPort.ListAppointments(groupCtx, session)
		if err != nil {
			return fmt.Errorf("appointments: %w", err)
		}
		stats.Appointments = len(appointments)
		return nil
	})

	if err := group.Wait(); err != nil {
		s.logger.Error("directory.stats.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.stats.failed: %w", err)
	}

	return stats, nil
}
