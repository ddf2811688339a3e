package directory_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

// FilterInvoices фильтрует по эффективному статусу и поиску по номеру
// счета, пациенту и диагнозу
func FilterInvoices(invoices []domain.Invoice, filter domain.InvoiceFilter) []domain.Invoice {
	result := make([]domain.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if filter.Status != "" && invoice.EffectiveStatus() != filter.Status {
			continue
		}
		if !matches(filter.Search, invoice.BillNumber, invoice.PatientName, invoice.DiseaseName) {
			continue
		}
		result = append(result, invoice)
	}
	return result
}

func (s *DirectoryService) ListInvoices(ctx context.Context, session domain.Session, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	invoices, err := s.backendPort.ListInvoices(ctx, session)
	if err != nil {
		s.logger.Error("directory.invoices.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.invoices.fetch_failed: %w", err)
	}
	return FilterInvoices(invoices, filter), nil
}

func (s *DirectoryService) GetInvoice(ctx context.Context, session domain.Session, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.backendPort.GetInvoice(ctx, session, invoiceID)
	if err != nil {
		s.logger.Error("directory.invoice.fetch_failed", out.LogFields{
			"invoiceId": invoiceID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("directory.invoice.fetch_failed: %w", err)
	}
	return invoice, nil
}

// CreateInvoice считает итог сам, присланный клиентом итог не принимается
func (s *DirectoryService) CreateInvoice(ctx context.Context, session domain.Session, form domain.InvoiceForm) (*domain.Invoice, error) {
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	invoice := domain.Invoice{
		BillNumber:  form.BillNumber,
		BillDate:    form.BillDate,
		BillTime:    form.BillTime,
		HospitalID:  form.HospitalID,
		PatientID:   form.PatientID,
		DoctorID:    form.DoctorID,
		DiseaseName: form.DiseaseName,
		Description: form.Description,
		Amount:      form.Amount,
		Tax:         form.Tax,
		Discount:    form.Discount,
		TotalAmount: form.Total(),
		PaymentType: form.PaymentType,
		Status:      domain.InvoiceStatusUnpaid,
	}

	created, err := s.backendPort.CreateInvoice(ctx, session, invoice)
	if err != nil {
		s.logger.Error("directory.invoice.create_failed", out.LogFields{
			"patientId": form.PatientID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("directory.invoice.create_failed: %w", err)
	}

	s.logger.Info("directory.invoice.created", out.LogFields{
		"invoiceId":   created.ID,
		"totalAmount": created.TotalAmount,
	})
	return created, nil
}

// UpdateInvoiceStatus: оплаченный счет больше не меняется
func (s *DirectoryService) UpdateInvoiceStatus(ctx context.Context, session domain.Session, invoiceID string, form domain.InvoiceStatusForm) (*domain.Invoice, error) {
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	invoice, err := s.GetInvoice(ctx, session, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.EffectiveStatus() == domain.InvoiceStatusPaid {
		return nil, domain.ErrInvoiceAlreadyPaid
	}

	if err := s.backendPort.UpdateInvoiceStatus(ctx, session, invoiceID, form.Status); err != nil {
		s.logger.Error("directory.invoice.status_failed", out.LogFields{
			"invoiceId": invoiceID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("directory.invoice.status_failed: %w", err)
	}

	invoice.Status = form.Status
	return invoice, nil
}
