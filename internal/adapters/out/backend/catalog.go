package backend

import (
	"context"
	"net/http"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

// Лекарства

func (a *BackendAdapter) ListMedicines(ctx context.Context, session domain.Session) ([]domain.Medicine, error) {
	return getList[domain.Medicine](ctx, a, session, "backend.medicines.fetch", "/medicine")
}

func (a *BackendAdapter) CreateMedicine(ctx context.Context, session domain.Session, form domain.MedicineForm) (*domain.Medicine, error) {
	data, err := a.doJSON(ctx, session, "backend.medicine.create", http.MethodPost, "/medicine/", form)
	if err != nil {
		return nil, err
	}
	return decodeInto[domain.Medicine](a, "backend.medicine.create", data)
}

func (a *BackendAdapter) UpdateMedicine(ctx context.Context, session domain.Session, medicineID string, form domain.MedicineForm) (*domain.Medicine, error) {
	data, err := a.doJSON(ctx, session, "backend.medicine.update", http.MethodPut, "/medicine/"+escape(medicineID), form)
	if err != nil {
		return nil, err
	}
	return decodeInto[domain.Medicine](a, "backend.medicine.update", data)
}

func (a *BackendAdapter) DeleteMedicine(ctx context.Context, session domain.Session, medicineID string) error {
	a.logger.Info("backend.medicine.delete", out.LogFields{
		"medicineId": medicineID,
	})

	_, err := a.doJSON(ctx, session, "backend.medicine.delete", http.MethodDelete, "/medicine/"+escape(medicineID), nil)
	return err
}

// Счета

func (a *BackendAdapter) ListInvoices(ctx context.Context, session domain.Session) ([]domain.Invoice, error) {
	return getList[domain.Invoice](ctx, a, session, "backend.invoices.fetch", "/invoices")
}

func (a *BackendAdapter) GetInvoice(ctx context.Context, session domain.Session, invoiceID string) (*domain.Invoice, error) {
	data, err := a.doJSON(ctx, session, "backend.invoice.fetch", http.MethodGet, "/invoices/"+escape(invoiceID), nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[domain.Invoice](a, "backend.invoice.fetch", data)
}

func (a *BackendAdapter) CreateInvoice(ctx context.Context, session domain.Session, invoice domain.Invoice) (*domain.Invoice, error) {
	a.logger.Info("backend.invoice.create", out.LogFields{
		"patientId":   invoice.PatientID,
		"totalAmount": invoice.TotalAmount,
	})

	data, err := a.doJSON(ctx, session, "backend.invoice.create", http.MethodPost, "/invoices", invoice)
	if err != nil {
		return nil, err
	}
	return decodeInto[domain.Invoice](a, "backend.invoice.create", data)
}

func (a *BackendAdapter) UpdateInvoiceStatus(ctx context.Context, session domain.Session, invoiceID string, status domain.InvoiceStatus) error {
	_, err := a.doJSON(ctx, session, "backend.invoice.status", http.MethodPatch,
		"/invoices/status/"+escape(invoiceID),
		map[string]domain.InvoiceStatus{"status": status},
	)
	return err
}
