package in

import (
	"context"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
)

type DirectoryUseCase interface {
	// Врачи
	ListDoctors(ctx context.Context, session domain.Session) ([]domain.Doctor, error)
	Specialties(ctx context.Context, session domain.Session) ([]string, error)

	// Пациенты
	ListPatients(ctx context.Context, session domain.Session, search string) ([]domain.Patient, error)
	GetPatient(ctx context.Context, session domain.Session, patientID string) (*domain.Patient, error)
	RegisterPatient(ctx context.Context, session domain.Session, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, session domain.Session, patientID string, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error)
	DeletePatient(ctx context.Context, session domain.Session, patientID string) error

	ListReceptionists(ctx context.Context, session domain.Session) ([]domain.Receptionist, error)
	ListHospitals(ctx context.Context, session domain.Session) ([]domain.Hospital, error)

	// Каталог лекарств
	ListMedicines(ctx context.Context, session domain.Session, search string) ([]domain.Medicine, error)
	CreateMedicine(ctx context.Context, session domain.Session, form domain.MedicineForm) (*domain.Medicine, error)
	UpdateMedicine(ctx context.Context, session domain.Session, medicineID string, form domain.MedicineForm) (*domain.Medicine, error)
	DeleteMedicine(ctx context.Context, session domain.Session, medicineID string) error

	// Счета
	ListInvoices(ctx context.Context, session domain.Session, filter domain.InvoiceFilter) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, session domain.Session, invoiceID string) (*domain.Invoice, error)
	CreateInvoice(ctx context.Context, session domain.Session, form domain.InvoiceForm) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, session domain.Session, invoiceID string, form domain.InvoiceStatusForm) (*domain.Invoice, error)

	// Счетчики для карточек дашборда
	DashboardStats(ctx context.Context, session domain.Session) (*domain.DashboardStats, error)
}
