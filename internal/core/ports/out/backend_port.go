package out

import (
	"context"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
)

// BackendPort - REST-бэкенд больницы. Каждый вызов идет с bearer-токеном
// вызывающего из session.
type BackendPort interface {
	// Записи на прием
	ListAppointments(ctx context.Context, session domain.Session) ([]domain.Appointment, error)
	CreateAppointment(ctx context.Context, session domain.Session, request domain.AppointmentRequest) (*domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, session domain.Session, appointmentID string, status domain.AppointmentStatus) error
	RescheduleAppointment(ctx context.Context, session domain.Session, appointmentID string, form domain.RescheduleForm) error
	GetBookedSlots(ctx context.Context, session domain.Session, doctorID string) (domain.BookedSlotIndex, error)

	// Справочники пользователей
	ListDoctors(ctx context.Context, session domain.Session) ([]domain.Doctor, error)
	GetDoctor(ctx context.Context, session domain.Session, doctorID string) (*domain.Doctor, error)
	ListPatients(ctx context.Context, session domain.Session) ([]domain.Patient, error)
	GetPatient(ctx context.Context, session domain.Session, patientID string) (*domain.Patient, error)
	RegisterPatient(ctx context.Context, session domain.Session, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, session domain.Session, patientID string, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error)
	DeletePatient(ctx context.Context, session domain.Session, patientID string) error
	ListReceptionists(ctx context.Context, session domain.Session) ([]domain.Receptionist, error)
	ListHospitals(ctx context.Context, session domain.Session) ([]domain.Hospital, error)

	// Каталог лекарств
	ListMedicines(ctx context.Context, session domain.Session) ([]domain.Medicine, error)
	CreateMedicine(ctx context.Context, session domain.Session, form domain.MedicineForm) (*domain.Medicine, error)
	UpdateMedicine(ctx context.Context, session domain.Session, medicineID string, form domain.MedicineForm) (*domain.Medicine, error)
	DeleteMedicine(ctx context.Context, session domain.Session, medicineID string) error

	// Счета
	ListInvoices(ctx context.Context, session domain.Session) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, session domain.Session, invoiceID string) (*domain.Invoice, error)
	CreateInvoice(ctx context.Context, session domain.Session, invoice domain.Invoice) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, session domain.Session, invoiceID string, status domain.InvoiceStatus) error
}
