// Package outtest содержит in-memory реализацию BackendPort для тестов
// сервисов и контроллеров.
package outtest

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

var _ out.BackendPort = (*FakeBackend)(nil)

type FakeBackend struct {
	mu sync.Mutex

	Appointments  []domain.Appointment
	Booked        map[string]domain.BookedSlotIndex
	Doctors       []domain.Doctor
	Patients      []domain.Patient
	Receptionists []domain.Receptionist
	Hospitals     []domain.Hospital
	Medicines     []domain.Medicine
	Invoices      []domain.Invoice

	// Err возвращается из всех методов, если задан
	Err error
	// Gate, если задан, держит мутации до закрытия канала
	Gate chan struct{}

	calls    map[string]int
	sessions []domain.Session
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Booked: make(map[string]domain.BookedSlotIndex),
		calls:  make(map[string]int),
	}
}

func (f *FakeBackend) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// LastSession - сессия последнего вызова
func (f *FakeBackend) LastSession() domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sessions) == 0 {
		return domain.Unauthenticated()
	}
	return f.sessions[len(f.sessions)-1]
}

func (f *FakeBackend) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Err = err
}

func (f *FakeBackend) record(method string, session domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	f.sessions = append(f.sessions, session)
	return f.Err
}

func (f *FakeBackend) wait(ctx context.Context) error {
	if f.Gate == nil {
		return nil
	}
	select {
	case <-f.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func notFound(resource, id string) error {
	return &domain.BackendError{
		StatusCode: http.StatusNotFound,
		Body:       fmt.Sprintf(`{"message":"%s %s not found"}`, resource, id),
	}
}

func (f *FakeBackend) ListAppointments(ctx context.Context, session domain.Session) ([]domain.Appointment, error) {
	if err := f.record("ListAppointments", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Appointment(nil), f.Appointments...), nil
}

func (f *FakeBackend) CreateAppointment(ctx context.Context, session domain.Session, request domain.AppointmentRequest) (*domain.Appointment, error) {
	if err := f.record("CreateAppointment", session); err != nil {
		return nil, err
	}
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	date, err := json_types.ParseDate(request.AppointmentDate)
	if err != nil {
		return nil, &domain.BackendError{StatusCode: http.StatusBadRequest, Body: err.Error()}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Booked[request.DoctorID].Contains(request.AppointmentDate, request.AppointmentTime) {
		return nil, &domain.BackendError{StatusCode: http.StatusConflict, Body: `{"message":"slot already booked"}`}
	}

	appointment := domain.Appointment{
		ID:              uuid.NewString(),
		DoctorID:        request.DoctorID,
		PatientID:       request.PatientID,
		AppointmentDate: date,
		AppointmentTime: request.AppointmentTime,
		Status:          domain.AppointmentStatusPending,
		DiseaseName:     request.DiseaseName,
		PatientIssue:    request.PatientIssue,
		AppointmentType: request.AppointmentType,
	}
	if appointment.PatientID == "" {
		appointment.PatientID = session.UserID
	}
	f.Appointments = append(f.Appointments, appointment)
	if f.Booked[request.DoctorID] == nil {
		f.Booked[request.DoctorID] = domain.BookedSlotIndex{}
	}
	f.Booked[request.DoctorID].Add(request.AppointmentDate, request.AppointmentTime)

	return &appointment, nil
}

func (f *FakeBackend) UpdateAppointmentStatus(ctx context.Context, session domain.Session, appointmentID string, status domain.AppointmentStatus) error {
	if err := f.record("UpdateAppointmentStatus", session); err != nil {
		return err
	}
	if err := f.wait(ctx); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Appointments {
		if f.Appointments[i].ID == appointmentID {
			if status == domain.AppointmentStatusCancelled {
				f.release(f.Appointments[i])
			}
			f.Appointments[i].Status = status
			return nil
		}
	}
	return notFound("appointment", appointmentID)
}

func (f *FakeBackend) RescheduleAppointment(ctx context.Context, session domain.Session, appointmentID string, form domain.RescheduleForm) error {
	if err := f.record("RescheduleAppointment", session); err != nil {
		return err
	}
	if err := f.wait(ctx); err != nil {
		return err
	}

	date, err := json_types.ParseDate(form.AppointmentDate)
	if err != nil {
		return &domain.BackendError{StatusCode: http.StatusBadRequest, Body: err.Error()}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Appointments {
		if f.Appointments[i].ID == appointmentID {
			f.release(f.Appointments[i])
			if f.Booked[f.Appointments[i].DoctorID] == nil {
				f.Booked[f.Appointments[i].DoctorID] = domain.BookedSlotIndex{}
			}
			f.Booked[f.Appointments[i].DoctorID].Add(form.AppointmentDate, form.AppointmentTime)
			f.Appointments[i].AppointmentDate = date
			f.Appointments[i].AppointmentTime = form.AppointmentTime
			f.Appointments[i].Status = domain.AppointmentStatusPending
			return nil
		}
	}
	return notFound("appointment", appointmentID)
}

// release освобождает слот записи; вызывается под f.mu
func (f *FakeBackend) release(appointment domain.Appointment) {
	if appointment.Status == domain.AppointmentStatusCancelled {
		return
	}
	if index, ok := f.Booked[appointment.DoctorID]; ok {
		index.Remove(appointment.AppointmentDate.String(), appointment.AppointmentTime)
	}
}

func (f *FakeBackend) GetBookedSlots(ctx context.Context, session domain.Session, doctorID string) (domain.BookedSlotIndex, error) {
	if err := f.record("GetBookedSlots", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if index, ok := f.Booked[doctorID]; ok {
		return index.Clone(), nil
	}
	return domain.BookedSlotIndex{}, nil
}

func (f *FakeBackend) ListDoctors(ctx context.Context, session domain.Session) ([]domain.Doctor, error) {
	if err := f.record("ListDoctors", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Doctor(nil), f.Doctors...), nil
}

func (f *FakeBackend) GetDoctor(ctx context.Context, session domain.Session, doctorID string) (*domain.Doctor, error) {
	if err := f.record("GetDoctor", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doctor := range f.Doctors {
		if doctor.ID == doctorID {
			return &doctor, nil
		}
	}
	return nil, notFound("doctor", doctorID)
}

func (f *FakeBackend) ListPatients(ctx context.Context, session domain.Session) ([]domain.Patient, error) {
	if err := f.record("ListPatients", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Patient(nil), f.Patients...), nil
}

func (f *FakeBackend) GetPatient(ctx context.Context, session domain.Session, patientID string) (*domain.Patient, error) {
	if err := f.record("GetPatient", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, patient := range f.Patients {
		if patient.ID == patientID {
			return &patient, nil
		}
	}
	return nil, notFound("patient", patientID)
}

func patientFromForm(id string, form domain.PatientForm, image *domain.Upload) domain.Patient {
	patient := domain.Patient{
		ID:          id,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Age:         form.Age,
		Gender:      form.Gender,
		BloodGroup:  form.BloodGroup,
		DateOfBirth: form.DateOfBirth,
		Country:     form.Country,
		State:       form.State,
		City:        form.City,
		Address:     form.Address,
	}
	if image != nil {
		patient.ProfileImage = "/uploads/" + image.FileName
	}
	return patient
}

func (f *FakeBackend) RegisterPatient(ctx context.Context, session domain.Session, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error) {
	if err := f.record("RegisterPatient", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	patient := patientFromForm(uuid.NewString(), form, image)
	f.Patients = append(f.Patients, patient)
	return &patient, nil
}

func (f *FakeBackend) UpdatePatient(ctx context.Context, session domain.Session, patientID string, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error) {
	if err := f.record("UpdatePatient", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Patients {
		if f.Patients[i].ID == patientID {
			f.Patients[i] = patientFromForm(patientID, form, image)
			patient := f.Patients[i]
			return &patient, nil
		}
	}
	return nil, notFound("patient", patientID)
}

func (f *FakeBackend) DeletePatient(ctx context.Context, session domain.Session, patientID string) error {
	if err := f.record("DeletePatient", session); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Patients {
		if f.Patients[i].ID == patientID {
			f.Patients = append(f.Patients[:i], f.Patients[i+1:]...)
			return nil
		}
	}
	return notFound("patient", patientID)
}

func (f *FakeBackend) ListReceptionists(ctx context.Context, session domain.Session) ([]domain.Receptionist, error) {
	if err := f.record("ListReceptionists", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Receptionist(nil), f.Receptionists...), nil
}

func (f *FakeBackend) ListHospitals(ctx context.Context, session domain.Session) ([]domain.Hospital, error) {
	if err := f.record("ListHospitals", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Hospital(nil), f.Hospitals...), nil
}

func (f *FakeBackend) ListMedicines(ctx context.Context, session domain.Session) ([]domain.Medicine, error) {
	if err := f.record("ListMedicines", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Medicine(nil), f.Medicines...), nil
}

func (f *FakeBackend) CreateMedicine(ctx context.Context, session domain.Session, form domain.MedicineForm) (*domain.Medicine, error) {
	if err := f.record("CreateMedicine", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	medicine := domain.Medicine{ID: uuid.NewString(), Name: form.Name}
	f.Medicines = append(f.Medicines, medicine)
	return &medicine, nil
}

func (f *FakeBackend) UpdateMedicine(ctx context.Context, session domain.Session, medicineID string, form domain.MedicineForm) (*domain.Medicine, error) {
	if err := f.record("UpdateMedicine", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Medicines {
		if f.Medicines[i].ID == medicineID {
			f.Medicines[i].Name = form.Name
			medicine := f.Medicines[i]
			return &medicine, nil
		}
	}
	return nil, notFound("medicine", medicineID)
}

func (f *FakeBackend) DeleteMedicine(ctx context.Context, session domain.Session, medicineID string) error {
	if err := f.record("DeleteMedicine", session); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Medicines {
		if f.Medicines[i].ID == medicineID {
			f.Medicines = append(f.Medicines[:i], f.Medicines[i+1:]...)
			return nil
		}
	}
	return notFound("medicine", medicineID)
}

func (f *FakeBackend) ListInvoices(ctx context.Context, session domain.Session) ([]domain.Invoice, error) {
	if err := f.record("ListInvoices", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Invoice(nil), f.Invoices...), nil
}

func (f *FakeBackend) GetInvoice(ctx context.Context, session domain.Session, invoiceID string) (*domain.Invoice, error) {
	if err := f.record("GetInvoice", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, invoice := range f.Invoices {
		if invoice.ID == invoiceID {
			return &invoice, nil
		}
	}
	return nil, notFound("invoice", invoiceID)
}

func (f *FakeBackend) CreateInvoice(ctx context.Context, session domain.Session, invoice domain.Invoice) (*domain.Invoice, error) {
	if err := f.record("CreateInvoice", session); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice.ID = uuid.NewString()
	f.Invoices = append(f.Invoices, invoice)
	return &invoice, nil
}

func (f *FakeBackend) UpdateInvoiceStatus(ctx context.Context, session domain.Session, invoiceID string, status domain.InvoiceStatus) error {
	if err := f.record("UpdateInvoiceStatus", session); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Invoices {
		if f.Invoices[i].ID == invoiceID {
			f.Invoices[i].Status = status
			return nil
		}
	}
	return notFound("invoice", invoiceID)
}
