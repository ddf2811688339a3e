package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/hospital-desk/internal/adapters/out/cache"
	"github.com/suchimauz/hospital-desk/internal/adapters/out/locations"
	"github.com/suchimauz/hospital-desk/internal/adapters/out/logger"
	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/json_types"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out/outtest"
	"github.com/suchimauz/hospital-desk/internal/core/services/appointment_service"
	"github.com/suchimauz/hospital-desk/internal/core/services/directory_service"
	"github.com/suchimauz/hospital-desk/internal/core/services/forms"
	"github.com/suchimauz/hospital-desk/internal/core/services/location_service"
	"github.com/suchimauz/hospital-desk/internal/core/services/slot_service"
	"github.com/suchimauz/hospital-desk/internal/utils"
)

// tokenSessions подменяет декодер токенов: токен - ключ в карте сессий
type tokenSessions map[string]domain.Session

func (s tokenSessions) Decode(token string) (domain.Session, error) {
	token = strings.TrimPrefix(token, "Bearer ")
	session, ok := s[token]
	if !ok {
		return domain.Unauthenticated(), domain.ErrUnauthenticated
	}
	return session, nil
}

var sessions = tokenSessions{
	"admin":   {UserID: "adm-1", Role: domain.RoleAdmin, Token: "admin"},
	"doctor":  {UserID: "doc-1", Role: domain.RoleDoctor, Token: "doctor"},
	"desk":    {UserID: "rec-1", Role: domain.RoleReceptionist, Token: "desk"},
	"patient": {UserID: "pat-1", Role: domain.RolePatient, Token: "patient"},
}

type fixture struct {
	router  *gin.Engine
	backend *outtest.FakeBackend
}

func date(t *testing.T, value string) json_types.Date {
	t.Helper()
	parsed, err := json_types.ParseDate(value)
	require.NoError(t, err)
	return parsed
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.Env = config.EnvLocal
	cfg.App.Timezone = "UTC"
	cfg.App.Version = "test"
	cfg.Slots.GranularityMinutes = 20
	cfg.Cache.BookedSlotsSize = 10
	cfg.Cache.AppointmentsSize = 10
	cfg.Cache.DoctorsTTL = time.Minute

	nop := logger.NewNopLogger()
	cacheAdapter, err := cache.NewCacheAdapter(cfg, nop)
	require.NoError(t, err)

	backend := outtest.NewFakeBackend()
	backend.Doctors = []domain.Doctor{
		{
			ID:        "doc-1",
			FirstName: "Jaydon",
			LastName:  "Philips",
			DoctorDetails: domain.DoctorDetails{
				SpecialtyType: "Cardiology",
				WorkingHours: domain.WorkingHours{
					WorkingTime: "09:00 AM - 05:00 PM",
					CheckupTime: "09:00 AM - 12:00 PM",
					BreakTime:   "12:00 PM",
				},
			},
		},
		{ID: "doc-2", FirstName: "Ruth", DoctorDetails: domain.DoctorDetails{SpecialtyType: "Neurology"}},
	}
	backend.Appointments = []domain.Appointment{
		{ID: "a-1", DoctorID: "doc-1", PatientID: "pat-1", AppointmentDate: date(t, "2024-05-01"), AppointmentTime: "10:00", Status: domain.AppointmentStatusPending},
		{ID: "a-2", DoctorID: "doc-1", PatientID: "pat-1", AppointmentDate: date(t, "2024-05-02"), AppointmentTime: "11:00", Status: domain.AppointmentStatusDone},
		{ID: "a-3", DoctorID: "doc-2", PatientID: "pat-2", AppointmentDate: date(t, "2024-05-03"), AppointmentTime: "09:00", Status: domain.AppointmentStatusPending},
	}
	backend.Booked["doc-1"] = domain.BookedSlotIndex{"2024-05-01": {"10:00"}}
	backend.Patients = []domain.Patient{{ID: "pat-1", FirstName: "Marcus", LastName: "Philips"}}
	backend.Invoices = []domain.Invoice{
		{ID: "inv-1", PatientID: "pat-1", PatientName: "Marcus Philips", Status: domain.InvoiceStatusPaid},
		{ID: "inv-2", PatientID: "pat-1", PatientName: "Marcus Philips"},
	}

	validator := forms.NewValidator()
	table := locations.NewStaticTable([]domain.LocationNode{
		{Name: "India", States: []domain.StateNode{{Name: "Gujarat", Cities: []domain.CityNode{{Name: "Surat"}}}}},
	})

	slotService := slot_service.NewSlotService(backend, cacheAdapter, cfg, nop)
	directoryService := directory_service.NewDirectoryService(backend, cacheAdapter, validator, cfg, nop)
	appointmentService := appointment_service.NewAppointmentService(backend, cacheAdapter, slotService, validator, cfg, nop)

	router := NewRouter(cfg, sessions, nop,
		NewLocationController(location_service.NewLocationService(table, nop)),
		NewSlotController(slotService, directoryService),
		NewAppointmentController(appointmentService),
		NewDirectoryController(directoryService),
	)

	return fixture{router: router, backend: backend}
}

func (f fixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func TestHealthNeedsNoSession(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(utils.RequestIDHeader))
}

func TestSessionRequired(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/session", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/session", "forged", nil).Code)

	w := f.do(t, http.MethodGet, "/api/v1/session", "patient", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Session domain.Session `json:"session"`
	}
	decode(t, w, &body)
	assert.Equal(t, "pat-1", body.Session.UserID)
	assert.Equal(t, domain.RolePatient, body.Session.Role)
}

func TestRequestIDIsForwarded(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(utils.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(utils.RequestIDHeader))
}

func TestLocationCascade(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/locations/states?country=India", "desk", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Gujarat")

	w = f.do(t, http.MethodPost, "/api/v1/locations/cascade", "desk", gin.H{
		"state":  domain.CascadeState{Country: "India", State: "Gujarat", City: "Surat"},
		"action": domain.CascadeAction{Field: domain.CascadeFieldCountry, Value: "India"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		State domain.CascadeState `json:"state"`
	}
	decode(t, w, &body)
	assert.Equal(t, "India", body.State.Country)
	assert.Empty(t, body.State.State)
	assert.Empty(t, body.State.City)
	assert.Len(t, body.State.States, 1)

	w = f.do(t, http.MethodPost, "/api/v1/locations/cascade", "desk", gin.H{
		"action": gin.H{"field": "planet", "value": "Mars"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoctorsAndSpecialties(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/doctors?specialty=Neurology", "patient", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doctors struct {
		Doctors []domain.Doctor `json:"doctors"`
	}
	decode(t, w, &doctors)
	require.Len(t, doctors.Doctors, 1)
	assert.Equal(t, "doc-2", doctors.Doctors[0].ID)

	w = f.do(t, http.MethodGet, "/api/v1/doctors/specialties", "patient", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var specialties struct {
		Specialties []string `json:"specialties"`
	}
	decode(t, w, &specialties)
	assert.Equal(t, []string{"Cardiology", "Neurology"}, specialties.Specialties)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/doctors/doc-404", "patient", nil).Code)
}

func TestSlotGridEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/doctors/doc-1/slots?granularity=60&weekStart=2024-05-01", "patient", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var grid domain.SlotGrid
	decode(t, w, &grid)
	assert.Equal(t, 60, grid.Granularity)
	assert.Len(t, grid.Slots, 8)
	assert.Len(t, grid.Days, 7)
	assert.Equal(t, "2024-05-01", grid.Days[0])
	assert.Equal(t, []string{"10:00"}, grid.Booked["2024-05-01"])

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/doctors/doc-1/slots?granularity=abc", "patient", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/doctors/doc-1/slots?weekStart=01-05-2024", "patient", nil).Code)
}

func TestTimePickerEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/doctors/doc-1/time-picker", "patient", TimePickerRequest{
		State:  domain.TimePickerState{Date: "2024-05-01", Hour: "09", Minute: "15", Period: "AM"},
		Action: &domain.TimePickerAction{Field: domain.TimePickerFieldHour, Value: "10"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var view domain.TimePickerView
	decode(t, w, &view)
	assert.Equal(t, "10", view.State.Hour)
	assert.Empty(t, view.State.Minute)
	require.Len(t, view.Minutes, 60)
	assert.True(t, view.Minutes[0].Disabled)
	assert.False(t, view.Minutes[1].Disabled)
}

func TestAppointmentsListAndTabs(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/appointments?doctorId=doc-1", "desk", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Tab          domain.StatusTab     `json:"tab"`
		Appointments []domain.Appointment `json:"appointments"`
	}
	decode(t, w, &list)
	assert.Equal(t, domain.StatusTabScheduled, list.Tab)
	require.Len(t, list.Appointments, 1)
	assert.Equal(t, "a-1", list.Appointments[0].ID)

	w = f.do(t, http.MethodGet, "/api/v1/appointments?tab=Previous&from=2024-05-01&to=2024-05-02", "desk", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list.Appointments, 1)
	assert.Equal(t, "a-2", list.Appointments[0].ID)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/appointments?tab=Archive", "desk", nil).Code)

	w = f.do(t, http.MethodGet, "/api/v1/appointments/tabs", "desk", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tabs struct {
		Tabs []domain.TabCount `json:"tabs"`
	}
	decode(t, w, &tabs)
	require.Len(t, tabs.Tabs, 4)
	assert.Equal(t, 2, tabs.Tabs[0].Count)
	assert.Equal(t, 1, tabs.Tabs[1].Count)
}

func TestBookAppointmentEndpoint(t *testing.T) {
	f := newFixture(t)

	form := domain.BookingForm{
		Country:         "India",
		State:           "Gujarat",
		City:            "Surat",
		DoctorID:        "doc-1",
		AppointmentDate: "2024-05-01",
		Hour:            "10",
		Minute:          "00",
		Period:          "AM",
		PatientIssue:    "Chest pain",
	}

	w := f.do(t, http.MethodPost, "/api/v1/appointments", "patient", form)
	assert.Equal(t, http.StatusConflict, w.Code)

	form.Minute = "20"
	w = f.do(t, http.MethodPost, "/api/v1/appointments", "patient", form)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "pat-1", f.backend.LastSession().UserID)

	w = f.do(t, http.MethodPost, "/api/v1/appointments", "patient", domain.BookingForm{Country: "India"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields []string `json:"fields"`
	}
	decode(t, w, &body)
	assert.Contains(t, body.Fields, "Doctor")
	assert.Contains(t, body.Fields, "Patient Issue")
	assert.NotContains(t, body.Fields, "Country")

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/v1/appointments", "doctor", form).Code)
}

func TestAppointmentMutations(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPatch, "/api/v1/appointments/a-1/cancel", "patient", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Appointment domain.Appointment `json:"appointment"`
	}
	decode(t, w, &body)
	assert.Equal(t, domain.AppointmentStatusCancelled, body.Appointment.Status)

	w = f.do(t, http.MethodPatch, "/api/v1/appointments/a-2/reschedule", "patient", domain.RescheduleForm{
		AppointmentDate: "2024-05-06",
		AppointmentTime: "11:00",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Equal(t, domain.AppointmentStatusPending, body.Appointment.Status)
	assert.Equal(t, "11:00", body.Appointment.AppointmentTime)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPatch, "/api/v1/appointments/a-3/status", "patient",
		domain.StatusUpdateForm{Status: domain.AppointmentStatusDone}).Code)

	w = f.do(t, http.MethodPatch, "/api/v1/appointments/a-3/status", "doctor", domain.StatusUpdateForm{Status: domain.AppointmentStatusOnGoing})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Equal(t, domain.AppointmentStatusOnGoing, body.Appointment.Status)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPatch, "/api/v1/appointments/a-404/cancel", "desk", nil).Code)
}

func TestBackendFailureMapsToBadGateway(t *testing.T) {
	f := newFixture(t)
	f.backend.SetErr(errors.New("connection refused"))

	w := f.do(t, http.MethodGet, "/api/v1/hospitals", "desk", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	f.backend.SetErr(&domain.BackendError{StatusCode: http.StatusUnauthorized})
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/hospitals", "desk", nil).Code)
}

func TestPatientRegistrationMultipart(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range [][2]string{
		{"firstName", "Ann"},
		{"lastName", "Lee"},
		{"email", "ann@example.com"},
		{"phoneNumber", "9876543210"},
		{"country", "India"},
		{"state", "Gujarat"},
		{"city", "Surat"},
	} {
		require.NoError(t, writer.WriteField(field[0], field[1]))
	}
	part, err := writer.CreateFormFile(profileImageField, "ann.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer desk")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Patient domain.Patient `json:"patient"`
	}
	decode(t, w, &body)
	assert.Equal(t, "Ann", body.Patient.FirstName)
	assert.Equal(t, "/uploads/ann.png", body.Patient.ProfileImage)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/v1/patients", "patient", nil).Code)
}

func TestPatientsAndDelete(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/patients?search=marc", "doctor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pat-1")

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/v1/patients/pat-1", "desk", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/patients/pat-1", "desk", nil).Code)
}

func TestMedicinesRequireAdminForWrites(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/v1/medicines", "desk", domain.MedicineForm{Name: "Aspirin"}).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/v1/medicines", "admin", domain.MedicineForm{Name: "  "}).Code)

	w := f.do(t, http.MethodPost, "/api/v1/medicines", "admin", domain.MedicineForm{Name: "Aspirin"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/medicines?search=asp", "patient", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Aspirin")
}

func TestInvoiceStatusEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/invoices?status=Unpaid", "desk", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Invoices []domain.Invoice `json:"invoices"`
	}
	decode(t, w, &list)
	require.Len(t, list.Invoices, 1)
	assert.Equal(t, "inv-2", list.Invoices[0].ID)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/invoices?status=Void", "desk", nil).Code)

	form := domain.InvoiceStatusForm{Status: domain.InvoiceStatusPaid}
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPatch, "/api/v1/invoices/inv-1/status", "desk", form).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPatch, "/api/v1/invoices/inv-2/status", "desk", form).Code)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/dashboard/stats", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats domain.DashboardStats
	decode(t, w, &stats)
	assert.Equal(t, 1, stats.Patients)
	assert.Equal(t, 2, stats.Doctors)
	assert.Equal(t, 3, stats.Appointments)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/v1/dashboard/stats", "patient", nil).Code)
}
