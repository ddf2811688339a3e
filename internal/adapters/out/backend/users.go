package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

func (a *BackendAdapter) ListDoctors(ctx context.Context, session domain.Session) ([]domain.Doctor, error) {
	return getList[domain.Doctor](ctx, a, session, "backend.doctors.fetch", "/users/doctors")
}

func (a *BackendAdapter) GetDoctor(ctx context.Context, session domain.Session, doctorID string) (*domain.Doctor, error) {
	data, err := a.doJSON(ctx, session, "backend.doctor.fetch", http.MethodGet, "/users/doctors/"+escape(doctorID), nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[domain.Doctor](a, "backend.doctor.fetch", data)
}

func (a *BackendAdapter) ListPatients(ctx context.Context, session domain.Session) ([]domain.Patient, error) {
	return getList[domain.Patient](ctx, a, session, "backend.patients.fetch", "/users/patients")
}

func (a *BackendAdapter) GetPatient(ctx context.Context, session domain.Session, patientID string) (*domain.Patient, error) {
	data, err := a.doJSON(ctx, session, "backend.patient.fetch", http.MethodGet, "/users/patients/"+escape(patientID), nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[domain.Patient](a, "backend.patient.fetch", data)
}

func (a *BackendAdapter) RegisterPatient(ctx context.Context, session domain.Session, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error) {
	return a.sendPatient(ctx, session, "backend.patient.register", http.MethodPost, "/users/register-patient", form, image)
}

func (a *BackendAdapter) UpdatePatient(ctx context.Context, session domain.Session, patientID string, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error) {
	return a.sendPatient(ctx, session, "backend.patient.update", http.MethodPatch, "/users/patients/"+escape(patientID), form, image)
}

// sendPatient отправляет форму пациента multipart-ом, как ее ждет бэкенд
func (a *BackendAdapter) sendPatient(ctx context.Context, session domain.Session, event, method, path string, form domain.PatientForm, image *domain.Upload) (*domain.Patient, error) {
	body, contentType, err := patientMultipart(form, image)
	if err != nil {
		a.logger.Error(event+".encode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%s.encode_failed: %w", event, err)
	}

	data, err := a.do(ctx, session, request{
		event:       event,
		method:      method,
		path:        path,
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return nil, err
	}

	return decodeInto[domain.Patient](a, event, data)
}

func patientMultipart(form domain.PatientForm, image *domain.Upload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range form.Fields() {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", err
		}
	}

	if image != nil {
		fieldName := image.FieldName
		if fieldName == "" {
			fieldName = "profileImage"
		}
		contentType := image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, image.FileName))
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(image.Data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

func (a *BackendAdapter) DeletePatient(ctx context.Context, session domain.Session, patientID string) error {
	a.logger.Info("backend.patient.delete", out.LogFields{
		"patientId": patientID,
	})

	_, err := a.doJSON(ctx, session, "backend.patient.delete", http.MethodDelete, "/users/patients/"+escape(patientID), nil)
	return err
}

func (a *BackendAdapter) ListReceptionists(ctx context.Context, session domain.Session) ([]domain.Receptionist, error) {
	return getList[domain.Receptionist](ctx, a, session, "backend.receptionists.fetch", "/users/receptionist")
}

func (a *BackendAdapter) ListHospitals(ctx context.Context, session domain.Session) ([]domain.Hospital, error) {
	return getList[domain.Hospital](ctx, a, session, "backend.hospitals.fetch", "/hospitals/hospitals")
}
