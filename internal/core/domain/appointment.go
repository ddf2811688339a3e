package domain

import (
	"fmt"

	"github.com/suchimauz/hospital-desk/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusOnGoing   AppointmentStatus = "OnGoing"
	AppointmentStatusDone      AppointmentStatus = "Done"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusOnGoing, AppointmentStatusDone, AppointmentStatusCancelled:
		return true
	}
	return false
}

type AppointmentType string

const (
	AppointmentTypeOnline AppointmentType = "Online"
	AppointmentTypeOnsite AppointmentType = "Onsite"
)

type Appointment struct {
	ID              string            `json:"id"`
	DoctorID        string            `json:"doctorId"`
	DoctorName      string            `json:"doctorName,omitempty"`
	PatientID       string            `json:"patientId"`
	PatientName     string            `json:"patientName"`
	AppointmentDate json_types.Date   `json:"appointmentDate"`
	AppointmentTime string            `json:"appointmentTime"`
	Status          AppointmentStatus `json:"status"`
	DiseaseName     string            `json:"diseaseName,omitempty"`
	PatientIssue    string            `json:"patientIssue,omitempty"`
	AppointmentType AppointmentType   `json:"appointmentType,omitempty"`
	HospitalName    string            `json:"hospitalName,omitempty"`
}

// StatusTab - вкладка списка записей, каждой соответствует один статус
type StatusTab string

const (
	StatusTabScheduled StatusTab = "Scheduled"
	StatusTabPrevious  StatusTab = "Previous"
	StatusTabCanceled  StatusTab = "Canceled"
	StatusTabPending   StatusTab = "Pending"
)

var tabStatuses = map[StatusTab]AppointmentStatus{
	StatusTabScheduled: AppointmentStatusPending,
	StatusTabPrevious:  AppointmentStatusDone,
	StatusTabCanceled:  AppointmentStatusCancelled,
	StatusTabPending:   AppointmentStatusOnGoing,
}

// StatusTabs в порядке отображения
func StatusTabs() []StatusTab {
	return []StatusTab{StatusTabScheduled, StatusTabPrevious, StatusTabCanceled, StatusTabPending}
}

func (t StatusTab) Status() AppointmentStatus {
	return tabStatuses[t]
}

func ParseStatusTab(str string) (StatusTab, error) {
	tab := StatusTab(str)
	if _, ok := tabStatuses[tab]; !ok {
		return "", fmt.Errorf("%w: unknown tab %q", ErrValidation, str)
	}
	return tab, nil
}

type DateRange struct {
	From json_types.Date
	To   json_types.Date
}

// IsSet: фильтр по датам применяется только когда заданы обе границы
func (r DateRange) IsSet() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

func (r DateRange) Contains(date json_types.Date) bool {
	return date.Compare(r.From) >= 0 && date.Compare(r.To) <= 0
}

type AppointmentFilter struct {
	DateRange DateRange
	DoctorID  string
	Tab       StatusTab
}

// AppointmentRequest - тело POST /appointments/appointment
type AppointmentRequest struct {
	PatientID       string          `json:"patient,omitempty"`
	Specialty       string          `json:"specialty,omitempty"`
	Country         string          `json:"country"`
	State           string          `json:"state"`
	City            string          `json:"city"`
	HospitalID      string          `json:"hospital,omitempty"`
	DoctorID        string          `json:"doctor"`
	AppointmentDate string          `json:"appointmentDate"`
	AppointmentTime string          `json:"appointmentTime"`
	PatientIssue    string          `json:"patientIssue"`
	DiseaseName     string          `json:"diseaseName,omitempty"`
	AppointmentType AppointmentType `json:"appointmentType,omitempty"`
}

type TabCount struct {
	Tab    StatusTab         `json:"tab"`
	Status AppointmentStatus `json:"status"`
	Count  int               `json:"count"`
}
