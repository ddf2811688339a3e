package domain

import (
	"fmt"
	"math"
	"strings"
)

// Формы, которые уходят на бэкенд. Тег label - подпись поля в сообщении
// об ошибке, validate - правила go-playground/validator.

type BookingForm struct {
	PatientIssue    string          `json:"patientIssue" validate:"required" label:"Patient Issue"`
	PatientID       string          `json:"patient" validate:"omitempty" label:"Patient"`
	Specialty       string          `json:"specialty" label:"Specialty"`
	Country         string          `json:"country" validate:"required" label:"Country"`
	State           string          `json:"state" validate:"required" label:"State"`
	City            string          `json:"city" validate:"required" label:"City"`
	HospitalID      string          `json:"hospital,omitempty" label:"Hospital"`
	DoctorID        string          `json:"doctor" validate:"required" label:"Doctor"`
	AppointmentDate string          `json:"appointmentDate" validate:"required,datetime=2006-01-02" label:"Date"`
	Hour            string          `json:"hour" validate:"required,hour12" label:"Time"`
	Minute          string          `json:"minute" validate:"required,minute" label:"Time"`
	Period          string          `json:"period" validate:"omitempty,oneof=AM PM" label:"Time"`
	DiseaseName     string          `json:"diseaseName" label:"Disease Name"`
	AppointmentType AppointmentType `json:"appointmentType" validate:"omitempty,oneof=Online Onsite" label:"Appointment Type"`
}

type RescheduleForm struct {
	AppointmentDate string `json:"appointmentDate" validate:"required,datetime=2006-01-02" label:"Date"`
	AppointmentTime string `json:"appointmentTime" validate:"required,clock24" label:"Time"`
}

type StatusUpdateForm struct {
	Status AppointmentStatus `json:"status" validate:"required,oneof=Pending OnGoing Done Cancelled" label:"Status"`
}

type PatientForm struct {
	FirstName   string `json:"firstName" form:"firstName" validate:"required" label:"First Name"`
	LastName    string `json:"lastName" form:"lastName" validate:"required" label:"Last Name"`
	Email       string `json:"email" form:"email" validate:"required,email" label:"Email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required,min=7,max=15" label:"Phone Number"`
	Age         int    `json:"age" form:"age" validate:"gte=0,lte=150" label:"Age"`
	Gender      string `json:"gender" form:"gender" validate:"omitempty,oneof=Male Female Other" label:"Gender"`
	BloodGroup  string `json:"bloodGroup" form:"bloodGroup" label:"Blood Group"`
	DateOfBirth string `json:"dateOfBirth" form:"dateOfBirth" validate:"omitempty,datetime=2006-01-02" label:"Date of Birth"`
	Height      string `json:"height" form:"height" label:"Height"`
	Weight      string `json:"weight" form:"weight" label:"Weight"`
	Country     string `json:"country" form:"country" validate:"required" label:"Country"`
	State       string `json:"state" form:"state" validate:"required" label:"State"`
	City        string `json:"city" form:"city" validate:"required" label:"City"`
	Address     string `json:"address" form:"address" label:"Address"`
	Password    string `json:"password,omitempty" form:"password" validate:"omitempty,min=6" label:"Password"`
}

// Fields - поля формы для multipart-запроса в том порядке, в котором их
// ждет бэкенд; пустые значения пропускаются
func (f PatientForm) Fields() [][2]string {
	fields := [][2]string{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"email", f.Email},
		{"phoneNumber", f.PhoneNumber},
		{"age", fmt.Sprint(f.Age)},
		{"gender", f.Gender},
		{"bloodGroup", f.BloodGroup},
		{"dateOfBirth", f.DateOfBirth},
		{"height", f.Height},
		{"weight", f.Weight},
		{"country", f.Country},
		{"state", f.State},
		{"city", f.City},
		{"address", f.Address},
		{"password", f.Password},
	}

	result := make([][2]string, 0, len(fields))
	for _, field := range fields {
		if field[1] == "" || (field[0] == "age" && f.Age == 0) {
			continue
		}
		result = append(result, field)
	}
	return result
}

type MedicineForm struct {
	Name string `json:"name" validate:"required,max=200" label:"Name"`
}

type InvoiceForm struct {
	HospitalID  string  `json:"hospitalId" validate:"required" label:"Hospital"`
	BillNumber  string  `json:"billNumber" label:"Bill Number"`
	BillDate    string  `json:"billDate" validate:"omitempty,datetime=2006-01-02" label:"Bill Date"`
	BillTime    string  `json:"billTime" label:"Bill Time"`
	PatientID   string  `json:"patientId" validate:"required" label:"Patient"`
	DoctorID    string  `json:"doctorId" validate:"required" label:"Doctor"`
	DiseaseName string  `json:"diseaseName" validate:"required" label:"Disease Name"`
	Description string  `json:"description" label:"Description"`
	Amount      float64 `json:"amount" validate:"gt=0" label:"Amount"`
	Tax         float64 `json:"tax" validate:"gte=0,lte=100" label:"Tax"`
	Discount    float64 `json:"discount" validate:"gte=0" label:"Discount"`
	PaymentType string  `json:"paymentType" validate:"required,oneof=Cash Online Insurance" label:"Payment Type"`
}

// Total = amount + amount*tax% - discount, округление до копеек
func (f InvoiceForm) Total() float64 {
	total := f.Amount + f.Amount*(f.Tax/100) - f.Discount
	return math.Round(total*100) / 100
}

type InvoiceStatusForm struct {
	Status InvoiceStatus `json:"status" validate:"required,oneof=Paid Unpaid" label:"Status"`
}

// ValidationError перечисляет подписи незаполненных или неверных полей
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please provide the following details: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
