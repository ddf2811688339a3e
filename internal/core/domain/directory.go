package domain

type DoctorDetails struct {
	SpecialtyType   string       `json:"specialtyType"`
	Qualification   string       `json:"qualification,omitempty"`
	Experience      string       `json:"experience,omitempty"`
	ConsultationFee float64      `json:"consultationRate,omitempty"`
	HospitalID      string       `json:"hospitalId,omitempty"`
	HospitalName    string       `json:"hospitalName,omitempty"`
	WorkingHours    WorkingHours `json:"workingHours"`
}

type Doctor struct {
	ID            string        `json:"_id"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Email         string        `json:"email,omitempty"`
	PhoneNumber   string        `json:"phoneNumber,omitempty"`
	Country       string        `json:"country,omitempty"`
	State         string        `json:"state,omitempty"`
	City          string        `json:"city,omitempty"`
	ProfileImage  string        `json:"profileImage,omitempty"`
	DoctorDetails DoctorDetails `json:"doctorDetails"`
}

type Patient struct {
	ID           string `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Age          int    `json:"age,omitempty"`
	Gender       string `json:"gender,omitempty"`
	BloodGroup   string `json:"bloodGroup,omitempty"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Country      string `json:"country,omitempty"`
	State        string `json:"state,omitempty"`
	City         string `json:"city,omitempty"`
	Address      string `json:"address,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type Receptionist struct {
	ID           string `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	HospitalID   string `json:"hospitalId,omitempty"`
	HospitalName string `json:"hospitalName,omitempty"`
	Country      string `json:"country,omitempty"`
	State        string `json:"state,omitempty"`
	City         string `json:"city,omitempty"`
}

type Hospital struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
}

type Medicine struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type InvoiceStatus string

const (
	InvoiceStatusPaid   InvoiceStatus = "Paid"
	InvoiceStatusUnpaid InvoiceStatus = "Unpaid"
)

type Invoice struct {
	ID           string        `json:"id"`
	BillNumber   string        `json:"billNumber"`
	BillDate     string        `json:"billDate,omitempty"`
	BillTime     string        `json:"billTime,omitempty"`
	HospitalID   string        `json:"hospitalId,omitempty"`
	HospitalName string        `json:"hospitalName,omitempty"`
	PatientID    string        `json:"patientId"`
	PatientName  string        `json:"patientName,omitempty"`
	DoctorID     string        `json:"doctorId,omitempty"`
	DoctorName   string        `json:"doctorName,omitempty"`
	DiseaseName  string        `json:"diseaseName,omitempty"`
	Description  string        `json:"description,omitempty"`
	Amount       float64       `json:"amount"`
	Tax          float64       `json:"tax"`
	Discount     float64       `json:"discount"`
	TotalAmount  float64       `json:"totalAmount"`
	PaymentType  string        `json:"paymentType,omitempty"`
	Status       InvoiceStatus `json:"status,omitempty"`
}

// EffectiveStatus: счет без статуса считается неоплаченным
func (i Invoice) EffectiveStatus() InvoiceStatus {
	if i.Status == "" {
		return InvoiceStatusUnpaid
	}
	return i.Status
}

// Upload - файл изображения (профиль, подпись) для multipart-запроса
type Upload struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// InvoiceFilter: пустые поля не фильтруют
type InvoiceFilter struct {
	Status InvoiceStatus
	Search string
}

type DashboardStats struct {
	Patients      int `json:"patients"`
	Doctors       int `json:"doctors"`
	Receptionists int `json:"receptionists"`
	Appointments  int `json:"appointments"`
}
