package domain

// WorkingHours хранит окна врача строками вида "09:00 AM - 05:00 PM"
type WorkingHours struct {
	WorkingTime string `json:"workingTime"`
	CheckupTime string `json:"checkupTime"`
	BreakTime   string `json:"breakTime"`
}

func (w WorkingHours) IsEmpty() bool {
	return w.WorkingTime == "" && w.CheckupTime == "" && w.BreakTime == ""
}
