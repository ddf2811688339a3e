package domain

type CityNode struct {
	Name string `json:"name"`
}

type StateNode struct {
	Name   string     `json:"name"`
	Cities []CityNode `json:"cities,omitempty"`
}

type LocationNode struct {
	Name   string      `json:"name"`
	States []StateNode `json:"states,omitempty"`
}

type CascadeField string

const (
	CascadeFieldCountry CascadeField = "country"
	CascadeFieldState   CascadeField = "state"
	CascadeFieldCity    CascadeField = "city"
)

// CascadeState - выбранные значения каскада страна -> штат -> город
// вместе с производными списками вариантов.
type CascadeState struct {
	Country string      `json:"country"`
	State   string      `json:"state"`
	City    string      `json:"city"`
	States  []StateNode `json:"states"`
	Cities  []CityNode  `json:"cities"`
}

type CascadeAction struct {
	Field CascadeField `json:"field" binding:"required,oneof=country state city"`
	Value string       `json:"value"`
}
