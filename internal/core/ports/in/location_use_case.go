package in

import "github.com/suchimauz/hospital-desk/internal/core/domain"

type LocationUseCase interface {
	Countries() []string
	States(country string) []domain.StateNode
	Cities(country, state string) []domain.CityNode

	// Один шаг каскада страна -> штат -> город
	Cascade(state domain.CascadeState, action domain.CascadeAction) domain.CascadeState
}
