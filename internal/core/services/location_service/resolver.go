package location_service

import "github.com/suchimauz/hospital-desk/internal/core/domain"

// ResolveStates возвращает штаты первой страны с точно совпадающим именем.
// Пустой список - штатный сигнал "не найдено".
func ResolveStates(locations []domain.LocationNode, countryName string) []domain.StateNode {
	if countryName == "" {
		return []domain.StateNode{}
	}

	for _, location := range locations {
		if location.Name == countryName {
			if location.States == nil {
				return []domain.StateNode{}
			}
			return location.States
		}
	}

	return []domain.StateNode{}
}

// ResolveCities - то же самое для городов штата
func ResolveCities(states []domain.StateNode, stateName string) []domain.CityNode {
	if stateName == "" {
		return []domain.CityNode{}
	}

	for _, state := range states {
		if state.Name == stateName {
			if state.Cities == nil {
				return []domain.CityNode{}
			}
			return state.Cities
		}
	}

	return []domain.CityNode{}
}

// ReduceCascade применяет одно действие к состоянию каскада.
// Смена страны сбрасывает штат и город, смена штата сбрасывает город.
func ReduceCascade(locations []domain.LocationNode, state domain.CascadeState, action domain.CascadeAction) domain.CascadeState {
	next := domain.CascadeState{
		Country: state.Country,
		State:   state.State,
		City:    state.City,
	}

	switch action.Field {
	case domain.CascadeFieldCountry:
		next.Country = action.Value
		next.State = ""
		next.City = ""
	case domain.CascadeFieldState:
		next.State = action.Value
		next.City = ""
	case domain.CascadeFieldCity:
		next.City = action.Value
	}

	// Списки всегда пересчитываются из справочника, а не берутся из входа
	next.States = ResolveStates(locations, next.Country)
	next.Cities = ResolveCities(next.States, next.State)

	return next
}
