package location_service

import (
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

type LocationService struct {
	locationPort out.LocationPort
	logger       out.LoggerPort
}

func NewLocationService(locationPort out.LocationPort, logger out.LoggerPort) *LocationService {
	return &LocationService{
		locationPort: locationPort,
		logger:       logger.WithModule("LocationService"),
	}
}

func (s *LocationService) Countries() []string {
	locations := s.locationPort.Locations()
	countries := make([]string, 0, len(locations))
	for _, location := range locations {
		countries = append(countries, location.Name)
	}
	return countries
}

func (s *LocationService) States(country string) []domain.StateNode {
	return ResolveStates(s.locationPort.Locations(), country)
}

func (s *LocationService) Cities(country, state string) []domain.CityNode {
	return ResolveCities(s.States(country), state)
}

func (s *LocationService) Cascade(state domain.CascadeState, action domain.CascadeAction) domain.CascadeState {
	next := ReduceCascade(s.locationPort.Locations(), state, action)

	s.logger.Debug("locations.cascade.reduced", out.LogFields{
		"field":   action.Field,
		"country": next.Country,
		"state":   next.State,
		"city":    next.City,
		"states":  len(next.States),
		"cities":  len(next.Cities),
	})

	return next
}
