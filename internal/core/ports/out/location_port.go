package out

import "github.com/suchimauz/hospital-desk/internal/core/domain"

// LocationPort отдает неизменяемый справочник стран, штатов и городов
type LocationPort interface {
	Locations() []domain.LocationNode
}
