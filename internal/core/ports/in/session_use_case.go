package in

import "github.com/suchimauz/hospital-desk/internal/core/domain"

type SessionUseCase interface {
	// Decode никогда не паникует: при любой ошибке возвращается
	// domain.Unauthenticated() и причина
	Decode(token string) (domain.Session, error)
}
