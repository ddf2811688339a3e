package domain

import (
	"slices"
	"time"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
	RolePatient      Role = "patient"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleReceptionist, RolePatient:
		return true
	}
	return false
}

// Session - личность вызывающего, декодированная из bearer-токена.
// Нулевое значение означает неаутентифицированный запрос.
type Session struct {
	UserID    string    `json:"id"`
	Role      Role      `json:"role"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
	Token     string    `json:"-"`
}

func Unauthenticated() Session {
	return Session{}
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.UserID != "" && s.Role.Valid()
}

func (s Session) HasRole(roles ...Role) bool {
	return s.Authenticated() && slices.Contains(roles, s.Role)
}
