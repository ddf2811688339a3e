package session_service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

// Claims - полезная нагрузка токена, который выдает бэкенд больницы
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type SessionService struct {
	secret []byte
	logger out.LoggerPort
	now    func() time.Time
}

func NewSessionService(cfg *config.Config, logger out.LoggerPort) *SessionService {
	service := &SessionService{
		logger: logger.WithModule("SessionService"),
		now:    time.Now,
	}
	if cfg.Auth.JWTSecret != "" {
		service.secret = []byte(cfg.Auth.JWTSecret)
	}
	return service
}

// Decode разбирает bearer-токен в Session. Без секрета подпись не
// проверяется (ее проверит бэкенд), но срок действия проверяется всегда.
func (s *SessionService) Decode(token string) (domain.Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return domain.Unauthenticated(), fmt.Errorf("session.decode: %w: empty token", domain.ErrUnauthenticated)
	}

	claims := &Claims{}
	if err := s.parse(token, claims); err != nil {
		s.logger.Debug("session.decode.failed", out.LogFields{
			"error": err.Error(),
		})
		return domain.Unauthenticated(), fmt.Errorf("session.decode: %w: %v", domain.ErrUnauthenticated, err)
	}

	session := domain.Session{
		UserID: claims.UserID,
		Role:   domain.Role(strings.ToLower(claims.Role)),
		Name:   claims.Name,
		Email:  claims.Email,
		Token:  token,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	if !session.Authenticated() {
		return domain.Unauthenticated(), fmt.Errorf("session.decode: %w: missing id or unknown role %q", domain.ErrUnauthenticated, claims.Role)
	}

	return session, nil
}

func (s *SessionService) parse(token string, claims *Claims) error {
	if s.secret != nil {
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		}, jwt.WithTimeFunc(s.now))
		if err != nil {
			return err
		}
		if !parsed.Valid {
			return errors.New("invalid token")
		}
		return nil
	}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return err
	}
	if claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time) {
		return jwt.ErrTokenExpired
	}
	return nil
}
