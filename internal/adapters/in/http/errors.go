package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
)

// respondError переводит ошибку сервиса в HTTP-статус
func respondError(ctx *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
		})
		return
	}

	ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	var backendErr *domain.BackendError

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSlotAlreadyBooked), errors.Is(err, domain.ErrInvoiceAlreadyPaid):
		return http.StatusConflict
	case errors.As(err, &backendErr):
		switch backendErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return http.StatusBadRequest
		case http.StatusUnauthorized:
			return http.StatusUnauthorized
		case http.StatusForbidden:
			return http.StatusForbidden
		case http.StatusConflict:
			return http.StatusConflict
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	return http.StatusBadGateway
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
}
