package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/in"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
	"github.com/suchimauz/hospital-desk/internal/utils"
)

const sessionKey = "session"

// requestID берет X-Request-ID клиента или создает новый и кладет его в
// контекст запроса, откуда его заберет адаптер бэкенда
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(utils.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Request = ctx.Request.WithContext(utils.WithRequestID(ctx.Request.Context(), requestID))
		ctx.Header(utils.RequestIDHeader, requestID)

		ctx.Next()
	}
}

func requestLogger(logger out.LoggerPort) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		fields := out.LogFields{
			"method":    ctx.Request.Method,
			"path":      ctx.FullPath(),
			"status":    ctx.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
			"requestId": utils.RequestID(ctx.Request.Context()),
		}
		if ctx.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("http.request", fields)
			return
		}
		logger.Debug("http.request", fields)
	}
}

// sessionAuth декодирует bearer-токен один раз на запрос. Дальше
// обработчики читают только Session из контекста.
func sessionAuth(sessionUseCase in.SessionUseCase, logger out.LoggerPort) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		session, err := sessionUseCase.Decode(header)
		if err != nil {
			logger.Debug("http.session.rejected", out.LogFields{
				"path":  ctx.FullPath(),
				"error": err.Error(),
			})
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(sessionKey, session)
		ctx.Next()
	}
}

func requireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !sessionFrom(ctx).HasRole(roles...) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		ctx.Next()
	}
}

func sessionFrom(ctx *gin.Context) domain.Session {
	if value, exists := ctx.Get(sessionKey); exists {
		if session, ok := value.(domain.Session); ok {
			return session
		}
	}
	return domain.Unauthenticated()
}
