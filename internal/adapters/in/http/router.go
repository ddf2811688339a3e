package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/ports/in"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

type Controller interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// NewRouter собирает gin: общие middleware, /health без авторизации и
// /api/v1 с обязательной сессией
func NewRouter(cfg *config.Config, sessionUseCase in.SessionUseCase, logger out.LoggerPort, controllers ...Controller) *gin.Engine {
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger = logger.WithModule("HttpRouter")

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(logger))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": cfg.App.Version,
		})
	})

	api := router.Group("/api/v1")
	api.Use(sessionAuth(sessionUseCase, logger))
	{
		api.GET("/session", getSession)

		for _, controller := range controllers {
			controller.RegisterRoutes(api)
		}
	}

	return router
}

func getSession(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"session": sessionFrom(ctx)})
}
