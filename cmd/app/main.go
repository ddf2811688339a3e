package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suchimauz/hospital-desk/internal/adapters/in/http"
	"github.com/suchimauz/hospital-desk/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/hospital-desk/internal/adapters/out/backend"
	"github.com/suchimauz/hospital-desk/internal/adapters/out/cache"
	"github.com/suchimauz/hospital-desk/internal/adapters/out/locations"
	"github.com/suchimauz/hospital-desk/internal/adapters/out/logger"
	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
	"github.com/suchimauz/hospital-desk/internal/core/services/appointment_service"
	"github.com/suchimauz/hospital-desk/internal/core/services/directory_service"
	"github.com/suchimauz/hospital-desk/internal/core/services/forms"
	"github.com/suchimauz/hospital-desk/internal/core/services/location_service"
	"github.com/suchimauz/hospital-desk/internal/core/services/session_service"
	"github.com/suchimauz/hospital-desk/internal/core/services/slot_service"
)

const shutdownTimeout = 10 * time.Second

func newLogger(cfg *config.Config) (out.LoggerPort, error) {
	// Локально цветной вывод в консоль, в остальных окружениях JSON через zap
	if cfg.IsLocal() {
		return logger.NewConsoleLogger(cfg.App.Timezone)
	}
	return logger.NewZapLogger(cfg.App.LogLevel)
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer mainLogger.Sync()
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"backendUrl":      cfg.Backend.URL,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
		"verifiedTokens":  cfg.Auth.JWTSecret != "",
	})

	// Инициализация адаптеров
	locationTable, err := locations.NewLocationTable(cfg.Locations.Path, mainLogger.WithModule("LocationTable"))
	if err != nil {
		logger.Error("app.locations.init_failed", out.LogFields{
			"error": err.Error(),
			"path":  cfg.Locations.Path,
		})
		os.Exit(1)
	}

	backendAdapter := backend.NewBackendAdapter(cfg, mainLogger.WithModule("BackendAdapter"))

	cacheAdapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
	if err != nil {
		logger.Error("app.cache.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Инициализация сервисов
	validator := forms.NewValidator()
	locationService := location_service.NewLocationService(locationTable, mainLogger)
	sessionService := session_service.NewSessionService(cfg, mainLogger)
	slotService := slot_service.NewSlotService(backendAdapter, cacheAdapter, cfg, mainLogger)
	directoryService := directory_service.NewDirectoryService(backendAdapter, cacheAdapter, validator, cfg, mainLogger)
	appointmentService := appointment_service.NewAppointmentService(
		backendAdapter,
		cacheAdapter,
		slotService,
		validator,
		cfg,
		mainLogger,
	)

	// Настройка HTTP сервера
	router := http.NewRouter(cfg, sessionService, mainLogger,
		http.NewLocationController(locationService),
		http.NewSlotController(slotService, directoryService),
		http.NewAppointmentController(appointmentService),
		http.NewDirectoryController(directoryService),
	)

	server := &nethttp.Server{
		Addr:              cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewCacheEventListener(cacheAdapter, cfg, mainLogger)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	// Дополнительное логирование для разработки
	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"backend": map[string]interface{}{
					"url":     cfg.Backend.URL,
					"timeout": cfg.Backend.Timeout.String(),
				},
				"rabbitmq": map[string]interface{}{
					"enabled": cfg.RabbitMQ.Enabled,
					"queue":   cfg.RabbitMQ.Queue,
					"bind":    cfg.RabbitMQ.Bind,
				},
				"cache": map[string]interface{}{
					"enabled":           cfg.Cache.Enabled,
					"booked_slots_size": cfg.Cache.BookedSlotsSize,
					"appointments_size": cfg.Cache.AppointmentsSize,
				},
			},
		})
	}

	logger.Info("app.shutdown.completed", nil)
}
