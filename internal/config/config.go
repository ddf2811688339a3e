package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"UTC"`
		LogLevel string      `env:"APP_LOG_LEVEL" envDefault:"info"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Backend struct {
		URL     string        `env:"BACKEND_URL" envDefault:"http://localhost:8000/api"`
		Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	}

	Auth struct {
		// Пустой секрет: токен только декодируется, подпись проверяет бэкенд
		JWTSecret string `env:"AUTH_JWT_SECRET"`
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"hospital-desk.cache"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"hospital"`
		Bind     string `env:"RABBITMQ_BIND" envDefault:"hospital.desk.#"`
	}

	Cache struct {
		Enabled          bool          `env:"CACHE_ENABLED"`
		BookedSlotsSize  int           `env:"CACHE_BOOKED_SLOTS_SIZE" envDefault:"500"`
		AppointmentsSize int           `env:"CACHE_APPOINTMENTS_SIZE" envDefault:"1000"`
		DoctorsTTL       time.Duration `env:"CACHE_DOCTORS_TTL" envDefault:"5m"`
	}

	Locations struct {
		Path string `env:"LOCATIONS_PATH"`
	}

	Slots struct {
		GranularityMinutes int `env:"SLOTS_GRANULARITY_MINUTES" envDefault:"20"`
	}
}

// NewConfig читает .env (если он есть) и переменные окружения
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Backend.URL = strings.TrimRight(cfg.Backend.URL, "/")

	// Без RabbitMQ кэш нельзя инвалидировать извне, поэтому не включаем
	if !cfg.RabbitMQ.Enabled {
		cfg.Cache.Enabled = false
	}

	if cfg.Slots.GranularityMinutes <= 0 {
		cfg.Slots.GranularityMinutes = 20
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
